package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datashelf/shelf/internal/logging"
	"github.com/datashelf/shelf/pkg/storage"
)

func testStorage() storage.Storage {
	return storage.Disk{
		Digest:           storage.SHA256,
		Volume:           "/srv/files",
		Read:             "files:read",
		Write:            "files:write",
		MaxFileSizeBytes: 1024,
	}
}

func TestCheckAllowsHolderOfReadPermission(t *testing.T) {
	checker := NewChecker(logging.New(false, true))

	principal := Principal{Name: "alice", Permissions: []storage.Permission{"files:read"}}
	result := checker.Check(principal, testStorage(), OperationRead)
	assert.True(t, result.Allowed)
}

func TestCheckDeniesMissingWritePermission(t *testing.T) {
	checker := NewChecker(logging.New(false, true))

	principal := Principal{Name: "alice", Permissions: []storage.Permission{"files:read"}}
	result := checker.Check(principal, testStorage(), OperationWrite)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "files:write")
}

func TestCheckDeniesUnknownOperation(t *testing.T) {
	checker := NewChecker(logging.New(false, true))

	principal := Principal{Name: "alice", Permissions: []storage.Permission{"files:read", "files:write"}}
	result := checker.Check(principal, testStorage(), Operation("delete"))
	assert.False(t, result.Allowed)
}
