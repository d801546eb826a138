// Package permissions decides whether a principal may read or write a
// storage, based on the permission identifiers the storage declares.
package permissions

import (
	"fmt"

	"github.com/datashelf/shelf/internal/logging"
	"github.com/datashelf/shelf/pkg/storage"
)

// Operation is the kind of access being requested.
type Operation string

const (
	OperationRead  Operation = "read"
	OperationWrite Operation = "write"
)

// Principal is an identity holding a set of permission identifiers.
type Principal struct {
	Name        string
	Permissions []storage.Permission
}

// Holds reports whether the principal holds the given permission.
func (p Principal) Holds(required storage.Permission) bool {
	for _, perm := range p.Permissions {
		if perm == required {
			return true
		}
	}
	return false
}

// Result represents the outcome of a permission check.
type Result struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// Checker handles principal-based access checking for storages.
type Checker struct {
	logger *logging.Logger
}

// NewChecker creates a new permission checker.
func NewChecker(logger *logging.Logger) *Checker {
	return &Checker{logger: logger}
}

// Check decides whether the principal may perform the operation on the
// storage.
func (c *Checker) Check(principal Principal, s storage.Storage, op Operation) *Result {
	var required storage.Permission
	switch op {
	case OperationRead:
		required = s.ReadPermission()
	case OperationWrite:
		required = s.WritePermission()
	default:
		c.logger.Warn("Unknown operation %q requested by %s", op, principal.Name)
		return &Result{
			Allowed: false,
			Reason:  fmt.Sprintf("Unknown operation: %s", op),
		}
	}

	if !principal.Holds(required) {
		c.logger.Warn("Principal %s denied %s access to %s storage", principal.Name, op, s.Type())
		return &Result{
			Allowed: false,
			Reason:  fmt.Sprintf("Principal lacks permission %s", required),
		}
	}

	c.logger.Debug("Principal %s granted %s access to %s storage", principal.Name, op, s.Type())
	return &Result{
		Allowed: true,
		Reason:  "Permission granted",
	}
}
