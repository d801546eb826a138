package resolve

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datashelf/shelf/internal/config"
	"github.com/datashelf/shelf/pkg/secret"
	"github.com/datashelf/shelf/pkg/storage"
)

func remoteDefaults() config.RemoteDiskDefaults {
	return config.RemoteDiskDefaults{
		Endpoint:    storage.BaseURI("https://disk.internal.example.com"),
		Credentials: secret.New("default-token"),
	}
}

func TestRemoteDiskTokenExplicitCredentialsWin(t *testing.T) {
	t.Parallel()

	s := storage.RemoteDisk{
		Endpoint:    storage.BaseURI("https://disk.internal.example.com"),
		Credentials: secret.New("explicit-token"),
	}
	token, ok := RemoteDiskToken(s, remoteDefaults())
	require.True(t, ok)
	assert.Equal(t, "Bearer explicit-token", token.AuthorizationHeader())
}

func TestRemoteDiskTokenDefaultAppliesOnDefaultEndpoint(t *testing.T) {
	t.Parallel()

	s := storage.RemoteDisk{Endpoint: storage.BaseURI("https://disk.internal.example.com")}
	token, ok := RemoteDiskToken(s, remoteDefaults())
	require.True(t, ok)
	assert.Equal(t, "Bearer default-token", token.AuthorizationHeader())
}

func TestRemoteDiskTokenDefaultNeverLeaksToOtherHosts(t *testing.T) {
	t.Parallel()

	s := storage.RemoteDisk{Endpoint: storage.BaseURI("https://disk.example.org")}
	_, ok := RemoteDiskToken(s, remoteDefaults())
	assert.False(t, ok)
}

func TestRemoteDiskTokenNoDefaultsConfigured(t *testing.T) {
	t.Parallel()

	s := storage.RemoteDisk{Endpoint: storage.BaseURI("https://disk.internal.example.com")}
	_, ok := RemoteDiskToken(s, config.RemoteDiskDefaults{})
	assert.False(t, ok)
}

func TestAuthTokenRedactsInFormatting(t *testing.T) {
	t.Parallel()

	s := storage.RemoteDisk{
		Endpoint:    storage.BaseURI("https://disk.internal.example.com"),
		Credentials: secret.New("explicit-token"),
	}
	token, ok := RemoteDiskToken(s, remoteDefaults())
	require.True(t, ok)

	formatted := fmt.Sprintf("%v %s", token, token)
	assert.NotContains(t, formatted, "explicit-token")
	assert.Contains(t, formatted, "[REDACTED]")
}

func TestRemoteDiskTokenIsIdempotent(t *testing.T) {
	t.Parallel()

	s := storage.RemoteDisk{Endpoint: storage.BaseURI("https://disk.internal.example.com")}
	first, ok1 := RemoteDiskToken(s, remoteDefaults())
	second, ok2 := RemoteDiskToken(s, remoteDefaults())
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first.AuthorizationHeader(), second.AuthorizationHeader())
}
