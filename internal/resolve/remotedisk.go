package resolve

import (
	"github.com/datashelf/shelf/internal/config"
	"github.com/datashelf/shelf/pkg/secret"
	"github.com/datashelf/shelf/pkg/storage"
)

// AuthToken is a bearer token for the remote disk service. It redacts like
// a Secret; AuthorizationHeader is its single disclosure point.
type AuthToken struct {
	value secret.Secret
}

// String implements fmt.Stringer, always returning a redacted value.
func (t AuthToken) String() string {
	return "[REDACTED]"
}

// AuthorizationHeader renders the token as an Authorization header value.
func (t AuthToken) AuthorizationHeader() string {
	return "Bearer " + t.value.Reveal()
}

// RemoteDiskToken resolves the effective bearer token for a remote disk
// storage. Explicit credentials win; the global default credentials apply
// only when the storage endpoint equals the configured default endpoint.
// Defaults must not leak to other hosts. No token means the downstream call
// goes out anonymous and is expected to fail there.
func RemoteDiskToken(s storage.RemoteDisk, defaults config.RemoteDiskDefaults) (AuthToken, bool) {
	if !s.Credentials.IsZero() {
		return AuthToken{value: s.Credentials}, true
	}
	if defaults.Endpoint != "" && s.Endpoint == defaults.Endpoint && !defaults.Credentials.IsZero() {
		return AuthToken{value: defaults.Credentials}, true
	}
	return AuthToken{}, false
}
