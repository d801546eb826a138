// Package secret provides memory-safe handling of sensitive configuration
// values.
//
// A Secret wraps a single sensitive string (credential, access key, token)
// behind a memguard enclave so the plaintext is encrypted at rest in memory
// and protected from swapping. Secrets never leak through formatting or
// serialization: String and GoString always return a redaction marker, and
// marshalling a Secret to JSON or YAML is an error rather than a redacted
// placeholder.
//
// Reveal is the single authorized disclosure point. Callers must pass the
// returned plaintext directly to a credentials provider or auth header and
// not retain it.
package secret

import (
	"crypto/subtle"
	"errors"

	"github.com/awnumar/memguard"
	"gopkg.in/yaml.v3"
)

// ErrNotSerializable is returned when a Secret is asked to marshal itself.
var ErrNotSerializable = errors.New("secret values must never be serialized")

// Secret holds one sensitive string value. The zero value represents an
// absent secret. Secrets are immutable after construction and safe for
// concurrent use.
type Secret struct {
	enclave *memguard.Enclave
}

// New wraps value in a Secret. An empty value yields the zero (absent)
// Secret, matching configuration sources where a missing key decodes to "".
func New(value string) Secret {
	if value == "" {
		return Secret{}
	}
	return Secret{enclave: memguard.NewEnclave([]byte(value))}
}

// IsZero reports whether the secret is absent.
func (s Secret) IsZero() bool {
	return s.enclave == nil
}

// Reveal returns the plaintext value. This is the single authorized
// disclosure point; the result must flow directly into a credentials
// provider or auth header.
func (s Secret) Reveal() string {
	if s.enclave == nil {
		return ""
	}
	buf, err := s.enclave.Open()
	if err != nil {
		return ""
	}
	defer buf.Destroy()
	return string(buf.Bytes())
}

// Equal reports whether two secrets hold the same value. The comparison is
// constant-time in the revealed bytes.
func (s Secret) Equal(other Secret) bool {
	if s.enclave == nil || other.enclave == nil {
		return s.enclave == nil && other.enclave == nil
	}
	a := []byte(s.Reveal())
	b := []byte(other.Reveal())
	defer memguard.WipeBytes(a)
	defer memguard.WipeBytes(b)
	return subtle.ConstantTimeCompare(a, b) == 1
}

// String implements fmt.Stringer, always returning a redacted value.
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer for %#v formatting.
func (s Secret) GoString() string {
	return "[REDACTED]"
}

// MarshalJSON refuses to serialize the secret. Callers emitting documents
// that carry secret-bearing fields must omit those fields entirely.
func (s Secret) MarshalJSON() ([]byte, error) {
	return nil, ErrNotSerializable
}

// MarshalYAML refuses to serialize the secret.
func (s Secret) MarshalYAML() (interface{}, error) {
	return nil, ErrNotSerializable
}

// UnmarshalYAML decodes a plain scalar into a Secret so configuration files
// can carry default credentials without extra plumbing.
func (s *Secret) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*s = New(raw)
	return nil
}
