// Package storage models the closed set of file-storage backends a project
// can be configured with: local disk, S3-compatible object store, and the
// remote disk service.
//
// Storage values are immutable value objects created by Decode. They carry
// everything needed to later resolve concrete connection parameters
// (endpoint URL, region, credentials, auth token) against process-wide
// defaults; that resolution lives in internal/resolve and is pure.
//
// The set is sealed: every consumer switches exhaustively over the three
// variants so that adding a fourth backend is a compile-time-checked change
// everywhere.
package storage

import (
	"net/url"

	"github.com/datashelf/shelf/pkg/secret"
)

// Storage is the common capability surface shared by all backend variants.
type Storage interface {
	// Type returns the variant's discriminator. It is computed from the
	// concrete type, never stored, so it cannot diverge.
	Type() StorageType

	// Default reports whether this storage is the project default. At most
	// one storage per project may be the default; that uniqueness is
	// enforced by the owning resource layer, not here.
	Default() bool

	// Algorithm is the digest algorithm used for files on this storage.
	Algorithm() DigestAlgorithm

	// Capacity returns the storage capacity in bytes, when bounded. Only
	// disk storage can be capacity-bounded.
	Capacity() (int64, bool)

	// MaxFileSize is the per-file size limit in bytes, always positive.
	MaxFileSize() int64

	// ReadPermission and WritePermission identify the permissions required
	// to read from and write to this storage.
	ReadPermission() Permission
	WritePermission() Permission

	// Secrets returns exactly the secret-bearing optional fields present on
	// this variant. Computed, never stored separately.
	Secrets() []secret.Secret

	sealed()
}

// Disk is a local filesystem volume.
type Disk struct {
	IsDefault        bool
	Digest           DigestAlgorithm
	Volume           AbsolutePath
	Read             Permission
	Write            Permission
	CapacityBytes    *int64
	MaxFileSizeBytes int64
}

func (d Disk) Type() StorageType           { return TypeDisk }
func (d Disk) Default() bool               { return d.IsDefault }
func (d Disk) Algorithm() DigestAlgorithm  { return d.Digest }
func (d Disk) MaxFileSize() int64          { return d.MaxFileSizeBytes }
func (d Disk) ReadPermission() Permission  { return d.Read }
func (d Disk) WritePermission() Permission { return d.Write }
func (d Disk) sealed()                     {}

// Capacity returns the configured volume capacity, if bounded.
func (d Disk) Capacity() (int64, bool) {
	if d.CapacityBytes == nil {
		return 0, false
	}
	return *d.CapacityBytes, true
}

// Secrets returns nil: disk storage carries no secrets.
func (d Disk) Secrets() []secret.Secret { return nil }

// S3 is an S3-compatible object store. Endpoint is nil for AWS proper;
// access and secret keys are optional and fall back to process-wide
// defaults only for trusted endpoints (see internal/resolve).
type S3 struct {
	IsDefault        bool
	Digest           DigestAlgorithm
	Bucket           string
	Endpoint         *url.URL
	AccessKey        secret.Secret
	SecretKey        secret.Secret
	Region           RegionID
	Read             Permission
	Write            Permission
	MaxFileSizeBytes int64
}

func (s S3) Type() StorageType           { return TypeS3 }
func (s S3) Default() bool               { return s.IsDefault }
func (s S3) Algorithm() DigestAlgorithm  { return s.Digest }
func (s S3) MaxFileSize() int64          { return s.MaxFileSizeBytes }
func (s S3) ReadPermission() Permission  { return s.Read }
func (s S3) WritePermission() Permission { return s.Write }
func (s S3) sealed()                     {}

// Capacity always reports unbounded: object storage is not
// capacity-bounded in this model.
func (s S3) Capacity() (int64, bool) { return 0, false }

// Secrets returns the access and secret keys that are present.
func (s S3) Secrets() []secret.Secret {
	var out []secret.Secret
	if !s.AccessKey.IsZero() {
		out = append(out, s.AccessKey)
	}
	if !s.SecretKey.IsZero() {
		out = append(out, s.SecretKey)
	}
	return out
}

// RemoteDisk is a folder on the remote disk service, reached over HTTP with
// an optional bearer credential.
type RemoteDisk struct {
	IsDefault        bool
	Digest           DigestAlgorithm
	Endpoint         BaseURI
	Credentials      secret.Secret
	Folder           Label
	Read             Permission
	Write            Permission
	MaxFileSizeBytes int64
}

func (r RemoteDisk) Type() StorageType           { return TypeRemoteDisk }
func (r RemoteDisk) Default() bool               { return r.IsDefault }
func (r RemoteDisk) Algorithm() DigestAlgorithm  { return r.Digest }
func (r RemoteDisk) MaxFileSize() int64          { return r.MaxFileSizeBytes }
func (r RemoteDisk) ReadPermission() Permission  { return r.Read }
func (r RemoteDisk) WritePermission() Permission { return r.Write }
func (r RemoteDisk) sealed()                     {}

// Capacity always reports unbounded.
func (r RemoteDisk) Capacity() (int64, bool) { return 0, false }

// Secrets returns the bearer credential when present.
func (r RemoteDisk) Secrets() []secret.Secret {
	if r.Credentials.IsZero() {
		return nil
	}
	return []secret.Secret{r.Credentials}
}
