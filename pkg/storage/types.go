package storage

import (
	"net/url"
	"strings"

	cfgerrors "github.com/datashelf/shelf/internal/errors"
)

// StorageType identifies which variant a storage value is. It serves both
// as the runtime discriminator and as the serialization tag.
type StorageType string

const (
	TypeDisk       StorageType = "disk"
	TypeS3         StorageType = "s3"
	TypeRemoteDisk StorageType = "remote_disk"
)

// StorageTypes is the closed set of supported backends, in declaration
// order, for diagnostics.
func StorageTypes() []string {
	return []string{string(TypeDisk), string(TypeS3), string(TypeRemoteDisk)}
}

// ParseStorageType validates a discriminator value against the closed set.
func ParseStorageType(s string) (StorageType, error) {
	switch StorageType(s) {
	case TypeDisk, TypeS3, TypeRemoteDisk:
		return StorageType(s), nil
	default:
		return "", cfgerrors.UnknownDiscriminatorError{
			Field:   "type",
			Value:   s,
			Allowed: StorageTypes(),
		}
	}
}

// DigestAlgorithm names the checksum algorithm used for file digests.
type DigestAlgorithm string

const (
	MD5    DigestAlgorithm = "md5"
	SHA1   DigestAlgorithm = "sha1"
	SHA256 DigestAlgorithm = "sha256"
	SHA512 DigestAlgorithm = "sha512"
)

// ParseDigestAlgorithm validates an algorithm name against the closed set.
func ParseDigestAlgorithm(s string) (DigestAlgorithm, error) {
	switch DigestAlgorithm(strings.ToLower(s)) {
	case MD5, SHA1, SHA256, SHA512:
		return DigestAlgorithm(strings.ToLower(s)), nil
	default:
		return "", cfgerrors.UnknownDiscriminatorError{
			Field:   "algorithm",
			Value:   s,
			Allowed: []string{string(MD5), string(SHA1), string(SHA256), string(SHA512)},
		}
	}
}

// Permission is an opaque permission identifier attached to a storage for
// read or write access. Validated as non-empty; interpretation belongs to
// the permission checker.
type Permission string

// ParsePermission validates a permission identifier.
func ParsePermission(field, s string) (Permission, error) {
	if strings.TrimSpace(s) == "" {
		return "", cfgerrors.DecodeError{
			Field:   field,
			Message: "permission identifier must not be empty",
		}
	}
	return Permission(s), nil
}

// Label is a short identifier naming a folder on the remote disk service.
type Label string

// ParseLabel validates a folder label: non-empty, no path separators.
func ParseLabel(field, s string) (Label, error) {
	if strings.TrimSpace(s) == "" {
		return "", cfgerrors.DecodeError{
			Field:   field,
			Message: "label must not be empty",
		}
	}
	if strings.ContainsAny(s, "/\\") {
		return "", cfgerrors.DecodeError{
			Field:   field,
			Value:   s,
			Message: "label must not contain path separators",
		}
	}
	return Label(s), nil
}

// AbsolutePath is a rooted filesystem path for local disk volumes.
type AbsolutePath string

// ParseAbsolutePath validates that the path is rooted.
func ParseAbsolutePath(field, s string) (AbsolutePath, error) {
	if !strings.HasPrefix(s, "/") {
		return "", cfgerrors.DecodeError{
			Field:   field,
			Value:   s,
			Message: "volume path must be absolute",
		}
	}
	return AbsolutePath(s), nil
}

// BaseURI is a normalized absolute http(s) URL identifying a remote
// service. Two BaseURIs are equal exactly when their normalized string
// forms are equal, which makes the trusted-endpoint comparison auditable.
type BaseURI string

// ParseBaseURI validates and normalizes an absolute URL. A trailing slash
// is stripped so equivalent spellings compare equal.
func ParseBaseURI(field, s string) (BaseURI, error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", cfgerrors.DecodeError{Field: field, Value: s, Message: "malformed URI", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", cfgerrors.DecodeError{
			Field:   field,
			Value:   s,
			Message: "endpoint must be an absolute http(s) URL",
		}
	}
	return BaseURI(strings.TrimSuffix(u.String(), "/")), nil
}

// URL parses the BaseURI back into a *url.URL. The receiver is always a
// valid URL by construction.
func (b BaseURI) URL() *url.URL {
	u, _ := url.Parse(string(b))
	return u
}

// RegionID names an object-store region, e.g. "eu-west-1".
type RegionID string

// ParseRegionID validates a region identifier.
func ParseRegionID(field, s string) (RegionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", cfgerrors.DecodeError{
			Field:   field,
			Message: "region must not be empty",
		}
	}
	return RegionID(s), nil
}
