// Package config loads the process-wide storage defaults.
//
// The StorageTypeConfig is read once at startup and treated as immutable
// for the remainder of the process lifetime; resolvers receive it as an
// explicit parameter and no writer ever mutates it after Load returns, so
// concurrent readers need no synchronization.
package config

import (
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	cfgerrors "github.com/datashelf/shelf/internal/errors"
	"github.com/datashelf/shelf/pkg/secret"
	"github.com/datashelf/shelf/pkg/storage"
)

// StorageTypeConfig holds per-backend-type defaults.
type StorageTypeConfig struct {
	S3         S3Defaults
	RemoteDisk RemoteDiskDefaults
}

// S3Defaults carries fallback credentials and the set of trusted endpoints
// those credentials may be sent to.
type S3Defaults struct {
	AccessKey secret.Secret
	SecretKey secret.Secret

	// Endpoints are the recognized default S3 endpoints. Fallback
	// credentials apply only to these (or when no endpoint is set at all);
	// they must never leak to arbitrary third-party endpoints.
	Endpoints []*url.URL
}

// RemoteDiskDefaults carries the trusted remote-disk endpoint and the
// credentials permitted for it.
type RemoteDiskDefaults struct {
	Endpoint    storage.BaseURI
	Credentials secret.Secret
}

// fileConfig is the on-disk YAML shape.
type fileConfig struct {
	S3 struct {
		AccessKey secret.Secret `yaml:"access_key"`
		SecretKey secret.Secret `yaml:"secret_key"`
		Endpoints []string      `yaml:"endpoints"`
	} `yaml:"s3"`
	RemoteDisk struct {
		Endpoint    string        `yaml:"endpoint"`
		Credentials secret.Secret `yaml:"credentials"`
	} `yaml:"remote_disk"`
}

// Load reads the defaults file, applies environment overrides, and
// validates the result.
func Load(path string) (*StorageTypeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cfgerrors.UserError{
				Message:    "Storage defaults file not found",
				Details:    path,
				Suggestion: "Pass --defaults <path> or create the file",
				Err:        err,
			}
		}
		return nil, cfgerrors.UserError{
			Message:    "Failed to read storage defaults file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, cfgerrors.DecodeError{
			Message: "invalid YAML syntax in storage defaults file",
			Err:     err,
		}
	}

	overrideFromEnv(&fc)

	return build(fc)
}

// overrideFromEnv applies environment variable overrides on top of the
// file values.
func overrideFromEnv(fc *fileConfig) {
	if val := os.Getenv("SHELF_S3_DEFAULT_ACCESS_KEY"); val != "" {
		fc.S3.AccessKey = secret.New(val)
	}
	if val := os.Getenv("SHELF_S3_DEFAULT_SECRET_KEY"); val != "" {
		fc.S3.SecretKey = secret.New(val)
	}
	if val := os.Getenv("SHELF_S3_DEFAULT_ENDPOINTS"); val != "" {
		fc.S3.Endpoints = strings.Split(val, ",")
	}
	if val := os.Getenv("SHELF_REMOTE_DISK_DEFAULT_ENDPOINT"); val != "" {
		fc.RemoteDisk.Endpoint = val
	}
	if val := os.Getenv("SHELF_REMOTE_DISK_DEFAULT_CREDENTIALS"); val != "" {
		fc.RemoteDisk.Credentials = secret.New(val)
	}
}

func build(fc fileConfig) (*StorageTypeConfig, error) {
	cfg := &StorageTypeConfig{
		S3: S3Defaults{
			AccessKey: fc.S3.AccessKey,
			SecretKey: fc.S3.SecretKey,
		},
		RemoteDisk: RemoteDiskDefaults{
			Credentials: fc.RemoteDisk.Credentials,
		},
	}

	for _, raw := range fc.S3.Endpoints {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, cfgerrors.DecodeError{
				Field:   "s3.endpoints",
				Value:   raw,
				Message: "malformed URI",
				Err:     err,
			}
		}
		cfg.S3.Endpoints = append(cfg.S3.Endpoints, u)
	}

	if raw := strings.TrimSpace(fc.RemoteDisk.Endpoint); raw != "" {
		endpoint, err := storage.ParseBaseURI("remote_disk.endpoint", raw)
		if err != nil {
			return nil, err
		}
		cfg.RemoteDisk.Endpoint = endpoint
	}

	return cfg, nil
}
