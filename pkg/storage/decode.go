package storage

import (
	"net/url"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	cfgerrors "github.com/datashelf/shelf/internal/errors"
	"github.com/datashelf/shelf/pkg/secret"
)

// Decode turns a structured configuration document into a Storage value.
//
// The "type" field selects the variant; only the selected variant's fields
// are decoded and validated, so documents never fail on fields that belong
// to a different backend. Any failure yields a structured error and no
// partially-populated value.
func Decode(raw map[string]interface{}) (Storage, error) {
	tpe, ok := raw["type"].(string)
	if !ok || tpe == "" {
		return nil, cfgerrors.DecodeError{
			Field:   "type",
			Message: "required field is absent",
		}
	}

	storageType, err := ParseStorageType(tpe)
	if err != nil {
		return nil, err
	}

	switch storageType {
	case TypeDisk:
		return decodeDisk(raw)
	case TypeS3:
		return decodeS3(raw)
	case TypeRemoteDisk:
		return decodeRemoteDisk(raw)
	}
	// Unreachable: ParseStorageType rejects everything else.
	return nil, cfgerrors.UnknownDiscriminatorError{Field: "type", Value: tpe, Allowed: StorageTypes()}
}

type diskPayload struct {
	Type            string `mapstructure:"type"`
	Default         bool   `mapstructure:"default"`
	Algorithm       string `mapstructure:"algorithm"`
	Volume          string `mapstructure:"volume"`
	ReadPermission  string `mapstructure:"read_permission"`
	WritePermission string `mapstructure:"write_permission"`
	Capacity        *int64 `mapstructure:"capacity"`
	MaxFileSize     int64  `mapstructure:"max_file_size"`
}

type s3Payload struct {
	Type            string `mapstructure:"type"`
	Default         bool   `mapstructure:"default"`
	Algorithm       string `mapstructure:"algorithm"`
	Bucket          string `mapstructure:"bucket"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKey       string `mapstructure:"access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	Region          string `mapstructure:"region"`
	ReadPermission  string `mapstructure:"read_permission"`
	WritePermission string `mapstructure:"write_permission"`
	Capacity        *int64 `mapstructure:"capacity"`
	MaxFileSize     int64  `mapstructure:"max_file_size"`
}

type remoteDiskPayload struct {
	Type            string `mapstructure:"type"`
	Default         bool   `mapstructure:"default"`
	Algorithm       string `mapstructure:"algorithm"`
	Endpoint        string `mapstructure:"endpoint"`
	Credentials     string `mapstructure:"credentials"`
	Folder          string `mapstructure:"folder"`
	ReadPermission  string `mapstructure:"read_permission"`
	WritePermission string `mapstructure:"write_permission"`
	Capacity        *int64 `mapstructure:"capacity"`
	MaxFileSize     int64  `mapstructure:"max_file_size"`
}

func decodePayload(raw map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return cfgerrors.DecodeError{Message: "failed to build decoder", Err: err}
	}
	if err := dec.Decode(raw); err != nil {
		return cfgerrors.DecodeError{Message: "malformed storage configuration", Err: err}
	}
	return nil
}

func decodeDisk(raw map[string]interface{}) (Storage, error) {
	var p diskPayload
	if err := decodePayload(raw, &p); err != nil {
		return nil, err
	}

	algorithm, err := ParseDigestAlgorithm(p.Algorithm)
	if err != nil {
		return nil, err
	}
	if p.Volume == "" {
		return nil, cfgerrors.DecodeError{Field: "volume", Message: "required field is absent"}
	}
	volume, err := ParseAbsolutePath("volume", p.Volume)
	if err != nil {
		return nil, err
	}
	read, write, err := decodePermissions(p.ReadPermission, p.WritePermission)
	if err != nil {
		return nil, err
	}
	if err := checkMaxFileSize(p.MaxFileSize); err != nil {
		return nil, err
	}
	if p.Capacity != nil && *p.Capacity <= 0 {
		return nil, cfgerrors.InvariantViolationError{
			Field:   "capacity",
			Message: "capacity must be positive when set",
		}
	}

	return Disk{
		IsDefault:        p.Default,
		Digest:           algorithm,
		Volume:           volume,
		Read:             read,
		Write:            write,
		CapacityBytes:    p.Capacity,
		MaxFileSizeBytes: p.MaxFileSize,
	}, nil
}

func decodeS3(raw map[string]interface{}) (Storage, error) {
	var p s3Payload
	if err := decodePayload(raw, &p); err != nil {
		return nil, err
	}
	if err := checkNoCapacity(p.Capacity); err != nil {
		return nil, err
	}

	algorithm, err := ParseDigestAlgorithm(p.Algorithm)
	if err != nil {
		return nil, err
	}
	if p.Bucket == "" {
		return nil, cfgerrors.DecodeError{Field: "bucket", Message: "required field is absent"}
	}
	read, write, err := decodePermissions(p.ReadPermission, p.WritePermission)
	if err != nil {
		return nil, err
	}
	if err := checkMaxFileSize(p.MaxFileSize); err != nil {
		return nil, err
	}

	var endpoint *url.URL
	if p.Endpoint != "" {
		endpoint, err = url.Parse(strings.TrimSpace(p.Endpoint))
		if err != nil {
			return nil, cfgerrors.DecodeError{Field: "endpoint", Value: p.Endpoint, Message: "malformed URI", Err: err}
		}
	}

	var region RegionID
	if p.Region != "" {
		region, err = ParseRegionID("region", p.Region)
		if err != nil {
			return nil, err
		}
	}

	return S3{
		IsDefault:        p.Default,
		Digest:           algorithm,
		Bucket:           p.Bucket,
		Endpoint:         endpoint,
		AccessKey:        secret.New(p.AccessKey),
		SecretKey:        secret.New(p.SecretKey),
		Region:           region,
		Read:             read,
		Write:            write,
		MaxFileSizeBytes: p.MaxFileSize,
	}, nil
}

func decodeRemoteDisk(raw map[string]interface{}) (Storage, error) {
	var p remoteDiskPayload
	if err := decodePayload(raw, &p); err != nil {
		return nil, err
	}
	if err := checkNoCapacity(p.Capacity); err != nil {
		return nil, err
	}

	algorithm, err := ParseDigestAlgorithm(p.Algorithm)
	if err != nil {
		return nil, err
	}
	if p.Endpoint == "" {
		return nil, cfgerrors.DecodeError{Field: "endpoint", Message: "required field is absent"}
	}
	endpoint, err := ParseBaseURI("endpoint", p.Endpoint)
	if err != nil {
		return nil, err
	}
	if p.Folder == "" {
		return nil, cfgerrors.DecodeError{Field: "folder", Message: "required field is absent"}
	}
	folder, err := ParseLabel("folder", p.Folder)
	if err != nil {
		return nil, err
	}
	read, write, err := decodePermissions(p.ReadPermission, p.WritePermission)
	if err != nil {
		return nil, err
	}
	if err := checkMaxFileSize(p.MaxFileSize); err != nil {
		return nil, err
	}

	return RemoteDisk{
		IsDefault:        p.Default,
		Digest:           algorithm,
		Endpoint:         endpoint,
		Credentials:      secret.New(p.Credentials),
		Folder:           folder,
		Read:             read,
		Write:            write,
		MaxFileSizeBytes: p.MaxFileSize,
	}, nil
}

func decodePermissions(read, write string) (Permission, Permission, error) {
	r, err := ParsePermission("read_permission", read)
	if err != nil {
		return "", "", err
	}
	w, err := ParsePermission("write_permission", write)
	if err != nil {
		return "", "", err
	}
	return r, w, nil
}

func checkMaxFileSize(n int64) error {
	if n <= 0 {
		return cfgerrors.InvariantViolationError{
			Field:   "max_file_size",
			Message: "maximum file size must be positive",
		}
	}
	return nil
}

// checkNoCapacity rejects a capacity on variants that are not
// capacity-bounded. Never clamped, always a hard failure.
func checkNoCapacity(capacity *int64) error {
	if capacity != nil {
		return cfgerrors.InvariantViolationError{
			Field:   "capacity",
			Message: "only disk storage may declare a capacity",
		}
	}
	return nil
}
