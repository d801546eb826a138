package storage

import "encoding/json"

// Discriminated JSON documents. The "@type" key carries an opaque type
// identifier derived from the variant; secret-bearing fields have no
// corresponding document field at all, so they can never be emitted.

const (
	diskTypeID       = "DiskStorage"
	s3TypeID         = "S3Storage"
	remoteDiskTypeID = "RemoteDiskStorage"
)

type diskDoc struct {
	Type            string          `json:"@type"`
	Default         bool            `json:"default"`
	Algorithm       DigestAlgorithm `json:"algorithm"`
	Volume          AbsolutePath    `json:"volume"`
	ReadPermission  Permission      `json:"readPermission"`
	WritePermission Permission      `json:"writePermission"`
	Capacity        *int64          `json:"capacity,omitempty"`
	MaxFileSize     int64           `json:"maxFileSize"`
}

// MarshalJSON implements json.Marshaler.
func (d Disk) MarshalJSON() ([]byte, error) {
	return json.Marshal(diskDoc{
		Type:            diskTypeID,
		Default:         d.IsDefault,
		Algorithm:       d.Digest,
		Volume:          d.Volume,
		ReadPermission:  d.Read,
		WritePermission: d.Write,
		Capacity:        d.CapacityBytes,
		MaxFileSize:     d.MaxFileSizeBytes,
	})
}

type s3Doc struct {
	Type            string          `json:"@type"`
	Default         bool            `json:"default"`
	Algorithm       DigestAlgorithm `json:"algorithm"`
	Bucket          string          `json:"bucket"`
	Endpoint        string          `json:"endpoint,omitempty"`
	Region          RegionID        `json:"region,omitempty"`
	ReadPermission  Permission      `json:"readPermission"`
	WritePermission Permission      `json:"writePermission"`
	MaxFileSize     int64           `json:"maxFileSize"`
}

// MarshalJSON implements json.Marshaler. The access and secret keys are
// omitted entirely, never redacted.
func (s S3) MarshalJSON() ([]byte, error) {
	doc := s3Doc{
		Type:            s3TypeID,
		Default:         s.IsDefault,
		Algorithm:       s.Digest,
		Bucket:          s.Bucket,
		Region:          s.Region,
		ReadPermission:  s.Read,
		WritePermission: s.Write,
		MaxFileSize:     s.MaxFileSizeBytes,
	}
	if s.Endpoint != nil {
		doc.Endpoint = s.Endpoint.String()
	}
	return json.Marshal(doc)
}

type remoteDiskDoc struct {
	Type            string          `json:"@type"`
	Default         bool            `json:"default"`
	Algorithm       DigestAlgorithm `json:"algorithm"`
	Endpoint        BaseURI         `json:"endpoint"`
	Folder          Label           `json:"folder"`
	ReadPermission  Permission      `json:"readPermission"`
	WritePermission Permission      `json:"writePermission"`
	MaxFileSize     int64           `json:"maxFileSize"`
}

// MarshalJSON implements json.Marshaler. The bearer credential is omitted
// entirely, never redacted.
func (r RemoteDisk) MarshalJSON() ([]byte, error) {
	return json.Marshal(remoteDiskDoc{
		Type:            remoteDiskTypeID,
		Default:         r.IsDefault,
		Algorithm:       r.Digest,
		Endpoint:        r.Endpoint,
		Folder:          r.Folder,
		ReadPermission:  r.Read,
		WritePermission: r.Write,
		MaxFileSize:     r.MaxFileSizeBytes,
	})
}
