// Package validation checks raw storage-definition documents against a
// JSON schema before typed decoding, so shape errors surface with field
// paths instead of decoder internals.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// storageSchema constrains the shared document shape. Variant-specific
// required fields and invariants are enforced by the typed decoder; the
// schema only rejects documents that could never decode.
const storageSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["type"],
  "properties": {
    "type": {"type": "string"},
    "default": {"type": "boolean"},
    "algorithm": {"type": "string"},
    "volume": {"type": "string"},
    "bucket": {"type": "string"},
    "endpoint": {"type": "string"},
    "access_key": {"type": "string"},
    "secret_key": {"type": "string"},
    "credentials": {"type": "string"},
    "region": {"type": "string"},
    "folder": {"type": "string"},
    "read_permission": {"type": "string"},
    "write_permission": {"type": "string"},
    "capacity": {"type": "integer"},
    "max_file_size": {"type": "integer"}
  }
}`

// ValidateStorageDocument validates a raw storage definition. It returns a
// list of field-path-qualified messages; an empty list means the document
// is structurally valid.
func ValidateStorageDocument(doc map[string]interface{}) ([]string, error) {
	schemaLoader := gojsonschema.NewStringLoader(storageSchema)
	docLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	var messages []string
	for _, e := range result.Errors() {
		messages = append(messages, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return messages, nil
}
