package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	cfgerrors "github.com/datashelf/shelf/internal/errors"
	"github.com/datashelf/shelf/internal/logging"
)

// Options carries state shared by all commands, populated by the root
// command's persistent flags.
type Options struct {
	Logger *logging.Logger
}

// Definitions is the storage definitions file: named raw storage
// configuration documents, decoded lazily per storage.
type Definitions struct {
	Storages map[string]map[string]interface{} `yaml:"storages"`
}

// LoadDefinitions reads and parses a storage definitions file.
func LoadDefinitions(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cfgerrors.UserError{
				Message:    "Storage definitions file not found",
				Details:    path,
				Suggestion: "Use --file <path> to point at your storage definitions",
				Err:        err,
			}
		}
		return nil, cfgerrors.UserError{
			Message:    "Failed to read storage definitions file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, cfgerrors.DecodeError{
			Message: "invalid YAML syntax in storage definitions file",
			Err:     err,
		}
	}

	if len(defs.Storages) == 0 {
		return nil, cfgerrors.UserError{
			Message:    "No storage definitions found",
			Suggestion: "Add a top-level 'storages:' map to the file",
		}
	}

	return &defs, nil
}

// Names returns the storage names in stable order.
func (d *Definitions) Names() []string {
	names := make([]string, 0, len(d.Storages))
	for name := range d.Storages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the raw document for a named storage.
func (d *Definitions) Get(name string) (map[string]interface{}, error) {
	raw, ok := d.Storages[name]
	if !ok {
		return nil, cfgerrors.UserError{
			Message:    fmt.Sprintf("Unknown storage '%s'", name),
			Suggestion: fmt.Sprintf("Available storages: %s", strings.Join(d.Names(), ", ")),
		}
	}
	return raw, nil
}
