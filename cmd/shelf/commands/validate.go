package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgerrors "github.com/datashelf/shelf/internal/errors"
	"github.com/datashelf/shelf/internal/metrics"
	"github.com/datashelf/shelf/internal/validation"
	"github.com/datashelf/shelf/pkg/storage"
)

func NewValidateCommand(opts *Options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate storage definitions",
		Long: `Validate every storage definition in a file.

Each definition is first checked against the document schema, then decoded
into a typed storage value so variant invariants (required fields, positive
max file size, capacity only on disk) are enforced.

Examples:
  # Validate the default file
  shelf validate

  # Validate a specific file
  shelf validate --file deploy/storages.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := LoadDefinitions(file)
			if err != nil {
				return err
			}

			failed := 0
			for _, name := range defs.Names() {
				raw := defs.Storages[name]
				tpe, _ := raw["type"].(string)

				msgs, err := validation.ValidateStorageDocument(raw)
				if err != nil {
					return err
				}
				if len(msgs) > 0 {
					for _, msg := range msgs {
						opts.Logger.Error("%s: %s", name, msg)
					}
					metrics.RecordDecode(tpe, "error")
					failed++
					continue
				}

				s, err := storage.Decode(raw)
				if err != nil {
					opts.Logger.Error("%s: %v", name, err)
					metrics.RecordDecode(tpe, "error")
					failed++
					continue
				}

				metrics.RecordDecode(string(s.Type()), "ok")
				opts.Logger.Info("%s: valid %s storage", name, s.Type())
			}

			if failed > 0 {
				return cfgerrors.UserError{
					Message:    fmt.Sprintf("%d of %d storage definitions failed validation", failed, len(defs.Storages)),
					Suggestion: "Fix the reported fields and run validate again",
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "storages.yaml", "Storage definitions file")
	return cmd
}
