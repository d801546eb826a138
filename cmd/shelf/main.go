package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datashelf/shelf/cmd/shelf/commands"
	"github.com/datashelf/shelf/internal/logging"
	"github.com/datashelf/shelf/internal/metrics"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		noColor       bool
		debug         bool
		enableMetrics bool
	)

	opts := &commands.Options{}

	rootCmd := &cobra.Command{
		Use:   "shelf",
		Short: "Inspect and resolve project storage configurations",
		Long: `shelf validates storage backend definitions (disk, s3, remote_disk) and
resolves them into concrete connection parameters against the process-wide
storage defaults.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.Logger = logging.New(debug, noColor)
			if enableMetrics {
				metrics.Init()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&enableMetrics, "metrics", false, "Register Prometheus metrics")

	rootCmd.AddCommand(
		commands.NewValidateCommand(opts),
		commands.NewResolveCommand(opts),
	)

	return rootCmd.Execute()
}
