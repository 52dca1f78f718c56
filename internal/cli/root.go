package cli

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ledger/internal/config"
	"ledger/internal/logging"
)

// RootOptions holds global flags for all commands.
// Empty values fall back to the environment configuration.
type RootOptions struct {
	LogLevel  string
	LogFormat string // "json" | "text"
}

// ValidFormats defines the allowed log formats.
var ValidFormats = []string{"json", "text"}

// NewRootCommand creates the root command for the ledger binary.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "ledger - users service",
		Long:  "HTTP API and maintenance commands for the users table.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.LogFormat != "" && !slices.Contains(ValidFormats, opts.LogFormat) {
				return fmt.Errorf("invalid log format %q: must be one of %v", opts.LogFormat, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format json|text (overrides LOG_FORMAT)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

// load reads the environment configuration, applies flag overrides and validates the result.
func (o *RootOptions) load(cmd *cobra.Command) (*config.AppConfig, *logrus.Logger, error) {
	cfg := config.Load()
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Log.Format = o.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()), nil
}
