package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledger/internal/database"
	"ledger/internal/database/migration"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the users table",
		Long: `Apply the users schema to the configured database and exit.

Example:
  ledger migrate
  DB_DRIVER=postgres ledger migrate --log-format text`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := rootOpts.load(cmd)
			if err != nil {
				return err
			}

			db, err := database.Connect(cmd.Context(), cfg.Database, log)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			if err := migration.EnsureMigrated(cmd.Context(), db, log, cfg.Database.Host); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "users schema is up to date")
			return nil
		},
	}
}
