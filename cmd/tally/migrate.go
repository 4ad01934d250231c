package main

import (
	"fmt"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func migrateCmd(v *viper.Viper) *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates automatically; this one is useful to check the
schema version or prepare a database ahead of time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			current, err := store.SchemaVersion(ctx)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}

			if status {
				fmt.Fprintf(out, "Database:        %s\nCurrent version: %d\nLatest version:  %d\n",
					cfg.DatabasePath, current, storage.ExpectedSchemaVersion)
				return nil
			}

			common.LogInfo("Running database migrations", common.Fields{"database": cfg.DatabasePath, "from_version": current})
			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database at schema version %d", storage.ExpectedSchemaVersion)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "show current migration status without applying changes")

	return cmd
}
