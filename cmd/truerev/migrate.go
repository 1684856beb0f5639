package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every command that uses the database migrates it on open; this command
exists to prepare a database ahead of time or inspect its version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMigrate(cmd)
		},
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func (a *app) runMigrate(cmd *cobra.Command) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")
	dbPath := config.ExpandPath(a.cfg.Database.Path)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if status {
		_, err = fmt.Fprintf(w, "Database: %s\nCurrent version: %d\nLatest version: %d\n",
			dbPath, current, storage.ExpectedSchemaVersion)
		return err
	}

	slog.Info("Running database migrations", "database", dbPath, "from_version", current)
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	_, err = fmt.Fprintf(w, "✅ Database at schema version %d\n", storage.ExpectedSchemaVersion)
	return err
}
