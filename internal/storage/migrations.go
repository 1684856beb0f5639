package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS analyses (
					id TEXT PRIMARY KEY,
					source TEXT,
					industry TEXT,
					true_revenue TEXT NOT NULL,
					revenue_ratio TEXT NOT NULL,
					transaction_count INTEGER NOT NULL DEFAULT 0,
					payload TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at)`,

				`CREATE TABLE IF NOT EXISTS decisions (
					id TEXT PRIMARY KEY,
					status TEXT NOT NULL,
					decline_reason TEXT,
					funding_amount TEXT,
					request TEXT NOT NULL,
					result TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_decisions_created_at ON decisions(created_at)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Link decisions to the analysis they were priced from",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`ALTER TABLE decisions ADD COLUMN analysis_id TEXT REFERENCES analyses(id)`,
				`CREATE INDEX IF NOT EXISTS idx_decisions_analysis_id ON decisions(analysis_id)`,
				`CREATE INDEX IF NOT EXISTS idx_decisions_status ON decisions(status)`,
			)
		},
	},
	{
		Version:     3,
		Description: "Add learned transaction patterns",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS learned_patterns (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					normalized_description TEXT UNIQUE NOT NULL,
					original_description TEXT,
					category TEXT NOT NULL CHECK (category IN ('revenue', 'excluded', 'needs_review')),
					source TEXT NOT NULL,
					confidence INTEGER NOT NULL DEFAULT 50,
					occurrences INTEGER NOT NULL DEFAULT 1,
					manual_override BOOLEAN NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_learned_patterns_confidence ON learned_patterns(confidence)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// SchemaVersion returns the applied schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
