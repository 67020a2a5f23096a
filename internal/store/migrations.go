package store

import (
	"context"
	"database/sql"
)

// schema contains the SQLite DDL for the settings table.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		id         TEXT PRIMARY KEY,
		data       TEXT NOT NULL CHECK (json_valid(data) AND json_type(data) = 'object'),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Listing is newest first.
	`CREATE INDEX IF NOT EXISTS idx_settings_created_at ON settings(created_at DESC, id)`,
}

// migrate executes all schema DDL statements.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
