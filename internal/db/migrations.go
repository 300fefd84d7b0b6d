package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: earlier deployments stored found reports with a loose
	// found_id column that mixed item ids and user ids. The split into
	// item_id (lost item being resolved) and found_by (reporting user) is
	// part of the base schema; this backfills the index that predates it.
	`CREATE INDEX IF NOT EXISTS idx_found_reports_item ON found_reports(item_id)`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
