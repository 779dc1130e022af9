package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		color_id TEXT NOT NULL DEFAULT '1',
		source TEXT NOT NULL DEFAULT 'local',
		created_at TEXT NOT NULL,
		CHECK (end_at > start_at)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at)`,
	`CREATE INDEX IF NOT EXISTS idx_events_source ON events(source)`,

	`CREATE TABLE IF NOT EXISTS feed_state (
		name TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		etag TEXT NOT NULL DEFAULT '',
		last_modified TEXT NOT NULL DEFAULT '',
		synced_at TEXT,
		event_count INTEGER NOT NULL DEFAULT 0
	)`,
	`ALTER TABLE feed_state ADD COLUMN last_error TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE feed_state ADD COLUMN body BLOB`,
}
