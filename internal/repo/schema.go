package repo

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the tasks table if it does not exist. It must run
// before any request is served.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			completed BOOLEAN NOT NULL DEFAULT FALSE
		)
	`)
	return err
}
