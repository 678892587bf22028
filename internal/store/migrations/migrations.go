// Package migrations creates and upgrades the solver service schema.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	up      []string
}

var all = []migration{
	{
		version: 1,
		up: []string{`
			CREATE TABLE IF NOT EXISTS problems (
				id VARCHAR PRIMARY KEY,
				spec VARCHAR NOT NULL,
				submitted_at TIMESTAMP NOT NULL DEFAULT now()
			)`},
	},
	{
		version: 2,
		up: []string{`
			CREATE TABLE IF NOT EXISTS solutions (
				problem_id VARCHAR PRIMARY KEY,
				document VARCHAR NOT NULL,
				solved_at TIMESTAMP NOT NULL DEFAULT now()
			)`},
	},
	{
		// Failed jobs leave a terminal row too: error set, no document.
		version: 3,
		up: []string{
			`ALTER TABLE solutions ALTER COLUMN document DROP NOT NULL`,
			`ALTER TABLE solutions ADD COLUMN error VARCHAR`,
		},
	},
}

// Run applies all pending migrations in order.
func Run(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	for _, m := range all {
		applied, err := isApplied(ctx, db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		for _, stmt := range m.up {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("applying migration %d: %w", m.version, err)
			}
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}
	}
	return nil
}

func isApplied(ctx context.Context, db *sql.DB, version int) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
