package db

import (
	"context"
	"database/sql"
	"fmt"
)

var sqliteSchema = []string{
	`
CREATE TABLE IF NOT EXISTS job (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    reference    TEXT NOT NULL DEFAULT '',
    title        TEXT NOT NULL DEFAULT '',
    description  TEXT NOT NULL DEFAULT '',
    url          TEXT NOT NULL DEFAULT '',
    company_name TEXT NOT NULL DEFAULT '',
    publication  TEXT NOT NULL DEFAULT ''
)`,
	// ORDER BY publication DESC is the only read path
	`CREATE INDEX IF NOT EXISTS idx_job_publication ON job(publication DESC)`,
}

var postgresSchema = []string{
	`
CREATE TABLE IF NOT EXISTS job (
    id           SERIAL PRIMARY KEY,
    reference    TEXT NOT NULL DEFAULT '',
    title        TEXT NOT NULL DEFAULT '',
    description  TEXT NOT NULL DEFAULT '',
    url          TEXT NOT NULL DEFAULT '',
    company_name TEXT NOT NULL DEFAULT '',
    publication  TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS idx_job_publication ON job(publication COLLATE "C" DESC)`,
}

// MigrateUp creates the job table and its index for the given driver.
// Statements are idempotent; running it on an existing schema is a no-op.
func MigrateUp(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case DriverSQLite:
		stmts = sqliteSchema
	case DriverPostgres:
		stmts = postgresSchema
	default:
		return fmt.Errorf("MigrateUp: unsupported driver %q", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
