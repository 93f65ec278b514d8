// Package persistence picks the job repository adapter matching the database driver.
package persistence

import (
	"database/sql"
	"fmt"

	"jobfeed/internal/infra/adapter/persistence/postgres"
	"jobfeed/internal/infra/adapter/persistence/sqlite"
	"jobfeed/internal/infra/db"
	"jobfeed/internal/repository"
)

// NewJobRepo returns the adapter for driver (db.DriverSQLite or db.DriverPostgres).
func NewJobRepo(conn *sql.DB, driver string) (repository.JobRepository, error) {
	switch driver {
	case db.DriverSQLite:
		return sqlite.NewJobRepo(conn), nil
	case db.DriverPostgres:
		return postgres.NewJobRepo(conn), nil
	default:
		return nil, fmt.Errorf("no job repository for driver %q", driver)
	}
}
