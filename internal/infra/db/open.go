// Package db opens the relational store backing the job repository and
// bootstraps its schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"jobfeed/internal/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// defaultSQLiteDSN keeps writers waiting on a locked file instead of failing fast.
const defaultSQLiteDSN = "file:jobs.db?_pragma=busy_timeout(5000)"

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Config selects the driver and data source for Open.
type Config struct {
	Driver string
	DSN    string
	Pool   ConnectionConfig
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,               // Maximum number of open connections
		MaxIdleConns:    10,               // Maximum number of idle connections
		ConnMaxLifetime: 1 * time.Hour,    // Maximum lifetime of a connection
		ConnMaxIdleTime: 30 * time.Minute, // Maximum idle time of a connection
	}
}

// LoadConfigFromEnv reads DATABASE_DRIVER, DATABASE_URL and the pool settings.
// The driver defaults to SQLite on a local jobs.db file.
func LoadConfigFromEnv() (Config, error) {
	cfg := Config{
		Driver: os.Getenv("DATABASE_DRIVER"),
		DSN:    os.Getenv("DATABASE_URL"),
		Pool:   getConnectionConfigFromEnv(),
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}

	switch cfg.Driver {
	case DriverSQLite:
		if cfg.DSN == "" {
			cfg.DSN = defaultSQLiteDSN
		}
	case DriverPostgres:
		if cfg.DSN == "" {
			return Config{}, fmt.Errorf("DATABASE_URL not set for driver %q", cfg.Driver)
		}
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q (want %q or %q)", cfg.Driver, DriverSQLite, DriverPostgres)
	}
	return cfg, nil
}

// Open creates and configures a new database connection pool and verifies it
// with a ping. Connection setup is entirely the caller's concern: repositories
// only receive the opened handle.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	pool := cfg.Pool
	if cfg.Driver == DriverSQLite {
		// one connection: a single writer, and in-memory databases stay shared
		pool.MaxOpenConns = 1
		pool.MaxIdleConns = 1
	}
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	slog.Debug("database connection pool configured",
		slog.String("driver", cfg.Driver),
		slog.Int("max_open_conns", pool.MaxOpenConns),
		slog.Int("max_idle_conns", pool.MaxIdleConns),
		slog.Duration("conn_max_lifetime", pool.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", pool.ConnMaxIdleTime))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	return db, nil
}

// getConnectionConfigFromEnv reads the pool settings. Unset or invalid values
// keep the default and log a fallback warning.
func getConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()
	logger := slog.Default()

	cfg.MaxOpenConns = config.Resolve(logger, nil,
		config.LoadEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns, positiveInt))
	cfg.MaxIdleConns = config.Resolve(logger, nil,
		config.LoadEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns, positiveInt))
	cfg.ConnMaxLifetime = config.Resolve(logger, nil,
		config.LoadEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime, config.ValidatePositiveDuration))
	cfg.ConnMaxIdleTime = config.Resolve(logger, nil,
		config.LoadEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime, config.ValidatePositiveDuration))

	return cfg
}

func positiveInt(n int) error {
	return config.ValidateIntRange(n, 1, math.MaxInt32)
}
