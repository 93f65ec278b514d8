package circuitbreaker

import (
	"context"
	"database/sql"
	"time"

	"github.com/sony/gobreaker"
)

// DBCircuitBreaker guards database health probes.
// Once the store has failed enough probes in a row, readiness checks report the
// open circuit immediately instead of queueing more pings behind a dead connection.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig opens after 5 failed probes in a row and retries 30 seconds later.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// NewDBCircuitBreaker guards db with DBConfig.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig guards db with cfg.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{cb: New(cfg), db: db}
}

// PingContext verifies the connection through the breaker.
// If the circuit is open, it returns ErrOpenState without touching the database.
func (dcb *DBCircuitBreaker) PingContext(ctx context.Context) error {
	_, err := dcb.cb.Execute(func() (interface{}, error) {
		return nil, dcb.db.PingContext(ctx)
	})
	return err
}

// State reports the probe breaker state.
func (dcb *DBCircuitBreaker) State() gobreaker.State { return dcb.cb.State() }

// IsOpen reports whether probes are currently short-circuited.
func (dcb *DBCircuitBreaker) IsOpen() bool { return dcb.cb.IsOpen() }

// DB returns the guarded handle.
func (dcb *DBCircuitBreaker) DB() *sql.DB { return dcb.db }
