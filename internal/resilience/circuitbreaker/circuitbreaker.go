// Package circuitbreaker provides circuit breakers for scheduled imports and database probes.
// It uses the github.com/sony/gobreaker library so that a persistently failing feed or
// an unavailable store does not get hammered on every tick.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the gobreaker settings of one breaker.
type Config struct {
	Name string

	// MaxRequests is the number of trial calls let through while half-open.
	MaxRequests uint32

	// Interval resets the closed-state counts. Zero never resets them.
	Interval time.Duration

	// Timeout is the time spent open before the next trial call.
	Timeout time.Duration

	// FailureThreshold trips the breaker once failures/requests reaches it (0.6 = 60%).
	FailureThreshold float64

	// MinRequests is the number of calls seen before the ratio is considered.
	MinRequests uint32
}

// DefaultConfig trips at 60% failures over at least 5 calls and stays open a minute.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// ImportConfig returns configuration for scheduled feed imports.
// Imports run at most a few times per hour, so the counts window spans several
// runs and three consecutive failures are enough to back off for a while.
func ImportConfig() Config {
	return Config{
		Name:             "feed-import",
		MaxRequests:      1,
		Interval:         6 * time.Hour,
		Timeout:          30 * time.Minute,
		FailureThreshold: 1.0,
		MinRequests:      3,
	}
}

// CircuitBreaker is a named gobreaker.CircuitBreaker that logs its state changes.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New builds a breaker tripping on the failure ratio described by cfg.
func New(cfg Config) *CircuitBreaker {
	tripRatio := func(counts gobreaker.Counts) bool {
		if counts.Requests < cfg.MinRequests {
			return false
		}
		return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
	}
	logTransition := func(name string, from, to gobreaker.State) {
		slog.Warn("circuit breaker state changed",
			slog.String("circuit", name),
			slog.String("from", from.String()),
			slog.String("to", to.String()))
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:          cfg.Name,
			MaxRequests:   cfg.MaxRequests,
			Interval:      cfg.Interval,
			Timeout:       cfg.Timeout,
			ReadyToTrip:   tripRatio,
			OnStateChange: logTransition,
		}),
		name: cfg.Name,
	}
}

// Execute calls fn unless the breaker is open, in which case it returns
// gobreaker.ErrOpenState without calling it.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// Do is the typed form of Execute.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	result, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// State reports closed, half-open or open.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the breaker name used in logs.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// IsRejected reports whether err means the breaker refused to run the call.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
