package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"jobfeed/internal/resilience/circuitbreaker"
	"jobfeed/internal/resilience/retry"
	"jobfeed/internal/usecase/importer"
)

// Importer runs one import or append of a feed file.
type Importer interface {
	Run(ctx context.Context, mode, path, partner string) (int, error)
}

// Runner executes the configured import on every cron tick.
//
// A run is retried with backoff while it fails on storage only, and the whole
// run goes through a circuit breaker so a feed that keeps failing is skipped
// until the breaker half-opens again.
type Runner struct {
	importer Importer
	cfg      WorkerConfig
	metrics  *WorkerMetrics
	logger   *slog.Logger
	breaker  *circuitbreaker.CircuitBreaker
	retry    retry.Config
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithBreaker replaces the default import circuit breaker.
func WithBreaker(cb *circuitbreaker.CircuitBreaker) RunnerOption {
	return func(r *Runner) { r.breaker = cb }
}

// WithRetry replaces the storage retry policy. The classifier is kept.
func WithRetry(cfg retry.Config) RunnerOption {
	return func(r *Runner) {
		cfg.Retryable = r.retry.Retryable
		r.retry = cfg
	}
}

// NewRunner wires imp to the worker configuration.
func NewRunner(imp Importer, cfg WorkerConfig, metrics *WorkerMetrics, logger *slog.Logger, opts ...RunnerOption) *Runner {
	rc := retry.DBConfig()
	rc.Retryable = isTransientStorageError

	r := &Runner{
		importer: imp,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
		breaker:  circuitbreaker.New(circuitbreaker.ImportConfig()),
		retry:    rc,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOnce performs a single scheduled run and returns the number of jobs imported.
// When the breaker is open the run is skipped and the rejection error returned.
func (r *Runner) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ImportTimeout)
	defer cancel()

	start := time.Now()
	count, err := circuitbreaker.Do(r.breaker, func() (int, error) {
		var n int
		err := retry.WithBackoff(ctx, r.retry, func() error {
			var runErr error
			n, runErr = r.importer.Run(ctx, r.cfg.ImportMode, r.cfg.ImportPath, r.cfg.ImportPartner)
			return runErr
		})
		return n, err
	})
	duration := time.Since(start)

	attrs := []any{
		slog.String("mode", r.cfg.ImportMode),
		slog.String("path", r.cfg.ImportPath),
		slog.Duration("duration", duration),
	}

	switch {
	case circuitbreaker.IsRejected(err):
		r.metrics.RecordJobRun(StatusSkipped)
		r.logger.Warn("scheduled import skipped",
			append(attrs, slog.String("circuit", r.breaker.Name()), slog.Any("error", err))...)
		return 0, err

	case err != nil:
		r.metrics.RecordJobRun(StatusFailure)
		r.metrics.RecordJobDuration(duration.Seconds())
		r.logger.Error("scheduled import failed", append(attrs, slog.Any("error", err))...)
		return 0, err
	}

	r.metrics.RecordJobRun(StatusSuccess)
	r.metrics.RecordJobDuration(duration.Seconds())
	r.metrics.RecordJobsImported(count)
	r.metrics.RecordLastSuccess()
	r.logger.Info("scheduled import completed", append(attrs, slog.Int("jobs", count))...)
	return count, nil
}

// Job adapts RunOnce to a cron job bound to ctx.
func (r *Runner) Job(ctx context.Context) func() {
	return func() {
		_, _ = r.RunOnce(ctx)
	}
}

// isTransientStorageError retries storage faults only. Input problems and
// cancellations would fail the same way on every attempt.
func isTransientStorageError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, importer.ErrStorageFailure)
}
