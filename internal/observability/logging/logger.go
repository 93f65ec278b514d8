// Package logging provides structured logging utilities using the standard library's log/slog package.
// It offers helper functions for creating loggers with consistent configuration and context propagation.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// levelFromEnv maps LOG_LEVEL to a slog level. Only "debug" lowers the default.
func levelFromEnv() slog.Level {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewLogger creates a new structured logger with JSON output on stdout.
// The log level can be controlled via the LOG_LEVEL environment variable.
func NewLogger() *slog.Logger {
	logLevel := levelFromEnv()
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: logLevel <= slog.LevelWarn,
	})
	return slog.New(handler)
}

// NewTextLogger creates a human-readable logger writing to w.
// The import CLI passes os.Stderr so that stdout only carries the job listing.
func NewTextLogger(w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	return slog.New(handler)
}

// NewRunID returns a fresh identifier for one import run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID returns a context carrying runID and a logger annotated with it.
// The logger is stored in the returned context as well.
func WithRunID(ctx context.Context, logger *slog.Logger, runID string) (context.Context, *slog.Logger) {
	ctx = context.WithValue(ctx, runIDContextKey, runID)
	l := logger.With(slog.String("run_id", runID))
	return WithLogger(ctx, l), l
}

// RunIDFromContext returns the run identifier stored by WithRunID, or "".
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDContextKey).(string); ok {
		return id
	}
	return ""
}

// FromContext retrieves the logger from the context, or returns the default logger if not found.
// This enables passing loggers through the application via context.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const (
	loggerContextKey contextKey = "logger"
	runIDContextKey  contextKey = "run_id"
)
