// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Import run ID propagation
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	import "jobfeed/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started", slog.String("version", "1.0"))
//	}
//
//	func importFile(ctx context.Context) {
//	    ctx, logger := logging.WithRunID(ctx, slog.Default(), logging.NewRunID())
//	    logger.Info("import started")
//	}
package logging
