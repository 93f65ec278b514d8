// Package observability groups the logging, metrics and tracing helpers used by
// the import pipeline and its entry points.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracer for import stages
//
// Example usage:
//
//	import (
//	    "jobfeed/internal/observability/logging"
//	    "jobfeed/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordRecordsImported("import", 10)
//	}
package observability
