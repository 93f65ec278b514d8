// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the import pipeline metrics:
//   - Import runs by mode and outcome, and their duration
//   - Records imported per mode
//   - Parser selection by detection tier
//   - Repository query durations and the stored job count
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the worker's /metrics endpoint.
//
// Example usage:
//
//	import "jobfeed/internal/observability/metrics"
//
//	func importFile(path string) {
//	    start := time.Now()
//	    // ... parse and persist ...
//	    metrics.RecordImport("import", "success", time.Since(start))
//	    metrics.RecordRecordsImported("import", 42)
//	}
package metrics
