// Package tracing provides the OpenTelemetry tracer used around import stages.
//
// No exporter is configured here: the process-wide TracerProvider decides
// where spans go (a no-op provider unless the entry point installs one).
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "importer.Import")
//	defer span.End()
package tracing
