package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies spans emitted by the jobfeed pipeline.
const tracerName = "jobfeed"

// GetTracer returns the tracer for creating spans.
// It is resolved on every call so that a TracerProvider installed after
// package initialisation (in main or in tests) is honoured.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartStage opens a child span for one pipeline stage.
func StartStage(ctx context.Context, stage string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, stage)
}

// EndStage records err on the span, if any, and ends it.
func EndStage(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
