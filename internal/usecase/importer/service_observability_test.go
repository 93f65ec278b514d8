package importer_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"jobfeed/internal/domain/entity"
	"jobfeed/internal/observability/logging"
	"jobfeed/internal/observability/metrics"
	"jobfeed/internal/usecase/importer"
)

func TestService_Import_Spans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)))
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	svc := newService(t, newStub(), &namedParser{jobs: parsedJobs})
	_, err := svc.Import(context.Background(), sampleFile(t), "")
	require.NoError(t, err)

	byName := map[string]tracetest.SpanStub{}
	for _, s := range exporter.GetSpans() {
		byName[s.Name] = s
	}
	root, ok := byName["importer.Import"]
	require.True(t, ok, "root span missing")
	for _, stage := range []string{"validate", "select", "parse", "persist"} {
		s, ok := byName[stage]
		require.True(t, ok, "stage span %s missing", stage)
		assert.Equal(t, root.SpanContext.SpanID(), s.Parent.SpanID(), stage)
	}
}

func TestService_Append_FailedStageSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)))
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	repo := newStub()
	repo.err = errDB
	svc := newService(t, repo, &namedParser{jobs: parsedJobs})
	_, err := svc.Append(context.Background(), sampleFile(t), "")
	require.Error(t, err)

	byName := map[string]tracetest.SpanStub{}
	for _, s := range exporter.GetSpans() {
		byName[s.Name] = s
	}
	assert.Equal(t, codes.Error, byName["persist"].Status.Code)
	assert.Equal(t, codes.Error, byName["importer.Append"].Status.Code)
	assert.NotEqual(t, codes.Error, byName["parse"].Status.Code)
}

func TestService_Metrics(t *testing.T) {
	success := testutil.ToFloat64(metrics.ImportsTotal.WithLabelValues(importer.ModeAppend, "success"))
	empty := testutil.ToFloat64(metrics.ImportsTotal.WithLabelValues(importer.ModeAppend, "empty"))
	records := testutil.ToFloat64(metrics.RecordsImportedTotal.WithLabelValues(importer.ModeAppend))
	byExtension := testutil.ToFloat64(metrics.ParserSelectionsTotal.WithLabelValues(importer.TierExtension))

	repo := newStub(entity.Job{Reference: "OLD001"})
	svc := newService(t, repo, &namedParser{jobs: parsedJobs})
	_, err := svc.Append(context.Background(), sampleFile(t), "")
	require.NoError(t, err)

	emptySvc := newService(t, newStub(), &namedParser{})
	_, err = emptySvc.Append(context.Background(), sampleFile(t), "")
	require.NoError(t, err)

	assert.Equal(t, success+1, testutil.ToFloat64(metrics.ImportsTotal.WithLabelValues(importer.ModeAppend, "success")))
	assert.Equal(t, empty+1, testutil.ToFloat64(metrics.ImportsTotal.WithLabelValues(importer.ModeAppend, "empty")))
	assert.Equal(t, records+2, testutil.ToFloat64(metrics.RecordsImportedTotal.WithLabelValues(importer.ModeAppend)))
	assert.Equal(t, byExtension+2, testutil.ToFloat64(metrics.ParserSelectionsTotal.WithLabelValues(importer.TierExtension)))
}

func TestService_LogsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := logging.WithLogger(context.Background(), logger)

	svc := newService(t, newStub(), &namedParser{jobs: parsedJobs})
	_, err := svc.Import(ctx, sampleFile(t), "")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"run_id"`)
	assert.Contains(t, out, `"msg":"import started"`)
	assert.Contains(t, out, `"tier":"extension"`)
	assert.Contains(t, out, `"msg":"import completed"`)
}
