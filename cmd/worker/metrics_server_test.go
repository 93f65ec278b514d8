package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobfeed/internal/observability/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandler_ExposesImportMetrics(t *testing.T) {
	metrics.RecordParserSelection("content")

	rec := httptest.NewRecorder()
	newMetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jobfeed_parser_selections_total")
}

func TestServeMetrics_GracefulShutdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())

	errChan := make(chan error, 1)
	go func() { errChan <- serveMetrics(ctx, logger, 19190) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://localhost:19190/metrics")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-errChan:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(10 * time.Second):
		t.Fatal("shutdown timeout")
	}
}

func TestIgnoreServerClosed(t *testing.T) {
	assert.NoError(t, ignoreServerClosed(http.ErrServerClosed))
	assert.NoError(t, ignoreServerClosed(nil))
	assert.EqualError(t, ignoreServerClosed(io.ErrUnexpectedEOF), io.ErrUnexpectedEOF.Error())
}
