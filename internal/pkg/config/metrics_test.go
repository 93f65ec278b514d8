package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigMetrics_Names(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewConfigMetrics("naming_test", reg)

	m.RecordLoadTimestamp()
	m.RecordFallback("IMPORT_MODE")
	m.RecordValidationError("IMPORT_MODE")

	families, err := reg.Gather()
	assert.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"naming_test_config_load_timestamp",
		"naming_test_config_validation_errors_total",
		"naming_test_config_fallbacks_total",
		"naming_test_config_fallback_active",
	}, names)
}

func TestConfigMetrics_Counters(t *testing.T) {
	m := NewConfigMetrics("counter_test", prometheus.NewRegistry())

	m.RecordFallback("A")
	m.RecordFallback("A")
	m.RecordFallback("B")
	m.RecordValidationError("A")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("A")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("B")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("A")))
}

func TestConfigMetrics_SetFallbackActive(t *testing.T) {
	m := NewConfigMetrics("active_test", prometheus.NewRegistry())

	m.SetFallbackActive(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackActive))

	m.SetFallbackActive(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbackActive))
}

func TestNewConfigMetrics_DuplicatePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewConfigMetrics("dup_test", reg)

	assert.Panics(t, func() { NewConfigMetrics("dup_test", reg) })
}
