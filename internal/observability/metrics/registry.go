// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Import metrics track the import pipeline
var (
	// ImportsTotal counts import runs by mode (import, append) and status
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobfeed_imports_total",
			Help: "Total number of import runs by mode and status",
		},
		[]string{"mode", "status"},
	)

	// ImportDuration measures import run duration in seconds
	ImportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobfeed_import_duration_seconds",
			Help:    "Import run duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	// RecordsImportedTotal counts job records persisted by mode
	RecordsImportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobfeed_records_imported_total",
			Help: "Total number of job records persisted",
		},
		[]string{"mode"},
	)

	// ParserSelectionsTotal counts resolved parsers by detection tier
	ParserSelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobfeed_parser_selections_total",
			Help: "Total number of parser selections by detection tier",
		},
		[]string{"tier"},
	)
)

// Storage metrics
var (
	// JobsTotal tracks the number of jobs in the database after the last write
	JobsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobfeed_jobs_total",
			Help: "Total number of jobs in the database",
		},
	)

	// DBQueryDuration measures repository operation duration in seconds
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobfeed_db_query_duration_seconds",
			Help:    "Repository operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"operation"},
	)
)
