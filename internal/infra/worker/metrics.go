package worker

import (
	"jobfeed/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run statuses reported by RecordJobRun.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusSkipped = "skipped"
)

// WorkerMetrics provides Prometheus metrics for the scheduled importer.
// It embeds ConfigMetrics for configuration monitoring.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp
//   - worker_config_validation_errors_total{field}
//   - worker_config_fallbacks_total{field}
//   - worker_config_fallback_active
//
// Worker-specific metrics:
//   - worker_cron_job_runs_total{status}: success, failure or skipped (breaker open)
//   - worker_cron_job_duration_seconds
//   - worker_cron_job_jobs_imported_total
//   - worker_cron_job_last_success_timestamp
type WorkerMetrics struct {
	*config.ConfigMetrics

	CronJobRunsTotal            *prometheus.CounterVec
	CronJobDurationSeconds      prometheus.Histogram
	CronJobJobsImportedTotal    prometheus.Counter
	CronJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics registers the worker metrics on reg, or on the default
// registerer when reg is nil.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker", reg),

		CronJobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Total number of scheduled import runs by status (success/failure/skipped)",
		}, []string{"status"}),

		CronJobDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of scheduled import runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300, 600}, // 100ms .. 10m
		}),

		CronJobJobsImportedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "worker_cron_job_jobs_imported_total",
			Help: "Total number of job records imported across all scheduled runs",
		}),

		CronJobLastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled import run",
		}),
	}
}

// RecordJobRun increments the run counter for status.
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.CronJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of a run in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.CronJobDurationSeconds.Observe(seconds)
}

// RecordJobsImported adds the records persisted by one run.
func (m *WorkerMetrics) RecordJobsImported(count int) {
	m.CronJobJobsImportedTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.CronJobLastSuccessTimestamp.SetToCurrentTime()
}
