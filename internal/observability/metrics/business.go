package metrics

import "time"

// RecordImport records the outcome and duration of one import run.
// Mode is "import" or "append"; status is "success", "empty" or "failure".
func RecordImport(mode, status string, duration time.Duration) {
	ImportsTotal.WithLabelValues(mode, status).Inc()
	ImportDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordRecordsImported adds the number of persisted records for a mode.
func RecordRecordsImported(mode string, count int) {
	RecordsImportedTotal.WithLabelValues(mode).Add(float64(count))
}

// RecordParserSelection records which detection tier resolved the parser.
func RecordParserSelection(tier string) {
	ParserSelectionsTotal.WithLabelValues(tier).Inc()
}

// UpdateJobsTotal updates the total count of jobs in the database.
func UpdateJobsTotal(count int64) {
	JobsTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a repository operation.
// Operation should describe the query type (e.g., "find_all", "save_all").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
