package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"jobfeed/internal/pkg/config"
	"jobfeed/internal/usecase/importer"
)

// ErrImportPathRequired is returned when IMPORT_PATH is not set.
var ErrImportPathRequired = errors.New("IMPORT_PATH is required")

// WorkerConfig holds the configuration for the scheduled importer.
//
// Every optional field falls back to its default when the environment value
// is invalid. Only ImportPath has no default.
type WorkerConfig struct {
	// CronSchedule is the 5-field cron expression driving import runs.
	// Default: "0 * * * *" (hourly)
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "UTC"
	Timezone string

	// ImportPath is the feed file picked up on every run.
	ImportPath string

	// ImportPartner forces a partner parser. Empty means auto-detect.
	ImportPartner string

	// ImportMode is importer.ModeImport (replace) or importer.ModeAppend (merge).
	// Default: "import"
	ImportMode string

	// ImportTimeout bounds a single run.
	// Default: 10 minutes
	ImportTimeout time.Duration

	// RunOnStart triggers one run right after startup, before the first tick.
	// Default: false
	RunOnStart bool

	// HealthPort serves /health and /health/ready.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int

	// MetricsPort serves /metrics.
	// Range: 1024-65535
	// Default: 9090
	MetricsPort int
}

// DefaultConfig returns a WorkerConfig with default values and no ImportPath.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:  "0 * * * *",
		Timezone:      "UTC",
		ImportMode:    importer.ModeImport,
		ImportTimeout: 10 * time.Minute,
		HealthPort:    9091,
		MetricsPort:   9090,
	}
}

// Validate checks every field and reports all problems at once.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if c.ImportPath == "" {
		errs = append(errs, ErrImportPathRequired)
	}
	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateMode(c.ImportMode); err != nil {
		errs = append(errs, fmt.Errorf("import mode: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.ImportTimeout); err != nil {
		errs = append(errs, fmt.Errorf("import timeout: %w", err))
	}
	if err := validateServerPort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := validateServerPort(c.MetricsPort); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}
	if c.HealthPort == c.MetricsPort {
		errs = append(errs, fmt.Errorf("health and metrics ports must differ (both %d)", c.HealthPort))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration from the environment.
//
// Invalid optional values fall back to DefaultConfig, with a warning log and
// a fallback metric per field. A missing IMPORT_PATH is the only error.
//
// Environment variables:
//   - IMPORT_CRON_SCHEDULE, WORKER_TIMEZONE
//   - IMPORT_PATH, IMPORT_PARTNER, IMPORT_MODE, IMPORT_TIMEOUT, IMPORT_RUN_ON_START
//   - WORKER_HEALTH_PORT, METRICS_PORT
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	var cm *config.ConfigMetrics
	if metrics != nil {
		cm = metrics.ConfigMetrics
		cm.SetFallbackActive(false)
	}

	cfg := DefaultConfig()

	cfg.CronSchedule = config.Resolve(logger, cm,
		config.LoadEnvWithFallback("IMPORT_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule))
	cfg.Timezone = config.Resolve(logger, cm,
		config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone))
	cfg.ImportPath = config.LoadEnvString("IMPORT_PATH", "")
	cfg.ImportPartner = config.LoadEnvString("IMPORT_PARTNER", "")
	cfg.ImportMode = config.Resolve(logger, cm,
		config.LoadEnvWithFallback("IMPORT_MODE", cfg.ImportMode, validateMode))
	cfg.ImportTimeout = config.Resolve(logger, cm,
		config.LoadEnvDuration("IMPORT_TIMEOUT", cfg.ImportTimeout, config.ValidatePositiveDuration))
	cfg.RunOnStart = config.Resolve(logger, cm,
		config.LoadEnvBool("IMPORT_RUN_ON_START", cfg.RunOnStart))
	cfg.HealthPort = config.Resolve(logger, cm,
		config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, validateServerPort))
	cfg.MetricsPort = config.Resolve(logger, cm,
		config.LoadEnvInt("METRICS_PORT", cfg.MetricsPort, validateServerPort))

	if cm != nil {
		cm.RecordLoadTimestamp()
	}

	if cfg.ImportPath == "" {
		return nil, ErrImportPathRequired
	}
	return &cfg, nil
}

var validateMode = config.ValidateOneOf(importer.ModeImport, importer.ModeAppend)

func validateServerPort(port int) error {
	return config.ValidateIntRange(port, 1024, 65535)
}
