package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"jobfeed/internal/domain/entity"
	"jobfeed/internal/observability/logging"
	"jobfeed/internal/observability/metrics"
	"jobfeed/internal/observability/tracing"
	"jobfeed/internal/repository"
)

// Import modes.
const (
	ModeImport = "import"
	ModeAppend = "append"
)

// Service is the import orchestrator.
// Each call runs validate, select, parse and persist sequentially; every
// failure is returned to the caller with the store left as it was.
type Service struct {
	Repo     repository.JobRepository
	Selector *Selector
}

// NewService creates an import Service.
func NewService(repo repository.JobRepository, selector *Selector) *Service {
	return &Service{Repo: repo, Selector: selector}
}

// Import replaces the stored jobs with the content of path.
// A file that parses to zero jobs fails with ErrNoRecordsFound.
// Returns the number of jobs stored.
func (s *Service) Import(ctx context.Context, path, partner string) (int, error) {
	return s.run(ctx, ModeImport, path, partner)
}

// Append adds the content of path to the stored jobs.
// A file that parses to zero jobs is a no-op returning 0.
func (s *Service) Append(ctx context.Context, path, partner string) (int, error) {
	return s.run(ctx, ModeAppend, path, partner)
}

// Run dispatches to Import or Append by mode.
func (s *Service) Run(ctx context.Context, mode, path, partner string) (int, error) {
	switch mode {
	case ModeImport, ModeAppend:
		return s.run(ctx, mode, path, partner)
	default:
		return 0, fmt.Errorf("unknown import mode %q", mode)
	}
}

// TotalJobs returns the number of stored jobs.
func (s *Service) TotalJobs(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w: %w", ErrStorageFailure, err)
	}
	return n, nil
}

// AllJobs returns every stored job, newest publication text first.
func (s *Service) AllJobs(ctx context.Context) ([]entity.Job, error) {
	jobs, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w: %w", ErrStorageFailure, err)
	}
	return jobs, nil
}

// ClearAllJobs deletes every stored job.
func (s *Service) ClearAllJobs(ctx context.Context) error {
	if err := s.Repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear jobs: %w: %w", ErrStorageFailure, err)
	}
	metrics.UpdateJobsTotal(0)
	return nil
}

func (s *Service) run(ctx context.Context, mode, path, partner string) (count int, err error) {
	start := time.Now()
	ctx, logger := logging.WithRunID(ctx, logging.FromContext(ctx), logging.NewRunID())

	ctx, span := tracing.GetTracer().Start(ctx, "importer."+spanSuffix(mode))
	span.SetAttributes(
		attribute.String("import.mode", mode),
		attribute.String("import.path", path),
		attribute.String("import.partner", partner),
	)
	status := "success"
	defer func() {
		if err != nil {
			status = "failure"
		}
		span.SetAttributes(attribute.Int("import.count", count))
		tracing.EndStage(span, err)
		metrics.RecordImport(mode, status, time.Since(start))
	}()

	logger.Info("import started",
		slog.String("mode", mode),
		slog.String("path", path),
		slog.String("partner", partner))

	if err = stage(ctx, "validate", func(context.Context) error {
		return validateFile(path)
	}); err != nil {
		logger.Warn("import failed", slog.String("stage", "validate"), slog.Any("error", err))
		return 0, err
	}

	var parser Parser
	if err = stage(ctx, "select", func(context.Context) error {
		var tier string
		var serr error
		parser, tier, serr = s.Selector.Select(path, partner)
		if serr == nil {
			logger.Info("parser selected", slog.String("tier", tier))
		}
		return serr
	}); err != nil {
		logger.Warn("import failed", slog.String("stage", "select"), slog.Any("error", err))
		return 0, err
	}

	var jobs []entity.Job
	if err = stage(ctx, "parse", func(context.Context) error {
		var perr error
		jobs, perr = parser.Parse(path)
		if perr != nil {
			return fmt.Errorf("parse %s: %w", path, perr)
		}
		return validateJobs(jobs)
	}); err != nil {
		logger.Warn("import failed", slog.String("stage", "parse"), slog.Any("error", err))
		return 0, err
	}
	logger.Info("jobs parsed", slog.Int("count", len(jobs)))

	if len(jobs) == 0 {
		if mode == ModeAppend {
			status = "empty"
			logger.Info("nothing to append")
			return 0, nil
		}
		err = fmt.Errorf("%w: %s", ErrNoRecordsFound, path)
		logger.Warn("import failed", slog.String("stage", "parse"), slog.Any("error", err))
		return 0, err
	}

	if err = stage(ctx, "persist", func(ctx context.Context) error {
		var perr error
		if mode == ModeImport {
			_, perr = s.Repo.ReplaceAll(ctx, jobs)
		} else {
			_, perr = s.Repo.SaveAll(ctx, jobs)
		}
		if perr != nil {
			return fmt.Errorf("%w: %w", ErrStorageFailure, perr)
		}
		return nil
	}); err != nil {
		logger.Error("import failed", slog.String("stage", "persist"), slog.Any("error", err))
		return 0, err
	}

	metrics.RecordRecordsImported(mode, len(jobs))
	if total, cerr := s.Repo.Count(ctx); cerr == nil {
		metrics.UpdateJobsTotal(total)
	} else {
		logger.Warn("failed to refresh jobs total", slog.Any("error", cerr))
	}

	logger.Info("import completed",
		slog.Int("persisted", len(jobs)),
		slog.Duration("duration", time.Since(start)))
	return len(jobs), nil
}

// stage runs fn inside a child span named after the pipeline stage.
func stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := tracing.StartStage(ctx, name)
	err := fn(ctx)
	tracing.EndStage(span, err)
	return err
}

func spanSuffix(mode string) string {
	if mode == ModeAppend {
		return "Append"
	}
	return "Import"
}

// validateFile checks that path is an existing, readable, non-empty regular file.
func validateFile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: path is required", ErrInvalidFile)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: file not found: %s", ErrInvalidFile, path)
		}
		return fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidFile, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: file is empty: %s", ErrInvalidFile, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: file is not readable: %w", ErrInvalidFile, err)
	}
	_ = f.Close()
	return nil
}

func validateJobs(jobs []entity.Job) error {
	for i, j := range jobs {
		if err := j.Validate(); err != nil {
			return fmt.Errorf("%w: job %d: %w", ErrMalformedInput, i, err)
		}
	}
	return nil
}
