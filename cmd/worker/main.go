package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"jobfeed/internal/app"
	"jobfeed/internal/infra/db"
	workerPkg "jobfeed/internal/infra/worker"
	"jobfeed/internal/observability/logging"
	"jobfeed/internal/resilience/circuitbreaker"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("worker stopped with error", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func run(ctx context.Context, logger *slog.Logger) error {
	// Load worker configuration (fail-open except IMPORT_PATH)
	workerMetrics := workerPkg.NewWorkerMetrics(nil)
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		return fmt.Errorf("load worker configuration: %w", err)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.String("import_path", workerConfig.ImportPath),
		slog.String("import_partner", workerConfig.ImportPartner),
		slog.String("import_mode", workerConfig.ImportMode),
		slog.Duration("import_timeout", workerConfig.ImportTimeout),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.Int("metrics_port", workerConfig.MetricsPort))

	dbConfig, err := db.LoadConfigFromEnv()
	if err != nil {
		return fmt.Errorf("load database configuration: %w", err)
	}
	a, err := app.New(ctx, logger, app.Options{
		DB:             dbConfig,
		PartnersConfig: os.Getenv("PARTNERS_CONFIG"),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	healthServer.AddCheck("database", circuitbreaker.NewDBCircuitBreaker(a.DB).PingContext)

	runner := workerPkg.NewRunner(a.Importer, *workerConfig, workerMetrics, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ignoreServerClosed(healthServer.Start(gctx))
	})
	g.Go(func() error {
		return ignoreServerClosed(serveMetrics(gctx, logger, workerConfig.MetricsPort))
	})
	g.Go(func() error {
		return runCron(gctx, logger, workerConfig, runner, healthServer)
	})
	return g.Wait()
}

// runCron schedules the import job and blocks until ctx is cancelled.
// Running jobs are allowed to finish before it returns.
func runCron(ctx context.Context, logger *slog.Logger, cfg *workerPkg.WorkerConfig, runner *workerPkg.Runner, healthServer *workerPkg.HealthServer) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	cronLogger := cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	if _, err := c.AddFunc(cfg.CronSchedule, runner.Job(ctx)); err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	if cfg.RunOnStart {
		logger.Info("running initial import")
		_, _ = runner.RunOnce(ctx)
	}

	c.Start()
	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", loc.String()))

	<-ctx.Done()

	healthServer.SetReady(false)
	logger.Info("waiting for running import to finish")
	<-c.Stop().Done()
	return nil
}

func ignoreServerClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
