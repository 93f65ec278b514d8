// Package app assembles the import pipeline shared by the command-line
// importer and the scheduled worker.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"jobfeed/internal/config"
	"jobfeed/internal/infra/adapter/persistence"
	"jobfeed/internal/infra/db"
	"jobfeed/internal/infra/parser"
	"jobfeed/internal/usecase/importer"
	"jobfeed/internal/usecase/lister"
)

// Options configures New.
type Options struct {
	DB db.Config
	// PartnersConfig is an optional YAML file of partner aliases.
	PartnersConfig string
}

// App holds the opened store and the services built on it.
type App struct {
	DB       *sql.DB
	Driver   string
	Registry *importer.Registry
	Importer *importer.Service
	Lister   *lister.Service
}

// New opens the database, migrates the schema and wires the partner registry,
// selector and services. The caller closes the returned App.
func New(ctx context.Context, logger *slog.Logger, opts Options) (*App, error) {
	conn, err := db.Open(ctx, opts.DB)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	a, err := build(ctx, logger, conn, opts)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, logger *slog.Logger, conn *sql.DB, opts Options) (*App, error) {
	if err := db.MigrateUp(ctx, conn, opts.DB.Driver); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	repo, err := persistence.NewJobRepo(conn, opts.DB.Driver)
	if err != nil {
		return nil, err
	}

	reg := parser.NewRegistry()
	if opts.PartnersConfig != "" {
		aliases, err := config.LoadPartnersConfig(opts.PartnersConfig)
		if err != nil {
			return nil, fmt.Errorf("partners config: %w", err)
		}
		if err := aliases.Apply(reg); err != nil {
			return nil, fmt.Errorf("partners config: %w", err)
		}
		logger.Debug("partner aliases loaded",
			slog.String("path", opts.PartnersConfig),
			slog.Int("count", len(aliases.Partners)))
	}

	return &App{
		DB:       conn,
		Driver:   opts.DB.Driver,
		Registry: reg,
		Importer: importer.NewService(repo, importer.NewSelector(reg)),
		Lister:   lister.NewService(repo),
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	return a.DB.Close()
}
