package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"notekit/internal/platform/config"
	"notekit/internal/platform/db"
	"notekit/internal/platform/messaging"
	"notekit/internal/platform/tracing"
	sharedevents "notekit/internal/shared/events"
	"notekit/internal/shared/ident"
	"notekit/notebooks"
	"notekit/notebooks/adapters/eventbus"
	"notekit/notebooks/adapters/identgen"
	"notekit/notebooks/adapters/memory"
	postgresadapter "notekit/notebooks/adapters/postgres"
	sqliteadapter "notekit/notebooks/adapters/sqlite"
	"notekit/notebooks/ports"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type App struct {
	Config config.Config
	Module notebooks.Module
	Bus    *sharedevents.Bus
	Queue  *messaging.SerialQueue
	Logger *slog.Logger

	closers []io.Closer
}

// Build assembles the whole process from configuration: storage driver,
// identifier issuer, broker, bus and the notebooks module. The returned App
// owns the database handle; call Close when done.
func Build(ctx context.Context, version string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// The CLI --verbose flag raises the default level before Build runs;
	// VERBOSE from the environment only ever raises it further.
	if cfg.Verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	logger := slog.Default().With("service", cfg.ServiceName)
	app := &App{Config: cfg, Logger: logger}

	if cfg.TracingEnabled {
		if err := tracing.Init(cfg.ServiceName, version, cfg.TraceFile); err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
	}

	var (
		notebookStore ports.NotebookRepository
		noteStore     ports.NoteRepository
		clock         ports.Clock
	)

	switch cfg.StorageDriver {
	case config.DriverMemory:
		store := memory.NewStore()
		notebookStore, noteStore, clock = store, store, store

	case config.DriverSQLite:
		handle, err := db.ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, handle)
		repo := sqliteadapter.NewRepository(handle.DB)
		if err := repo.Migrate(ctx); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		notebookStore, noteStore, clock = repo, repo, postgresadapter.SystemClock{}

	case config.DriverPostgres:
		pg, err := db.ConnectPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, pg)
		repo := postgresadapter.NewRepository(pg.DB)
		if err := repo.Migrate(ctx); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		notebookStore, noteStore, clock = repo, repo, postgresadapter.SystemClock{}

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	bus := sharedevents.NewBus(messaging.NewBroker(logger), cfg.ServiceName, logger)

	module := notebooks.NewModule(notebooks.Dependencies{
		Notebooks: notebookStore,
		Notes:     noteStore,
		Issuer: identgen.Issuer{
			Notebooks: notebookStore,
			Notes:     noteStore,
			Allocator: ident.Allocator{
				Source:      ident.RandomSource{},
				MaxAttempts: cfg.AllocatorMaxAttempts,
			},
		},
		Events: eventbus.Publisher{Bus: bus},
		Clock:  clock,
		Logger: logger,
	})
	module.Bus = bus

	app.Module = module
	app.Bus = bus
	app.Queue = messaging.NewSerialQueue(cfg.QueueSize)

	logger.Info("app built",
		"event", "bootstrap_app_built",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"storage_driver", cfg.StorageDriver,
	)
	return app, nil
}

func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
