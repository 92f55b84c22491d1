// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the myapi HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env when present).
//  3. Connect to PostgreSQL twice: pgxpool and database/sql.
//  4. Run database migrations (idempotent).
//  5. Wire sessions, mappers, services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/taibuivan/myapi/internal/api"
	"github.com/taibuivan/myapi/internal/core/actor"
	"github.com/taibuivan/myapi/internal/platform/config"
	"github.com/taibuivan/myapi/internal/platform/constants"
	"github.com/taibuivan/myapi/internal/platform/metrics"
	"github.com/taibuivan/myapi/internal/platform/migration"
	pgstore "github.com/taibuivan/myapi/internal/platform/postgres"
	"github.com/taibuivan/myapi/internal/platform/sqldb"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("dotenv_load_failed", slog.Any("error", err))
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("database_host", cfg.Database.Host),
	)

	// Root context for startup, bounded so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// Lives as long as the process; cancelled on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.Database, log)
	must(log, err, "connect to postgres pool")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	db, err := sqldb.Open(startupCtx, cfg.Database, log)
	must(log, err, "connect to postgres via database/sql")
	defer func() {
		log.Info("closing sql database")
		if cerr := db.Close(); cerr != nil {
			log.Error("sql database close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	if cfg.MigrateOnStart {
		must(log, migration.RunUp(cfg.Database.URL(), log), "run migrations")
	}

	// ── 5. Metrics ────────────────────────────────────────────────────────
	registry := metrics.New()
	registry.RegisterPgxPool(pool)
	registry.RegisterSQLDB(db.DB, constants.AppName)

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers([]api.Check{
		{Name: "postgres_pool", Ping: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		{Name: "postgres_sql", Ping: func(ctx context.Context) error { return sqldb.Ping(ctx, db) }},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	sqlMapper := actor.NewSQLMapper(sqldb.NewSessions(db, log))
	pgxMapper := actor.NewPostgresMapper(pgstore.NewSessions(pool, log))

	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Actors:      actor.NewHandler(actor.NewService(sqlMapper, log)),
		AsyncActors: actor.NewHandler(actor.NewService(pgxMapper, log)),
		Metrics:     registry,
	}

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(appCtx, cfg, log, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the process-wide JSON logger tagged with the app name.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
