// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Hikari HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Start the async counter dispatcher.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/hikari/internal/api"
	"github.com/taibuivan/hikari/internal/auth"
	"github.com/taibuivan/hikari/internal/core/bookmark"
	"github.com/taibuivan/hikari/internal/core/chapter"
	"github.com/taibuivan/hikari/internal/core/comic"
	"github.com/taibuivan/hikari/internal/core/comment"
	"github.com/taibuivan/hikari/internal/core/curated"
	"github.com/taibuivan/hikari/internal/core/reference"
	"github.com/taibuivan/hikari/internal/core/stats"
	"github.com/taibuivan/hikari/internal/core/vote"
	"github.com/taibuivan/hikari/internal/platform/config"
	"github.com/taibuivan/hikari/internal/platform/constants"
	"github.com/taibuivan/hikari/internal/platform/counter"
	"github.com/taibuivan/hikari/internal/platform/migration"
	pgstore "github.com/taibuivan/hikari/internal/platform/postgres"
	redisstore "github.com/taibuivan/hikari/internal/platform/redis"
	"github.com/taibuivan/hikari/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Counter Dispatcher ─────────────────────────────────────────────
	// Fire-and-forget stored-procedure calls run off the request path.
	counters := counter.NewDispatcher(pool, log, cfg.CounterQueueSize)
	counters.Start()
	defer counters.Close()

	// ── 7. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(
		auth.NewUserRepository(pool),
		auth.NewSessionStore(rdb),
		jwtSvc,
		log,
	)

	comicService := comic.NewService(comic.NewRepository(pool), counters, log)
	chapterService := chapter.NewService(chapter.NewRepository(pool), counters, log)
	bookmarkService := bookmark.NewService(bookmark.NewRepository(pool), counters, log)
	voteService := vote.NewService(vote.NewRepository(pool), counters, log)
	commentService := comment.NewService(comment.NewRepository(pool), log)
	curatedService := curated.NewService(curated.NewRepository(pool), log)
	referenceService := reference.NewService(reference.NewRepository(pool), log)
	statsService := stats.NewService(stats.NewRepository(pool), log)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg),
		Comic:     comic.NewHandler(comicService),
		Chapter:   chapter.NewHandler(chapterService),
		Curated:   curated.NewHandler(curatedService),
		Bookmark:  bookmark.NewHandler(bookmarkService),
		Vote:      vote.NewHandler(voteService),
		Comment:   comment.NewHandler(commentService),
		Reference: reference.NewHandler(referenceService),
		Stats:     stats.NewHandler(statsService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
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
