// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Recetario HTTP API server.
//
// # Startup Sequence
//
//  1. Load configuration from environment variables.
//  2. Initialize structured logger.
//  3. Connect to PostgreSQL (pgxpool) and run migrations.
//  4. Pick the rate limiter (Redis when configured).
//  5. Open the image store.
//  6. Wire domain services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/taibuivan/recetario/internal/api"
	"github.com/taibuivan/recetario/internal/core/recipe"
	"github.com/taibuivan/recetario/internal/core/taxonomy"
	"github.com/taibuivan/recetario/internal/platform/config"
	"github.com/taibuivan/recetario/internal/platform/constants"
	"github.com/taibuivan/recetario/internal/platform/logging"
	"github.com/taibuivan/recetario/internal/platform/middleware"
	"github.com/taibuivan/recetario/internal/platform/migration"
	"github.com/taibuivan/recetario/internal/platform/objectstore"
	pgstore "github.com/taibuivan/recetario/internal/platform/postgres"
	redisstore "github.com/taibuivan/recetario/internal/platform/redis"
	"github.com/taibuivan/recetario/internal/platform/sec"
	"github.com/taibuivan/recetario/internal/web"
)

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	log, closeLog := logging.New(logging.Options{
		App:        constants.AppName,
		Debug:      cfg.Debug,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxFiles,
	})
	defer closeLog()
	slog.SetDefault(log)

	log.Info("[Recetario] service_initializing",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("version", constants.AppVersion),
	)

	// Root context for background workers; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	if cfg.AutoMigrate {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	}

	// ── 4. Rate Limiter ───────────────────────────────────────────────────
	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}

	var limiter middleware.Limiter = middleware.NewMemoryLimiter(rootCtx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		limiter = redisstore.NewFixedWindowLimiter(rdb, constants.RedisPrefixRateLimit, constants.RateLimitPerWindow, constants.RateLimitWindow)
		health.CheckCache = redisstore.Checker(rdb)
	}
	log.Info("rate_limiter_selected", slog.String("backend", limiter.Name()))

	// ── 5. Image Store ────────────────────────────────────────────────────
	images, mediaHandler, err := objectstore.Open(startupCtx, cfg)
	must(log, err, "open image store")
	log.Info("image_store_opened", slog.String("driver", images.Name()))

	// ── 6. Auth ───────────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	taxonomyService := taxonomy.NewService(taxonomy.NewPostgresRepository(pool), log)
	recipeService := recipe.NewService(recipe.NewPostgresRepository(pool), taxonomyService.Expander(), images, log)

	liveness, readiness := api.NewHealthHandlers(health, log)
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Taxonomy:  taxonomy.NewHandler(taxonomyService),
		Recipe:    recipe.NewHandler(recipeService, cfg.MaxUploadBytes),
		Web:       web.NewHandler(recipeService, taxonomyService, log),
		Media:     mediaHandler,
	}

	server := api.NewServer(cfg, log, tokens, limiter, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
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
// Only startup wiring calls it.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
