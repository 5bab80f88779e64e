package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stellaris-server/internal/auth"
	"stellaris-server/internal/galaxy"
	"stellaris-server/internal/generation"
	"stellaris-server/internal/middleware"
	"stellaris-server/internal/server"
	"stellaris-server/internal/shared/config"
	"stellaris-server/internal/shared/database"
	"stellaris-server/internal/shared/logger"
	"stellaris-server/internal/shared/redis"
	"stellaris-server/internal/system"
	"stellaris-server/internal/worker"
	"stellaris-server/migrations"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	logger.Init()

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger := slog.With("component", "main")
	appLogger.Info("Starting Stellaris server",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"worker_pool_size", cfg.Worker.PoolSize,
	)

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Failed to close database", "error", err)
		}
	}()

	var migrationFS fs.FS = migrations.FS
	if cfg.Database.MigrationsPath != "" {
		appLogger.Info("Using migrations from disk", "path", cfg.Database.MigrationsPath)
		migrationFS = os.DirFS(cfg.Database.MigrationsPath)
	}
	if err := db.RunMigrations(ctx, migrationFS); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := redis.Connect(cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Failed to close Redis", "error", err)
		}
	}()

	cache := redis.NewMemoryCache()
	if redisClient != nil {
		cache = redis.NewCache(redisClient, "stellaris:")
	}

	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		return err
	}

	pool := worker.NewPool(cfg.Worker.PoolSize)
	orchestrator := generation.NewOrchestrator(pool)

	systemService := system.NewService(
		system.NewRepository(db, slog.Default()),
		cache,
		cfg.Redis.CacheTTL,
		float32(cfg.Galaxy.SystemScale),
		slog.Default(),
	)
	galaxyService := galaxy.NewService(
		galaxy.NewRepository(db, slog.Default()),
		systemService,
		orchestrator,
		cfg.Galaxy,
		cfg.Worker.PollInterval,
		slog.Default(),
	)

	if err := galaxyService.RecoverInterrupted(ctx); err != nil {
		return err
	}

	hostDone := make(chan struct{})
	go func() {
		defer close(hostDone)
		_ = galaxyService.Run(ctx)
	}()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	go rateLimiter.Run(ctx)

	routes := server.NewRoutes(db, pool, galaxyService, middleware.NewAuth(tokens), slog.Default())
	cors := middleware.NewCORS(cfg.Frontend)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      cors.Middleware(rateLimiter.Middleware(routes.Setup())),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr, "url", cfg.Server.URL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		appLogger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Failed to shut down HTTP server", "error", err)
	}

	stop()
	<-hostDone

	// running generations cannot be cancelled; their galaxies are failed on next start
	appLogger.Info("Waiting for running generations", "pending", galaxyService.Pending(), "workers", pool.Stats())
	pool.Wait()

	appLogger.Info("Server stopped")
	return nil
}
