// Package main is the entry point for the Kuzenim API server.
// It loads configuration, connects to services, sets up routing, starts the
// like reconciliation job and runs the HTTP server with graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kuzenim/internal/cache"
	"kuzenim/internal/category"
	"kuzenim/internal/config"
	"kuzenim/internal/database"
	"kuzenim/internal/engagement"
	"kuzenim/internal/handlers"
	"kuzenim/internal/menu"
	"kuzenim/internal/middleware"
	"kuzenim/internal/router"
	"kuzenim/internal/store"
)

func main() {
	// Load configuration from the environment (and .env, if present).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	ctx := context.Background()

	// Connect to PostgreSQL.
	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed a sample category tree in development (no-op if data exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (shared rate limit counters and job lock).
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize data stores and services.
	categoryStore := store.NewCategoryStore(db)
	articleStore := store.NewArticleStore(db)
	likeStore := store.NewLikeStore(db)

	categories := category.NewService(categoryStore)
	menus := menu.NewProjector(categoryStore)
	ledger := engagement.NewLedger(articleStore, likeStore)

	// Like endpoints are throttled per client through Valkey, with an
	// in-process fallback when Valkey is unreachable.
	likeLimiter := middleware.NewRateLimiter(
		cache.NewWindowLimiter(valkeyClient, "like", cfg.LikeRateLimit, cfg.LikeRateWindow),
		cfg.LikeRateLimit, cfg.LikeRateWindow,
	)
	defer likeLimiter.Stop()

	// Background counter repair, one replica at a time.
	jobCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	if cfg.ReconcileInterval > 0 {
		reconciler := engagement.NewReconciler(ledger, cache.NewLocker(valkeyClient), cfg.ReconcileInterval)
		go reconciler.Run(jobCtx)
	} else {
		slog.Warn("like reconciliation disabled")
	}

	// Create handler groups and the router.
	adminHandlers := handlers.NewAdmin(categories, menus, ledger, cfg.IsDev())
	publicHandlers := handlers.NewPublic(categories, menus, ledger, cfg.IsDev())
	r := router.New(adminHandlers, publicHandlers, []byte(cfg.JWTSecret), likeLimiter)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	stopJobs()

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
