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

	httpAdapter "github.com/lorrc/support-dashboard/internal/adapters/primary/http"
	mw "github.com/lorrc/support-dashboard/internal/adapters/primary/http/middleware"
	"github.com/lorrc/support-dashboard/internal/adapters/secondary/notify"
	"github.com/lorrc/support-dashboard/internal/adapters/secondary/sheets"
	"github.com/lorrc/support-dashboard/internal/config"
	"github.com/lorrc/support-dashboard/internal/core/services"
	"github.com/lorrc/support-dashboard/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"config", cfg.String(),
	)

	// Cancelled on SIGINT/SIGTERM; stops the scheduler and limiter cleanup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Secondary Adapters
	source := sheets.NewCSVSource(sheets.Config{
		URL:       cfg.Source.URL,
		Timeout:   cfg.Source.Timeout,
		UserAgent: cfg.Source.UserAgent,
	}, logger)

	clock := services.SystemClock{}
	notifier := notify.NewFeedNotifier(cfg.Notifications.Capacity, clock, logger)

	// 4. Services (Core)
	cache := services.NewSnapshotCache(source, clock, cfg.Cache.TTL, logger)
	dashboardService := services.NewDashboardService(cache, notifier, clock, logger)
	scheduler := services.NewRefreshScheduler(dashboardService, cfg.Refresh.Interval, cfg.Refresh.OnStartup, logger)

	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		scheduler.Run(ctx)
	}()

	// 5. Initialize Rate Limiters
	var generalRateLimiter, refreshRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		general := mw.DefaultRateLimiterConfig()
		general.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		general.BurstSize = cfg.RateLimit.BurstSize
		generalRateLimiter = mw.NewRateLimiter(ctx, general)

		refresh := mw.RefreshRateLimiterConfig()
		refresh.RequestsPerSecond = cfg.RateLimit.RefreshRPS
		refresh.BurstSize = cfg.RateLimit.RefreshBurst
		refreshRateLimiter = mw.NewRateLimiter(ctx, refresh)
	}

	// 6. Setup Router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		DashboardService:   dashboardService,
		NotificationFeed:   notifier,
		HealthHandler:      httpAdapter.NewHealthHandler(source, dashboardService, cfg.App.Version),
		Logger:             logger,
		PublicURL:          cfg.App.PublicURL,
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		GeneralRateLimiter: generalRateLimiter,
		RefreshRateLimiter: refreshRateLimiter,
	})

	// 7. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Error("server error", "error", err)
		exitCode = 1
		stop()
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		exitCode = 1
	}

	select {
	case <-schedulerDone:
	case <-time.After(5 * time.Second):
		logger.Warn("refresh scheduler did not stop in time")
	}

	logger.Info("server shutdown complete")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
