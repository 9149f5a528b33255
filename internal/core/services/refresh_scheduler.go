package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/lorrc/support-dashboard/internal/core/domain"
	"github.com/lorrc/support-dashboard/internal/core/ports"
)

// RefreshScheduler drives periodic load cycles.
type RefreshScheduler struct {
	dashboard   ports.DashboardService
	interval    time.Duration
	loadOnStart bool
	logger      *slog.Logger
}

// NewRefreshScheduler creates a scheduler that loads every interval and,
// when loadOnStart is set, once immediately.
func NewRefreshScheduler(dashboard ports.DashboardService, interval time.Duration, loadOnStart bool, logger *slog.Logger) *RefreshScheduler {
	return &RefreshScheduler{
		dashboard:   dashboard,
		interval:    interval,
		loadOnStart: loadOnStart,
		logger:      logger.With("component", "refresh_scheduler"),
	}
}

// Run blocks until ctx is cancelled.
func (s *RefreshScheduler) Run(ctx context.Context) {
	s.logger.Info("refresh scheduler started", "interval", s.interval, "load_on_start", s.loadOnStart)

	if s.loadOnStart {
		s.load(ctx, domain.TriggerStartup)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("refresh scheduler stopped")
			return
		case <-ticker.C:
			s.load(ctx, domain.TriggerScheduled)
		}
	}
}

func (s *RefreshScheduler) load(ctx context.Context, trigger domain.RefreshTrigger) {
	if ctx.Err() != nil {
		return
	}
	// Failures are already logged and announced by the dashboard service.
	if _, err := s.dashboard.Load(ctx, trigger); err != nil {
		s.logger.Debug("scheduled load did not complete", "trigger", trigger, "error", err)
	}
}
