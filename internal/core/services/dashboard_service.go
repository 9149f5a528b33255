package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lorrc/support-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/support-dashboard/internal/core/errors"
	"github.com/lorrc/support-dashboard/internal/core/ports"
)

// DashboardService owns the dashboard view and runs load cycles against the
// snapshot cache.
type DashboardService struct {
	cache    ports.SnapshotCache
	notifier ports.Notifier
	clock    ports.Clock
	logger   *slog.Logger

	mu   sync.RWMutex
	view *domain.DashboardView

	loading atomic.Int32
}

var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	cache ports.SnapshotCache,
	notifier ports.Notifier,
	clock ports.Clock,
	logger *slog.Logger,
) ports.DashboardService {
	return &DashboardService{
		cache:    cache,
		notifier: notifier,
		clock:    clock,
		logger:   logger.With("component", "dashboard_service"),
	}
}

// Load runs one load cycle and returns the resulting view. On failure the
// view is the last good one (or an empty view) and the error says why.
func (s *DashboardService) Load(ctx context.Context, trigger domain.RefreshTrigger) (*domain.DashboardView, error) {
	if !trigger.IsValid() {
		return nil, apperrors.ErrInvalidRefreshTrigger
	}

	s.loading.Add(1)
	defer s.loading.Add(-1)

	if trigger.BypassesCache() {
		s.cache.Invalidate()
	}

	snap, err := s.cache.Get(ctx)
	if err == nil && snap.IsEmpty() {
		err = apperrors.ErrEmptyResult
	}

	switch {
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		// The caller left; the shared fetch carries on and reports its own outcome.
		s.logger.Debug("load abandoned by caller", "trigger", trigger, "error", err)
		return s.applyStale(snap), err

	case errors.Is(err, apperrors.ErrEmptyResult):
		s.logger.Warn("load returned no data", "trigger", trigger)
		s.notify(ctx, trigger, domain.VariantDestructive, domain.TitleNoData, domain.DescriptionNoData)
		return s.applyStale(snap), err

	case err != nil:
		s.logger.Error("load failed", "trigger", trigger, "error", err)
		s.notify(ctx, trigger, domain.VariantDestructive, domain.TitleLoadFailed, domain.DescriptionLoadError)
		return s.applyStale(snap), err
	}

	view := s.apply(snap, true)

	s.logger.Info("dashboard loaded",
		"trigger", trigger,
		"snapshot_id", snap.ID,
		"generation", snap.Generation,
		"tickets", view.TicketCount,
	)
	if trigger.AnnouncesSuccess() {
		s.notify(ctx, trigger, domain.VariantDefault, domain.TitleDataRefreshed,
			fmt.Sprintf("Updated with %d tickets", len(snap.Records)))
	}

	return view, nil
}

// Current returns the current view, running the initial load if needed.
func (s *DashboardService) Current(ctx context.Context) (*domain.DashboardView, error) {
	if view := s.currentView(); view != nil {
		return view, nil
	}
	return s.Load(ctx, domain.TriggerView)
}

// Tickets filters the rows of the current view.
func (s *DashboardService) Tickets(ctx context.Context, filter domain.TicketFilter) (*domain.TicketTable, error) {
	if len(filter.Search) > domain.MaxSearchLength {
		return nil, apperrors.ErrSearchTooLong
	}

	view, err := s.Current(ctx)
	if err != nil && !view.HasData() {
		return nil, err
	}

	return domain.BuildTicketTable(view.Records, filter), nil
}

// Export renders the rows of the current view as CSV.
func (s *DashboardService) Export(ctx context.Context) (*domain.CSVExport, error) {
	view, err := s.Current(ctx)
	if !view.HasData() {
		if err != nil {
			return nil, err
		}
		return nil, apperrors.ErrNoData
	}

	export, err := domain.BuildExport(view, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("render export: %w", err)
	}

	s.logger.Info("tickets exported", "file", export.FileName, "rows", export.Rows)
	return export, nil
}

// Share builds the share payload for the dashboard page.
func (s *DashboardService) Share(_ context.Context, pageURL string) domain.SharePayload {
	return domain.NewSharePayload(pageURL)
}

// View returns the current view without loading, or nil before the first
// successful load.
func (s *DashboardService) View() *domain.DashboardView {
	return s.currentView()
}

// IsRefreshing reports whether a load cycle is in progress.
func (s *DashboardService) IsRefreshing() bool {
	return s.loading.Load() > 0
}

func (s *DashboardService) currentView() *domain.DashboardView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// apply installs the view for snap unless a newer generation is already
// shown. succeeded marks a completed load, which bumps LastUpdated even when
// the snapshot is unchanged.
func (s *DashboardService) apply(snap *domain.Snapshot, succeeded bool) *domain.DashboardView {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if current := s.view; current != nil {
		if snap.Generation < current.Generation {
			return current
		}
		if snap.Generation == current.Generation && snap.ID == current.SnapshotID {
			if succeeded {
				updated := *current
				updated.LastUpdated = now
				s.view = &updated
			}
			return s.view
		}
	}

	s.view = domain.BuildDashboard(snap, now)
	return s.view
}

// applyStale handles the snapshot returned next to an error. A previously
// committed snapshot newer than the view is still shown.
func (s *DashboardService) applyStale(snap *domain.Snapshot) *domain.DashboardView {
	if !snap.IsEmpty() {
		return s.apply(snap, false)
	}
	if view := s.currentView(); view != nil {
		return view
	}
	return domain.BuildDashboard(nil, s.clock.Now())
}

func (s *DashboardService) notify(ctx context.Context, trigger domain.RefreshTrigger, variant domain.NotificationVariant, title, description string) {
	s.notifier.Notify(ctx, ports.NotificationParams{
		Variant:     variant,
		Title:       title,
		Description: description,
		Trigger:     trigger,
	})
}
