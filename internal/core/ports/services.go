package ports

import (
	"context"

	"github.com/lorrc/support-dashboard/internal/core/domain"
)

// DashboardService defines the core operations behind the dashboard page.
type DashboardService interface {
	// Load runs one load cycle. A manual trigger invalidates the cache first.
	Load(ctx context.Context, trigger domain.RefreshTrigger) (*domain.DashboardView, error)
	// Current returns the current view, loading it if none exists yet.
	Current(ctx context.Context) (*domain.DashboardView, error)
	Tickets(ctx context.Context, filter domain.TicketFilter) (*domain.TicketTable, error)
	Export(ctx context.Context) (*domain.CSVExport, error)
	Share(ctx context.Context, pageURL string) domain.SharePayload
	// View returns the current view without loading; nil before the first
	// successful load.
	View() *domain.DashboardView
	IsRefreshing() bool
}
