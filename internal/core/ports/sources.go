package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lorrc/support-dashboard/internal/core/domain"
)

// TicketSource defines the port for reading the upstream ticket sheet.
type TicketSource interface {
	Fetch(ctx context.Context) (*domain.TicketSheet, error)
}

// SnapshotCache defines the port for the time-bounded snapshot store.
type SnapshotCache interface {
	// Get returns the cached snapshot while it is fresh and fetches a new one
	// otherwise. On failure the previous snapshot (or an empty one) is
	// returned together with the error.
	Get(ctx context.Context) (*domain.Snapshot, error)
	Invalidate()
	Peek() *domain.Snapshot
}

// Clock abstracts the wall clock so cache expiry can be tested.
type Clock interface {
	Now() time.Time
}

// NotificationParams defines the input for raising a notification.
type NotificationParams struct {
	Variant     domain.NotificationVariant
	Title       string
	Description string
	Trigger     domain.RefreshTrigger
}

// Notifier defines the port for raising user-facing notifications.
type Notifier interface {
	Notify(ctx context.Context, params NotificationParams)
}

// NotificationFeed defines the port for reading and dismissing notifications.
type NotificationFeed interface {
	List(ctx context.Context, after uuid.UUID) []*domain.Notification
	Dismiss(ctx context.Context, id uuid.UUID) error
}
