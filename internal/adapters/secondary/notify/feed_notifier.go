package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/lorrc/support-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/support-dashboard/internal/core/errors"
	"github.com/lorrc/support-dashboard/internal/core/ports"
)

// FeedNotifier keeps the most recent notifications in memory so the
// front-end can poll and dismiss them. It implements both ports.Notifier and
// ports.NotificationFeed.
type FeedNotifier struct {
	capacity int
	clock    ports.Clock
	logger   *slog.Logger

	mu    sync.Mutex
	items []*domain.Notification // oldest first
}

var (
	_ ports.Notifier         = (*FeedNotifier)(nil)
	_ ports.NotificationFeed = (*FeedNotifier)(nil)
)

// NewFeedNotifier creates a feed holding at most capacity notifications.
func NewFeedNotifier(capacity int, clock ports.Clock, logger *slog.Logger) *FeedNotifier {
	if capacity < 1 {
		capacity = 1
	}
	return &FeedNotifier{
		capacity: capacity,
		clock:    clock,
		logger:   logger.With("component", "feed_notifier"),
		items:    make([]*domain.Notification, 0, capacity),
	}
}

// Notify appends a notification, evicting the oldest once the feed is full.
func (n *FeedNotifier) Notify(ctx context.Context, params ports.NotificationParams) {
	item := &domain.Notification{
		ID:          uuid.New(),
		Variant:     params.Variant,
		Title:       params.Title,
		Description: params.Description,
		Trigger:     params.Trigger,
		CreatedAt:   n.clock.Now(),
	}

	n.mu.Lock()
	if len(n.items) == n.capacity {
		n.items = append(n.items[:0], n.items[1:]...)
	}
	n.items = append(n.items, item)
	n.mu.Unlock()

	level := slog.LevelInfo
	if item.Variant == domain.VariantDestructive {
		level = slog.LevelWarn
	}
	n.logger.Log(ctx, level, "notification raised",
		"notification_id", item.ID,
		"title", item.Title,
		"trigger", item.Trigger,
	)
}

// List returns undismissed notifications raised after the one with the given
// ID, oldest first. A nil or unknown ID lists the whole feed.
func (n *FeedNotifier) List(_ context.Context, after uuid.UUID) []*domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	start := 0
	if after != uuid.Nil {
		for i, item := range n.items {
			if item.ID == after {
				start = i + 1
				break
			}
		}
	}

	out := make([]*domain.Notification, 0, len(n.items)-start)
	for _, item := range n.items[start:] {
		if item.Dismissed {
			continue
		}
		copied := *item
		out = append(out, &copied)
	}
	return out
}

// Dismiss hides a notification from subsequent listings.
func (n *FeedNotifier) Dismiss(ctx context.Context, id uuid.UUID) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, item := range n.items {
		if item.ID == id {
			item.Dismissed = true
			n.logger.DebugContext(ctx, "notification dismissed", "notification_id", id)
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}
