package notify_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lorrc/support-dashboard/internal/adapters/secondary/notify"
	"github.com/lorrc/support-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/support-dashboard/internal/core/errors"
	"github.com/lorrc/support-dashboard/internal/core/mocks"
	"github.com/lorrc/support-dashboard/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeed(capacity int) (*notify.FeedNotifier, *mocks.FakeClock) {
	clock := mocks.NewFakeClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return notify.NewFeedNotifier(capacity, clock, logger), clock
}

func raise(feed *notify.FeedNotifier, title string) {
	feed.Notify(context.Background(), ports.NotificationParams{
		Variant: domain.VariantDefault,
		Title:   title,
		Trigger: domain.TriggerScheduled,
	})
}

func titles(items []*domain.Notification) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func TestFeedNotifier_NotifyAndList(t *testing.T) {
	ctx := context.Background()
	feed, clock := newFeed(10)

	feed.Notify(ctx, ports.NotificationParams{
		Variant:     domain.VariantDestructive,
		Title:       domain.TitleLoadFailed,
		Description: domain.DescriptionLoadError,
		Trigger:     domain.TriggerManual,
	})
	clock.Advance(time.Minute)
	raise(feed, domain.TitleDataRefreshed)

	items := feed.List(ctx, uuid.Nil)

	require.Len(t, items, 2)
	assert.Equal(t, domain.TitleLoadFailed, items[0].Title)
	assert.Equal(t, domain.VariantDestructive, items[0].Variant)
	assert.Equal(t, domain.TriggerManual, items[0].Trigger)
	assert.NotEqual(t, uuid.Nil, items[0].ID)
	assert.True(t, items[1].CreatedAt.After(items[0].CreatedAt))
}

func TestFeedNotifier_ListAfter(t *testing.T) {
	ctx := context.Background()
	feed, _ := newFeed(10)

	raise(feed, "first")
	raise(feed, "second")
	raise(feed, "third")

	all := feed.List(ctx, uuid.Nil)
	require.Len(t, all, 3)

	assert.Equal(t, []string{"second", "third"}, titles(feed.List(ctx, all[0].ID)))
	assert.Empty(t, feed.List(ctx, all[2].ID))
	assert.Len(t, feed.List(ctx, uuid.New()), 3)
}

func TestFeedNotifier_Capacity(t *testing.T) {
	feed, _ := newFeed(3)

	for i := 1; i <= 5; i++ {
		raise(feed, fmt.Sprintf("n%d", i))
	}

	assert.Equal(t, []string{"n3", "n4", "n5"}, titles(feed.List(context.Background(), uuid.Nil)))
}

func TestFeedNotifier_Dismiss(t *testing.T) {
	ctx := context.Background()
	feed, _ := newFeed(10)

	raise(feed, "keep")
	raise(feed, "drop")
	items := feed.List(ctx, uuid.Nil)

	require.NoError(t, feed.Dismiss(ctx, items[1].ID))
	assert.Equal(t, []string{"keep"}, titles(feed.List(ctx, uuid.Nil)))

	err := feed.Dismiss(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}

func TestFeedNotifier_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	feed, _ := newFeed(10)
	raise(feed, "original")

	items := feed.List(ctx, uuid.Nil)
	items[0].Title = "changed"
	items[0].Dismissed = true

	assert.Equal(t, []string{"original"}, titles(feed.List(ctx, uuid.Nil)))
}
