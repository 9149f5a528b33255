package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lorrc/support-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/support-dashboard/internal/core/errors"
	"github.com/lorrc/support-dashboard/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

const fetchKey = "tickets"

// SnapshotCache keeps the most recent ticket snapshot in memory for a fixed
// TTL. Concurrent misses share a single upstream fetch.
type SnapshotCache struct {
	source ports.TicketSource
	clock  ports.Clock
	ttl    time.Duration
	logger *slog.Logger

	mu         sync.RWMutex
	snapshot   *domain.Snapshot
	generation uint64

	group singleflight.Group
}

var _ ports.SnapshotCache = (*SnapshotCache)(nil)

// NewSnapshotCache creates a cache in front of the given source.
func NewSnapshotCache(source ports.TicketSource, clock ports.Clock, ttl time.Duration, logger *slog.Logger) ports.SnapshotCache {
	return &SnapshotCache{
		source: source,
		clock:  clock,
		ttl:    ttl,
		logger: logger.With("component", "snapshot_cache"),
	}
}

// Get returns the cached snapshot while it is younger than the TTL and
// fetches otherwise.
func (c *SnapshotCache) Get(ctx context.Context) (*domain.Snapshot, error) {
	if snap := c.fresh(); snap != nil {
		return snap, nil
	}

	// The shared fetch must outlive any single waiting caller.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fetchKey, func() (interface{}, error) {
		return c.refresh(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return c.fallback(), ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("joined in-flight fetch")
		}
		return res.Val.(*domain.Snapshot), res.Err
	}
}

// Invalidate drops the cached snapshot so the next Get fetches.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
}

// Peek returns the cached snapshot regardless of age, or nil.
func (c *SnapshotCache) Peek() *domain.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *SnapshotCache) refresh(ctx context.Context) (*domain.Snapshot, error) {
	// Another caller may have committed while we waited for the group.
	if snap := c.fresh(); snap != nil {
		return snap, nil
	}

	startedAt := c.clock.Now()
	sheet, err := c.source.Fetch(ctx)
	if err != nil {
		c.logger.Error("ticket fetch failed", "error", err)
		return c.fallback(), err
	}

	if len(sheet.Records) == 0 {
		c.logger.Warn("ticket fetch returned no records, keeping previous snapshot")
		return c.fallback(), apperrors.ErrEmptyResult
	}

	c.mu.Lock()
	c.generation++
	snap := domain.NewSnapshot(sheet, c.generation, startedAt)
	c.snapshot = snap
	c.mu.Unlock()

	c.logger.Info("snapshot committed",
		"snapshot_id", snap.ID,
		"generation", snap.Generation,
		"records", len(snap.Records),
		"duration", c.clock.Now().Sub(startedAt),
	)
	return snap, nil
}

func (c *SnapshotCache) fresh() *domain.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return nil
	}
	if c.snapshot.Age(c.clock.Now()) >= c.ttl {
		return nil
	}
	return c.snapshot
}

func (c *SnapshotCache) fallback() *domain.Snapshot {
	if snap := c.Peek(); snap != nil {
		return snap
	}
	return domain.EmptySnapshot()
}
