package domain

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is one complete, immutable copy of the ticket sheet together with
// the time its fetch cycle started. Generation increases with every commit
// and is zero for the empty snapshot.
type Snapshot struct {
	ID         uuid.UUID
	Generation uint64
	FetchedAt  time.Time
	Columns    []string
	Records    []TicketRecord
}

// NewSnapshot builds the snapshot committed for a successfully fetched sheet.
func NewSnapshot(sheet *TicketSheet, generation uint64, fetchedAt time.Time) *Snapshot {
	return &Snapshot{
		ID:         uuid.New(),
		Generation: generation,
		FetchedAt:  fetchedAt,
		Columns:    sheet.Columns,
		Records:    sheet.Records,
	}
}

// EmptySnapshot is returned when nothing has been fetched successfully yet.
func EmptySnapshot() *Snapshot {
	return &Snapshot{Records: []TicketRecord{}}
}

// IsEmpty reports whether the snapshot carries no records.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || len(s.Records) == 0
}

// Age returns how long ago the snapshot's fetch cycle started.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// RefreshTrigger names what started a load cycle.
type RefreshTrigger string

const (
	TriggerStartup   RefreshTrigger = "startup"
	TriggerScheduled RefreshTrigger = "scheduled"
	TriggerManual    RefreshTrigger = "manual"
	TriggerView      RefreshTrigger = "view"
)

// IsValid checks if the trigger is one of the known values
func (t RefreshTrigger) IsValid() bool {
	switch t {
	case TriggerStartup, TriggerScheduled, TriggerManual, TriggerView:
		return true
	}
	return false
}

// BypassesCache reports whether the trigger must invalidate the cache first.
func (t RefreshTrigger) BypassesCache() bool {
	return t == TriggerManual
}

// AnnouncesSuccess reports whether a successful load raises a notification.
func (t RefreshTrigger) AnnouncesSuccess() bool {
	return t == TriggerScheduled || t == TriggerManual
}
