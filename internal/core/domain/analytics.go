package domain

import (
	"time"

	"github.com/google/uuid"
)

// KPISummary holds the headline numbers of the dashboard.
type KPISummary struct {
	TotalTickets      int
	PendingTickets    int
	CompletedTickets  int
	AvgResolutionDays float64
}

// GroupCount is one bucket of a group-by.
type GroupCount struct {
	Label string
	Count int
}

// TimeSeriesPoint is the number of tickets created on one day and the
// running total up to and including that day.
type TimeSeriesPoint struct {
	Date       time.Time
	Tickets    int
	Cumulative int
}

// DashboardView is everything the dashboard renders, computed from a single
// snapshot.
type DashboardView struct {
	KPIs        KPISummary
	ByTeam      []GroupCount
	ByStatus    []GroupCount
	TimeSeries  []TimeSeriesPoint
	TicketCount int
	LastUpdated time.Time

	// UndatedTickets counts records missing from TimeSeries because their
	// creation timestamp does not parse.
	UndatedTickets int

	SnapshotID uuid.UUID
	Generation uint64
	FetchedAt  time.Time

	Columns []string
	Records []TicketRecord
}

// HasData reports whether the view was built from at least one record.
func (v *DashboardView) HasData() bool {
	return v != nil && len(v.Records) > 0
}
