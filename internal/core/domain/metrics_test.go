package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/lorrc/support-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []domain.TicketRecord {
	return []domain.TicketRecord{
		{ID: "T-1", Status: "Resolved", AssignedTeam: "Tier 1", CreatedAt: "2024-01-01", ResolvedAt: "2024-01-03"},
		{ID: "T-2", Status: "Open", AssignedTeam: "Tier 2", CreatedAt: "2024-01-02"},
		{ID: "T-3", Status: "resolved", AssignedTeam: "Tier 1", CreatedAt: "2024-01-02T06:00:00Z", ResolvedAt: "2024-01-02T18:00:00Z"},
		{ID: "T-4", Status: "In Progress", CreatedAt: "2024-01-05"},
		{ID: "T-4", Status: "", AssignedTeam: "Tier 2", CreatedAt: "2024-01-05T23:59:59Z"},
	}
}

func TestComputeKPIs_Scenario(t *testing.T) {
	records := []domain.TicketRecord{
		{Status: "Resolved", CreatedAt: "2024-01-01", ResolvedAt: "2024-01-03"},
		{Status: "Open", CreatedAt: "2024-01-02"},
	}

	kpis := domain.ComputeKPIs(records)

	assert.Equal(t, domain.KPISummary{
		TotalTickets:      2,
		PendingTickets:    1,
		CompletedTickets:  1,
		AvgResolutionDays: 2.0,
	}, kpis)
}

func TestComputeKPIs_Empty(t *testing.T) {
	assert.Equal(t, domain.KPISummary{}, domain.ComputeKPIs(nil))
	assert.Equal(t, domain.KPISummary{}, domain.ComputeKPIs([]domain.TicketRecord{}))
}

func TestComputeKPIs_AverageResolution(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.TicketRecord
		want    float64
	}{
		{
			name: "rounds to one decimal",
			records: []domain.TicketRecord{
				{Status: "Resolved", CreatedAt: "2024-01-01T00:00:00Z", ResolvedAt: "2024-01-02T08:00:00Z"},
			},
			want: 1.3,
		},
		{
			name: "averages over the qualifying subset",
			records: []domain.TicketRecord{
				{Status: "Resolved", CreatedAt: "2024-01-01", ResolvedAt: "2024-01-02"},
				{Status: "Resolved", CreatedAt: "2024-01-01", ResolvedAt: "2024-01-04"},
				{Status: "Open", CreatedAt: "2024-01-01", ResolvedAt: "2024-02-01"},
			},
			want: 2.0,
		},
		{
			name: "malformed timestamps are ignored",
			records: []domain.TicketRecord{
				{Status: "Resolved", CreatedAt: "2024-01-01", ResolvedAt: "2024-01-05"},
				{Status: "Resolved", CreatedAt: "not a date", ResolvedAt: "2024-01-05"},
				{Status: "Resolved", CreatedAt: "2024-01-01", ResolvedAt: "soon"},
			},
			want: 4.0,
		},
		{
			name: "resolved without timestamps gives zero",
			records: []domain.TicketRecord{
				{Status: "Resolved"},
				{Status: "Resolved", CreatedAt: "2024-01-01"},
			},
			want: 0,
		},
		{
			name: "resolution before creation is ignored",
			records: []domain.TicketRecord{
				{Status: "Resolved", CreatedAt: "2024-01-05", ResolvedAt: "2024-01-01"},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kpis := domain.ComputeKPIs(tt.records)
			assert.Equal(t, tt.want, kpis.AvgResolutionDays)
			assert.GreaterOrEqual(t, kpis.AvgResolutionDays, 0.0)
		})
	}
}

func TestComputeKPIs_TotalsAddUp(t *testing.T) {
	records := sampleRecords()
	for n := 0; n <= len(records); n++ {
		kpis := domain.ComputeKPIs(records[:n])
		assert.Equal(t, kpis.TotalTickets, kpis.PendingTickets+kpis.CompletedTickets, "prefix %d", n)
	}

	kpis := domain.ComputeKPIs(records)
	assert.Equal(t, 5, kpis.TotalTickets)
	assert.Equal(t, 2, kpis.CompletedTickets)
	assert.Equal(t, 3, kpis.PendingTickets)
	// (2 days + 0.5 days) / 2
	assert.Equal(t, 1.3, kpis.AvgResolutionDays)
}

func TestGroupByTeam(t *testing.T) {
	groups := domain.GroupByTeam(sampleRecords())

	assert.Equal(t, []domain.GroupCount{
		{Label: "Tier 1", Count: 2},
		{Label: "Tier 2", Count: 2},
		{Label: "Unassigned", Count: 1},
	}, groups)
	assert.Equal(t, 5, sumCounts(groups))
}

func TestGroupByStatus(t *testing.T) {
	groups := domain.GroupByStatus(sampleRecords())

	assert.Equal(t, []domain.GroupCount{
		{Label: "Resolved", Count: 1},
		{Label: "Open", Count: 1},
		{Label: "resolved", Count: 1},
		{Label: "In Progress", Count: 1},
		{Label: "Unknown", Count: 1},
	}, groups)
	assert.Equal(t, 5, sumCounts(groups))
}

func TestGroupBy_FirstOccurrenceOrder(t *testing.T) {
	records := []domain.TicketRecord{
		{AssignedTeam: "Zeta"},
		{AssignedTeam: "10"},
		{AssignedTeam: "Alpha"},
		{AssignedTeam: "Zeta"},
		{AssignedTeam: "2"},
	}

	groups := domain.GroupByTeam(records)

	labels := make([]string, 0, len(groups))
	for _, g := range groups {
		labels = append(labels, g.Label)
	}
	assert.Equal(t, []string{"Zeta", "10", "Alpha", "2"}, labels)
}

func TestGroupBy_Empty(t *testing.T) {
	assert.Empty(t, domain.GroupByTeam(nil))
	assert.Empty(t, domain.GroupByStatus(nil))
	assert.NotNil(t, domain.GroupByTeam(nil))
}

func TestBuildTimeSeries(t *testing.T) {
	points := domain.BuildTimeSeries(sampleRecords())

	require.Len(t, points, 3)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), points[0].Date)
	assert.Equal(t, 1, points[0].Tickets)
	assert.Equal(t, 1, points[0].Cumulative)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), points[1].Date)
	assert.Equal(t, 2, points[1].Tickets)
	assert.Equal(t, 3, points[1].Cumulative)

	// The gap between the 2nd and the 5th is preserved.
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), points[2].Date)
	assert.Equal(t, 2, points[2].Tickets)
	assert.Equal(t, 5, points[2].Cumulative)
}

func TestBuildTimeSeries_SameDay(t *testing.T) {
	points := domain.BuildTimeSeries([]domain.TicketRecord{
		{CreatedAt: "2024-03-10T08:00:00Z"},
		{CreatedAt: "2024-03-10T17:45:00Z"},
	})

	require.Len(t, points, 1)
	assert.Equal(t, 2, points[0].Tickets)
	assert.Equal(t, 2, points[0].Cumulative)
}

func TestBuildTimeSeries_Properties(t *testing.T) {
	records := make([]domain.TicketRecord, 0, 60)
	for i := 0; i < 60; i++ {
		day := (i * 7) % 23
		records = append(records, domain.TicketRecord{
			CreatedAt: fmt.Sprintf("2024-02-%02dT%02d:00:00Z", day+1, i%24),
		})
	}

	records = append(records,
		domain.TicketRecord{CreatedAt: ""},
		domain.TicketRecord{CreatedAt: "n/a"},
	)

	points := domain.BuildTimeSeries(records)

	require.NotEmpty(t, points)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i-1].Date.Before(points[i].Date))
		assert.GreaterOrEqual(t, points[i].Cumulative, points[i-1].Cumulative)
	}
	last := points[len(points)-1]
	assert.Equal(t, len(records), last.Cumulative+domain.CountUndated(records))
}

func TestBuildTimeSeries_UndatedRecordsAreCounted(t *testing.T) {
	records := []domain.TicketRecord{
		{CreatedAt: "2024-01-01"},
		{CreatedAt: ""},
		{CreatedAt: "whenever"},
	}

	points := domain.BuildTimeSeries(records)
	undated := domain.CountUndated(records)

	require.Len(t, points, 1)
	assert.Equal(t, 1, points[0].Cumulative)
	assert.Equal(t, 2, undated)
	assert.Equal(t, len(records), points[len(points)-1].Cumulative+undated)

	view := domain.BuildDashboard(domain.NewSnapshot(&domain.TicketSheet{Records: records}, 1, time.Now()), time.Now())
	assert.Equal(t, 2, view.UndatedTickets)
	assert.Equal(t, 3, view.TicketCount)
}

func TestBuildTimeSeries_Empty(t *testing.T) {
	points := domain.BuildTimeSeries(nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	snap := domain.NewSnapshot(&domain.TicketSheet{
		Columns: domain.KnownColumns,
		Records: sampleRecords(),
	}, 7, now.Add(-time.Minute))

	view := domain.BuildDashboard(snap, now)

	assert.Equal(t, 5, view.TicketCount)
	assert.Equal(t, 5, view.KPIs.TotalTickets)
	assert.Len(t, view.ByTeam, 3)
	assert.Len(t, view.ByStatus, 5)
	assert.Len(t, view.TimeSeries, 3)
	assert.Equal(t, snap.ID, view.SnapshotID)
	assert.Equal(t, uint64(7), view.Generation)
	assert.Equal(t, now, view.LastUpdated)
	assert.Equal(t, 0, view.UndatedTickets)
	assert.True(t, view.HasData())
}

func TestBuildDashboard_Empty(t *testing.T) {
	view := domain.BuildDashboard(nil, time.Now())

	assert.Equal(t, domain.KPISummary{}, view.KPIs)
	assert.Empty(t, view.ByTeam)
	assert.Empty(t, view.ByStatus)
	assert.Empty(t, view.TimeSeries)
	assert.False(t, view.HasData())

	empty := domain.BuildDashboard(domain.EmptySnapshot(), time.Now())
	assert.Equal(t, 0, empty.TicketCount)
	assert.Empty(t, empty.TimeSeries)
}

func sumCounts(groups []domain.GroupCount) int {
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	return total
}
