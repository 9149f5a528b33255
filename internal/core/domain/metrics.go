package domain

import (
	"math"
	"sort"
	"time"
)

const millisPerDay = 24 * 60 * 60 * 1000

// ComputeKPIs derives the headline numbers from a record sequence.
//
// The average resolution time only considers resolved records whose creation
// and resolution timestamps both parse and whose resolution is not earlier
// than creation. It is expressed in days and rounded to one decimal place.
func ComputeKPIs(records []TicketRecord) KPISummary {
	summary := KPISummary{TotalTickets: len(records)}

	var (
		totalMillis float64
		resolved    int
	)
	for _, rec := range records {
		if !rec.IsResolved() {
			continue
		}
		summary.CompletedTickets++

		if millis, ok := resolutionMillis(rec); ok {
			totalMillis += millis
			resolved++
		}
	}
	summary.PendingTickets = summary.TotalTickets - summary.CompletedTickets

	if resolved > 0 {
		avgDays := totalMillis / float64(resolved) / millisPerDay
		summary.AvgResolutionDays = math.Round(avgDays*10) / 10
	}

	return summary
}

// GroupByTeam counts records per assigned team in first-occurrence order.
func GroupByTeam(records []TicketRecord) []GroupCount {
	return groupBy(records, TicketRecord.TeamLabel)
}

// GroupByStatus counts records per status in first-occurrence order.
func GroupByStatus(records []TicketRecord) []GroupCount {
	return groupBy(records, TicketRecord.StatusLabel)
}

// BuildTimeSeries counts records per UTC creation day, sorted ascending, with
// a running cumulative total. Days without tickets are not synthesized.
// Records without a parseable creation timestamp are left out; see
// CountUndated.
func BuildTimeSeries(records []TicketRecord) []TimeSeriesPoint {
	daily := make(map[time.Time]int)
	for _, rec := range records {
		created, ok := ParseTimestamp(rec.CreatedAt)
		if !ok {
			continue
		}
		daily[Day(created)]++
	}

	points := make([]TimeSeriesPoint, 0, len(daily))
	for day, count := range daily {
		points = append(points, TimeSeriesPoint{Date: day, Tickets: count})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	running := 0
	for i := range points {
		running += points[i].Tickets
		points[i].Cumulative = running
	}

	return points
}

// CountUndated returns how many records have no parseable creation
// timestamp. The last cumulative point of BuildTimeSeries plus this count
// equals len(records).
func CountUndated(records []TicketRecord) int {
	undated := 0
	for _, rec := range records {
		if _, ok := ParseTimestamp(rec.CreatedAt); !ok {
			undated++
		}
	}
	return undated
}

// BuildDashboard computes the full view for a snapshot.
func BuildDashboard(snapshot *Snapshot, now time.Time) *DashboardView {
	view := &DashboardView{LastUpdated: now}
	if snapshot == nil {
		view.KPIs = ComputeKPIs(nil)
		view.ByTeam = []GroupCount{}
		view.ByStatus = []GroupCount{}
		view.TimeSeries = []TimeSeriesPoint{}
		return view
	}

	view.KPIs = ComputeKPIs(snapshot.Records)
	view.ByTeam = GroupByTeam(snapshot.Records)
	view.ByStatus = GroupByStatus(snapshot.Records)
	view.TimeSeries = BuildTimeSeries(snapshot.Records)
	view.UndatedTickets = CountUndated(snapshot.Records)
	view.TicketCount = len(snapshot.Records)
	view.SnapshotID = snapshot.ID
	view.Generation = snapshot.Generation
	view.FetchedAt = snapshot.FetchedAt
	view.Columns = snapshot.Columns
	view.Records = snapshot.Records

	return view
}

func resolutionMillis(rec TicketRecord) (float64, bool) {
	created, ok := ParseTimestamp(rec.CreatedAt)
	if !ok {
		return 0, false
	}
	resolvedAt, ok := ParseTimestamp(rec.ResolvedAt)
	if !ok {
		return 0, false
	}

	millis := float64(resolvedAt.Sub(created).Milliseconds())
	if millis < 0 {
		return 0, false
	}
	return millis, true
}

func groupBy(records []TicketRecord, label func(TicketRecord) string) []GroupCount {
	groups := make([]GroupCount, 0)
	index := make(map[string]int)

	for _, rec := range records {
		key := label(rec)
		if i, ok := index[key]; ok {
			groups[i].Count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, GroupCount{Label: key, Count: 1})
	}

	return groups
}
