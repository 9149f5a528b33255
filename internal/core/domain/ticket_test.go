package domain_test

import (
	"testing"
	"time"

	"github.com/lorrc/support-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketRecord(t *testing.T) {
	row := map[string]string{
		"Ticket ID":       "T-1",
		"Date Created":    "2024-01-01",
		"Customer Email":  "a@example.com",
		"Category (Auto)": "Billing",
		"Assigned Team":   "Tier 1",
		"Priority":        "High",
		"Status":          "Open",
		"Region":          "EMEA",
	}

	rec := domain.NewTicketRecord(row)

	assert.Equal(t, "T-1", rec.ID)
	assert.Equal(t, "2024-01-01", rec.CreatedAt)
	assert.Equal(t, "Billing", rec.Category)
	assert.Equal(t, "Tier 1", rec.AssignedTeam)
	assert.Empty(t, rec.ResolvedAt)
	assert.Equal(t, map[string]string{"Region": "EMEA"}, rec.Extra)

	assert.Equal(t, "EMEA", rec.Value("Region"))
	assert.Equal(t, "High", rec.Value(domain.ColumnPriority))
	assert.Empty(t, rec.Value("Missing"))
}

func TestTicketRecord_IsResolved(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"Resolved", true},
		{"resolved", true},
		{"RESOLVED", true},
		{"Open", false},
		{"", false},
		{" Resolved", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.TicketRecord{Status: tt.status}.IsResolved())
		})
	}
}

func TestTicketRecord_Labels(t *testing.T) {
	assert.Equal(t, "Unassigned", domain.TicketRecord{}.TeamLabel())
	assert.Equal(t, "Unassigned", domain.TicketRecord{AssignedTeam: "  "}.TeamLabel())
	assert.Equal(t, "Tier 2", domain.TicketRecord{AssignedTeam: "Tier 2"}.TeamLabel())
	assert.Equal(t, "Unknown", domain.TicketRecord{}.StatusLabel())
	assert.Equal(t, "Open", domain.TicketRecord{Status: "Open"}.StatusLabel())
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{"date only", "2024-01-03", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), true},
		{"rfc3339", "2024-01-03T10:30:00Z", time.Date(2024, 1, 3, 10, 30, 0, 0, time.UTC), true},
		{"rfc3339 offset", "2024-01-03T10:30:00+02:00", time.Date(2024, 1, 3, 8, 30, 0, 0, time.UTC), true},
		{"fractional", "2024-01-03T10:30:00.250Z", time.Date(2024, 1, 3, 10, 30, 0, 250_000_000, time.UTC), true},
		{"no zone", "2024-01-03T10:30:00", time.Date(2024, 1, 3, 10, 30, 0, 0, time.UTC), true},
		{"space separated", "2024-01-03 10:30:00", time.Date(2024, 1, 3, 10, 30, 0, 0, time.UTC), true},
		{"sheets export", "1/3/2024 10:30:00", time.Date(2024, 1, 3, 10, 30, 0, 0, time.UTC), true},
		{"sheets date", "12/31/2023", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"surrounding space", " 2024-01-03 ", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.ParseTimestamp(tt.value)
			require.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestSnapshot(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sheet := &domain.TicketSheet{
		Columns: []string{"Ticket ID"},
		Records: []domain.TicketRecord{{ID: "T-1"}},
	}

	snap := domain.NewSnapshot(sheet, 3, now)

	assert.NotEqual(t, snap.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, uint64(3), snap.Generation)
	assert.False(t, snap.IsEmpty())
	assert.Equal(t, 90*time.Minute, snap.Age(now.Add(90*time.Minute)))

	assert.True(t, domain.EmptySnapshot().IsEmpty())
	var missing *domain.Snapshot
	assert.True(t, missing.IsEmpty())
}

func TestRefreshTrigger(t *testing.T) {
	assert.True(t, domain.TriggerManual.BypassesCache())
	assert.False(t, domain.TriggerScheduled.BypassesCache())
	assert.False(t, domain.TriggerStartup.BypassesCache())

	assert.True(t, domain.TriggerManual.AnnouncesSuccess())
	assert.True(t, domain.TriggerScheduled.AnnouncesSuccess())
	assert.False(t, domain.TriggerStartup.AnnouncesSuccess())
	assert.False(t, domain.TriggerView.AnnouncesSuccess())

	assert.True(t, domain.TriggerView.IsValid())
	assert.False(t, domain.RefreshTrigger("cron").IsValid())
}
