package domain_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/lorrc/support-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFileName(t *testing.T) {
	now := time.Date(2024, 7, 9, 23, 10, 0, 0, time.UTC)
	assert.Equal(t, "support-tickets-2024-07-09.csv", domain.ExportFileName(now))
}

func TestRenderCSV(t *testing.T) {
	columns := []string{"Ticket ID", "Category (Auto)", "Status", "Region"}
	records := []domain.TicketRecord{
		{ID: "T-1", Category: "Billing, refunds", Status: "Open", Extra: map[string]string{"Region": "EMEA"}},
		{ID: "T-2", Category: `Says "hi"`, Status: "Resolved"},
		{ID: "T-3", Category: "line one\nline two", Status: "Open"},
	}

	content, err := domain.RenderCSV(columns, records)
	require.NoError(t, err)

	lines := strings.SplitN(string(content), "\n", 2)
	assert.Equal(t, "Ticket ID,Category (Auto),Status,Region", lines[0])
	assert.Contains(t, string(content), `"Billing, refunds"`)
	assert.Contains(t, string(content), `"Says ""hi"""`)

	// The export reads back to the same table.
	rows, err := csv.NewReader(strings.NewReader(string(content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"T-1", "Billing, refunds", "Open", "EMEA"}, rows[1])
	assert.Equal(t, []string{"T-2", `Says "hi"`, "Resolved", ""}, rows[2])
	assert.Equal(t, "line one\nline two", rows[3][1])
}

func TestRenderCSV_DefaultColumns(t *testing.T) {
	content, err := domain.RenderCSV(nil, nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.KnownColumns, rows[0])
}

func TestBuildExport(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	snap := domain.NewSnapshot(&domain.TicketSheet{
		Columns: []string{"Ticket ID", "Status"},
		Records: []domain.TicketRecord{{ID: "T-1", Status: "Open"}, {ID: "T-2", Status: "Resolved"}},
	}, 1, now)

	export, err := domain.BuildExport(domain.BuildDashboard(snap, now), now)
	require.NoError(t, err)

	assert.Equal(t, "support-tickets-2024-01-15.csv", export.FileName)
	assert.Equal(t, 2, export.Rows)
	assert.Equal(t, "Ticket ID,Status\nT-1,Open\nT-2,Resolved\n", string(export.Content))
}
