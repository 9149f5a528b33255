package domain

import (
	"bytes"
	"encoding/csv"
	"time"
)

// ExportFileName names a ticket export after the given day.
func ExportFileName(now time.Time) string {
	return "support-tickets-" + now.Format("2006-01-02") + ".csv"
}

// RenderCSV writes the header followed by one row per record, values in
// header order. Fields containing commas, quotes or newlines are quoted.
func RenderCSV(columns []string, records []TicketRecord) ([]byte, error) {
	if len(columns) == 0 {
		columns = KnownColumns
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, column := range columns {
			row[i] = rec.Value(column)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildExport renders the records a view was computed from.
func BuildExport(view *DashboardView, now time.Time) (*CSVExport, error) {
	content, err := RenderCSV(view.Columns, view.Records)
	if err != nil {
		return nil, err
	}
	return &CSVExport{
		FileName: ExportFileName(now),
		Content:  content,
		Rows:     len(view.Records),
	}, nil
}
