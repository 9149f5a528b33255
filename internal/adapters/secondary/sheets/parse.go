package sheets

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lorrc/support-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/support-dashboard/internal/core/errors"
)

const utf8BOM = "\ufeff"

// ParseReport summarizes one parse of the ticket document.
type ParseReport struct {
	Rows    int // rows turned into records
	Skipped int // rows dropped because they could not be read
}

// ParseTickets reads a CSV document whose first row is the header. Every
// following row becomes a record keyed by the trimmed header names, including
// rows whose fields are all empty. Empty lines are skipped. Rows that cannot
// be read are logged and dropped; an empty document yields no records and only
// an unreadable header fails the whole document.
func ParseTickets(r io.Reader, logger *slog.Logger) (*domain.TicketSheet, ParseReport, error) {
	var report ParseReport

	reader := csv.NewReader(stripBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &domain.TicketSheet{Columns: []string{}, Records: []domain.TicketRecord{}}, report, nil
	}
	if err != nil {
		return nil, report, readError(err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	records := make([]domain.TicketRecord, 0)
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, report, readError(err)
			}
			logger.Warn("skipping unreadable row", "line", parseErr.Line, "error", parseErr.Err)
			report.Skipped++
			continue
		}

		if len(fields) != len(columns) {
			line, _ := reader.FieldPos(0)
			logger.Warn("skipping row with wrong field count",
				"line", line,
				"fields", len(fields),
				"expected", len(columns),
			)
			report.Skipped++
			continue
		}

		row := make(map[string]string, len(columns))
		for i, column := range columns {
			row[column] = fields[i]
		}
		records = append(records, domain.NewTicketRecord(row))
		report.Rows++
	}

	return &domain.TicketSheet{Columns: columns, Records: records}, report, nil
}

func readError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &apperrors.ParseError{Line: parseErr.Line, Err: parseErr.Err}
	}
	return fmt.Errorf("read ticket document: %w", err)
}

// stripBOM drops a leading UTF-8 byte order mark, which Sheets exports carry.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && string(prefix) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
