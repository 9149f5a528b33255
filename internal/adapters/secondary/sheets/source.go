package sheets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lorrc/support-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/support-dashboard/internal/core/errors"
	"github.com/lorrc/support-dashboard/internal/core/ports"
)

// Config holds the settings of a CSVSource.
type Config struct {
	URL       string
	Timeout   time.Duration // zero leaves the transport default
	UserAgent string
}

// CSVSource fetches the ticket sheet as a published CSV export.
type CSVSource struct {
	url        string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.TicketSource = (*CSVSource)(nil)

// NewCSVSource creates a new CSV source
func NewCSVSource(cfg Config, logger *slog.Logger) *CSVSource {
	return &CSVSource{
		url:        cfg.URL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "csv_source"),
	}
}

// Fetch downloads and parses the sheet. Transport failures and non-2xx
// responses are reported as *apperrors.FetchError.
func (s *CSVSource) Fetch(ctx context.Context) (*domain.TicketSheet, error) {
	start := time.Now()

	resp, err := s.do(ctx, http.MethodGet)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	sheet, report, err := ParseTickets(resp.Body, s.logger)
	if err != nil {
		if errors.Is(err, apperrors.ErrMalformedDocument) {
			return nil, err
		}
		return nil, &apperrors.FetchError{URL: s.url, Err: err}
	}

	s.logger.Info("ticket sheet fetched",
		"rows", report.Rows,
		"skipped", report.Skipped,
		"columns", len(sheet.Columns),
		"duration", time.Since(start),
	)
	return sheet, nil
}

// Ping checks that the sheet is reachable without downloading it.
func (s *CSVSource) Ping(ctx context.Context) error {
	resp, err := s.do(ctx, http.MethodHead)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (s *CSVSource) do(ctx context.Context, method string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.url, nil)
	if err != nil {
		return nil, &apperrors.FetchError{URL: s.url, Err: err}
	}
	req.Header.Set("Accept", "text/csv")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.FetchError{URL: s.url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &apperrors.FetchError{URL: s.url, StatusCode: resp.StatusCode}
	}

	return resp, nil
}
