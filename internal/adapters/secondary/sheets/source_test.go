package sheets_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lorrc/support-dashboard/internal/adapters/secondary/sheets"
	apperrors "github.com/lorrc/support-dashboard/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSource_Fetch(t *testing.T) {
	var gotAccept, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(ticketHeader + "T-1,2024-01-01,a@b.c,Billing,Tier 1,High,Open,\n"))
	}))
	defer server.Close()

	source := sheets.NewCSVSource(sheets.Config{
		URL:       server.URL,
		Timeout:   5 * time.Second,
		UserAgent: "support-dashboard/test",
	}, discardLogger())

	sheet, err := source.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, sheet.Records, 1)
	assert.Equal(t, "T-1", sheet.Records[0].ID)
	assert.Equal(t, "text/csv", gotAccept)
	assert.Equal(t, "support-dashboard/test", gotAgent)
}

func TestCSVSource_Fetch_Errors(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer server.Close()

		source := sheets.NewCSVSource(sheets.Config{URL: server.URL}, discardLogger())
		sheet, err := source.Fetch(context.Background())

		assert.Nil(t, sheet)
		assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
		var fetchErr *apperrors.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		source := sheets.NewCSVSource(sheets.Config{URL: url, Timeout: time.Second}, discardLogger())
		_, err := source.Fetch(context.Background())

		assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		source := sheets.NewCSVSource(sheets.Config{URL: server.URL, Timeout: 50 * time.Millisecond}, discardLogger())
		_, err := source.Fetch(context.Background())

		assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	})

	t.Run("empty document", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		source := sheets.NewCSVSource(sheets.Config{URL: server.URL}, discardLogger())
		sheet, err := source.Fetch(context.Background())

		require.NoError(t, err)
		assert.Empty(t, sheet.Records)
	})
}

func TestCSVSource_Ping(t *testing.T) {
	var method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	}))
	defer server.Close()

	source := sheets.NewCSVSource(sheets.Config{URL: server.URL}, discardLogger())

	require.NoError(t, source.Ping(context.Background()))
	assert.Equal(t, http.MethodHead, method)
}
