package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/lorrc/support-dashboard/internal/infrastructure/logging"
)

const (
	// RequestIDHeader is the HTTP header name for request IDs
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLength = 128
)

// RequestID is a middleware that ensures each request has a unique request ID.
// An incoming X-Request-ID is kept unless it is implausibly long.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestID)

		// Stored under the logging key so every context-aware log line carries it.
		// Read it back with logging.GetRequestID.
		ctx := logging.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
