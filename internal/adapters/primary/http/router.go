package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	mw "github.com/lorrc/support-dashboard/internal/adapters/primary/http/middleware"
	"github.com/lorrc/support-dashboard/internal/core/ports"
)

// RouterConfig holds everything the HTTP router is built from
type RouterConfig struct {
	DashboardService ports.DashboardService
	NotificationFeed ports.NotificationFeed
	HealthHandler    *HealthHandler
	Logger           *slog.Logger

	PublicURL      string
	AllowedOrigins []string

	// Nil limiters disable rate limiting.
	GeneralRateLimiter *mw.RateLimiter
	RefreshRateLimiter *mw.RateLimiter
}

// NewRouter wires the handlers and middleware into a chi router.
func NewRouter(cfg RouterConfig) http.Handler {
	errorHandler := NewErrorHandler(cfg.Logger)

	dashboardHandler := NewDashboardHandler(cfg.DashboardService, errorHandler, cfg.PublicURL, cfg.Logger)
	ticketHandler := NewTicketHandler(cfg.DashboardService, errorHandler, cfg.Logger)
	notificationHandler := NewNotificationHandler(cfg.NotificationFeed, errorHandler, cfg.Logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(cfg.Logger))
	r.Use(mw.RecoveryLogger(cfg.Logger))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", mw.RequestIDHeader},
			ExposedHeaders: []string{mw.RequestIDHeader, "Content-Disposition"},
			MaxAge:         300,
		}))
	}

	// Health check endpoints (outside /api/v1 for standard health check paths)
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(r)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.GeneralRateLimiter != nil {
			r.Use(cfg.GeneralRateLimiter.Middleware(errorHandler.Handle))
		}

		dashboardHandler.RegisterRoutes(r)
		r.Route("/tickets", ticketHandler.RegisterRoutes)
		r.Route("/notifications", notificationHandler.RegisterRoutes)

		// Manual refresh always reaches the upstream sheet
		r.Group(func(r chi.Router) {
			if cfg.RefreshRateLimiter != nil {
				r.Use(cfg.RefreshRateLimiter.Middleware(errorHandler.Handle))
			}
			dashboardHandler.RegisterRefreshRoute(r)
		})
	})

	return r
}
