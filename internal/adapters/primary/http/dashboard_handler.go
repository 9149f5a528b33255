package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/support-dashboard/internal/core/domain"
	"github.com/lorrc/support-dashboard/internal/core/ports"
	"github.com/lorrc/support-dashboard/internal/infrastructure/logging"
)

// DashboardHandler serves the dashboard view, manual refresh and sharing.
type DashboardHandler struct {
	dashboardService ports.DashboardService
	errorHandler     *ErrorHandler
	publicURL        string
	logger           *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler. publicURL is shared
// when set; otherwise the request origin is used.
func NewDashboardHandler(
	dashboardService ports.DashboardService,
	errorHandler *ErrorHandler,
	publicURL string,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		errorHandler:     errorHandler,
		publicURL:        publicURL,
		logger:           logger.With("handler", "dashboard"),
	}
}

// RegisterRoutes sets up the dashboard routes. The refresh route is
// registered separately so it can carry its own rate limit.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.HandleGetDashboard)
	r.Get("/share", h.HandleShare)
}

// RegisterRefreshRoute registers POST /refresh.
func (h *DashboardHandler) RegisterRefreshRoute(r chi.Router) {
	r.Post("/refresh", h.HandleRefresh)
}

// --- Request/Response DTOs ---

// KPIsDTO holds the headline numbers
type KPIsDTO struct {
	TotalTickets      int     `json:"totalTickets"`
	PendingTickets    int     `json:"pendingTickets"`
	CompletedTickets  int     `json:"completedTickets"`
	AvgResolutionDays float64 `json:"avgResolutionTime"`
}

// KPICardDTO is one rendered KPI card
type KPICardDTO struct {
	Title   string `json:"title"`
	Value   string `json:"value"`
	Variant string `json:"variant"`
}

// ChartPointDTO is one bar or slice of a chart
type ChartPointDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TimeSeriesPointDTO is one day of the tickets-over-time chart
type TimeSeriesPointDTO struct {
	Date       string `json:"date"`
	Tickets    int    `json:"tickets"`
	Cumulative int    `json:"cumulative"`
}

// SnapshotDTO identifies the snapshot a view was computed from
type SnapshotDTO struct {
	ID         string    `json:"id"`
	Generation uint64    `json:"generation"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// DashboardResponse is everything the dashboard page renders
type DashboardResponse struct {
	KPIs         KPIsDTO              `json:"kpis"`
	Cards        []KPICardDTO         `json:"cards"`
	Teams        []ChartPointDTO      `json:"teams"`
	Statuses     []ChartPointDTO      `json:"statuses"`
	TimeSeries   []TimeSeriesPointDTO `json:"timeSeries"`
	TicketCount  int                  `json:"ticketCount"`
	Undated      int                  `json:"undatedTickets"`
	LastUpdated  *time.Time           `json:"lastUpdated"`
	Snapshot     *SnapshotDTO         `json:"snapshot,omitempty"`
	IsRefreshing bool                 `json:"isRefreshing"`
}

// ShareResponse is the payload handed to the share sheet
type ShareResponse struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// ToDashboardResponse converts a view to its response DTO
func ToDashboardResponse(view *domain.DashboardView, refreshing bool) DashboardResponse {
	resp := DashboardResponse{
		KPIs: KPIsDTO{
			TotalTickets:      view.KPIs.TotalTickets,
			PendingTickets:    view.KPIs.PendingTickets,
			CompletedTickets:  view.KPIs.CompletedTickets,
			AvgResolutionDays: view.KPIs.AvgResolutionDays,
		},
		Cards:        kpiCards(view.KPIs),
		Teams:        chartPoints(view.ByTeam),
		Statuses:     chartPoints(view.ByStatus),
		TimeSeries:   make([]TimeSeriesPointDTO, 0, len(view.TimeSeries)),
		TicketCount:  view.TicketCount,
		Undated:      view.UndatedTickets,
		IsRefreshing: refreshing,
	}

	for _, p := range view.TimeSeries {
		resp.TimeSeries = append(resp.TimeSeries, TimeSeriesPointDTO{
			Date:       p.Date.Format("2006-01-02"),
			Tickets:    p.Tickets,
			Cumulative: p.Cumulative,
		})
	}

	if view.HasData() {
		lastUpdated := view.LastUpdated
		resp.LastUpdated = &lastUpdated
		resp.Snapshot = &SnapshotDTO{
			ID:         view.SnapshotID.String(),
			Generation: view.Generation,
			FetchedAt:  view.FetchedAt,
		}
	}

	return resp
}

func kpiCards(kpis domain.KPISummary) []KPICardDTO {
	pendingVariant := "success"
	if kpis.PendingTickets > 0 {
		pendingVariant = "warning"
	}

	return []KPICardDTO{
		{Title: "Total Tickets", Value: strconv.Itoa(kpis.TotalTickets), Variant: "default"},
		{Title: "Pending Tickets", Value: strconv.Itoa(kpis.PendingTickets), Variant: pendingVariant},
		{Title: "Completed Tickets", Value: strconv.Itoa(kpis.CompletedTickets), Variant: "success"},
		{
			Title:   "Avg Resolution Time",
			Value:   strconv.FormatFloat(kpis.AvgResolutionDays, 'f', -1, 64) + " days",
			Variant: "default",
		},
	}
}

func chartPoints(groups []domain.GroupCount) []ChartPointDTO {
	points := make([]ChartPointDTO, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPointDTO{Name: g.Label, Value: g.Count})
	}
	return points
}

// --- Handlers ---

// HandleGetDashboard returns the current dashboard view
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardService.Current(r.Context())
	if err != nil && !view.HasData() {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, ToDashboardResponse(view, h.dashboardService.IsRefreshing()))
}

// HandleRefresh bypasses the cache and reloads the dashboard. A failed
// refresh still reports the error status, with the view that stays on
// screen under details.dashboard.
func (h *DashboardHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardService.Load(r.Context(), domain.TriggerManual)
	if err != nil {
		if !view.HasData() {
			h.errorHandler.Handle(w, r, err)
			return
		}
		h.errorHandler.HandleWithDetails(w, r, err, map[string]interface{}{
			"dashboard": ToDashboardResponse(view, h.dashboardService.IsRefreshing()),
		})
		return
	}

	h.logger.Info("manual refresh completed", "request_id", logging.GetRequestID(r.Context()), "tickets", view.TicketCount)
	WriteSuccessMessage(w,
		ToDashboardResponse(view, h.dashboardService.IsRefreshing()),
		fmt.Sprintf("Updated with %d tickets", view.TicketCount),
	)
}

// HandleShare returns the share payload for the dashboard page
func (h *DashboardHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	payload := h.dashboardService.Share(r.Context(), h.pageURL(r))

	WriteJSON(w, http.StatusOK, ShareResponse{
		Title: payload.Title,
		Text:  payload.Text,
		URL:   payload.URL,
	})
}

func (h *DashboardHandler) pageURL(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL
	}
	if origin := r.Header.Get("Origin"); origin != "" {
		return origin + "/"
	}

	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}
