package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/support-dashboard/internal/adapters/primary/validation"
	"github.com/lorrc/support-dashboard/internal/core/domain"
	"github.com/lorrc/support-dashboard/internal/core/ports"
	"github.com/lorrc/support-dashboard/internal/infrastructure/logging"
)

// TicketHandler handles HTTP requests for the ticket table
type TicketHandler struct {
	dashboardService ports.DashboardService
	errorHandler     *ErrorHandler
	logger           *slog.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(
	dashboardService ports.DashboardService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *TicketHandler {
	return &TicketHandler{
		dashboardService: dashboardService,
		errorHandler:     errorHandler,
		logger:           logger.With("handler", "ticket"),
	}
}

// RegisterRoutes sets up the routing for all ticket endpoints.
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListTickets)
	r.Get("/export", h.HandleExport)
}

// --- Request/Response DTOs ---

// ListTicketsQuery holds the table filters
type ListTicketsQuery struct {
	Search   string
	Status   string
	Team     string
	Priority string
}

// Validate validates the list tickets query
func (q *ListTicketsQuery) Validate() error {
	v := validation.NewValidator()

	v.MaxLength("search", q.Search, domain.MaxSearchLength)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// ToFilter converts the query to a domain filter
func (q *ListTicketsQuery) ToFilter() domain.TicketFilter {
	return domain.TicketFilter{
		Search:   q.Search,
		Status:   q.Status,
		Team:     q.Team,
		Priority: q.Priority,
	}
}

// TicketResponse is one row of the ticket table
type TicketResponse struct {
	ID            string            `json:"ticketId"`
	CreatedAt     string            `json:"dateCreated"`
	CustomerEmail string            `json:"customerEmail"`
	Category      string            `json:"category"`
	AssignedTeam  string            `json:"assignedTeam"`
	Priority      string            `json:"priority"`
	Status        string            `json:"status"`
	ResolvedAt    string            `json:"dateResolved"`
	Extra         map[string]string `json:"extra,omitempty"`

	StatusBadge  string `json:"statusBadge"`
	PriorityTone string `json:"priorityTone"`
}

// TicketFiltersDTO lists the options of the status and team filters
type TicketFiltersDTO struct {
	Statuses []string `json:"statuses"`
	Teams    []string `json:"teams"`
}

// TicketListResponse is the filtered table with "showing N of M" counts
type TicketListResponse struct {
	Data    []TicketResponse `json:"data"`
	Count   int              `json:"count"`
	Total   int              `json:"total"`
	Filters TicketFiltersDTO `json:"filters"`
}

// ToTicketResponse converts a domain record to its response DTO
func ToTicketResponse(rec domain.TicketRecord) TicketResponse {
	return TicketResponse{
		ID:            rec.ID,
		CreatedAt:     rec.CreatedAt,
		CustomerEmail: rec.CustomerEmail,
		Category:      rec.Category,
		AssignedTeam:  rec.AssignedTeam,
		Priority:      rec.Priority,
		Status:        rec.Status,
		ResolvedAt:    rec.ResolvedAt,
		Extra:         rec.Extra,
		StatusBadge:   StatusBadge(rec.Status),
		PriorityTone:  PriorityTone(rec.Priority),
	}
}

// StatusBadge maps a status to its badge variant.
func StatusBadge(status string) string {
	switch strings.ToLower(status) {
	case "resolved":
		return "default"
	case "open":
		return "destructive"
	case "in progress":
		return "secondary"
	default:
		return "outline"
	}
}

// PriorityTone maps a priority to its text tone.
func PriorityTone(priority string) string {
	switch strings.ToLower(priority) {
	case "critical":
		return "destructive"
	case "high":
		return "warning"
	case "medium":
		return "accent"
	case "low":
		return "success"
	default:
		return "muted"
	}
}

// --- Handlers ---

// HandleListTickets returns the filtered ticket table
func (h *TicketHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	query := ListTicketsQuery{
		Search:   validation.ParseStringQueryParam(r, "search"),
		Status:   validation.ParseStringQueryParam(r, "status"),
		Team:     validation.ParseStringQueryParam(r, "team"),
		Priority: validation.ParseStringQueryParam(r, "priority"),
	}
	if HandleError(w, r, query.Validate(), h.errorHandler) {
		return
	}

	table, err := h.dashboardService.Tickets(r.Context(), query.ToFilter())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	rows := make([]TicketResponse, 0, len(table.Rows))
	for _, rec := range table.Rows {
		rows = append(rows, ToTicketResponse(rec))
	}

	WriteJSON(w, http.StatusOK, TicketListResponse{
		Data:  rows,
		Count: len(rows),
		Total: table.Total,
		Filters: TicketFiltersDTO{
			Statuses: table.Statuses,
			Teams:    table.Teams,
		},
	})
}

// HandleExport downloads the current tickets as CSV
func (h *TicketHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	export, err := h.dashboardService.Export(r.Context())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.logger.Info("export served",
		"request_id", logging.GetRequestID(r.Context()),
		"file", export.FileName,
		"rows", export.Rows,
	)
	WriteCSV(w, export.FileName, export.Content)
}
