package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lorrc/support-dashboard/internal/adapters/primary/validation"
	"github.com/lorrc/support-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/support-dashboard/internal/core/errors"
	"github.com/lorrc/support-dashboard/internal/core/ports"
)

// NotificationHandler serves the notification feed
type NotificationHandler struct {
	feed         ports.NotificationFeed
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(feed ports.NotificationFeed, errorHandler *ErrorHandler, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		feed:         feed,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "notification"),
	}
}

// RegisterRoutes sets up the notification routes
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Delete("/{notificationID}", h.HandleDismiss)
}

// NotificationResponse is one notification
type NotificationResponse struct {
	ID          string    `json:"id"`
	Variant     string    `json:"variant"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Trigger     string    `json:"trigger,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToNotificationResponse converts a domain notification to its response DTO
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID.String(),
		Variant:     string(n.Variant),
		Title:       n.Title,
		Description: n.Description,
		Trigger:     string(n.Trigger),
		CreatedAt:   n.CreatedAt,
	}
}

// HandleList returns undismissed notifications, optionally only those after
// a given ID.
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	afterParam := validation.ParseStringQueryParam(r, "after")

	v := validation.NewValidator()
	v.UUID("after", afterParam)
	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	after := uuid.Nil
	if afterParam != "" {
		after = uuid.MustParse(afterParam)
	}

	items := h.feed.List(r.Context(), after)
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, ToNotificationResponse(n))
	}
	WriteList(w, out)
}

// HandleDismiss dismisses a notification
func (h *NotificationHandler) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "notificationID"))
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid notification ID"))
		return
	}

	if HandleError(w, r, h.feed.Dismiss(r.Context(), id), h.errorHandler) {
		return
	}
	WriteNoContent(w)
}
