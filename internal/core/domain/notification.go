package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationVariant controls how the front-end styles a notification.
type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is a transient, dismissible message about a load cycle.
type Notification struct {
	ID          uuid.UUID
	Variant     NotificationVariant
	Title       string
	Description string
	Trigger     RefreshTrigger
	CreatedAt   time.Time
	Dismissed   bool
}

// Notification titles raised by load cycles.
const (
	TitleDataRefreshed   = "Data refreshed"
	TitleNoData          = "No data available"
	TitleLoadFailed      = "Error loading data"
	DescriptionNoData    = "Unable to fetch ticket data. Please try again later."
	DescriptionLoadError = "Failed to fetch the latest data. Please try again."
)
