package domain

import "strings"

// Column names of the support ticket sheet.
const (
	ColumnTicketID      = "Ticket ID"
	ColumnDateCreated   = "Date Created"
	ColumnCustomerEmail = "Customer Email"
	ColumnCategory      = "Category (Auto)"
	ColumnAssignedTeam  = "Assigned Team"
	ColumnPriority      = "Priority"
	ColumnStatus        = "Status"
	ColumnDateResolved  = "Date Resolved"
)

// KnownColumns lists the sheet columns mapped onto TicketRecord fields, in
// the order the sheet normally carries them.
var KnownColumns = []string{
	ColumnTicketID,
	ColumnDateCreated,
	ColumnCustomerEmail,
	ColumnCategory,
	ColumnAssignedTeam,
	ColumnPriority,
	ColumnStatus,
	ColumnDateResolved,
}

// StatusResolved is the status value (compared case-insensitively) that marks
// a ticket as completed.
const StatusResolved = "resolved"

// Sentinel labels used when a grouping field is blank.
const (
	UnassignedTeam = "Unassigned"
	UnknownStatus  = "Unknown"
)

// TicketRecord is one row of the ticket sheet. Values are kept as sourced;
// timestamps stay raw strings and are parsed on demand.
type TicketRecord struct {
	ID            string
	CreatedAt     string
	CustomerEmail string
	Category      string
	AssignedTeam  string
	Priority      string
	Status        string
	ResolvedAt    string // empty while unresolved

	// Extra holds columns outside the known schema.
	Extra map[string]string
}

// NewTicketRecord maps a header-keyed row onto a record. Absent columns
// yield empty fields.
func NewTicketRecord(row map[string]string) TicketRecord {
	rec := TicketRecord{
		ID:            row[ColumnTicketID],
		CreatedAt:     row[ColumnDateCreated],
		CustomerEmail: row[ColumnCustomerEmail],
		Category:      row[ColumnCategory],
		AssignedTeam:  row[ColumnAssignedTeam],
		Priority:      row[ColumnPriority],
		Status:        row[ColumnStatus],
		ResolvedAt:    row[ColumnDateResolved],
	}

	for key, value := range row {
		if isKnownColumn(key) {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string)
		}
		rec.Extra[key] = value
	}

	return rec
}

// Value returns the raw value stored for the given column name.
func (t TicketRecord) Value(column string) string {
	switch column {
	case ColumnTicketID:
		return t.ID
	case ColumnDateCreated:
		return t.CreatedAt
	case ColumnCustomerEmail:
		return t.CustomerEmail
	case ColumnCategory:
		return t.Category
	case ColumnAssignedTeam:
		return t.AssignedTeam
	case ColumnPriority:
		return t.Priority
	case ColumnStatus:
		return t.Status
	case ColumnDateResolved:
		return t.ResolvedAt
	default:
		return t.Extra[column]
	}
}

// IsResolved reports whether the status is "resolved", ignoring case.
func (t TicketRecord) IsResolved() bool {
	return strings.EqualFold(t.Status, StatusResolved)
}

// TeamLabel returns the assigned team, or UnassignedTeam when blank.
func (t TicketRecord) TeamLabel() string {
	return labelOrDefault(t.AssignedTeam, UnassignedTeam)
}

// StatusLabel returns the status, or UnknownStatus when blank.
func (t TicketRecord) StatusLabel() string {
	return labelOrDefault(t.Status, UnknownStatus)
}

// TicketSheet is a parsed ticket document: the trimmed header in source order
// and one record per accepted row.
type TicketSheet struct {
	Columns []string
	Records []TicketRecord
}

func isKnownColumn(column string) bool {
	for _, known := range KnownColumns {
		if column == known {
			return true
		}
	}
	return false
}

func labelOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
