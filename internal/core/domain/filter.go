package domain

import "strings"

// FilterAll disables a status, team or priority filter.
const FilterAll = "all"

// MaxSearchLength bounds the free-text search term.
const MaxSearchLength = 200

// TicketFilter narrows the ticket table.
type TicketFilter struct {
	Search   string
	Status   string
	Team     string
	Priority string
}

// Matches reports whether a record passes every active filter. Search is a
// case-insensitive substring match over ID, customer email and category;
// status, team and priority must match exactly.
func (f TicketFilter) Matches(rec TicketRecord) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(rec.ID), term) &&
			!strings.Contains(strings.ToLower(rec.CustomerEmail), term) &&
			!strings.Contains(strings.ToLower(rec.Category), term) {
			return false
		}
	}

	return matchesExact(f.Status, rec.Status) &&
		matchesExact(f.Team, rec.AssignedTeam) &&
		matchesExact(f.Priority, rec.Priority)
}

// Apply returns the matching records in source order.
func (f TicketFilter) Apply(records []TicketRecord) []TicketRecord {
	out := make([]TicketRecord, 0, len(records))
	for _, rec := range records {
		if f.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// TicketTable is the filtered table together with the option lists of its
// status and team filters.
type TicketTable struct {
	Rows     []TicketRecord
	Total    int
	Statuses []string
	Teams    []string
}

// BuildTicketTable filters records and collects the filter options.
func BuildTicketTable(records []TicketRecord, filter TicketFilter) *TicketTable {
	return &TicketTable{
		Rows:     filter.Apply(records),
		Total:    len(records),
		Statuses: DistinctValues(records, func(r TicketRecord) string { return r.Status }),
		Teams:    DistinctValues(records, func(r TicketRecord) string { return r.AssignedTeam }),
	}
}

// DistinctValues returns the non-empty values of a field in first-occurrence
// order.
func DistinctValues(records []TicketRecord, field func(TicketRecord) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, rec := range records {
		v := field(rec)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

func matchesExact(filter, value string) bool {
	if filter == "" || filter == FilterAll {
		return true
	}
	return value == filter
}
