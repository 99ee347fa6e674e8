package domain

import "time"

// PriorityFilter narrows a column view to one priority.
type PriorityFilter string

const (
	PriorityAll PriorityFilter = "All"
)

// Valid reports whether f is a known priority filter value.
func (f PriorityFilter) Valid() bool {
	return f == PriorityAll || Priority(f).Valid()
}

// DueDateFilter narrows a column view by due date.
type DueDateFilter string

const (
	DueDateAll      DueDateFilter = "All"
	DueDateToday    DueDateFilter = "Today"
	DueDateThisWeek DueDateFilter = "This Week"
)

// Valid reports whether f is a known due-date filter value.
func (f DueDateFilter) Valid() bool {
	switch f {
	case DueDateAll, DueDateToday, DueDateThisWeek:
		return true
	}
	return false
}

// FilterColumn returns the tasks passing both filters, preserving the
// column's relative order. It never mutates its input.
func FilterColumn(tasks []Task, pf PriorityFilter, df DueDateFilter, now time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if pf != PriorityAll && t.Priority != Priority(pf) {
			continue
		}
		if !matchesDueDate(t, df, now) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesDueDate(t Task, df DueDateFilter, now time.Time) bool {
	if df == DueDateAll {
		return true
	}
	// Tasks without a due date fail any narrower filter.
	if t.DueDate.IsZero() {
		return false
	}
	switch df {
	case DueDateToday:
		return t.DueDate.Format(dateLayout) == now.Format(dateLayout)
	case DueDateThisWeek:
		// Weeks start on Sunday and span seven days inclusive.
		start := time.Date(now.Year(), now.Month(), now.Day()-int(now.Weekday()), 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 0, 7)
		due := time.Date(t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(), 0, 0, 0, 0, now.Location())
		return !due.Before(start) && due.Before(end)
	}
	return true
}
