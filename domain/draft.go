package domain

import (
	"strings"
	"time"
)

// Draft is an unvalidated task input pending creation. It carries the
// same fields as Task minus the identifier.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Stage       Stage    `json:"stage"`
	Priority    Priority `json:"priority"`
	DueDate     Date     `json:"dueDate"`
	Reminder    Instant  `json:"reminder"`
	Category    string   `json:"category"`
}

// FieldErrors maps draft field names to validation messages. Only
// failing fields are present; an empty map means the draft is valid.
type FieldErrors map[string]string

// Validate checks the draft against the creation rules. Every rule is
// evaluated; nothing short-circuits. The result is plain data, never an
// error value.
func (d Draft) Validate(now time.Time) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(d.Description) == "" {
		errs["description"] = "Description is required"
	}
	// Due dates compare at day granularity, reminders at full instant.
	if !d.DueDate.IsZero() && d.DueDate.Format(dateLayout) < now.Format(dateLayout) {
		errs["dueDate"] = "Due date cannot be in the past"
	}
	if !d.Reminder.IsZero() && !d.Reminder.After(now) {
		errs["reminder"] = "Reminder must be in the future"
	}
	return errs
}
