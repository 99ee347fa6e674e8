package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Stage identifies the fixed board column a task belongs to.
type Stage string

const (
	StageToDo       Stage = "To Do"
	StageInProgress Stage = "In Progress"
	StageDone       Stage = "Done"
)

// Column identifiers used in the snapshot and the API.
const (
	ColumnToDo       = "todo"
	ColumnInProgress = "inprogress"
	ColumnDone       = "done"
)

// ColumnID returns the snapshot column identifier for the stage.
func (s Stage) ColumnID() string {
	return strings.ReplaceAll(strings.ToLower(string(s)), " ", "")
}

// StageForColumn maps a column identifier back to its stage.
func StageForColumn(columnID string) (Stage, bool) {
	switch columnID {
	case ColumnToDo:
		return StageToDo, true
	case ColumnInProgress:
		return StageInProgress, true
	case ColumnDone:
		return StageDone, true
	}
	return "", false
}

// Priority ranks a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task represents a single board item.
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Stage       Stage    `json:"stage"`
	Priority    Priority `json:"priority"`
	DueDate     Date     `json:"dueDate"`
	Reminder    Instant  `json:"reminder"`
	Category    string   `json:"category"`
}

const dateLayout = "2006-01-02"

// Date is an optional calendar date. It serializes as an ISO date and as
// the empty string when unset.
type Date struct{ time.Time }

// DateOf builds a Date from the calendar day of t.
func DateOf(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}

// Instant is an optional point in time. It serializes as RFC 3339 and as
// the empty string when unset; HTML datetime-local values are accepted
// on input.
type Instant struct{ time.Time }

var instantLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

func (i Instant) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + i.Format(time.RFC3339) + `"`), nil
}

func (i *Instant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		i.Time = time.Time{}
		return nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			i.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid instant %q", s)
}
