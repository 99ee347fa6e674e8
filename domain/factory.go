package domain

import (
	"sync/atomic"
	"time"
)

var lastID int64

// NewTask builds a persisted Task from an approved draft. It assigns the
// next identifier and defaults the category; it does not validate.
func NewTask(d Draft) Task {
	t := Task{
		ID:          nextID(),
		Title:       d.Title,
		Description: d.Description,
		Stage:       d.Stage,
		Priority:    d.Priority,
		DueDate:     d.DueDate,
		Reminder:    d.Reminder,
		Category:    d.Category,
	}
	if t.Category == "" {
		t.Category = "General"
	}
	return t
}

// nextID derives an identifier from wall-clock milliseconds, bumping
// past the previous value so ids stay strictly increasing within the
// process even under rapid successive creation.
func nextID() int64 {
	for {
		now := time.Now().UnixMilli()
		last := atomic.LoadInt64(&lastID)
		if now <= last {
			now = last + 1
		}
		if atomic.CompareAndSwapInt64(&lastID, last, now) {
			return now
		}
	}
}
