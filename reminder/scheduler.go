package reminder

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"board-api/board"
)

// Notifier receives fired reminders. Implementations decide how and
// where the notification is displayed.
type Notifier interface {
	Notify(taskTitle string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(taskTitle string)

func (f NotifierFunc) Notify(taskTitle string) { f(taskTitle) }

// Scheduler arms one-shot notifications for tasks whose reminder lies
// in the future. Scheduling runs once against the loaded snapshot:
// tasks added afterwards are not picked up and deleting a task does not
// cancel its pending notification.
type Scheduler struct {
	sink   Notifier
	logger *log.Logger

	mu     sync.Mutex
	timers []*time.Timer
}

// New creates a scheduler publishing to the given sink.
func New(sink Notifier, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Scheduler{sink: sink, logger: logger}
}

// ScheduleAll arms a timer for every task on the board with a reminder
// strictly later than now and returns the number armed. Fired timers
// invoke the sink with the task's title; they are fire-and-forget and
// unordered relative to board mutations.
func (s *Scheduler) ScheduleAll(b board.Board, now time.Time) int {
	armed := 0
	for _, t := range b.Tasks() {
		if t.Reminder.IsZero() {
			continue
		}
		delay := t.Reminder.Sub(now)
		if delay <= 0 {
			continue
		}
		title := t.Title
		timer := time.AfterFunc(delay, func() {
			s.sink.Notify(title)
		})
		s.mu.Lock()
		s.timers = append(s.timers, timer)
		s.mu.Unlock()
		armed++
	}
	if armed > 0 {
		s.logger.WithField("count", armed).Info("reminders scheduled")
	}
	return armed
}

// Stop cancels timers that have not fired yet. It is meant for process
// shutdown and tests, not for per-task cancellation.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}
