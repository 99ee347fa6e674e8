package board

import (
	"context"
	"sync"
	"time"

	"board-api/domain"
)

// Saver persists full board snapshots.
type Saver interface {
	Save(ctx context.Context, b Board) error
}

// Store owns the board state and serializes every mutation. Each
// accepted mutation is written through the saver before the call
// returns, and each command hands back a detached snapshot so callers
// can project it however they like.
type Store struct {
	mu    sync.Mutex
	board Board
	saver Saver

	priority domain.PriorityFilter
	dueDate  domain.DueDateFilter

	now func() time.Time
}

// NewStore creates a store around the loaded snapshot.
func NewStore(initial Board, saver Saver) *Store {
	return &Store{
		board:    initial.Clone(),
		saver:    saver,
		priority: domain.PriorityAll,
		dueDate:  domain.DueDateAll,
		now:      time.Now,
	}
}

// AddTask appends task to the end of the named column.
func (s *Store) AddTask(ctx context.Context, task domain.Task, columnID string) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.board.add(task, columnID); err != nil {
		return Board{}, err
	}
	if err := s.save(ctx); err != nil {
		return Board{}, err
	}
	return s.board.Clone(), nil
}

// DeleteTask removes the task with taskID from the named column.
// Deleting an absent task is a no-op, not an error, so deletion is
// idempotent; the board is only persisted when something was removed.
func (s *Store) DeleteTask(ctx context.Context, columnID string, taskID int64) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.board.delete(columnID, taskID)
	if err != nil {
		return Board{}, err
	}
	if removed {
		if err := s.save(ctx); err != nil {
			return Board{}, err
		}
	}
	return s.board.Clone(), nil
}

// MoveTask relocates the task at srcIdx in src to dstIdx in dst. Task
// count is conserved; a cross-column move also rewrites the task's
// stage.
func (s *Store) MoveTask(ctx context.Context, src string, srcIdx int, dst string, dstIdx int) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.board.move(src, srcIdx, dst, dstIdx); err != nil {
		return Board{}, err
	}
	if err := s.save(ctx); err != nil {
		return Board{}, err
	}
	return s.board.Clone(), nil
}

func (s *Store) save(ctx context.Context) error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Save(ctx, s.board.Clone())
}

// SetPriorityFilter narrows column views to one priority. Filter state
// is session-scoped and never persisted.
func (s *Store) SetPriorityFilter(f domain.PriorityFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priority = f
}

// SetDueDateFilter narrows column views by due date.
func (s *Store) SetDueDateFilter(f domain.DueDateFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dueDate = f
}

// ClearFilters resets both filters to All.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priority = domain.PriorityAll
	s.dueDate = domain.DueDateAll
}

// Filters returns the current filter state.
func (s *Store) Filters() (domain.PriorityFilter, domain.DueDateFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.priority, s.dueDate
}

// ColumnView returns the named column after applying the current
// filters. It is a derived read and never mutates the board.
func (s *Store) ColumnView(columnID string) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.board.Column(columnID)
	if err != nil {
		return nil, err
	}
	return domain.FilterColumn(col, s.priority, s.dueDate, s.now()), nil
}

// Snapshot returns a detached copy of the full board.
func (s *Store) Snapshot() Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}
