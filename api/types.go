package api

import (
	"context"

	"board-api/board"
	"board-api/domain"
)

// Engine abstracts the board store for handlers.
type Engine interface {
	AddTask(ctx context.Context, task domain.Task, columnID string) (board.Board, error)
	DeleteTask(ctx context.Context, columnID string, taskID int64) (board.Board, error)
	MoveTask(ctx context.Context, src string, srcIdx int, dst string, dstIdx int) (board.Board, error)
	SetPriorityFilter(domain.PriorityFilter)
	SetDueDateFilter(domain.DueDateFilter)
	ClearFilters()
	ColumnView(columnID string) ([]domain.Task, error)
	Snapshot() board.Board
}

// Deduper prevents re-applying duplicate mutation commands.
type Deduper interface {
	// Add records the idempotency key and returns true if it was newly added.
	Add(ctx context.Context, key string) (bool, error)
	// Remove deletes a previously added key, used when the mutation fails.
	Remove(ctx context.Context, key string) error
}
