package board

import "board-api/domain"

// Board holds the three ordered columns keyed by stage. Column order is
// user-driven and significant; every task lives in exactly one column
// and its stage always matches that column.
type Board struct {
	Todo       []domain.Task `json:"todo"`
	InProgress []domain.Task `json:"inprogress"`
	Done       []domain.Task `json:"done"`
}

// Empty returns a board with all three columns present and empty.
func Empty() Board {
	return Board{
		Todo:       []domain.Task{},
		InProgress: []domain.Task{},
		Done:       []domain.Task{},
	}
}

func (b *Board) column(id string) (*[]domain.Task, error) {
	switch id {
	case domain.ColumnToDo:
		return &b.Todo, nil
	case domain.ColumnInProgress:
		return &b.InProgress, nil
	case domain.ColumnDone:
		return &b.Done, nil
	}
	return nil, InvalidColumnError{Column: id}
}

// Column returns a copy of the named column.
func (b *Board) Column(id string) ([]domain.Task, error) {
	col, err := b.column(id)
	if err != nil {
		return nil, err
	}
	return append([]domain.Task{}, *col...), nil
}

// Tasks returns every task on the board in column order.
func (b *Board) Tasks() []domain.Task {
	out := make([]domain.Task, 0, b.Count())
	out = append(out, b.Todo...)
	out = append(out, b.InProgress...)
	out = append(out, b.Done...)
	return out
}

// Count returns the total number of tasks across all columns.
func (b Board) Count() int {
	return len(b.Todo) + len(b.InProgress) + len(b.Done)
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() Board {
	return Board{
		Todo:       append([]domain.Task{}, b.Todo...),
		InProgress: append([]domain.Task{}, b.InProgress...),
		Done:       append([]domain.Task{}, b.Done...),
	}
}

func (b *Board) add(t domain.Task, columnID string) error {
	col, err := b.column(columnID)
	if err != nil {
		return err
	}
	*col = append(*col, t)
	return nil
}

// delete removes the task with taskID from the named column. Removing an
// absent task is a no-op, reported through the bool.
func (b *Board) delete(columnID string, taskID int64) (bool, error) {
	col, err := b.column(columnID)
	if err != nil {
		return false, err
	}
	for i, t := range *col {
		if t.ID == taskID {
			*col = removeAt(*col, i)
			return true, nil
		}
	}
	return false, nil
}

// move splices the task at srcIdx out of src and reinserts it at dstIdx
// in dst. A cross-column move rewrites the task's stage so it always
// matches its column. Both indexes are checked against their lists
// before anything changes.
func (b *Board) move(src string, srcIdx int, dst string, dstIdx int) error {
	srcCol, err := b.column(src)
	if err != nil {
		return err
	}
	dstCol, err := b.column(dst)
	if err != nil {
		return err
	}
	if srcIdx < 0 || srcIdx >= len(*srcCol) {
		return IndexOutOfRangeError{Column: src, Index: srcIdx, Length: len(*srcCol)}
	}
	limit := len(*dstCol)
	if src == dst {
		// Reinsertion happens after removal, shrinking the valid range.
		limit--
	}
	if dstIdx < 0 || dstIdx > limit {
		return IndexOutOfRangeError{Column: dst, Index: dstIdx, Length: len(*dstCol)}
	}

	moved := (*srcCol)[srcIdx]
	*srcCol = removeAt(*srcCol, srcIdx)
	if src != dst {
		if stage, ok := domain.StageForColumn(dst); ok {
			moved.Stage = stage
		}
	}
	*dstCol = insertAt(*dstCol, dstIdx, moved)
	return nil
}

func removeAt(col []domain.Task, i int) []domain.Task {
	return append(col[:i], col[i+1:]...)
}

func insertAt(col []domain.Task, i int, t domain.Task) []domain.Task {
	col = append(col, domain.Task{})
	copy(col[i+1:], col[i:])
	col[i] = t
	return col
}
