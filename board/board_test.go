package board

import (
	"errors"
	"testing"

	"board-api/domain"
)

func task(id int64, stage domain.Stage) domain.Task {
	return domain.Task{ID: id, Title: "t", Stage: stage, Priority: domain.PriorityMedium}
}

func seeded() Board {
	b := Empty()
	b.Todo = []domain.Task{task(1, domain.StageToDo), task(2, domain.StageToDo), task(3, domain.StageToDo)}
	b.Done = []domain.Task{task(4, domain.StageDone)}
	return b
}

func TestAddAppendsToColumnEnd(t *testing.T) {
	b := seeded()
	before := b.Count()

	if err := b.add(task(9, domain.StageToDo), domain.ColumnToDo); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(b.Todo) != 4 || b.Todo[3].ID != 9 {
		t.Fatalf("expected task appended, got %#v", b.Todo)
	}
	if b.Count() != before+1 {
		t.Fatalf("count changed by %d, want 1", b.Count()-before)
	}
}

func TestAddRejectsUnknownColumn(t *testing.T) {
	b := Empty()
	err := b.add(task(1, domain.StageToDo), "archived")

	var invalid InvalidColumnError
	if !errors.As(err, &invalid) || invalid.Column != "archived" {
		t.Fatalf("expected InvalidColumnError, got %v", err)
	}
}

func TestDeleteRemovesOnlyMatchingTask(t *testing.T) {
	b := seeded()

	removed, err := b.delete(domain.ColumnToDo, 2)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatal("expected task to be removed")
	}
	if len(b.Todo) != 2 || b.Todo[0].ID != 1 || b.Todo[1].ID != 3 {
		t.Fatalf("unexpected column after delete: %#v", b.Todo)
	}
	if len(b.Done) != 1 {
		t.Fatal("other columns must be unaffected")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	b := seeded()

	for i := 0; i < 2; i++ {
		if _, err := b.delete(domain.ColumnToDo, 2); err != nil {
			t.Fatalf("delete #%d: %v", i+1, err)
		}
	}
	if len(b.Todo) != 2 {
		t.Fatalf("repeated delete changed state: %#v", b.Todo)
	}
}

func TestMoveWithinColumn(t *testing.T) {
	b := seeded()
	before := b.Count()

	if err := b.move(domain.ColumnToDo, 0, domain.ColumnToDo, 2); err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(b.Todo) != 3 {
		t.Fatalf("same-column move changed length: %d", len(b.Todo))
	}
	if b.Todo[0].ID != 2 || b.Todo[1].ID != 3 || b.Todo[2].ID != 1 {
		t.Fatalf("unexpected order: %#v", b.Todo)
	}
	if b.Todo[2].Stage != domain.StageToDo {
		t.Fatal("same-column move must not change stage")
	}
	if b.Count() != before {
		t.Fatal("task count must be conserved")
	}
}

func TestMoveAcrossColumnsRewritesStage(t *testing.T) {
	b := seeded()
	before := b.Count()

	if err := b.move(domain.ColumnToDo, 0, domain.ColumnDone, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(b.Todo) != 2 || len(b.Done) != 2 {
		t.Fatalf("unexpected lengths: todo=%d done=%d", len(b.Todo), len(b.Done))
	}
	if b.Done[0].ID != 1 || b.Done[0].Stage != domain.StageDone {
		t.Fatalf("moved task wrong: %#v", b.Done[0])
	}
	if b.Count() != before {
		t.Fatal("task count must be conserved")
	}
}

func TestMoveSingleTaskBoard(t *testing.T) {
	b := Empty()
	b.Todo = []domain.Task{task(1, domain.StageToDo)}

	if err := b.move(domain.ColumnToDo, 0, domain.ColumnDone, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(b.Todo) != 0 || len(b.Done) != 1 {
		t.Fatalf("unexpected lengths: todo=%d done=%d", len(b.Todo), len(b.Done))
	}
	if b.Done[0].Stage != domain.StageDone {
		t.Fatalf("expected stage Done, got %q", b.Done[0].Stage)
	}
}

func TestMoveIndexValidation(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		srcIdx     int
		dst        string
		dstIdx     int
		wantColumn string
	}{
		{name: "source negative", src: domain.ColumnToDo, srcIdx: -1, dst: domain.ColumnDone, dstIdx: 0, wantColumn: domain.ColumnToDo},
		{name: "source past end", src: domain.ColumnToDo, srcIdx: 3, dst: domain.ColumnDone, dstIdx: 0, wantColumn: domain.ColumnToDo},
		{name: "destination past end", src: domain.ColumnToDo, srcIdx: 0, dst: domain.ColumnDone, dstIdx: 2, wantColumn: domain.ColumnDone},
		{name: "same column destination past end", src: domain.ColumnToDo, srcIdx: 0, dst: domain.ColumnToDo, dstIdx: 3, wantColumn: domain.ColumnToDo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := seeded()
			err := b.move(tt.src, tt.srcIdx, tt.dst, tt.dstIdx)

			var outOfRange IndexOutOfRangeError
			if !errors.As(err, &outOfRange) {
				t.Fatalf("expected IndexOutOfRangeError, got %v", err)
			}
			if outOfRange.Column != tt.wantColumn {
				t.Fatalf("error column %q, want %q", outOfRange.Column, tt.wantColumn)
			}
			if len(b.Todo) != 3 || len(b.Done) != 1 {
				t.Fatal("failed move must not mutate the board")
			}
		})
	}
}

func TestMoveDestinationAtListEnd(t *testing.T) {
	b := seeded()

	// Inserting at len(dst) appends.
	if err := b.move(domain.ColumnToDo, 0, domain.ColumnDone, 1); err != nil {
		t.Fatalf("move: %v", err)
	}
	if b.Done[1].ID != 1 {
		t.Fatalf("expected task appended to done, got %#v", b.Done)
	}
}

func TestCloneIsDetached(t *testing.T) {
	b := seeded()
	c := b.Clone()

	c.Todo[0].Title = "changed"
	c.Todo = append(c.Todo, task(99, domain.StageToDo))

	if b.Todo[0].Title != "t" || len(b.Todo) != 3 {
		t.Fatalf("clone mutation leaked into original: %#v", b.Todo)
	}
}
