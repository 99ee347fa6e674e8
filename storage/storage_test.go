package storage

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"

	"board-api/board"
	"board-api/domain"
)

func newTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger, _ := test.NewNullLogger()
	return New(client, "", logger), mr
}

func TestLoadAbsentKeyReturnsEmptyBoard(t *testing.T) {
	store, _ := newTestStorage(t)

	b := store.Load(context.Background())
	if b.Count() != 0 {
		t.Fatalf("expected empty board, got %d tasks", b.Count())
	}
	if b.Todo == nil || b.InProgress == nil || b.Done == nil {
		t.Fatal("all three columns must be present")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStorage(t)
	ctx := context.Background()

	in := board.Empty()
	in.Todo = []domain.Task{{
		ID:          1756000000000,
		Title:       "Write report",
		Description: "Q3 summary",
		Stage:       domain.StageToDo,
		Priority:    domain.PriorityHigh,
		DueDate:     domain.DateOf(time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local)),
		Reminder:    domain.Instant{Time: time.Date(2026, time.September, 4, 9, 30, 0, 0, time.Local)},
		Category:    "Work",
	}}
	in.Done = []domain.Task{{ID: 2, Title: "shipped", Stage: domain.StageDone, Priority: domain.PriorityLow, Category: "General"}}

	if err := store.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := store.Load(ctx)
	if out.Count() != 2 {
		t.Fatalf("expected 2 tasks, got %d", out.Count())
	}
	got := out.Todo[0]
	if got.ID != in.Todo[0].ID || got.Title != "Write report" || got.Stage != domain.StageToDo {
		t.Fatalf("round trip mismatch: %#v", got)
	}
	if got.DueDate.Format("2006-01-02") != "2026-09-05" {
		t.Fatalf("unexpected due date: %v", got.DueDate)
	}
	if !got.Reminder.Equal(in.Todo[0].Reminder.Time) {
		t.Fatalf("unexpected reminder: %v", got.Reminder)
	}
}

func TestSaveOverwritesPriorSnapshot(t *testing.T) {
	store, _ := newTestStorage(t)
	ctx := context.Background()

	first := board.Empty()
	first.Todo = []domain.Task{{ID: 1, Title: "a", Stage: domain.StageToDo}}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := board.Empty()
	second.Done = []domain.Task{{ID: 2, Title: "b", Stage: domain.StageDone}}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := store.Load(ctx)
	if len(out.Todo) != 0 || len(out.Done) != 1 || out.Done[0].ID != 2 {
		t.Fatalf("expected second snapshot only, got %#v", out)
	}
}

func TestLoadMalformedPayloadReturnsEmptyBoard(t *testing.T) {
	store, mr := newTestStorage(t)

	if err := mr.Set(DefaultKey, "{not json"); err != nil {
		t.Fatalf("seed corrupt payload: %v", err)
	}

	b := store.Load(context.Background())
	if b.Count() != 0 || b.Todo == nil || b.InProgress == nil || b.Done == nil {
		t.Fatalf("expected empty default board, got %#v", b)
	}
}

func TestLoadPartialPayloadFillsColumns(t *testing.T) {
	store, mr := newTestStorage(t)

	if err := mr.Set(DefaultKey, `{"todo":[{"id":1,"title":"a","description":"d","stage":"To Do","priority":"Low","dueDate":"","reminder":"","category":"General"}]}`); err != nil {
		t.Fatalf("seed partial payload: %v", err)
	}

	b := store.Load(context.Background())
	if len(b.Todo) != 1 {
		t.Fatalf("expected stored todo task, got %#v", b.Todo)
	}
	if b.InProgress == nil || b.Done == nil {
		t.Fatal("missing columns must be initialized empty")
	}
}
