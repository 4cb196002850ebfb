package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func mustOpen(t *testing.T) (*Store, context.Context) {
	t.Helper()
	s, err := Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("Open(:memory:) error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, context.Background()
}

func TestOpenRunsMigrations(t *testing.T) {
	s, ctx := mustOpen(t)
	if _, _, err := s.GetEvent(ctx, "nonexistent"); err != nil {
		t.Fatalf("GetEvent on fresh store: %v", err)
	}
}

func TestUpsertEventIsIdempotent(t *testing.T) {
	s, ctx := mustOpen(t)
	e := EventRecord{UID: "evt-1", Summary: "First", Start: "20250101T100000Z", End: "20250101T110000Z"}
	if err := s.UpsertEvent(ctx, e); err != nil {
		t.Fatalf("UpsertEvent: %v", err)
	}
	e.Summary = "Updated"
	if err := s.UpsertEvent(ctx, e); err != nil {
		t.Fatalf("UpsertEvent (update): %v", err)
	}

	got, found, err := s.GetEvent(ctx, "evt-1")
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if !found {
		t.Fatal("GetEvent: expected row to exist")
	}
	if got.Summary != "Updated" {
		t.Fatalf("GetEvent: got summary %q, want %q", got.Summary, "Updated")
	}

	n, err := s.CountEvents(ctx, EventCondition{})
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if n != 1 {
		t.Fatalf("CountEvents: got %d, want 1 (upsert must not duplicate)", n)
	}
}

func TestListEventsOrdersByStart(t *testing.T) {
	s, ctx := mustOpen(t)
	_ = s.UpsertEvent(ctx, EventRecord{UID: "b", Start: "20250201T000000Z"})
	_ = s.UpsertEvent(ctx, EventRecord{UID: "a", Start: "20250101T000000Z"})

	evs, err := s.ListEvents(ctx, EventCondition{}, Pager{})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(evs) != 2 || evs[0].UID != "a" || evs[1].UID != "b" {
		t.Fatalf("ListEvents: got %+v, want [a, b] ordered by start", evs)
	}
}

func TestGetOrAssignShortIDStableAndUnique(t *testing.T) {
	s, ctx := mustOpen(t)
	id1, err := s.GetOrAssignShortID(ctx, "uid-1", "event")
	if err != nil {
		t.Fatalf("GetOrAssignShortID: %v", err)
	}
	id1Again, err := s.GetOrAssignShortID(ctx, "uid-1", "event")
	if err != nil {
		t.Fatalf("GetOrAssignShortID (repeat): %v", err)
	}
	if id1 != id1Again {
		t.Fatalf("short ID changed across calls: %d != %d", id1, id1Again)
	}

	id2, err := s.GetOrAssignShortID(ctx, "uid-2", "todo")
	if err != nil {
		t.Fatalf("GetOrAssignShortID (second uid): %v", err)
	}
	if id2 == id1 {
		t.Fatalf("two distinct UIDs share short ID %d", id1)
	}

	uid, kind, found, err := s.GetByShortID(ctx, id2)
	if err != nil {
		t.Fatalf("GetByShortID: %v", err)
	}
	if !found || uid != "uid-2" || kind != "todo" {
		t.Fatalf("GetByShortID: got (%q, %q, %v), want (uid-2, todo, true)", uid, kind, found)
	}
}

func TestListTodosPriorityNoneLast(t *testing.T) {
	s, ctx := mustOpen(t)
	_ = s.UpsertTodo(ctx, TodoRecord{UID: "none", Priority: 0})
	_ = s.UpsertTodo(ctx, TodoRecord{UID: "high", Priority: 1})
	_ = s.UpsertTodo(ctx, TodoRecord{UID: "low", Priority: 9})

	todos, err := s.ListTodos(ctx, TodoCondition{}, TodoSort{Key: SortByPriority, NoneLast: true}, Pager{})
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 3 {
		t.Fatalf("ListTodos: got %d rows, want 3", len(todos))
	}
	if todos[len(todos)-1].UID != "none" {
		t.Fatalf("ListTodos: priority-0 todo must sort last with NoneLast, got order %v", names(todos))
	}
}

func names(todos []TodoRecord) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.UID
	}
	return out
}

func TestUpsertResourceRoundTrip(t *testing.T) {
	s, ctx := mustOpen(t)
	r := ResourceRecord{UID: "uid-1", BackendKind: "caldav", ResourceID: "/cal/uid-1.ics", Metadata: `{"etag":"\"abc\""}`}
	if err := s.UpsertResource(ctx, r); err != nil {
		t.Fatalf("UpsertResource: %v", err)
	}
	got, found, err := s.GetResource(ctx, "uid-1", "caldav")
	if err != nil {
		t.Fatalf("GetResource: %v", err)
	}
	if !found || got.ResourceID != r.ResourceID {
		t.Fatalf("GetResource: got %+v, want %+v", got, r)
	}
}
