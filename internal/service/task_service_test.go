package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/OUCHAALI/task-manager-app/internal/repo"

	_ "modernc.org/sqlite"
)

func newTestService(t *testing.T) *TaskService {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := repo.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return NewTaskService(repo.NewSQLiteTaskRepo(db))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateRejectsEmptyTitle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Create(ctx, title, nil, false); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("Create(%q) got %v, want ErrEmptyTitle", title, err)
		}
	}

	// Nothing may reach storage on a validation failure.
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list tasks: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Rejected creates persisted %d rows", len(list))
	}
}

func TestCreateTrimsTitle(t *testing.T) {
	svc := newTestService(t)

	task, err := svc.Create(context.Background(), "  Buy milk  ", nil, false)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	if task.Title != "Buy milk" {
		t.Errorf("Title = %q, want %q", task.Title, "Buy milk")
	}
	if task.Completed {
		t.Error("Completed should default to false")
	}
}

func TestPartialUpdateKeepsUnsuppliedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk", strPtr("two liters"), false)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	// Supplying only completed must not touch title or description,
	// and applying the same patch twice must not change the outcome.
	for i := 0; i < 2; i++ {
		updated, err := svc.Update(ctx, created.ID, UpdateParams{Completed: boolPtr(true)})
		if err != nil {
			t.Fatalf("Failed to update task (pass %d): %v", i+1, err)
		}
		if updated.Title != "Buy milk" {
			t.Errorf("Title changed to %q", updated.Title)
		}
		if updated.Description == nil || *updated.Description != "two liters" {
			t.Errorf("Description changed: %+v", updated.Description)
		}
		if !updated.Completed {
			t.Error("Completed not applied")
		}
	}
}

func TestUpdateClearsDescriptionOnExplicitNull(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk", strPtr("two liters"), false)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, UpdateParams{HasDescription: true, Description: nil})
	if err != nil {
		t.Fatalf("Failed to update task: %v", err)
	}
	if updated.Description != nil {
		t.Errorf("Description should be cleared, got %q", *updated.Description)
	}
	if updated.Title != "Buy milk" {
		t.Errorf("Title changed to %q", updated.Title)
	}
}

func TestUpdateRejectsEmptyTitle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk", nil, false)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	if _, err := svc.Update(ctx, created.ID, UpdateParams{Title: strPtr("  ")}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("Got %v, want ErrEmptyTitle", err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to get task: %v", err)
	}
	if got.Title != "Buy milk" {
		t.Errorf("Rejected update changed title to %q", got.Title)
	}
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), 42, UpdateParams{Completed: boolPtr(true)})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Got %v, want ErrNotFound", err)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Got %v, want ErrNotFound", err)
	}
}

func TestDeleteThenGetReturnsNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk", nil, false)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Failed to delete task: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Got %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleting a missing id got %v, want ErrNotFound", err)
	}
}

func TestListMatchesLastWrite(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "a", nil, false)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	b, err := svc.Create(ctx, "b", strPtr("keep"), false)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	if _, err := svc.Update(ctx, a.ID, UpdateParams{Title: strPtr("a2")}); err != nil {
		t.Fatalf("Failed to update task: %v", err)
	}
	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Failed to delete task: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list tasks: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Got %d tasks, want 1", len(list))
	}
	if list[0].ID != a.ID || list[0].Title != "a2" {
		t.Errorf("List entry = %+v, want id=%d title=a2", list[0], a.ID)
	}
}
