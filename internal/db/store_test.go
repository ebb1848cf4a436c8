package db

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateTaskSetsServerOwnedFields(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	created, err := store.CreateTask(context.Background(), TaskInput{
		Title:       "Write tests",
		Description: "Add coverage",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected task ID to be set")
	}
	if created.Completed {
		t.Fatalf("new tasks must start pending")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
	if created.UpdatedAt.Before(created.CreatedAt) {
		t.Fatalf("updated_at %v precedes created_at %v", created.UpdatedAt, created.CreatedAt)
	}
}

func TestUpdateTaskMergesPatch(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	created, err := store.CreateTask(context.Background(), TaskInput{Title: "Original", Description: "keep me"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	completed := true
	updated, err := store.UpdateTask(context.Background(), created.ID, TaskPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("expected completed=true")
	}
	if updated.Title != "Original" || updated.Description != "keep me" {
		t.Fatalf("partial update touched unspecified fields: %v", updated)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("updated_at must not precede created_at")
	}

	title := "Renamed"
	empty := ""
	updated, err = store.UpdateTask(context.Background(), created.ID, TaskPatch{Title: &title, Description: &empty})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Title != "Renamed" || updated.Description != "" {
		t.Fatalf("expected title rename and cleared description, got %v", updated)
	}
}

func TestUpdateUnknownTask(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	title := "ghost"
	if _, err := store.UpdateTask(context.Background(), 99, TaskPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	created, err := store.CreateTask(context.Background(), TaskInput{Title: "Short lived"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := store.DeleteTask(context.Background(), created.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if err := store.DeleteTask(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
	if _, err := store.GetTask(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected task to be gone, got %v", err)
	}
}

func TestListTasksNewestFirst(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := store.CreateTask(context.Background(), TaskInput{Title: title}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	tasks, err := store.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "third" || tasks[2].Title != "first" {
		t.Fatalf("expected newest first, got %v %v %v", tasks[0].Title, tasks[1].Title, tasks[2].Title)
	}
}

func newTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	dbConn, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return NewStore(dbConn), func() {
		_ = dbConn.Close()
	}
}
