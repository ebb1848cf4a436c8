package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskpad-dev/taskpad/internal/db"
	"github.com/taskpad-dev/taskpad/internal/server"
)

// newTestClient points a Client at a real instance of the bundled task
// service so the wire contract is exercised end to end.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	dbConn, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	srv := httptest.NewServer(server.NewServer(db.NewStore(dbConn)).Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = dbConn.Close()
	})
	return NewClient(srv.URL)
}

func TestCreateThenListRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	created, err := client.Create(ctx, "A", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Title != "A" || created.Completed {
		t.Fatalf("unexpected created task: %+v", created)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected server-assigned timestamps: %+v", created)
	}

	tasks, err := client.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, task := range tasks {
		if task.Title == "A" && !task.Completed {
			found = true
		}
	}
	if !found {
		t.Fatalf("created task missing from list: %v", tasks)
	}
}

func TestUpdateIsPartial(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	created, err := client.Create(ctx, "Walk the dog", "before breakfast")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed := true
	updated, err := client.Update(ctx, created.ID, TaskPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("expected completed=true, got %+v", updated)
	}
	if updated.Title != "Walk the dog" || updated.Description != "before breakfast" {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updated_at went backwards: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpdateClearsDescription(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	created, err := client.Create(ctx, "Tidy up", "the garage")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Tidy up"
	empty := ""
	updated, err := client.Update(ctx, created.ID, TaskPatch{Title: &title, Description: &empty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != "" {
		t.Fatalf("expected description cleared, got %q", updated.Description)
	}
}

func TestUpdateUnknownIdIsServiceError(t *testing.T) {
	client := newTestClient(t)

	completed := true
	_, err := client.Update(context.Background(), 9999, TaskPatch{Completed: &completed})
	var serr *ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if !serr.NotFound() {
		t.Fatalf("expected 404 semantics, got status %d", serr.Status)
	}
}

func TestRemoveThenRepeatRemove(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	created, err := client.Create(ctx, "Disposable", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := client.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	err = client.Remove(ctx, created.ID)
	var serr *ServiceError
	if !errors.As(err, &serr) || !serr.NotFound() {
		t.Fatalf("expected NotFound ServiceError on repeat remove, got %v", err)
	}
}

func TestServiceErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance window"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.List(context.Background())
	var serr *ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if serr.Status != http.StatusServiceUnavailable || serr.Body != "maintenance window" {
		t.Fatalf("unexpected service error: %+v", serr)
	}
}

func TestUnreachableServiceIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := NewClient(srv.URL)
	_, err := client.List(context.Background())
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}
