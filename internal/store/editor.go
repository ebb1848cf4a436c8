package store

import (
	"context"
	"strings"
	"sync"

	"github.com/taskpad-dev/taskpad/internal/model"
)

// Draft is the ephemeral edit-mode state of one task. It exists only while
// the user is editing and is discarded on cancel or an acknowledged save.
type Draft struct {
	Title       string
	Description string
	Saving      bool
}

// Editor tracks per-task edit sessions: viewing -> editing -> saving ->
// viewing on success, back to editing when validation fails, the gate
// declines, or the service rejects the save. Sessions on different tasks
// are independent.
type Editor struct {
	mu     sync.Mutex
	store  *Store
	drafts map[int64]*Draft
}

func NewEditor(store *Store) *Editor {
	return &Editor{store: store, drafts: make(map[int64]*Draft)}
}

// Begin opens an edit session seeded from the task's current fields. An
// already-open session for the same task is left untouched.
func (e *Editor) Begin(task model.Task) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.drafts[task.ID]; ok {
		return
	}
	e.drafts[task.ID] = &Draft{Title: task.Title, Description: task.Description}
}

func (e *Editor) Editing(id int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.drafts[id]
	return ok
}

func (e *Editor) Draft(id int64) (Draft, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	draft, ok := e.drafts[id]
	if !ok {
		return Draft{}, false
	}
	return *draft, true
}

// SetDraft updates the in-progress fields. Ignored while a save is in
// flight so the acknowledged record and the draft cannot diverge silently.
func (e *Editor) SetDraft(id int64, title, description string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if draft, ok := e.drafts[id]; ok && !draft.Saving {
		draft.Title = title
		draft.Description = description
	}
}

// Cancel discards the draft; the task falls back to its authoritative
// fields.
func (e *Editor) Cancel(id int64) {
	e.mu.Lock()
	delete(e.drafts, id)
	e.mu.Unlock()
}

// Save pushes the draft through the store. An empty trimmed title blocks
// the save and keeps the session open, as do a declined confirmation and a
// failed update. Only a server-acknowledged save closes the session.
func (e *Editor) Save(ctx context.Context, id int64) error {
	e.mu.Lock()
	draft, ok := e.drafts[id]
	if !ok || draft.Saving {
		e.mu.Unlock()
		return nil
	}
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		e.mu.Unlock()
		return ErrEmptyTitle
	}
	draft.Saving = true
	description := draft.Description
	e.mu.Unlock()

	err := e.store.Edit(ctx, id, title, description)

	e.mu.Lock()
	defer e.mu.Unlock()
	draft, ok = e.drafts[id]
	if !ok {
		return err
	}
	if err != nil {
		draft.Saving = false
		return err
	}
	delete(e.drafts, id)
	return nil
}
