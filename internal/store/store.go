package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taskpad-dev/taskpad/internal/api"
	"github.com/taskpad-dev/taskpad/internal/model"
)

// Service is the remote task resource the store synchronizes against.
// *api.Client satisfies it; tests substitute fakes.
type Service interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, title, description string) (model.Task, error)
	Update(ctx context.Context, id int64, patch api.TaskPatch) (model.Task, error)
	Remove(ctx context.Context, id int64) error
}

// Notifier receives the transient outcome messages the store emits after
// each acknowledged or failed mutation.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type LoadState int

const (
	StateLoading LoadState = iota
	StateReady
	StateErrored
)

// ValidationError is raised before any network call, currently only for an
// empty trimmed title.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var ErrEmptyTitle = &ValidationError{Reason: "title is required"}

// ErrDeclined reports that the confirmation gate rejected a destructive
// operation. The caller must treat it as a clean abort: no state changed
// and no notification was emitted.
var ErrDeclined = errors.New("confirmation declined")

type Counts struct {
	Total     int
	Completed int
	Pending   int
}

// Store holds the authoritative mirror of server-confirmed task state plus
// the client-only view filter. Mutations apply only after the service
// acknowledges them, so there is never interim optimistic state to roll
// back. Operations run on per-action goroutines; the mutex stands in for
// the single logical thread of control the design assumes.
type Store struct {
	mu       sync.Mutex
	service  Service
	notify   Notifier
	gate     Gate
	collator *collate.Collator

	tasks   []model.Task
	filter  model.Filter
	state   LoadState
	loadErr error

	onChange func()
}

func New(service Service, notifier Notifier, gate Gate, locale language.Tag) *Store {
	return &Store{
		service:  service,
		notify:   notifier,
		gate:     gate,
		collator: collate.New(locale),
		filter:   model.Filter{Status: model.StatusAll, Sort: model.SortDate},
		state:    StateLoading,
	}
}

// OnChange registers a callback fired after any change to the authoritative
// list, the view filter or the load state. The presentation layer uses it
// to schedule a redraw.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) changed() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Load fetches the full list from the service. A failure leaves the store
// errored until the user forces another Load; there is no partial retry.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.loadErr = nil
	s.mu.Unlock()
	s.changed()

	tasks, err := s.service.List(ctx)

	s.mu.Lock()
	if err != nil {
		s.state = StateErrored
		s.loadErr = err
	} else {
		s.state = StateReady
		s.tasks = tasks
	}
	s.mu.Unlock()
	s.changed()
	return err
}

func (s *Store) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Create submits a new task and prepends the acknowledged record. The list
// is untouched on failure.
func (s *Store) Create(ctx context.Context, title, description string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return ErrEmptyTitle
	}

	created, err := s.service.Create(ctx, title, description)
	if err != nil {
		s.notify.Error(err.Error())
		return err
	}

	s.mu.Lock()
	s.tasks = append([]model.Task{created}, s.tasks...)
	s.mu.Unlock()
	s.notify.Success(fmt.Sprintf("Created %q", created.Title))
	s.changed()
	return nil
}

// Toggle flips the completed flag through the service and replaces the
// acknowledged record by id.
func (s *Store) Toggle(ctx context.Context, id int64, completed bool) error {
	updated, err := s.service.Update(ctx, id, api.TaskPatch{Completed: &completed})
	if err != nil {
		s.notify.Error(err.Error())
		return err
	}

	s.replace(updated)
	if completed {
		s.notify.Success(fmt.Sprintf("Completed %q", updated.Title))
	} else {
		s.notify.Success(fmt.Sprintf("Reopened %q", updated.Title))
	}
	s.changed()
	return nil
}

// Edit rewrites title and description after passing the confirmation gate.
// An empty description clears it server-side.
func (s *Store) Edit(ctx context.Context, id int64, title, description string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return ErrEmptyTitle
	}
	if !s.gate.Confirm(ctx, "Save changes to this task?") {
		return ErrDeclined
	}

	updated, err := s.service.Update(ctx, id, api.TaskPatch{Title: &title, Description: &description})
	if err != nil {
		s.notify.Error(err.Error())
		return err
	}

	s.replace(updated)
	s.notify.Success(fmt.Sprintf("Updated %q", updated.Title))
	s.changed()
	return nil
}

// Remove deletes a task after passing the confirmation gate. A declined
// gate aborts silently.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if !s.gate.Confirm(ctx, "Delete this task?") {
		return ErrDeclined
	}

	if err := s.service.Remove(ctx, id); err != nil {
		s.notify.Error(err.Error())
		return err
	}

	s.mu.Lock()
	kept := s.tasks[:0]
	for _, task := range s.tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	s.tasks = kept
	s.mu.Unlock()
	s.notify.Success("Task deleted")
	s.changed()
	return nil
}

// replace swaps the matching task by id. A missing id, e.g. after a
// concurrent delete, is a no-op.
func (s *Store) replace(updated model.Task) {
	s.mu.Lock()
	for i, task := range s.tasks {
		if task.ID == updated.ID {
			s.tasks[i] = updated
			break
		}
	}
	s.mu.Unlock()
}

func (s *Store) SetSearch(search string) {
	s.mu.Lock()
	s.filter.Search = search
	s.mu.Unlock()
	s.changed()
}

func (s *Store) SetStatus(status model.StatusFilter) {
	s.mu.Lock()
	s.filter.Status = status
	s.mu.Unlock()
	s.changed()
}

func (s *Store) SetSort(order model.SortOrder) {
	s.mu.Lock()
	s.filter.Sort = order
	s.mu.Unlock()
	s.changed()
}

func (s *Store) Filter() model.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Tasks recomputes the derived view on every call: filter by status, then
// by search text, then sort. Nothing is cached.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deriveView(s.tasks, s.filter, s.collator)
}

// Counts reports totals over the authoritative list, ignoring the view
// filter.
func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := Counts{Total: len(s.tasks)}
	for _, task := range s.tasks {
		if task.Completed {
			counts.Completed++
		} else {
			counts.Pending++
		}
	}
	return counts
}

// Task returns the authoritative record by id.
func (s *Store) Task(id int64) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, task := range s.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}
