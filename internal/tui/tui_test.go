package tui

import (
	"testing"

	"github.com/taskpad-dev/taskpad/internal/model"
	"github.com/taskpad-dev/taskpad/internal/notify"
	"github.com/taskpad-dev/taskpad/internal/store"
)

func TestFormatTaskRow(t *testing.T) {
	pending := model.Task{Title: "Water plants"}
	if got := formatTaskRow(pending, false); got != "[ ] Water plants" {
		t.Fatalf("pending row: %q", got)
	}

	done := model.Task{Title: "Water plants", Completed: true}
	if got := formatTaskRow(done, false); got != "[x] Water plants" {
		t.Fatalf("completed row: %q", got)
	}

	if got := formatTaskRow(pending, true); got != "[ ] Water plants *" {
		t.Fatalf("editing row: %q", got)
	}
}

func TestFormatNotice(t *testing.T) {
	ok := notify.Notification{Message: "Created \"A\"", Kind: notify.Success}
	if got := formatNotice(ok); got != "[ok] Created \"A\"" {
		t.Fatalf("success notice: %q", got)
	}

	bad := notify.Notification{Message: "boom", Kind: notify.Error}
	if got := formatNotice(bad); got != "[err] boom" {
		t.Fatalf("error notice: %q", got)
	}
}

func TestNextStatusFilterCycles(t *testing.T) {
	order := []model.StatusFilter{model.StatusAll, model.StatusPending, model.StatusCompleted, model.StatusAll}
	for i := 0; i < len(order)-1; i++ {
		if got := nextStatusFilter(order[i]); got != order[i+1] {
			t.Fatalf("after %s expected %s, got %s", order[i], order[i+1], got)
		}
	}
}

func TestNextSortOrderCycles(t *testing.T) {
	if got := nextSortOrder(model.SortDate); got != model.SortTitle {
		t.Fatalf("after date expected title, got %s", got)
	}
	if got := nextSortOrder(model.SortTitle); got != model.SortDate {
		t.Fatalf("after title expected date, got %s", got)
	}
}

func TestNewEditFormSeedsDraft(t *testing.T) {
	form := newEditForm(7, store.Draft{Title: "Shopping", Description: "milk, eggs"})
	if form.taskID != 7 {
		t.Fatalf("expected taskID 7, got %d", form.taskID)
	}
	if form.fields[fieldTitle].Value != "Shopping" {
		t.Fatalf("title field: %q", form.fields[fieldTitle].Value)
	}
	if form.fields[fieldDescription].Value != "milk, eggs" {
		t.Fatalf("description field: %q", form.fields[fieldDescription].Value)
	}
	if form.index != fieldTitle {
		t.Fatalf("expected focus on title, got %d", form.index)
	}
}

func TestNewCreateFormStartsEmpty(t *testing.T) {
	form := newCreateForm()
	if form.taskID != 0 {
		t.Fatalf("expected zero taskID, got %d", form.taskID)
	}
	for _, field := range form.fields {
		if field.Value != "" {
			t.Fatalf("field %s not empty: %q", field.Label, field.Value)
		}
	}
}
