package tui

import (
	"github.com/jesseduffield/gocui"

	"github.com/taskpad-dev/taskpad/internal/store"
)

const (
	fieldTitle = iota
	fieldDescription
)

type formField struct {
	Label string
	Value string
}

// formState backs both the create form and the edit form. taskID zero means
// a new task; otherwise the form tracks the editor draft for that task.
type formState struct {
	taskID int64
	fields []formField
	index  int
}

func newCreateForm() *formState {
	return &formState{
		fields: []formField{
			{Label: "Title"},
			{Label: "Description"},
		},
	}
}

func newEditForm(taskID int64, draft store.Draft) *formState {
	return &formState{
		taskID: taskID,
		fields: []formField{
			{Label: "Title", Value: draft.Title},
			{Label: "Description", Value: draft.Description},
		},
	}
}

type formEditor struct {
	ui *UI
}

func (e *formEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	ui := e.ui
	if ui == nil || ui.form == nil || view == nil {
		return false
	}
	field := &ui.form.fields[ui.form.index]

	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(field.Value)
		if len(runes) > 0 {
			field.Value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		field.Value += " "
	case gocui.KeyCtrlU:
		field.Value = ""
	}

	if ch != 0 && ch != '\n' && ch != '\r' && mod == 0 {
		field.Value += string(ch)
	}

	// Keep the editor draft current so a reopened form resumes where the
	// user left off.
	if ui.form.taskID != 0 {
		ui.editor.SetDraft(ui.form.taskID, ui.form.fields[fieldTitle].Value, ui.form.fields[fieldDescription].Value)
	}

	ui.renderForm(view)
	return true
}
