package tui

import (
	"fmt"

	"github.com/taskpad-dev/taskpad/internal/model"
	"github.com/taskpad-dev/taskpad/internal/notify"
)

func formatTaskRow(task model.Task, editing bool) string {
	marker := "[ ]"
	if task.Completed {
		marker = "[x]"
	}
	suffix := ""
	if editing {
		suffix = " *"
	}
	return fmt.Sprintf("%s %s%s", marker, task.Title, suffix)
}

func formatNotice(notice notify.Notification) string {
	label := "ok"
	if notice.Kind == notify.Error {
		label = "err"
	}
	return fmt.Sprintf("[%s] %s", label, notice.Message)
}

func nextStatusFilter(current model.StatusFilter) model.StatusFilter {
	switch current {
	case model.StatusAll:
		return model.StatusPending
	case model.StatusPending:
		return model.StatusCompleted
	default:
		return model.StatusAll
	}
}

func nextSortOrder(current model.SortOrder) model.SortOrder {
	if current == model.SortDate {
		return model.SortTitle
	}
	return model.SortDate
}
