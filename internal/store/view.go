package store

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"

	"github.com/taskpad-dev/taskpad/internal/model"
)

// deriveView projects the authoritative list through the view filter. The
// steps are strictly ordered: completion filter, then search match, then
// sort, so the sort only ever orders the surviving subset. The input slice
// is never modified.
func deriveView(tasks []model.Task, filter model.Filter, collator *collate.Collator) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		switch filter.Status {
		case model.StatusCompleted:
			if !task.Completed {
				continue
			}
		case model.StatusPending:
			if task.Completed {
				continue
			}
		}
		out = append(out, task)
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		matched := out[:0]
		for _, task := range out {
			if strings.Contains(strings.ToLower(task.Title), needle) {
				matched = append(matched, task)
			}
		}
		out = matched
	}

	// Stable sorts keep input order on ties.
	switch filter.Sort {
	case model.SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].Title, out[j].Title) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
