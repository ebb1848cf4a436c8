package model

import "time"

// Task mirrors a record held by the remote task service. The service owns
// ID, CreatedAt and UpdatedAt; the client never invents them.
type Task struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusCompleted StatusFilter = "completed"
	StatusPending   StatusFilter = "pending"
)

type SortOrder string

const (
	SortDate  SortOrder = "date"
	SortTitle SortOrder = "title"
)

// Filter is pure presentation state. It is never persisted and carries no
// invariant tied to the task list itself.
type Filter struct {
	Search string
	Status StatusFilter
	Sort   SortOrder
}
