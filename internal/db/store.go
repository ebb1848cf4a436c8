package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/taskpad-dev/taskpad/internal/model"
)

var ErrNotFound = errors.New("task not found")

type Store struct {
	DB *sql.DB
}

type TaskInput struct {
	Title       string
	Description string
}

// TaskPatch applies a partial update: nil fields keep their stored value.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateTask(ctx context.Context, input TaskInput) (model.Task, error) {
	now := time.Now().UTC()
	result, err := s.DB.ExecContext(ctx,
		`INSERT INTO tasks (title, description, completed, created_at, updated_at)
		 VALUES (?, ?, 0, ?, ?)`,
		input.Title, nullString(input.Description), now, now)
	if err != nil {
		return model.Task{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Task{}, err
	}

	return s.GetTask(ctx, id)
}

func (s *Store) GetTask(ctx context.Context, taskID int64) (model.Task, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, title, description, completed, created_at, updated_at
		 FROM tasks WHERE id = ?`, taskID)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrNotFound
	}
	return task, err
}

func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, title, description, completed, created_at, updated_at
		 FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask merges the patch over the stored record and bumps updated_at.
func (s *Store) UpdateTask(ctx context.Context, taskID int64, patch TaskPatch) (model.Task, error) {
	before, err := s.GetTask(ctx, taskID)
	if err != nil {
		return model.Task{}, err
	}

	title := before.Title
	if patch.Title != nil {
		title = *patch.Title
	}
	description := before.Description
	if patch.Description != nil {
		description = *patch.Description
	}
	completed := before.Completed
	if patch.Completed != nil {
		completed = *patch.Completed
	}

	now := time.Now().UTC()
	if _, err := s.DB.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, completed = ?, updated_at = ? WHERE id = ?`,
		title, nullString(description), completed, now, taskID); err != nil {
		return model.Task{}, err
	}

	return s.GetTask(ctx, taskID)
}

func (s *Store) DeleteTask(ctx context.Context, taskID int64) error {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, taskID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var task model.Task
	var description sql.NullString
	if err := row.Scan(&task.ID, &task.Title, &description, &task.Completed,
		&task.CreatedAt, &task.UpdatedAt); err != nil {
		return model.Task{}, err
	}
	if description.Valid {
		task.Description = description.String
	}
	return task, nil
}

// nullString stores empty descriptions as NULL so the wire layer can emit
// JSON null for them.
func nullString(value string) sql.NullString {
	trimmed := strings.TrimSpace(value)
	return sql.NullString{String: trimmed, Valid: trimmed != ""}
}
