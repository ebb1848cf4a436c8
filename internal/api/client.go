package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/taskpad-dev/taskpad/internal/model"
)

// DefaultBaseURL matches the loopback address the bundled task service
// listens on.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Client is a thin HTTP binding for the task resource. Every call does a
// single round trip: no retries, no explicit deadline beyond whatever the
// underlying transport imposes.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
}

// TransportError means the request never produced a response: the service
// was unreachable or the connection died mid-flight.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("task service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError means the service answered with a non-2xx status. The body
// is kept verbatim for the notification surface.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("task service returned %d", e.Status)
	}
	return fmt.Sprintf("task service returned %d: %s", e.Status, body)
}

func (e *ServiceError) NotFound() bool { return e.Status == http.StatusNotFound }

// TaskPatch is a partial update. Nil fields are left unchanged server-side.
// A Description pointing at the empty string clears it.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// taskPayload is the wire shape: description is string|null, timestamps are
// RFC 3339.
type taskPayload struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p taskPayload) task() model.Task {
	task := model.Task{
		ID:        p.ID,
		Title:     p.Title,
		Completed: p.Completed,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	return task
}

func (c *Client) List(ctx context.Context) ([]model.Task, error) {
	var payload []taskPayload
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &payload); err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(payload))
	for _, item := range payload {
		tasks = append(tasks, item.task())
	}
	return tasks, nil
}

type createRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// Create submits a new task. The caller is responsible for trimming; the
// service assigns id, timestamps and completed=false.
func (c *Client) Create(ctx context.Context, title, description string) (model.Task, error) {
	body := createRequest{Title: title}
	if description != "" {
		body.Description = &description
	}
	var payload taskPayload
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &payload); err != nil {
		return model.Task{}, err
	}
	return payload.task(), nil
}

func (c *Client) Update(ctx context.Context, id int64, patch TaskPatch) (model.Task, error) {
	var payload taskPayload
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), patch, &payload); err != nil {
		return model.Task{}, err
	}
	return payload.task(), nil
}

func (c *Client) Remove(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return &ServiceError{Status: resp.StatusCode, Body: string(data)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
