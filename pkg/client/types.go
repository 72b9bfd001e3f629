// Package client is the typed SDK for the TaskHub API. It holds the session
// state, attaches the bearer token to requests, and keeps a local snapshot of
// the caller's tasks and stats.
package client

import (
	"fmt"
	"time"
)

// User mirrors the server's user representation.
type User struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

// Task mirrors the server's task representation.
type Task struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Category    string     `json:"category"`
	UserID      uint64     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// StatusCounts breaks the task total down by status.
type StatusCounts struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

// PriorityCounts breaks the task total down by priority.
type PriorityCounts struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
}

// TaskStats is the server-computed aggregate snapshot. The client treats it
// as read-only and refreshes it after every mutating task operation.
type TaskStats struct {
	Total      int64          `json:"total"`
	ByStatus   StatusCounts   `json:"by_status"`
	ByPriority PriorityCounts `json:"by_priority"`
	Overdue    int64          `json:"overdue"`
}

// Filters narrows a task listing. Empty fields are not forwarded.
type Filters struct {
	Status   string
	Priority string
	Category string
}

// APIError carries the server's message for a rejected request.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsUnauthorized reports whether the error is an authentication failure.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == 401
}
