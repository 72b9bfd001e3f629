package client

import (
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// TaskManager holds the client's view of the task collection: the fetched
// list and the latest stats snapshot. It is the sole mutator of that state.
// Every mutating operation re-fetches stats from the server rather than
// recomputing locally, so the list and the dashboard aggregate cannot drift.
type TaskManager struct {
	client *Client

	mu    sync.RWMutex
	tasks []Task
	stats *TaskStats
}

// NewTaskManager creates a TaskManager over the given client.
func NewTaskManager(client *Client) *TaskManager {
	return &TaskManager{client: client}
}

type taskEnvelope struct {
	Success bool `json:"success"`
	Data    Task `json:"data"`
}

type taskListEnvelope struct {
	Success bool   `json:"success"`
	Data    []Task `json:"data"`
}

type statsEnvelope struct {
	Success bool      `json:"success"`
	Data    TaskStats `json:"data"`
}

// Fetch replaces the held task list with the server's response. Only
// non-empty filters become query parameters.
func (m *TaskManager) Fetch(filters Filters) error {
	query := url.Values{}
	if filters.Status != "" {
		query.Set("status", filters.Status)
	}
	if filters.Priority != "" {
		query.Set("priority", filters.Priority)
	}
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}

	var resp taskListEnvelope
	if err := m.client.do(http.MethodGet, "/tasks", query, nil, &resp); err != nil {
		return err
	}

	m.mu.Lock()
	m.tasks = resp.Data
	m.mu.Unlock()
	return nil
}

// FetchStats replaces the held stats snapshot.
func (m *TaskManager) FetchStats() error {
	var resp statsEnvelope
	if err := m.client.do(http.MethodGet, "/tasks/stats", nil, nil, &resp); err != nil {
		return err
	}

	m.mu.Lock()
	m.stats = &resp.Data
	m.mu.Unlock()
	return nil
}

// TaskInput holds the fields for creating a task. Zero values are omitted so
// the server applies its defaults.
type TaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    string     `json:"category,omitempty"`
}

// Create submits a new task. On success the record is prepended to the held
// list and the stats snapshot is refreshed; on failure the list is unchanged.
func (m *TaskManager) Create(input TaskInput) (*Task, error) {
	var resp taskEnvelope
	if err := m.client.do(http.MethodPost, "/tasks", nil, input, &resp); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.tasks = append([]Task{resp.Data}, m.tasks...)
	m.mu.Unlock()

	m.refreshStats()
	return &resp.Data, nil
}

// TaskUpdate holds a partial update. Nil fields are not sent; ClearDueDate
// sends an explicit null to remove the due date.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	DueDate      *time.Time
	ClearDueDate bool
	Category     *string
}

func (u TaskUpdate) payload() map[string]any {
	body := map[string]any{}
	if u.Title != nil {
		body["title"] = *u.Title
	}
	if u.Description != nil {
		body["description"] = *u.Description
	}
	if u.Status != nil {
		body["status"] = *u.Status
	}
	if u.Priority != nil {
		body["priority"] = *u.Priority
	}
	if u.ClearDueDate {
		body["due_date"] = nil
	} else if u.DueDate != nil {
		body["due_date"] = u.DueDate.Format(time.RFC3339)
	}
	if u.Category != nil {
		body["category"] = *u.Category
	}
	return body
}

// Update submits a partial update. On success the matching record is replaced
// in place and the stats snapshot is refreshed.
func (m *TaskManager) Update(id uint64, update TaskUpdate) (*Task, error) {
	var resp taskEnvelope
	if err := m.client.do(http.MethodPut, taskPath(id), nil, update.payload(), &resp); err != nil {
		return nil, err
	}

	m.mu.Lock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i] = resp.Data
			break
		}
	}
	m.mu.Unlock()

	m.refreshStats()
	return &resp.Data, nil
}

// Delete removes a task. On success the record leaves the held list and the
// stats snapshot is refreshed.
func (m *TaskManager) Delete(id uint64) error {
	var resp taskEnvelope
	if err := m.client.do(http.MethodDelete, taskPath(id), nil, nil, &resp); err != nil {
		return err
	}

	m.mu.Lock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.refreshStats()
	return nil
}

// Get fetches a single task by ID without touching the held list. It returns
// nil on any failure; callers do not distinguish not-found from transport
// errors.
func (m *TaskManager) Get(id uint64) *Task {
	var resp taskEnvelope
	if err := m.client.do(http.MethodGet, taskPath(id), nil, nil, &resp); err != nil {
		return nil
	}
	return &resp.Data
}

// Tasks returns a copy of the held task list.
func (m *TaskManager) Tasks() []Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tasks := make([]Task, len(m.tasks))
	copy(tasks, m.tasks)
	return tasks
}

// Stats returns the held stats snapshot, or nil before the first fetch.
func (m *TaskManager) Stats() *TaskStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// refreshStats pulls a fresh snapshot after a mutation. A failed refresh
// leaves the previous snapshot in place; the next mutation tries again.
func (m *TaskManager) refreshStats() {
	_ = m.FetchStats()
}

func taskPath(id uint64) string {
	return "/tasks/" + strconv.FormatUint(id, 10)
}
