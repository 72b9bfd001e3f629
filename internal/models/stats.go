package models

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

// TaskStats is a derived aggregate over one user's tasks. It is computed on
// demand and never persisted; a task counts as overdue when its due date falls
// strictly before the start of the current day and its status is not completed.
type TaskStats struct {
	Total      int64          `json:"total"`
	ByStatus   StatusCounts   `json:"by_status"`
	ByPriority PriorityCounts `json:"by_priority"`
	Overdue    int64          `json:"overdue"`
}
