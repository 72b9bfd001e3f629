package dto

import (
	"time"

	"github.com/taskhub/taskhub-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	Category    string              `json:"category"`
	UserID      uint64              `json:"user_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	CompletedAt *time.Time          `json:"completed_at"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Success bool    `json:"success"`
	Data    TaskDTO `json:"data"`
}

// TaskListResponse wraps the full filtered task list; there is no pagination,
// the list replaces the client's held state wholesale.
type TaskListResponse struct {
	Success bool      `json:"success"`
	Data    []TaskDTO `json:"data"`
}

// StatsResponse wraps the derived stats snapshot.
type StatsResponse struct {
	Success bool             `json:"success"`
	Data    models.TaskStats `json:"data"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Category:    task.Category,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		CompletedAt: task.CompletedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
