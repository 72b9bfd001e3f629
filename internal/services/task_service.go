package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskhub/taskhub-api/internal/constants"
	"github.com/taskhub/taskhub-api/internal/models"
	"github.com/taskhub/taskhub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title must be 100 characters or less")
	ErrDescriptionTooLong = errors.New("description must be 500 characters or less")
	ErrCategoryTooLong    = errors.New("category must be 50 characters or less")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidPriority    = errors.New("invalid priority value")
)

// TaskService handles task business logic. Every operation is scoped to the
// owning user; callers pass the authenticated user's ID, never one from the
// request body.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasksInput represents the optional filters for listing tasks. Empty
// strings mean no constraint on that field.
type ListTasksInput struct {
	UserID   uint64
	Status   string
	Priority string
	Category string
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
	Category    string
	UserID      uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// untouched; ClearDueDate removes the due date when the client sent an
// explicit null.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
	Category     *string
}

// ListTasks returns the user's tasks matching the provided filters
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{UserID: input.UserID}

	if input.Status != "" {
		status := models.TaskStatus(input.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		filter.Status = &status
	}
	if input.Priority != "" {
		priority := models.TaskPriority(input.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
		filter.Priority = &priority
	}
	if input.Category != "" {
		category := input.Category
		filter.Category = &category
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a single task owned by the user
func (s *TaskService) GetTask(taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask creates a new task with validation and defaults
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if err := validateTaskFields(input.Title, input.Description, input.Category); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Category:    input.Category,
		UserID:      input.UserID,
	}

	if task.Status == models.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to a task owned by the user. Status
// transitions are unrestricted; moving into completed stamps the completion
// time and moving out of it clears it.
func (s *TaskService) UpdateTask(taskID, userID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(taskID, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		if len(*input.Title) > constants.MaxTitleLength {
			return nil, ErrTitleTooLong
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		if len(*input.Description) > constants.MaxDescriptionLength {
			return nil, ErrDescriptionTooLong
		}
		task.Description = *input.Description
	}
	if input.Category != nil {
		if len(*input.Category) > constants.MaxCategoryLength {
			return nil, ErrCategoryTooLong
		}
		task.Category = *input.Category
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		if *input.Status != task.Status {
			if *input.Status == models.TaskStatusCompleted {
				now := time.Now()
				task.CompletedAt = &now
			} else {
				task.CompletedAt = nil
			}
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task owned by the user. The removal is permanent.
func (s *TaskService) DeleteTask(taskID, userID uint64) (*models.Task, error) {
	task, err := s.GetTask(taskID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Delete(taskID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return task, nil
}

// Stats returns the aggregate snapshot for the user's tasks
func (s *TaskService) Stats(userID uint64) (*models.TaskStats, error) {
	stats, err := s.taskRepo.Stats(userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return stats, nil
}

func validateTaskFields(title, description, category string) error {
	if len(title) > constants.MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(description) > constants.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if len(category) > constants.MaxCategoryLength {
		return ErrCategoryTooLong
	}
	return nil
}
