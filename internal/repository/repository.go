package repository

import (
	"time"

	"github.com/taskhub/taskhub-api/internal/models"
)

// TaskRepository defines the interface for task data access. Every method is
// scoped to a single owning user.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task owned by the given user
	FindByID(id, userID uint64) (*models.Task, error)

	// List retrieves a user's tasks matching the filter, newest first
	List(filter TaskFilter) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task outright
	Delete(id, userID uint64) error

	// Stats computes the aggregate snapshot for a user's tasks; now anchors
	// the overdue cutoff
	Stats(userID uint64, now time.Time) (*models.TaskStats, error)
}

// TaskFilter holds the optional equality constraints for listing tasks.
// A nil field means no constraint.
type TaskFilter struct {
	UserID   uint64
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Category *string
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}
