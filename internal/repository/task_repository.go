package repository

import (
	"time"

	"github.com/taskhub/taskhub-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task owned by the given user
func (r *GormTaskRepository) FindByID(id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves a user's tasks matching the filter, newest first
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	query := r.db.Model(&models.Task{}).Where("user_id = ?", filter.UserID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if err := query.Order("created_at DESC, id DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task outright. Returns gorm.ErrRecordNotFound when no row
// owned by the user matched.
func (r *GormTaskRepository) Delete(id, userID uint64) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Stats computes the aggregate snapshot for a user's tasks
func (r *GormTaskRepository) Stats(userID uint64, now time.Time) (*models.TaskStats, error) {
	stats := &models.TaskStats{}

	type countRow struct {
		Label string
		Count int64
	}

	var statusRows []countRow
	if err := r.db.Model(&models.Task{}).
		Select("status AS label, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}

	for _, row := range statusRows {
		stats.Total += row.Count
		switch models.TaskStatus(row.Label) {
		case models.TaskStatusPending:
			stats.ByStatus.Pending = row.Count
		case models.TaskStatusInProgress:
			stats.ByStatus.InProgress = row.Count
		case models.TaskStatusCompleted:
			stats.ByStatus.Completed = row.Count
		}
	}

	var priorityRows []countRow
	if err := r.db.Model(&models.Task{}).
		Select("priority AS label, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("priority").
		Scan(&priorityRows).Error; err != nil {
		return nil, err
	}

	for _, row := range priorityRows {
		switch models.TaskPriority(row.Label) {
		case models.TaskPriorityLow:
			stats.ByPriority.Low = row.Count
		case models.TaskPriorityMedium:
			stats.ByPriority.Medium = row.Count
		case models.TaskPriorityHigh:
			stats.ByPriority.High = row.Count
		}
	}

	// Overdue is judged at day granularity: due strictly before today.
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := r.db.Model(&models.Task{}).
		Where("user_id = ? AND due_date IS NOT NULL AND due_date < ? AND status <> ?",
			userID, startOfDay, models.TaskStatusCompleted).
		Count(&stats.Overdue).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
