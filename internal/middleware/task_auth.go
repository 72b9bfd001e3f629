package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/taskhub-api/internal/constants"
	"github.com/taskhub/taskhub-api/internal/database"
	apierrors "github.com/taskhub/taskhub-api/internal/errors"
	"github.com/taskhub/taskhub-api/internal/models"
)

// RequireTaskOwnership loads the task addressed by the :id parameter and
// verifies it belongs to the authenticated user. A task owned by someone else
// is reported as not found to avoid leaking its existence.
func RequireTaskOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Where("id = ? AND user_id = ?", taskID, userID).
			First(&task).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTaskOwnership from context.
func GetTask(c *gin.Context) (models.Task, bool) {
	taskInterface, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}

	task, ok := taskInterface.(models.Task)
	return task, ok
}
