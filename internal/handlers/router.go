package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/taskhub-api/internal/auth"
	"github.com/taskhub/taskhub-api/internal/middleware"
)

// NewRouter assembles the HTTP routes. It is shared by main and the tests so
// both exercise the same middleware chain.
func NewRouter(authHandler *AuthHandler, taskHandler *TaskHandler, jwtManager *auth.JWTManager) *gin.Engine {
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TaskHub API is running",
		})
	})

	// Auth routes
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", middleware.RequireAuth(jwtManager), authHandler.Me)
		authGroup.PUT("/profile", middleware.RequireAuth(jwtManager), authHandler.UpdateProfile)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(jwtManager))
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/stats", taskHandler.Stats)
		tasks.GET("/:id", middleware.RequireTaskOwnership(), taskHandler.GetTask)
		tasks.PUT("/:id", middleware.RequireTaskOwnership(), taskHandler.UpdateTask)
		tasks.DELETE("/:id", middleware.RequireTaskOwnership(), taskHandler.DeleteTask)
	}

	return r
}
