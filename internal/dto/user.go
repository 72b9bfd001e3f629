package dto

import (
	"time"

	"github.com/taskhub/taskhub-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash never leaves
// the server.
type UserDTO struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success bool    `json:"success"`
	Token   string  `json:"token"`
	User    UserDTO `json:"user"`
}

// UserResponse is returned by profile reads and updates.
type UserResponse struct {
	Success bool    `json:"success"`
	User    UserDTO `json:"user"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}
