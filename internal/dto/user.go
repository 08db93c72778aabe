package dto

import (
	"time"

	"github.com/tasknest/task-tracker-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Contact      *string   `json:"contact"`
	IsAdmin      bool      `json:"is_admin"`
	IsFirstLogin bool      `json:"is_first_login"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRefDTO is the minimal user shape embedded in other resources
type UserRefDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Contact:      user.Contact,
		IsAdmin:      user.IsAdmin,
		IsFirstLogin: user.IsFirstLogin,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// ToUserRefDTO converts a User model to its embedded reference shape
func ToUserRefDTO(user models.User) UserRefDTO {
	return UserRefDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, user := range users {
		out[i] = ToUserDTO(user)
	}
	return out
}
