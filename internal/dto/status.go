package dto

import (
	"time"

	"github.com/tasknest/task-tracker-api/internal/models"
)

// StatusDTO represents a status registry entry in API responses
type StatusDTO struct {
	ID        uint64    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToStatusDTO converts a StatusMaster model to StatusDTO
func ToStatusDTO(status models.StatusMaster) StatusDTO {
	return StatusDTO{
		ID:        status.ID,
		Code:      status.Code,
		Name:      status.Name,
		Active:    status.Active,
		CreatedAt: status.CreatedAt,
		UpdatedAt: status.UpdatedAt,
	}
}

// ToStatusDTOs converts a slice of StatusMaster models
func ToStatusDTOs(statuses []models.StatusMaster) []StatusDTO {
	out := make([]StatusDTO, len(statuses))
	for i, status := range statuses {
		out[i] = ToStatusDTO(status)
	}
	return out
}
