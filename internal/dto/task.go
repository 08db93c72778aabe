package dto

import (
	"time"

	"github.com/tasknest/task-tracker-api/internal/models"
)

// TaskDTO represents a task in API responses. StatusName is resolved from
// the joined status row when the read path loaded it.
type TaskDTO struct {
	ID          uint64       `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Status      string       `json:"status"`
	StatusName  string       `json:"status_name,omitempty"`
	DueDate     *time.Time   `json:"due_date"`
	CreatedBy   uint64       `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Members     []UserRefDTO `json:"team_members,omitempty"`
	Comments    []CommentDTO `json:"comments,omitempty"`
}

// CommentDTO represents a task comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"task_id"`
	UserID    uint64    `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.StatusInfo.ID != 0 {
		dto.StatusName = task.StatusInfo.Name
	}

	if len(task.Members) > 0 {
		dto.Members = make([]UserRefDTO, 0, len(task.Members))
		for _, member := range task.Members {
			if member.User.ID != 0 {
				dto.Members = append(dto.Members, ToUserRefDTO(member.User))
			}
		}
	}

	if len(task.Comments) > 0 {
		dto.Comments = make([]CommentDTO, len(task.Comments))
		for i, comment := range task.Comments {
			dto.Comments[i] = ToCommentDTO(comment)
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskDTO(task)
	}
	return out
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		Comment:   comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}
