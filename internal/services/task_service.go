package services

import (
	"errors"
	"fmt"

	"github.com/tasknest/task-tracker-api/internal/auth"
	"github.com/tasknest/task-tracker-api/internal/constants"
	"github.com/tasknest/task-tracker-api/internal/models"
	"github.com/tasknest/task-tracker-api/internal/permissions"
	"github.com/tasknest/task-tracker-api/internal/repository"
	"github.com/tasknest/task-tracker-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidTeamMembers     = errors.New("invalid team members")
	ErrCommentRequired        = errors.New("comment is required when updating status for non-admin users")
	ErrNonAdminFields         = errors.New("non-admin fields not allowed")
	ErrAdminCommentNotAllowed = errors.New("admins may not attach comments")
)

// TaskService drives the task lifecycle: permission-gated mutation,
// status-transition rules, and the transactional create.
type TaskService struct {
	taskRepo    repository.TaskRepository
	statusRepo  repository.StatusRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, statusRepo repository.StatusRepository, userRepo repository.UserRepository, commentRepo repository.CommentRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		statusRepo:  statusRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
	}
}

// PatchResult reports what a partial update actually did.
type PatchResult struct {
	Task          *models.Task
	StatusChanged bool
	CommentAdded  bool
}

// List returns live tasks with their status rows, optionally filtered by
// status code.
func (s *TaskService) List(statusCode string) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(statusCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a task joined with its status row.
func (s *TaskService) Get(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindDetail(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Create validates the status code and team member set, then creates the
// task and its TeamMember rows in one transaction. Both checks run before
// the transaction opens so invalid input never touches storage.
func (s *TaskService) Create(principal auth.Principal, in validation.TaskCreateInput) (*models.Task, error) {
	status := in.Status
	if status == "" {
		status = constants.DefaultStatusCode
	}

	ok, err := s.statusRepo.ExistsActive(status)
	if err != nil {
		return nil, fmt.Errorf("failed to verify status: %w", err)
	}
	if !ok {
		return nil, ErrInvalidStatus
	}

	if len(in.TeamMembers) > 0 {
		// A duplicated id inflates the requested count past the matched
		// count and fails the check, same as a missing or deleted user.
		count, err := s.userRepo.CountByIDs(in.TeamMembers)
		if err != nil {
			return nil, fmt.Errorf("failed to verify team members: %w", err)
		}
		if int(count) != len(in.TeamMembers) {
			return nil, ErrInvalidTeamMembers
		}
	}

	task := &models.Task{
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
		Audit:       models.Audit{CreatedBy: principal.ID},
	}

	if err := s.taskRepo.CreateWithTeam(task, in.TeamMembers, principal.ID); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Update replaces a task's fields. Description follows replace semantics
// (absent clears); status and due date keep their values when absent.
func (s *TaskService) Update(principal auth.Principal, taskID uint64, in validation.TaskUpdateInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if in.Status != nil {
		ok, err := s.statusRepo.ExistsActive(*in.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to verify status: %w", err)
		}
		if !ok {
			return nil, ErrInvalidStatus
		}
		task.Status = *in.Status
	}

	task.Name = in.Name
	task.Description = in.Description
	if in.ClearDueDate {
		task.DueDate = nil
	} else if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	task.UpdatedBy = principal.ID

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Patch applies a partial update under the role permission matrix.
// Pipeline order: existence, role field check, status referential check,
// comment companion rule, persistence, comment append.
func (s *TaskService) Patch(principal auth.Principal, taskID uint64, in validation.TaskPatchInput) (*PatchResult, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	role := permissions.RoleFor(principal.IsAdmin)
	decision := permissions.EvaluatePatch(role, in.Present)

	if len(decision.Forbidden) > 0 {
		if principal.IsAdmin {
			return nil, ErrAdminCommentNotAllowed
		}
		return nil, ErrNonAdminFields
	}

	if in.Status != nil {
		ok, err := s.statusRepo.ExistsActive(*in.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to verify status: %w", err)
		}
		if !ok {
			return nil, ErrInvalidStatus
		}
	}

	if len(decision.MissingCompanion) > 0 {
		return nil, ErrCommentRequired
	}

	for _, field := range decision.Discarded {
		if field == permissions.FieldComment {
			in.Comment = ""
		}
	}

	changed := false
	if in.Name != nil {
		task.Name = *in.Name
		changed = true
	}
	if in.ClearDescription {
		task.Description = nil
		changed = true
	} else if in.Description != nil {
		task.Description = in.Description
		changed = true
	}
	if in.Status != nil {
		task.Status = *in.Status
		changed = true
	}
	if in.ClearDueDate {
		task.DueDate = nil
		changed = true
	} else if in.DueDate != nil {
		task.DueDate = in.DueDate
		changed = true
	}

	if changed {
		task.UpdatedBy = principal.ID
		if err := s.taskRepo.Update(task); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	result := &PatchResult{
		Task:          task,
		StatusChanged: in.Status != nil,
	}

	if in.Comment != "" {
		comment := &models.Comment{
			TaskID: task.ID,
			UserID: principal.ID,
			Text:   in.Comment,
			Audit:  models.Audit{CreatedBy: principal.ID},
		}
		if err := s.commentRepo.Create(comment); err != nil {
			return nil, fmt.Errorf("failed to add comment: %w", err)
		}
		result.CommentAdded = true
	}

	return result, nil
}

// Delete soft-deletes a task. TeamMember and Comment rows are not
// cascaded; they keep pointing at the deleted task as history.
func (s *TaskService) Delete(principal auth.Principal, taskID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.SoftDelete(task.ID, principal.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
