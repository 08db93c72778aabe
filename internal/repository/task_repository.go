package repository

import (
	"errors"
	"fmt"

	"github.com/tasknest/task-tracker-api/internal/database"
	"github.com/tasknest/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateTask is returned when the task insert fails inside the creation transaction.
	ErrCreateTask = errors.New("task repository: create task failed")
	// ErrAssignTeam is returned when a team member insert fails inside the creation transaction.
	ErrAssignTeam = errors.New("task repository: assign team members failed")
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithTeam creates the task and one TeamMember row per id atomically.
// Member validation happens before this is called; the transaction only
// guards against partial writes.
func (r *GormTaskRepository) CreateWithTeam(task *models.Task, memberIDs []uint64, actorID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateTask, err)
		}

		if len(memberIDs) == 0 {
			return nil
		}

		members := make([]models.TeamMember, len(memberIDs))
		for i, userID := range memberIDs {
			members[i] = models.TeamMember{
				TaskID: task.ID,
				UserID: userID,
				Audit:  models.Audit{CreatedBy: actorID},
			}
		}

		if err := tx.Create(&members).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrAssignTeam, err)
		}

		return nil
	})
}

// FindByID finds a live task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindDetail finds a live task together with its active status row. The
// inner join drops tasks whose status entry has been soft-deleted, matching
// the registry invariant on read paths.
func (r *GormTaskRepository) FindDetail(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		InnerJoins("StatusInfo").
		Where("tasks.id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves live tasks joined with their active status rows
func (r *GormTaskRepository) List(statusCode string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		InnerJoins("StatusInfo").
		Scopes(database.WithStatus(statusCode)).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists a modified task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// SoftDelete marks the task deleted. TeamMember and Comment rows are left
// untouched so the task's history stays resolvable.
func (r *GormTaskRepository) SoftDelete(id uint64, actorID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).Where("id = ?", id).Update("deleted_by", actorID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}
