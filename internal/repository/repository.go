package repository

import (
	"github.com/tasknest/task-tracker-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithTeam creates a task and its team member rows in one
	// transaction; either all rows exist afterwards or none do.
	CreateWithTeam(task *models.Task, memberIDs []uint64, actorID uint64) error

	// FindByID finds a live task by ID without joins (mutation paths)
	FindByID(id uint64) (*models.Task, error)

	// FindDetail finds a live task joined with its active status row
	FindDetail(id uint64) (*models.Task, error)

	// List retrieves live tasks joined with their active status rows,
	// optionally filtered by status code
	List(statusCode string) ([]models.Task, error)

	// Update persists a modified task
	Update(task *models.Task) error

	// SoftDelete marks a task deleted, stamped with the actor
	SoftDelete(id uint64, actorID uint64) error
}

// StatusRepository defines the interface for status master data access
type StatusRepository interface {
	// Create creates a new status entry
	Create(status *models.StatusMaster) error

	// FindByCode finds a live status by its code
	FindByCode(code string) (*models.StatusMaster, error)

	// FindByIDOrCode finds a live status by numeric id or by code
	FindByIDOrCode(idOrCode string) (*models.StatusMaster, error)

	// ListActive lists all live statuses
	ListActive() ([]models.StatusMaster, error)

	// Update persists a modified status entry
	Update(status *models.StatusMaster) error

	// SoftDelete marks a status deleted, stamped with the actor
	SoftDelete(code string, actorID uint64) error

	// ExistsActive reports whether a live status with exactly this code
	// exists. Codes compare case-sensitively regardless of collation.
	ExistsActive(code string) (bool, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a live user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a live user by email
	FindByEmail(email string) (*models.User, error)

	// FindByContact finds a live user by contact
	FindByContact(contact string) (*models.User, error)

	// List lists all live users
	List() ([]models.User, error)

	// CountActive counts live users (admin auto-designation)
	CountActive() (int64, error)

	// CountByIDs counts how many of the given user IDs resolve to live users
	CountByIDs(ids []uint64) (int64, error)

	// Update persists a modified user
	Update(user *models.User) error

	// SoftDelete marks a user deleted, stamped with the actor
	SoftDelete(id uint64, actorID uint64) error
}

// CommentRepository defines the interface for the append-only comment trail
type CommentRepository interface {
	// Create appends a comment; comments are never updated or removed
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.Comment, error)

	// ListByTask lists the comments attached to a task
	ListByTask(taskID uint64) ([]models.Comment, error)
}
