package repository

import (
	"github.com/tasknest/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a live user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a live user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByContact finds a live user by contact
func (r *GormUserRepository) FindByContact(contact string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("contact = ?", contact).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List lists all live users
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountActive counts live users
func (r *GormUserRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountByIDs counts how many of the given IDs resolve to live users.
// Duplicated ids in the input therefore count once, which is exactly what
// the team-member validation relies on.
func (r *GormUserRepository) CountByIDs(ids []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// Update persists a modified user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// SoftDelete marks a user deleted, stamped with the actor
func (r *GormUserRepository) SoftDelete(id uint64, actorID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", id).Update("deleted_by", actorID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}
