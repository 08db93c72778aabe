package repository

import (
	"errors"
	"strconv"

	"github.com/tasknest/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormStatusRepository is a GORM implementation of StatusRepository
type GormStatusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a new StatusRepository
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &GormStatusRepository{db: db}
}

// Create creates a new status entry
func (r *GormStatusRepository) Create(status *models.StatusMaster) error {
	return r.db.Create(status).Error
}

// FindByCode finds a live status by its code
func (r *GormStatusRepository) FindByCode(code string) (*models.StatusMaster, error) {
	var status models.StatusMaster
	if err := r.db.Where("code = ?", code).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// FindByIDOrCode finds a live status by numeric id or by code
func (r *GormStatusRepository) FindByIDOrCode(idOrCode string) (*models.StatusMaster, error) {
	if id, err := strconv.ParseUint(idOrCode, 10, 64); err == nil {
		var status models.StatusMaster
		if err := r.db.First(&status, id).Error; err != nil {
			return nil, err
		}
		return &status, nil
	}
	return r.FindByCode(idOrCode)
}

// ListActive lists all live statuses
func (r *GormStatusRepository) ListActive() ([]models.StatusMaster, error) {
	var statuses []models.StatusMaster
	if err := r.db.Order("id").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// Update persists a modified status entry
func (r *GormStatusRepository) Update(status *models.StatusMaster) error {
	return r.db.Save(status).Error
}

// SoftDelete marks a status deleted and inactive, stamped with the actor
func (r *GormStatusRepository) SoftDelete(code string, actorID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"active":     false,
			"deleted_by": actorID,
		}
		if err := tx.Model(&models.StatusMaster{}).Where("code = ?", code).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("code = ?", code).Delete(&models.StatusMaster{}).Error
	})
}

// ExistsActive reports whether a live status with exactly this code exists.
// The extra string compare keeps the check case-sensitive even on
// case-insensitive collations.
func (r *GormStatusRepository) ExistsActive(code string) (bool, error) {
	var status models.StatusMaster
	if err := r.db.Where("code = ?", code).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return status.Code == code, nil
}
