package models

import (
	"time"

	"gorm.io/gorm"
)

// Audit is embedded in every persisted entity. DeletedAt drives gorm's
// soft delete, so every query through the models automatically excludes
// deleted rows; the By columns record the acting user for each change.
type Audit struct {
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy uint64         `json:"created_by,omitempty"`
	UpdatedBy uint64         `json:"updated_by,omitempty"`
	DeletedBy uint64         `json:"-"`
}
