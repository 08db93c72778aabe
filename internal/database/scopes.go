package database

import (
	"gorm.io/gorm"
)

// WithStatus filters tasks by status code when one is supplied.
func WithStatus(code string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if code == "" {
			return db
		}
		return db.Where("tasks.status = ?", code)
	}
}
