package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tasknest/task-tracker-api/internal/models"
)

// AddIndexes creates the query-path indexes AutoMigrate does not derive
// from struct tags. Safe to run repeatedly.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model  interface{}
		name   string
		column string
	}{
		{&models.Task{}, "idx_tasks_due_date", "due_date"},
		{&models.Task{}, "idx_tasks_created_at", "created_at"},
		{&models.Comment{}, "idx_comments_created_at", "created_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.column)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
