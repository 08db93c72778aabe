package models

// TeamMember links a user to a task. Rows are written only inside the task
// creation transaction and survive task deletion (history is preserved).
type TeamMember struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	TaskID uint64 `gorm:"not null;index" json:"task_id"`
	UserID uint64 `gorm:"not null;index" json:"user_id"`
	Audit

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
