package models

// Comment is the append-only audit trail on a task. Comments are created,
// never updated or retracted.
type Comment struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	TaskID uint64 `gorm:"not null;index" json:"task_id"`
	UserID uint64 `gorm:"not null;index" json:"user_id"`
	Text   string `gorm:"column:comment;type:text;not null" json:"comment"`
	Audit

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}
