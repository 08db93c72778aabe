package models

import "time"

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(50);not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:varchar(50);not null;index" json:"status"`
	DueDate     *time.Time `json:"due_date"`
	Audit

	// Relations
	StatusInfo StatusMaster `gorm:"foreignKey:Status;references:Code" json:"status_info,omitempty"`
	Members    []TeamMember `gorm:"foreignKey:TaskID" json:"members,omitempty"`
	Comments   []Comment    `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}
