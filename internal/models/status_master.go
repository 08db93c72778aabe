package models

// StatusMaster is the registry of task status codes. Tasks reference the
// code string, not the row id, so status metadata can change without
// touching task rows.
type StatusMaster struct {
	// Code is unique among live rows only, enforced in the service layer;
	// a DB unique index would block re-registering a soft-deleted code.
	ID     uint64 `gorm:"primarykey" json:"id"`
	Code   string `gorm:"type:varchar(50);index;not null" json:"code"`
	Name   string `gorm:"type:varchar(50);not null" json:"name"`
	Active bool   `gorm:"not null;default:true" json:"active"`
	Audit

	// Relations
	Tasks []Task `gorm:"foreignKey:Status;references:Code" json:"-"`
}
