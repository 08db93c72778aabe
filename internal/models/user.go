package models

type User struct {
	// Email and Contact are unique among live rows only, enforced in the
	// service layer; a soft-deleted account must not block re-registration.
	ID           uint64  `gorm:"primarykey" json:"id"`
	Name         string  `gorm:"type:varchar(50);not null" json:"name"`
	Email        string  `gorm:"type:varchar(50);index;not null" json:"email"`
	Contact      *string `gorm:"type:varchar(12);index" json:"contact"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin      bool    `gorm:"not null;default:false" json:"is_admin"`
	IsFirstLogin bool    `gorm:"not null;default:false" json:"is_first_login"`
	Active       bool    `gorm:"not null;default:true" json:"active"`
	Audit

	// Relations
	Memberships []TeamMember `gorm:"foreignKey:UserID" json:"-"`
	Comments    []Comment    `gorm:"foreignKey:UserID" json:"-"`
}
