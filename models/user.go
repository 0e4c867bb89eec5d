package models

import "gorm.io/gorm"

// User represents a user account in the system. Identity is immutable
// once created; there are no profile update endpoints.
type User struct {
	gorm.Model

	Username     string `gorm:"not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNo      string `gorm:"uniqueIndex;not null" json:"phone_no"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Relations
	Memberships []TeamMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}
