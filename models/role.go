package models

import (
	"time"

	"gorm.io/gorm"
)

// Role names seeded at migration time.
const (
	RolePatient      = "patient"
	RolePractitioner = "practitioner"
	RoleModerator    = "moderator"
	RoleAdmin        = "admin"
)

type Role struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"unique"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Actor is the authenticated identity a request acts as. PractitionerID is
// zero unless the user owns a practitioner profile.
type Actor struct {
	UserID         uint
	PractitionerID uint
	Role           string
}

// IsStaff reports whether the actor may use the moderation back office.
func (a Actor) IsStaff() bool {
	return a.Role == RoleAdmin || a.Role == RoleModerator
}
