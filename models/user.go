package models

import (
	"time"
)

type User struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name"`
	Email         string         `json:"email" gorm:"unique"`
	Password      string         `json:"password,omitempty"`
	RoleID        uint           `json:"role_id"`
	Role          Role           `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Practitioner  *Practitioner  `json:"practitioner,omitempty" gorm:"foreignKey:UserID"`
	Consultations []Consultation `json:"consultations,omitempty" gorm:"foreignKey:PatientID"`
	Reviews       []Review       `json:"reviews,omitempty" gorm:"foreignKey:PatientID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
