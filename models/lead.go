package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadNew       LeadStatus = "NEW"
	LeadContacted LeadStatus = "CONTACTED"
	LeadConverted LeadStatus = "CONVERTED"
	LeadClosed    LeadStatus = "CLOSED"
)

// Lead is a public patient inquiry directed at a practitioner. Created once,
// only Status is mutated afterwards. Counted against the practitioner's
// monthly lead quota.
type Lead struct {
	gorm.Model
	Reference      string       `json:"reference" gorm:"uniqueIndex"`
	PractitionerID uint         `json:"practitioner_id"`
	Practitioner   Practitioner `json:"practitioner,omitempty" gorm:"foreignKey:PractitionerID"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Condition      *string      `json:"condition"`
	Message        string       `json:"message"`
	Status         LeadStatus   `json:"status" gorm:"default:NEW"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.Status == "" {
		l.Status = LeadNew
	}
	if l.Reference == "" {
		l.Reference = uuid.NewString()
	}
	return nil
}
