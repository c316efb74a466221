package models

import (
	"gorm.io/gorm"
)

type MembershipTier string

const (
	TierFree         MembershipTier = "FREE"
	TierProfessional MembershipTier = "PROFESSIONAL"
	TierPremium      MembershipTier = "PREMIUM"
	TierElite        MembershipTier = "ELITE"
	TierEnterprise   MembershipTier = "ENTERPRISE"
)

type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "ACTIVE"
	MembershipPastDue   MembershipStatus = "PAST_DUE"
	MembershipCancelled MembershipStatus = "CANCELLED"
)

// Practitioner is a directory-listed member of the association. Rating and
// ReviewCount are denormalized from the published review set; they are written
// only by RecomputePractitionerStats, never incremented in place.
type Practitioner struct {
	gorm.Model
	UserID           uint             `json:"user_id" gorm:"uniqueIndex"`
	User             User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DisplayName      string           `json:"display_name"`
	Title            string           `json:"title"` // e.g. "Naturopathic Doctor"
	Bio              string           `json:"bio"`
	City             string           `json:"city"`
	State            string           `json:"state"`
	Phone            string           `json:"phone"`
	Website          string           `json:"website"`
	PhotoURL         string           `json:"photo_url"`
	MembershipTier   MembershipTier   `json:"membership_tier" gorm:"default:FREE"`
	MembershipStatus MembershipStatus `json:"membership_status" gorm:"default:ACTIVE"`
	StripeCustomerID string           `json:"-"`
	Rating           float64          `json:"rating" gorm:"type:decimal(2,1);default:0"`
	ReviewCount      int              `json:"review_count" gorm:"default:0"`
	Specialties      []Specialty      `json:"specialties,omitempty" gorm:"many2many:practitioner_specialties;"`
	Conditions       []Condition      `json:"conditions,omitempty" gorm:"many2many:practitioner_conditions;"`
	Insurances       []Insurance      `json:"insurances,omitempty" gorm:"many2many:practitioner_insurances;"`
}

type Specialty struct {
	gorm.Model
	Name string `json:"name" gorm:"unique"`
}

type Condition struct {
	gorm.Model
	Name string `json:"name" gorm:"unique"`
}

type Insurance struct {
	gorm.Model
	Name string `json:"name" gorm:"unique"`
}
