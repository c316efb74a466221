package models

import (
	"math"

	"gorm.io/gorm"
)

// Review is a patient's rating of a practitioner. It is created unpublished;
// moderation is the only path to IsPublished = true or to deletion.
// IsVerified is computed once at creation and never changes afterwards.
type Review struct {
	gorm.Model
	Rating         int          `json:"rating" gorm:"not null"`
	Comment        string       `json:"comment"`
	PractitionerID uint         `json:"practitioner_id"`
	Practitioner   Practitioner `json:"practitioner,omitempty" gorm:"foreignKey:PractitionerID"`
	PatientID      uint         `json:"patient_id"`
	Patient        User         `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	IsPublished    bool         `json:"is_published" gorm:"default:false"`
	IsVerified     bool         `json:"is_verified" gorm:"default:false"`
	ConsultationID *uint        `json:"consultation_id"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.Rating < 1 {
		r.Rating = 1
	} else if r.Rating > 5 {
		r.Rating = 5
	}
	return nil
}

// HasExistingReview checks whether the patient already reviewed this
// practitioner.
func (r *Review) HasExistingReview(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&Review{}).
		Where("patient_id = ? AND practitioner_id = ?", r.PatientID, r.PractitionerID).
		Count(&count).Error

	return count > 0, err
}

// Approve publishes the review and recomputes the practitioner's aggregate
// stats in the same transaction.
func (r *Review) Approve(tx *gorm.DB) error {
	if err := tx.Model(r).Update("is_published", true).Error; err != nil {
		return err
	}
	r.IsPublished = true
	return RecomputePractitionerStats(tx, r.PractitionerID)
}

// Reject permanently deletes the review. An unpublished review was never
// counted, so the practitioner's stats are untouched.
func (r *Review) Reject(tx *gorm.DB) error {
	return tx.Unscoped().Delete(r).Error
}

// RecomputePractitionerStats rewrites Rating and ReviewCount from the full
// published set. Always a full recompute, never an increment, so concurrent
// moderation cannot drift the stored values.
func RecomputePractitionerStats(tx *gorm.DB, practitionerID uint) error {
	var agg struct {
		Avg float64
		Cnt int64
	}
	err := tx.Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as cnt").
		Where("practitioner_id = ? AND is_published = ?", practitionerID, true).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	rating := math.Round(agg.Avg*10) / 10

	return tx.Model(&Practitioner{}).
		Where("id = ?", practitionerID).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": agg.Cnt,
		}).Error
}
