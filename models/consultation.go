package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ConsultationStatus string

const (
	ConsultationRequested ConsultationStatus = "REQUESTED"
	ConsultationScheduled ConsultationStatus = "SCHEDULED"
	ConsultationCompleted ConsultationStatus = "COMPLETED"
	ConsultationCancelled ConsultationStatus = "CANCELLED"
	ConsultationNoShow    ConsultationStatus = "NO_SHOW"
)

var (
	// ErrInvalidTransition means the requested status is not reachable from the
	// current one, regardless of who asks.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrTransitionDenied means the transition is legal but the actor may not
	// perform it.
	ErrTransitionDenied = errors.New("not allowed to change this consultation")
	// ErrDuplicateConsultation means the pair already has an active request.
	ErrDuplicateConsultation = errors.New("an active consultation already exists with this practitioner")
)

type Consultation struct {
	gorm.Model
	PatientID      uint               `json:"patient_id"`
	Patient        User               `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	PractitionerID uint               `json:"practitioner_id"`
	Practitioner   Practitioner       `json:"practitioner,omitempty" gorm:"foreignKey:PractitionerID"`
	Status         ConsultationStatus `json:"status"`
	Reason         string             `json:"reason"`
	ScheduledAt    *time.Time         `json:"scheduled_at"`
	CompletedAt    *time.Time         `json:"completed_at"`
	Notes          string             `json:"notes"`
}

func (cons *Consultation) BeforeCreate(tx *gorm.DB) error {
	if cons.Status == "" {
		cons.Status = ConsultationRequested
	}
	return nil
}

// StatusUpdate carries the optional fields an actor may set alongside a
// transition.
type StatusUpdate struct {
	ScheduledAt *time.Time
	Notes       *string
}

var consultationTransitions = map[ConsultationStatus][]ConsultationStatus{
	ConsultationRequested: {ConsultationScheduled, ConsultationCancelled},
	ConsultationScheduled: {ConsultationCompleted, ConsultationCancelled, ConsultationNoShow},
	ConsultationCompleted: {},
	ConsultationCancelled: {},
	ConsultationNoShow:    {},
}

func (cons *Consultation) canTransition(to ConsultationStatus) bool {
	for _, allowed := range consultationTransitions[cons.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateStatus validates the transition against the lifecycle table, then
// against the actor, and persists the change. The table is checked first so an
// impossible move reports as invalid rather than forbidden. Moving to
// COMPLETED stamps CompletedAt.
func (cons *Consultation) UpdateStatus(tx *gorm.DB, actor Actor, newStatus ConsultationStatus, update StatusUpdate) error {
	if !cons.canTransition(newStatus) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, cons.Status, newStatus)
	}

	switch {
	case actor.IsStaff():
		// staff may perform any legal transition
	case actor.Role == RolePractitioner && actor.PractitionerID == cons.PractitionerID:
		// owning practitioner may perform any legal transition
	case actor.Role == RolePatient && actor.UserID == cons.PatientID:
		if newStatus != ConsultationCancelled {
			return ErrTransitionDenied
		}
	default:
		return ErrTransitionDenied
	}

	cons.Status = newStatus
	if newStatus == ConsultationCompleted {
		now := time.Now()
		cons.CompletedAt = &now
	}
	if update.ScheduledAt != nil {
		cons.ScheduledAt = update.ScheduledAt
	}
	if update.Notes != nil {
		cons.Notes = *update.Notes
	}

	return tx.Save(cons).Error
}

// HasActiveConsultation reports whether a REQUESTED or SCHEDULED consultation
// already exists for the pair. Checked before creating a new request.
func HasActiveConsultation(tx *gorm.DB, patientID, practitionerID uint) (bool, error) {
	var count int64
	err := tx.Model(&Consultation{}).
		Where("patient_id = ? AND practitioner_id = ? AND status IN ?",
			patientID, practitionerID,
			[]ConsultationStatus{ConsultationRequested, ConsultationScheduled}).
		Count(&count).Error

	return count > 0, err
}
