package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventFull         = errors.New("event is at full capacity")
	ErrAlreadyRegistered = errors.New("this email is already registered for the event")
)

// Event has a nullable capacity; nil means unbounded attendance.
type Event struct {
	gorm.Model
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Location       string              `json:"location"`
	StartsAt       time.Time           `json:"starts_at"`
	EndsAt         time.Time           `json:"ends_at"`
	Capacity       *int                `json:"capacity"`
	SpotsRemaining *int                `json:"spots_remaining,omitempty" gorm:"-"`
	PractitionerID *uint               `json:"practitioner_id"`
	Practitioner   *Practitioner       `json:"practitioner,omitempty" gorm:"foreignKey:PractitionerID"`
	CreatedByID    uint                `json:"created_by_id"`
	Registrations  []EventRegistration `json:"registrations,omitempty" gorm:"foreignKey:EventID"`
}

// EventRegistration is keyed uniquely by (event, email): one seat per email.
type EventRegistration struct {
	gorm.Model
	EventID uint   `json:"event_id" gorm:"uniqueIndex:idx_event_registration_email"`
	Name    string `json:"name"`
	Email   string `json:"email" gorm:"uniqueIndex:idx_event_registration_email"`
}

// RegistrationCount counts current registrations for the event.
func (e *Event) RegistrationCount(tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.Model(&EventRegistration{}).Where("event_id = ?", e.ID).Count(&count).Error
	return count, err
}

// LoadSpotsRemaining fills the derived SpotsRemaining field,
// max(0, capacity - registrations). Left nil for uncapped events.
func (e *Event) LoadSpotsRemaining(tx *gorm.DB) error {
	if e.Capacity == nil {
		e.SpotsRemaining = nil
		return nil
	}
	count, err := e.RegistrationCount(tx)
	if err != nil {
		return err
	}
	remaining := *e.Capacity - int(count)
	if remaining < 0 {
		remaining = 0
	}
	e.SpotsRemaining = &remaining
	return nil
}

// Register creates a registration after checking the duplicate-email and
// capacity preconditions. Run inside a transaction; the unique (event, email)
// index backstops the duplicate pre-check.
func (e *Event) Register(tx *gorm.DB, name, email string) (*EventRegistration, error) {
	var existing int64
	err := tx.Model(&EventRegistration{}).
		Where("event_id = ? AND email = ?", e.ID, email).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyRegistered
	}

	if e.Capacity != nil {
		count, err := e.RegistrationCount(tx)
		if err != nil {
			return nil, err
		}
		if count >= int64(*e.Capacity) {
			return nil, ErrEventFull
		}
	}

	registration := EventRegistration{
		EventID: e.ID,
		Name:    name,
		Email:   email,
	}
	if err := tx.Create(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}
