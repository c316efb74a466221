package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newConsultation(t *testing.T, db *gorm.DB, status ConsultationStatus) *Consultation {
	t.Helper()
	cons := &Consultation{
		PatientID:      1,
		PractitionerID: 10,
		Status:         status,
		Reason:         "back pain",
	}
	require.NoError(t, db.Create(cons).Error)
	return cons
}

var (
	staffActor        = Actor{UserID: 99, Role: RoleAdmin}
	ownerActor        = Actor{UserID: 50, PractitionerID: 10, Role: RolePractitioner}
	otherPractitioner = Actor{UserID: 51, PractitionerID: 11, Role: RolePractitioner}
	patientActor      = Actor{UserID: 1, Role: RolePatient}
	otherPatient      = Actor{UserID: 2, Role: RolePatient}
)

func TestConsultationTransitionTable(t *testing.T) {
	allStatuses := []ConsultationStatus{
		ConsultationRequested, ConsultationScheduled, ConsultationCompleted,
		ConsultationCancelled, ConsultationNoShow,
	}
	legal := map[ConsultationStatus][]ConsultationStatus{
		ConsultationRequested: {ConsultationScheduled, ConsultationCancelled},
		ConsultationScheduled: {ConsultationCompleted, ConsultationCancelled, ConsultationNoShow},
	}

	db := setupTestDB(t)

	isLegal := func(from, to ConsultationStatus) bool {
		for _, allowed := range legal[from] {
			if allowed == to {
				return true
			}
		}
		return false
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			cons := newConsultation(t, db, from)
			err := cons.UpdateStatus(db, staffActor, to, StatusUpdate{})
			if isLegal(from, to) {
				assert.NoError(t, err, "%s -> %s should be legal", from, to)
				assert.Equal(t, to, cons.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s should be invalid", from, to)
			}
		}
	}
}

func TestConsultationIllegalTransitionBeatsAuthorization(t *testing.T) {
	// An impossible move must report invalid, not forbidden, even for an
	// actor with no rights at all.
	db := setupTestDB(t)
	cons := newConsultation(t, db, ConsultationCompleted)

	err := cons.UpdateStatus(db, otherPatient, ConsultationScheduled, StatusUpdate{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.False(t, errors.Is(err, ErrTransitionDenied))
}

func TestConsultationActorAuthorization(t *testing.T) {
	db := setupTestDB(t)

	t.Run("PatientMayCancelOwn", func(t *testing.T) {
		cons := newConsultation(t, db, ConsultationRequested)
		assert.NoError(t, cons.UpdateStatus(db, patientActor, ConsultationCancelled, StatusUpdate{}))
	})

	t.Run("PatientMayNotSchedule", func(t *testing.T) {
		cons := newConsultation(t, db, ConsultationRequested)
		err := cons.UpdateStatus(db, patientActor, ConsultationScheduled, StatusUpdate{})
		assert.ErrorIs(t, err, ErrTransitionDenied)
	})

	t.Run("PatientMayNotComplete", func(t *testing.T) {
		cons := newConsultation(t, db, ConsultationScheduled)
		err := cons.UpdateStatus(db, patientActor, ConsultationCompleted, StatusUpdate{})
		assert.ErrorIs(t, err, ErrTransitionDenied)
	})

	t.Run("OtherPatientDenied", func(t *testing.T) {
		cons := newConsultation(t, db, ConsultationRequested)
		err := cons.UpdateStatus(db, otherPatient, ConsultationCancelled, StatusUpdate{})
		assert.ErrorIs(t, err, ErrTransitionDenied)
	})

	t.Run("OwningPractitionerMaySchedule", func(t *testing.T) {
		cons := newConsultation(t, db, ConsultationRequested)
		when := time.Now().Add(48 * time.Hour)
		err := cons.UpdateStatus(db, ownerActor, ConsultationScheduled, StatusUpdate{ScheduledAt: &when})
		assert.NoError(t, err)
		require.NotNil(t, cons.ScheduledAt)
		assert.WithinDuration(t, when, *cons.ScheduledAt, time.Second)
	})

	t.Run("OtherPractitionerDenied", func(t *testing.T) {
		cons := newConsultation(t, db, ConsultationRequested)
		err := cons.UpdateStatus(db, otherPractitioner, ConsultationScheduled, StatusUpdate{})
		assert.ErrorIs(t, err, ErrTransitionDenied)
	})

	t.Run("ModeratorMayTransition", func(t *testing.T) {
		cons := newConsultation(t, db, ConsultationScheduled)
		moderator := Actor{UserID: 77, Role: RoleModerator}
		assert.NoError(t, cons.UpdateStatus(db, moderator, ConsultationNoShow, StatusUpdate{}))
	})
}

func TestConsultationCompletedStampsCompletedAt(t *testing.T) {
	db := setupTestDB(t)
	cons := newConsultation(t, db, ConsultationScheduled)
	require.Nil(t, cons.CompletedAt)

	notes := "follow-up in two weeks"
	err := cons.UpdateStatus(db, ownerActor, ConsultationCompleted, StatusUpdate{Notes: &notes})
	require.NoError(t, err)

	require.NotNil(t, cons.CompletedAt)
	assert.WithinDuration(t, time.Now(), *cons.CompletedAt, 5*time.Second)
	assert.Equal(t, notes, cons.Notes)

	// and the stamp is persisted
	var reloaded Consultation
	require.NoError(t, db.First(&reloaded, cons.ID).Error)
	assert.NotNil(t, reloaded.CompletedAt)
	assert.Equal(t, ConsultationCompleted, reloaded.Status)
}

func TestHasActiveConsultation(t *testing.T) {
	db := setupTestDB(t)

	cons := newConsultation(t, db, ConsultationRequested)

	active, err := HasActiveConsultation(db, cons.PatientID, cons.PractitionerID)
	require.NoError(t, err)
	assert.True(t, active, "REQUESTED counts as active")

	require.NoError(t, cons.UpdateStatus(db, ownerActor, ConsultationScheduled, StatusUpdate{}))
	active, err = HasActiveConsultation(db, cons.PatientID, cons.PractitionerID)
	require.NoError(t, err)
	assert.True(t, active, "SCHEDULED counts as active")

	require.NoError(t, cons.UpdateStatus(db, ownerActor, ConsultationCancelled, StatusUpdate{}))
	active, err = HasActiveConsultation(db, cons.PatientID, cons.PractitionerID)
	require.NoError(t, err)
	assert.False(t, active, "CANCELLED frees the pair for a new request")

	// a different pair never counted
	active, err = HasActiveConsultation(db, 42, cons.PractitionerID)
	require.NoError(t, err)
	assert.False(t, active)
}
