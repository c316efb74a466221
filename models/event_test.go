package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createEvent(t *testing.T, db *gorm.DB, capacity *int) *Event {
	t.Helper()
	event := &Event{
		Title:       "Intro to Acupuncture",
		Location:    "Community Hall",
		StartsAt:    time.Now().Add(7 * 24 * time.Hour),
		EndsAt:      time.Now().Add(7*24*time.Hour + 2*time.Hour),
		Capacity:    capacity,
		CreatedByID: 1,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func intPtr(n int) *int { return &n }

func TestEventRegisterUpToCapacity(t *testing.T) {
	db := setupTestDB(t)
	event := createEvent(t, db, intPtr(2))

	_, err := event.Register(db, "Alice", "alice@example.com")
	require.NoError(t, err)
	_, err = event.Register(db, "Bob", "bob@example.com")
	require.NoError(t, err)

	_, err = event.Register(db, "Carol", "carol@example.com")
	assert.ErrorIs(t, err, ErrEventFull)

	require.NoError(t, event.LoadSpotsRemaining(db))
	require.NotNil(t, event.SpotsRemaining)
	assert.Equal(t, 0, *event.SpotsRemaining)
}

func TestEventDuplicateEmailRejected(t *testing.T) {
	db := setupTestDB(t)
	event := createEvent(t, db, intPtr(10))

	_, err := event.Register(db, "Alice", "alice@example.com")
	require.NoError(t, err)

	// duplicate rejected even with seats free
	_, err = event.Register(db, "Alice Again", "alice@example.com")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// and on an uncapped event too
	uncapped := createEvent(t, db, nil)
	_, err = uncapped.Register(db, "Alice", "alice@example.com")
	require.NoError(t, err)
	_, err = uncapped.Register(db, "Alice", "alice@example.com")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestUncappedEventNeverFull(t *testing.T) {
	db := setupTestDB(t)
	event := createEvent(t, db, nil)

	for i := 0; i < 25; i++ {
		_, err := event.Register(db, "Guest", fmt.Sprintf("guest%d@example.com", i))
		require.NoError(t, err)
	}

	require.NoError(t, event.LoadSpotsRemaining(db))
	assert.Nil(t, event.SpotsRemaining)
}
