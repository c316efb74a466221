package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createPractitioner(t *testing.T, db *gorm.DB, userID uint) *Practitioner {
	t.Helper()
	p := &Practitioner{
		UserID:      userID,
		DisplayName: "Dr. Test",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createPublishedReviews(t *testing.T, db *gorm.DB, practitionerID uint, ratings []int) {
	t.Helper()
	for i, rating := range ratings {
		review := &Review{
			PractitionerID: practitionerID,
			PatientID:      uint(100 + i),
			Rating:         rating,
			IsPublished:    true,
		}
		require.NoError(t, db.Create(review).Error)
	}
	require.NoError(t, RecomputePractitionerStats(db, practitionerID))
}

func TestRecomputePractitionerStats(t *testing.T) {
	db := setupTestDB(t)
	p := createPractitioner(t, db, 1)

	createPublishedReviews(t, db, p.ID, []int{5, 5, 4, 3})

	var reloaded Practitioner
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.InDelta(t, 4.3, reloaded.Rating, 1e-9, "mean of 5,5,4,3 is 4.25, rounded to 4.3")
	assert.Equal(t, 4, reloaded.ReviewCount)
}

func TestRecomputeWithNoPublishedReviews(t *testing.T) {
	db := setupTestDB(t)
	p := createPractitioner(t, db, 1)

	// an unpublished review contributes nothing
	review := &Review{PractitionerID: p.ID, PatientID: 100, Rating: 5}
	require.NoError(t, db.Create(review).Error)
	require.NoError(t, RecomputePractitionerStats(db, p.ID))

	var reloaded Practitioner
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.InDelta(t, 0.0, reloaded.Rating, 1e-9)
	assert.Equal(t, 0, reloaded.ReviewCount)
}

func TestApprovePublishesAndRecomputes(t *testing.T) {
	db := setupTestDB(t)
	p := createPractitioner(t, db, 1)
	createPublishedReviews(t, db, p.ID, []int{5, 5, 4, 3})

	pending := &Review{PractitionerID: p.ID, PatientID: 200, Rating: 2}
	require.NoError(t, db.Create(pending).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		return pending.Approve(tx)
	})
	require.NoError(t, err)
	assert.True(t, pending.IsPublished)

	var reloaded Practitioner
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.InDelta(t, 3.8, reloaded.Rating, 1e-9, "mean of 5,5,4,3,2 is 3.8")
	assert.Equal(t, 5, reloaded.ReviewCount)
}

func TestRejectDeletesWithoutTouchingStats(t *testing.T) {
	db := setupTestDB(t)
	p := createPractitioner(t, db, 1)
	createPublishedReviews(t, db, p.ID, []int{5, 5, 4, 3})

	pending := &Review{PractitionerID: p.ID, PatientID: 200, Rating: 1}
	require.NoError(t, db.Create(pending).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		return pending.Reject(tx)
	})
	require.NoError(t, err)

	// gone for good, not soft-deleted
	var count int64
	db.Unscoped().Model(&Review{}).Where("id = ?", pending.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	var reloaded Practitioner
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.InDelta(t, 4.3, reloaded.Rating, 1e-9)
	assert.Equal(t, 4, reloaded.ReviewCount)
}

func TestReviewRatingClampedOnCreate(t *testing.T) {
	db := setupTestDB(t)

	review := &Review{PractitionerID: 1, PatientID: 1, Rating: 9}
	require.NoError(t, db.Create(review).Error)
	assert.Equal(t, 5, review.Rating)

	review2 := &Review{PractitionerID: 1, PatientID: 2, Rating: 0}
	require.NoError(t, db.Create(review2).Error)
	assert.Equal(t, 1, review2.Rating)
}

func TestHasExistingReviewPerPair(t *testing.T) {
	db := setupTestDB(t)

	first := &Review{PractitionerID: 7, PatientID: 3, Rating: 4}
	require.NoError(t, db.Create(first).Error)

	dup := &Review{PractitionerID: 7, PatientID: 3, Rating: 5}
	exists, err := dup.HasExistingReview(db)
	require.NoError(t, err)
	assert.True(t, exists)

	otherPair := &Review{PractitionerID: 8, PatientID: 3, Rating: 5}
	exists, err = otherPair.HasExistingReview(db)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestVerifiedFlagFixedAtCreation(t *testing.T) {
	db := setupTestDB(t)

	// no completed consultation at creation time: unverified
	review := &Review{PractitionerID: 10, PatientID: 1, Rating: 4}
	require.NoError(t, db.Create(review).Error)
	assert.False(t, review.IsVerified)

	// a consultation completing later must not flip the flag
	cons := &Consultation{PatientID: 1, PractitionerID: 10, Status: ConsultationScheduled}
	require.NoError(t, db.Create(cons).Error)
	require.NoError(t, cons.UpdateStatus(db, Actor{UserID: 99, Role: RoleAdmin}, ConsultationCompleted, StatusUpdate{}))

	var reloaded Review
	require.NoError(t, db.First(&reloaded, review.ID).Error)
	assert.False(t, reloaded.IsVerified)
}
