package quota

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/holistichub/practitioner-hub/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to SQLite test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Practitioner{},
		&models.Lead{},
		&models.Article{},
		&models.Event{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createPractitioner(t *testing.T, db *gorm.DB, tier models.MembershipTier) *models.Practitioner {
	t.Helper()
	p := &models.Practitioner{
		UserID:         uint(time.Now().UnixNano() % 1_000_000_000),
		DisplayName:    "Dr. Quota",
		MembershipTier: tier,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createLead(t *testing.T, db *gorm.DB, practitionerID uint) {
	t.Helper()
	lead := &models.Lead{
		PractitionerID: practitionerID,
		Name:           "Patient",
		Email:          fmt.Sprintf("p%d@example.com", time.Now().UnixNano()),
	}
	require.NoError(t, db.Create(lead).Error)
}

func TestMonthStart(t *testing.T) {
	at := time.Date(2025, time.March, 17, 14, 30, 12, 0, time.Local)
	start := MonthStart(at)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local), start)
}

func TestAdmitMonotonicUpToLimit(t *testing.T) {
	db := setupTestDB(t)
	p := createPractitioner(t, db, models.TierFree) // 3 leads/month

	for i := 0; i < 3; i++ {
		require.NoError(t, Admit(db, p, ResourceLeads), "creation %d within limit", i+1)
		createLead(t, db, p.ID)
	}

	err := Admit(db, p, ResourceLeads)
	var denied *DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, ResourceLeads, denied.Resource)
	assert.Equal(t, 3, denied.Limit)
	assert.Contains(t, denied.Reason, "upgrade")
}

func TestAdmitResetsNextMonth(t *testing.T) {
	db := setupTestDB(t)
	p := createPractitioner(t, db, models.TierFree)

	// fill last month's quota; this month is untouched
	lastMonth := MonthStart(time.Now()).Add(-24 * time.Hour)
	for i := 0; i < 5; i++ {
		lead := &models.Lead{
			PractitionerID: p.ID,
			Name:           "Old Patient",
			Email:          fmt.Sprintf("old%d@example.com", i),
			Reference:      fmt.Sprintf("ref-old-%d", i),
		}
		lead.CreatedAt = lastMonth
		require.NoError(t, db.Create(lead).Error)
		// gorm may overwrite CreatedAt on create; force the backdate
		require.NoError(t, db.Model(lead).UpdateColumn("created_at", lastMonth).Error)
	}

	assert.NoError(t, Admit(db, p, ResourceLeads))

	used, err := Usage(db, p.ID, ResourceLeads)
	require.NoError(t, err)
	assert.Equal(t, int64(0), used)
}

func TestAdmitZeroLimitDeniesOutright(t *testing.T) {
	db := setupTestDB(t)
	p := createPractitioner(t, db, models.TierFree) // 0 articles

	err := Admit(db, p, ResourceArticles)
	var denied *DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, 0, denied.Limit)
	assert.True(t, denied.Upgradeable)
}

func TestAdmitUnlimitedTiers(t *testing.T) {
	db := setupTestDB(t)

	for _, tier := range []models.MembershipTier{models.TierElite, models.TierEnterprise} {
		p := createPractitioner(t, db, tier)
		for i := 0; i < 100; i++ {
			require.NoError(t, Admit(db, p, ResourceLeads), "tier %s should be unlimited", tier)
			createLead(t, db, p.ID)
		}
	}
}

func TestLimitsPerTier(t *testing.T) {
	assert.Equal(t, Limits{Leads: 3, Articles: 0, Events: 0}, ForTier(models.TierFree))
	assert.Equal(t, Limits{Leads: 20, Articles: 4, Events: 2}, ForTier(models.TierProfessional))
	assert.Equal(t, Limits{Leads: 50, Articles: 10, Events: 5}, ForTier(models.TierPremium))
	assert.Equal(t, Limits{Leads: Unlimited, Articles: Unlimited, Events: Unlimited}, ForTier(models.TierElite))
	assert.Equal(t, Limits{Leads: Unlimited, Articles: Unlimited, Events: Unlimited}, ForTier(models.TierEnterprise))

	// unknown tiers fall back to the FREE row
	assert.Equal(t, ForTier(models.TierFree), ForTier(models.MembershipTier("MYSTERY")))
}

func TestUsageCountsOnlyOwnResources(t *testing.T) {
	db := setupTestDB(t)
	p1 := createPractitioner(t, db, models.TierPremium)
	p2 := &models.Practitioner{UserID: p1.UserID + 1, MembershipTier: models.TierPremium}
	require.NoError(t, db.Create(p2).Error)

	createLead(t, db, p1.ID)
	createLead(t, db, p1.ID)
	createLead(t, db, p2.ID)

	used, err := Usage(db, p1.ID, ResourceLeads)
	require.NoError(t, err)
	assert.Equal(t, int64(2), used)

	used, err = Usage(db, p2.ID, ResourceLeads)
	require.NoError(t, err)
	assert.Equal(t, int64(1), used)
}

func TestUsageUnknownResource(t *testing.T) {
	db := setupTestDB(t)
	_, err := Usage(db, 1, Resource("widgets"))
	assert.Error(t, err)
	assert.False(t, errors.As(err, new(*DeniedError)))
}
