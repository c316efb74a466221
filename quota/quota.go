package quota

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/holistichub/practitioner-hub/models"
)

// Resource is a quota-gated resource type.
type Resource string

const (
	ResourceLeads    Resource = "leads"
	ResourceArticles Resource = "articles"
	ResourceEvents   Resource = "events"
)

// Unlimited marks a tier that has no monthly cap on a resource.
const Unlimited = -1

// Limits holds the per-calendar-month caps for one membership tier.
type Limits struct {
	Leads    int
	Articles int
	Events   int
}

// ForTier returns the static quota table row for a tier. The table is
// consulted at runtime, never mutated.
func ForTier(tier models.MembershipTier) Limits {
	switch tier {
	case models.TierFree:
		return Limits{Leads: 3, Articles: 0, Events: 0}
	case models.TierProfessional:
		return Limits{Leads: 20, Articles: 4, Events: 2}
	case models.TierPremium:
		return Limits{Leads: 50, Articles: 10, Events: 5}
	case models.TierElite, models.TierEnterprise:
		return Limits{Leads: Unlimited, Articles: Unlimited, Events: Unlimited}
	default:
		// unknown tiers get the FREE row
		return Limits{Leads: 3, Articles: 0, Events: 0}
	}
}

// For returns the limit for a single resource.
func (l Limits) For(resource Resource) int {
	switch resource {
	case ResourceLeads:
		return l.Leads
	case ResourceArticles:
		return l.Articles
	case ResourceEvents:
		return l.Events
	}
	return 0
}

// MonthStart returns the first instant of t's calendar month in server-local
// time. Quota periods reset at this boundary.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Usage counts the practitioner's resources created since the start of the
// current calendar month. Pure read, no side effects.
func Usage(db *gorm.DB, practitionerID uint, resource Resource) (int64, error) {
	since := MonthStart(time.Now())

	var count int64
	var err error
	switch resource {
	case ResourceLeads:
		err = db.Model(&models.Lead{}).
			Where("practitioner_id = ? AND created_at >= ?", practitionerID, since).
			Count(&count).Error
	case ResourceArticles:
		err = db.Model(&models.Article{}).
			Where("practitioner_id = ? AND created_at >= ?", practitionerID, since).
			Count(&count).Error
	case ResourceEvents:
		err = db.Model(&models.Event{}).
			Where("practitioner_id = ? AND created_at >= ?", practitionerID, since).
			Count(&count).Error
	default:
		return 0, fmt.Errorf("unknown quota resource: %s", resource)
	}
	return count, err
}

// DeniedError explains why the gate rejected a creation. Upgradeable is true
// when a higher tier would have admitted it.
type DeniedError struct {
	Resource    Resource
	Tier        models.MembershipTier
	Limit       int
	Reason      string
	Upgradeable bool
}

func (e *DeniedError) Error() string {
	return e.Reason
}

// Admit decides whether the practitioner may create one more resource this
// month. The check and the subsequent create are not atomic as a pair; a
// concurrent pair of requests may land one row past the cap. The quota is a
// soft business limit, so that is accepted rather than locked around.
func Admit(db *gorm.DB, practitioner *models.Practitioner, resource Resource) error {
	limit := ForTier(practitioner.MembershipTier).For(resource)

	if limit == 0 {
		return &DeniedError{
			Resource:    resource,
			Tier:        practitioner.MembershipTier,
			Limit:       0,
			Reason:      fmt.Sprintf("the %s membership does not include %s, upgrade to unlock this feature", practitioner.MembershipTier, resource),
			Upgradeable: true,
		}
	}
	if limit == Unlimited {
		return nil
	}

	used, err := Usage(db, practitioner.ID, resource)
	if err != nil {
		return err
	}
	if used >= int64(limit) {
		return &DeniedError{
			Resource:    resource,
			Tier:        practitioner.MembershipTier,
			Limit:       limit,
			Reason:      fmt.Sprintf("monthly limit of %d %s reached for the %s membership, upgrade for a higher limit", limit, resource, practitioner.MembershipTier),
			Upgradeable: true,
		}
	}
	return nil
}
