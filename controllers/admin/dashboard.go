package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/models"
	"github.com/holistichub/practitioner-hub/quota"
)

// GetDashboardOverview returns the back-office statistics: member counts by
// tier, this month's lead volume, the moderation queue depth and the
// consultation pipeline.
func GetDashboardOverview(c *fiber.Ctx) error {
	var statistics struct {
		TotalPractitioners  int64            `json:"total_practitioners"`
		PractitionersByTier map[string]int64 `json:"practitioners_by_tier"`
		LeadsThisMonth      int64            `json:"leads_this_month"`
		PendingReviews      int64            `json:"pending_reviews"`
		RequestedCount      int64            `json:"requested_consultations"`
		ScheduledCount      int64            `json:"scheduled_consultations"`
		CompletedCount      int64            `json:"completed_consultations"`
		PublishedArticles   int64            `json:"published_articles"`
		UpcomingEvents      int64            `json:"upcoming_events"`
		LastUpdated         time.Time        `json:"last_updated"`
	}

	db.DB.Model(&models.Practitioner{}).Count(&statistics.TotalPractitioners)

	statistics.PractitionersByTier = make(map[string]int64)
	type tierCount struct {
		MembershipTier string
		Count          int64
	}
	var tierCounts []tierCount
	db.DB.Model(&models.Practitioner{}).
		Select("membership_tier, COUNT(*) as count").
		Group("membership_tier").
		Scan(&tierCounts)
	for _, tc := range tierCounts {
		statistics.PractitionersByTier[tc.MembershipTier] = tc.Count
	}

	db.DB.Model(&models.Lead{}).
		Where("created_at >= ?", quota.MonthStart(time.Now())).
		Count(&statistics.LeadsThisMonth)

	db.DB.Model(&models.Review{}).Where("is_published = ?", false).Count(&statistics.PendingReviews)

	db.DB.Model(&models.Consultation{}).Where("status = ?", models.ConsultationRequested).Count(&statistics.RequestedCount)
	db.DB.Model(&models.Consultation{}).Where("status = ?", models.ConsultationScheduled).Count(&statistics.ScheduledCount)
	db.DB.Model(&models.Consultation{}).Where("status = ?", models.ConsultationCompleted).Count(&statistics.CompletedCount)

	db.DB.Model(&models.Article{}).Where("status = ?", models.ArticlePublished).Count(&statistics.PublishedArticles)
	db.DB.Model(&models.Event{}).Where("starts_at >= ?", time.Now()).Count(&statistics.UpcomingEvents)

	statistics.LastUpdated = time.Now()

	return c.JSON(statistics)
}
