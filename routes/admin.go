package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/holistichub/practitioner-hub/controllers/admin"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
)

// SetupAdminRoutes configures the moderation back office.
func SetupAdminRoutes(app *fiber.App) {
	back := app.Group("/admin", middleware.Protected(), middleware.RequireAnyRole(models.RoleAdmin, models.RoleModerator))

	back.Get("/dashboard", admin.GetDashboardOverview)
	back.Get("/reviews/pending", admin.GetPendingReviews)
	back.Post("/reviews/:id/moderate", admin.ModerateReview)
}
