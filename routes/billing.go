package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/holistichub/practitioner-hub/controllers"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
)

// SetupBillingRoutes configures membership billing routes.
func SetupBillingRoutes(app *fiber.App) {
	billing := app.Group("/billing", middleware.Protected(), middleware.RequireRole(models.RolePractitioner))
	billing.Post("/checkout", controllers.CreateCheckoutSession)
}
