package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/holistichub/practitioner-hub/controllers"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
)

// SetupLeadRoutes configures all lead related routes
func SetupLeadRoutes(app *fiber.App) {
	lead := app.Group("/leads")

	// Public submission from the directory
	lead.Post("/", controllers.CreateLead)

	lead.Get("/", middleware.Protected(), middleware.RequireRole(models.RolePractitioner), controllers.GetMyLeads)
	lead.Patch("/:id", middleware.Protected(), middleware.RequireAnyRole(models.RolePractitioner, models.RoleAdmin, models.RoleModerator), controllers.UpdateLeadStatus)
}
