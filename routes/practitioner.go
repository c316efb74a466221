package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/holistichub/practitioner-hub/controllers"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
)

// SetupPractitionerRoutes configures the public directory and the
// practitioner's own profile routes.
func SetupPractitionerRoutes(app *fiber.App) {
	directory := app.Group("/practitioners")
	directory.Get("/", controllers.SearchPractitioners)
	directory.Get("/:id", controllers.GetPractitioner)
	directory.Get("/:id/reviews", controllers.GetPractitionerReviews)

	profile := app.Group("/profile", middleware.Protected(), middleware.RequireRole(models.RolePractitioner))
	profile.Get("/", controllers.GetMyPractitionerProfile)
	profile.Patch("/", controllers.UpdateMyPractitionerProfile)
	profile.Post("/photo", controllers.UploadProfilePhoto)
}
