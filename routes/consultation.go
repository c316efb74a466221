package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/holistichub/practitioner-hub/controllers"
	"github.com/holistichub/practitioner-hub/middleware"
)

// SetupConsultationRoutes configures all consultation related routes
func SetupConsultationRoutes(app *fiber.App) {
	consultation := app.Group("/consultations", middleware.Protected())
	consultation.Post("/", controllers.CreateConsultation)
	consultation.Get("/", controllers.GetMyConsultations)
	consultation.Patch("/:id", controllers.UpdateConsultationStatus)

	review := app.Group("/reviews", middleware.Protected())
	review.Post("/", controllers.CreateReview)
}
