package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/holistichub/practitioner-hub/controllers"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
)

// SetupContentRoutes configures article and event routes.
func SetupContentRoutes(app *fiber.App) {
	article := app.Group("/articles")
	article.Get("/", controllers.GetArticles)
	article.Get("/mine", middleware.Protected(), middleware.RequireAnyRole(models.RolePractitioner, models.RoleAdmin), controllers.GetMyArticles)
	article.Get("/:slug", middleware.OptionalAuth(), controllers.GetArticle)
	article.Post("/", middleware.Protected(), middleware.RequireAnyRole(models.RolePractitioner, models.RoleAdmin), controllers.CreateArticle)
	article.Patch("/:slug", middleware.Protected(), middleware.RequireAnyRole(models.RolePractitioner, models.RoleAdmin), controllers.UpdateArticle)

	event := app.Group("/events")
	event.Get("/", controllers.GetEvents)
	event.Get("/:id", controllers.GetEvent)
	event.Post("/", middleware.Protected(), middleware.RequireAnyRole(models.RolePractitioner, models.RoleAdmin), controllers.CreateEvent)
	event.Post("/:id/register", controllers.RegisterForEvent)
}
