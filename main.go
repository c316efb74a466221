package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/holistichub/practitioner-hub/cron"
	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/redis"
	"github.com/holistichub/practitioner-hub/routes"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		db.Migrate()
		return
	}

	app := fiber.New()
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupPractitionerRoutes(app)
	routes.SetupLeadRoutes(app)
	routes.SetupConsultationRoutes(app)
	routes.SetupContentRoutes(app)
	routes.SetupBillingRoutes(app)
	routes.SetupAdminRoutes(app)

	log.Fatal(app.Listen(":8000"))
}
