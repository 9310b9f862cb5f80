package v1

import (
	"tally/api/v1/handlers"
	"tally/internal/dispatch"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, d *dispatch.Dispatcher) {
	api := app.Group("/api/v1")

	handlers.RegisterEvents(api.Group("/events"), d)
	handlers.RegisterSystem(api.Group("/system"))
}
