package dataRoutes

import (
	controllers "academy/controllers/data"

	"github.com/gofiber/fiber/v2"
)

// SetupDataRoutes wires the single-endpoint action protocol.
func SetupDataRoutes(app *fiber.App) {
	app.Options("/api/data", controllers.Preflight)
	app.Post("/api/data", controllers.Dispatch)
}
