package dataController

import (
	"github.com/gofiber/fiber/v2"

	"academy/database"
	"academy/middleware"
)

func getSettings(c *fiber.Ctx) error {
	return c.JSON(database.Database.GetSettings())
}

func saveSettings(c *fiber.Ctx, req actionRequest) error {
	if req.Settings == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing settings payload!")
	}
	database.Database.SaveSettings(*req.Settings)
	return middleware.SuccessResponse(c)
}
