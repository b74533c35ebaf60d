package middleware

import "github.com/gofiber/fiber/v2"

// The wire protocol uses bare response bodies: entities on success,
// {"error": ...} on failure and {"success": true} for acknowledged
// mutations. These helpers keep the handlers uniform.

func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}

func SuccessResponse(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed!",
		"fields": errors,
	})
}
