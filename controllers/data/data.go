package dataController

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"academy/middleware"
	"academy/models"
)

// actionRequest is the single request envelope of the wire protocol:
// {"action": <name>, ...action-specific fields}.
type actionRequest struct {
	Action string `json:"action"`

	Email string `json:"email"`
	Pin   string `json:"pin"`

	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
	BatchID  string `json:"batchId"`

	Course   *models.Course           `json:"course"`
	Batch    *models.Batch            `json:"batch"`
	Settings *models.PlatformSettings `json:"settings"`
}

// Preflight answers CORS preflight checks with an informational body.
func Preflight(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "CORS Preflight OK"})
}

// Dispatch routes a protocol request to its action handler.
func Dispatch(c *fiber.Ctx) error {
	var req actionRequest
	if err := c.BodyParser(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	switch req.Action {
	case "getAllUsers":
		return getAllUsers(c)
	case "register":
		return register(c, req)
	case "login":
		return login(c, req)
	case "deleteUser":
		return deleteUser(c, req)
	case "requestUnlock":
		return requestUnlock(c, req)
	case "approveUnlock":
		return approveUnlock(c, req)
	case "lockCourse":
		return lockCourse(c, req)
	case "getCourses":
		return getCourses(c)
	case "saveCourse":
		return saveCourse(c, req)
	case "deleteCourse":
		return deleteCourse(c, req)
	case "getBatches":
		return getBatches(c)
	case "saveBatch":
		return saveBatch(c, req)
	case "deleteBatch":
		return deleteBatch(c, req)
	case "getSettings":
		return getSettings(c)
	case "saveSettings":
		return saveSettings(c, req)
	default:
		return middleware.ErrorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("Action '%s' not supported", req.Action))
	}
}
