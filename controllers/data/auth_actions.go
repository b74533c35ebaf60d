package dataController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/utils"
	authValidator "academy/validators/auth"
)

func getAllUsers(c *fiber.Ctx) error {
	return c.JSON(database.Database.GetAllUsers())
}

func register(c *fiber.Ctx, req actionRequest) error {
	if fieldErrors := authValidator.Credentials(req.Email, req.Pin); len(fieldErrors) > 0 {
		return middleware.ValidationErrorResponse(c, fieldErrors)
	}

	user, err := database.Database.Register(req.Email, req.Pin)
	if errors.Is(err, database.ErrDuplicateUser) {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "User already exists")
	}
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to register user!")
	}

	database.Database.SaveSession(&user)
	return c.JSON(user)
}

func login(c *fiber.Ctx, req actionRequest) error {
	user, err := database.Database.Login(req.Email, req.Pin)
	if errors.Is(err, database.ErrInvalidCredentials) {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		log.Printf("Error logging in: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to log in!")
	}

	database.Database.SaveSession(&user)
	return c.JSON(user)
}

func deleteUser(c *fiber.Ctx, req actionRequest) error {
	if err := database.Database.DeleteUser(req.UserID); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, err.Error())
	}
	return middleware.SuccessResponse(c)
}

func requestUnlock(c *fiber.Ctx, req actionRequest) error {
	if err := database.Database.RequestUnlock(req.UserID, req.CourseID); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record unlock request!")
	}

	// Notify the admin about the claimed payment, best-effort.
	go func(userID, courseID string) {
		if err := utils.SendUnlockNotification(config.AppConfig.AdminEmail, userID, courseID); err != nil {
			log.Printf("Error sending unlock notification: %v", err)
		}
	}(req.UserID, req.CourseID)

	return middleware.SuccessResponse(c)
}

func approveUnlock(c *fiber.Ctx, req actionRequest) error {
	if err := database.Database.ApproveUnlock(req.UserID, req.CourseID); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to approve unlock!")
	}
	return middleware.SuccessResponse(c)
}

func lockCourse(c *fiber.Ctx, req actionRequest) error {
	if err := database.Database.LockCourse(req.UserID, req.CourseID); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to lock course!")
	}
	return middleware.SuccessResponse(c)
}
