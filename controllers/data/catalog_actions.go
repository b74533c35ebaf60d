package dataController

import (
	"github.com/gofiber/fiber/v2"

	"academy/database"
	"academy/middleware"
	batchValidator "academy/validators/batch"
	courseValidator "academy/validators/course"
)

func getCourses(c *fiber.Ctx) error {
	return c.JSON(database.Database.GetCourses())
}

func saveCourse(c *fiber.Ctx, req actionRequest) error {
	if req.Course == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing course payload!")
	}
	if fieldErrors := courseValidator.Course(*req.Course); len(fieldErrors) > 0 {
		return middleware.ValidationErrorResponse(c, fieldErrors)
	}

	database.Database.SaveCourse(*req.Course)
	return middleware.SuccessResponse(c)
}

func deleteCourse(c *fiber.Ctx, req actionRequest) error {
	if req.CourseID == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing courseId!")
	}
	database.Database.DeleteCourse(req.CourseID)
	return middleware.SuccessResponse(c)
}

func getBatches(c *fiber.Ctx) error {
	return c.JSON(database.Database.GetBatches())
}

func saveBatch(c *fiber.Ctx, req actionRequest) error {
	if req.Batch == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing batch payload!")
	}
	if fieldErrors := batchValidator.Batch(*req.Batch); len(fieldErrors) > 0 {
		return middleware.ValidationErrorResponse(c, fieldErrors)
	}

	database.Database.SaveBatch(*req.Batch)
	return middleware.SuccessResponse(c)
}

func deleteBatch(c *fiber.Ctx, req actionRequest) error {
	if req.BatchID == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing batchId!")
	}
	database.Database.DeleteBatch(req.BatchID)
	return middleware.SuccessResponse(c)
}
