package adminController

import (
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	adminValidator "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateModule adds a module to a course
func AdminCreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedModule").(*adminValidator.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	module := courseModels.Module{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		log.Printf("Error creating module for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// AdminUpdateModule updates a module
func AdminUpdateModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	reqData, ok := c.Locals("validatedModule").(*adminValidator.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", moduleID, false).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	updates := map[string]interface{}{
		"title":       reqData.Title,
		"description": reqData.Description,
		"order_index": reqData.OrderIndex,
	}
	if err := database.Database.Db.Model(&module).Updates(updates).Error; err != nil {
		log.Printf("Error updating module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// AdminDeleteModule soft-deletes a module
func AdminDeleteModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	var module courseModels.Module
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", moduleID, false).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if err := database.Database.Db.Model(&module).Update("is_deleted", true).Error; err != nil {
		log.Printf("Error deleting module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// AdminCreateLesson adds a lesson to a module
func AdminCreateLesson(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	reqData, ok := c.Locals("validatedLesson").(*adminValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", moduleID, false).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	lesson := courseModels.Lesson{
		ModuleID:        moduleID,
		Title:           reqData.Title,
		FullDescription: reqData.FullDescription,
		VideoURL:        reqData.VideoURL,
		PdfURL:          reqData.PdfURL,
		SortOrder:       reqData.SortOrder,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson for module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminCreateAssessment adds an assessment to a module
func AdminCreateAssessment(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	reqData, ok := c.Locals("validatedAssessment").(*adminValidator.AssessmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", moduleID, false).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	assessment := courseModels.Assessment{
		ModuleID:        moduleID,
		Title:           reqData.Title,
		FullDescription: reqData.FullDescription,
		AssessmentType:  reqData.AssessmentType,
		TotalPoints:     reqData.TotalPoints,
		PdfURL:          reqData.PdfURL,
		SortOrder:       reqData.SortOrder,
	}

	if err := database.Database.Db.Create(&assessment).Error; err != nil {
		log.Printf("Error creating assessment for module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assessment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assessment created successfully!", assessment)
}
