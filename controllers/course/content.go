package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetModuleContent returns a module's ordered lessons and assessments.
// Content of paid courses is gated on a paid enrollment.
func GetModuleContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(uint)
	module, ok := requireModuleAccess(c, userID, moduleID)
	if !ok {
		return nil
	}

	var lessons []courseModels.Lesson
	if err := database.Database.Db.
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("sort_order asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	var assessments []courseModels.Assessment
	if err := database.Database.Db.
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("sort_order asc").Find(&assessments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assessments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module content fetched successfully!", fiber.Map{
		"module":      module,
		"lessons":     lessons,
		"assessments": assessments,
	})
}
