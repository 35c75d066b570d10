package adminController

import (
	"log"
	"strconv"
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"
	adminValidator "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers lists users, optionally filtered by role
func AdminListUsers(c *fiber.Ctx) error {
	role := strings.ToUpper(strings.TrimSpace(c.Query("role")))

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if role != "" {
		db = db.Where("role = ?", role)
	}

	var users []models.User
	if err := db.Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}

// AdminSetApproval approves or rejects a student/tutor account
func AdminSetApproval(c *fiber.Ctx) error {
	userIDStr := strings.TrimSpace(c.Params("user_id"))
	userID, err := strconv.Atoi(userIDStr)
	if err != nil || userID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
	}

	reqData, ok := c.Locals("validatedApproval").(*adminValidator.ApprovalRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", userID, false).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("approval_status", reqData.Status).Error; err != nil {
		log.Printf("Error updating approval for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update approval status!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Approval status updated successfully!", user)
}
