package middleware

import (
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// CanAdminister reports whether the user behind the session may perform
// administrative actions. All admin routes go through this single check.
func CanAdminister(userID uint) bool {
	var user models.User
	err := database.Database.Db.
		Where("id = ? AND role = ? AND is_deleted = false", userID, "ADMIN").
		First(&user).Error
	return err == nil
}

// RequireAdmin guards admin route groups
func RequireAdmin(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized: User ID not found",
			"data":    nil,
		})
	}

	if !CanAdminister(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "You do not have permission to access this resource!",
			"data":    nil,
		})
	}

	return c.Next()
}
