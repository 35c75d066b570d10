package adminController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminListPayments lists paid enrollments with student and course details
func AdminListPayments(c *fiber.Ctx) error {
	type PaymentRow struct {
		courseModels.Enrollment
		UserName    string `json:"user_name"`
		UserEmail   string `json:"user_email"`
		CourseTitle string `json:"course_title"`
		Price       uint   `json:"price"`
	}

	var rows []PaymentRow
	err := database.Database.Db.Model(&courseModels.Enrollment{}).
		Select("enrollments.*, users.name as user_name, users.email as user_email, courses.title as course_title, courses.price as price").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.payment_status = ? AND enrollments.is_deleted = ?", courseModels.PaymentPaid, false).
		Order("enrollments.enrolled_at desc").
		Scan(&rows).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", rows)
}

// AdminDashboardStats returns headline counts for the admin dashboard
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var courseCount, enrollmentCount, paidCount, enrolledToday int64
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&courseCount)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&enrollmentCount)
	db.Model(&courseModels.Enrollment{}).
		Where("payment_status = ? AND is_deleted = ?", courseModels.PaymentPaid, false).
		Count(&paidCount)

	today := now.BeginningOfDay()
	db.Model(&courseModels.Enrollment{}).
		Where("payment_status = ? AND enrolled_at >= ? AND is_deleted = ?", courseModels.PaymentPaid, today, false).
		Count(&enrolledToday)

	// Revenue in naira, summed from course prices of paid enrollments
	var revenue int64
	db.Model(&courseModels.Enrollment{}).
		Select("COALESCE(SUM(courses.price), 0)").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.payment_status = ? AND enrollments.is_deleted = ?", courseModels.PaymentPaid, false).
		Scan(&revenue)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"courses":          courseCount,
		"enrollments":      enrollmentCount,
		"paid_enrollments": paidCount,
		"enrolled_today":   enrolledToday,
		"revenue_naira":    revenue,
	})
}
