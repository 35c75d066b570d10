package adminRoutes

import (
	adminControllers "lms/controllers/admin"
	"lms/middleware"
	adminValidators "lms/validators/admin"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up admin-only routes; the role check happens once
// here instead of inside every handler.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireAdmin)

	// Course management
	adminGroup.Get("/courses", adminControllers.AdminGetAllCourses)
	adminGroup.Post("/course", adminValidators.Course(), adminControllers.AdminCreateCourse)
	adminGroup.Put("/course/:id", courseValidators.CourseParam(), adminValidators.Course(), adminControllers.AdminUpdateCourse)
	adminGroup.Patch("/course/:id/publish", courseValidators.CourseParam(), adminControllers.AdminPublishCourse)
	adminGroup.Delete("/course/:id", courseValidators.CourseParam(), adminControllers.AdminDeleteCourse)

	// Module and content management
	adminGroup.Post("/course/:id/module", courseValidators.CourseParam(), adminValidators.Module(), adminControllers.AdminCreateModule)
	adminGroup.Put("/module/:module_id", courseValidators.ModuleParam(), adminValidators.Module(), adminControllers.AdminUpdateModule)
	adminGroup.Delete("/module/:module_id", courseValidators.ModuleParam(), adminControllers.AdminDeleteModule)
	adminGroup.Post("/module/:module_id/lesson", courseValidators.ModuleParam(), adminValidators.Lesson(), adminControllers.AdminCreateLesson)
	adminGroup.Post("/module/:module_id/assessment", courseValidators.ModuleParam(), adminValidators.Assessment(), adminControllers.AdminCreateAssessment)

	// User administration
	adminGroup.Get("/users", adminControllers.AdminListUsers)
	adminGroup.Patch("/user/:user_id/approval", adminValidators.Approval(), adminControllers.AdminSetApproval)

	// Payments and stats
	adminGroup.Get("/payments", adminControllers.AdminListPayments)
	adminGroup.Get("/dashboard", adminControllers.AdminDashboardStats)
}
