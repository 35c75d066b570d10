package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details (published courses)
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseParam(), controllers.GetCourseDetails)

	// Free-course enrollment (paid courses go through /payment/checkout)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseParam(), controllers.EnrollInCourse)

	// Module content (gated on paid access for paid courses)
	courseGroup.Get("/module/:module_id/content", middleware.JWTMiddleware, validators.ModuleParam(), controllers.GetModuleContent)

	// Progress tracking
	courseGroup.Get("/module/:module_id/progress", middleware.JWTMiddleware, validators.ModuleParam(), controllers.GetModuleProgress)
	courseGroup.Post("/module/:module_id/progress/lesson/next", middleware.JWTMiddleware, validators.ModuleParam(), controllers.AdvanceLesson)
	courseGroup.Post("/module/:module_id/progress/assessment/next", middleware.JWTMiddleware, validators.ModuleParam(), controllers.AdvanceAssessment)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseParam(), controllers.GetCourseProgress)

	// User enrollments
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)
}
