package controllers

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services/enrollment"
	"lms/services/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// requireModuleAccess loads the module and verifies the caller may use it.
// On denial the response is already written and ok is false; callers must
// return without touching progress state.
func requireModuleAccess(c *fiber.Ctx, userID, moduleID uint) (*courseModels.Module, bool) {
	var module courseModels.Module
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", moduleID, false).
		First(&module).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		return nil, false
	}

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND status = ?", module.CourseID, false, "PUBLISHED").
		First(&course).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
		return nil, false
	}

	if !course.IsFree {
		paid, err := enrollment.HasPaidAccess(database.Database.Db, userID, course.ID)
		if err != nil {
			log.Printf("Error checking access for user %d course %d: %v", userID, course.ID, err)
			middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check access!", nil)
			return nil, false
		}
		if !paid {
			middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll and complete payment to access this content!", nil)
			return nil, false
		}
	}

	return &module, true
}

// GetModuleProgress returns the learner's progress cursor for a module,
// creating a zeroed row on first visit. A dimension with no items reports
// complete.
func GetModuleProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(uint)
	if _, ok := requireModuleAccess(c, userID, moduleID); !ok {
		return nil
	}

	row, err := progress.GetOrInitProgress(database.Database.Db, userID, moduleID)
	if err != nil {
		log.Printf("Error fetching progress for user %d module %d: %v", userID, moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var lessonCount, assessmentCount int64
	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("module_id = ? AND is_deleted = ?", moduleID, false).Count(&lessonCount)
	database.Database.Db.Model(&courseModels.Assessment{}).
		Where("module_id = ? AND is_deleted = ?", moduleID, false).Count(&assessmentCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":              row,
		"lesson_count":          lessonCount,
		"assessment_count":      assessmentCount,
		"lessons_completed":     row.LessonsCompleted || lessonCount == 0,
		"assessments_completed": row.AssessmentsCompleted || assessmentCount == 0,
	})
}

// AdvanceLesson moves the lesson cursor forward one step
func AdvanceLesson(c *fiber.Ctx) error {
	return advance(c, progress.AdvanceLesson, progress.ErrNoLessons, "Module has no lessons!")
}

// AdvanceAssessment moves the assessment cursor forward one step
func AdvanceAssessment(c *fiber.Ctx) error {
	return advance(c, progress.AdvanceAssessment, progress.ErrNoAssessments, "Module has no assessments!")
}

func advance(c *fiber.Ctx,
	fn func(db *gorm.DB, userID, moduleID uint) (*courseModels.ModuleProgress, error),
	emptyErr error, emptyMsg string) error {

	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(uint)
	if _, ok := requireModuleAccess(c, userID, moduleID); !ok {
		return nil
	}

	row, err := fn(database.Database.Db, userID, moduleID)
	if err != nil {
		if errors.Is(err, emptyErr) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, emptyMsg, nil)
		}
		if errors.Is(err, progress.ErrModuleNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		log.Printf("Error advancing progress for user %d module %d: %v", userID, moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", row)
}

// GetCourseProgress summarizes the learner's progress across a course's modules
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, "PUBLISHED").
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	var modules []courseModels.Module
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	moduleIDs := make([]uint, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	var rows []courseModels.ModuleProgress
	if len(moduleIDs) > 0 {
		if err := database.Database.Db.
			Where("user_id = ? AND module_id IN ?", userID, moduleIDs).
			Find(&rows).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
	}

	byModule := make(map[uint]courseModels.ModuleProgress, len(rows))
	for _, r := range rows {
		byModule[r.ModuleID] = r
	}

	completed := 0
	summary := make([]fiber.Map, 0, len(modules))
	for _, m := range modules {
		r, visited := byModule[m.ID]
		done := visited && r.LessonsCompleted && r.AssessmentsCompleted
		if done {
			completed++
		}
		summary = append(summary, fiber.Map{
			"module_id": m.ID,
			"title":     m.Title,
			"visited":   visited,
			"completed": done,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course progress fetched successfully!", fiber.Map{
		"course_id":         courseID,
		"modules":           summary,
		"modules_completed": completed,
		"module_count":      len(modules),
	})
}
