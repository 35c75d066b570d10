package controllers

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services/enrollment"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAccessDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Assessment{},
		&courseModels.Enrollment{},
		&courseModels.ModuleProgress{},
	))

	database.Database = database.DbInstance{Db: db}
	return db
}

// newAccessApp wires the module routes behind a stub session for one user.
func newAccessApp(userID uint) *fiber.App {
	session := func(c *fiber.Ctx) error {
		c.Locals("userId", userID)
		return c.Next()
	}

	app := fiber.New()
	app.Get("/course/module/:module_id/content", session, courseValidators.ModuleParam(), GetModuleContent)
	app.Get("/course/module/:module_id/progress", session, courseValidators.ModuleParam(), GetModuleProgress)
	app.Post("/course/module/:module_id/progress/lesson/next", session, courseValidators.ModuleParam(), AdvanceLesson)
	return app
}

func seedCourseWithModule(t *testing.T, db *gorm.DB, price uint, free bool, lessons int) (*courseModels.Course, *courseModels.Module) {
	t.Helper()

	course := courseModels.Course{Title: "Options Trading", Price: price, IsFree: free, Status: "PUBLISHED"}
	require.NoError(t, db.Create(&course).Error)

	module := courseModels.Module{CourseID: course.ID, Title: "Basics", OrderIndex: 1}
	require.NoError(t, db.Create(&module).Error)

	for i := 0; i < lessons; i++ {
		require.NoError(t, db.Create(&courseModels.Lesson{
			ModuleID: module.ID, Title: "Lesson", SortOrder: i + 1,
		}).Error)
	}
	return &course, &module
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Name: "Bola", Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func payForCourse(t *testing.T, db *gorm.DB, userID uint, course *courseModels.Course) {
	t.Helper()
	require.NoError(t, enrollment.StartEnrollment(db, userID, course.ID, "ref-access", nil))
	require.NoError(t, enrollment.ConfirmPayment(db, userID, course.ID, "ref-access", int64(course.Price)*100))
}

func moduleURL(moduleID uint, suffix string) string {
	return fmt.Sprintf("/course/module/%d/%s", moduleID, suffix)
}

func doRequest(t *testing.T, app *fiber.App, method, url string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, url, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestModuleContentDeniedWithoutPayment(t *testing.T) {
	db := setupAccessDB(t)
	user := seedUser(t, db, "bola@example.com")
	_, module := seedCourseWithModule(t, db, 20000, false, 2)

	app := newAccessApp(user.ID)
	code, body := doRequest(t, app, "GET", moduleURL(module.ID, "content"))

	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Contains(t, body, "Enroll and complete payment")
}

func TestModuleProgressDeniedWithoutPayment(t *testing.T) {
	db := setupAccessDB(t)
	user := seedUser(t, db, "bola@example.com")
	_, module := seedCourseWithModule(t, db, 20000, false, 2)

	app := newAccessApp(user.ID)
	code, _ := doRequest(t, app, "GET", moduleURL(module.ID, "progress"))
	assert.Equal(t, fiber.StatusForbidden, code)

	// Denial must not initialize a progress row.
	var count int64
	require.NoError(t, db.Model(&courseModels.ModuleProgress{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAdvanceLessonDeniedWithoutPayment(t *testing.T) {
	db := setupAccessDB(t)
	user := seedUser(t, db, "bola@example.com")
	_, module := seedCourseWithModule(t, db, 20000, false, 3)

	app := newAccessApp(user.ID)
	code, body := doRequest(t, app, "POST", moduleURL(module.ID, "progress/lesson/next"))

	assert.Equal(t, fiber.StatusForbidden, code)
	assert.NotContains(t, body, "current_lesson_index")

	var count int64
	require.NoError(t, db.Model(&courseModels.ModuleProgress{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestPaidUserCanAccessModule(t *testing.T) {
	db := setupAccessDB(t)
	user := seedUser(t, db, "bola@example.com")
	course, module := seedCourseWithModule(t, db, 20000, false, 3)
	payForCourse(t, db, user.ID, course)

	app := newAccessApp(user.ID)

	code, _ := doRequest(t, app, "GET", moduleURL(module.ID, "content"))
	assert.Equal(t, fiber.StatusOK, code)

	code, _ = doRequest(t, app, "GET", moduleURL(module.ID, "progress"))
	assert.Equal(t, fiber.StatusOK, code)

	code, _ = doRequest(t, app, "POST", moduleURL(module.ID, "progress/lesson/next"))
	assert.Equal(t, fiber.StatusOK, code)

	var row courseModels.ModuleProgress
	require.NoError(t, db.Where("user_id = ? AND module_id = ?", user.ID, module.ID).First(&row).Error)
	assert.Equal(t, 1, row.CurrentLessonIndex)
}

func TestFreeCourseAccessibleWithoutEnrollment(t *testing.T) {
	db := setupAccessDB(t)
	user := seedUser(t, db, "bola@example.com")
	_, module := seedCourseWithModule(t, db, 0, true, 2)

	app := newAccessApp(user.ID)

	code, _ := doRequest(t, app, "GET", moduleURL(module.ID, "content"))
	assert.Equal(t, fiber.StatusOK, code)

	code, _ = doRequest(t, app, "POST", moduleURL(module.ID, "progress/lesson/next"))
	assert.Equal(t, fiber.StatusOK, code)
}

func TestModuleAccessUnknownModule(t *testing.T) {
	db := setupAccessDB(t)
	user := seedUser(t, db, "bola@example.com")

	app := newAccessApp(user.ID)
	code, _ := doRequest(t, app, "GET", "/course/module/42/content")
	assert.Equal(t, fiber.StatusNotFound, code)

	var count int64
	require.NoError(t, db.Model(&courseModels.ModuleProgress{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
