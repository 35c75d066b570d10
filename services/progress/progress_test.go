package progress

import (
	"fmt"
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Assessment{},
		&courseModels.ModuleProgress{},
	))
	return db
}

func createModule(t *testing.T, db *gorm.DB, lessons, assessments int) *courseModels.Module {
	t.Helper()
	module := courseModels.Module{CourseID: 1, Title: "Candlestick Patterns"}
	require.NoError(t, db.Create(&module).Error)

	for i := 0; i < lessons; i++ {
		lesson := courseModels.Lesson{
			ModuleID:  module.ID,
			Title:     fmt.Sprintf("Lesson %d", i+1),
			SortOrder: i,
		}
		require.NoError(t, db.Create(&lesson).Error)
	}
	for i := 0; i < assessments; i++ {
		assessment := courseModels.Assessment{
			ModuleID:  module.ID,
			Title:     fmt.Sprintf("Assessment %d", i+1),
			SortOrder: i,
		}
		require.NoError(t, db.Create(&assessment).Error)
	}
	return &module
}

func TestGetOrInitProgress(t *testing.T) {
	db := setupTestDB(t)
	module := createModule(t, db, 3, 1)

	row, err := GetOrInitProgress(db, 1, module.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, row.CurrentLessonIndex)
	assert.Equal(t, 0, row.CurrentAssessmentIndex)
	assert.False(t, row.LessonsCompleted)
	assert.False(t, row.AssessmentsCompleted)

	// Second visit returns the same row
	again, err := GetOrInitProgress(db, 1, module.ID)
	require.NoError(t, err)
	assert.Equal(t, row.ID, again.ID)

	var count int64
	db.Model(&courseModels.ModuleProgress{}).Where("user_id = ? AND module_id = ?", 1, module.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGetOrInitProgressModuleMissing(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetOrInitProgress(db, 1, 999)
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestAdvanceLessonClampsAndCompletes(t *testing.T) {
	db := setupTestDB(t)
	module := createModule(t, db, 3, 0)

	// Three advances over three lessons: 1, 2, then clamp at 2 with completion
	row, err := AdvanceLesson(db, 1, module.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, row.CurrentLessonIndex)
	assert.False(t, row.LessonsCompleted)

	row, err = AdvanceLesson(db, 1, module.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, row.CurrentLessonIndex)
	assert.False(t, row.LessonsCompleted)

	row, err = AdvanceLesson(db, 1, module.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, row.CurrentLessonIndex)
	assert.True(t, row.LessonsCompleted)

	// A further advance is a no-op on the index and keeps the flag
	row, err = AdvanceLesson(db, 1, module.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, row.CurrentLessonIndex)
	assert.True(t, row.LessonsCompleted)

	// Persisted state matches
	var stored courseModels.ModuleProgress
	require.NoError(t, db.Where("user_id = ? AND module_id = ?", 1, module.ID).First(&stored).Error)
	assert.Equal(t, 2, stored.CurrentLessonIndex)
	assert.True(t, stored.LessonsCompleted)
}

func TestAdvanceSingleLessonModule(t *testing.T) {
	db := setupTestDB(t)
	module := createModule(t, db, 1, 0)

	row, err := AdvanceLesson(db, 1, module.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, row.CurrentLessonIndex)
	assert.True(t, row.LessonsCompleted)
}

func TestAdvanceAssessmentClampsAndCompletes(t *testing.T) {
	db := setupTestDB(t)
	module := createModule(t, db, 0, 2)

	row, err := AdvanceAssessment(db, 1, module.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, row.CurrentAssessmentIndex)
	assert.False(t, row.AssessmentsCompleted)

	row, err = AdvanceAssessment(db, 1, module.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, row.CurrentAssessmentIndex)
	assert.True(t, row.AssessmentsCompleted)

	// Lesson state is untouched by assessment advances
	assert.Equal(t, 0, row.CurrentLessonIndex)
	assert.False(t, row.LessonsCompleted)
}

func TestAdvanceEmptyCollections(t *testing.T) {
	db := setupTestDB(t)
	module := createModule(t, db, 0, 0)

	_, err := AdvanceLesson(db, 1, module.ID)
	assert.ErrorIs(t, err, ErrNoLessons)

	_, err = AdvanceAssessment(db, 1, module.ID)
	assert.ErrorIs(t, err, ErrNoAssessments)
}

func TestProgressIsolatedPerUser(t *testing.T) {
	db := setupTestDB(t)
	module := createModule(t, db, 3, 0)

	_, err := AdvanceLesson(db, 1, module.ID)
	require.NoError(t, err)

	other, err := GetOrInitProgress(db, 2, module.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, other.CurrentLessonIndex)
}
