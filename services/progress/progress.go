package progress

import (
	"errors"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

var (
	ErrModuleNotFound = errors.New("module not found")
	ErrNoLessons      = errors.New("module has no lessons")
	ErrNoAssessments  = errors.New("module has no assessments")
)

// GetOrInitProgress returns the learner's progress row for a module, creating
// a zeroed one on first visit.
func GetOrInitProgress(db *gorm.DB, userID, moduleID uint) (*courseModels.ModuleProgress, error) {
	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = false", moduleID).First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}

	row := courseModels.ModuleProgress{UserID: userID, ModuleID: moduleID}
	err := db.Where(courseModels.ModuleProgress{UserID: userID, ModuleID: moduleID}).
		FirstOrCreate(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// AdvanceLesson moves the lesson cursor forward one step. Past the last
// lesson the cursor clamps to count-1 and lessons_completed is set.
func AdvanceLesson(db *gorm.DB, userID, moduleID uint) (*courseModels.ModuleProgress, error) {
	count, err := lessonCount(db, moduleID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoLessons
	}

	row, err := GetOrInitProgress(db, userID, moduleID)
	if err != nil {
		return nil, err
	}

	next := row.CurrentLessonIndex + 1
	updates := map[string]interface{}{}
	if next >= count {
		updates["current_lesson_index"] = count - 1
		updates["lessons_completed"] = true
		row.CurrentLessonIndex = count - 1
		row.LessonsCompleted = true
	} else {
		updates["current_lesson_index"] = next
		row.CurrentLessonIndex = next
	}

	if err := db.Model(&courseModels.ModuleProgress{}).Where("id = ?", row.ID).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// AdvanceAssessment is the assessment counterpart of AdvanceLesson.
func AdvanceAssessment(db *gorm.DB, userID, moduleID uint) (*courseModels.ModuleProgress, error) {
	count, err := assessmentCount(db, moduleID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoAssessments
	}

	row, err := GetOrInitProgress(db, userID, moduleID)
	if err != nil {
		return nil, err
	}

	next := row.CurrentAssessmentIndex + 1
	updates := map[string]interface{}{}
	if next >= count {
		updates["current_assessment_index"] = count - 1
		updates["assessments_completed"] = true
		row.CurrentAssessmentIndex = count - 1
		row.AssessmentsCompleted = true
	} else {
		updates["current_assessment_index"] = next
		row.CurrentAssessmentIndex = next
	}

	if err := db.Model(&courseModels.ModuleProgress{}).Where("id = ?", row.ID).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func lessonCount(db *gorm.DB, moduleID uint) (int, error) {
	var count int64
	err := db.Model(&courseModels.Lesson{}).
		Where("module_id = ? AND is_deleted = false", moduleID).
		Count(&count).Error
	return int(count), err
}

func assessmentCount(db *gorm.DB, moduleID uint) (int, error) {
	var count int64
	err := db.Model(&courseModels.Assessment{}).
		Where("module_id = ? AND is_deleted = false", moduleID).
		Count(&count).Error
	return int(count), err
}
