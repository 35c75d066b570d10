package course

import "gorm.io/gorm"

// ModuleProgress holds a learner's cursor within a module's ordered lessons
// and assessments. Indices stay within [0, count-1] of the collection.
type ModuleProgress struct {
	gorm.Model
	UserID                 uint `json:"user_id" gorm:"uniqueIndex:idx_user_module;not null"`
	ModuleID               uint `json:"module_id" gorm:"uniqueIndex:idx_user_module;not null"`
	CurrentLessonIndex     int  `json:"current_lesson_index" gorm:"default:0"`
	CurrentAssessmentIndex int  `json:"current_assessment_index" gorm:"default:0"`
	LessonsCompleted       bool `json:"lessons_completed" gorm:"default:false"`
	AssessmentsCompleted   bool `json:"assessments_completed" gorm:"default:false"`
}
