package course

import "gorm.io/gorm"

// Assessment is an ordered graded item within a module
type Assessment struct {
	gorm.Model
	ModuleID        uint   `json:"module_id" gorm:"index;not null"`
	Title           string `json:"title"`
	FullDescription string `json:"full_description"`
	AssessmentType  string `json:"assessment_type"` // QUIZ, PROJECT, EXAM
	TotalPoints     int    `json:"total_points" gorm:"default:0"`
	PdfURL          string `json:"pdf_url"`
	SortOrder       int    `json:"sort_order" gorm:"default:0"`
	IsDeleted       bool   `gorm:"default:false"`
}
