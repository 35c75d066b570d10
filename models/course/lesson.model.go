package course

import "gorm.io/gorm"

// Lesson is an ordered piece of module content
type Lesson struct {
	gorm.Model
	ModuleID        uint   `json:"module_id" gorm:"index;not null"`
	Title           string `json:"title"`
	FullDescription string `json:"full_description"`
	VideoURL        string `json:"video_url"`
	PdfURL          string `json:"pdf_url"`
	SortOrder       int    `json:"sort_order" gorm:"default:0"`
	IsDeleted       bool   `gorm:"default:false"`
}
