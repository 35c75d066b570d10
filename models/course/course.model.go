package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	Price        uint   `json:"price" gorm:"default:0"` // whole naira; gateway amounts are price * 100 kobo
	IsFree       bool   `json:"is_free" gorm:"default:false"`
	Duration     int64  `json:"duration" gorm:"default:0"`     // duration in hours
	Status       string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, PUBLISHED, ARCHIVED
	ThumbnailURL string `json:"thumbnail_url"`
	TrainingType string `json:"training_type"` // e.g. SELF_PACED, COHORT
	IsDeleted    bool   `gorm:"default:false"`
}
