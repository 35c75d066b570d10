package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage    string     `gorm:"default:''"`
	Name            string     `gorm:"default:''"`
	Email           string     `gorm:"unique;not null"`
	Role            string     `gorm:"default:'STUDENT'"` // STUDENT, TUTOR, ADMIN
	Password        string     `gorm:"not null"`
	ApprovalStatus  string     `gorm:"default:'APPROVED'"` // APPROVED, PENDING, REJECTED (tutors start PENDING)
	IsEmailVerified bool       `gorm:"default:false"`
	LastLogin       *time.Time `json:"last_login"`
	IsDeleted       bool       `gorm:"default:false"`
}
