package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment status values for an enrollment
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Enrollment tracks a user's relationship to a course and its payment state.
// A (user, course) pair has at most one row; the pending->paid transition is
// one-directional and applied exactly once.
type Enrollment struct {
	gorm.Model
	UserID            uint           `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID          uint           `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	PaymentStatus     string         `json:"payment_status" gorm:"default:'pending'"` // pending, paid
	CheckoutReference string         `json:"checkout_reference"`                      // reference sent to the gateway at initialize time
	PaymentReference  string         `json:"payment_reference"`                       // gateway reference, set on paid transition
	EnrolledAt        *time.Time     `json:"enrolled_at"`                             // set on paid transition
	Metadata          datatypes.JSON `json:"metadata"`                                // free-form, e.g. training type
	IsDeleted         bool           `gorm:"default:false"`
}
