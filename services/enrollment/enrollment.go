package enrollment

import (
	"errors"
	"time"

	courseModels "lms/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCourseNotFound      = errors.New("course not found or not published")
	ErrCourseFree          = errors.New("course is free; no payment required")
	ErrAlreadyPaid         = errors.New("enrollment is already paid")
	ErrNoPendingEnrollment = errors.New("no pending enrollment for this user and course")
	ErrAmountMismatch      = errors.New("charged amount does not match course price")
)

// StartEnrollment upserts a pending enrollment for (userID, courseID). A prior
// pending row for the pair is reset; a paid row is never touched. The
// checkoutRef is the reference handed to the gateway so the reconciliation
// sweep can look the transaction up later. Free courses do not go through
// here, see EnrollFree.
func StartEnrollment(db *gorm.DB, userID, courseID uint, checkoutRef string, metadata datatypes.JSON) error {
	course, err := publishedCourse(db, courseID)
	if err != nil {
		return err
	}
	if course.IsFree || course.Price == 0 {
		return ErrCourseFree
	}

	paid, err := HasPaidAccess(db, userID, courseID)
	if err != nil {
		return err
	}
	if paid {
		return ErrAlreadyPaid
	}

	row := courseModels.Enrollment{
		UserID:            userID,
		CourseID:          courseID,
		PaymentStatus:     courseModels.PaymentPending,
		CheckoutReference: checkoutRef,
		Metadata:          metadata,
	}

	// The conflict update is guarded on payment_status so a concurrent paid
	// transition can never be overwritten back to pending.
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"payment_status":     courseModels.PaymentPending,
			"checkout_reference": checkoutRef,
			"metadata":           metadata,
			"updated_at":         time.Now(),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "enrollments", Name: "payment_status"}, Value: courseModels.PaymentPending},
		}},
	}).Create(&row).Error
}

// EnrollFree records an immediately-paid enrollment for a free course.
func EnrollFree(db *gorm.DB, userID, courseID uint, metadata datatypes.JSON) error {
	course, err := publishedCourse(db, courseID)
	if err != nil {
		return err
	}
	if !course.IsFree && course.Price > 0 {
		return ErrNoPendingEnrollment
	}

	now := time.Now()
	row := courseModels.Enrollment{
		UserID:        userID,
		CourseID:      courseID,
		PaymentStatus: courseModels.PaymentPaid,
		EnrolledAt:    &now,
		Metadata:      metadata,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&row).Error
}

// ConfirmPayment transitions a pending enrollment to paid. The transition is a
// conditional update keyed on payment_status = pending, so two concurrent
// confirmations cannot both apply. Re-confirming an already-paid row with the
// same reference is a no-op success (the gateway retries webhook delivery).
func ConfirmPayment(db *gorm.DB, userID, courseID uint, reference string, amountKobo int64) error {
	course, err := publishedCourse(db, courseID)
	if err != nil {
		return err
	}

	// The course price is authoritative; a webhook amount that disagrees is
	// rejected outright, never corrected.
	if amountKobo != int64(course.Price)*100 {
		return ErrAmountMismatch
	}

	var existing courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoPendingEnrollment
		}
		return err
	}

	if existing.PaymentStatus == courseModels.PaymentPaid {
		if existing.PaymentReference == reference {
			return nil // duplicate delivery
		}
		return ErrNoPendingEnrollment
	}

	res := db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND payment_status = ? AND is_deleted = false",
			userID, courseID, courseModels.PaymentPending).
		Updates(map[string]interface{}{
			"payment_status":    courseModels.PaymentPaid,
			"payment_reference": reference,
			"enrolled_at":       time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race to another delivery; treat a matching paid row as done.
		var row courseModels.Enrollment
		if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false", userID, courseID).
			First(&row).Error; err == nil &&
			row.PaymentStatus == courseModels.PaymentPaid && row.PaymentReference == reference {
			return nil
		}
		return ErrNoPendingEnrollment
	}
	return nil
}

// HasPaidAccess reports whether a paid enrollment exists for the pair.
func HasPaidAccess(db *gorm.DB, userID, courseID uint) (bool, error) {
	var count int64
	err := db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND payment_status = ? AND is_deleted = false",
			userID, courseID, courseModels.PaymentPaid).
		Count(&count).Error
	return count > 0, err
}

func publishedCourse(db *gorm.DB, courseID uint) (*courseModels.Course, error) {
	var course courseModels.Course
	err := db.Where("id = ? AND is_deleted = false AND status = ?", courseID, "PUBLISHED").
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}
