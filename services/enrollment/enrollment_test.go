package enrollment

import (
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
		&courseModels.Course{},
		&courseModels.Enrollment{},
	))
	return db
}

func createCourse(t *testing.T, db *gorm.DB, price uint, free bool) *courseModels.Course {
	t.Helper()
	course := courseModels.Course{
		Title:  "Forex Fundamentals",
		Price:  price,
		IsFree: free,
		Status: "PUBLISHED",
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func TestStartEnrollment(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 50000, false)

	err := StartEnrollment(db, 1, course.ID, "ref-1", nil)
	require.NoError(t, err)

	var row courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&row).Error)
	assert.Equal(t, courseModels.PaymentPending, row.PaymentStatus)
	assert.Equal(t, "ref-1", row.CheckoutReference)
	assert.Nil(t, row.EnrolledAt)

	// Re-initiating checkout reuses the same row
	require.NoError(t, StartEnrollment(db, 1, course.ID, "ref-2", nil))

	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ?", 1, course.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&row).Error)
	assert.Equal(t, "ref-2", row.CheckoutReference)
}

func TestStartEnrollmentFreeCourse(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 0, true)

	err := StartEnrollment(db, 1, course.ID, "ref-1", nil)
	assert.ErrorIs(t, err, ErrCourseFree)
}

func TestStartEnrollmentUnpublishedCourse(t *testing.T) {
	db := setupTestDB(t)
	course := courseModels.Course{Title: "Draft", Price: 10000, Status: "DRAFT"}
	require.NoError(t, db.Create(&course).Error)

	err := StartEnrollment(db, 1, course.ID, "ref-1", nil)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestConfirmPayment(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 50000, false)
	require.NoError(t, StartEnrollment(db, 7, course.ID, "ref-7", nil))

	err := ConfirmPayment(db, 7, course.ID, "PSK_abc123", 5000000)
	require.NoError(t, err)

	var row courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 7, course.ID).First(&row).Error)
	assert.Equal(t, courseModels.PaymentPaid, row.PaymentStatus)
	assert.Equal(t, "PSK_abc123", row.PaymentReference)
	require.NotNil(t, row.EnrolledAt)

	paid, err := HasPaidAccess(db, 7, course.ID)
	require.NoError(t, err)
	assert.True(t, paid)
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 50000, false)
	require.NoError(t, StartEnrollment(db, 7, course.ID, "ref-7", nil))
	require.NoError(t, ConfirmPayment(db, 7, course.ID, "PSK_abc123", 5000000))

	var before courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 7, course.ID).First(&before).Error)

	// Duplicate webhook delivery with identical arguments is a no-op success
	require.NoError(t, ConfirmPayment(db, 7, course.ID, "PSK_abc123", 5000000))

	var after courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 7, course.ID).First(&after).Error)
	assert.Equal(t, before.PaymentStatus, after.PaymentStatus)
	assert.Equal(t, before.PaymentReference, after.PaymentReference)
	assert.Equal(t, before.EnrolledAt.Unix(), after.EnrolledAt.Unix())
}

func TestConfirmPaymentDifferentReferenceAfterPaid(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 50000, false)
	require.NoError(t, StartEnrollment(db, 7, course.ID, "ref-7", nil))
	require.NoError(t, ConfirmPayment(db, 7, course.ID, "PSK_abc123", 5000000))

	err := ConfirmPayment(db, 7, course.ID, "PSK_other", 5000000)
	assert.ErrorIs(t, err, ErrNoPendingEnrollment)
}

func TestConfirmPaymentAmountMismatch(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 50000, false)
	require.NoError(t, StartEnrollment(db, 3, course.ID, "ref-3", nil))

	err := ConfirmPayment(db, 3, course.ID, "PSK_bad", 100)
	assert.ErrorIs(t, err, ErrAmountMismatch)

	// No mutation happened
	var row courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 3, course.ID).First(&row).Error)
	assert.Equal(t, courseModels.PaymentPending, row.PaymentStatus)
	assert.Empty(t, row.PaymentReference)
	assert.Nil(t, row.EnrolledAt)
}

func TestConfirmPaymentNoPendingEnrollment(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 50000, false)

	err := ConfirmPayment(db, 9, course.ID, "PSK_orphan", 5000000)
	assert.ErrorIs(t, err, ErrNoPendingEnrollment)

	// No paid row was silently created
	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ?", 9).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestStartEnrollmentAlreadyPaid(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 50000, false)
	require.NoError(t, StartEnrollment(db, 5, course.ID, "ref-5", nil))
	require.NoError(t, ConfirmPayment(db, 5, course.ID, "PSK_paid", 5000000))

	err := StartEnrollment(db, 5, course.ID, "ref-again", nil)
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	// The paid row is untouched
	var row courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 5, course.ID).First(&row).Error)
	assert.Equal(t, courseModels.PaymentPaid, row.PaymentStatus)
	assert.Equal(t, "PSK_paid", row.PaymentReference)
}

func TestEnrollFree(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 0, true)

	require.NoError(t, EnrollFree(db, 2, course.ID, nil))

	var row courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 2, course.ID).First(&row).Error)
	assert.Equal(t, courseModels.PaymentPaid, row.PaymentStatus)
	require.NotNil(t, row.EnrolledAt)

	paid, err := HasPaidAccess(db, 2, course.ID)
	require.NoError(t, err)
	assert.True(t, paid)

	// Enrolling twice is harmless
	require.NoError(t, EnrollFree(db, 2, course.ID, nil))
	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ?", 2, course.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestHasPaidAccessPending(t *testing.T) {
	db := setupTestDB(t)
	course := createCourse(t, db, 50000, false)
	require.NoError(t, StartEnrollment(db, 4, course.ID, "ref-4", nil))

	paid, err := HasPaidAccess(db, 4, course.ID)
	require.NoError(t, err)
	assert.False(t, paid)
}
