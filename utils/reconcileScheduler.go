package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"lms/services/enrollment"
	"lms/services/paystack"

	"github.com/robfig/cron/v3"
)

// InitializeReconcileScheduler starts the pending-enrollment reconciliation
// sweep. Webhook delivery can be lost; the sweep asks the gateway for the
// final state of stale pending enrollments and applies confirmed charges
// through the same ConfirmPayment path the webhook uses.
func InitializeReconcileScheduler() {
	log.Println("[RECONCILE-SCHEDULER] Initializing payment reconciliation scheduler...")

	c := cron.New()

	c.AddFunc("@hourly", func() {
		log.Println("[RECONCILE-SCHEDULER] Running pending enrollment sweep...")
		ReconcilePendingEnrollments()
	})

	c.Start()
	log.Println("[RECONCILE-SCHEDULER] Payment reconciliation scheduler started - runs hourly")
}

// ReconcilePendingEnrollments verifies stale pending enrollments against the
// payment gateway
func ReconcilePendingEnrollments() {
	if config.AppConfig.PaystackSecretKey == "" {
		log.Println("[RECONCILE-SCHEDULER] Paystack not configured; skipping sweep")
		return
	}

	db := database.Database.Db
	cutoff := time.Now().Add(-time.Hour)

	// Pending rows older than an hour with a reference on the gateway side
	var pending []courseModels.Enrollment
	if err := db.
		Where("payment_status = ? AND is_deleted = false AND updated_at < ?", courseModels.PaymentPending, cutoff).
		Limit(100).
		Find(&pending).Error; err != nil {
		log.Printf("[RECONCILE-SCHEDULER] Error fetching pending enrollments: %v", err)
		return
	}

	if len(pending) == 0 {
		return
	}
	log.Printf("[RECONCILE-SCHEDULER] Checking %d stale pending enrollments", len(pending))

	client := paystack.NewClient(config.AppConfig.PaystackSecretKey, config.AppConfig.PaystackBaseURL)

	for _, row := range pending {
		// Rows without a checkout reference never reached the gateway.
		if row.CheckoutReference == "" {
			continue
		}

		data, err := client.VerifyTransaction(row.CheckoutReference)
		if err != nil {
			log.Printf("[RECONCILE-SCHEDULER] Verify failed for enrollment %d: %v", row.ID, err)
			continue
		}
		if data.Status != "success" {
			continue
		}

		err = enrollment.ConfirmPayment(db, row.UserID, row.CourseID, data.Reference, data.Amount)
		if err != nil {
			log.Printf("[RECONCILE-SCHEDULER] Confirm failed for enrollment %d: %v", row.ID, err)
			continue
		}
		log.Printf("[RECONCILE-SCHEDULER] Reconciled enrollment %d (user %d, course %d)", row.ID, row.UserID, row.CourseID)
	}
}
