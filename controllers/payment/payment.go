package paymentController

import (
	"encoding/json"
	"log"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services/enrollment"
	"lms/services/paystack"
	"lms/utils"
	paymentValidator "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// InitializeCheckout starts a hosted Paystack checkout for a paid course.
// A pending enrollment is recorded before the gateway is called so the
// webhook has a row to confirm against.
func InitializeCheckout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCheckout").(*paymentValidator.CheckoutRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if config.AppConfig.PaystackSecretKey == "" || config.AppConfig.PaystackPublicKey == "" {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment gateway not configured!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND status = ?", reqData.CourseID, false, "PUBLISHED").
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	if course.IsFree || course.Price == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is free; no payment required!", nil)
	}

	reference := uuid.NewString()
	metadata, _ := json.Marshal(map[string]string{"training_type": course.TrainingType})
	err := enrollment.StartEnrollment(database.Database.Db, userID, course.ID, reference, datatypes.JSON(metadata))
	if err != nil {
		switch err {
		case enrollment.ErrAlreadyPaid:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
		case enrollment.ErrCourseNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
		default:
			log.Printf("Error starting enrollment for user %d course %d: %v", userID, course.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start enrollment!", nil)
		}
	}

	client := paystack.NewClient(config.AppConfig.PaystackSecretKey, config.AppConfig.PaystackBaseURL)
	data, err := client.InitializeTransaction(
		user.Email,
		int64(course.Price)*100,
		reference,
		config.AppConfig.AppURL+"/dashboard/courses",
		paystack.TransactionMetadata{
			UserID:      userID,
			CourseID:    course.ID,
			CourseTitle: course.Title,
		},
	)
	if err != nil {
		log.Printf("Paystack initialize failed for user %d course %d: %v", userID, course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to initialize transaction!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout initialized successfully!", fiber.Map{
		"authorization_url": data.AuthorizationURL,
		"reference":         data.Reference,
	})
}

// PaystackWebhook handles server-to-server payment notifications. The HMAC
// signature check runs before the body is parsed or trusted in any way.
func PaystackWebhook(c *fiber.Ctx) error {
	body := c.Body()
	signature := c.Get("x-paystack-signature")

	if !paystack.VerifySignature(config.AppConfig.PaystackSecretKey, body, signature) {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid signature")
	}

	var event paystack.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Malformed payload"})
	}

	if event.Event != paystack.EventChargeSuccess {
		// Authenticated but not a charge confirmation; acknowledge and ignore.
		return c.JSON(fiber.Map{"received": true})
	}

	meta := event.Data.Metadata
	if meta.UserID == 0 || meta.CourseID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing metadata"})
	}

	err := enrollment.ConfirmPayment(database.Database.Db, meta.UserID, meta.CourseID,
		event.Data.Reference, event.Data.Amount)
	switch err {
	case nil:
		// fall through to receipt + ack
	case enrollment.ErrCourseNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	case enrollment.ErrAmountMismatch:
		log.Printf("Webhook amount mismatch for user %d course %d reference %s",
			meta.UserID, meta.CourseID, event.Data.Reference)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount mismatch"})
	case enrollment.ErrNoPendingEnrollment:
		log.Printf("Webhook with no pending enrollment for user %d course %d", meta.UserID, meta.CourseID)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "No pending enrollment"})
	default:
		log.Printf("Error confirming payment for user %d course %d: %v", meta.UserID, meta.CourseID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to confirm payment"})
	}

	go sendReceipt(meta.UserID, meta.CourseID, event.Data.Reference, event.Data.Amount)

	return c.JSON(fiber.Map{"received": true})
}

func sendReceipt(userID, courseID uint, reference string, amountKobo int64) {
	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		log.Printf("Receipt skipped, user %d not found: %v", userID, err)
		return
	}
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		log.Printf("Receipt skipped, course %d not found: %v", courseID, err)
		return
	}
	if err := utils.SendEnrollmentReceipt(user.Name, user.Email, course.Title, reference, amountKobo); err != nil {
		log.Printf("Error sending receipt to %s: %v", user.Email, err)
	}
}
