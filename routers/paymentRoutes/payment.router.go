package paymentRoutes

import (
	paymentControllers "lms/controllers/payment"
	"lms/middleware"
	paymentValidators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	// Checkout requires an authenticated session
	paymentGroup.Post("/checkout", middleware.JWTMiddleware, paymentValidators.Checkout(), paymentControllers.InitializeCheckout)

	// Webhook is server-to-server; authenticated by signature, not session
	paymentGroup.Post("/webhook", paymentControllers.PaystackWebhook)
}
