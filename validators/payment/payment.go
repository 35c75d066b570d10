package paymentValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CheckoutRequest is the checkout-initialize payload
type CheckoutRequest struct {
	CourseID uint `json:"courseId"`
}

// Checkout validator middleware
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CheckoutRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "courseId is required!", nil)
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}
