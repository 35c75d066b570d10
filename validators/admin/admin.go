package adminValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CourseRequest is the admin create/update course payload
type CourseRequest struct {
	Title        string `json:"title" validate:"required,min=3"`
	Description  string `json:"description" validate:"required,min=10"`
	Author       string `json:"author"`
	Price        uint   `json:"price" validate:"gte=0"`
	IsFree       bool   `json:"is_free"`
	Duration     int64  `json:"duration" validate:"gte=0"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url"`
	TrainingType string `json:"training_type" validate:"omitempty,oneof=SELF_PACED COHORT"`
}

// ModuleRequest is the admin create/update module payload
type ModuleRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" validate:"gte=0"`
}

// LessonRequest is the admin create/update lesson payload
type LessonRequest struct {
	Title           string `json:"title" validate:"required,min=3"`
	FullDescription string `json:"full_description"`
	VideoURL        string `json:"video_url" validate:"omitempty,url"`
	PdfURL          string `json:"pdf_url" validate:"omitempty,url"`
	SortOrder       int    `json:"sort_order" validate:"gte=0"`
}

// AssessmentRequest is the admin create/update assessment payload
type AssessmentRequest struct {
	Title           string `json:"title" validate:"required,min=3"`
	FullDescription string `json:"full_description"`
	AssessmentType  string `json:"assessment_type" validate:"omitempty,oneof=QUIZ PROJECT EXAM"`
	TotalPoints     int    `json:"total_points" validate:"gte=0"`
	PdfURL          string `json:"pdf_url" validate:"omitempty,url"`
	SortOrder       int    `json:"sort_order" validate:"gte=0"`
}

// ApprovalRequest is the admin user-approval payload
type ApprovalRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

func bodyValidator[T any](local string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					errors[fe.Field()] = "Failed validation: " + fe.Tag()
				}
			} else {
				errors["request"] = "Invalid request data!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(local, reqData)
		return c.Next()
	}
}

func Course() fiber.Handler     { return bodyValidator[CourseRequest]("validatedCourse") }
func Module() fiber.Handler     { return bodyValidator[ModuleRequest]("validatedModule") }
func Lesson() fiber.Handler     { return bodyValidator[LessonRequest]("validatedLesson") }
func Assessment() fiber.Handler { return bodyValidator[AssessmentRequest]("validatedAssessment") }
func Approval() fiber.Handler   { return bodyValidator[ApprovalRequest]("validatedApproval") }
