package progressValidator

import (
	"strconv"
	"strings"

	"scl/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ProgressUpdateRequest is one completion event. The user comes from the
// token, everything else from the body.
type ProgressUpdateRequest struct {
	CourseID  uint   `json:"courseId" validate:"required"`
	ModuleID  uint   `json:"moduleId" validate:"required"`
	LessonID  uint   `json:"lessonId" validate:"required"`
	TopicID   uint   `json:"topicId" validate:"required"`
	QuizScore *int   `json:"quizScore" validate:"omitempty,min=0,max=100"`
	Feedback  string `json:"feedback" validate:"omitempty,max=1000"`
}

// CompleteCourseRequest marks one user's course as completed (admin)
type CompleteCourseRequest struct {
	UserID   uint `json:"userId" validate:"required"`
	CourseID uint `json:"courseId" validate:"required"`
}

// CompleteBulkRequest marks many (user, course) pairs as completed
type CompleteBulkRequest struct {
	Users []CompleteCourseRequest `json:"users" validate:"required,min=1,dive"`
}

// fieldErrors maps validator tags to user-facing messages
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
			switch fe.Tag() {
			case "required":
				errors[field] = field + " is required!"
			case "min":
				errors[field] = field + " is below the allowed minimum!"
			case "max":
				errors[field] = field + " exceeds the allowed maximum!"
			default:
				errors[field] = field + " is invalid!"
			}
		}
	}
	if len(errors) == 0 {
		errors["body"] = "Invalid request body!"
	}
	return errors
}

// UpdateProgress validates a completion event body
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressUpdateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedProgressUpdate", reqData)
		return c.Next()
	}
}

// GetProgress validates the courseId path parameter
func GetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("courseId"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CompleteCourse validates an administrative single completion
func CompleteCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CompleteCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCompleteCourse", reqData)
		return c.Next()
	}
}

// CompleteBulk validates an administrative bulk completion
func CompleteBulk() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CompleteBulkRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCompleteBulk", reqData)
		return c.Next()
	}
}
