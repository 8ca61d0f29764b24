package courseValidator

import (
	"strconv"
	"strings"

	"scl/middleware"

	"github.com/gofiber/fiber/v2"
)

// ModuleRequest is the create/update body for a course module
type ModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  *int   `json:"orderIndex"`
}

// LessonRequest is the create/update body for a lesson
type LessonRequest struct {
	ModuleID   uint   `json:"moduleId"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	OrderIndex *int   `json:"orderIndex"`
}

// TopicRequest is the create/update body for a topic
type TopicRequest struct {
	LessonID   uint   `json:"lessonId"`
	Title      string `json:"title"`
	VideoURL   string `json:"videoUrl"`
	OrderIndex *int   `json:"orderIndex"`
}

// CreateModule validates a module creation body under /course/:id
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c, "id"); err != nil {
			return err
		}

		reqData := new(ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}
		if len(reqData.Title) > 100 {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title must not exceed 100 characters!"})
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates a module update body
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := contentIDParam(c, "moduleId", "moduleID", "Module"); err != nil {
			return err
		}

		reqData := new(ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if len(reqData.Title) > 100 {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title must not exceed 100 characters!"})
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// ModuleID validates the moduleId path parameter
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := contentIDParam(c, "moduleId", "moduleID", "Module"); err != nil {
			return err
		}
		return c.Next()
	}
}

// CreateLesson validates a lesson creation body under /course/:id
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c, "id"); err != nil {
			return err
		}

		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.ModuleID == 0 {
			errors["moduleId"] = "Module ID is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validates a lesson update body
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := contentIDParam(c, "lessonId", "lessonID", "Lesson"); err != nil {
			return err
		}

		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// LessonID validates the lessonId path parameter
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := contentIDParam(c, "lessonId", "lessonID", "Lesson"); err != nil {
			return err
		}
		return c.Next()
	}
}

// CreateTopic validates a topic creation body
func CreateTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TopicRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.LessonID == 0 {
			errors["lessonId"] = "Lesson ID is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTopic", reqData)
		return c.Next()
	}
}

// UpdateTopic validates a topic update body
func UpdateTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := contentIDParam(c, "topicId", "topicID", "Topic"); err != nil {
			return err
		}

		reqData := new(TopicRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedTopic", reqData)
		return c.Next()
	}
}

// TopicID validates the topicId path parameter
func TopicID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := contentIDParam(c, "topicId", "topicID", "Topic"); err != nil {
			return err
		}
		return c.Next()
	}
}

// contentIDParam parses a positive integer path parameter into a local
func contentIDParam(c *fiber.Ctx, param, local, label string) error {
	idStr := strings.TrimSpace(c.Params(param))
	if idStr == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" ID is required!", nil)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+" ID!", nil)
	}

	c.Locals(local, id)
	return nil
}
