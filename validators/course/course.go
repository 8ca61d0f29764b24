package courseValidator

import (
	"regexp"
	"strconv"
	"strings"

	"scl/middleware"

	"github.com/gofiber/fiber/v2"
)

var invalidChars = regexp.MustCompile(`[<>{}]`)

// CourseRequest is the create/update body for a course
type CourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Language    string `json:"language"`
	Duration    string `json:"duration"`
	CoverImage  string `json:"coverImage"`
}

func validateCourseBody(reqData *CourseRequest, requireTitle bool) map[string]string {
	errors := make(map[string]string)

	reqData.Title = strings.TrimSpace(reqData.Title)
	reqData.Description = strings.TrimSpace(reqData.Description)

	if reqData.Title == "" {
		if requireTitle {
			errors["title"] = "Title is required!"
		}
	} else {
		if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if len(reqData.Title) > 100 {
			errors["title"] = "Title must not exceed 100 characters!"
		}
		if invalidChars.MatchString(reqData.Title) {
			errors["title"] = "Title contains invalid characters (e.g., <, >, {, })!"
		}
	}

	if reqData.Description != "" {
		if len(reqData.Description) > 2000 {
			errors["description"] = "Description must not exceed 2000 characters!"
		}
		if invalidChars.MatchString(reqData.Description) {
			errors["description"] = "Description contains invalid characters (e.g., <, >, {, })!"
		}
	}

	switch reqData.Level {
	case "", "Beginner", "Intermediate", "Advanced":
	default:
		errors["level"] = "Level must be Beginner, Intermediate or Advanced!"
	}

	return errors
}

// CreateCourseAdmin validates course creation
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateCourseBody(reqData, true); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates course update (partial body allowed)
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c, "id"); err != nil {
			return err
		}

		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateCourseBody(reqData, false); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// GetCourseDetail validates the course id path parameter
func GetCourseDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c, "id"); err != nil {
			return err
		}
		return c.Next()
	}
}

// CourseList validates listing query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		page := 1
		limit := 20
		if reqData.Page != nil && *reqData.Page > 0 {
			page = *reqData.Page
		}
		if reqData.Limit != nil && *reqData.Limit > 0 && *reqData.Limit <= 100 {
			limit = *reqData.Limit
		}

		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}

// courseIDParam parses a positive integer path parameter into courseID
func courseIDParam(c *fiber.Ctx, name string) error {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
	}

	c.Locals("courseID", id)
	return nil
}
