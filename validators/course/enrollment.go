package courseValidator

import (
	"github.com/gofiber/fiber/v2"
)

// EnrollCourse validates the course id path parameter for enrollment
func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c, "id"); err != nil {
			return err
		}
		return c.Next()
	}
}
