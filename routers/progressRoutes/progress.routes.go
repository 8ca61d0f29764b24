package progressRoutes

import (
	controllers "scl/controllers/progress"
	"scl/middleware"
	courseValidators "scl/validators/course"
	validators "scl/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up progress tracking and completion routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/progress", middleware.JWTMiddleware)

	// Learner-facing
	progressGroup.Post("/update", validators.UpdateProgress(), controllers.UpdateProgress)
	progressGroup.Get("/summary", controllers.GetAllUserProgress)
	progressGroup.Get("/:courseId", validators.GetProgress(), controllers.GetUserProgress)

	// Administrative
	adminGroup := app.Group("/admin/progress", middleware.JWTMiddleware, middleware.RequireAdmin)
	adminGroup.Get("/stats", controllers.GetProgressStats)
	adminGroup.Get("/course/:id", courseValidators.GetCourseDetail(), controllers.GetCourseProgressSummary)
	adminGroup.Post("/complete", validators.CompleteCourse(), controllers.CompleteCourse)
	adminGroup.Post("/complete/bulk", validators.CompleteBulk(), controllers.CompleteCoursesBulk)
}
