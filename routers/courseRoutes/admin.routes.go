package courseRoutes

import (
	controllers "scl/controllers/course"
	"scl/middleware"
	validators "scl/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up course and content management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireAdmin)

	// Course lifecycle
	adminGroup.Post("/create", validators.CreateCourseAdmin(), controllers.CreateCourse)
	adminGroup.Get("/list", validators.CourseList(), controllers.GetAdminCourseList)
	adminGroup.Put("/:id", validators.UpdateCourseAdmin(), controllers.UpdateCourse)
	adminGroup.Post("/:id/publish", validators.GetCourseDetail(), controllers.PublishCourse)
	adminGroup.Delete("/:id", validators.GetCourseDetail(), controllers.DeleteCourse)

	// Content tree: modules, lessons, topics
	adminGroup.Post("/:id/module", validators.CreateModule(), controllers.AddModule)
	adminGroup.Put("/module/:moduleId", validators.UpdateModule(), controllers.UpdateModule)
	adminGroup.Delete("/module/:moduleId", validators.ModuleID(), controllers.DeleteModule)

	adminGroup.Post("/:id/lesson", validators.CreateLesson(), controllers.AddLesson)
	adminGroup.Put("/lesson/:lessonId", validators.UpdateLesson(), controllers.UpdateLesson)
	adminGroup.Delete("/lesson/:lessonId", validators.LessonID(), controllers.DeleteLesson)

	adminGroup.Post("/topic", validators.CreateTopic(), controllers.AddTopic)
	adminGroup.Put("/topic/:topicId", validators.UpdateTopic(), controllers.UpdateTopic)
	adminGroup.Delete("/topic/:topicId", validators.TopicID(), controllers.DeleteTopic)
}
