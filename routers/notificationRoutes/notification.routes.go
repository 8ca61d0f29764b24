package notificationRoutes

import (
	controllers "scl/controllers/notification"
	"scl/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up notification routes
func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notification", middleware.JWTMiddleware)

	notificationGroup.Get("/list", controllers.GetMyNotifications)
	notificationGroup.Put("/read-all", controllers.MarkAllNotificationsRead)
	notificationGroup.Put("/:id/read", controllers.MarkNotificationRead)
}
