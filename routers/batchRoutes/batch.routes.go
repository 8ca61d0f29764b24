package batchRoutes

import (
	controllers "scl/controllers/batch"
	"scl/middleware"
	validators "scl/validators/batch"

	"github.com/gofiber/fiber/v2"
)

// SetupBatchRoutes sets up batch management routes (admin only)
func SetupBatchRoutes(app *fiber.App) {
	batchGroup := app.Group("/admin/batch", middleware.JWTMiddleware, middleware.RequireAdmin)

	batchGroup.Post("/create", validators.CreateBatch(), controllers.CreateBatch)
	batchGroup.Get("/list", controllers.GetAllBatches)
	batchGroup.Get("/stats", controllers.GetBatchStats)
	batchGroup.Get("/date-range", validators.DateRange(), controllers.GetBatchesByDateRange)
	batchGroup.Post("/certificates", validators.BatchCertificates(), controllers.SendBatchCertificates)

	batchGroup.Get("/:id", validators.BatchID(), controllers.GetBatch)
	batchGroup.Put("/:id", validators.BatchID(), validators.UpdateBatch(), controllers.UpdateBatch)
	batchGroup.Delete("/:id", validators.BatchID(), controllers.DeleteBatch)

	batchGroup.Get("/:id/available-users", validators.BatchID(), controllers.GetAvailableUsersForBatch)
	batchGroup.Get("/:id/breakdown", validators.BatchID(), controllers.GetBatchUserBreakdown)

	batchGroup.Post("/:id/quiz", validators.BatchID(), validators.AssignQuiz(), controllers.AssignQuizToBatch)
	batchGroup.Post("/:id/event", validators.BatchID(), validators.AssignEvent(), controllers.AssignEventToBatch)
}
