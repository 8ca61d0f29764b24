package main

import (
	"log"

	"scl/config"
	"scl/database"
	batchRoutes "scl/routers/batchRoutes"
	courseRoutes "scl/routers/courseRoutes"
	notificationRoutes "scl/routers/notificationRoutes"
	progressRoutes "scl/routers/progressRoutes"
	"scl/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve generated certificates from the public folder
	app.Static("/certificates", "./public/certificates")

	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	batchRoutes.SetupBatchRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	// Daily sweep deactivating batches past the retention window
	utils.InitializeBatchScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
