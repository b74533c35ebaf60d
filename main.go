package main

import (
	"log"

	"academy/config"
	"academy/database"
	dataRoutes "academy/routers/dataRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization",  // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	dataRoutes.SetupDataRoutes(app)

	// Periodic cache flush to the local backend
	database.StartSnapshotScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
