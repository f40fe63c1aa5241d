package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"country-table-service/internal/config"
	"country-table-service/internal/handler"
	"country-table-service/internal/service"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddress,
		Password: config.AppConfig.RedisPassword,
	})

	// Verify Redis connection
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize services
	countryImporter := service.NewCountryImporter(redisClient, config.AppConfig.CountriesAPIURL)
	countryQuery := service.NewCountryQuery(redisClient)

	// Initialize handlers
	importHandler := handler.NewImportHandler(countryImporter)
	countryHandler := handler.NewCountryHandler(countryQuery)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:      handler.ErrorHandler,
		BodyLimit:         0,               // No limit
		ReadBufferSize:    1024 * 1024 * 4, // 4MB buffer
		WriteBufferSize:   1024 * 1024 * 4, // 4MB buffer
		StreamRequestBody: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Setup routes
	setupRoutes(app, importHandler, countryHandler)

	// Graceful shutdown channel
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
			log.Fatal("Server error:", err)
		}
	}()

	log.Printf("Server started on port %s", config.AppConfig.ServerPort)

	// Wait for interrupt signal
	<-shutdownChan
	log.Println("Shutting down server...")

	// Cleanup and shutdown
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server shutdown error:", err)
	}
}

func setupRoutes(app *fiber.App, importHandler *handler.ImportHandler, countryHandler *handler.CountryHandler) {
	api := app.Group("/api/v1")

	// Import routes
	importRoutes := api.Group("/import")
	importRoutes.Post("/file", importHandler.ImportFile)
	importRoutes.Post("/refresh", importHandler.Refresh)
	importRoutes.Get("/status", importHandler.GetStatus)
	importRoutes.Delete("/clear", importHandler.ClearDatabase)

	// Country routes
	countryRoutes := api.Group("/countries")
	countryRoutes.Get("/", countryHandler.GetCountries)
	countryRoutes.Get("/suggestions", countryHandler.GetSuggestions)
	countryRoutes.Get("/stats", countryHandler.GetStats)
}

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
