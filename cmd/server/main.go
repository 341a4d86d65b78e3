package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"asperda-backend/internal/adapters/http/middleware"
	"asperda-backend/internal/adapters/http/routes"
	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/config"
	"asperda-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title ASPERDA API
// @version 1.0
// @description Multi-tenant management API for the Indonesian car rental association (ASPERDA)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@asperda.or.id

// @host api.asperda.or.id
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed regions and the platform admin account
	if err := config.SeedData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ASPERDA API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	blacklistService, refreshTokenRepo := routes.Setup(app, db, cfg)

	// Start cron service: blacklist approval reconciliation + token cleanup
	cronService := services.NewCronService(blacklistService, refreshTokenRepo.DeleteExpired)
	cronService.Start()
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
