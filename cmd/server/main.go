package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"clubhub-backend/internal/adapters/http/middleware"
	"clubhub-backend/internal/adapters/http/routes"
	"clubhub-backend/internal/adapters/persistence/models"
	"clubhub-backend/internal/config"
	"clubhub-backend/internal/core/services"
	"clubhub-backend/internal/pkg/mail"

	"github.com/gofiber/fiber/v2"
)

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

	// Seed tags and the pre-verified email allow-list
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Mail sender
	sender, err := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	})
	if err != nil {
		log.Fatalf("❌ Failed to configure mail sender: %v", err)
	}

	// Repositories and services
	deps := routes.BuildDeps(db, sender, cfg)

	// Train the recommender once up front so the read path has a model
	// before the first scheduled retrain
	if err := deps.Recommender.Train(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Initial recommender training failed: %v", err)
	}

	// Background jobs: club status recompute + recommender retrain
	cronService := services.NewCronService(deps.ClubRepo, deps.TokenRepo, deps.Recommender)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "clubhub backend",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, deps, cfg)

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
