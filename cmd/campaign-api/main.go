package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/datadues/campaign-api/db"
	"github.com/datadues/campaign-api/internal/auth"
	"github.com/datadues/campaign-api/internal/config"
	"github.com/datadues/campaign-api/internal/enrollment"
	"github.com/datadues/campaign-api/internal/handlers"
	"github.com/datadues/campaign-api/internal/logger"
	"github.com/datadues/campaign-api/internal/router"
	"github.com/datadues/campaign-api/internal/services"
	"github.com/datadues/campaign-api/internal/store"
	"github.com/datadues/campaign-api/internal/traversal"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	baseLog, err := logger.New(cfg.Mode)

	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer baseLog.Sync()

	if err := auth.InitJWTSecret(); err != nil {
		baseLog.Fatal("failed to initialize JWT secret", "error", err)
	}

	conn, err := db.ConnectDatabase(cfg.DatabaseURL)

	if err != nil {
		baseLog.Fatal("failed to connect to database", "error", err)
	}

	if err := db.MigrateDatabase(conn); err != nil {
		baseLog.Fatal("failed to migrate database", "error", err)
	}

	entityStore := store.New(conn, baseLog)
	engine := traversal.New(entityStore, baseLog)
	coordinator := enrollment.NewCoordinator(entityStore, baseLog)
	tracker := enrollment.NewTracker(entityStore, baseLog)
	notifier := services.NewWebhookNotifier(cfg.WebhookURL, baseLog)

	handler := handlers.New(entityStore, engine, coordinator, tracker, notifier, cfg.AllowedOrigins, baseLog)

	r := router.NewRouter(handler, entityStore, cfg.AllowedOrigins, cfg.DefaultCampaignSlug)

	baseLog.Info("server starting", "port", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		baseLog.Fatal("failed to start server", "error", err)
	}
}
