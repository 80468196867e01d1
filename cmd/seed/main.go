package main

import (
	"context"
	"log"

	"github.com/gdg-garage/garage-arena-api/internal/config"
	"github.com/gdg-garage/garage-arena-api/internal/database"
	"github.com/gdg-garage/garage-arena-api/internal/logging"
	"github.com/gdg-garage/garage-arena-api/internal/seed"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := seed.Run(context.Background(), db, logger); err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}
	logger.Info("database seeding completed",
		zap.String("user", "testuser / testpass123"),
		zap.String("admin", "admin / admin123"),
		zap.String("host", "host / host123"),
	)
}
