package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gdg-garage/garage-arena-api/internal/accounts"
	"github.com/gdg-garage/garage-arena-api/internal/auth"
	"github.com/gdg-garage/garage-arena-api/internal/config"
	"github.com/gdg-garage/garage-arena-api/internal/database"
	"github.com/gdg-garage/garage-arena-api/internal/games"
	"github.com/gdg-garage/garage-arena-api/internal/handlers"
	"github.com/gdg-garage/garage-arena-api/internal/ledger"
	"github.com/gdg-garage/garage-arena-api/internal/logging"
	"github.com/gdg-garage/garage-arena-api/internal/rewards"
	"github.com/gdg-garage/garage-arena-api/internal/seed"
	"github.com/gdg-garage/garage-arena-api/internal/tournaments"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Connect to Database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.SeedOnStart {
		if err := seed.Run(context.Background(), db, logger); err != nil {
			logger.Fatal("failed to seed database", zap.Error(err))
		}
	}

	// Initialize Handlers
	accts := accounts.NewService(db)
	authHandler := auth.NewAuthHandler(cfg, accts)
	h := handlers.Handlers{
		Auth:        authHandler,
		Tournaments: handlers.NewTournamentHandler(tournaments.NewService(db), authHandler),
		Rewards:     handlers.NewRewardHandler(rewards.NewService(db), authHandler),
		Games:       handlers.NewGameHandler(games.NewService(db), authHandler),
		Dashboard:   handlers.NewDashboardHandler(ledger.NewReader(db), authHandler),
		Users:       handlers.NewUserHandler(accts, authHandler),
	}

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, logger, h)

	// Start Server
	logger.Info("starting server", zap.String("port", cfg.Port), zap.String("database", cfg.DatabaseDriver))
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
