package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/blood-disease-chatbot/internal/api"
	"github.com/blood-disease-chatbot/internal/app"
	"github.com/blood-disease-chatbot/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := config.NewLogger(cfg.Logging, os.Stdout)

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	services, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize services")
	}
	defer services.Close()

	services.Health.Start()
	go services.Janitor.Run(ctx)

	server, err := api.NewServer(configManager, api.Dependencies{
		Chat:        services.Chat,
		Predictions: services.Predictions,
		Health:      services.Health,
		Intents:     services.Intents,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create server")
	}

	logger.WithField("port", cfg.Server.Port).Info("Starting blood disease chatbot server")
	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Error("Server failed")
		return
	}

	logger.Info("Server stopped")
}
