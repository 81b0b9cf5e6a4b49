// Package main provides the stdio MCP entry point for the chatbot. It needs no
// external services: sessions and predictions live in memory and feedback is
// stored in SQLite under the data directory.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/blood-disease-chatbot/internal/app"
	"github.com/blood-disease-chatbot/internal/config"
	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/engine"
	"github.com/blood-disease-chatbot/internal/mcp"
	"github.com/blood-disease-chatbot/internal/setup"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.NewCLI(os.Stdout).Run(os.Args[2:]); err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		return
	}

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg := config.LoadLiteConfig()
	if err := cfg.EnsureDataDir(); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// stdout carries the protocol, so logs go to stderr.
	logger := config.NewLogger(cfg.Logging(), os.Stderr)
	logger.WithField("data_dir", cfg.DataDir).Info("Starting blood disease chatbot MCP server")

	weights := engine.DefaultWeights()
	scoring := domain.ScoringConfig{
		KeywordWeight:      weights.Keyword,
		TopicWeight:        weights.Topic,
		QuestionTypeWeight: weights.QuestionType,
		Threshold:          weights.Threshold,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	services, err := app.Build(ctx, &domain.Config{
		Cache:       domain.CacheConfig{Enabled: true, MaxItems: cfg.CacheMaxItems, TTL: cfg.CacheTTL},
		Session:     domain.SessionConfig{Backend: "memory", MaxSessions: cfg.MaxSessions, MaxIdle: cfg.MaxIdle, EvictInterval: cfg.MaxIdle / 2},
		Predictions: domain.PredictionsConfig{Backend: "memory", Seed: true},
		Feedback:    domain.FeedbackConfig{Backend: "sqlite", SQLitePath: cfg.FeedbackDBPath()},
		Scoring:     scoring,
		Chatbot:     domain.ChatbotConfig{LegacyFallback: true, RandomSeed: cfg.RandomSeed},
		Logging:     cfg.Logging(),
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize services")
	}
	defer services.Close()

	go services.Janitor.Run(ctx)

	server, err := mcp.NewServer(domain.MCPConfig{}, services.Chat, services.Intents, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create MCP server")
	}

	if err := server.Run(ctx); err != nil {
		logger.WithError(err).Error("MCP server failed")
		return
	}
	logger.Info("Blood disease chatbot MCP server stopped")
}
