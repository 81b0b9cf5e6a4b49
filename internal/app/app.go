// Package app assembles the chatbot services from configuration.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/cache"
	"github.com/blood-disease-chatbot/internal/chatbot"
	"github.com/blood-disease-chatbot/internal/classifier"
	"github.com/blood-disease-chatbot/internal/database"
	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/engine"
	"github.com/blood-disease-chatbot/internal/feedback"
	"github.com/blood-disease-chatbot/internal/health"
	"github.com/blood-disease-chatbot/internal/knowledge"
	"github.com/blood-disease-chatbot/internal/prediction"
	"github.com/blood-disease-chatbot/internal/session"
)

// App holds the wired services and the resources they own.
type App struct {
	Chat        *chatbot.Service
	Sessions    domain.SessionStore
	Predictions domain.PredictionStore
	Feedback    feedback.Store
	Cache       *cache.AnswerCache
	DB          *database.DB
	Health      *health.Checker
	Intents     *classifier.Classifier
	Janitor     *session.Janitor

	logger  *logrus.Logger
	closers []func() error
}

// Build connects every backend named in cfg. On error, resources opened so
// far are released.
func Build(ctx context.Context, cfg *domain.Config, logger *logrus.Logger) (_ *App, err error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	a := &App{logger: logger, Intents: classifier.NewIntentClassifier()}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if a.needsDatabase(cfg) {
		if err := a.openDatabase(ctx, cfg.Database); err != nil {
			return nil, err
		}
	}
	if err := a.openSessions(ctx, cfg.Session); err != nil {
		return nil, err
	}
	if err := a.openPredictions(ctx, cfg.Predictions); err != nil {
		return nil, err
	}
	if err := a.openFeedback(cfg); err != nil {
		return nil, err
	}
	if err := a.openCache(ctx, cfg.Cache); err != nil {
		return nil, err
	}

	base, err := knowledge.NewBase()
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	eng, err := engine.New(base,
		engine.WithWeights(engine.WeightsFromConfig(cfg.Scoring)),
		engine.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	opts := []chatbot.Option{
		chatbot.WithLogger(logger),
		chatbot.WithChooser(chatbot.NewSeededChooser(cfg.Chatbot.RandomSeed)),
		chatbot.WithPredictions(a.Predictions),
		chatbot.WithLegacyFallback(cfg.Chatbot.LegacyFallback),
	}
	if a.Cache != nil {
		opts = append(opts, chatbot.WithAnswerCache(a.Cache))
	}
	if a.Feedback != nil {
		opts = append(opts, chatbot.WithFeedbackStore(a.Feedback))
	}
	a.Chat, err = chatbot.NewService(a.Sessions, eng, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}

	a.Janitor = session.NewJanitor(a.Sessions, cfg.Session.MaxIdle, cfg.Session.EvictInterval, logger)
	a.Health = a.buildHealth()

	logger.WithFields(logrus.Fields{
		"session_backend":    cfg.Session.Backend,
		"predictions":        cfg.Predictions.Backend,
		"feedback":           cfg.Feedback.Backend,
		"cache_enabled":      cfg.Cache.Enabled,
		"legacy_fallback":    cfg.Chatbot.LegacyFallback,
		"knowledge_diseases": len(base.Diseases()),
	}).Info("Chatbot services initialized")
	return a, nil
}

func (a *App) needsDatabase(cfg *domain.Config) bool {
	return cfg.Predictions.Backend == "postgres" || cfg.Feedback.Backend == "postgres"
}

func (a *App) openDatabase(ctx context.Context, cfg domain.DatabaseConfig) error {
	if cfg.RunMigrations {
		runner, err := database.NewMigrationRunner(cfg.URL(), a.logger)
		if err != nil {
			return fmt.Errorf("failed to prepare migrations: %w", err)
		}
		err = runner.Up(ctx)
		if cerr := runner.Close(); cerr != nil {
			a.logger.WithError(cerr).Warn("Failed to close migration runner")
		}
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db, err := database.NewConnection(ctx, database.ConfigFromDomain(cfg), a.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, func() error {
		db.Close()
		return nil
	})
	return nil
}

func (a *App) openSessions(ctx context.Context, cfg domain.SessionConfig) error {
	switch cfg.Backend {
	case "redis":
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		a.Sessions = session.NewRedisStore(client, cfg.KeyPrefix, cfg.MaxIdle, a.logger)
	default:
		store, err := session.NewMemoryStore(cfg.MaxSessions, cfg.MaxIdle)
		if err != nil {
			return fmt.Errorf("failed to create session store: %w", err)
		}
		a.Sessions = store
	}
	a.closers = append(a.closers, a.Sessions.Close)
	return nil
}

func (a *App) openPredictions(ctx context.Context, cfg domain.PredictionsConfig) error {
	switch cfg.Backend {
	case "postgres":
		store := prediction.NewPostgresStore(a.DB.Pool, a.logger)
		if cfg.Seed {
			n, err := store.Seed(ctx, prediction.DefaultPredictions(time.Now()))
			if err != nil {
				return fmt.Errorf("failed to seed predictions: %w", err)
			}
			a.logger.WithField("inserted", n).Info("Seeded prediction history")
		}
		a.Predictions = prediction.NewBreakerStore(store, prediction.DefaultBreakerSettings(), a.logger)
	default:
		if cfg.Seed {
			a.Predictions = prediction.NewSeededMemoryStore(time.Now())
		} else {
			a.Predictions = prediction.NewMemoryStore()
		}
	}
	return nil
}

func (a *App) openFeedback(cfg *domain.Config) error {
	var (
		store feedback.Store
		err   error
	)
	switch cfg.Feedback.Backend {
	case "none":
		return nil
	case "postgres":
		store, err = feedback.NewPostgresStoreFromURL(cfg.Database.URL())
	default:
		if err = os.MkdirAll(filepath.Dir(cfg.Feedback.SQLitePath), 0755); err == nil {
			store, err = feedback.NewSQLiteStore(cfg.Feedback.SQLitePath)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to open feedback store: %w", err)
	}
	a.Feedback = store
	a.closers = append(a.closers, store.Close)
	return nil
}

func (a *App) openCache(ctx context.Context, cfg domain.CacheConfig) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []cache.Option{cache.WithLogger(a.logger)}
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL, cfg.PoolSize, cfg.MaxRetries, cfg.PoolTimeout)
		if err != nil {
			return err
		}
		opts = append(opts, cache.WithRedis(client))
	}

	c, err := cache.New(cache.Config{MaxItems: cfg.MaxItems, TTL: cfg.TTL}, opts...)
	if err != nil {
		return fmt.Errorf("failed to create answer cache: %w", err)
	}
	a.Cache = c
	a.closers = append(a.closers, c.Close)
	return nil
}

func (a *App) buildHealth() *health.Checker {
	checker := health.NewChecker(health.Config{DetailedResponse: true}, a.logger)
	checker.Register(health.SessionCheck(a.Sessions))
	checker.Register(health.PredictionCheck(a.Predictions))
	if a.Cache != nil {
		checker.Register(health.CacheCheck(a.Cache))
	}
	if a.Feedback != nil {
		checker.Register(health.FeedbackCheck(a.Feedback))
	}
	if a.DB != nil {
		checker.Register(health.DatabaseCheck(a.DB))
	}
	return checker
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	if a.Health != nil {
		a.Health.Stop()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.WithError(err).Warn("Failed to close resource")
		}
	}
	a.closers = nil
}
