package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/chatbot"
	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/health"
	"github.com/blood-disease-chatbot/internal/middleware"
	"github.com/blood-disease-chatbot/internal/training"
)

// Dependencies are the services the HTTP handlers call.
type Dependencies struct {
	Chat        *chatbot.Service
	Predictions domain.PredictionStore
	Health      *health.Checker
	Intents     training.IntentClassifier
}

// Server represents the HTTP server
type Server struct {
	configManager domain.ConfigManager
	deps          Dependencies
	router        *gin.Engine
	handler       http.Handler
	server        *http.Server
	upgrader      websocket.Upgrader
	logger        *logrus.Logger
	now           func() time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(configManager domain.ConfigManager, deps Dependencies, logger *logrus.Logger) (*Server, error) {
	if deps.Chat == nil {
		return nil, errors.New("chat service is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	cfg := configManager.GetConfig()

	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter: %w", err)
		}
		router.Use(limiter.Middleware())
	}

	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		configManager: configManager,
		deps:          deps,
		router:        router,
		logger:        logger,
		now:           time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
	}
	s.setupRoutes(cfg.Server.RequestTimeout)

	s.handler = cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Correlation-ID"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: false,
	}).Handler(router)

	return s, nil
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

// Handler returns the CORS-wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes(timeout time.Duration) {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")

	// The stream is long-lived and stays outside the request timeout.
	v1.GET("/sessions/:id/stream", s.handleStream)

	api := v1.Group("")
	if timeout > 0 {
		api.Use(middleware.RequestTimeout(timeout))
	}
	{
		api.POST("/sessions", s.handleCreateSession)
		api.GET("/sessions/:id/messages", s.handleGetMessages)
		api.POST("/sessions/:id/messages", s.handlePostMessage)
		api.POST("/sessions/:id/messages/:message_id/feedback", s.handleFeedback)

		api.POST("/ask", s.handleAsk)

		api.GET("/knowledge/diseases", s.handleListDiseases)
		api.GET("/knowledge/diseases/:name", s.handleGetDisease)

		api.GET("/predictions/recent", s.handleRecentPredictions)
		api.GET("/predictions/stats", s.handlePredictionStats)

		api.GET("/training/report", s.handleTrainingReport)
		api.GET("/feedback/summary", s.handleFeedbackSummary)
	}
}
