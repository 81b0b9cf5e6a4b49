// Package config loads chatbot configuration from files, environment
// variables and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/blood-disease-chatbot/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. CHATBOT_SERVER_PORT.
const EnvPrefix = "CHATBOT"

var (
	sessionBackends    = map[string]bool{"memory": true, "redis": true}
	predictionBackends = map[string]bool{"memory": true, "postgres": true}
	feedbackBackends   = map[string]bool{"sqlite": true, "postgres": true, "none": true}
	logLevels          = map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true}
	logFormats         = map[string]bool{"json": true, "text": true}
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	v          *viper.Viper
	configFile string
	config     *domain.Config
}

// NewManager creates a new configuration manager reading config.yaml from
// the standard search paths.
func NewManager() (*Manager, error) {
	return NewManagerFromFile("")
}

// NewManagerFromFile creates a configuration manager reading the given file.
// An empty path searches the standard locations.
func NewManagerFromFile(path string) (*Manager, error) {
	m := &Manager{configFile: path}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading %s: %w", p, err)
		}
	}
	return nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	v := viper.New()
	if m.configFile != "" {
		v.SetConfigFile(m.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/blood-disease-chatbot/")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; defaults and environment variables suffice.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.v = v
	m.config = config
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "15s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.database", "blood_disease_chatbot")
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "30m")
	v.SetDefault("database.run_migrations", true)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_items", 1000)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.max_retries", 3)
	v.SetDefault("cache.pool_size", 10)
	v.SetDefault("cache.pool_timeout", "4s")

	// Session defaults
	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.max_sessions", 10000)
	v.SetDefault("session.max_idle", "30m")
	v.SetDefault("session.evict_interval", "1m")
	v.SetDefault("session.redis_url", "redis://localhost:6379/0")
	v.SetDefault("session.key_prefix", "chatbot:session:")

	v.SetDefault("predictions.backend", "memory")
	v.SetDefault("predictions.seed", true)

	v.SetDefault("feedback.backend", "sqlite")
	v.SetDefault("feedback.sqlite_path", "data/feedback.db")

	// Scoring weights
	v.SetDefault("scoring.keyword_weight", 0.3)
	v.SetDefault("scoring.topic_weight", 0.5)
	v.SetDefault("scoring.question_type_weight", 0.3)
	v.SetDefault("scoring.threshold", 0.3)

	v.SetDefault("chatbot.legacy_fallback", true)
	v.SetDefault("chatbot.random_seed", 0)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.max_clients", 10000)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("mcp.server_name", "blood-disease-chatbot")
	v.SetDefault("mcp.server_version", "v0.1.0")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetDatabaseConfig returns database configuration
func (m *Manager) GetDatabaseConfig() *domain.DatabaseConfig {
	return &m.config.Database
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	return Validate(m.config)
}

// Validate checks a configuration for values the services cannot run with.
func Validate(config *domain.Config) error {
	if config == nil {
		return errors.New("configuration is not loaded")
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if !logLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}
	if !logFormats[strings.ToLower(config.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s", config.Logging.Format)
	}

	if !sessionBackends[config.Session.Backend] {
		return fmt.Errorf("invalid session backend: %q", config.Session.Backend)
	}
	if !predictionBackends[config.Predictions.Backend] {
		return fmt.Errorf("invalid predictions backend: %q", config.Predictions.Backend)
	}
	if !feedbackBackends[config.Feedback.Backend] {
		return fmt.Errorf("invalid feedback backend: %q", config.Feedback.Backend)
	}

	s := config.Scoring
	if s.KeywordWeight < 0 || s.TopicWeight < 0 || s.QuestionTypeWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative")
	}
	if s.Threshold <= 0 {
		return fmt.Errorf("scoring threshold must be positive: %v", s.Threshold)
	}

	if config.Session.MaxSessions <= 0 {
		return fmt.Errorf("session.max_sessions must be positive: %d", config.Session.MaxSessions)
	}
	if config.Session.MaxIdle <= 0 {
		return fmt.Errorf("session.max_idle must be positive: %s", config.Session.MaxIdle)
	}

	if config.Session.Backend == "redis" && config.Session.RedisURL == "" {
		return fmt.Errorf("session.redis_url is required for the redis session backend")
	}
	needsPostgres := config.Predictions.Backend == "postgres" || config.Feedback.Backend == "postgres"
	if needsPostgres && (config.Database.Host == "" || config.Database.Database == "" || config.Database.Username == "") {
		return fmt.Errorf("database host, name and username are required for postgres backends")
	}
	if config.Feedback.Backend == "sqlite" && config.Feedback.SQLitePath == "" {
		return fmt.Errorf("feedback.sqlite_path is required for the sqlite feedback backend")
	}

	if config.RateLimit.Enabled && config.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate_limit.requests_per_second must be positive when enabled")
	}

	return nil
}

// IsProduction returns true if running in production mode
func (m *Manager) IsProduction() bool {
	return strings.ToLower(m.v.GetString("environment")) == "production"
}

// IsDevelopment returns true if running in development mode
func (m *Manager) IsDevelopment() bool {
	env := strings.ToLower(m.v.GetString("environment"))
	return env == "development" || env == "dev" || env == ""
}
