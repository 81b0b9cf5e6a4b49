package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/blood-disease-chatbot/internal/domain"
)

// LiteConfig is the environment-only configuration of the MCP binary.
// It needs no external services: sessions live in memory and feedback
// goes to SQLite under DataDir.
type LiteConfig struct {
	DataDir string

	CacheMaxItems int
	CacheTTL      time.Duration

	MaxSessions int
	MaxIdle     time.Duration

	RandomSeed int64 // 0 seeds from the clock

	LogLevel  string
	LogFormat string
}

// DefaultLiteConfig returns a configuration with sensible defaults.
func DefaultLiteConfig() *LiteConfig {
	homeDir, _ := os.UserHomeDir()

	return &LiteConfig{
		DataDir:       filepath.Join(homeDir, ".blood-disease-chatbot"),
		CacheMaxItems: 1000,
		CacheTTL:      time.Hour,
		MaxSessions:   100,
		MaxIdle:       30 * time.Minute,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// LoadLiteConfig loads configuration from CHATBOT_* environment variables,
// keeping defaults for unset or malformed values.
func LoadLiteConfig() *LiteConfig {
	cfg := DefaultLiteConfig()

	if v := os.Getenv("CHATBOT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	if v := os.Getenv("CHATBOT_CACHE_MAX_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheMaxItems = n
		}
	}
	if v := os.Getenv("CHATBOT_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}

	if v := os.Getenv("CHATBOT_MAX_SESSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxSessions = n
		}
	}
	if v := os.Getenv("CHATBOT_SESSION_MAX_IDLE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.MaxIdle = d
		}
	}

	if v := os.Getenv("CHATBOT_RANDOM_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.RandomSeed = n
		}
	}

	if v := os.Getenv("CHATBOT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CHATBOT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg
}

// Logging returns the logging section for NewLogger.
func (c *LiteConfig) Logging() domain.LoggingConfig {
	return domain.LoggingConfig{Level: c.LogLevel, Format: c.LogFormat}
}

// FeedbackDBPath returns the path to the feedback SQLite database.
func (c *LiteConfig) FeedbackDBPath() string {
	return filepath.Join(c.DataDir, "feedback.db")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *LiteConfig) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}
