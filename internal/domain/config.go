package domain

import (
	"fmt"
	"time"
)

// Config represents the main application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Session     SessionConfig     `mapstructure:"session"`
	Predictions PredictionsConfig `mapstructure:"predictions"`
	Feedback    FeedbackConfig    `mapstructure:"feedback"`
	Scoring     ScoringConfig     `mapstructure:"scoring"`
	Chatbot     ChatbotConfig     `mapstructure:"chatbot"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	MCP         MCPConfig         `mapstructure:"mcp"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig represents PostgreSQL connection configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	RunMigrations   bool          `mapstructure:"run_migrations"`
}

// URL renders the configuration as a postgres:// connection URL.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.Username, d.Password, d.Host, d.Port, d.Database, d.SSLMode)
}

// CacheConfig represents answer cache configuration
type CacheConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxItems    int           `mapstructure:"max_items"`
	TTL         time.Duration `mapstructure:"ttl"`
	RedisURL    string        `mapstructure:"redis_url"`
	MaxRetries  int           `mapstructure:"max_retries"`
	PoolSize    int           `mapstructure:"pool_size"`
	PoolTimeout time.Duration `mapstructure:"pool_timeout"`
}

// SessionConfig selects and bounds the session store
type SessionConfig struct {
	Backend       string        `mapstructure:"backend"` // "memory", "redis"
	MaxSessions   int           `mapstructure:"max_sessions"`
	MaxIdle       time.Duration `mapstructure:"max_idle"`
	EvictInterval time.Duration `mapstructure:"evict_interval"`
	RedisURL      string        `mapstructure:"redis_url"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
}

// PredictionsConfig selects the prediction history backend
type PredictionsConfig struct {
	Backend string `mapstructure:"backend"` // "memory", "postgres"
	Seed    bool   `mapstructure:"seed"`
}

// FeedbackConfig selects the answer feedback backend
type FeedbackConfig struct {
	Backend    string `mapstructure:"backend"` // "sqlite", "postgres", "none"
	SQLitePath string `mapstructure:"sqlite_path"`
}

// ScoringConfig holds the relevance scoring weights
type ScoringConfig struct {
	KeywordWeight      float64 `mapstructure:"keyword_weight"`
	TopicWeight        float64 `mapstructure:"topic_weight"`
	QuestionTypeWeight float64 `mapstructure:"question_type_weight"`
	Threshold          float64 `mapstructure:"threshold"`
}

// ChatbotConfig controls response pipeline behaviour
type ChatbotConfig struct {
	LegacyFallback bool  `mapstructure:"legacy_fallback"`
	RandomSeed     int64 `mapstructure:"random_seed"` // 0 seeds from the clock
}

// RateLimitConfig represents per-client request limits
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
	MaxClients        int     `mapstructure:"max_clients"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MCPConfig represents MCP server configuration
type MCPConfig struct {
	ServerName    string `mapstructure:"server_name"`
	ServerVersion string `mapstructure:"server_version"`
}
