package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blood-disease-chatbot/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewManagerDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	cfg := m.GetConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Session.MaxIdle)
	assert.Equal(t, "sqlite", cfg.Feedback.Backend)
	assert.Equal(t, 0.5, cfg.Scoring.TopicWeight)
	assert.True(t, cfg.Chatbot.LegacyFallback)
	assert.Equal(t, "blood-disease-chatbot", cfg.MCP.ServerName)
	assert.True(t, m.IsDevelopment())
	assert.False(t, m.IsProduction())
	assert.Same(t, &cfg.Server, m.GetServerConfig())
}

func TestNewManagerFromFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
environment: production
server:
  port: 9090
session:
  backend: redis
  redis_url: redis://cache:6379/1
scoring:
  threshold: 0.4
`)

	m, err := NewManagerFromFile(path)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	cfg := m.GetConfig()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "redis://cache:6379/1", cfg.Session.RedisURL)
	assert.Equal(t, 0.4, cfg.Scoring.Threshold)
	assert.Equal(t, 0.3, cfg.Scoring.KeywordWeight, "unset keys keep defaults")
	assert.True(t, m.IsProduction())
}

func TestNewManagerMissingFile(t *testing.T) {
	_, err := NewManagerFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CHATBOT_SERVER_PORT", "7070")
	t.Setenv("CHATBOT_LOGGING_LEVEL", "debug")
	t.Setenv("CHATBOT_CHATBOT_RANDOM_SEED", "42")

	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.GetConfig()
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, int64(42), cfg.Chatbot.RandomSeed)
}

func TestReload(t *testing.T) {
	t.Chdir(t.TempDir())
	m, err := NewManager()
	require.NoError(t, err)

	t.Setenv("CHATBOT_SERVER_PORT", "6060")
	require.NoError(t, m.Reload())
	assert.Equal(t, 6060, m.GetConfig().Server.Port)
}

func validConfig(t *testing.T) *domain.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	m, err := NewManager()
	require.NoError(t, err)
	return m.GetConfig()
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{"defaults", func(*domain.Config) {}, ""},
		{"port zero", func(c *domain.Config) { c.Server.Port = 0 }, "invalid server port"},
		{"port too high", func(c *domain.Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"log level", func(c *domain.Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"log format", func(c *domain.Config) { c.Logging.Format = "xml" }, "invalid log format"},
		{"session backend", func(c *domain.Config) { c.Session.Backend = "disk" }, "invalid session backend"},
		{"predictions backend", func(c *domain.Config) { c.Predictions.Backend = "mysql" }, "invalid predictions backend"},
		{"feedback backend", func(c *domain.Config) { c.Feedback.Backend = "csv" }, "invalid feedback backend"},
		{"negative weight", func(c *domain.Config) { c.Scoring.TopicWeight = -1 }, "non-negative"},
		{"zero threshold", func(c *domain.Config) { c.Scoring.Threshold = 0 }, "threshold"},
		{"max sessions", func(c *domain.Config) { c.Session.MaxSessions = 0 }, "max_sessions"},
		{"max idle", func(c *domain.Config) { c.Session.MaxIdle = 0 }, "max_idle"},
		{"redis url", func(c *domain.Config) { c.Session.Backend = "redis"; c.Session.RedisURL = "" }, "redis_url"},
		{"postgres host", func(c *domain.Config) { c.Predictions.Backend = "postgres"; c.Database.Host = "" }, "database host"},
		{"sqlite path", func(c *domain.Config) { c.Feedback.SQLitePath = "" }, "sqlite_path"},
		{"no feedback", func(c *domain.Config) { c.Feedback.Backend = "none"; c.Feedback.SQLitePath = "" }, ""},
		{"rate", func(c *domain.Config) { c.RateLimit.RequestsPerSecond = 0 }, "requests_per_second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Error(t, Validate(nil))
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "CHATBOT_TEST_DOTENV=loaded\n")
	t.Setenv("CHATBOT_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("CHATBOT_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("CHATBOT_TEST_DOTENV"))
}

func TestLoadDotEnvKeepsExisting(t *testing.T) {
	path := writeFile(t, ".env", "CHATBOT_TEST_DOTENV=from-file\n")
	t.Setenv("CHATBOT_TEST_DOTENV", "from-env")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv("CHATBOT_TEST_DOTENV"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(domain.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.WithField("component", "test").Warn("shown")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "test", entry["component"])

	text := NewLogger(domain.LoggingConfig{Level: "nonsense", Format: "text"}, &buf)
	assert.Equal(t, logrus.InfoLevel, text.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, text.Formatter)
}
