package domain

import (
	"context"
	"time"
)

// SessionStore persists chat sessions. Unknown ids yield ErrUnknownSession.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Append(ctx context.Context, id string, msg Message) (*Session, error)
	// Evict removes sessions last updated before cutoff and reports how many went.
	Evict(ctx context.Context, cutoff time.Time) (int, error)
	Len(ctx context.Context) (int, error)
	Close() error
}

// PredictionStore exposes stored prediction history.
type PredictionStore interface {
	All(ctx context.Context) ([]Prediction, error)
	Recent(ctx context.Context, limit int) ([]Prediction, error)
	DiseaseStats(ctx context.Context) ([]DiseaseCount, error)
	Create(ctx context.Context, p *Prediction) error
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetDatabaseConfig() *DatabaseConfig
	Reload() error
	Validate() error
	IsProduction() bool
	IsDevelopment() bool
}
