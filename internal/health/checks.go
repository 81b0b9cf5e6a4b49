package health

import (
	"context"

	"github.com/blood-disease-chatbot/internal/cache"
	"github.com/blood-disease-chatbot/internal/database"
	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/feedback"
)

type funcCheck struct {
	name  string
	probe func(ctx context.Context) (map[string]interface{}, error)
}

// Func adapts a probe into a Check. A probe error marks the component unhealthy.
func Func(name string, probe func(ctx context.Context) (map[string]interface{}, error)) Check {
	return &funcCheck{name: name, probe: probe}
}

func (f *funcCheck) Name() string {
	return f.name
}

func (f *funcCheck) Check(ctx context.Context) ComponentHealth {
	metadata, err := f.probe(ctx)
	if err != nil {
		return ComponentHealth{
			Status:   StateUnhealthy,
			Message:  f.name + " check failed",
			Metadata: metadata,
			Error:    err.Error(),
		}
	}
	return ComponentHealth{Status: StateHealthy, Message: f.name + " is healthy", Metadata: metadata}
}

func SessionCheck(store domain.SessionStore) Check {
	return Func("sessions", func(ctx context.Context) (map[string]interface{}, error) {
		n, err := store.Len(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"active_sessions": n}, nil
	})
}

func PredictionCheck(store domain.PredictionStore) Check {
	return Func("predictions", func(ctx context.Context) (map[string]interface{}, error) {
		recent, err := store.Recent(ctx, 1)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"has_history": len(recent) > 0}, nil
	})
}

func CacheCheck(c *cache.AnswerCache) Check {
	return Func("answer_cache", func(ctx context.Context) (map[string]interface{}, error) {
		stats := c.Stats()
		metadata := map[string]interface{}{
			"entries":       stats.Entries,
			"memory_hits":   stats.MemoryHits,
			"memory_misses": stats.MemoryMisses,
			"redis_hits":    stats.RedisHits,
			"errors":        stats.Errors,
		}
		return metadata, c.Ping(ctx)
	})
}

func FeedbackCheck(store feedback.Store) Check {
	return Func("feedback", func(ctx context.Context) (map[string]interface{}, error) {
		n, err := store.Count(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"ratings": n}, nil
	})
}

func DatabaseCheck(db *database.DB) Check {
	return Func("database", func(ctx context.Context) (map[string]interface{}, error) {
		if err := db.Health(ctx); err != nil {
			return nil, err
		}
		stats := db.Stats()
		return map[string]interface{}{
			"total_conns":    stats.TotalConns(),
			"idle_conns":     stats.IdleConns(),
			"acquired_conns": stats.AcquiredConns(),
		}, nil
	})
}
