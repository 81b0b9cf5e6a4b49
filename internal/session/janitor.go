package session

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/domain"
)

// Janitor periodically evicts idle sessions from a store.
type Janitor struct {
	store    domain.SessionStore
	maxIdle  time.Duration
	interval time.Duration
	now      func() time.Time
	log      *logrus.Logger
}

// NewJanitor creates a janitor that removes sessions idle longer than maxIdle
// every interval.
func NewJanitor(store domain.SessionStore, maxIdle, interval time.Duration, logger *logrus.Logger) *Janitor {
	return &Janitor{
		store:    store,
		maxIdle:  maxIdle,
		interval: interval,
		now:      time.Now,
		log:      logger,
	}
}

// RunOnce performs a single eviction pass.
func (j *Janitor) RunOnce(ctx context.Context) (int, error) {
	removed, err := j.store.Evict(ctx, j.now().Add(-j.maxIdle))
	if err != nil {
		j.log.WithError(err).Warn("Session eviction failed")
		return removed, err
	}
	if removed > 0 {
		j.log.WithField("removed", removed).Info("Evicted idle sessions")
	}
	return removed, nil
}

// Run evicts on every tick until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	if j.interval <= 0 || j.maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = j.RunOnce(ctx)
		}
	}
}
