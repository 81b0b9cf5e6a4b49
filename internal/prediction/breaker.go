package prediction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/blood-disease-chatbot/internal/domain"
)

// BreakerSettings tune the circuit breaker around a prediction store.
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerSettings returns the production breaker tuning.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  5,
		Interval:     30 * time.Second,
		Timeout:      60 * time.Second,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
}

// BreakerStore guards a PredictionStore with a circuit breaker. While the
// breaker is open every call fails fast with domain.ErrUnavailable.
type BreakerStore struct {
	inner domain.PredictionStore
	cb    *gobreaker.CircuitBreaker
	log   *logrus.Logger
}

// NewBreakerStore wraps inner.
func NewBreakerStore(inner domain.PredictionStore, settings BreakerSettings, logger *logrus.Logger) *BreakerStore {
	cbSettings := gobreaker.Settings{
		Name:        "PredictionStore",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= settings.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			var verr *domain.ValidationError
			return err == nil || errors.As(err, &verr)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"circuit_breaker": name,
				"from_state":      from.String(),
				"to_state":        to.String(),
			}).Warn("Circuit breaker state changed")
		},
	}

	return &BreakerStore{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(cbSettings),
		log:   logger,
	}
}

// State reports the breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerStore) execute(op string, fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err == nil {
		return result, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("prediction store %s: %w", op, domain.ErrUnavailable)
	}
	return nil, err
}

// All implements domain.PredictionStore.
func (b *BreakerStore) All(ctx context.Context) ([]domain.Prediction, error) {
	result, err := b.execute("all", func() (interface{}, error) {
		return b.inner.All(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Prediction), nil
}

// Recent implements domain.PredictionStore.
func (b *BreakerStore) Recent(ctx context.Context, limit int) ([]domain.Prediction, error) {
	result, err := b.execute("recent", func() (interface{}, error) {
		return b.inner.Recent(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Prediction), nil
}

// DiseaseStats implements domain.PredictionStore.
func (b *BreakerStore) DiseaseStats(ctx context.Context) ([]domain.DiseaseCount, error) {
	result, err := b.execute("disease stats", func() (interface{}, error) {
		return b.inner.DiseaseStats(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.DiseaseCount), nil
}

// Create implements domain.PredictionStore.
func (b *BreakerStore) Create(ctx context.Context, p *domain.Prediction) error {
	_, err := b.execute("create", func() (interface{}, error) {
		return nil, b.inner.Create(ctx, p)
	})
	return err
}
