package prediction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blood-disease-chatbot/internal/domain"
)

var refTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestSeededMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewSeededMemoryStore(refTime)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 10)
	assert.Equal(t, "Healthy", all[0].Disease)
	assert.Equal(t, 0.92, all[0].Confidence)
	assert.Equal(t, refTime.Add(-10*time.Hour), all[0].CreatedAt)
	assert.Equal(t, refTime.Add(-time.Hour), all[9].CreatedAt)

	// Seed ids are stable across stores.
	again := DefaultPredictions(refTime)
	assert.Equal(t, all[3].ID, again[3].ID)
	assert.NotEqual(t, all[3].ID, all[4].ID)
}

func TestMemoryStoreRecent(t *testing.T) {
	ctx := context.Background()
	store := NewSeededMemoryStore(refTime)

	recent, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "Healthy", recent[0].Disease)
	assert.Equal(t, 0.93, recent[0].Confidence)
	assert.Equal(t, "Anemia", recent[1].Disease)
	assert.Equal(t, "Diabetes", recent[2].Disease)

	all, err := store.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, 10)
}

func TestMemoryStoreDiseaseStats(t *testing.T) {
	store := NewSeededMemoryStore(refTime)

	stats, err := store.DiseaseStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.DiseaseCount{
		{Disease: "Healthy", Count: 3},
		{Disease: "Anemia", Count: 2},
		{Disease: "Diabetes", Count: 2},
		{Disease: "Heart Disease", Count: 1},
		{Disease: "Thalassemia", Count: 1},
		{Disease: "Thrombocytopenia", Count: 1},
	}, stats)
}

func TestMemoryStoreCreate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.now = func() time.Time { return refTime }

	p := &domain.Prediction{Disease: "Anemia", Confidence: 0.7}
	require.NoError(t, store.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, refTime, p.CreatedAt)

	var verr *domain.ValidationError
	err := store.Create(ctx, &domain.Prediction{Disease: "Anemia", Confidence: 1.5})
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "confidence", verr.Field)

	err = store.Create(ctx, &domain.Prediction{Confidence: 0.5})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "disease", verr.Field)

	all, _ := store.All(ctx)
	assert.Len(t, all, 1)
}

func TestSummarize(t *testing.T) {
	summary, err := Summarize(context.Background(), NewSeededMemoryStore(refTime))
	require.NoError(t, err)

	assert.Equal(t, 10, summary.Total)
	assert.Equal(t, 0.87, summary.AvgConfidence)
	assert.Equal(t, 3, summary.ActiveCases)
	assert.Equal(t, 2, summary.TestSamples)
	require.Len(t, summary.Recent, RecentLimit)
	assert.Equal(t, "Healthy", summary.Recent[0].Disease)
	require.NotEmpty(t, summary.Distribution)
	assert.Equal(t, 30, summary.Percent(summary.Distribution[0]))
}

func TestSummarizeEmpty(t *testing.T) {
	summary, err := Summarize(context.Background(), NewMemoryStore())
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.AvgConfidence)
	assert.Zero(t, summary.Percent(domain.DiseaseCount{Disease: "Anemia", Count: 1}))
}

type failingStore struct {
	calls int
	err   error
}

func (f *failingStore) All(ctx context.Context) ([]domain.Prediction, error) {
	f.calls++
	return nil, f.err
}

func (f *failingStore) Recent(ctx context.Context, limit int) ([]domain.Prediction, error) {
	f.calls++
	return nil, f.err
}

func (f *failingStore) DiseaseStats(ctx context.Context) ([]domain.DiseaseCount, error) {
	f.calls++
	return nil, f.err
}

func (f *failingStore) Create(ctx context.Context, p *domain.Prediction) error {
	f.calls++
	return f.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestBreakerStoreTripsAndFailsFast(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	inner := &failingStore{err: boom}
	store := NewBreakerStore(inner, DefaultBreakerSettings(), quietLogger())

	for i := 0; i < 3; i++ {
		_, err := store.All(ctx)
		require.ErrorIs(t, err, boom)
	}
	assert.Equal(t, gobreaker.StateOpen, store.State())

	_, err := store.Recent(ctx, 5)
	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, 3, inner.calls)
}

func TestBreakerStoreIgnoresValidationErrors(t *testing.T) {
	ctx := context.Background()
	store := NewBreakerStore(NewMemoryStore(), DefaultBreakerSettings(), quietLogger())

	for i := 0; i < 5; i++ {
		err := store.Create(ctx, &domain.Prediction{})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, store.State())

	require.NoError(t, store.Create(ctx, &domain.Prediction{Disease: "Healthy", Confidence: 0.9}))
	stats, err := store.DiseaseStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.DiseaseCount{{Disease: "Healthy", Count: 1}}, stats)
}

func TestBreakerStorePassesThrough(t *testing.T) {
	store := NewBreakerStore(NewSeededMemoryStore(refTime), DefaultBreakerSettings(), quietLogger())
	summary, err := Summarize(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Total)
}
