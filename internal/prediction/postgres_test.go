package prediction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/blood-disease-chatbot/internal/database"
	"github.com/blood-disease-chatbot/internal/domain"
)

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate PostgreSQL container: %v", err)
		}
	}()

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbCfg := domain.DatabaseConfig{
		Host:     host,
		Port:     port.Int(),
		Database: "testdb",
		Username: "testuser",
		Password: "testpass",
		SSLMode:  "disable",
		MaxConns: 4,
	}
	logger := quietLogger()

	runner, err := database.NewMigrationRunner(dbCfg.URL(), logger)
	require.NoError(t, err)
	require.NoError(t, runner.Up(ctx))
	require.NoError(t, runner.Close())

	db, err := database.NewConnection(ctx, database.ConfigFromDomain(dbCfg), logger)
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db.Pool, logger)

	n, err := store.Seed(ctx, DefaultPredictions(refTime))
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	n, err = store.Seed(ctx, DefaultPredictions(refTime))
	require.NoError(t, err)
	assert.Zero(t, n)

	summary, err := Summarize(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Total)
	assert.Equal(t, 0.87, summary.AvgConfidence)
	require.Len(t, summary.Recent, RecentLimit)
	assert.Equal(t, "Healthy", summary.Recent[0].Disease)
	assert.Equal(t, domain.DiseaseCount{Disease: "Healthy", Count: 3}, summary.Distribution[0])

	p := &domain.Prediction{
		Parameters: domain.BloodParameters{Glucose: 180, Hemoglobin: 13, Platelets: 240, Cholesterol: 200, WhiteBloodCells: 7, Hematocrit: 40},
		Disease:    "Diabetes",
		Confidence: 0.9,
	}
	require.NoError(t, store.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	recent, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, p.ID, recent[0].ID)
	assert.Equal(t, 180.0, recent[0].Parameters.Glucose)
}
