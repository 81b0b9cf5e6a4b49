package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blood-disease-chatbot/internal/domain"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func TestAnswerCacheMemoryTier(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c, err := New(Config{MaxItems: 10, TTL: time.Minute}, WithClock(clock.now))
	require.NoError(t, err)
	ctx := context.Background()

	_, ok := c.Get(ctx, "what are the symptoms of anemia")
	assert.False(t, ok)

	want := Entry{Text: "**Anemia - Symptoms:**", Topic: "anemia_symptoms", Category: domain.CategorySymptoms}
	c.Set(ctx, "what are the symptoms of anemia", want)
	got, ok := c.Get(ctx, "what are the symptoms of anemia")
	require.True(t, ok)
	assert.Equal(t, want, got)

	clock.t = clock.t.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "what are the symptoms of anemia")
	assert.False(t, ok, "entry should expire after the TTL")

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.MemoryHits)
	assert.Equal(t, int64(2), stats.MemoryMisses)
	assert.Zero(t, stats.Entries)
}

func TestAnswerCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := New(Config{MaxItems: 2, TTL: time.Hour})
	require.NoError(t, err)
	ctx := context.Background()

	c.Set(ctx, "a", Entry{Text: "1"})
	c.Set(ctx, "b", Entry{Text: "2"})
	_, _ = c.Get(ctx, "a")
	c.Set(ctx, "c", Entry{Text: "3"})

	_, ok := c.Get(ctx, "b")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Stats().Entries)
}

func TestKeyIsStableHash(t *testing.T) {
	assert.Equal(t, Key("anemia"), Key("anemia"))
	assert.NotEqual(t, Key("anemia"), Key("anaemia"))
	assert.Len(t, Key("anemia"), 64)
}

func TestNewAppliesDefaults(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, c.ttl)
	assert.NoError(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}

func TestAnswerCacheRedisTier(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping Redis tests")
	}
	ctx := context.Background()

	client, err := NewRedisClient(ctx, url, 4, 1, time.Second)
	require.NoError(t, err)

	writer, err := New(Config{MaxItems: 10, TTL: time.Minute}, WithRedis(client))
	require.NoError(t, err)
	defer writer.Close()

	question := "redis tier question " + time.Now().Format(time.RFC3339Nano)
	want := Entry{Text: "cached answer", Topic: "diabetes_treatment", Category: domain.CategoryTreatment}
	writer.Set(ctx, question, want)

	// A fresh memory tier must fall through to Redis.
	reader, err := New(Config{MaxItems: 10, TTL: time.Minute}, WithRedis(client))
	require.NoError(t, err)

	got, ok := reader.Get(ctx, question)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, int64(1), reader.Stats().RedisHits)

	_, ok = reader.Get(ctx, question)
	assert.True(t, ok)
	assert.Equal(t, int64(1), reader.Stats().MemoryHits)
}
