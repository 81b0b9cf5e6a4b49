package session

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blood-disease-chatbot/internal/domain"
)

var start = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newSession(id string, at time.Time) *domain.Session {
	return &domain.Session{
		ID: id,
		Messages: []domain.Message{
			{ID: id + "-greeting", Text: "Hello!", Sender: domain.SenderBot, Timestamp: at},
		},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestMemoryStoreCreateGetAppend(t *testing.T) {
	ctx := context.Background()
	clk := &clock{t: start}
	store, err := NewMemoryStore(10, time.Hour, WithClock(clk.now))
	require.NoError(t, err)

	require.NoError(t, store.Create(ctx, newSession("a", start)))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)

	got.Messages[0].Text = "mutated"
	again, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", again.Messages[0].Text, "returned sessions must be copies")

	later := start.Add(time.Minute)
	updated, err := store.Append(ctx, "a", domain.Message{ID: "m1", Text: "hi", Sender: domain.SenderUser, Timestamp: later})
	require.NoError(t, err)
	assert.Len(t, updated.Messages, 2)
	assert.Equal(t, later, updated.UpdatedAt)
}

func TestMemoryStoreUnknownSession(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(10, 0)
	require.NoError(t, err)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownSession)

	_, err = store.Append(ctx, "missing", domain.Message{ID: "x"})
	assert.ErrorIs(t, err, domain.ErrUnknownSession)
}

func TestMemoryStoreSessionIsolation(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(10, 0)
	require.NoError(t, err)

	require.NoError(t, store.Create(ctx, newSession("a", start)))
	require.NoError(t, store.Create(ctx, newSession("b", start)))

	_, err = store.Append(ctx, "a", domain.Message{ID: "only-in-a", Sender: domain.SenderUser, Timestamp: start})
	require.NoError(t, err)

	b, err := store.Get(ctx, "b")
	require.NoError(t, err)
	for _, m := range b.Messages {
		assert.NotEqual(t, "only-in-a", m.ID)
	}
}

func TestMemoryStoreIdleExpiry(t *testing.T) {
	ctx := context.Background()
	clk := &clock{t: start}
	store, err := NewMemoryStore(10, 30*time.Minute, WithClock(clk.now))
	require.NoError(t, err)

	require.NoError(t, store.Create(ctx, newSession("a", start)))
	clk.advance(31 * time.Minute)

	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrUnknownSession)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryStoreBoundedByCount(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(2, 0)
	require.NoError(t, err)

	require.NoError(t, store.Create(ctx, newSession("a", start)))
	require.NoError(t, store.Create(ctx, newSession("b", start)))
	_, err = store.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, newSession("c", start)))

	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrUnknownSession, "least recently used session should be evicted")
	_, err = store.Get(ctx, "a")
	assert.NoError(t, err)

	n, _ := store.Len(ctx)
	assert.Equal(t, 2, n)
}

func TestMemoryStoreEvict(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(10, 0)
	require.NoError(t, err)

	require.NoError(t, store.Create(ctx, newSession("old", start)))
	require.NoError(t, store.Create(ctx, newSession("new", start.Add(time.Hour))))

	removed, err := store.Evict(ctx, start.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrUnknownSession)
	_, err = store.Get(ctx, "new")
	assert.NoError(t, err)
}

func TestMemoryStoreRejectsBadInput(t *testing.T) {
	_, err := NewMemoryStore(0, 0)
	assert.Error(t, err)

	store, err := NewMemoryStore(1, 0)
	require.NoError(t, err)
	assert.Error(t, store.Create(context.Background(), &domain.Session{}))
	assert.NoError(t, store.Close())
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(10, 0)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, newSession("a", start)))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Append(ctx, "a", domain.Message{ID: fmt.Sprintf("m%d", i), Timestamp: start})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	sess, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, sess.Messages, 21)
}

func TestJanitorRunOnce(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(10, 0)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, newSession("stale", start)))
	require.NoError(t, store.Create(ctx, newSession("fresh", start.Add(50*time.Minute))))

	j := NewJanitor(store, 30*time.Minute, time.Minute, quietLogger())
	j.now = func() time.Time { return start.Add(time.Hour) }

	removed, err := j.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	n, _ := store.Len(ctx)
	assert.Equal(t, 1, n)
}

func TestJanitorRunStopsOnCancel(t *testing.T) {
	store, err := NewMemoryStore(10, 0)
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), newSession("stale", start)))

	j := NewJanitor(store, time.Minute, 5*time.Millisecond, quietLogger())
	j.now = func() time.Time { return start.Add(time.Hour) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		n, _ := store.Len(context.Background())
		return n == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping Redis tests")
	}
	ctx := context.Background()

	client, err := NewRedisClient(ctx, url)
	require.NoError(t, err)

	prefix := "test:session:" + uuid.NewString() + ":"
	store := NewRedisStore(client, prefix, time.Hour, quietLogger())
	defer store.Close()

	require.NoError(t, store.Create(ctx, newSession("a", start)))
	require.NoError(t, store.Create(ctx, newSession("b", start.Add(2*time.Hour))))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Append(ctx, "a", domain.Message{ID: fmt.Sprintf("m%d", i), Timestamp: start})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	sess, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, sess.Messages, 6)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownSession)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	removed, err := store.Evict(ctx, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}
