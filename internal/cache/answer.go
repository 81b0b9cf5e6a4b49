// Package cache provides the two-tier cache for knowledge engine answers.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/domain"
)

const redisKeyPrefix = "chatbot:answer:"

// Stats represents cache performance statistics
type Stats struct {
	MemoryHits   int64 `json:"memory_hits"`
	MemoryMisses int64 `json:"memory_misses"`
	RedisHits    int64 `json:"redis_hits"`
	RedisMisses  int64 `json:"redis_misses"`
	Errors       int64 `json:"errors"`
	Entries      int   `json:"entries"`
}

// Config sizes the cache tiers.
type Config struct {
	MaxItems int
	TTL      time.Duration
}

// Entry is one cached answer with the knowledge entry it came from.
type Entry struct {
	Text     string          `json:"text"`
	Topic    string          `json:"topic,omitempty"`
	Category domain.Category `json:"category,omitempty"`
}

// envelope is the Redis representation of one answer.
type envelope struct {
	Entry
	CachedAt  time.Time `json:"cached_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type memoryEntry struct {
	entry  Entry
	expiry time.Time
}

// AnswerCache caches rendered answers keyed by question text.
// Tier 1 is an in-process LRU; tier 2 is an optional Redis instance.
type AnswerCache struct {
	memory *lru.Cache
	redis  *redis.Client
	ttl    time.Duration
	now    func() time.Time
	logger *logrus.Logger

	statsMu sync.Mutex
	stats   Stats
}

// Option configures an AnswerCache.
type Option func(*AnswerCache) error

// WithRedis adds a Redis second tier.
func WithRedis(client *redis.Client) Option {
	return func(c *AnswerCache) error {
		c.redis = client
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *AnswerCache) error {
		c.logger = logger
		return nil
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *AnswerCache) error {
		c.now = now
		return nil
	}
}

// New creates an answer cache.
func New(cfg Config, opts ...Option) (*AnswerCache, error) {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 1000
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 15 * time.Minute
	}

	memory, err := lru.New(cfg.MaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	c := &AnswerCache{
		memory: memory,
		ttl:    cfg.TTL,
		now:    time.Now,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return c, nil
}

// NewRedisClient connects to the Redis instance at url.
func NewRedisClient(ctx context.Context, url string, poolSize, maxRetries int, poolTimeout time.Duration) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if poolSize > 0 {
		opts.PoolSize = poolSize
	}
	if poolTimeout > 0 {
		opts.PoolTimeout = poolTimeout
	}
	opts.MaxRetries = maxRetries

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Key hashes a question into a cache key.
func Key(question string) string {
	sum := sha256.Sum256([]byte(question))
	return hex.EncodeToString(sum[:])
}

// Get looks up the answer cached for question.
func (c *AnswerCache) Get(ctx context.Context, question string) (Entry, bool) {
	key := Key(question)

	if v, ok := c.memory.Get(key); ok {
		entry := v.(memoryEntry)
		if c.now().Before(entry.expiry) {
			c.record(func(s *Stats) { s.MemoryHits++ })
			return entry.entry, true
		}
		c.memory.Remove(key)
	}
	c.record(func(s *Stats) { s.MemoryMisses++ })

	if c.redis == nil {
		return Entry{}, false
	}

	data, err := c.redis.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(func(s *Stats) { s.RedisMisses++ })
		return Entry{}, false
	}
	if err != nil {
		c.logger.WithError(err).Warn("Answer cache Redis lookup failed")
		c.record(func(s *Stats) { s.RedisMisses++; s.Errors++ })
		return Entry{}, false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || !c.now().Before(env.ExpiresAt) {
		c.record(func(s *Stats) { s.RedisMisses++ })
		return Entry{}, false
	}

	c.record(func(s *Stats) { s.RedisHits++ })
	c.memory.Add(key, memoryEntry{entry: env.Entry, expiry: env.ExpiresAt})
	return env.Entry, true
}

// Set stores the answer for question in both tiers.
func (c *AnswerCache) Set(ctx context.Context, question string, answer Entry) {
	key := Key(question)
	now := c.now()
	expiry := now.Add(c.ttl)

	c.memory.Add(key, memoryEntry{entry: answer, expiry: expiry})

	if c.redis == nil {
		return
	}
	data, err := json.Marshal(envelope{Entry: answer, CachedAt: now, ExpiresAt: expiry})
	if err != nil {
		c.record(func(s *Stats) { s.Errors++ })
		return
	}
	if err := c.redis.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Answer cache Redis write failed")
		c.record(func(s *Stats) { s.Errors++ })
	}
}

// Purge empties the memory tier.
func (c *AnswerCache) Purge() {
	c.memory.Purge()
}

// Stats returns a snapshot of the hit and miss counters.
func (c *AnswerCache) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	s := c.stats
	s.Entries = c.memory.Len()
	return s
}

// Ping checks the Redis tier when one is configured.
func (c *AnswerCache) Ping(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Ping(ctx).Err()
}

// Close releases the Redis client.
func (c *AnswerCache) Close() error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Close()
}

func (c *AnswerCache) record(update func(*Stats)) {
	c.statsMu.Lock()
	update(&c.stats)
	c.statsMu.Unlock()
}
