package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/domain"
)

const maxAppendRetries = 16

// RedisStore keeps each session as a JSON document under prefix+id with a
// sliding TTL of maxIdle.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	maxIdle time.Duration
	log     *logrus.Logger
}

// NewRedisStore creates a store over client.
func NewRedisStore(client *redis.Client, prefix string, maxIdle time.Duration, logger *logrus.Logger) *RedisStore {
	if prefix == "" {
		prefix = "chatbot:session:"
	}
	return &RedisStore{
		client:  client,
		prefix:  prefix,
		maxIdle: maxIdle,
		log:     logger,
	}
}

// NewRedisClient parses url and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Create writes session, replacing any document with the same id.
func (s *RedisStore) Create(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.NewValidationError("id", "session id is required", nil)
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), data, s.maxIdle).Err(); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// Get reads the session.
func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.read(ctx, s.client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) read(ctx context.Context, c getter, id string) (*domain.Session, error) {
	data, err := c.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrUnknownSession)
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &sess, nil
}

// Append adds msg inside a WATCH/MULTI transaction, retrying when another
// writer touched the session first.
func (s *RedisStore) Append(ctx context.Context, id string, msg domain.Message) (*domain.Session, error) {
	key := s.key(id)
	var updated *domain.Session

	txf := func(tx *redis.Tx) error {
		sess, err := s.read(ctx, tx, id)
		if err != nil {
			return err
		}
		sess.Messages = append(sess.Messages, msg)
		sess.UpdatedAt = msg.Timestamp
		if sess.UpdatedAt.IsZero() {
			sess.UpdatedAt = time.Now().UTC()
		}
		data, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("encoding session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.maxIdle)
			return nil
		})
		if err == nil {
			updated = sess
		}
		return err
	}

	for i := 0; i < maxAppendRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			s.log.WithFields(logrus.Fields{
				"session_id": id,
				"attempt":    i + 1,
			}).Debug("Session append conflicted, retrying")
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("appending to session %q: too many concurrent writers", id)
}

// Evict scans the prefix and deletes sessions last updated before cutoff.
// Redis TTLs already expire idle sessions; this catches documents whose TTL
// was longer than the current cutoff.
func (s *RedisStore) Evict(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id := key[len(s.prefix):]
		sess, err := s.Get(ctx, id)
		if errors.Is(err, domain.ErrUnknownSession) {
			continue
		}
		if err != nil {
			return removed, err
		}
		if sess.LastUpdated().Before(cutoff) {
			n, err := s.client.Del(ctx, key).Result()
			if err != nil {
				return removed, fmt.Errorf("deleting session: %w", err)
			}
			removed += int(n)
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("scanning sessions: %w", err)
	}
	return removed, nil
}

// Len counts stored sessions.
func (s *RedisStore) Len(ctx context.Context) (int, error) {
	n := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scanning sessions: %w", err)
	}
	return n, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
