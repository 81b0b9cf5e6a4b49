// Package session stores chat sessions behind domain.SessionStore.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/blood-disease-chatbot/internal/domain"
)

// MemoryStore keeps sessions in a bounded LRU. Once MaxSessions is reached
// the least recently used session is dropped.
type MemoryStore struct {
	mu      sync.Mutex
	cache   *lru.Cache[string, *domain.Session]
	maxIdle time.Duration
	now     func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source used for idle checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates a store holding at most maxSessions sessions.
// Sessions idle longer than maxIdle are treated as gone; zero disables the check.
func NewMemoryStore(maxSessions int, maxIdle time.Duration, opts ...MemoryOption) (*MemoryStore, error) {
	if maxSessions <= 0 {
		return nil, fmt.Errorf("max sessions must be positive, got %d", maxSessions)
	}
	cache, err := lru.New[string, *domain.Session](maxSessions)
	if err != nil {
		return nil, fmt.Errorf("creating session cache: %w", err)
	}
	s := &MemoryStore{
		cache:   cache,
		maxIdle: maxIdle,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create stores a copy of session.
func (s *MemoryStore) Create(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.NewValidationError("id", "session id is required", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(session.ID, session.Clone())
	return nil
}

// Get returns a copy of the session.
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// Append adds msg to the session and returns the updated copy.
func (s *MemoryStore) Append(ctx context.Context, id string, msg domain.Message) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.Messages = append(sess.Messages, msg)
	sess.UpdatedAt = msg.Timestamp
	if sess.UpdatedAt.IsZero() {
		sess.UpdatedAt = s.now()
	}
	return sess.Clone(), nil
}

// Evict removes every session last updated before cutoff.
func (s *MemoryStore) Evict(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for _, id := range s.cache.Keys() {
		sess, ok := s.cache.Peek(id)
		if ok && sess.LastUpdated().Before(cutoff) {
			s.cache.Remove(id)
			removed++
		}
	}
	return removed, nil
}

// Len reports how many sessions are held.
func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len(), nil
}

// Close drops every session.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
	return nil
}

// lookup must be called with mu held.
func (s *MemoryStore) lookup(id string) (*domain.Session, error) {
	sess, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrUnknownSession)
	}
	if s.maxIdle > 0 && s.now().Sub(sess.LastUpdated()) > s.maxIdle {
		s.cache.Remove(id)
		return nil, fmt.Errorf("session %q expired: %w", id, domain.ErrUnknownSession)
	}
	return sess, nil
}
