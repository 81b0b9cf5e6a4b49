// Package chatbot runs the response pipeline and the session-level chat operations.
package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/cache"
	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/engine"
	"github.com/blood-disease-chatbot/internal/feedback"
	"github.com/blood-disease-chatbot/internal/nlp"
)

// Source names the pipeline stage that produced a reply.
type Source string

const (
	SourceDefault  Source = "default"
	SourceCache    Source = "cache"
	SourceEngine   Source = "engine"
	SourceTraining Source = "training"
	SourceSymptom  Source = "symptom"
	SourceDisease  Source = "disease"
	SourceIntent   Source = "intent"
	SourceKeyword  Source = "keyword"
	SourceFallback Source = "fallback"
	SourceError    Source = "error"
)

// Reply is the pipeline's answer to one message.
type Reply struct {
	Text     string          `json:"text"`
	Source   Source          `json:"source"`
	Topic    string          `json:"topic,omitempty"`
	Category domain.Category `json:"category,omitempty"`
}

// AnswerCache stores rendered engine answers by question.
type AnswerCache interface {
	Get(ctx context.Context, question string) (cache.Entry, bool)
	Set(ctx context.Context, question string, answer cache.Entry)
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

// WithChooser sets how response variants are picked.
func WithChooser(c Chooser) Option {
	return func(s *Service) error {
		if c == nil {
			return errors.New("chooser cannot be nil")
		}
		s.chooser = c
		return nil
	}
}

// WithClock overrides the message timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) error {
		s.now = now
		return nil
	}
}

// WithIDGenerator overrides how session and message ids are made.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) error {
		s.newID = newID
		return nil
	}
}

// WithAnswerCache enables caching of engine answers.
func WithAnswerCache(c AnswerCache) Option {
	return func(s *Service) error {
		s.cache = c
		return nil
	}
}

// WithPredictions sets the prediction history quoted by dashboard answers.
func WithPredictions(p domain.PredictionStore) Option {
	return func(s *Service) error {
		s.predictions = p
		return nil
	}
}

// WithLegacyFallback toggles the rule chain that runs after an engine miss.
func WithLegacyFallback(enabled bool) Option {
	return func(s *Service) error {
		s.legacyEnabled = enabled
		return nil
	}
}

// WithFeedbackStore enables answer ratings.
func WithFeedbackStore(store feedback.Store) Option {
	return func(s *Service) error {
		s.feedback = store
		return nil
	}
}

// Service answers chat messages and keeps the conversation history.
type Service struct {
	sessions      domain.SessionStore
	engine        *engine.Engine
	legacy        *legacyMatcher
	legacyEnabled bool
	cache         AnswerCache
	feedback      feedback.Store
	predictions   domain.PredictionStore
	chooser       Chooser
	now           func() time.Time
	newID         func() string
	logger        *logrus.Logger
}

// NewService creates a chat service over sessions and eng.
func NewService(sessions domain.SessionStore, eng *engine.Engine, opts ...Option) (*Service, error) {
	if sessions == nil {
		return nil, errors.New("session store cannot be nil")
	}
	if eng == nil {
		return nil, errors.New("engine cannot be nil")
	}

	s := &Service{
		sessions:      sessions,
		engine:        eng,
		legacyEnabled: true,
		chooser:       NewSeededChooser(0),
		now:           func() time.Time { return time.Now().UTC() },
		newID:         uuid.NewString,
		logger:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	s.legacy = newLegacyMatcher(eng.Base(), s.predictions, s.chooser, s.logger)
	return s, nil
}

// Engine returns the knowledge engine behind the service.
func (s *Service) Engine() *engine.Engine {
	return s.engine
}

// Respond runs the response pipeline. It never fails: processing errors
// become an apology.
func (s *Service) Respond(ctx context.Context, text string) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("Response pipeline panicked")
			reply = Reply{Text: Apology, Source: SourceError}
		}
	}()

	normalized := nlp.Normalize(text)
	if normalized == "" {
		return Reply{Text: defaultResponses[s.chooser.Choose(len(defaultResponses))], Source: SourceDefault}
	}

	// The engine reads the raw text too, so the key must not collapse it.
	key := strings.ToLower(strings.TrimSpace(text))
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return s.logged(Reply{Text: cached.Text, Source: SourceCache, Topic: cached.Topic, Category: cached.Category})
		}
	}

	answer, err := s.engine.Answer(text)
	if err != nil {
		s.logger.WithError(err).Error("Knowledge engine failed")
		return Reply{Text: Apology, Source: SourceError}
	}
	if answer.Matched {
		if s.cache != nil {
			s.cache.Set(ctx, key, cache.Entry{Text: answer.Text, Topic: answer.Topic, Category: answer.Category})
		}
		return s.logged(Reply{Text: answer.Text, Source: SourceEngine, Topic: answer.Topic, Category: answer.Category})
	}

	if s.legacyEnabled {
		if r, ok := s.legacy.respond(ctx, text); ok {
			return s.logged(r)
		}
	}
	return s.logged(Reply{Text: answer.Text, Source: SourceFallback})
}

func (s *Service) logged(r Reply) Reply {
	s.logger.WithFields(logrus.Fields{
		"source": r.Source,
		"topic":  r.Topic,
	}).Debug("Generated reply")
	return r
}

func (s *Service) message(sender domain.Sender, text string) domain.Message {
	return domain.Message{ID: s.newID(), Text: text, Sender: sender, Timestamp: s.now()}
}

// CreateSession starts a conversation holding only the bot greeting.
func (s *Service) CreateSession(ctx context.Context) (*domain.Session, error) {
	greeting := s.message(domain.SenderBot, Greeting)
	session := &domain.Session{
		ID:        s.newID(),
		Messages:  []domain.Message{greeting},
		CreatedAt: greeting.Timestamp,
		UpdatedAt: greeting.Timestamp,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.WithField("session_id", session.ID).Info("Created chat session")
	return session.Clone(), nil
}

// AddUserMessage appends a user message. Unknown sessions yield domain.ErrUnknownSession.
func (s *Service) AddUserMessage(ctx context.Context, sessionID, text string) (*domain.Message, error) {
	msg := s.message(domain.SenderUser, text)
	if _, err := s.sessions.Append(ctx, sessionID, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GenerateBotResponse answers text and appends the reply to the session.
func (s *Service) GenerateBotResponse(ctx context.Context, sessionID, text string) (*domain.Message, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	reply := s.Respond(ctx, text)
	msg := s.message(domain.SenderBot, reply.Text)
	if _, err := s.sessions.Append(ctx, sessionID, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Session returns a copy of the session. Unknown ids yield domain.ErrUnknownSession.
func (s *Service) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Clone(), nil
}

// GetMessages returns the session history. Unknown sessions have no messages.
func (s *Service) GetMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrUnknownSession) {
		return []domain.Message{}, nil
	}
	if err != nil {
		return nil, err
	}
	return session.Messages, nil
}

// Chat appends the user message and the bot's reply to it.
func (s *Service) Chat(ctx context.Context, sessionID, text string) (*domain.Message, *domain.Message, error) {
	user, err := s.AddUserMessage(ctx, sessionID, text)
	if err != nil {
		return nil, nil, err
	}
	bot, err := s.GenerateBotResponse(ctx, sessionID, text)
	if err != nil {
		return user, nil, err
	}
	return user, bot, nil
}

// SubmitFeedback records a rating of one bot message. The question, answer
// and topic are filled in from the session.
func (s *Service) SubmitFeedback(ctx context.Context, fb *feedback.Feedback) (*feedback.Feedback, error) {
	if s.feedback == nil {
		return nil, fmt.Errorf("feedback store not configured: %w", domain.ErrUnavailable)
	}
	if err := fb.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.Get(ctx, fb.SessionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, m := range session.Messages {
		if m.ID == fb.MessageID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("message %q: %w", fb.MessageID, domain.ErrNotFound)
	}
	rated := session.Messages[idx]
	if rated.Sender != domain.SenderBot {
		return nil, domain.NewValidationError("message_id", "must reference a bot message", fb.MessageID)
	}

	fb.Answer = rated.Text
	fb.Question = ""
	for i := idx - 1; i >= 0; i-- {
		if session.Messages[i].Sender == domain.SenderUser {
			fb.Question = session.Messages[i].Text
			break
		}
	}
	if strings.TrimSpace(fb.Question) != "" {
		if answer, err := s.engine.Answer(fb.Question); err == nil && answer.Matched {
			fb.Topic = answer.Topic
		}
	}

	if err := s.feedback.Save(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": fb.SessionID,
		"message_id": fb.MessageID,
		"rating":     fb.Rating,
		"topic":      fb.Topic,
	}).Info("Recorded answer feedback")
	return fb, nil
}

// FeedbackStore returns the configured feedback store, or nil.
func (s *Service) FeedbackStore() feedback.Store {
	return s.feedback
}
