// Package engine scores knowledge entries against a question and renders the
// best match through a category template.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/classifier"
	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/knowledge"
	"github.com/blood-disease-chatbot/internal/nlp"
)

// Weights are the relevance scoring parameters.
type Weights struct {
	Keyword      float64 `json:"keyword"`
	Topic        float64 `json:"topic"`
	QuestionType float64 `json:"question_type"`
	Threshold    float64 `json:"threshold"`
}

// DefaultWeights returns the stock scoring weights.
func DefaultWeights() Weights {
	return Weights{Keyword: 0.3, Topic: 0.5, QuestionType: 0.3, Threshold: 0.3}
}

// WeightsFromConfig converts scoring configuration into Weights.
func WeightsFromConfig(cfg domain.ScoringConfig) Weights {
	return Weights{
		Keyword:      cfg.KeywordWeight,
		Topic:        cfg.TopicWeight,
		QuestionType: cfg.QuestionTypeWeight,
		Threshold:    cfg.Threshold,
	}
}

// Categories each question type is considered relevant to.
var relevance = map[string][]domain.Category{
	classifier.QuestionWhat: {
		domain.CategorySymptoms, domain.CategoryCauses, domain.CategoryTreatment,
		domain.CategoryPrevention, domain.CategoryComplications, domain.CategoryDashboard,
	},
	classifier.QuestionHow: {
		domain.CategoryTreatment, domain.CategoryPrevention, domain.CategoryDiagnostic, domain.CategoryDashboard,
	},
	classifier.QuestionWhy:  {domain.CategoryCauses, domain.CategoryComplications},
	classifier.QuestionWhen: {domain.CategoryTreatment, domain.CategoryDiagnostic},
	classifier.QuestionTellMe: {
		domain.CategorySymptoms, domain.CategoryCauses, domain.CategoryTreatment,
		domain.CategoryPrevention, domain.CategoryDashboard,
	},
	classifier.QuestionCauses: {domain.CategoryCauses},
	classifier.QuestionCan: {
		domain.CategorySymptoms, domain.CategoryCauses, domain.CategoryTreatment,
		domain.CategoryPrevention, domain.CategoryDashboard,
	},
}

// Analysis is what the engine understood about a question.
type Analysis struct {
	Question       string   `json:"question"`
	Normalized     string   `json:"normalized"`
	QuestionType   string   `json:"question_type"`
	Intent         string   `json:"intent"`
	PatternMatched bool     `json:"pattern_matched"`
	Entities       []string `json:"entities"`
	Topic          string   `json:"topic,omitempty"`
	Confidence     float64  `json:"confidence"`
}

// Match is a knowledge entry that cleared the relevance threshold.
type Match struct {
	Entry       domain.KnowledgeEntry `json:"entry"`
	Score       float64               `json:"score"`
	KeywordHits []string              `json:"keyword_hits"`
}

// Answer is the engine's response to one question.
type Answer struct {
	Text     string          `json:"text"`
	Matched  bool            `json:"matched"`
	Topic    string          `json:"topic,omitempty"`
	Category domain.Category `json:"category,omitempty"`
	Score    float64         `json:"score,omitempty"`
	Analysis Analysis        `json:"analysis"`
}

// Option configures an Engine.
type Option func(*Engine) error

// WithWeights overrides the scoring weights.
func WithWeights(w Weights) Option {
	return func(e *Engine) error {
		if w.Keyword < 0 || w.Topic < 0 || w.QuestionType < 0 || w.Threshold < 0 {
			return fmt.Errorf("scoring weights must be non-negative: %+v", w)
		}
		e.weights = w
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// Engine answers questions from a knowledge base.
type Engine struct {
	base      *knowledge.Base
	entries   []domain.KnowledgeEntry
	extractor *nlp.Extractor
	questions *classifier.Classifier
	weights   Weights
	logger    *logrus.Logger
}

// New creates an engine over base.
func New(base *knowledge.Base, opts ...Option) (*Engine, error) {
	if base == nil {
		return nil, fmt.Errorf("knowledge base is required")
	}
	e := &Engine{
		base:      base,
		entries:   base.Entries(),
		extractor: nlp.NewExtractor(base.DiseaseKeys()),
		questions: classifier.NewQuestionClassifier(),
		weights:   DefaultWeights(),
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Weights returns the active scoring weights.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Base returns the knowledge base the engine reads from.
func (e *Engine) Base() *knowledge.Base {
	return e.base
}

// Analyze classifies the question and extracts entities and topic.
func (e *Engine) Analyze(question string) Analysis {
	normalized := nlp.Normalize(question)
	qt := e.questions.Classify(normalized)
	entities := e.extractor.Extract(normalized, question)
	topic := e.extractor.Topic(entities)

	confidence := 0.5 + 0.1*float64(len(entities))
	if topic != "" {
		confidence += 0.3
	}
	if qt.Matched {
		confidence += 0.2
	}
	if confidence > 1 {
		confidence = 1
	}

	return Analysis{
		Question:       question,
		Normalized:     normalized,
		QuestionType:   qt.Label,
		Intent:         "information_request",
		PatternMatched: qt.Matched,
		Entities:       entities,
		Topic:          topic,
		Confidence:     confidence,
	}
}

// Score returns the entries scoring above the threshold, best first.
// Equal scores keep knowledge base order.
func (e *Engine) Score(a Analysis) []Match {
	entitySet := make(map[string]struct{}, len(a.Entities))
	for _, ent := range a.Entities {
		entitySet[ent] = struct{}{}
	}
	raw := strings.ToLower(a.Question)

	var matches []Match
	for _, entry := range e.entries {
		var hits []string
		for _, kw := range entry.Keywords {
			_, isEntity := entitySet[kw]
			if isEntity || strings.Contains(raw, kw) || strings.Contains(a.Normalized, kw) {
				hits = append(hits, kw)
			}
		}

		score := float64(len(hits)) * e.weights.Keyword
		if a.Topic != "" && strings.Contains(entry.Topic, a.Topic) {
			score += e.weights.Topic
		}
		if isRelevant(a.QuestionType, entry.Category) {
			score += e.weights.QuestionType
		}

		if score > e.weights.Threshold {
			matches = append(matches, Match{Entry: entry, Score: score, KeywordHits: hits})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func isRelevant(questionType string, c domain.Category) bool {
	for _, rc := range relevance[questionType] {
		if rc == c {
			return true
		}
	}
	return false
}

// Answer runs the full analyze, score and render pipeline.
func (e *Engine) Answer(question string) (Answer, error) {
	a := e.Analyze(question)
	matches := e.Score(a)

	e.logger.WithFields(logrus.Fields{
		"question_type": a.QuestionType,
		"topic":         a.Topic,
		"entities":      len(a.Entities),
		"matches":       len(matches),
	}).Debug("Analyzed question")

	if len(matches) == 0 {
		return Answer{Text: e.Fallback(a), Analysis: a}, nil
	}

	best := matches[0]
	text, err := e.Render(best)
	if err != nil {
		return Answer{}, err
	}
	return Answer{
		Text:     text,
		Matched:  true,
		Topic:    best.Entry.Topic,
		Category: best.Entry.Category,
		Score:    best.Score,
		Analysis: a,
	}, nil
}
