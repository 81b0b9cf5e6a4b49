// Package training reports on the curated training dataset: its size,
// validity and how well the intent classifier labels the demo questions.
package training

import (
	"context"
	"math"
	"time"

	"github.com/blood-disease-chatbot/internal/classifier"
	"github.com/blood-disease-chatbot/internal/knowledge"
	"github.com/blood-disease-chatbot/internal/nlp"
)

// Recommendation thresholds.
const (
	MinAvgConfidence   = 0.85
	MinValidationScore = 95.0
	MinExamples        = 50
	MinIntents         = 8
)

// IntentClassifier labels a preprocessed message.
type IntentClassifier interface {
	Classify(text string) classifier.Result
}

type Stats struct {
	TotalExamples   int      `json:"total_examples"`
	TotalIntents    int      `json:"total_intents"`
	TotalDiseases   int      `json:"total_diseases"`
	AvgConfidence   float64  `json:"avg_confidence"`
	Intents         []string `json:"intents"`
	Diseases        []string `json:"diseases"`
	SymptomMappings int      `json:"symptom_mappings"`
}

type ExampleCheck struct {
	ID                string `json:"id"`
	HasInput          bool   `json:"has_input"`
	HasOutput         bool   `json:"has_output"`
	HasIntent         bool   `json:"has_intent"`
	HasContext        bool   `json:"has_context"`
	ConfidenceInRange bool   `json:"confidence_in_range"`
	InputLength       int    `json:"input_length"`
	OutputLength      int    `json:"output_length"`
	Valid             bool   `json:"is_valid"`
}

type Validation struct {
	Score           float64        `json:"score"`
	TotalExamples   int            `json:"total_examples"`
	ValidExamples   int            `json:"valid_examples"`
	InvalidExamples int            `json:"invalid_examples"`
	Details         []ExampleCheck `json:"details"`
}

// DemoExample is a question with the intent it should be labelled with.
type DemoExample struct {
	ID             string  `json:"id"`
	UserInput      string  `json:"user_input"`
	ExpectedOutput string  `json:"expected_output"`
	Confidence     float64 `json:"confidence"`
	Intent         string  `json:"intent"`
	Disease        string  `json:"disease"`
}

type Result struct {
	ID        string `json:"id"`
	Intent    string `json:"intent"`
	Predicted string `json:"predicted"`
	Disease   string `json:"disease"`
	Correct   bool   `json:"correct"`
}

type Accuracy struct {
	Label    string  `json:"label"`
	Accuracy float64 `json:"accuracy"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
}

type Metrics struct {
	Accuracy   float64    `json:"accuracy"`
	TotalTests int        `json:"total_tests"`
	Correct    int        `json:"correct_predictions"`
	ByIntent   []Accuracy `json:"by_intent"`
	ByDisease  []Accuracy `json:"by_disease"`
	Results    []Result   `json:"results"`
}

type Recommendation struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

type Summary struct {
	TotalExamples   int     `json:"total_training_examples"`
	TotalIntents    int     `json:"total_intents"`
	TotalDiseases   int     `json:"total_diseases"`
	AvgConfidence   float64 `json:"avg_confidence"`
	ValidationScore float64 `json:"validation_score"`
	EvalAccuracy    float64 `json:"evaluation_accuracy"`
}

type Report struct {
	Timestamp       time.Time        `json:"timestamp"`
	Summary         Summary          `json:"summary"`
	Stats           Stats            `json:"stats"`
	Validation      Validation       `json:"validation"`
	Evaluation      Metrics          `json:"evaluation"`
	Recommendations []Recommendation `json:"recommendations"`
}

var demoExamples = []DemoExample{
	{"1", "I've been feeling very tired and weak lately", "Fatigue and weakness can be symptoms of several blood conditions, particularly anemia", 0.95, classifier.IntentSymptomInquiry, "anemia"},
	{"2", "I bruise easily and have frequent nosebleeds", "Easy bruising and frequent nosebleeds are concerning symptoms that could indicate thrombocytopenia", 0.92, classifier.IntentSymptomInquiry, "thrombocytopenia"},
	{"3", "What treatment options are available for diabetes?", "Treatment for diabetes includes medication management, dietary changes, and lifestyle modifications", 0.94, classifier.IntentTreatmentInformation, "diabetes"},
	{"4", "How can I prevent heart disease?", "Heart disease prevention involves maintaining a healthy diet, regular exercise, and managing risk factors", 0.91, classifier.IntentPreventionInformation, "heart_disease"},
	{"5", "I'm scared about my blood test results", "It's completely natural to feel scared about blood test results - many people experience anxiety around medical tests", 0.88, classifier.IntentEmotionalSupport, "general"},
}

// DemoExamples returns the evaluation questions.
func DemoExamples() []DemoExample {
	out := make([]DemoExample, len(demoExamples))
	copy(out, demoExamples)
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func percent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return round(float64(correct)*100/float64(total), 2)
}

// distinct returns the non-empty values in first-seen order.
func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func ComputeStats(base *knowledge.Base) Stats {
	examples := base.Training()
	intents := make([]string, len(examples))
	diseases := make([]string, len(examples))
	var sum float64
	for i, ex := range examples {
		intents[i] = ex.Intent
		diseases[i] = ex.Disease
		sum += ex.Confidence
	}

	s := Stats{
		TotalExamples:   len(examples),
		Intents:         distinct(intents),
		Diseases:        distinct(diseases),
		SymptomMappings: len(base.SymptomDiseases()),
	}
	s.TotalIntents = len(s.Intents)
	s.TotalDiseases = len(s.Diseases)
	if len(examples) > 0 {
		s.AvgConfidence = round(sum/float64(len(examples)), 3)
	}
	return s
}

func Validate(base *knowledge.Base) Validation {
	examples := base.Training()
	v := Validation{TotalExamples: len(examples)}

	for _, ex := range examples {
		id := ex.Input
		if len(id) > 30 {
			id = id[:30]
		}
		c := ExampleCheck{
			ID:                id + "...",
			HasInput:          ex.Input != "",
			HasOutput:         ex.Output != "",
			HasIntent:         ex.Intent != "",
			HasContext:        ex.Context != "",
			ConfidenceInRange: ex.Confidence >= 0 && ex.Confidence <= 1,
			InputLength:       len(ex.Input),
			OutputLength:      len(ex.Output),
		}
		c.Valid = c.HasInput && c.HasOutput && c.HasIntent && c.ConfidenceInRange
		if c.Valid {
			v.ValidExamples++
		}
		v.Details = append(v.Details, c)
	}

	v.InvalidExamples = v.TotalExamples - v.ValidExamples
	v.Score = percent(v.ValidExamples, v.TotalExamples)
	return v
}

type tally struct {
	order  []string
	counts map[string]*Accuracy
}

func newTally() *tally {
	return &tally{counts: make(map[string]*Accuracy)}
}

func (t *tally) add(label string, correct bool) {
	a, ok := t.counts[label]
	if !ok {
		a = &Accuracy{Label: label}
		t.counts[label] = a
		t.order = append(t.order, label)
	}
	a.Total++
	if correct {
		a.Correct++
	}
}

func (t *tally) list() []Accuracy {
	out := make([]Accuracy, 0, len(t.order))
	for _, label := range t.order {
		a := *t.counts[label]
		a.Accuracy = percent(a.Correct, a.Total)
		out = append(out, a)
	}
	return out
}

// Evaluate labels every example with c and scores the predictions.
// Examples tagged "general" are left out of the per-disease figures.
func Evaluate(ctx context.Context, c IntentClassifier, examples []DemoExample) (Metrics, error) {
	byIntent, byDisease := newTally(), newTally()
	var m Metrics

	for _, ex := range examples {
		if err := ctx.Err(); err != nil {
			return Metrics{}, err
		}
		predicted := c.Classify(nlp.Preprocess(ex.UserInput)).Label
		r := Result{
			ID:        ex.ID,
			Intent:    ex.Intent,
			Predicted: predicted,
			Disease:   ex.Disease,
			Correct:   predicted == ex.Intent,
		}
		m.Results = append(m.Results, r)
		if r.Correct {
			m.Correct++
		}
		byIntent.add(ex.Intent, r.Correct)
		if ex.Disease != "" && ex.Disease != "general" {
			byDisease.add(ex.Disease, r.Correct)
		}
	}

	m.TotalTests = len(examples)
	m.Accuracy = percent(m.Correct, m.TotalTests)
	m.ByIntent = byIntent.list()
	m.ByDisease = byDisease.list()
	return m, nil
}

// Recommend returns the improvements the dataset needs.
func Recommend(s Stats, v Validation) []Recommendation {
	recs := []Recommendation{}
	if s.AvgConfidence < MinAvgConfidence {
		recs = append(recs, Recommendation{"confidence", "Average confidence is below 85%. Consider reviewing and improving training examples.", "high"})
	}
	if v.Score < MinValidationScore {
		recs = append(recs, Recommendation{"validation", "Validation score is below 95%. Review invalid training examples.", "medium"})
	}
	if s.TotalExamples < MinExamples {
		recs = append(recs, Recommendation{"data_size", "Consider adding more training examples for better coverage.", "low"})
	}
	if s.TotalIntents < MinIntents {
		recs = append(recs, Recommendation{"intent_diversity", "Consider adding more intent categories for better understanding.", "medium"})
	}
	return recs
}

// BuildReport assembles the full training report.
func BuildReport(ctx context.Context, base *knowledge.Base, c IntentClassifier, now time.Time) (*Report, error) {
	stats := ComputeStats(base)
	validation := Validate(base)
	metrics, err := Evaluate(ctx, c, demoExamples)
	if err != nil {
		return nil, err
	}

	return &Report{
		Timestamp: now.UTC(),
		Summary: Summary{
			TotalExamples:   stats.TotalExamples,
			TotalIntents:    stats.TotalIntents,
			TotalDiseases:   stats.TotalDiseases,
			AvgConfidence:   stats.AvgConfidence,
			ValidationScore: validation.Score,
			EvalAccuracy:    metrics.Accuracy,
		},
		Stats:           stats,
		Validation:      validation,
		Evaluation:      metrics,
		Recommendations: Recommend(stats, validation),
	}, nil
}
