package training

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blood-disease-chatbot/internal/classifier"
	"github.com/blood-disease-chatbot/internal/knowledge"
)

func newBase(t *testing.T) *knowledge.Base {
	t.Helper()
	base, err := knowledge.NewBase()
	require.NoError(t, err)
	return base
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(newBase(t))

	assert.Equal(t, 20, s.TotalExamples)
	assert.Equal(t, 14, s.TotalIntents)
	assert.Equal(t, 6, s.TotalDiseases)
	assert.InDelta(t, 0.935, s.AvgConfidence, 1e-9)
	assert.Equal(t, 18, s.SymptomMappings)
	assert.Equal(t, "symptom_inquiry", s.Intents[0])
}

func TestValidateDataset(t *testing.T) {
	v := Validate(newBase(t))

	assert.Equal(t, 20, v.TotalExamples)
	assert.Equal(t, 20, v.ValidExamples)
	assert.Equal(t, 0, v.InvalidExamples)
	assert.Equal(t, 100.0, v.Score)
	require.Len(t, v.Details, 20)
	assert.Equal(t, "I've been feeling very tired l...", v.Details[0].ID)
}

func TestEvaluateDemoExamples(t *testing.T) {
	m, err := Evaluate(context.Background(), classifier.NewIntentClassifier(), DemoExamples())
	require.NoError(t, err)

	assert.Equal(t, 5, m.TotalTests)
	assert.Equal(t, 3, m.Correct)
	assert.Equal(t, 60.0, m.Accuracy)

	require.Len(t, m.ByIntent, 4)
	assert.Equal(t, Accuracy{Label: "symptom_inquiry", Accuracy: 50, Correct: 1, Total: 2}, m.ByIntent[0])
	assert.Equal(t, Accuracy{Label: "emotional_support", Accuracy: 0, Correct: 0, Total: 1}, m.ByIntent[3])

	require.Len(t, m.ByDisease, 4, "general is not a disease")
	assert.Equal(t, "thrombocytopenia", m.ByDisease[1].Label)
	assert.Equal(t, 0.0, m.ByDisease[1].Accuracy)

	assert.Equal(t, "test_information", m.Results[4].Predicted)
}

func TestEvaluateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Evaluate(ctx, classifier.NewIntentClassifier(), DemoExamples())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name     string
		stats    Stats
		score    float64
		expected []string
	}{
		{"healthy dataset", Stats{AvgConfidence: 0.9, TotalExamples: 60, TotalIntents: 9}, 100, nil},
		{"everything low", Stats{AvgConfidence: 0.5, TotalExamples: 10, TotalIntents: 3}, 80, []string{"confidence", "validation", "data_size", "intent_diversity"}},
		{"small dataset", Stats{AvgConfidence: 0.9, TotalExamples: 49, TotalIntents: 8}, 95, []string{"data_size"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var types []string
			for _, r := range Recommend(tt.stats, Validation{Score: tt.score}) {
				types = append(types, r.Type)
			}
			assert.Equal(t, tt.expected, types)
		})
	}
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	r, err := BuildReport(context.Background(), newBase(t), classifier.NewIntentClassifier(), now)
	require.NoError(t, err)

	assert.Equal(t, now, r.Timestamp)
	assert.Equal(t, 20, r.Summary.TotalExamples)
	assert.Equal(t, 100.0, r.Summary.ValidationScore)
	assert.Equal(t, 60.0, r.Summary.EvalAccuracy)
	require.Len(t, r.Recommendations, 1)
	assert.Equal(t, "data_size", r.Recommendations[0].Type)
}
