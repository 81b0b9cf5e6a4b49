package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionTypes(t *testing.T) {
	c := NewQuestionClassifier()

	tests := []struct {
		text string
		want string
	}{
		{"what causes anemia", QuestionWhat},
		{"what are the symptoms of diabetes", QuestionWhat},
		{"how is diabetes treated", QuestionHow},
		{"how to prevent anemia", QuestionHow},
		{"why does anemia happen", QuestionWhy},
		{"when should i see a doctor", QuestionWhen},
		{"can you help me", QuestionCan},
		{"tell me about thalassemia", QuestionTellMe},
		{"explain the dashboard", QuestionTellMe},
		{"anemia causes", QuestionCauses},
		{"causes of heart disease", QuestionCauses},
		{"symptoms of diabetes", QuestionGeneral},
		{"xyzzy plugh", QuestionGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text).Label)
		})
	}
}

func TestQuestionPriorityBeatsLaterTypes(t *testing.T) {
	c := NewQuestionClassifier()

	// matches both "what" and "causes" patterns
	res := c.Classify("what are the causes")
	assert.Equal(t, QuestionWhat, res.Label)
	assert.True(t, res.Matched)
	assert.Equal(t, 70, res.Priority)
}

func TestIntents(t *testing.T) {
	c := NewIntentClassifier()

	tests := []struct {
		text string
		want string
	}{
		{"i have a headache", IntentSymptomInquiry},
		{"what is the cure", IntentTreatmentInformation},
		{"how do i avoid it", IntentPreventionInformation},
		{"do i need a blood test", IntentTestInformation},
		{"this is an emergency", IntentEmergencyResponse},
		{"i am scared", IntentEmotionalSupport},
		{"what should i eat", IntentLifestyleCounseling},
		{"hello there", IntentGeneralInquiry},
		// symptom phrases outrank treatment phrases
		{"i feel the treatment is not working", IntentSymptomInquiry},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text).Label)
		})
	}
}

func TestExplicitPriorityOrdersRules(t *testing.T) {
	c, err := New([]Rule{
		{Pattern: "blood", Label: "low", Priority: 1},
		{Pattern: "blood", Label: "high", Priority: 9},
		{Pattern: "blood", Label: "high-second", Priority: 9},
	}, "none")
	require.NoError(t, err)

	assert.Equal(t, "high", c.Classify("blood test").Label)
	assert.Equal(t, "none", c.Classify("urine test").Label)
	assert.False(t, c.Matches("urine test"))
	assert.Equal(t, []string{"high", "high-second", "low"}, c.Labels())
}

func TestNewRejectsBadRules(t *testing.T) {
	_, err := New([]Rule{{Pattern: "(", Label: "x"}}, "none")
	assert.Error(t, err)

	_, err = New([]Rule{{Pattern: "a"}}, "none")
	assert.Error(t, err)
}

func TestPhrasesAreLiteral(t *testing.T) {
	c, err := New(phrases("lit", 1, "a.b"), "none")
	require.NoError(t, err)

	assert.Equal(t, "lit", c.Classify("xa.bx").Label)
	assert.Equal(t, "none", c.Classify("axb").Label)
}
