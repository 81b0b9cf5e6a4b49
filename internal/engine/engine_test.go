package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/knowledge"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	base, err := knowledge.NewBase()
	require.NoError(t, err)
	e, err := New(base, opts...)
	require.NoError(t, err)
	return e
}

func categoryItems(d domain.DiseaseInfo, c domain.Category) []string {
	switch c {
	case domain.CategorySymptoms:
		return d.Symptoms
	case domain.CategoryCauses:
		return d.Causes
	case domain.CategoryTreatment:
		return d.Treatments
	case domain.CategoryPrevention:
		return d.Preventions
	case domain.CategoryComplications:
		return d.Complications
	}
	return nil
}

func assertInOrder(t *testing.T, text string, items []string) {
	t.Helper()
	pos := 0
	for _, item := range items {
		idx := strings.Index(text[pos:], item)
		if !assert.GreaterOrEqual(t, idx, 0, "missing or out of order: %q", item) {
			return
		}
		pos += idx + len(item)
	}
}

func TestWhatAreTheCategoryOfDisease(t *testing.T) {
	e := newTestEngine(t)

	for _, d := range e.Base().Diseases() {
		for _, c := range domain.DiseaseCategories {
			question := "What are the " + string(c) + " of " + strings.ToLower(d.Key) + "?"
			t.Run(question, func(t *testing.T) {
				ans, err := e.Answer(question)
				require.NoError(t, err)
				require.True(t, ans.Matched)
				assert.Equal(t, c, ans.Category)
				assertInOrder(t, ans.Text, categoryItems(d, c))
			})
		}
	}
}

func TestWhatCausesAnemia(t *testing.T) {
	e := newTestEngine(t)

	ans, err := e.Answer("What causes anemia?")
	require.NoError(t, err)

	assert.Equal(t, "anemia", ans.Analysis.Topic)
	assert.Equal(t, domain.CategoryCauses, ans.Category)
	assert.True(t, strings.HasPrefix(ans.Text, "**Anemia - Causes & Risk Factors**"))

	anemia, _ := e.Base().Disease("Anemia")
	assertInOrder(t, ans.Text, anemia.Causes)
	assert.Contains(t, ans.Text, "\n**Risk factors:**\n• Women of childbearing age\n")
	assert.True(t, strings.HasSuffix(ans.Text, causesDisclaimer))
}

func TestSymptomsOfDiabetes(t *testing.T) {
	e := newTestEngine(t)

	ans, err := e.Answer("symptoms of diabetes")
	require.NoError(t, err)

	diabetes, _ := e.Base().Disease("diabetes")
	assert.Equal(t, domain.CategorySymptoms, ans.Category)
	assertInOrder(t, ans.Text, diabetes.Symptoms)
	assert.True(t, strings.HasPrefix(ans.Text, "**Diabetes - Symptoms & Signs**\n\n"+diabetes.Description+"\n\n**Common symptoms include:**\n1. Excessive thirst (polydipsia)\n"))
}

func TestMisspelledQuestionStillMatches(t *testing.T) {
	e := newTestEngine(t)

	ans, err := e.Answer("what are the symtoms of aneamia")
	require.NoError(t, err)

	assert.Equal(t, "anemia_symptoms", ans.Topic)
	assert.True(t, strings.HasPrefix(ans.Text, "**Anemia - Symptoms & Signs**"))
}

func TestGenericFallback(t *testing.T) {
	e := newTestEngine(t)

	ans, err := e.Answer("xyzzy plugh")
	require.NoError(t, err)

	assert.False(t, ans.Matched)
	assert.Empty(t, ans.Analysis.Entities)
	assert.Equal(t, GenericFallback, ans.Text)
}

func TestEntityFallback(t *testing.T) {
	e := newTestEngine(t)

	a := Analysis{Entities: []string{"liver", "surgery"}}
	text := e.Fallback(a)

	assert.True(t, strings.HasPrefix(text, "I understand you're asking about liver, surgery. "))
	assert.Contains(t, text, "• Dashboard features and components\n")
}

func TestGeneralTemplate(t *testing.T) {
	e := newTestEngine(t)

	ans, err := e.Answer("Tell me about the blood test and blood work at the laboratory")
	require.NoError(t, err)
	require.True(t, ans.Matched)

	assert.Equal(t, "blood_tests", ans.Topic)
	expected := "**Medical Information - BLOOD TESTS**\n\n" +
		"**Types:**\n1. Complete Blood Count (CBC)\n2. Basic Metabolic Panel\n3. Lipid Panel\n4. Liver Function Tests\n\n" +
		"**Importance:** Blood tests help diagnose diseases, monitor health conditions, and guide treatment decisions.\n\n" +
		"**Frequency:** Regular blood tests are recommended annually for healthy adults, more frequently for those with chronic conditions.\n\n" +
		generalDisclaimer
	assert.Equal(t, expected, ans.Text)
}

func TestDashboardQuestion(t *testing.T) {
	e := newTestEngine(t)

	ans, err := e.Answer("How does the demo work? Can I try the prediction?")
	require.NoError(t, err)
	require.True(t, ans.Matched)

	assert.Equal(t, "demo_section", ans.Topic)
	assert.True(t, strings.HasPrefix(ans.Text, "**Medical Information - DEMO SECTION**\n\n**Topic:** Interactive Demo\n\n**Information:**\n1. "))
}

func TestAnalyzeConfidence(t *testing.T) {
	e := newTestEngine(t)

	a := e.Analyze("What causes anemia?")
	assert.Equal(t, "what", a.QuestionType)
	assert.True(t, a.PatternMatched)
	assert.Equal(t, []string{"anemia"}, a.Entities)
	// 0.5 base + 0.1 entity + 0.3 topic + 0.2 pattern, capped
	assert.Equal(t, 1.0, a.Confidence)

	a = e.Analyze("xyzzy plugh")
	assert.Equal(t, "general", a.QuestionType)
	assert.InDelta(t, 0.5, a.Confidence, 1e-9)
}

func TestScoreOrderingAndThreshold(t *testing.T) {
	e := newTestEngine(t)

	matches := e.Score(e.Analyze("What causes anemia?"))
	require.NotEmpty(t, matches)

	assert.Equal(t, "anemia_causes", matches[0].Entry.Topic)
	assert.InDelta(t, 1.4, matches[0].Score, 1e-9)
	assert.ElementsMatch(t, []string{"anemia", "causes"}, matches[0].KeywordHits)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
		assert.Greater(t, matches[i].Score, e.Weights().Threshold)
	}
}

func TestCustomWeights(t *testing.T) {
	e := newTestEngine(t, WithWeights(Weights{Keyword: 0.3, Topic: 0.5, QuestionType: 0.3, Threshold: 5}))

	ans, err := e.Answer("What causes anemia?")
	require.NoError(t, err)
	assert.False(t, ans.Matched)
	assert.True(t, strings.HasPrefix(ans.Text, "I understand you're asking about anemia."))

	_, err = New(e.Base(), WithWeights(Weights{Keyword: -1}))
	assert.Error(t, err)
}

func TestRenderOrphanEntry(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Render(Match{Entry: domain.KnowledgeEntry{
		Topic:    "leukemia_symptoms",
		Category: domain.CategorySymptoms,
		Disease:  "Leukemia",
	}})
	assert.Error(t, err)
}

func TestPreventionUsesLowerCaseName(t *testing.T) {
	e := newTestEngine(t)

	ans, err := e.Answer("What are the prevention of healthy?")
	require.NoError(t, err)
	assert.Contains(t, ans.Text, "**Healthy Blood Profile - Prevention Strategies**\n\n**To help prevent healthy blood profile, consider these strategies:**\n")
}
