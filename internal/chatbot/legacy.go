package chatbot

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/classifier"
	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/knowledge"
	"github.com/blood-disease-chatbot/internal/nlp"
	"github.com/blood-disease-chatbot/internal/prediction"
)

const trainingThreshold = 0.8

// liveData is what the dynamic keyword buckets interpolate.
type liveData struct {
	summary   prediction.Summary
	dashboard knowledge.Dashboard
}

type bucket struct {
	keywords []string
	render   func(liveData) []string
	pattern  *regexp.Regexp
}

func staticBucket(keywords []string, responses ...string) bucket {
	return bucket{keywords: keywords, render: func(liveData) []string { return responses }}
}

type trainingRef struct {
	input  string
	output string
}

type diseasePattern struct {
	pattern *regexp.Regexp
	key     string
}

// legacyMatcher is the rule chain that runs when the knowledge engine finds nothing.
type legacyMatcher struct {
	base        *knowledge.Base
	intents     *classifier.Classifier
	training    []trainingRef
	symptoms    map[string][]string
	diseases    []diseasePattern
	buckets     []bucket
	predictions domain.PredictionStore
	chooser     Chooser
	logger      *logrus.Logger
}

func newLegacyMatcher(base *knowledge.Base, predictions domain.PredictionStore, chooser Chooser, logger *logrus.Logger) *legacyMatcher {
	m := &legacyMatcher{
		base:        base,
		intents:     classifier.NewIntentClassifier(),
		symptoms:    make(map[string][]string),
		predictions: predictions,
		chooser:     chooser,
		logger:      logger,
	}

	for _, ex := range base.Training() {
		m.training = append(m.training, trainingRef{input: nlp.Preprocess(ex.Input), output: ex.Output})
	}
	for _, sd := range base.SymptomDiseases() {
		m.symptoms[sd.Symptom] = sd.Diseases
	}

	aliases := []struct{ word, key string }{
		{"diabetes", "diabetes"},
		{"anemia", "anemia"},
		{"thrombocytopenia", "thrombocytopenia"},
		{"thalassemia", "thalassemia"},
		{"heart disease", "heart disease"},
		{"heart", "heart disease"},
		{"cardiac", "heart disease"},
	}
	for _, a := range aliases {
		m.diseases = append(m.diseases, diseasePattern{
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(a.word) + `\b`),
			key:     a.key,
		})
	}

	m.buckets = make([]bucket, len(staticBuckets))
	for i, b := range staticBuckets {
		quoted := make([]string, len(b.keywords))
		for j, k := range b.keywords {
			quoted[j] = regexp.QuoteMeta(k)
		}
		b.pattern = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
		m.buckets[i] = b
	}
	return m
}

// respond returns the first legacy answer for text, or false when every step misses.
func (m *legacyMatcher) respond(ctx context.Context, text string) (Reply, bool) {
	processed := nlp.Preprocess(text)
	if processed == "" {
		return Reply{}, false
	}

	if out, ok := m.matchTraining(processed); ok {
		return Reply{Text: out, Source: SourceTraining}, true
	}
	if out, topic, ok := m.matchSymptom(processed); ok {
		return Reply{Text: out, Source: SourceSymptom, Topic: topic}, true
	}
	if out, topic, ok := m.matchDisease(text); ok {
		return Reply{Text: out, Source: SourceDisease, Topic: topic}, true
	}
	if out, ok := m.intentResponse(processed); ok {
		return Reply{Text: out, Source: SourceIntent}, true
	}
	if out, ok := m.keywordResponse(ctx, processed); ok {
		return Reply{Text: out, Source: SourceKeyword}, true
	}
	return Reply{}, false
}

func (m *legacyMatcher) matchTraining(processed string) (string, bool) {
	for _, ex := range m.training {
		if nlp.Similarity(processed, ex.input) > trainingThreshold {
			return ex.output, true
		}
	}
	return "", false
}

// matchSymptom looks for the longest symptom phrase at each word position.
// Multi-word symptoms are keyed with underscores.
func (m *legacyMatcher) matchSymptom(processed string) (string, string, bool) {
	words := strings.Fields(processed)
	for i := range words {
		for n := 3; n >= 1; n-- {
			if i+n > len(words) {
				continue
			}
			phrase := strings.Join(words[i:i+n], "_")
			for _, key := range []string{phrase, strings.TrimSuffix(phrase, "s"), phrase + "s"} {
				if diseases, ok := m.symptoms[key]; ok {
					return renderSymptom(key, diseases), key, true
				}
			}
		}
	}
	return "", "", false
}

func renderSymptom(key string, diseases []string) string {
	symptom := strings.ReplaceAll(key, "_", " ")
	var b strings.Builder
	fmt.Fprintf(&b, "**Medical Information - %s Symptom:**\n\n", capitalize(symptom))
	fmt.Fprintf(&b, "The symptom \"%s\" can be associated with several conditions including:\n\n", symptom)
	for i, d := range diseases {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• " + strings.ReplaceAll(d, "_", " "))
	}
	b.WriteString("\n\nThis symptom should be evaluated by a healthcare provider for proper diagnosis and treatment. Can you tell me more about when this symptom started and any other symptoms you're experiencing?\n\nWould you like more information about any of these specific conditions?")
	return b.String()
}

// matchDisease picks the disease mentioned earliest in text and answers the aspect asked about.
func (m *legacyMatcher) matchDisease(text string) (string, string, bool) {
	normalized := nlp.Normalize(text)
	best, at := "", -1
	for _, d := range m.diseases {
		loc := d.pattern.FindStringIndex(normalized)
		if loc == nil {
			continue
		}
		if at == -1 || loc[0] < at {
			best, at = d.key, loc[0]
		}
	}
	if best == "" {
		return "", "", false
	}

	info, ok := m.base.Disease(best)
	if !ok {
		m.logger.WithField("disease", best).Warn("Legacy disease match has no table entry")
		return "", "", false
	}
	return renderDiseaseAspect(info, strings.ToLower(text)), info.Key, true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func bullets(items []string, limit int) string {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "• " + it
	}
	return strings.Join(lines, "\n")
}

func renderDiseaseAspect(d *domain.DiseaseInfo, lower string) string {
	name := d.Name
	lname := strings.ToLower(name)

	switch {
	case containsAny(lower, "symptom", "sign"):
		return fmt.Sprintf("**%s - Symptoms:**\n\nThe common symptoms of %s include:\n\n%s\n\nIf you're experiencing any of these symptoms, I recommend consulting with a healthcare provider for proper evaluation. Would you like to know about treatments or prevention strategies?",
			name, lname, bullets(d.Symptoms, 0))
	case containsAny(lower, "cause", "reason"):
		return fmt.Sprintf("**%s - Causes:**\n\nThe main causes of %s include:\n\n%s\n\nUnderstanding the causes can help with prevention and treatment planning. Would you like to know more about treatments or prevention strategies?",
			name, lname, bullets(d.Causes, 0))
	case containsAny(lower, "treatment", "cure", "medicine"):
		return fmt.Sprintf("**%s - Treatments:**\n\nTreatment options for %s include:\n\n%s\n\nTreatment plans are individualized based on severity and other factors. Always consult with your healthcare provider before starting any treatment. Would you like to know about prevention strategies?",
			name, lname, bullets(d.Treatments, 0))
	case containsAny(lower, "prevention", "prevent", "avoid"):
		return fmt.Sprintf("**%s - Prevention:**\n\nTo help prevent %s, consider these strategies:\n\n%s\n\nPrevention is often the best approach to maintaining good health. Would you like to know more about symptoms or treatments?",
			name, lname, bullets(d.Preventions, 0))
	}

	return fmt.Sprintf("**%s - Complete Information:**\n\n**Description:** %s\n\n**Common Symptoms:**\n%s\n\n**Main Causes:**\n%s\n\n**Treatment Options:**\n%s\n\nWould you like more detailed information about any specific aspect of %s?",
		name, d.Description, bullets(d.Symptoms, 4), bullets(d.Causes, 3), bullets(d.Treatments, 3), lname)
}

func (m *legacyMatcher) intentResponse(processed string) (string, bool) {
	variants, ok := intentResponses[m.intents.Classify(processed).Label]
	if !ok {
		return "", false
	}
	return variants[m.chooser.Choose(len(variants))], true
}

func (m *legacyMatcher) keywordResponse(ctx context.Context, processed string) (string, bool) {
	var data *liveData
	for _, b := range m.buckets {
		if !b.pattern.MatchString(processed) {
			continue
		}
		if data == nil {
			d := m.live(ctx)
			data = &d
		}
		variants := b.render(*data)
		return variants[m.chooser.Choose(len(variants))], true
	}
	return "", false
}

// live loads the prediction summary. Failures degrade to zero values.
func (m *legacyMatcher) live(ctx context.Context) liveData {
	data := liveData{dashboard: m.base.Dashboard()}
	if m.predictions == nil {
		return data
	}
	s, err := prediction.Summarize(ctx, m.predictions)
	if err != nil {
		m.logger.WithError(err).Warn("Prediction summary unavailable, answering with empty figures")
		return data
	}
	data.summary = s
	return data
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatConfidence(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func totalResponses(d liveData) []string {
	s := d.summary
	avg := formatConfidence(s.AvgConfidence)
	acc := d.dashboard.ModelAccuracy
	return []string{
		fmt.Sprintf("Currently, we have %d total predictions in our system with an average confidence of %s and model accuracy of %s.", s.Total, avg, acc),
		fmt.Sprintf("Our dashboard shows %d total predictions with %d active cases. The model accuracy is %s, which is above our target of 98.55%%.", s.Total, s.ActiveCases, acc),
		fmt.Sprintf("We've made %d predictions so far with an average confidence level of %s. Our system is performing above the target accuracy with %s accuracy.", s.Total, avg, acc),
	}
}

func displayResponses(d liveData) []string {
	s := d.summary
	acc := d.dashboard.ModelAccuracy

	recent := make([]string, 0, len(s.Recent))
	names := make([]string, 0, 3)
	for i, p := range s.Recent {
		recent = append(recent, fmt.Sprintf("%s (%s confidence)", p.Disease, formatConfidence(p.Confidence)))
		if i < 3 {
			names = append(names, p.Disease)
		}
	}
	dist := make([]string, 0, len(s.Distribution))
	for _, c := range s.Distribution {
		dist = append(dist, fmt.Sprintf("%s: %d%%", c.Disease, s.Percent(c)))
	}

	return []string{
		fmt.Sprintf("Here are the latest predictions: %s. The total number of predictions is %d with an average confidence of %s.", strings.Join(recent, ", "), s.Total, formatConfidence(s.AvgConfidence)),
		fmt.Sprintf("Current disease distribution: %s. We have %d total predictions with %s model accuracy.", strings.Join(dist, ", "), s.Total, acc),
		fmt.Sprintf("Here's the data you requested: We have %d total predictions with %s accuracy. Recent predictions include %s, and more.", s.Total, acc, strings.Join(names, ", ")),
	}
}

func teamResponses(d liveData) []string {
	member := func(i int) knowledge.TeamMember {
		if i < len(d.dashboard.Team) {
			return d.dashboard.Team[i]
		}
		return knowledge.TeamMember{}
	}
	a, b, c := member(0), member(1), member(2)
	return []string{
		fmt.Sprintf("CodeNomads is our team of AI researchers dedicated to advancing healthcare through technology. The team includes %s (%s), %s (%s), and %s (%s).", a.Name, a.Role, b.Name, b.Role, c.Name, c.Role),
		fmt.Sprintf("Our team CodeNomads consists of three members: %s, who specializes in medical domain feature engineering; %s, an expert in data analysis; and %s, who specializes in feature engineering and model validation.", a.Name, b.Name, c.Name),
		fmt.Sprintf("CodeNomads is a team of passionate AI researchers working on blood disease prediction technology. The team includes %s, %s, and %s.", a.Name, b.Name, c.Name),
	}
}
