// Package knowledge holds the static medical knowledge the chatbot answers from:
// the disease table, the knowledge entries derived from it, curated training
// examples and dashboard facts.
package knowledge

import (
	"fmt"
	"strings"

	"github.com/blood-disease-chatbot/internal/domain"
)

// Base is the immutable, validated knowledge set.
type Base struct {
	diseases []domain.DiseaseInfo
	byName   map[string]int
	entries  []domain.KnowledgeEntry
}

// NewBase builds the knowledge entries from the disease table and validates them.
func NewBase() (*Base, error) {
	return newBase(diseaseTable, nil)
}

func newBase(diseases []domain.DiseaseInfo, extra []domain.KnowledgeEntry) (*Base, error) {
	entries := buildDiseaseEntries(diseases)
	entries = append(entries, generalEntries...)
	entries = append(entries, dashboardEntries...)
	entries = append(entries, extra...)

	if err := Validate(entries, diseases); err != nil {
		return nil, fmt.Errorf("validating knowledge base: %w", err)
	}

	byName := make(map[string]int, len(diseases))
	for i, d := range diseases {
		byName[strings.ToLower(d.Key)] = i
	}

	return &Base{
		diseases: diseases,
		byName:   byName,
		entries:  entries,
	}, nil
}

// Disease looks a disease up by table key, ignoring case.
func (b *Base) Disease(name string) (*domain.DiseaseInfo, bool) {
	i, ok := b.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	d := b.diseases[i]
	return &d, true
}

// DiseaseKeys returns the lower-cased disease keys in table order.
func (b *Base) DiseaseKeys() []string {
	keys := make([]string, len(b.diseases))
	for i, d := range b.diseases {
		keys[i] = strings.ToLower(d.Key)
	}
	return keys
}

// Diseases returns the disease table in order.
func (b *Base) Diseases() []domain.DiseaseInfo {
	out := make([]domain.DiseaseInfo, len(b.diseases))
	copy(out, b.diseases)
	return out
}

// Entries returns the knowledge entries in declaration order.
func (b *Base) Entries() []domain.KnowledgeEntry {
	out := make([]domain.KnowledgeEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Training returns the curated training examples.
func (b *Base) Training() []domain.TrainingExample {
	out := make([]domain.TrainingExample, len(trainingExamples))
	copy(out, trainingExamples)
	return out
}

// SymptomDiseases returns the symptom to disease mapping in declaration order.
func (b *Base) SymptomDiseases() []SymptomDiseases {
	out := make([]SymptomDiseases, len(symptomDiseaseTable))
	copy(out, symptomDiseaseTable)
	return out
}

// Dashboard returns the static dashboard facts.
func (b *Base) Dashboard() Dashboard {
	return dashboardInfo
}
