// Package prediction stores the blood-test prediction history the chatbot
// quotes live statistics from.
package prediction

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blood-disease-chatbot/internal/domain"
)

type seed struct {
	params     domain.BloodParameters
	disease    string
	confidence float64
}

var seeds = []seed{
	{domain.BloodParameters{Glucose: 95, Hemoglobin: 13.5, Platelets: 250, Cholesterol: 180, WhiteBloodCells: 6.5, Hematocrit: 42}, "Healthy", 0.92},
	{domain.BloodParameters{Glucose: 140, Hemoglobin: 12.8, Platelets: 280, Cholesterol: 220, WhiteBloodCells: 7.2, Hematocrit: 40}, "Diabetes", 0.88},
	{domain.BloodParameters{Glucose: 85, Hemoglobin: 9.5, Platelets: 200, Cholesterol: 175, WhiteBloodCells: 5.8, Hematocrit: 35}, "Anemia", 0.85},
	{domain.BloodParameters{Glucose: 78, Hemoglobin: 8.2, Platelets: 180, Cholesterol: 160, WhiteBloodCells: 5.2, Hematocrit: 28}, "Thalassemia", 0.83},
	{domain.BloodParameters{Glucose: 105, Hemoglobin: 13.2, Platelets: 120, Cholesterol: 190, WhiteBloodCells: 6.8, Hematocrit: 41}, "Thrombocytopenia", 0.79},
	{domain.BloodParameters{Glucose: 88, Hemoglobin: 14.1, Platelets: 310, Cholesterol: 260, WhiteBloodCells: 7.5, Hematocrit: 43}, "Heart Disease", 0.81},
	{domain.BloodParameters{Glucose: 92, Hemoglobin: 13.8, Platelets: 240, Cholesterol: 165, WhiteBloodCells: 6.1, Hematocrit: 41}, "Healthy", 0.94},
	{domain.BloodParameters{Glucose: 155, Hemoglobin: 12.5, Platelets: 200, Cholesterol: 245, WhiteBloodCells: 8.1, Hematocrit: 38}, "Diabetes", 0.91},
	{domain.BloodParameters{Glucose: 82, Hemoglobin: 10.2, Platelets: 190, Cholesterol: 170, WhiteBloodCells: 5.5, Hematocrit: 36}, "Anemia", 0.87},
	{domain.BloodParameters{Glucose: 96, Hemoglobin: 13.6, Platelets: 270, Cholesterol: 185, WhiteBloodCells: 6.3, Hematocrit: 42}, "Healthy", 0.93},
}

// DefaultPredictions returns the ten seed predictions. The last one is the
// newest, created one hour before now; each earlier seed is an hour older.
func DefaultPredictions(now time.Time) []domain.Prediction {
	out := make([]domain.Prediction, len(seeds))
	for i, s := range seeds {
		out[i] = domain.Prediction{
			ID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("seed-prediction-%d", i+1))).String(),
			Parameters: s.params,
			Disease:    s.disease,
			Confidence: s.confidence,
			CreatedAt:  now.Add(-time.Duration(len(seeds)-i) * time.Hour).UTC(),
		}
	}
	return out
}

// MemoryStore keeps predictions in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	predictions []domain.Prediction
	now         func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// NewSeededMemoryStore creates a store holding DefaultPredictions(now).
func NewSeededMemoryStore(now time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.predictions = DefaultPredictions(now)
	return s
}

// All returns every prediction in insertion order.
func (s *MemoryStore) All(ctx context.Context) ([]domain.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Prediction, len(s.predictions))
	copy(out, s.predictions)
	return out, nil
}

// Recent returns up to limit predictions, newest first.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]domain.Prediction, error) {
	all, _ := s.All(ctx)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit >= 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// DiseaseStats counts predictions per disease, most frequent first.
func (s *MemoryStore) DiseaseStats(ctx context.Context) ([]domain.DiseaseCount, error) {
	s.mu.RLock()
	counts := make(map[string]int)
	for _, p := range s.predictions {
		counts[p.Disease]++
	}
	s.mu.RUnlock()

	out := make([]domain.DiseaseCount, 0, len(counts))
	for disease, n := range counts {
		out = append(out, domain.DiseaseCount{Disease: disease, Count: n})
	}
	sortCounts(out)
	return out, nil
}

// Create stores p, filling in the id and creation time when missing.
func (s *MemoryStore) Create(ctx context.Context, p *domain.Prediction) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now().UTC()
	}
	s.mu.Lock()
	s.predictions = append(s.predictions, *p)
	s.mu.Unlock()
	return nil
}

func validate(p *domain.Prediction) error {
	if p == nil {
		return domain.NewValidationError("prediction", "is required", nil)
	}
	if p.Disease == "" {
		return domain.NewValidationError("disease", "is required", p.Disease)
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return domain.NewValidationError("confidence", "must be between 0 and 1", p.Confidence)
	}
	return nil
}

func sortCounts(counts []domain.DiseaseCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Disease < counts[j].Disease
	})
}
