package prediction

import (
	"context"
	"fmt"
	"math"

	"github.com/blood-disease-chatbot/internal/domain"
)

// RecentLimit is how many predictions a Summary carries.
const RecentLimit = 5

// Summary is the live prediction snapshot quoted by chatbot answers.
type Summary struct {
	Total         int                   `json:"total_predictions"`
	AvgConfidence float64               `json:"avg_confidence"`
	ActiveCases   int                   `json:"active_cases"`
	TestSamples   int                   `json:"test_samples"`
	Recent        []domain.Prediction   `json:"recent_predictions"`
	Distribution  []domain.DiseaseCount `json:"disease_distribution"`
}

// Percent returns the share of all predictions held by c, rounded to a whole percent.
func (s Summary) Percent(c domain.DiseaseCount) int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(c.Count) * 100 / float64(s.Total)))
}

// Summarize reads store and computes the totals. Average confidence is
// rounded to two decimals, active cases are 30% and test samples 20% of
// the total.
func Summarize(ctx context.Context, store domain.PredictionStore) (Summary, error) {
	all, err := store.All(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("loading predictions: %w", err)
	}
	recent, err := store.Recent(ctx, RecentLimit)
	if err != nil {
		return Summary{}, fmt.Errorf("loading recent predictions: %w", err)
	}
	dist, err := store.DiseaseStats(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("loading disease stats: %w", err)
	}

	s := Summary{
		Total:        len(all),
		ActiveCases:  len(all) * 3 / 10,
		TestSamples:  len(all) * 2 / 10,
		Recent:       recent,
		Distribution: dist,
	}
	if len(all) > 0 {
		var sum float64
		for _, p := range all {
			sum += p.Confidence
		}
		s.AvgConfidence = math.Round(sum/float64(len(all))*100) / 100
	}
	return s, nil
}
