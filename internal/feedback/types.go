// Package feedback stores user ratings of chatbot answers so weak answers
// can be found and improved.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/blood-disease-chatbot/internal/domain"
)

// Rating is a user's verdict on one bot answer.
type Rating string

const (
	RatingHelpful    Rating = "helpful"
	RatingNotHelpful Rating = "not_helpful"
)

// Valid reports whether r is a known rating.
func (r Rating) Valid() bool {
	return r == RatingHelpful || r == RatingNotHelpful
}

// Feedback represents a user's rating of a bot answer.
type Feedback struct {
	ID        int64     `json:"id,omitempty"`
	SessionID string    `json:"session_id"`
	MessageID string    `json:"message_id"`      // Bot message being rated
	Question  string    `json:"question"`        // User message the answer replied to
	Answer    string    `json:"answer"`
	Topic     string    `json:"topic,omitempty"` // Knowledge entry that produced the answer
	Rating    Rating    `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the fields every store requires.
func (f *Feedback) Validate() error {
	if f.SessionID == "" {
		return domain.NewValidationError("session_id", "is required", f.SessionID)
	}
	if f.MessageID == "" {
		return domain.NewValidationError("message_id", "is required", f.MessageID)
	}
	if !f.Rating.Valid() {
		return domain.NewValidationError("rating", "must be helpful or not_helpful", string(f.Rating))
	}
	return nil
}

// Summary aggregates ratings across all stored feedback.
type Summary struct {
	Total        int64   `json:"total"`
	Helpful      int64   `json:"helpful"`
	NotHelpful   int64   `json:"not_helpful"`
	HelpfulRatio float64 `json:"helpful_ratio"`
}

func newSummary(helpful, notHelpful int64) Summary {
	s := Summary{
		Total:      helpful + notHelpful,
		Helpful:    helpful,
		NotHelpful: notHelpful,
	}
	if s.Total > 0 {
		s.HelpfulRatio = float64(helpful) / float64(s.Total)
	}
	return s
}

// Store defines the interface for feedback storage operations.
type Store interface {
	// Save stores or updates feedback. A second rating of the same
	// session message replaces the first.
	Save(ctx context.Context, feedback *Feedback) error

	// Get retrieves the feedback for a session message, or nil when none exists.
	Get(ctx context.Context, sessionID, messageID string) (*Feedback, error)

	// List returns feedback entries, newest first, with pagination.
	List(ctx context.Context, limit, offset int) ([]*Feedback, error)

	// Count returns the total number of feedback entries.
	Count(ctx context.Context) (int64, error)

	// Delete removes a feedback entry by ID.
	Delete(ctx context.Context, id int64) error

	// Summary counts entries per rating.
	Summary(ctx context.Context) (Summary, error)

	// ExportJSON exports all feedback to a JSON writer.
	ExportJSON(ctx context.Context, writer io.Writer) error

	// ImportJSON imports feedback from a JSON reader.
	// Returns the number of imported and skipped entries.
	ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error)

	// Close closes the store and releases resources.
	Close() error
}

// FeedbackExport represents the JSON export format.
type FeedbackExport struct {
	Version    string      `json:"version"`
	ExportedAt time.Time   `json:"exported_at"`
	Count      int         `json:"count"`
	Feedback   []*Feedback `json:"feedback"`
}

// maxExportLimit is the maximum number of entries to export at once.
const maxExportLimit = 1000000

type lister interface {
	List(ctx context.Context, limit, offset int) ([]*Feedback, error)
}

func exportJSON(ctx context.Context, store lister, writer io.Writer) error {
	all, err := store.List(ctx, maxExportLimit, 0)
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}

	export := &FeedbackExport{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Count:      len(all),
		Feedback:   all,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

func importJSON(ctx context.Context, store Store, reader io.Reader) (imported int, skipped int, err error) {
	var export FeedbackExport
	if err := json.NewDecoder(reader).Decode(&export); err != nil {
		return 0, 0, fmt.Errorf("failed to decode JSON: %w", err)
	}

	for _, fb := range export.Feedback {
		existing, err := store.Get(ctx, fb.SessionID, fb.MessageID)
		if err != nil {
			return imported, skipped, fmt.Errorf("failed to check existing: %w", err)
		}
		if existing != nil {
			skipped++
			continue
		}

		if err := store.Save(ctx, fb); err != nil {
			return imported, skipped, fmt.Errorf("failed to save: %w", err)
		}
		imported++
	}

	return imported, skipped, nil
}
