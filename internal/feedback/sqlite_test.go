package feedback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blood-disease-chatbot/internal/domain"
)

func TestNewSQLiteStore(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "feedback-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := NewSQLiteStore(dbPath)

	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")
	assert.Equal(t, dbPath, store.Path())
}

func TestSQLiteStore_Save(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	feedback := &Feedback{
		SessionID: "session-1",
		MessageID: "bot-1",
		Question:  "What are the symptoms of anemia?",
		Answer:    "**Anemia - Symptoms:**",
		Topic:     "anemia_symptoms",
		Rating:    RatingHelpful,
		Comment:   "Clear list",
	}

	err := store.Save(ctx, feedback)

	require.NoError(t, err)
	assert.NotZero(t, feedback.ID, "ID should be assigned")
	assert.False(t, feedback.CreatedAt.IsZero(), "CreatedAt should be set")
	assert.False(t, feedback.UpdatedAt.IsZero(), "UpdatedAt should be set")
}

func TestSQLiteStore_Save_Validation(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	tests := []struct {
		name  string
		fb    Feedback
		field string
	}{
		{"missing session", Feedback{MessageID: "m", Rating: RatingHelpful}, "session_id"},
		{"missing message", Feedback{SessionID: "s", Rating: RatingHelpful}, "message_id"},
		{"bad rating", Feedback{SessionID: "s", MessageID: "m", Rating: "meh"}, "rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Save(context.Background(), &tt.fb)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSQLiteStore_Save_Update(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	feedback := &Feedback{
		SessionID: "session-1",
		MessageID: "bot-1",
		Question:  "What causes diabetes?",
		Answer:    "**Diabetes - Causes:**",
		Rating:    RatingNotHelpful,
	}
	err := store.Save(ctx, feedback)
	require.NoError(t, err)
	originalID := feedback.ID

	feedback.Rating = RatingHelpful
	feedback.Comment = "Changed my mind"
	err = store.Save(ctx, feedback)
	require.NoError(t, err)

	assert.Equal(t, originalID, feedback.ID, "ID should remain the same")

	retrieved, err := store.Get(ctx, "session-1", "bot-1")
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Equal(t, RatingHelpful, retrieved.Rating)
	assert.Equal(t, "Changed my mind", retrieved.Comment)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSQLiteStore_Get_NotFound(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	retrieved, err := store.Get(context.Background(), "nope", "nope")
	assert.NoError(t, err)
	assert.Nil(t, retrieved)
}

func TestSQLiteStore_List_Pagination(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(ctx, &Feedback{
			SessionID: "session-1",
			MessageID: fmt.Sprintf("bot-%d", i),
			Rating:    RatingHelpful,
		}))
	}

	page1, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page3, err := store.List(ctx, 2, 4)
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	all, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	fb := &Feedback{SessionID: "s", MessageID: "m", Rating: RatingHelpful}
	require.NoError(t, store.Save(ctx, fb))

	require.NoError(t, store.Delete(ctx, fb.ID))

	retrieved, err := store.Get(ctx, "s", "m")
	assert.NoError(t, err)
	assert.Nil(t, retrieved)
}

func TestSQLiteStore_Summary(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	empty, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, empty)

	ratings := []Rating{RatingHelpful, RatingHelpful, RatingHelpful, RatingNotHelpful}
	for i, r := range ratings {
		require.NoError(t, store.Save(ctx, &Feedback{
			SessionID: "s",
			MessageID: fmt.Sprintf("m-%d", i),
			Rating:    r,
		}))
	}

	summary, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.Total)
	assert.Equal(t, int64(3), summary.Helpful)
	assert.Equal(t, int64(1), summary.NotHelpful)
	assert.InDelta(t, 0.75, summary.HelpfulRatio, 1e-9)
}

func TestSQLiteStore_ExportJSON(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	err := store.Save(ctx, &Feedback{
		SessionID: "session-42",
		MessageID: "bot-7",
		Question:  "How to prevent thalassemia?",
		Rating:    RatingNotHelpful,
		Comment:   "Too generic",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = store.ExportJSON(ctx, &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "session-42")
	assert.Contains(t, buf.String(), "Too generic")
	assert.Contains(t, buf.String(), `"version"`)
	assert.Contains(t, buf.String(), `"count": 1`)
}

func TestSQLiteStore_ImportJSON_SkipDuplicates(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	existing := &Feedback{SessionID: "s1", MessageID: "m1", Rating: RatingHelpful}
	require.NoError(t, store.Save(ctx, existing))

	jsonData := `{
		"version": "1.0",
		"count": 2,
		"feedback": [
			{"session_id": "s1", "message_id": "m1", "rating": "not_helpful"},
			{"session_id": "s2", "message_id": "m9", "rating": "helpful", "comment": "Great"}
		]
	}`

	imported, skipped, err := store.ImportJSON(ctx, bytes.NewReader([]byte(jsonData)))

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, skipped)

	first, _ := store.Get(ctx, "s1", "m1")
	require.NotNil(t, first)
	assert.Equal(t, RatingHelpful, first.Rating, "Existing should not be overwritten")

	second, _ := store.Get(ctx, "s2", "m9")
	require.NotNil(t, second)
	assert.Equal(t, "Great", second.Comment)
}

func TestSQLiteStore_ExportImportRoundTrip(t *testing.T) {
	src := createTestStore(t)
	defer src.Close()
	dst := createTestStore(t)
	defer dst.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, src.Save(ctx, &Feedback{
			SessionID: "s",
			MessageID: fmt.Sprintf("m-%d", i),
			Rating:    RatingHelpful,
		}))
	}

	var buf bytes.Buffer
	require.NoError(t, src.ExportJSON(ctx, &buf))

	imported, skipped, err := dst.ImportJSON(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, imported)
	assert.Zero(t, skipped)
}

// Helper function to create a test store
func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "feedback-test-*")
	require.NoError(t, err)

	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	return store
}
