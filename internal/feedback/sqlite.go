package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite feedback store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets readers proceed while a rating is being written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

const feedbackColumns = `id, session_id, message_id, question, answer, topic, rating, comment, created_at, updated_at`

// scanFeedback scans a row into a Feedback struct.
func scanFeedback(s scanner) (*Feedback, error) {
	fb := &Feedback{}
	var rating string

	err := s.Scan(
		&fb.ID, &fb.SessionID, &fb.MessageID, &fb.Question, &fb.Answer,
		&fb.Topic, &rating, &fb.Comment, &fb.CreatedAt, &fb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	fb.Rating = Rating(rating)
	return fb, nil
}

// createSchema creates the database tables and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS answer_feedback (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		message_id TEXT NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		rating TEXT NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(session_id, message_id)
	);

	CREATE INDEX IF NOT EXISTS idx_answer_feedback_rating ON answer_feedback(rating);
	CREATE INDEX IF NOT EXISTS idx_answer_feedback_created_at ON answer_feedback(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Save stores or updates the rating of a session message.
func (s *SQLiteStore) Save(ctx context.Context, feedback *Feedback) error {
	if err := feedback.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()

	var existingID int64
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx,
		"SELECT id, created_at FROM answer_feedback WHERE session_id = ? AND message_id = ?",
		feedback.SessionID, feedback.MessageID,
	).Scan(&existingID, &createdAt)

	if err == nil {
		feedback.ID = existingID
		feedback.CreatedAt = createdAt
		feedback.UpdatedAt = now

		_, err = s.db.ExecContext(ctx, `
			UPDATE answer_feedback SET
				question = ?,
				answer = ?,
				topic = ?,
				rating = ?,
				comment = ?,
				updated_at = ?
			WHERE id = ?
		`,
			feedback.Question,
			feedback.Answer,
			feedback.Topic,
			string(feedback.Rating),
			feedback.Comment,
			now,
			existingID,
		)
		if err != nil {
			return fmt.Errorf("failed to update: %w", err)
		}
		return nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check existing: %w", err)
	}

	feedback.CreatedAt = now
	feedback.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO answer_feedback (
			session_id, message_id, question, answer, topic,
			rating, comment, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		feedback.SessionID,
		feedback.MessageID,
		feedback.Question,
		feedback.Answer,
		feedback.Topic,
		string(feedback.Rating),
		feedback.Comment,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert ID: %w", err)
	}
	feedback.ID = id

	return nil
}

// Get retrieves the feedback for a session message.
func (s *SQLiteStore) Get(ctx context.Context, sessionID, messageID string) (*Feedback, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+feedbackColumns+`
		FROM answer_feedback
		WHERE session_id = ? AND message_id = ?
		LIMIT 1
	`, sessionID, messageID)

	fb, err := scanFeedback(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return fb, nil
}

// List returns feedback entries with pagination.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+feedbackColumns+`
		FROM answer_feedback
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var result []*Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}

// Count returns the total number of feedback entries.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM answer_feedback").Scan(&count)
	return count, err
}

// Delete removes a feedback entry by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM answer_feedback WHERE id = ?", id)
	return err
}

// Summary counts entries per rating.
func (s *SQLiteStore) Summary(ctx context.Context) (Summary, error) {
	return summarize(ctx, s.db, "SELECT rating, COUNT(*) FROM answer_feedback GROUP BY rating")
}

// ExportJSON exports all feedback to a JSON writer.
func (s *SQLiteStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	return exportJSON(ctx, s, writer)
}

// ImportJSON imports feedback from a JSON reader.
func (s *SQLiteStore) ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error) {
	return importJSON(ctx, s, reader)
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func summarize(ctx context.Context, db *sql.DB, query string) (Summary, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to summarize feedback: %w", err)
	}
	defer rows.Close()

	var helpful, notHelpful int64
	for rows.Next() {
		var rating string
		var n int64
		if err := rows.Scan(&rating, &n); err != nil {
			return Summary{}, fmt.Errorf("failed to scan summary row: %w", err)
		}
		switch Rating(rating) {
		case RatingHelpful:
			helpful = n
		case RatingNotHelpful:
			notHelpful = n
		}
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}
	return newSummary(helpful, notHelpful), nil
}
