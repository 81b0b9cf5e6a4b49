package prediction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/domain"
)

const selectColumns = `id::text, glucose, hemoglobin, platelets, cholesterol, white_blood_cells, hematocrit, disease, confidence, created_at`

// PostgresStore reads and writes the predictions table.
type PostgresStore struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewPostgresStore creates a prediction store over an open pool.
func NewPostgresStore(db *pgxpool.Pool, logger *logrus.Logger) *PostgresStore {
	return &PostgresStore{
		db:  db,
		log: logger,
	}
}

// All returns every prediction, oldest first.
func (r *PostgresStore) All(ctx context.Context) ([]domain.Prediction, error) {
	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` FROM predictions ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing predictions: %w", err)
	}
	return collect(rows)
}

// Recent returns up to limit predictions, newest first.
func (r *PostgresStore) Recent(ctx context.Context, limit int) ([]domain.Prediction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+selectColumns+` FROM predictions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent predictions: %w", err)
	}
	return collect(rows)
}

// DiseaseStats counts predictions per disease, most frequent first.
func (r *PostgresStore) DiseaseStats(ctx context.Context) ([]domain.DiseaseCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT disease, COUNT(*)
		FROM predictions
		GROUP BY disease
		ORDER BY COUNT(*) DESC, disease ASC`)
	if err != nil {
		return nil, fmt.Errorf("counting predictions: %w", err)
	}
	defer rows.Close()

	var out []domain.DiseaseCount
	for rows.Next() {
		var dc domain.DiseaseCount
		if err := rows.Scan(&dc.Disease, &dc.Count); err != nil {
			return nil, fmt.Errorf("scanning disease count: %w", err)
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

// Create inserts p, filling in the id when missing.
func (r *PostgresStore) Create(ctx context.Context, p *domain.Prediction) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `
		INSERT INTO predictions (
			id, glucose, hemoglobin, platelets, cholesterol, white_blood_cells,
			hematocrit, disease, confidence, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, NOW())
		)
		RETURNING created_at`

	var createdAt any
	if !p.CreatedAt.IsZero() {
		createdAt = p.CreatedAt
	}

	err := r.db.QueryRow(ctx, query,
		p.ID,
		p.Parameters.Glucose,
		p.Parameters.Hemoglobin,
		p.Parameters.Platelets,
		p.Parameters.Cholesterol,
		p.Parameters.WhiteBloodCells,
		p.Parameters.Hematocrit,
		p.Disease,
		p.Confidence,
		createdAt,
	).Scan(&p.CreatedAt)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"prediction_id": p.ID,
			"disease":       p.Disease,
			"error":         err,
		}).Error("Failed to create prediction")
		return fmt.Errorf("creating prediction: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"prediction_id": p.ID,
		"disease":       p.Disease,
	}).Debug("Prediction created")
	return nil
}

// Seed inserts the default predictions when the table is empty and reports
// how many rows were written.
func (r *PostgresStore) Seed(ctx context.Context, defaults []domain.Prediction) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting predictions: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, p := range defaults {
		batch.Queue(`
			INSERT INTO predictions (
				id, glucose, hemoglobin, platelets, cholesterol, white_blood_cells,
				hematocrit, disease, confidence, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Parameters.Glucose, p.Parameters.Hemoglobin, p.Parameters.Platelets,
			p.Parameters.Cholesterol, p.Parameters.WhiteBloodCells, p.Parameters.Hematocrit,
			p.Disease, p.Confidence, p.CreatedAt)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("seeding predictions: %w", err)
	}

	r.log.WithField("count", len(defaults)).Info("Seeded prediction history")
	return len(defaults), nil
}

func collect(rows pgx.Rows) ([]domain.Prediction, error) {
	defer rows.Close()

	var out []domain.Prediction
	for rows.Next() {
		var p domain.Prediction
		err := rows.Scan(
			&p.ID,
			&p.Parameters.Glucose,
			&p.Parameters.Hemoglobin,
			&p.Parameters.Platelets,
			&p.Parameters.Cholesterol,
			&p.Parameters.WhiteBloodCells,
			&p.Parameters.Hematocrit,
			&p.Disease,
			&p.Confidence,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning prediction: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating predictions: %w", err)
	}
	return out, nil
}
