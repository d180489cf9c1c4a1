// Package database provides database operations for the subsidy advisor engine.
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"subsidy-advisor-engine/internal/models"
)

// RecommendationRepository handles recommendation database operations.
type RecommendationRepository struct {
	db *DB
}

// NewRecommendationRepository creates a new recommendation repository.
func NewRecommendationRepository(db *DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Create inserts a new recommendation into the database.
func (r *RecommendationRepository) Create(ctx context.Context, rec *models.RecommendationCreate) (int64, error) {
	reasonsJSON, warningsJSON, err := marshalAnnotations(rec)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO recommendations (
			company_id, program_id, match_score, status, reasons, warnings,
			estimated_amount, success_probability, batch_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (company_id, program_id) DO UPDATE SET
			match_score = EXCLUDED.match_score,
			status = EXCLUDED.status,
			reasons = EXCLUDED.reasons,
			warnings = EXCLUDED.warnings,
			estimated_amount = EXCLUDED.estimated_amount,
			success_probability = EXCLUDED.success_probability,
			batch_id = EXCLUDED.batch_id,
			updated_at = EXCLUDED.updated_at
		RETURNING id`

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		rec.CompanyID,
		rec.ProgramID,
		rec.MatchScore,
		string(rec.Status),
		reasonsJSON,
		warningsJSON,
		rec.EstimatedAmount,
		rec.SuccessProbability,
		rec.BatchID,
		time.Now().UTC(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create recommendation: %w", err)
	}

	return id, nil
}

// BulkInsert inserts multiple recommendations into the database.
func (r *RecommendationRepository) BulkInsert(ctx context.Context, recs []*models.RecommendationCreate) (int, int, error) {
	inserted := 0
	failed := 0

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		now := time.Now().UTC()

		for _, rec := range recs {
			reasonsJSON, warningsJSON, err := marshalAnnotations(rec)
			if err != nil {
				failed++
				continue
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO recommendations (
					company_id, program_id, match_score, status, reasons, warnings,
					estimated_amount, success_probability, batch_id, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
				ON CONFLICT (company_id, program_id) DO UPDATE SET
					match_score = EXCLUDED.match_score,
					status = EXCLUDED.status,
					reasons = EXCLUDED.reasons,
					warnings = EXCLUDED.warnings,
					estimated_amount = EXCLUDED.estimated_amount,
					success_probability = EXCLUDED.success_probability,
					batch_id = EXCLUDED.batch_id,
					updated_at = EXCLUDED.updated_at`,
				rec.CompanyID,
				rec.ProgramID,
				rec.MatchScore,
				string(rec.Status),
				reasonsJSON,
				warningsJSON,
				rec.EstimatedAmount,
				rec.SuccessProbability,
				rec.BatchID,
				now,
			)

			if err != nil {
				failed++
			} else {
				inserted++
			}
		}
		return nil
	})

	return inserted, failed, err
}

// GetByCompanyID retrieves all recommendations for a company, best first.
func (r *RecommendationRepository) GetByCompanyID(ctx context.Context, companyID int64) ([]*models.Recommendation, error) {
	query := `
		SELECT id, company_id, program_id, match_score, status, reasons, warnings,
			estimated_amount, success_probability, batch_id, created_at, updated_at, notified_at
		FROM recommendations
		WHERE company_id = $1
		ORDER BY match_score DESC`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []*models.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// GetPendingNotifications retrieves recommendations that have not been
// emailed yet, joined with company and program details.
func (r *RecommendationRepository) GetPendingNotifications(ctx context.Context, batchID string) ([]*models.RecommendationWithDetails, error) {
	query := `
		SELECT
			rec.id, rec.company_id, rec.program_id, rec.match_score, rec.status,
			rec.reasons, rec.warnings, rec.estimated_amount, rec.success_probability,
			rec.batch_id, rec.created_at, rec.updated_at, rec.notified_at,
			c.email as company_email, c.name as company_name,
			p.name as program_name, p.max_amount, p.subsidy_rate, p.application_period
		FROM recommendations rec
		JOIN companies c ON rec.company_id = c.id
		JOIN subsidy_programs p ON rec.program_id = p.id
		WHERE rec.status = 'recommended' AND rec.notified_at IS NULL`

	args := []interface{}{}
	if batchID != "" {
		query += " AND rec.batch_id = $1"
		args = append(args, batchID)
	}

	query += " ORDER BY rec.company_id, rec.match_score DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending notifications: %w", err)
	}
	defer rows.Close()

	var results []*models.RecommendationWithDetails
	for rows.Next() {
		var d models.RecommendationWithDetails
		var status, reasonsJSON, warningsJSON string

		err := rows.Scan(
			&d.ID, &d.CompanyID, &d.ProgramID, &d.MatchScore, &status,
			&reasonsJSON, &warningsJSON, &d.EstimatedAmount, &d.SuccessProbability,
			&d.BatchID, &d.CreatedAt, &d.UpdatedAt, &d.NotifiedAt,
			&d.CompanyEmail, &d.CompanyName,
			&d.ProgramName, &d.MaxAmount, &d.SubsidyRate, &d.ApplicationPeriod,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}

		d.Status = models.RecommendationStatus(status)
		if err := json.Unmarshal([]byte(reasonsJSON), &d.Reasons); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reasons: %w", err)
		}
		if err := json.Unmarshal([]byte(warningsJSON), &d.Warnings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal warnings: %w", err)
		}
		results = append(results, &d)
	}

	return results, nil
}

// MarkAsNotified marks a recommendation as notified.
func (r *RecommendationRepository) MarkAsNotified(ctx context.Context, recommendationID int64) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		"UPDATE recommendations SET status = 'notified', notified_at = $1, updated_at = $1 WHERE id = $2",
		now, recommendationID)
	return err
}

// CountByBatchID returns the number of recommendations in a batch.
func (r *RecommendationRepository) CountByBatchID(ctx context.Context, batchID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recommendations WHERE batch_id = $1", batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recommendations: %w", err)
	}
	return count, nil
}

// scanRecommendation scans a single row into a Recommendation.
func scanRecommendation(row pgx.Row) (*models.Recommendation, error) {
	var rec models.Recommendation
	var status, reasonsJSON, warningsJSON string

	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.ProgramID, &rec.MatchScore, &status,
		&reasonsJSON, &warningsJSON, &rec.EstimatedAmount, &rec.SuccessProbability,
		&rec.BatchID, &rec.CreatedAt, &rec.UpdatedAt, &rec.NotifiedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Status = models.RecommendationStatus(status)
	if err := json.Unmarshal([]byte(reasonsJSON), &rec.Reasons); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reasons: %w", err)
	}
	if err := json.Unmarshal([]byte(warningsJSON), &rec.Warnings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal warnings: %w", err)
	}

	return &rec, nil
}

// marshalAnnotations encodes the reasons and warnings lists for storage.
func marshalAnnotations(rec *models.RecommendationCreate) (string, string, error) {
	reasonsJSON, err := json.Marshal(rec.Reasons)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal reasons: %w", err)
	}
	warningsJSON, err := json.Marshal(rec.Warnings)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal warnings: %w", err)
	}
	return string(reasonsJSON), string(warningsJSON), nil
}
