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

// ProgramRepository handles subsidy program database operations.
type ProgramRepository struct {
	db *DB
}

// NewProgramRepository creates a new program repository.
func NewProgramRepository(db *DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// Upsert inserts or updates a subsidy program. List and map fields are
// stored as JSON columns.
func (r *ProgramRepository) Upsert(ctx context.Context, program *models.SubsidyProgram) error {
	expensesJSON, err := json.Marshal(program.EligibleExpenses)
	if err != nil {
		return fmt.Errorf("failed to marshal eligible expenses: %w", err)
	}
	requirementsJSON, err := json.Marshal(program.Requirements)
	if err != nil {
		return fmt.Errorf("failed to marshal requirements: %w", err)
	}
	criteriaJSON, err := json.Marshal(program.EvaluationCriteria)
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation criteria: %w", err)
	}
	documentsJSON, err := json.Marshal(program.RequiredDocuments)
	if err != nil {
		return fmt.Errorf("failed to marshal required documents: %w", err)
	}
	tipsJSON, err := json.Marshal(program.Tips)
	if err != nil {
		return fmt.Errorf("failed to marshal tips: %w", err)
	}
	sectionsJSON, err := json.Marshal(program.DocumentSections)
	if err != nil {
		return fmt.Errorf("failed to marshal document sections: %w", err)
	}
	affinityJSON, err := json.Marshal(program.IndustryAffinity)
	if err != nil {
		return fmt.Errorf("failed to marshal industry affinity: %w", err)
	}

	query := `
		INSERT INTO subsidy_programs (
			id, name, category, description, max_amount, subsidy_rate,
			eligible_expenses, requirements, application_period, evaluation_criteria,
			required_documents, tips, success_rate, document_sections, industry_affinity,
			created_at, updated_at, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			max_amount = EXCLUDED.max_amount,
			subsidy_rate = EXCLUDED.subsidy_rate,
			eligible_expenses = EXCLUDED.eligible_expenses,
			requirements = EXCLUDED.requirements,
			application_period = EXCLUDED.application_period,
			evaluation_criteria = EXCLUDED.evaluation_criteria,
			required_documents = EXCLUDED.required_documents,
			tips = EXCLUDED.tips,
			success_rate = EXCLUDED.success_rate,
			document_sections = EXCLUDED.document_sections,
			industry_affinity = EXCLUDED.industry_affinity,
			updated_at = EXCLUDED.updated_at,
			is_active = EXCLUDED.is_active`

	_, err = r.db.ExecContext(ctx, query,
		program.ID,
		program.Name,
		string(program.Category),
		program.Description,
		program.MaxAmount,
		program.SubsidyRate,
		string(expensesJSON),
		string(requirementsJSON),
		program.ApplicationPeriod,
		string(criteriaJSON),
		string(documentsJSON),
		string(tipsJSON),
		program.SuccessRate,
		string(sectionsJSON),
		string(affinityJSON),
		time.Now().UTC(),
		program.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subsidy program: %w", err)
	}

	return nil
}

// SeedPrograms upserts all the given programs, typically the built-in
// catalog during initialization.
func (r *ProgramRepository) SeedPrograms(ctx context.Context, programs []*models.SubsidyProgram) (int, error) {
	seeded := 0
	for _, program := range programs {
		if err := r.Upsert(ctx, program); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}

// GetByID retrieves a subsidy program by its ID.
func (r *ProgramRepository) GetByID(ctx context.Context, id string) (*models.SubsidyProgram, error) {
	query := selectPrograms + " WHERE id = $1"

	program, err := scanProgram(r.db.QueryRowContext(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subsidy program: %w", err)
	}

	return program, nil
}

// GetAllActive retrieves all active subsidy programs in insertion order.
func (r *ProgramRepository) GetAllActive(ctx context.Context) ([]*models.SubsidyProgram, error) {
	query := selectPrograms + " WHERE is_active = true ORDER BY created_at, id"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subsidy programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.SubsidyProgram
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subsidy program: %w", err)
		}
		programs = append(programs, program)
	}

	return programs, nil
}

// Deactivate marks a subsidy program as inactive.
func (r *ProgramRepository) Deactivate(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE subsidy_programs SET is_active = false, updated_at = $1 WHERE id = $2",
		time.Now().UTC(), id)
	return err
}

const selectPrograms = `
	SELECT id, name, category, description, max_amount, subsidy_rate,
		eligible_expenses, requirements, application_period, evaluation_criteria,
		required_documents, tips, success_rate, document_sections, industry_affinity,
		created_at, updated_at, is_active
	FROM subsidy_programs`

// scanProgram scans a single row into a SubsidyProgram, decoding the JSON
// columns.
func scanProgram(row pgx.Row) (*models.SubsidyProgram, error) {
	var program models.SubsidyProgram
	var category string
	var expensesJSON, requirementsJSON, criteriaJSON, documentsJSON, tipsJSON, sectionsJSON, affinityJSON string

	err := row.Scan(
		&program.ID,
		&program.Name,
		&category,
		&program.Description,
		&program.MaxAmount,
		&program.SubsidyRate,
		&expensesJSON,
		&requirementsJSON,
		&program.ApplicationPeriod,
		&criteriaJSON,
		&documentsJSON,
		&tipsJSON,
		&program.SuccessRate,
		&sectionsJSON,
		&affinityJSON,
		&program.CreatedAt,
		&program.UpdatedAt,
		&program.IsActive,
	)
	if err != nil {
		return nil, err
	}

	program.Category = models.SubsidyCategory(category)

	if err := json.Unmarshal([]byte(expensesJSON), &program.EligibleExpenses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal eligible expenses: %w", err)
	}
	if err := json.Unmarshal([]byte(requirementsJSON), &program.Requirements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
	}
	if err := json.Unmarshal([]byte(criteriaJSON), &program.EvaluationCriteria); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation criteria: %w", err)
	}
	if err := json.Unmarshal([]byte(documentsJSON), &program.RequiredDocuments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal required documents: %w", err)
	}
	if err := json.Unmarshal([]byte(tipsJSON), &program.Tips); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tips: %w", err)
	}
	if err := json.Unmarshal([]byte(sectionsJSON), &program.DocumentSections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document sections: %w", err)
	}
	if err := json.Unmarshal([]byte(affinityJSON), &program.IndustryAffinity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal industry affinity: %w", err)
	}

	return &program, nil
}
