// Package database provides database operations for the subsidy advisor engine.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"subsidy-advisor-engine/internal/models"
)

// CompanyRepository handles company database operations.
type CompanyRepository struct {
	db *DB
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(db *DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts a new company into the database.
func (r *CompanyRepository) Create(ctx context.Context, company *models.CompanyCreate) (int64, error) {
	query := `
		INSERT INTO companies (company_id, email, name, employee_count, capital, industry, years_in_business, batch_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (company_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			employee_count = EXCLUDED.employee_count,
			capital = EXCLUDED.capital,
			industry = EXCLUDED.industry,
			years_in_business = EXCLUDED.years_in_business,
			batch_id = EXCLUDED.batch_id,
			updated_at = EXCLUDED.updated_at
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		company.CompanyID,
		company.Email,
		company.Name,
		company.EmployeeCount,
		company.Capital,
		company.Industry,
		company.YearsInBusiness,
		company.BatchID,
		time.Now().UTC(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create company: %w", err)
	}

	return id, nil
}

// BulkInsert inserts multiple companies into the database.
func (r *CompanyRepository) BulkInsert(ctx context.Context, companies []*models.CompanyCreate) (*models.BulkInsertResult, error) {
	result := &models.BulkInsertResult{
		InsertedCount: 0,
		FailedCount:   0,
		Errors:        []string{},
	}

	// Use a transaction for bulk insert
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, company := range companies {
			_, err := tx.Exec(ctx, `
				INSERT INTO companies (company_id, email, name, employee_count, capital, industry, years_in_business, batch_id, created_at, updated_at, is_active)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9, true)
				ON CONFLICT (company_id) DO UPDATE SET
					email = EXCLUDED.email,
					name = EXCLUDED.name,
					employee_count = EXCLUDED.employee_count,
					capital = EXCLUDED.capital,
					industry = EXCLUDED.industry,
					years_in_business = EXCLUDED.years_in_business,
					batch_id = EXCLUDED.batch_id,
					updated_at = EXCLUDED.updated_at`,
				company.CompanyID,
				company.Email,
				company.Name,
				company.EmployeeCount,
				company.Capital,
				company.Industry,
				company.YearsInBusiness,
				company.BatchID,
				time.Now().UTC(),
			)

			if err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("company %s: %v", company.CompanyID, err))
			} else {
				result.InsertedCount++
			}
		}
		return nil
	})

	if err != nil {
		return result, fmt.Errorf("bulk insert failed: %w", err)
	}

	return result, nil
}

// GetByID retrieves a company by its database ID.
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := `
		SELECT id, company_id, email, name, employee_count, capital, industry, years_in_business, batch_id, created_at, updated_at, is_active
		FROM companies
		WHERE id = $1`

	var company models.Company
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&company.ID,
		&company.CompanyID,
		&company.Email,
		&company.Name,
		&company.EmployeeCount,
		&company.Capital,
		&company.Industry,
		&company.YearsInBusiness,
		&company.BatchID,
		&company.CreatedAt,
		&company.UpdatedAt,
		&company.IsActive,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &company, nil
}

// GetByIDs retrieves multiple companies by their database IDs.
func (r *CompanyRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Company, error) {
	if len(ids) == 0 {
		return []*models.Company{}, nil
	}

	// Build the query with placeholders
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, company_id, email, name, employee_count, capital, industry, years_in_business, batch_id, created_at, updated_at, is_active
		FROM companies
		WHERE id IN (%s) AND is_active = true
		ORDER BY id`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// GetByCompanyID retrieves a company by its external company ID.
func (r *CompanyRepository) GetByCompanyID(ctx context.Context, companyID string) (*models.Company, error) {
	query := `
		SELECT id, company_id, email, name, employee_count, capital, industry, years_in_business, batch_id, created_at, updated_at, is_active
		FROM companies
		WHERE company_id = $1 AND is_active = true`

	var company models.Company
	err := r.db.QueryRowContext(ctx, query, companyID).Scan(
		&company.ID,
		&company.CompanyID,
		&company.Email,
		&company.Name,
		&company.EmployeeCount,
		&company.Capital,
		&company.Industry,
		&company.YearsInBusiness,
		&company.BatchID,
		&company.CreatedAt,
		&company.UpdatedAt,
		&company.IsActive,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &company, nil
}

// GetByBatchID retrieves all companies from a specific intake batch.
func (r *CompanyRepository) GetByBatchID(ctx context.Context, batchID string) ([]*models.Company, error) {
	query := `
		SELECT id, company_id, email, name, employee_count, capital, industry, years_in_business, batch_id, created_at, updated_at, is_active
		FROM companies
		WHERE batch_id = $1 AND is_active = true
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// GetAllActive retrieves all active companies.
func (r *CompanyRepository) GetAllActive(ctx context.Context) ([]*models.Company, error) {
	query := `
		SELECT id, company_id, email, name, employee_count, capital, industry, years_in_business, batch_id, created_at, updated_at, is_active
		FROM companies
		WHERE is_active = true
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// CountByBatchID returns the number of companies in a batch.
func (r *CompanyRepository) CountByBatchID(ctx context.Context, batchID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM companies WHERE batch_id = $1", batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return count, nil
}

// scanCompanies reads all rows into company models.
func scanCompanies(rows pgx.Rows) ([]*models.Company, error) {
	var companies []*models.Company
	for rows.Next() {
		var company models.Company
		err := rows.Scan(
			&company.ID,
			&company.CompanyID,
			&company.Email,
			&company.Name,
			&company.EmployeeCount,
			&company.Capital,
			&company.Industry,
			&company.YearsInBusiness,
			&company.BatchID,
			&company.CreatedAt,
			&company.UpdatedAt,
			&company.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, &company)
	}

	return companies, nil
}
