// Package models defines the data structures for the subsidy advisor engine.
package models

import (
	"time"
)

// InnovationLevel describes how novel a project claims to be.
type InnovationLevel string

const (
	InnovationLow    InnovationLevel = "low"
	InnovationMedium InnovationLevel = "medium"
	InnovationHigh   InnovationLevel = "high"
)

// CompanyProfile describes the company side of a matching request.
// Transient: exists only for the duration of one request.
type CompanyProfile struct {
	EmployeeCount   int      `json:"employee_count"`
	Capital         float64  `json:"capital"`
	Industry        string   `json:"industry"`
	YearsInBusiness int      `json:"years_in_business"`
	Certifications  []string `json:"certifications,omitempty"`
	PastSubsidies   []string `json:"past_subsidies,omitempty"`
}

// ProjectInfo describes the funding project side of a matching request.
type ProjectInfo struct {
	Budget          float64         `json:"budget"`
	ProjectType     string          `json:"project_type"`
	Keywords        []string        `json:"keywords,omitempty"`
	ExpenseTypes    []string        `json:"expense_types,omitempty"`
	Strengths       []string        `json:"strengths,omitempty"`
	InnovationLevel InnovationLevel `json:"innovation_level,omitempty"`
}

// Company represents a company record in the intake pipeline.
type Company struct {
	ID              int64     `json:"id" db:"id"`
	CompanyID       string    `json:"company_id" db:"company_id"`
	Email           string    `json:"email" db:"email"`
	Name            string    `json:"name" db:"name"`
	EmployeeCount   int       `json:"employee_count" db:"employee_count"`
	Capital         float64   `json:"capital" db:"capital"`
	Industry        string    `json:"industry" db:"industry"`
	YearsInBusiness int       `json:"years_in_business" db:"years_in_business"`
	BatchID         string    `json:"batch_id,omitempty" db:"batch_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
	IsActive        bool      `json:"is_active" db:"is_active"`
}

// Profile converts a stored Company to the transient matching profile.
func (c *Company) Profile() CompanyProfile {
	return CompanyProfile{
		EmployeeCount:   c.EmployeeCount,
		Capital:         c.Capital,
		Industry:        c.Industry,
		YearsInBusiness: c.YearsInBusiness,
	}
}

// CompanyCreate represents the data needed to create a new company record.
type CompanyCreate struct {
	CompanyID       string  `json:"company_id" validate:"required,min=1,max=50"`
	Email           string  `json:"email" validate:"required,email"`
	Name            string  `json:"name"`
	EmployeeCount   int     `json:"employee_count" validate:"required,gte=1"`
	Capital         float64 `json:"capital" validate:"gte=0"`
	Industry        string  `json:"industry" validate:"required"`
	YearsInBusiness int     `json:"years_in_business" validate:"gte=0"`
	BatchID         string  `json:"batch_id,omitempty"`

	// Optional project columns from the questionnaire CSV.
	ProjectBudget float64 `json:"project_budget,omitempty"`
	ProjectType   string  `json:"project_type,omitempty"`
}

// Profile converts intake data to the transient matching profile.
func (c *CompanyCreate) Profile() CompanyProfile {
	return CompanyProfile{
		EmployeeCount:   c.EmployeeCount,
		Capital:         c.Capital,
		Industry:        c.Industry,
		YearsInBusiness: c.YearsInBusiness,
	}
}

// Project builds a minimal ProjectInfo from the optional CSV columns.
func (c *CompanyCreate) Project() ProjectInfo {
	return ProjectInfo{
		Budget:      c.ProjectBudget,
		ProjectType: c.ProjectType,
	}
}

// CSVCompanyRow represents a row from the uploaded questionnaire CSV file.
type CSVCompanyRow struct {
	CompanyID       string  `csv:"company_id"`
	Email           string  `csv:"email"`
	Name            string  `csv:"company_name"`
	EmployeeCount   int     `csv:"employee_count"`
	Capital         float64 `csv:"capital"`
	Industry        string  `csv:"industry"`
	YearsInBusiness int     `csv:"years_in_business"`
}

// BulkInsertResult contains the results of a bulk insert operation.
type BulkInsertResult struct {
	InsertedCount int      `json:"inserted_count"`
	FailedCount   int      `json:"failed_count"`
	Errors        []string `json:"errors,omitempty"`
}
