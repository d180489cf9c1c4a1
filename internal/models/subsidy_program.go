// Package models defines the data structures for the subsidy advisor engine.
package models

import (
	"time"
)

// SubsidyCategory represents the domain a subsidy program targets.
type SubsidyCategory string

const (
	CategoryManufacturing SubsidyCategory = "manufacturing"
	CategoryITAdoption    SubsidyCategory = "it_adoption"
	CategorySalesChannel  SubsidyCategory = "sales_channel"
	CategoryRestructuring SubsidyCategory = "restructuring"
	CategoryEnergySaving  SubsidyCategory = "energy_saving"
	CategoryEmployment    SubsidyCategory = "employment"
	CategoryTraining      SubsidyCategory = "training"
	CategoryStartup       SubsidyCategory = "startup"
	CategoryResearch      SubsidyCategory = "research_development"
	CategorySuccession    SubsidyCategory = "succession"
)

// ValidSubsidyCategories returns all valid subsidy category values.
func ValidSubsidyCategories() []SubsidyCategory {
	return []SubsidyCategory{
		CategoryManufacturing,
		CategoryITAdoption,
		CategorySalesChannel,
		CategoryRestructuring,
		CategoryEnergySaving,
		CategoryEmployment,
		CategoryTraining,
		CategoryStartup,
		CategoryResearch,
		CategorySuccession,
	}
}

// IsValid checks if the subsidy category is valid.
func (c SubsidyCategory) IsValid() bool {
	for _, valid := range ValidSubsidyCategories() {
		if c == valid {
			return true
		}
	}
	return false
}

// Requirements holds the hard eligibility bounds of a program.
// Nil pointer fields and empty lists mean the bound is not configured
// and passes vacuously.
type Requirements struct {
	MinEmployees       *int     `json:"min_employees,omitempty"`
	MaxEmployees       *int     `json:"max_employees,omitempty"`
	MinCapital         *float64 `json:"min_capital,omitempty"`
	MaxCapital         *float64 `json:"max_capital,omitempty"`
	TargetIndustries   []string `json:"target_industries,omitempty"`
	ExcludedIndustries []string `json:"excluded_industries,omitempty"`
	MinYearsInBusiness *int     `json:"min_years_in_business,omitempty"`
	SpecialConditions  []string `json:"special_conditions,omitempty"`
}

// SubsidyProgram represents a government subsidy program from the catalog.
// Programs are constructed once at startup and never mutated.
type SubsidyProgram struct {
	ID                 string             `json:"id" db:"id"`
	Name               string             `json:"name" db:"name"`
	Category           SubsidyCategory    `json:"category" db:"category"`
	Description        string             `json:"description" db:"description"`
	MaxAmount          float64            `json:"max_amount" db:"max_amount"`
	SubsidyRate        float64            `json:"subsidy_rate" db:"subsidy_rate"`
	EligibleExpenses   []string           `json:"eligible_expenses" db:"eligible_expenses"`
	Requirements       Requirements       `json:"requirements" db:"requirements"`
	ApplicationPeriod  string             `json:"application_period" db:"application_period"`
	EvaluationCriteria []string           `json:"evaluation_criteria" db:"evaluation_criteria"`
	RequiredDocuments  []string           `json:"required_documents" db:"required_documents"`
	Tips               []string           `json:"tips,omitempty" db:"tips"`
	SuccessRate        float64            `json:"success_rate" db:"success_rate"`
	DocumentSections   []string           `json:"document_sections" db:"document_sections"`
	IndustryAffinity   map[string]float64 `json:"industry_affinity,omitempty" db:"industry_affinity"`
	CreatedAt          time.Time          `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at,omitempty" db:"updated_at"`
	IsActive           bool               `json:"is_active" db:"is_active"`
}

// EstimatedAward returns min(budget x rate, max amount) for a project budget.
func (p *SubsidyProgram) EstimatedAward(budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	award := budget * p.SubsidyRate
	if award > p.MaxAmount {
		award = p.MaxAmount
	}
	return award
}

// SubsidyProgramSummary is a lightweight view for display purposes.
type SubsidyProgramSummary struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          SubsidyCategory `json:"category"`
	MaxAmount         float64         `json:"max_amount"`
	SubsidyRate       float64         `json:"subsidy_rate"`
	ApplicationPeriod string          `json:"application_period"`
	SuccessRate       float64         `json:"success_rate"`
}

// ToSummary converts a SubsidyProgram to SubsidyProgramSummary.
func (p *SubsidyProgram) ToSummary() SubsidyProgramSummary {
	return SubsidyProgramSummary{
		ID:                p.ID,
		Name:              p.Name,
		Category:          p.Category,
		MaxAmount:         p.MaxAmount,
		SubsidyRate:       p.SubsidyRate,
		ApplicationPeriod: p.ApplicationPeriod,
		SuccessRate:       p.SuccessRate,
	}
}

// IntPtr returns a pointer to the given int. Used when building
// Requirements literals.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to the given float64.
func FloatPtr(v float64) *float64 { return &v }
