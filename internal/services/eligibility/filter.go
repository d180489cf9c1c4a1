// Package eligibility implements the hard pass/fail requirement checks
// that gate a company's access to each subsidy program.
package eligibility

import (
	"fmt"

	"subsidy-advisor-engine/internal/catalog"
	"subsidy-advisor-engine/internal/models"
)

// Filter evaluates program requirements against company profiles.
// It holds a read-only catalog reference and is safe for concurrent use.
type Filter struct {
	catalog *catalog.Catalog
}

// NewFilter creates a filter over the given catalog.
func NewFilter(c *catalog.Catalog) *Filter {
	return &Filter{catalog: c}
}

// CheckEligibility returns the programs whose every configured requirement
// is satisfied by the profile, in catalog order. Unset bounds pass
// automatically. Inactive programs are skipped.
func (f *Filter) CheckEligibility(profile *models.CompanyProfile) ([]*models.SubsidyProgram, error) {
	if profile == nil {
		return nil, fmt.Errorf("check eligibility: %w", models.ErrEmptyProfile)
	}
	if profile.EmployeeCount <= 0 {
		return nil, fmt.Errorf("check eligibility: %w", models.ErrInvalidEmployeeCount)
	}

	industry := models.NormalizeIndustry(profile.Industry)

	eligible := make([]*models.SubsidyProgram, 0)
	for _, program := range f.catalog.All() {
		if !program.IsActive {
			continue
		}
		if Satisfies(&program.Requirements, profile, industry) {
			eligible = append(eligible, program)
		}
	}

	return eligible, nil
}

// Satisfies reports whether the profile meets every configured bound in the
// requirements. Predicates are checked in a fixed order: employee bounds,
// capital bounds, target-industry allow-list, excluded-industry deny-list,
// minimum years in business. industry may be an alias; both it and the
// requirement-list entries are normalized before comparison.
func Satisfies(req *models.Requirements, profile *models.CompanyProfile, industry string) bool {
	industry = models.NormalizeIndustry(industry)
	if req.MinEmployees != nil && profile.EmployeeCount < *req.MinEmployees {
		return false
	}
	if req.MaxEmployees != nil && profile.EmployeeCount > *req.MaxEmployees {
		return false
	}
	if req.MinCapital != nil && profile.Capital < *req.MinCapital {
		return false
	}
	if req.MaxCapital != nil && profile.Capital > *req.MaxCapital {
		return false
	}
	if len(req.TargetIndustries) > 0 && !containsIndustry(req.TargetIndustries, industry) {
		return false
	}
	if containsIndustry(req.ExcludedIndustries, industry) {
		return false
	}
	if req.MinYearsInBusiness != nil && profile.YearsInBusiness < *req.MinYearsInBusiness {
		return false
	}
	return true
}

func containsIndustry(list []string, industry string) bool {
	for _, entry := range list {
		if models.NormalizeIndustry(entry) == industry {
			return true
		}
	}
	return false
}
