// Package models defines the data structures for the subsidy advisor engine.
package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrInvalidIndustry      = errors.New("industry cannot be empty")
	ErrInvalidEmployeeCount = errors.New("employee count must be at least 1")
	ErrInvalidCapital       = errors.New("capital cannot be negative")
	ErrInvalidYears         = errors.New("years in business cannot be negative")
	ErrInvalidBudget        = errors.New("project budget cannot be negative")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrEmptyCompanyID       = errors.New("company_id cannot be empty")
	ErrEmptyProfile         = errors.New("company profile cannot be nil")
	ErrEmptyDocument        = errors.New("document contains no text")
)

// Canonical industry names used by the catalog requirement lists and the
// matcher affinity tables.
const (
	IndustryIT            = "IT"
	IndustryManufacturing = "製造業"
	IndustryConstruction  = "建設業"
	IndustryRetail        = "小売業"
	IndustryWholesale     = "卸売業"
	IndustryService       = "サービス業"
	IndustryFood          = "飲食業"
	IndustryTransport     = "運輸業"
	IndustryAgriculture   = "農業"
	IndustryMedical       = "医療・福祉"
)

// industryAliases maps common questionnaire spellings to canonical names.
var industryAliases = map[string]string{
	"it":      IndustryIT,
	"ｉｔ":      IndustryIT,
	"情報通信":    IndustryIT,
	"情報通信業":   IndustryIT,
	"ソフトウェア":  IndustryIT,
	"ソフトウェア業": IndustryIT,
	"software": IndustryIT,

	"製造":            IndustryManufacturing,
	"メーカー":          IndustryManufacturing,
	"ものづくり":         IndustryManufacturing,
	"manufacturing": IndustryManufacturing,

	"建設":           IndustryConstruction,
	"工務店":          IndustryConstruction,
	"construction": IndustryConstruction,

	"小売":     IndustryRetail,
	"retail": IndustryRetail,

	"卸売":        IndustryWholesale,
	"卸":         IndustryWholesale,
	"wholesale": IndustryWholesale,

	"サービス":    IndustryService,
	"service": IndustryService,

	"飲食":         IndustryFood,
	"飲食店":        IndustryFood,
	"restaurant": IndustryFood,

	"運輸":        IndustryTransport,
	"物流":        IndustryTransport,
	"logistics": IndustryTransport,

	"農林水産業":       IndustryAgriculture,
	"agriculture": IndustryAgriculture,

	"医療":      IndustryMedical,
	"福祉":      IndustryMedical,
	"介護":      IndustryMedical,
	"medical": IndustryMedical,
}

// NormalizeIndustry converts free-form industry input to a canonical name.
// Unknown values are returned trimmed as-is so explicit catalog lists can
// still match exact strings.
func NormalizeIndustry(industry string) string {
	trimmed := strings.TrimSpace(industry)
	if trimmed == "" {
		return ""
	}
	lowered := strings.ToLower(trimmed)
	if canonical, ok := industryAliases[lowered]; ok {
		return canonical
	}
	if canonical, ok := industryAliases[trimmed]; ok {
		return canonical
	}
	return trimmed
}

// ValidateCompanyCreate validates company intake data.
func ValidateCompanyCreate(c *CompanyCreate) error {
	if strings.TrimSpace(c.CompanyID) == "" {
		return ErrEmptyCompanyID
	}

	if !isValidEmail(c.Email) {
		return ErrInvalidEmail
	}

	if c.EmployeeCount < 1 {
		return ErrInvalidEmployeeCount
	}

	if c.Capital < 0 {
		return ErrInvalidCapital
	}

	if strings.TrimSpace(c.Industry) == "" {
		return ErrInvalidIndustry
	}

	if c.YearsInBusiness < 0 {
		return ErrInvalidYears
	}

	if c.ProjectBudget < 0 {
		return ErrInvalidBudget
	}

	return nil
}

// isValidEmail performs basic email validation.
func isValidEmail(email string) bool {
	if email == "" {
		return false
	}

	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	dotIndex := strings.LastIndex(email, ".")
	if dotIndex <= atIndex+1 || dotIndex == len(email)-1 {
		return false
	}

	return true
}
