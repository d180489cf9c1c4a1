// Package utils provides utility functions for the subsidy advisor engine.
package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"subsidy-advisor-engine/internal/models"
)

// CSVParser errors
var (
	ErrEmptyCSV       = errors.New("CSV content is empty")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoDataRows     = errors.New("CSV file contains no data rows")
	ErrInvalidRowData = errors.New("invalid row data")
)

// RequiredColumns defines the columns that must be present in the CSV.
var RequiredColumns = []string{
	"company_id",
	"email",
	"employee_count",
	"capital",
	"industry",
	"years_in_business",
}

// ColumnAliases maps alternative column names to standard names. The intake
// form is distributed in both English and Japanese, so both header sets are
// accepted.
var ColumnAliases = map[string]string{
	// company_id aliases
	"companyid":  "company_id",
	"company id": "company_id",
	"id":         "company_id",
	"企業id":       "company_id",
	"法人番号":       "company_id",

	// email aliases
	"emailaddress":  "email",
	"email_address": "email",
	"mail":          "email",
	"メールアドレス":       "email",

	// company_name aliases
	"companyname":  "company_name",
	"company name": "company_name",
	"name":         "company_name",
	"企業名":          "company_name",
	"会社名":          "company_name",

	// employee_count aliases
	"employees":      "employee_count",
	"employeecount":  "employee_count",
	"employee count": "employee_count",
	"従業員数":           "employee_count",

	// capital aliases
	"capital_yen":  "capital",
	"資本金":          "capital",
	"資本金(万円)":      "capital", // Will multiply by 10,000
	"capital_man":  "capital",

	// industry aliases
	"sector":   "industry",
	"business": "industry",
	"業種":       "industry",
	"業界":       "industry",

	// years_in_business aliases
	"years":             "years_in_business",
	"yearsinbusiness":   "years_in_business",
	"years in business": "years_in_business",
	"設立年数":              "years_in_business",
	"事業年数":              "years_in_business",
	"創業年数":              "years_in_business",

	// project_budget aliases
	"budget":         "project_budget",
	"projectbudget":  "project_budget",
	"project budget": "project_budget",
	"事業予算":           "project_budget",
	"投資予定額":          "project_budget",

	// project_type aliases
	"projecttype":  "project_type",
	"project type": "project_type",
	"事業内容":         "project_type",
	"取組内容":         "project_type",
}

// CSVParser handles parsing of company questionnaire CSV files.
type CSVParser struct {
	columnMapping   map[string]int
	originalHeaders map[string]string // Maps normalized column name to original header
}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{
		columnMapping:   make(map[string]int),
		originalHeaders: make(map[string]string),
	}
}

// ParseCompanies parses CSV content and returns a slice of CompanyCreate objects.
func (p *CSVParser) ParseCompanies(content string, batchID string) ([]*models.CompanyCreate, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{ErrEmptyCSV}
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read header: %w", err)}
	}

	// Build column mapping
	if err := p.buildColumnMapping(header); err != nil {
		return nil, []error{err}
	}

	// Parse data rows
	var companies []*models.CompanyCreate
	var parseErrors []error
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		company, err := p.parseRow(record, batchID)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		// Validate company
		if err := models.ValidateCompanyCreate(company); err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		companies = append(companies, company)
	}

	if len(companies) == 0 && len(parseErrors) > 0 {
		return nil, append([]error{ErrNoDataRows}, parseErrors...)
	}

	return companies, parseErrors
}

// buildColumnMapping creates a mapping of standard column names to their indices.
func (p *CSVParser) buildColumnMapping(header []string) error {
	p.columnMapping = make(map[string]int)
	p.originalHeaders = make(map[string]string)

	for i, col := range header {
		// Normalize column name
		normalized := strings.ToLower(strings.TrimSpace(col))
		original := normalized

		// Apply alias if exists
		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}

		p.columnMapping[normalized] = i
		p.originalHeaders[normalized] = original // Store original header name
	}

	// Check for required columns
	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := p.columnMapping[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return nil
}

// parseRow parses a single CSV row into a CompanyCreate object.
func (p *CSVParser) parseRow(record []string, batchID string) (*models.CompanyCreate, error) {
	getValue := func(column string) (string, error) {
		idx, ok := p.columnMapping[column]
		if !ok {
			return "", fmt.Errorf("column %s not found", column)
		}
		if idx >= len(record) {
			return "", fmt.Errorf("column %s index out of range", column)
		}
		return strings.TrimSpace(record[idx]), nil
	}

	getOptional := func(column string) string {
		idx, ok := p.columnMapping[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	companyID, err := getValue("company_id")
	if err != nil {
		return nil, err
	}

	email, err := getValue("email")
	if err != nil {
		return nil, err
	}

	countStr, err := getValue("employee_count")
	if err != nil {
		return nil, err
	}
	employeeCount, err := parseInt(countStr)
	if err != nil {
		return nil, fmt.Errorf("invalid employee_count: %w", err)
	}

	capitalStr, err := getValue("capital")
	if err != nil {
		return nil, err
	}
	capital, err := parseFloat(capitalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid capital: %w", err)
	}

	// Questionnaires often report capital in units of 10,000 yen.
	if originalHeader, ok := p.originalHeaders["capital"]; ok {
		if strings.Contains(originalHeader, "万円") || strings.Contains(originalHeader, "man") {
			capital = capital * 10_000
		}
	}

	industry, err := getValue("industry")
	if err != nil {
		return nil, err
	}

	yearsStr, err := getValue("years_in_business")
	if err != nil {
		return nil, err
	}
	years, err := parseInt(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years_in_business: %w", err)
	}

	company := &models.CompanyCreate{
		CompanyID:       companyID,
		Email:           email,
		Name:            getOptional("company_name"),
		EmployeeCount:   employeeCount,
		Capital:         capital,
		Industry:        models.NormalizeIndustry(industry),
		YearsInBusiness: years,
		BatchID:         batchID,
	}

	if budgetStr := getOptional("project_budget"); budgetStr != "" {
		budget, err := parseFloat(budgetStr)
		if err != nil {
			return nil, fmt.Errorf("invalid project_budget: %w", err)
		}
		company.ProjectBudget = budget
	}
	company.ProjectType = getOptional("project_type")

	return company, nil
}

// parseFloat parses a string to float64, handling common formats.
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	// Remove commas and currency symbols
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "円")
	s = strings.TrimPrefix(s, "¥")
	s = strings.TrimPrefix(s, "￥")
	s = strings.TrimSpace(s)

	return strconv.ParseFloat(s, 64)
}

// parseInt parses a string to int, handling common formats.
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	// Remove commas and unit suffixes
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "名")
	s = strings.TrimSuffix(s, "人")
	s = strings.TrimSuffix(s, "年")
	s = strings.TrimSpace(s)

	// Handle float strings (e.g., "10.0")
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return int(f), nil
	}

	return strconv.Atoi(s)
}

// ValidateCSVStructure performs a quick validation of CSV structure without full parsing.
func ValidateCSVStructure(content string) (*CSVValidationResult, error) {
	result := &CSVValidationResult{
		Valid:          false,
		RowCount:       0,
		Columns:        []string{},
		MissingColumns: []string{},
		Errors:         []string{},
	}

	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, "empty file")
		return result, nil
	}

	reader := csv.NewReader(strings.NewReader(content))

	// Read header
	header, err := reader.Read()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read header: %v", err))
		return result, nil
	}

	// Normalize and check columns
	normalizedColumns := make(map[string]bool)
	for _, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}
		normalizedColumns[normalized] = true
		result.Columns = append(result.Columns, col)
	}

	// Check for required columns
	for _, required := range RequiredColumns {
		if !normalizedColumns[required] {
			result.MissingColumns = append(result.MissingColumns, required)
		}
	}

	// Count rows
	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row error: %v", err))
			continue
		}
		result.RowCount++
	}

	result.Valid = len(result.MissingColumns) == 0 && result.RowCount > 0

	return result, nil
}

// CSVValidationResult contains the results of CSV validation.
type CSVValidationResult struct {
	Valid          bool     `json:"valid"`
	RowCount       int      `json:"row_count"`
	Columns        []string `json:"columns"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
}
