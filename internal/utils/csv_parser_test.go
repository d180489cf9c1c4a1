package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-advisor-engine/internal/models"
)

const validCSV = `company_id,email,company_name,employee_count,capital,industry,years_in_business
C001,tanaka@example.co.jp,田中製作所,25,10000000,製造業,8
C002,sato@example.co.jp,佐藤商店,5,3000000,小売業,12
`

func TestParseCompanies_ValidEnglishHeaders(t *testing.T) {
	parser := NewCSVParser()
	companies, errs := parser.ParseCompanies(validCSV, "batch-001")

	require.Empty(t, errs)
	require.Len(t, companies, 2)

	first := companies[0]
	assert.Equal(t, "C001", first.CompanyID)
	assert.Equal(t, "tanaka@example.co.jp", first.Email)
	assert.Equal(t, "田中製作所", first.Name)
	assert.Equal(t, 25, first.EmployeeCount)
	assert.Equal(t, 10_000_000.0, first.Capital)
	assert.Equal(t, "製造業", first.Industry)
	assert.Equal(t, 8, first.YearsInBusiness)
	assert.Equal(t, "batch-001", first.BatchID)
}

func TestParseCompanies_JapaneseHeaders(t *testing.T) {
	content := `企業ID,メールアドレス,企業名,従業員数,資本金(万円),業種,設立年数
J001,yamada@example.co.jp,山田工業,30名,1000,製造業,10年
`
	parser := NewCSVParser()
	companies, errs := parser.ParseCompanies(content, "batch-jp")

	require.Empty(t, errs)
	require.Len(t, companies, 1)

	c := companies[0]
	assert.Equal(t, "J001", c.CompanyID)
	assert.Equal(t, 30, c.EmployeeCount)
	// 資本金(万円) is reported in units of 10,000 yen.
	assert.Equal(t, 10_000_000.0, c.Capital)
	assert.Equal(t, 10, c.YearsInBusiness)
}

func TestParseCompanies_ProjectColumns(t *testing.T) {
	content := `company_id,email,employee_count,capital,industry,years_in_business,事業予算,事業内容
C010,suzuki@example.co.jp,12,"5,000,000",IT,4,"8,000,000円",クラウド移行
`
	parser := NewCSVParser()
	companies, errs := parser.ParseCompanies(content, "batch-002")

	require.Empty(t, errs)
	require.Len(t, companies, 1)

	c := companies[0]
	assert.Equal(t, 5_000_000.0, c.Capital)
	assert.Equal(t, 8_000_000.0, c.ProjectBudget)
	assert.Equal(t, "クラウド移行", c.ProjectType)
	// 情報通信業 and IT normalize to the same canonical label.
	assert.Equal(t, models.NormalizeIndustry("情報通信業"), c.Industry)
}

func TestParseCompanies_MissingRequiredColumns(t *testing.T) {
	content := `company_id,email,industry
C001,a@example.com,製造業
`
	parser := NewCSVParser()
	companies, errs := parser.ParseCompanies(content, "batch-003")

	assert.Nil(t, companies)
	require.NotEmpty(t, errs)
	assert.ErrorIs(t, errs[0], ErrMissingColumns)
	assert.Contains(t, errs[0].Error(), "employee_count")
	assert.Contains(t, errs[0].Error(), "capital")
	assert.Contains(t, errs[0].Error(), "years_in_business")
}

func TestParseCompanies_EmptyContent(t *testing.T) {
	parser := NewCSVParser()
	companies, errs := parser.ParseCompanies("   \n", "batch---")

	assert.Nil(t, companies)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrEmptyCSV)
}

func TestParseCompanies_InvalidRowsCollected(t *testing.T) {
	content := `company_id,email,employee_count,capital,industry,years_in_business
C001,valid@example.co.jp,10,5000000,製造業,5
C002,not-an-email,10,5000000,製造業,5
C003,valid2@example.co.jp,abc,5000000,製造業,5
C004,valid3@example.co.jp,0,5000000,製造業,5
`
	parser := NewCSVParser()
	companies, errs := parser.ParseCompanies(content, "batch-004")

	require.Len(t, companies, 1)
	assert.Equal(t, "C001", companies[0].CompanyID)

	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], models.ErrInvalidEmail)
	assert.Contains(t, errs[1].Error(), "employee_count")
	assert.ErrorIs(t, errs[2], models.ErrInvalidEmployeeCount)
	// Line numbers point at the offending rows.
	assert.Contains(t, errs[0].Error(), "line 3")
	assert.Contains(t, errs[2].Error(), "line 5")
}

func TestParseCompanies_AllRowsInvalid(t *testing.T) {
	content := `company_id,email,employee_count,capital,industry,years_in_business
,missing-id@example.co.jp,10,5000000,製造業,5
`
	parser := NewCSVParser()
	companies, errs := parser.ParseCompanies(content, "batch-005")

	assert.Nil(t, companies)
	require.NotEmpty(t, errs)
	assert.ErrorIs(t, errs[0], ErrNoDataRows)
}

func TestParseInt_UnitSuffixes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"25", 25},
		{"25名", 25},
		{"100人", 100},
		{"8年", 8},
		{"1,200", 1200},
		{"10.0", 10},
	}
	for _, tc := range cases {
		got, err := parseInt(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := parseInt("")
	assert.Error(t, err)
	_, err = parseInt("十人")
	assert.Error(t, err)
}

func TestParseFloat_CurrencyFormats(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"5000000", 5_000_000},
		{"5,000,000", 5_000_000},
		{"5000000円", 5_000_000},
		{"¥3000000", 3_000_000},
		{"￥3000000", 3_000_000},
	}
	for _, tc := range cases {
		got, err := parseFloat(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := parseFloat("")
	assert.Error(t, err)
}

func TestValidateCSVStructure(t *testing.T) {
	result, err := ValidateCSVStructure(validCSV)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 2, result.RowCount)
	assert.Empty(t, result.MissingColumns)
	assert.Len(t, result.Columns, 7)
}

func TestValidateCSVStructure_MissingColumnsAndEmpty(t *testing.T) {
	result, err := ValidateCSVStructure("company_id,email\nC001,a@example.com\n")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.MissingColumns, "employee_count")

	empty, err := ValidateCSVStructure("")
	require.NoError(t, err)
	assert.False(t, empty.Valid)
	assert.NotEmpty(t, empty.Errors)
}
