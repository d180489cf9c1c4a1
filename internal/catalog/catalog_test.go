package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-advisor-engine/internal/models"
)

func TestBuiltin_CatalogIsWellFormed(t *testing.T) {
	cat := Builtin()

	require.Equal(t, 10, cat.Len(), "Expected 10 built-in programs")

	seen := make(map[string]bool)
	for _, p := range cat.All() {
		assert.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "Duplicate program ID: %s", p.ID)
		seen[p.ID] = true

		assert.NotEmpty(t, p.Name)
		assert.True(t, p.Category.IsValid(), "Invalid category for %s: %s", p.ID, p.Category)
		assert.Greater(t, p.MaxAmount, 0.0)
		assert.Greater(t, p.SubsidyRate, 0.0)
		assert.LessOrEqual(t, p.SubsidyRate, 1.0)
		assert.GreaterOrEqual(t, p.SuccessRate, 0.0)
		assert.LessOrEqual(t, p.SuccessRate, 1.0)
		assert.NotEmpty(t, p.DocumentSections, "Program %s has no document sections", p.ID)
		assert.True(t, p.IsActive)
	}
}

func TestCatalog_ByID(t *testing.T) {
	cat := Builtin()

	program := cat.ByID("it-donyu")
	require.NotNil(t, program)
	assert.Equal(t, "IT導入補助金", program.Name)
	assert.Equal(t, models.CategoryITAdoption, program.Category)

	assert.Nil(t, cat.ByID("no-such-program"))
}

func TestCatalog_ByCategory(t *testing.T) {
	cat := Builtin()

	programs := cat.ByCategory(models.CategoryManufacturing)
	require.Len(t, programs, 1)
	assert.Equal(t, "monozukuri", programs[0].ID)

	assert.Empty(t, cat.ByCategory(models.SubsidyCategory("unknown")))
}

func TestCatalog_AllPreservesOrder(t *testing.T) {
	cat := Builtin()

	first := cat.All()
	second := cat.All()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
	assert.Equal(t, "monozukuri", first[0].ID, "Built-in order should be stable")
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	programs := []*models.SubsidyProgram{
		{ID: "dup", Name: "A", Category: models.CategoryITAdoption, MaxAmount: 1, SubsidyRate: 0.5},
		{ID: "dup", Name: "B", Category: models.CategoryITAdoption, MaxAmount: 1, SubsidyRate: 0.5},
	}

	_, err := New(programs)
	assert.Error(t, err)
}

func TestSubsidyProgram_EstimatedAward(t *testing.T) {
	cat := Builtin()

	itDonyu := cat.ByID("it-donyu")
	require.NotNil(t, itDonyu)

	// 10M yen budget at 50% rate would be 5M, capped at the 4.5M maximum.
	assert.InDelta(t, 4_500_000, itDonyu.EstimatedAward(10_000_000), 0.001)

	// Below the cap the rate applies directly.
	assert.InDelta(t, 2_500_000, itDonyu.EstimatedAward(5_000_000), 0.001)

	// Non-positive budgets award nothing.
	assert.Equal(t, 0.0, itDonyu.EstimatedAward(0))
	assert.Equal(t, 0.0, itDonyu.EstimatedAward(-1))
}

func TestCatalog_Search(t *testing.T) {
	cat := Builtin()

	results := cat.Search("IT")
	require.NotEmpty(t, results)

	found := false
	for _, p := range results {
		if p.ID == "it-donyu" {
			found = true
		}
	}
	assert.True(t, found, "Expected it-donyu in search results for 'IT'")
}
