package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-advisor-engine/internal/catalog"
	"subsidy-advisor-engine/internal/models"
)

func smallITCompany() *models.CompanyProfile {
	return &models.CompanyProfile{
		EmployeeCount:   10,
		Capital:         5_000_000,
		Industry:        "IT",
		YearsInBusiness: 3,
	}
}

func TestCheckEligibility_SmallITCompany(t *testing.T) {
	filter := NewFilter(catalog.Builtin())

	programs, err := filter.CheckEligibility(smallITCompany())
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, p := range programs {
		ids[p.ID] = true
	}

	// Passes the headcount, capital and tenure bounds of most programs.
	assert.True(t, ids["it-donyu"])
	assert.True(t, ids["jizokuka"])
	assert.True(t, ids["monozukuri"])
	assert.True(t, ids["saikouchiku"])
	assert.True(t, ids["shokei"])

	// go-tech requires at least 10M yen capital.
	assert.False(t, ids["go-tech"])
}

func TestCheckEligibility_BoundsExclude(t *testing.T) {
	filter := NewFilter(catalog.Builtin())

	// 100 employees exceeds jizokuka's cap of 20 but stays within it-donyu's 300.
	programs, err := filter.CheckEligibility(&models.CompanyProfile{
		EmployeeCount:   100,
		Capital:         50_000_000,
		Industry:        "製造業",
		YearsInBusiness: 10,
	})
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, p := range programs {
		ids[p.ID] = true
	}
	assert.False(t, ids["jizokuka"])
	assert.True(t, ids["it-donyu"])
	assert.True(t, ids["go-tech"], "capital and headcount meet go-tech requirements")
}

func TestCheckEligibility_RelaxingProfileNeverShrinksResult(t *testing.T) {
	filter := NewFilter(catalog.Builtin())

	// A young company with little capital qualifies for a subset of what the
	// same company qualifies for after growing capital and tenure.
	young, err := filter.CheckEligibility(&models.CompanyProfile{
		EmployeeCount:   10,
		Capital:         1_000_000,
		Industry:        "IT",
		YearsInBusiness: 1,
	})
	require.NoError(t, err)

	grown, err := filter.CheckEligibility(&models.CompanyProfile{
		EmployeeCount:   10,
		Capital:         20_000_000,
		Industry:        "IT",
		YearsInBusiness: 5,
	})
	require.NoError(t, err)

	grownIDs := make(map[string]bool)
	for _, p := range grown {
		grownIDs[p.ID] = true
	}
	for _, p := range young {
		assert.True(t, grownIDs[p.ID], "program %s lost by raising capital and tenure", p.ID)
	}
}

func TestCheckEligibility_PreservesCatalogOrder(t *testing.T) {
	cat := catalog.Builtin()
	filter := NewFilter(cat)

	programs, err := filter.CheckEligibility(smallITCompany())
	require.NoError(t, err)
	require.NotEmpty(t, programs)

	position := make(map[string]int)
	for i, p := range cat.All() {
		position[p.ID] = i
	}
	for i := 1; i < len(programs); i++ {
		assert.Less(t, position[programs[i-1].ID], position[programs[i].ID],
			"eligible programs must keep catalog order")
	}
}

func TestCheckEligibility_InvalidProfiles(t *testing.T) {
	filter := NewFilter(catalog.Builtin())

	_, err := filter.CheckEligibility(nil)
	assert.ErrorIs(t, err, models.ErrEmptyProfile)

	_, err = filter.CheckEligibility(&models.CompanyProfile{EmployeeCount: 0, Industry: "IT"})
	assert.ErrorIs(t, err, models.ErrInvalidEmployeeCount)
}

func TestCheckEligibility_SkipsInactivePrograms(t *testing.T) {
	cat := catalog.MustNew([]*models.SubsidyProgram{
		{ID: "active", Name: "Active", Category: models.CategoryITAdoption, MaxAmount: 1_000_000, SubsidyRate: 0.5, IsActive: true},
		{ID: "inactive", Name: "Inactive", Category: models.CategoryITAdoption, MaxAmount: 1_000_000, SubsidyRate: 0.5, IsActive: false},
	})
	filter := NewFilter(cat)

	programs, err := filter.CheckEligibility(smallITCompany())
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "active", programs[0].ID)
}

func TestSatisfies_IndustryLists(t *testing.T) {
	profile := smallITCompany()

	// Allow-list passes matching industries only.
	target := &models.Requirements{TargetIndustries: []string{"IT", "製造業"}}
	assert.True(t, Satisfies(target, profile, "IT"))
	assert.False(t, Satisfies(target, profile, "小売業"))

	// Deny-list rejects the listed industry.
	excluded := &models.Requirements{ExcludedIndustries: []string{"農林水産業"}}
	assert.True(t, Satisfies(excluded, profile, "IT"))
	assert.False(t, Satisfies(excluded, profile, "農林水産業"))

	// Aliases match canonical names in either position.
	canonical := &models.Requirements{ExcludedIndustries: []string{"農業"}}
	assert.False(t, Satisfies(canonical, profile, "農林水産業"))
	assert.False(t, Satisfies(excluded, profile, "農業"))
	assert.True(t, Satisfies(&models.Requirements{TargetIndustries: []string{"情報通信業"}}, profile, "IT"))
}

func TestSatisfies_UnsetBoundsPass(t *testing.T) {
	// A requirements struct with nothing configured accepts anyone.
	assert.True(t, Satisfies(&models.Requirements{}, &models.CompanyProfile{
		EmployeeCount: 1,
		Industry:      "飲食業",
	}, "飲食業"))
}

func TestSatisfies_EmployeeAndCapitalBounds(t *testing.T) {
	req := &models.Requirements{
		MinEmployees: models.IntPtr(5),
		MaxEmployees: models.IntPtr(100),
		MinCapital:   models.FloatPtr(1_000_000),
	}

	ok := &models.CompanyProfile{EmployeeCount: 50, Capital: 2_000_000}
	assert.True(t, Satisfies(req, ok, "IT"))

	tooSmall := &models.CompanyProfile{EmployeeCount: 4, Capital: 2_000_000}
	assert.False(t, Satisfies(req, tooSmall, "IT"))

	tooBig := &models.CompanyProfile{EmployeeCount: 101, Capital: 2_000_000}
	assert.False(t, Satisfies(req, tooBig, "IT"))

	poor := &models.CompanyProfile{EmployeeCount: 50, Capital: 500_000}
	assert.False(t, Satisfies(req, poor, "IT"))
}
