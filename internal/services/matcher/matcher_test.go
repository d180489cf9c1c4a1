package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-advisor-engine/internal/catalog"
	"subsidy-advisor-engine/internal/models"
)

func testProfile() *models.CompanyProfile {
	return &models.CompanyProfile{
		EmployeeCount:   25,
		Capital:         10_000_000,
		Industry:        "製造業",
		YearsInBusiness: 8,
	}
}

func testProject() *models.ProjectInfo {
	return &models.ProjectInfo{
		Budget:      10_000_000,
		ProjectType: "生産性向上のための設備投資",
		Keywords:    []string{"生産性", "設備", "自動化"},
	}
}

func TestRecommend_ResultInvariants(t *testing.T) {
	m := NewMatcher(catalog.Builtin())

	recs, err := m.Recommend(testProfile(), testProject(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), DefaultTopN)

	for i, rec := range recs {
		assert.Greater(t, rec.MatchScore, 0.3, "recommendation below the score threshold")
		assert.LessOrEqual(t, rec.MatchScore, 1.0)
		assert.LessOrEqual(t, rec.SuccessProbability, 0.95)
		assert.GreaterOrEqual(t, rec.SuccessProbability, 0.0)
		assert.GreaterOrEqual(t, rec.EstimatedAmount, 0.0)

		for _, sub := range []float64{
			rec.SubScores.CategoryFit, rec.SubScores.AmountFit, rec.SubScores.IndustryFit,
			rec.SubScores.ContentFit, rec.SubScores.SuccessFit, rec.SubScores.TimingFit,
		} {
			assert.GreaterOrEqual(t, sub, 0.0)
			assert.LessOrEqual(t, sub, 1.0)
		}

		if i > 0 {
			assert.LessOrEqual(t, rec.MatchScore, recs[i-1].MatchScore, "results must be sorted by score descending")
		}
	}
}

func TestRecommend_EstimatedAmountIsCapped(t *testing.T) {
	m := NewMatcher(catalog.Builtin())

	profile := &models.CompanyProfile{
		EmployeeCount:   10,
		Capital:         5_000_000,
		Industry:        "IT",
		YearsInBusiness: 3,
	}
	project := &models.ProjectInfo{
		Budget:      10_000_000,
		ProjectType: "ITツール導入による業務のデジタル化",
		Keywords:    []string{"IT", "クラウド", "デジタル"},
	}

	recs, err := m.Recommend(profile, project, 0)
	require.NoError(t, err)

	foundITDonyu := false
	for _, rec := range recs {
		assert.InDelta(t, rec.Program.EstimatedAward(project.Budget), rec.EstimatedAmount, 0.001)
		if rec.Program.ID == "it-donyu" {
			foundITDonyu = true
			// 10M x 0.5 exceeds the 4.5M ceiling.
			assert.InDelta(t, 4_500_000, rec.EstimatedAmount, 0.001)
		}
	}
	assert.True(t, foundITDonyu, "expected it-donyu for an IT adoption project")
}

func TestRecommend_TopNLimit(t *testing.T) {
	m := NewMatcher(catalog.Builtin())

	all, err := m.Recommend(testProfile(), testProject(), 0)
	require.NoError(t, err)
	require.Greater(t, len(all), 2)

	limited, err := m.Recommend(testProfile(), testProject(), 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, all[0].Program.ID, limited[0].Program.ID)
	assert.Equal(t, all[1].Program.ID, limited[1].Program.ID)
}

func TestRecommend_InvalidProject(t *testing.T) {
	m := NewMatcher(catalog.Builtin())

	_, err := m.Recommend(testProfile(), nil, 0)
	assert.ErrorIs(t, err, models.ErrInvalidBudget)

	_, err = m.Recommend(testProfile(), &models.ProjectInfo{Budget: -1}, 0)
	assert.ErrorIs(t, err, models.ErrInvalidBudget)
}

func TestRecommend_IsDeterministic(t *testing.T) {
	m := NewMatcher(catalog.Builtin())

	first, err := m.Recommend(testProfile(), testProject(), 0)
	require.NoError(t, err)
	second, err := m.Recommend(testProfile(), testProject(), 0)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Program.ID, second[i].Program.ID)
		assert.Equal(t, first[i].MatchScore, second[i].MatchScore)
	}
}

func TestRecommend_TiesKeepCatalogOrder(t *testing.T) {
	// Two identical programs except for their IDs produce identical scores;
	// the stable sort must keep their catalog order.
	clone := func(id string) *models.SubsidyProgram {
		return &models.SubsidyProgram{
			ID:                id,
			Name:              "テスト補助金",
			Category:          models.CategoryITAdoption,
			MaxAmount:         5_000_000,
			SubsidyRate:       0.5,
			EligibleExpenses:  []string{"ソフトウェア費"},
			ApplicationPeriod: "通年",
			SuccessRate:       0.6,
			IsActive:          true,
		}
	}
	cat := catalog.MustNew([]*models.SubsidyProgram{clone("first"), clone("second")})
	m := NewMatcher(cat)

	recs, err := m.Recommend(testProfile(), testProject(), 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, recs[0].MatchScore, recs[1].MatchScore)
	assert.Equal(t, "first", recs[0].Program.ID)
	assert.Equal(t, "second", recs[1].Program.ID)
}

func TestSuccessProbability_Adjustments(t *testing.T) {
	m := NewMatcher(catalog.Builtin())
	program := &models.SubsidyProgram{SuccessRate: 0.6}

	base := m.successProbability(program, &models.CompanyProfile{}, &models.ProjectInfo{}, 0.5)
	assert.InDelta(t, 0.6*(0.5+0.25), base, 0.0001)

	certified := m.successProbability(program,
		&models.CompanyProfile{Certifications: []string{"経営革新計画"}},
		&models.ProjectInfo{}, 0.5)
	assert.InDelta(t, base*1.05, certified, 0.0001)

	innovative := m.successProbability(program, &models.CompanyProfile{},
		&models.ProjectInfo{InnovationLevel: models.InnovationHigh}, 0.5)
	assert.InDelta(t, base*1.1, innovative, 0.0001)

	// High everything still respects the ceiling.
	capped := m.successProbability(&models.SubsidyProgram{SuccessRate: 1.0},
		&models.CompanyProfile{Certifications: []string{"ISO9001"}},
		&models.ProjectInfo{InnovationLevel: models.InnovationHigh}, 1.0)
	assert.Equal(t, 0.95, capped)
}

func TestAmountFit_Bands(t *testing.T) {
	m := NewMatcher(catalog.Builtin())
	program := &models.SubsidyProgram{MaxAmount: 100_000_000, SubsidyRate: 0.5}

	// Rate 0.5 gives a coverage ratio of 0.5: the ideal band.
	assert.Equal(t, 1.0, m.amountFit(program, &models.ProjectInfo{Budget: 10_000_000}))

	// Tiny award relative to budget.
	small := &models.SubsidyProgram{MaxAmount: 1_000_000, SubsidyRate: 0.5}
	assert.Equal(t, 0.3, m.amountFit(small, &models.ProjectInfo{Budget: 100_000_000}))

	// Award covering almost everything.
	generous := &models.SubsidyProgram{MaxAmount: 100_000_000, SubsidyRate: 0.9}
	assert.Equal(t, 0.7, m.amountFit(generous, &models.ProjectInfo{Budget: 10_000_000}))

	// Zero budget falls back to a low constant.
	assert.Equal(t, 0.3, m.amountFit(program, &models.ProjectInfo{Budget: 0}))
}

func TestIndustryFit_Lists(t *testing.T) {
	m := NewMatcher(catalog.Builtin())

	excluded := &models.SubsidyProgram{
		Requirements: models.Requirements{ExcludedIndustries: []string{"IT"}},
	}
	assert.Equal(t, 0.0, m.industryFit(excluded, "IT"))

	targeted := &models.SubsidyProgram{
		Requirements: models.Requirements{TargetIndustries: []string{"製造業"}},
	}
	assert.Equal(t, 1.0, m.industryFit(targeted, "製造業"))
	assert.Equal(t, 0.0, m.industryFit(targeted, "IT"))

	affine := &models.SubsidyProgram{
		IndustryAffinity: map[string]float64{"製造業": 0.9},
	}
	assert.Equal(t, 0.9, m.industryFit(affine, "製造業"))
	assert.Equal(t, 0.7, m.industryFit(affine, "小売業"))
}

func TestTimingFit(t *testing.T) {
	m := NewMatcher(catalog.Builtin())

	assert.Equal(t, 1.0, m.timingFit(&models.SubsidyProgram{ApplicationPeriod: "通年"}))
	assert.Equal(t, 0.9, m.timingFit(&models.SubsidyProgram{ApplicationPeriod: "随時"}))
	assert.Equal(t, 0.7, m.timingFit(&models.SubsidyProgram{ApplicationPeriod: "年2回の公募"}))
}

func TestSuccessFit_CompanyAdjustments(t *testing.T) {
	m := NewMatcher(catalog.Builtin())
	program := &models.SubsidyProgram{SuccessRate: 0.5}

	smallCompany := &models.CompanyProfile{EmployeeCount: 30}
	assert.InDelta(t, 0.55, m.successFit(program, smallCompany), 0.0001)

	largeCompany := &models.CompanyProfile{EmployeeCount: 400}
	assert.InDelta(t, 0.45, m.successFit(program, largeCompany), 0.0001)

	experienced := &models.CompanyProfile{EmployeeCount: 30, PastSubsidies: []string{"it-donyu"}}
	assert.InDelta(t, 0.55*1.2, m.successFit(program, experienced), 0.0001)

	// Adjustments never push past 1.0.
	sure := &models.SubsidyProgram{SuccessRate: 0.95}
	assert.Equal(t, 1.0, m.successFit(sure, experienced))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, normalizeText("it"), normalizeText("ＩＴ"))
	assert.Equal(t, "it導入", normalizeText("ＩＴ導入"))
}

func TestRecommend_AnnotationsExplainScores(t *testing.T) {
	m := NewMatcher(catalog.Builtin())

	recs, err := m.Recommend(testProfile(), testProject(), 0)
	require.NoError(t, err)

	for _, rec := range recs {
		if rec.SubScores.SuccessFit > 0.6 {
			assert.NotEmpty(t, rec.Reasons, "high success fit must be explained for %s", rec.Program.ID)
		}
		if rec.SubScores.AmountFit < 0.3 {
			assert.NotEmpty(t, rec.Warnings)
		}
	}
}
