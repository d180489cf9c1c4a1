package ses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-advisor-engine/internal/models"
)

func sampleDetails() []*models.RecommendationWithDetails {
	return []*models.RecommendationWithDetails{
		{
			Recommendation: models.Recommendation{
				ID:                 1,
				CompanyID:          10,
				ProgramID:          "it-donyu",
				MatchScore:         0.82,
				EstimatedAmount:    2_250_000,
				SuccessProbability: 0.61,
			},
			CompanyEmail:      "tanaka@example.co.jp",
			CompanyName:       "田中製作所",
			ProgramName:       "IT導入補助金",
			MaxAmount:         4_500_000,
			SubsidyRate:       0.5,
			ApplicationPeriod: "通年",
		},
		{
			Recommendation: models.Recommendation{
				ID:                 2,
				CompanyID:          10,
				ProgramID:          "jizokuka",
				MatchScore:         0.64,
				EstimatedAmount:    1_000_000,
				SuccessProbability: 0.55,
			},
			CompanyEmail:      "tanaka@example.co.jp",
			CompanyName:       "田中製作所",
			ProgramName:       "小規模事業者持続化補助金",
			MaxAmount:         2_000_000,
			SubsidyRate:       0.67,
			ApplicationPeriod: "第15回締切: 2026-10-31",
		},
	}
}

func TestBuildRecommendationNotificationParams(t *testing.T) {
	params := BuildRecommendationNotificationParams(sampleDetails(), "https://example.com/dashboard")

	assert.Equal(t, "田中製作所", params.CompanyName)
	assert.Equal(t, "tanaka@example.co.jp", params.CompanyEmail)
	assert.Equal(t, 2, params.ProgramCount)
	require.Len(t, params.TopPrograms, 2)
	assert.Equal(t, "IT導入補助金", params.TopPrograms[0].ProgramName)
	assert.Equal(t, 2_250_000.0, params.TopPrograms[0].EstimatedAmount)
	assert.Equal(t, "https://example.com/dashboard", params.DashboardURL)
}

func TestBuildRecommendationNotificationParams_Fallbacks(t *testing.T) {
	empty := BuildRecommendationNotificationParams(nil, "")
	assert.Zero(t, empty.ProgramCount)

	details := sampleDetails()[:1]
	details[0].CompanyName = ""
	params := BuildRecommendationNotificationParams(details, "")
	assert.Equal(t, "ご担当者", params.CompanyName)
}

func TestRenderRecommendationHTML(t *testing.T) {
	svc := &Service{}
	params := BuildRecommendationNotificationParams(sampleDetails(), "https://example.com/dashboard")

	html, err := svc.renderRecommendationHTML(params)
	require.NoError(t, err)

	assert.Contains(t, html, "田中製作所様に2件の補助金候補")
	assert.Contains(t, html, "IT導入補助金")
	assert.Contains(t, html, "小規模事業者持続化補助金")
	// Match score renders as a percentage badge.
	assert.Contains(t, html, "82%")
	assert.Contains(t, html, "https://example.com/dashboard")
}

func TestRenderRecommendationText(t *testing.T) {
	svc := &Service{}
	params := BuildRecommendationNotificationParams(sampleDetails(), "")

	text := svc.renderRecommendationText(params)

	assert.Contains(t, text, "田中製作所様")
	assert.Contains(t, text, "2件の補助金候補")
	assert.Contains(t, text, "1. IT導入補助金")
	assert.Contains(t, text, "補助率 50%")
	assert.Contains(t, text, "採択見込み: 61%")
	assert.NotContains(t, text, "詳細はこちら")
}
