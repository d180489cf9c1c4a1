package quality

import (
	"fmt"
	"strings"

	"subsidy-advisor-engine/internal/models"
)

// qualityBand maps an overall-score range to a fixed quality level.
type qualityBand struct {
	minScore float64
	level    string
	message  string
}

// Bands are checked top-down; the first match wins.
var qualityBands = []qualityBand{
	{90, "最高水準", "非常に完成度の高い申請書です。このまま提出できる水準にあります。"},
	{80, "高水準", "完成度の高い申請書です。細部を調整すればさらに評価が上がります。"},
	{70, "良好", "概ね良好な申請書です。指摘事項を反映すると採択可能性が高まります。"},
	{60, "要改善", "改善の余地が大きい申請書です。優先度の高い指摘から修正してください。"},
	{0, "大幅な改善が必要", "このままの提出は推奨できません。構成から見直すことを推奨します。"},
}

// Advisor renders analysis results as user-facing reports.
type Advisor struct{}

// NewAdvisor creates an advisor.
func NewAdvisor() *Advisor {
	return &Advisor{}
}

// Report renders a human-readable improvement report: quality level, category
// breakdown, strengths, priority fixes with expected gains, and a fix-time
// breakdown by severity.
func (a *Advisor) Report(result *models.QualityAnalysisResult) string {
	band := bandFor(result.OverallScore)

	var b strings.Builder

	fmt.Fprintf(&b, "■ 総合評価: %.1f点（%s）\n", result.OverallScore, band.level)
	b.WriteString(band.message)
	b.WriteString("\n\n")

	b.WriteString("■ カテゴリ別スコア\n")
	for _, category := range models.AllCheckCategories() {
		fmt.Fprintf(&b, "  %s: %.0f点\n", categoryLabels[category], result.CategoryScores[category])
	}

	if len(result.Strengths) > 0 {
		b.WriteString("\n■ 強み\n")
		for _, strength := range result.Strengths {
			fmt.Fprintf(&b, "  ・%s\n", strength)
		}
	}

	if len(result.PriorityFixes) > 0 {
		b.WriteString("\n■ 優先修正項目\n")
		for i, fix := range result.PriorityFixes {
			fmt.Fprintf(&b, "  %d. [%s] %s（改善効果: +%.0f点）\n",
				i+1, categoryLabels[fix.Category], fix.Description, fix.ImpactScore)
			fmt.Fprintf(&b, "     → %s\n", fix.Suggestion)
		}
	}

	counts := result.SeverityCounts()
	if result.EstimatedFixMinutes > 0 {
		b.WriteString("\n■ 修正時間の目安\n")
		if n := counts[models.SeverityCritical]; n > 0 {
			fmt.Fprintf(&b, "  重大な問題 %d件: 約%d分\n", n, n*models.SeverityCritical.FixMinutes())
		}
		if n := counts[models.SeverityMajor]; n > 0 {
			fmt.Fprintf(&b, "  主要な問題 %d件: 約%d分\n", n, n*models.SeverityMajor.FixMinutes())
		}
		if n := counts[models.SeverityMinor]; n > 0 {
			fmt.Fprintf(&b, "  軽微な問題 %d件: 約%d分\n", n, n*models.SeverityMinor.FixMinutes())
		}
		fmt.Fprintf(&b, "  合計: 約%d分\n", result.EstimatedFixMinutes)
	}

	return b.String()
}

// QualityLevel returns the band label for an overall score.
func (a *Advisor) QualityLevel(score float64) string {
	return bandFor(score).level
}

func bandFor(score float64) qualityBand {
	for _, band := range qualityBands {
		if score >= band.minScore {
			return band
		}
	}
	return qualityBands[len(qualityBands)-1]
}
