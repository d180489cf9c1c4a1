// Package matcher implements the company-subsidy matching pipeline.
package matcher

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/width"

	"subsidy-advisor-engine/internal/catalog"
	"subsidy-advisor-engine/internal/models"
	"subsidy-advisor-engine/internal/services/eligibility"
	"subsidy-advisor-engine/internal/utils"
)

// Sub-score weights. Must sum to 1.0 so the composite stays in [0,1].
const (
	weightCategoryFit = 0.20
	weightAmountFit   = 0.15
	weightIndustryFit = 0.15
	weightContentFit  = 0.25
	weightSuccessFit  = 0.15
	weightTimingFit   = 0.10
)

// DefaultTopN limits how many recommendations a single request returns.
const DefaultTopN = 10

// scoreThreshold drops recommendations whose match score is too weak to act on.
const scoreThreshold = 0.3

// successProbabilityCap is the hard ceiling on any reported adoption chance.
const successProbabilityCap = 0.95

// Matcher scores eligible catalog programs against a company and project.
// It is stateless apart from the read-only catalog and safe for concurrent use.
type Matcher struct {
	catalog *catalog.Catalog
	filter  *eligibility.Filter
}

// NewMatcher creates a matcher over the given catalog.
func NewMatcher(c *catalog.Catalog) *Matcher {
	return &Matcher{
		catalog: c,
		filter:  eligibility.NewFilter(c),
	}
}

// Recommend filters the catalog to eligible programs, scores each one, and
// returns up to topN recommendations with match score above the threshold,
// sorted by score descending. Ties keep catalog order. topN <= 0 uses
// DefaultTopN.
func (m *Matcher) Recommend(profile *models.CompanyProfile, project *models.ProjectInfo, topN int) ([]*models.SubsidyRecommendation, error) {
	if project == nil || project.Budget < 0 {
		return nil, fmt.Errorf("recommend subsidies: %w", models.ErrInvalidBudget)
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	eligible, err := m.filter.CheckEligibility(profile)
	if err != nil {
		return nil, fmt.Errorf("recommend subsidies: %w", err)
	}

	recommendations := make([]*models.SubsidyRecommendation, 0, len(eligible))
	for _, program := range eligible {
		rec := m.scoreProgram(program, profile, project)
		if rec.MatchScore > scoreThreshold {
			recommendations = append(recommendations, rec)
		}
	}

	// Stable sort keeps catalog order between equal scores.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})

	if len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}

	utils.GetLogger().Info("Recommendation scoring complete",
		zap.Int("eligible_programs", len(eligible)),
		zap.Int("recommendations", len(recommendations)),
	)

	return recommendations, nil
}

// scoreProgram computes the six sub-scores and assembles one recommendation.
func (m *Matcher) scoreProgram(program *models.SubsidyProgram, profile *models.CompanyProfile, project *models.ProjectInfo) *models.SubsidyRecommendation {
	industry := models.NormalizeIndustry(profile.Industry)

	sub := models.SubScores{
		CategoryFit: clamp01(m.categoryFit(program, project, industry)),
		AmountFit:   clamp01(m.amountFit(program, project)),
		IndustryFit: clamp01(m.industryFit(program, industry)),
		ContentFit:  clamp01(m.contentFit(program, project)),
		SuccessFit:  clamp01(m.successFit(program, profile)),
		TimingFit:   clamp01(m.timingFit(program)),
	}

	matchScore := sub.CategoryFit*weightCategoryFit +
		sub.AmountFit*weightAmountFit +
		sub.IndustryFit*weightIndustryFit +
		sub.ContentFit*weightContentFit +
		sub.SuccessFit*weightSuccessFit +
		sub.TimingFit*weightTimingFit
	matchScore = clamp01(matchScore)

	rec := &models.SubsidyRecommendation{
		Program:            program,
		MatchScore:         matchScore,
		SubScores:          sub,
		EstimatedAmount:    program.EstimatedAward(project.Budget),
		SuccessProbability: m.successProbability(program, profile, project, matchScore),
	}

	m.annotate(rec, program)

	return rec
}

// categoryFit measures keyword overlap between the project's type/keywords
// and the program category's vocabulary, with an affinity bonus for the
// company's industry.
func (m *Matcher) categoryFit(program *models.SubsidyProgram, project *models.ProjectInfo, industry string) float64 {
	keywords := categoryKeywords[program.Category]
	if len(keywords) == 0 {
		return 0.5
	}

	text := normalizeText(project.ProjectType + " " + strings.Join(project.Keywords, " "))

	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, normalizeText(kw)) {
			hits++
		}
	}

	score := float64(hits) / 3.0
	if score > 1.0 {
		score = 1.0
	}

	if bonus, ok := program.IndustryAffinity[industry]; ok && bonus >= 0.8 {
		score += 0.1
	}

	return score
}

// amountFit scores how well the estimated award covers the project budget.
// A coverage ratio in the 0.3-0.7 band is ideal.
func (m *Matcher) amountFit(program *models.SubsidyProgram, project *models.ProjectInfo) float64 {
	if project.Budget <= 0 {
		return 0.3
	}

	ratio := program.EstimatedAward(project.Budget) / project.Budget

	switch {
	case ratio >= 0.3 && ratio <= 0.7:
		return 1.0
	case ratio < 0.2:
		return 0.3
	case ratio > 0.8:
		return 0.7
	default:
		return 0.6
	}
}

// industryFit applies explicit target/excluded lists first, then the
// program's affinity table, defaulting to 0.7 for unlisted industries.
func (m *Matcher) industryFit(program *models.SubsidyProgram, industry string) float64 {
	for _, excluded := range program.Requirements.ExcludedIndustries {
		if models.NormalizeIndustry(excluded) == industry {
			return 0.0
		}
	}
	if len(program.Requirements.TargetIndustries) > 0 {
		for _, target := range program.Requirements.TargetIndustries {
			if models.NormalizeIndustry(target) == industry {
				return 1.0
			}
		}
		return 0.0
	}
	if affinity, ok := program.IndustryAffinity[industry]; ok {
		return affinity
	}
	return 0.7
}

// contentFit combines expense-type overlap with evaluation-criteria keyword
// overlap, weighted 60/40.
func (m *Matcher) contentFit(program *models.SubsidyProgram, project *models.ProjectInfo) float64 {
	expenseScore := 0.5
	if len(project.ExpenseTypes) > 0 && len(program.EligibleExpenses) > 0 {
		eligibleText := normalizeText(strings.Join(program.EligibleExpenses, " "))
		covered := 0
		for _, expense := range project.ExpenseTypes {
			if strings.Contains(eligibleText, normalizeText(expense)) {
				covered++
			}
		}
		expenseScore = float64(covered) / float64(len(project.ExpenseTypes))
	}

	criteriaScore := 0.5
	if len(program.EvaluationCriteria) > 0 {
		criteriaText := normalizeText(strings.Join(program.EvaluationCriteria, " "))
		projectText := normalizeText(strings.Join(project.Strengths, " ") + " " + strings.Join(project.Keywords, " "))
		hits := 0
		for _, kw := range criteriaKeywords {
			norm := normalizeText(kw)
			if strings.Contains(criteriaText, norm) && strings.Contains(projectText, norm) {
				hits++
			}
		}
		criteriaScore = 0.4 + float64(hits)*0.2
		if criteriaScore > 1.0 {
			criteriaScore = 1.0
		}
	}

	return expenseScore*0.6 + criteriaScore*0.4
}

// successFit starts from the program's historical success rate, adjusted by
// company size and past subsidy experience.
func (m *Matcher) successFit(program *models.SubsidyProgram, profile *models.CompanyProfile) float64 {
	score := program.SuccessRate

	switch {
	case profile.EmployeeCount <= 50:
		score *= 1.1
	case profile.EmployeeCount > 300:
		score *= 0.9
	}

	if len(profile.PastSubsidies) > 0 {
		score *= 1.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// timingFit prefers programs a company can apply to right now.
func (m *Matcher) timingFit(program *models.SubsidyProgram) float64 {
	period := program.ApplicationPeriod
	switch {
	case strings.Contains(period, "通年"):
		return 1.0
	case strings.Contains(period, "随時"):
		return 0.9
	default:
		return 0.7
	}
}

// successProbability estimates the adoption chance for this recommendation.
func (m *Matcher) successProbability(program *models.SubsidyProgram, profile *models.CompanyProfile, project *models.ProjectInfo, matchScore float64) float64 {
	probability := program.SuccessRate * (0.5 + matchScore*0.5)

	if len(profile.Certifications) > 0 {
		probability *= 1.05
	}
	if project.InnovationLevel == models.InnovationHigh {
		probability *= 1.1
	}

	if probability > successProbabilityCap {
		probability = successProbabilityCap
	}
	return probability
}

// annotate appends human-readable reasons and warnings based on sub-score
// thresholds.
func (m *Matcher) annotate(rec *models.SubsidyRecommendation, program *models.SubsidyProgram) {
	if rec.SubScores.CategoryFit > 0.7 {
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("事業内容が「%s」の対象分野と高く合致しています", program.Name))
	}
	if rec.SubScores.ContentFit > 0.7 {
		rec.Reasons = append(rec.Reasons, "計画している経費の多くが補助対象経費に含まれます")
	}
	if rec.SubScores.SuccessFit > 0.6 {
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("採択率の実績が高い制度です（%.0f%%）", program.SuccessRate*100))
	}
	if rec.SubScores.AmountFit < 0.3 {
		rec.Warnings = append(rec.Warnings, "補助上限額に対して事業予算が大きく、自己負担割合が高くなります")
	}
	if rec.SubScores.TimingFit < 0.5 {
		rec.Warnings = append(rec.Warnings, "公募期間が限られています。次回公募スケジュールを確認してください")
	}
	if rec.SubScores.IndustryFit < 0.5 {
		rec.Warnings = append(rec.Warnings, "業種との適合度が低めです。公募要領の対象要件を確認してください")
	}
}

// normalizeText folds full-width characters to half-width and lowercases,
// so keyword matching treats ＩＴ and IT as the same token.
func normalizeText(s string) string {
	return strings.ToLower(width.Fold.String(s))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
