// Package quality implements the document quality scoring battery: six
// independent rule-based checks combined into a weighted overall score,
// plus the advisor that turns findings into an improvement report.
package quality

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/text/width"

	"subsidy-advisor-engine/internal/models"
	"subsidy-advisor-engine/internal/utils"
)

// maxPriorityFixes caps the priority_fixes list in the analysis result.
const maxPriorityFixes = 5

// suggestionThreshold is the category score below which an improvement
// suggestion is generated.
const suggestionThreshold = 80.0

// strengthThreshold is the category score at or above which a strength
// message is generated.
const strengthThreshold = 85.0

// checkFunc runs one category check over the folded text and its sentences.
type checkFunc func(text string, sentences []string) (float64, []models.QualityIssue)

var checksByCategory = map[models.CheckCategory]checkFunc{
	models.CheckGrammar:        checkGrammar,
	models.CheckTerminology:    checkTerminology,
	models.CheckLogicStructure: checkLogicStructure,
	models.CheckPersuasiveness: checkPersuasiveness,
	models.CheckReadability:    checkReadability,
	models.CheckCompliance:     checkCompliance,
}

// Scorer analyzes documents with a fixed weight profile. It holds no
// per-request state and is safe for concurrent use.
type Scorer struct {
	weights WeightProfile
}

// NewScorer creates a scorer with the given weight profile. A nil profile
// selects the default.
func NewScorer(weights WeightProfile) (*Scorer, error) {
	if weights == nil {
		weights = ProfileMonozukuri
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weight profile: %w", err)
	}
	return &Scorer{weights: weights}, nil
}

// Analyze runs all six checks against the flattened document text and
// assembles the full analysis result. Two calls on the same document return
// identical results.
func (s *Scorer) Analyze(doc models.Document) (*models.QualityAnalysisResult, error) {
	text := width.Fold.String(doc.FlattenText())
	if text == "" {
		return nil, fmt.Errorf("analyze document: %w", models.ErrEmptyDocument)
	}
	sentences := splitSentences(text)

	result := &models.QualityAnalysisResult{
		CategoryScores: make(map[models.CheckCategory]float64, len(checksByCategory)),
	}

	// Checks run in the fixed category order so the issue list is stable.
	for _, category := range models.AllCheckCategories() {
		score, issues := checksByCategory[category](text, sentences)
		result.CategoryScores[category] = score
		result.Issues = append(result.Issues, issues...)
		result.OverallScore += score * s.weights[category]
	}
	result.OverallScore = clampScore(result.OverallScore)

	s.collectStrengths(result)
	s.buildSuggestions(result)
	s.selectPriorityFixes(result)

	for _, issue := range result.Issues {
		result.EstimatedFixMinutes += issue.Severity.FixMinutes()
	}

	utils.GetLogger().Info("Document analysis complete",
		zap.Float64("overall_score", result.OverallScore),
		zap.Int("issues", len(result.Issues)),
		zap.Int("sentences", len(sentences)),
	)

	return result, nil
}

// collectStrengths adds a canned message for every high-scoring category.
func (s *Scorer) collectStrengths(result *models.QualityAnalysisResult) {
	for _, category := range models.AllCheckCategories() {
		score := result.CategoryScores[category]
		if score >= strengthThreshold {
			result.Strengths = append(result.Strengths,
				fmt.Sprintf("%sは高い水準です（%.0f点）", categoryLabels[category], score))
		}
	}
}

// buildSuggestions aggregates each underperforming category's issues into
// one suggestion, sorted by achievable uplift descending.
func (s *Scorer) buildSuggestions(result *models.QualityAnalysisResult) {
	for _, category := range models.AllCheckCategories() {
		score := result.CategoryScores[category]
		if score >= suggestionThreshold {
			continue
		}

		uplift := 0.0
		count := 0
		for _, issue := range result.Issues {
			if issue.Category == category {
				uplift += issue.ImpactScore
				count++
			}
		}
		if count == 0 {
			continue
		}

		priority := models.PriorityMedium
		if score < 70 {
			priority = models.PriorityHigh
		}

		result.Suggestions = append(result.Suggestions, models.ImprovementSuggestion{
			Category:         category,
			CurrentScore:     score,
			PotentialScore:   clampScore(score + uplift),
			Priority:         priority,
			IssueCount:       count,
			EstimatedMinutes: 10 * count,
		})
	}

	sort.SliceStable(result.Suggestions, func(i, j int) bool {
		upliftI := result.Suggestions[i].PotentialScore - result.Suggestions[i].CurrentScore
		upliftJ := result.Suggestions[j].PotentialScore - result.Suggestions[j].CurrentScore
		return upliftI > upliftJ
	})
}

// selectPriorityFixes ranks all issues by severity then impact and keeps
// the top few.
func (s *Scorer) selectPriorityFixes(result *models.QualityAnalysisResult) {
	fixes := make([]models.QualityIssue, len(result.Issues))
	copy(fixes, result.Issues)

	sort.SliceStable(fixes, func(i, j int) bool {
		if fixes[i].Severity.Rank() != fixes[j].Severity.Rank() {
			return fixes[i].Severity.Rank() > fixes[j].Severity.Rank()
		}
		return fixes[i].ImpactScore > fixes[j].ImpactScore
	})

	if len(fixes) > maxPriorityFixes {
		fixes = fixes[:maxPriorityFixes]
	}
	result.PriorityFixes = fixes
}
