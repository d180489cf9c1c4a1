// Package models defines the data structures for the subsidy advisor engine.
package models

// CheckCategory identifies one of the six document quality checks.
type CheckCategory string

const (
	CheckGrammar        CheckCategory = "grammar"
	CheckTerminology    CheckCategory = "terminology"
	CheckLogicStructure CheckCategory = "logic_structure"
	CheckPersuasiveness CheckCategory = "persuasiveness"
	CheckReadability    CheckCategory = "readability"
	CheckCompliance     CheckCategory = "compliance"
)

// AllCheckCategories returns the check categories in their fixed evaluation
// order.
func AllCheckCategories() []CheckCategory {
	return []CheckCategory{
		CheckGrammar,
		CheckTerminology,
		CheckLogicStructure,
		CheckPersuasiveness,
		CheckReadability,
		CheckCompliance,
	}
}

// Severity classifies how serious a quality issue is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// Rank returns the sort rank of a severity, highest first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityMajor:
		return 2
	case SeverityMinor:
		return 1
	default:
		return 0
	}
}

// FixMinutes returns the estimated minutes to fix one issue of this severity.
func (s Severity) FixMinutes() int {
	switch s {
	case SeverityCritical:
		return 30
	case SeverityMajor:
		return 15
	default:
		return 5
	}
}

// QualityIssue is a single finding from one quality check. Created fresh
// per analysis call and never mutated afterwards.
type QualityIssue struct {
	Category    CheckCategory `json:"category"`
	Severity    Severity      `json:"severity"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	Suggestion  string        `json:"suggestion"`
	// ImpactScore is the expected overall score gain if the issue is fixed;
	// it equals the penalty the issue triggered.
	ImpactScore float64 `json:"impact_score"`
}

// SuggestionPriority classifies an improvement suggestion.
type SuggestionPriority string

const (
	PriorityHigh   SuggestionPriority = "high"
	PriorityMedium SuggestionPriority = "medium"
)

// ImprovementSuggestion aggregates the issues of one underperforming
// category into an actionable recommendation.
type ImprovementSuggestion struct {
	Category         CheckCategory      `json:"category"`
	CurrentScore     float64            `json:"current_score"`
	PotentialScore   float64            `json:"potential_score"`
	Priority         SuggestionPriority `json:"priority"`
	IssueCount       int                `json:"issue_count"`
	EstimatedMinutes int                `json:"estimated_minutes"`
}

// QualityAnalysisResult is the full outcome of one document analysis.
type QualityAnalysisResult struct {
	OverallScore        float64                   `json:"overall_score"`
	CategoryScores      map[CheckCategory]float64 `json:"category_scores"`
	Issues              []QualityIssue            `json:"issues"`
	Strengths           []string                  `json:"strengths"`
	Suggestions         []ImprovementSuggestion   `json:"suggestions"`
	EstimatedFixMinutes int                       `json:"estimated_fix_minutes"`
	PriorityFixes       []QualityIssue            `json:"priority_fixes"`
}

// SeverityCounts tallies issues by severity.
func (r *QualityAnalysisResult) SeverityCounts() map[Severity]int {
	counts := make(map[Severity]int, 3)
	for _, issue := range r.Issues {
		counts[issue.Severity]++
	}
	return counts
}
