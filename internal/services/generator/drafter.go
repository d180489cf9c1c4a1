package generator

import (
	"fmt"

	"go.uber.org/zap"

	"subsidy-advisor-engine/internal/models"
	"subsidy-advisor-engine/internal/services/quality"
	"subsidy-advisor-engine/internal/utils"
)

// DefaultMaxIterations bounds the draft-improve loop.
const DefaultMaxIterations = 3

// DefaultTargetScore is the overall quality score at which drafting stops.
const DefaultTargetScore = 80.0

// Drafter runs the generate-score-improve loop: produce a draft, analyze it,
// reinforce the weakest category, and repeat until the target score or the
// iteration budget is reached.
type Drafter struct {
	generator *Generator
	scorer    *quality.Scorer
}

// DraftResult is the outcome of one drafting run.
type DraftResult struct {
	Document   models.Document               `json:"document"`
	Analysis   *models.QualityAnalysisResult `json:"analysis"`
	Iterations int                           `json:"iterations"`
}

// NewDrafter creates a drafter using the given scorer.
func NewDrafter(scorer *quality.Scorer) *Drafter {
	return &Drafter{
		generator: NewGenerator(),
		scorer:    scorer,
	}
}

// Draft generates a document for the program and iteratively improves it.
// maxIterations <= 0 and targetScore <= 0 select the defaults.
func (d *Drafter) Draft(profile *models.CompanyProfile, project *models.ProjectInfo, program *models.SubsidyProgram, maxIterations int, targetScore float64) (*DraftResult, error) {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if targetScore <= 0 {
		targetScore = DefaultTargetScore
	}

	doc := d.generator.Generate(profile, project, program)

	var analysis *models.QualityAnalysisResult
	iterations := 0
	for iterations < maxIterations {
		iterations++

		var err error
		analysis, err = d.scorer.Analyze(doc)
		if err != nil {
			return nil, fmt.Errorf("draft iteration %d: %w", iterations, err)
		}

		utils.GetLogger().Info("Draft iteration scored",
			zap.Int("iteration", iterations),
			zap.Float64("overall_score", analysis.OverallScore),
		)

		if analysis.OverallScore >= targetScore {
			break
		}
		if iterations == maxIterations {
			break
		}

		d.reinforce(doc, analysis)
	}

	return &DraftResult{
		Document:   doc,
		Analysis:   analysis,
		Iterations: iterations,
	}, nil
}

// reinforce appends remedial text for the weakest-scoring category to the
// document's first section.
func (d *Drafter) reinforce(doc models.Document, analysis *models.QualityAnalysisResult) {
	weakest := weakestCategory(analysis)
	addition, ok := reinforcements[weakest]
	if !ok {
		return
	}

	for _, section := range sectionOrder(doc) {
		if text, isText := doc[section].(models.TextNode); isText {
			doc[section] = models.TextNode(string(text) + addition)
			return
		}
	}
}

// reinforcements holds remedial sentences that target each check's triggers.
var reinforcements = map[models.CheckCategory]string{
	models.CheckLogicStructure: "現状の分析を踏まえ、課題を明確にし、事業の目的と期待される効果を整理しました。したがって、本計画はこれらを一貫した論理で結び付けています。",
	models.CheckPersuasiveness: "当社の強みである独自の技術力は競合との差別化要因であり、売上10%向上、作業時間30%削減、不良率50%低減という3つの数値目標を2年以内に達成します。",
	models.CheckCompliance:     "事業計画・資金計画・実施体制・スケジュールの各項目は添付資料のとおり定めています。",
	models.CheckTerminology:    "当社は本事業を着実に実施し、地域経済への寄与を図る取り組みを推進します。",
}

func weakestCategory(analysis *models.QualityAnalysisResult) models.CheckCategory {
	weakest := models.CheckGrammar
	lowest := 101.0
	for _, category := range models.AllCheckCategories() {
		if score := analysis.CategoryScores[category]; score < lowest {
			lowest = score
			weakest = category
		}
	}
	return weakest
}

func sectionOrder(doc models.Document) []string {
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	// Deterministic order so repeated runs reinforce the same section.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}
