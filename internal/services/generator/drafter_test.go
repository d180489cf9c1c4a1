package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-advisor-engine/internal/catalog"
	"subsidy-advisor-engine/internal/models"
	"subsidy-advisor-engine/internal/services/quality"
)

func newTestDrafter(t *testing.T) *Drafter {
	t.Helper()
	scorer, err := quality.NewScorer(nil)
	require.NoError(t, err)
	return NewDrafter(scorer)
}

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
		Budget:      8_000_000,
		ProjectType: "生産ラインの自動化",
		Keywords:    []string{"生産性", "設備"},
		Strengths:   []string{"熟練の加工技術"},
	}
}

func TestGenerate_SectionsFollowProgram(t *testing.T) {
	program := catalog.Builtin().ByID("monozukuri")
	require.NotNil(t, program)
	require.NotEmpty(t, program.DocumentSections)

	doc := NewGenerator().Generate(testProfile(), testProject(), program)

	assert.Len(t, doc, len(program.DocumentSections))
	for _, section := range program.DocumentSections {
		node, ok := doc[section]
		require.True(t, ok, "missing section %s", section)
		text, isText := node.(models.TextNode)
		require.True(t, isText)
		assert.NotEmpty(t, string(text))
	}
}

func TestGenerate_FallbackSectionWhenProgramHasNone(t *testing.T) {
	program := &models.SubsidyProgram{ID: "bare", Name: "テスト補助金"}

	doc := NewGenerator().Generate(testProfile(), testProject(), program)

	require.Len(t, doc, 1)
	_, ok := doc["事業計画"]
	assert.True(t, ok)
}

func TestGenerate_UsesProjectVariables(t *testing.T) {
	program := &models.SubsidyProgram{
		ID:               "bare",
		Name:             "テスト補助金",
		DocumentSections: []string{"事業計画", "現状の課題"},
	}

	doc := NewGenerator().Generate(testProfile(), testProject(), program)

	plan := string(doc["事業計画"].(models.TextNode))
	assert.Contains(t, plan, "生産ラインの自動化")
	assert.Contains(t, plan, "熟練の加工技術")
	assert.Contains(t, plan, "800万円")

	challenges := string(doc["現状の課題"].(models.TextNode))
	assert.Contains(t, challenges, "25名")
}

func TestGenerate_NilInputsFallBackToDefaults(t *testing.T) {
	program := &models.SubsidyProgram{
		ID:               "bare",
		Name:             "テスト補助金",
		DocumentSections: []string{"事業計画"},
	}

	doc := NewGenerator().Generate(nil, nil, program)

	plan := string(doc["事業計画"].(models.TextNode))
	assert.Contains(t, plan, defaultProjectType)
	assert.Contains(t, plan, defaultKeyword)
}

func TestDraft_ReturnsAnalysisAndBoundedIterations(t *testing.T) {
	program := catalog.Builtin().ByID("monozukuri")
	require.NotNil(t, program)

	drafter := newTestDrafter(t)
	result, err := drafter.Draft(testProfile(), testProject(), program, 0, 0)
	require.NoError(t, err)

	require.NotNil(t, result.Analysis)
	assert.GreaterOrEqual(t, result.Iterations, 1)
	assert.LessOrEqual(t, result.Iterations, DefaultMaxIterations)
	assert.Greater(t, result.Analysis.OverallScore, 0.0)
	assert.Len(t, result.Document, len(program.DocumentSections))
}

func TestDraft_StopsEarlyWhenTargetReached(t *testing.T) {
	program := catalog.Builtin().ByID("monozukuri")
	require.NotNil(t, program)

	drafter := newTestDrafter(t)

	// A target of 1 is met by the very first draft.
	result, err := drafter.Draft(testProfile(), testProject(), program, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Iterations)
	assert.GreaterOrEqual(t, result.Analysis.OverallScore, 1.0)
}

func TestDraft_UnreachableTargetUsesAllIterations(t *testing.T) {
	program := catalog.Builtin().ByID("jizokuka")
	require.NotNil(t, program)

	drafter := newTestDrafter(t)

	single, err := drafter.Draft(testProfile(), testProject(), program, 1, 100)
	require.NoError(t, err)
	iterated, err := drafter.Draft(testProfile(), testProject(), program, 3, 100)
	require.NoError(t, err)

	assert.Equal(t, 1, single.Iterations)
	assert.Equal(t, 3, iterated.Iterations)
}

func TestDraft_EmptySectionListStillDrafts(t *testing.T) {
	program := &models.SubsidyProgram{ID: "bare", Name: "テスト補助金"}

	drafter := newTestDrafter(t)
	result, err := drafter.Draft(testProfile(), testProject(), program, 2, 90)
	require.NoError(t, err)

	require.NotNil(t, result.Analysis)
	assert.Len(t, result.Document, 1)
}

func TestWeakestCategory(t *testing.T) {
	analysis := &models.QualityAnalysisResult{
		CategoryScores: map[models.CheckCategory]float64{
			models.CheckGrammar:        90,
			models.CheckTerminology:    85,
			models.CheckLogicStructure: 40,
			models.CheckPersuasiveness: 70,
			models.CheckReadability:    80,
			models.CheckCompliance:     95,
		},
	}
	assert.Equal(t, models.CheckLogicStructure, weakestCategory(analysis))
}

func TestSectionOrderIsSorted(t *testing.T) {
	doc := models.Document{
		"資金計画": models.TextNode("a"),
		"事業計画": models.TextNode("b"),
		"実施体制": models.TextNode("c"),
	}
	order := sectionOrder(doc)
	require.Len(t, order, 3)
	assert.True(t, strings.Compare(order[0], order[1]) < 0)
	assert.True(t, strings.Compare(order[1], order[2]) < 0)
}
