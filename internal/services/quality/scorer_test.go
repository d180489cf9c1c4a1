package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-advisor-engine/internal/models"
)

// wellFormedDocument covers all required sections and compliance elements,
// uses a formal register, and backs its claims with numbers.
func wellFormedDocument() models.Document {
	return models.Document{
		"現状と課題": models.TextNode(
			"現状では、当社の生産工程は手作業が中心であり、月に200時間ほどの作業時間がかかっています。" +
				"そのため、課題は生産性の低さにあると考えています。"),
		"目的と効果": models.TextNode(
			"本事業の目的は、あたらしい設備の活用により作業時間を30%削減することです。" +
				"これにより、期待される効果として売上10%の向上と不良率50%の低減を見込んでいます。" +
				"また、当社の強みであるゆたかな経験と独自の技術力は、他社との差別化につながる優位性です。"),
		"実施計画": models.TextNode(
			"事業計画とスケジュールは別紙のとおり定め、実施体制は社長を責任者とする3名の体制とします。" +
				"資金計画では、自己資金と補助金をあわせて500万円を見込んでいます。"),
	}
}

// sloppyDocument is short, casual, and structurally incomplete.
func sloppyDocument() models.Document {
	return models.Document{
		"内容": models.TextNode("弊社はすごい技術があります。です。です。たくさんがんばります。"),
	}
}

func newDefaultScorer(t *testing.T) *Scorer {
	t.Helper()
	scorer, err := NewScorer(nil)
	require.NoError(t, err)
	return scorer
}

func TestAnalyze_WellFormedDocument(t *testing.T) {
	scorer := newDefaultScorer(t)

	result, err := scorer.Analyze(wellFormedDocument())
	require.NoError(t, err)

	assert.Equal(t, 85.0, result.CategoryScores[models.CheckGrammar])
	assert.Equal(t, 85.0, result.CategoryScores[models.CheckTerminology])
	assert.Equal(t, 75.0, result.CategoryScores[models.CheckLogicStructure])
	assert.Equal(t, 88.0, result.CategoryScores[models.CheckPersuasiveness])
	assert.Equal(t, 80.0, result.CategoryScores[models.CheckReadability])
	assert.Equal(t, 90.0, result.CategoryScores[models.CheckCompliance])

	assert.InDelta(t, 83.2, result.OverallScore, 0.001)
	assert.NotEmpty(t, result.Strengths)
}

func TestAnalyze_OverallIsWeightedSum(t *testing.T) {
	scorer := newDefaultScorer(t)

	for _, doc := range []models.Document{wellFormedDocument(), sloppyDocument()} {
		result, err := scorer.Analyze(doc)
		require.NoError(t, err)

		expected := 0.0
		for category, score := range result.CategoryScores {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
			expected += score * ProfileMonozukuri[category]
		}
		assert.InDelta(t, expected, result.OverallScore, 0.001)
	}
}

func TestAnalyze_SloppyDocumentScoresLower(t *testing.T) {
	scorer := newDefaultScorer(t)

	good, err := scorer.Analyze(wellFormedDocument())
	require.NoError(t, err)

	bad, err := scorer.Analyze(sloppyDocument())
	require.NoError(t, err)

	assert.Less(t, bad.OverallScore, good.OverallScore)
	assert.Less(t, bad.CategoryScores[models.CheckGrammar], good.CategoryScores[models.CheckGrammar],
		"repeated sentence endings must lower the grammar score")
	assert.NotEmpty(t, bad.Issues)

	// Casual vocabulary is reported as a terminology issue.
	foundInformal := false
	for _, issue := range bad.Issues {
		if issue.Category == models.CheckTerminology {
			foundInformal = true
		}
	}
	assert.True(t, foundInformal, "expected a terminology issue for casual wording")
}

func TestAnalyze_IsDeterministic(t *testing.T) {
	scorer := newDefaultScorer(t)

	first, err := scorer.Analyze(sloppyDocument())
	require.NoError(t, err)
	second, err := scorer.Analyze(sloppyDocument())
	require.NoError(t, err)

	assert.Equal(t, first.OverallScore, second.OverallScore)
	assert.Equal(t, first.CategoryScores, second.CategoryScores)
	require.Equal(t, len(first.Issues), len(second.Issues))
	for i := range first.Issues {
		assert.Equal(t, first.Issues[i], second.Issues[i])
	}
}

func TestAnalyze_EmptyDocument(t *testing.T) {
	scorer := newDefaultScorer(t)

	_, err := scorer.Analyze(models.Document{})
	assert.ErrorIs(t, err, models.ErrEmptyDocument)

	_, err = scorer.Analyze(models.Document{"空": models.TextNode("")})
	assert.ErrorIs(t, err, models.ErrEmptyDocument)
}

func TestAnalyze_FullWidthTextIsFolded(t *testing.T) {
	scorer := newDefaultScorer(t)

	// Full-width digits and percent signs count as quantitative evidence.
	halfWidth, err := scorer.Analyze(models.Document{
		"効果": models.TextNode("売上10%向上、時間30%削減、不良率50%低減、3名体制、500万円、200時間。"),
	})
	require.NoError(t, err)

	fullWidth, err := scorer.Analyze(models.Document{
		"効果": models.TextNode("売上１０％向上、時間３０％削減、不良率５０％低減、３名体制、５００万円、２００時間。"),
	})
	require.NoError(t, err)

	assert.Equal(t,
		halfWidth.CategoryScores[models.CheckPersuasiveness],
		fullWidth.CategoryScores[models.CheckPersuasiveness])
}

func TestAnalyze_SuggestionsAndPriorityFixes(t *testing.T) {
	scorer := newDefaultScorer(t)

	result, err := scorer.Analyze(sloppyDocument())
	require.NoError(t, err)

	// Every suggestion targets a category scoring below 80 and is sorted by
	// achievable uplift descending.
	require.NotEmpty(t, result.Suggestions)
	for _, suggestion := range result.Suggestions {
		assert.Less(t, suggestion.CurrentScore, 80.0)
		assert.GreaterOrEqual(t, suggestion.PotentialScore, suggestion.CurrentScore)
		assert.Greater(t, suggestion.IssueCount, 0)
		assert.Equal(t, 10*suggestion.IssueCount, suggestion.EstimatedMinutes)
		if suggestion.CurrentScore < 70 {
			assert.Equal(t, models.PriorityHigh, suggestion.Priority)
		}
	}
	for i := 1; i < len(result.Suggestions); i++ {
		upliftPrev := result.Suggestions[i-1].PotentialScore - result.Suggestions[i-1].CurrentScore
		upliftCurr := result.Suggestions[i].PotentialScore - result.Suggestions[i].CurrentScore
		assert.GreaterOrEqual(t, upliftPrev, upliftCurr)
	}

	// Priority fixes are capped and ordered severity-first.
	assert.LessOrEqual(t, len(result.PriorityFixes), 5)
	for i := 1; i < len(result.PriorityFixes); i++ {
		prev := result.PriorityFixes[i-1]
		curr := result.PriorityFixes[i]
		if prev.Severity.Rank() == curr.Severity.Rank() {
			assert.GreaterOrEqual(t, prev.ImpactScore, curr.ImpactScore)
		} else {
			assert.Greater(t, prev.Severity.Rank(), curr.Severity.Rank())
		}
	}

	// Fix minutes follow the per-severity estimates.
	expectedMinutes := 0
	for _, issue := range result.Issues {
		expectedMinutes += issue.Severity.FixMinutes()
	}
	assert.Equal(t, expectedMinutes, result.EstimatedFixMinutes)
}

func TestProfileByName(t *testing.T) {
	def, err := ProfileByName("")
	require.NoError(t, err)
	assert.Equal(t, ProfileMonozukuri, def)

	mono, err := ProfileByName("monozukuri")
	require.NoError(t, err)
	assert.Equal(t, ProfileMonozukuri, mono)

	recon, err := ProfileByName("reconstruction")
	require.NoError(t, err)
	assert.Equal(t, ProfileReconstruction, recon)

	_, err = ProfileByName("unknown")
	assert.Error(t, err)
}

func TestWeightProfile_Validate(t *testing.T) {
	assert.NoError(t, ProfileMonozukuri.Validate())
	assert.NoError(t, ProfileReconstruction.Validate())

	missing := WeightProfile{models.CheckGrammar: 1.0}
	assert.Error(t, missing.Validate())

	badSum := WeightProfile{
		models.CheckGrammar:        0.5,
		models.CheckTerminology:    0.5,
		models.CheckLogicStructure: 0.5,
		models.CheckPersuasiveness: 0.1,
		models.CheckReadability:    0.1,
		models.CheckCompliance:     0.1,
	}
	assert.Error(t, badSum.Validate())
}

func TestReconstructionProfileShiftsEmphasis(t *testing.T) {
	mono := newDefaultScorer(t)
	recon, err := NewScorer(ProfileReconstruction)
	require.NoError(t, err)

	// The well-formed document's persuasiveness (88) and logic (75) scores
	// differ, so reweighting them changes the overall score.
	monoResult, err := mono.Analyze(wellFormedDocument())
	require.NoError(t, err)
	reconResult, err := recon.Analyze(wellFormedDocument())
	require.NoError(t, err)

	assert.Equal(t, monoResult.CategoryScores, reconResult.CategoryScores)
	assert.NotEqual(t, monoResult.OverallScore, reconResult.OverallScore)
}

func TestAdvisor_Report(t *testing.T) {
	scorer := newDefaultScorer(t)
	advisor := NewAdvisor()

	result, err := scorer.Analyze(wellFormedDocument())
	require.NoError(t, err)

	report := advisor.Report(result)
	assert.Contains(t, report, "総合評価")
	assert.Contains(t, report, "カテゴリ別スコア")
	for _, label := range categoryLabels {
		assert.Contains(t, report, label)
	}
}

func TestAdvisor_QualityLevel(t *testing.T) {
	advisor := NewAdvisor()

	assert.Equal(t, advisor.QualityLevel(95), advisor.QualityLevel(92))
	assert.NotEqual(t, advisor.QualityLevel(95), advisor.QualityLevel(65))
	assert.NotEmpty(t, advisor.QualityLevel(0))
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("一文目。二文目。 。三文目。")
	assert.Equal(t, []string{"一文目", "二文目", "三文目"}, sentences)

	assert.Empty(t, splitSentences(""))
}

func TestKanjiDensity(t *testing.T) {
	assert.Equal(t, 0.0, kanjiDensity(""))
	assert.Equal(t, 1.0, kanjiDensity("漢字密度"))
	assert.InDelta(t, 0.5, kanjiDensity("漢字かな"), 0.001)
}

func TestCheckGrammar_DoubledPunctuationWidthVariants(t *testing.T) {
	scorer := newDefaultScorer(t)

	halfWidth, err := scorer.Analyze(models.Document{
		"事業計画": models.TextNode("当社は成長します。。"),
	})
	require.NoError(t, err)

	fullWidth, err := scorer.Analyze(models.Document{
		"事業計画": models.TextNode("当社は成長します！！"),
	})
	require.NoError(t, err)

	// Full-width ！！ folds to !! and draws the same penalty as 。。.
	assert.Equal(t, 84.0, halfWidth.CategoryScores[models.CheckGrammar])
	assert.Equal(t, 84.0, fullWidth.CategoryScores[models.CheckGrammar])

	foundDoubled := false
	for _, issue := range fullWidth.Issues {
		if issue.Category == models.CheckGrammar && issue.Location == "!!" {
			foundDoubled = true
		}
	}
	assert.True(t, foundDoubled, "expected a doubled-punctuation issue for ！！")
}

func TestCheckGrammar_SentenceInitialParticle(t *testing.T) {
	text := "が、この文は助詞から始まっています。"
	score, issues := checkGrammar(text, splitSentences(text))

	assert.Equal(t, 82.0, score)
	require.Len(t, issues, 1)
	assert.Equal(t, models.SeverityMajor, issues[0].Severity)
}

func TestCheckCompliance_MissingEverything(t *testing.T) {
	score, issues := checkCompliance("関係のない文章です。", nil)

	assert.Equal(t, 30.0, score)
	require.Len(t, issues, 4)
	for _, issue := range issues {
		assert.Equal(t, models.SeverityCritical, issue.Severity)
		assert.True(t, strings.Contains(issue.Description, issue.Location))
	}
}
