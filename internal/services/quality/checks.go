package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"subsidy-advisor-engine/internal/models"
)

// quantitativePattern matches numeric claims with a unit, the concrete
// evidence screeners look for. Text is width-folded before matching so
// full-width digits are covered.
var quantitativePattern = regexp.MustCompile(`[0-9][0-9,.]*\s*(%|％|円|万円|件|名|人|時間|倍|年)`)

// checkGrammar penalizes monotonous endings, doubled punctuation, and
// sentences starting with a particle.
func checkGrammar(text string, sentences []string) (float64, []models.QualityIssue) {
	score := baseGrammar
	var issues []models.QualityIssue

	for _, pattern := range doubledEndings {
		for i := 0; i < strings.Count(text, pattern); i++ {
			score -= 1
			issues = append(issues, models.QualityIssue{
				Category:    models.CheckGrammar,
				Severity:    models.SeverityMinor,
				Location:    pattern,
				Description: "同じ文末表現が連続しています",
				Suggestion:  "文末表現に変化を付けてください（体言止め、連用中止法など）",
				ImpactScore: 1,
			})
		}
	}

	for _, pattern := range doubledPunctuation {
		for i := 0; i < strings.Count(text, pattern); i++ {
			score -= 1
			issues = append(issues, models.QualityIssue{
				Category:    models.CheckGrammar,
				Severity:    models.SeverityMinor,
				Location:    pattern,
				Description: "句読点が重複しています",
				Suggestion:  "重複した句読点を削除してください",
				ImpactScore: 1,
			})
		}
	}

	for _, sentence := range sentences {
		for _, particle := range sentenceInitialParticles {
			if strings.HasPrefix(sentence, particle) {
				score -= 3
				issues = append(issues, models.QualityIssue{
					Category:    models.CheckGrammar,
					Severity:    models.SeverityMajor,
					Location:    truncate(sentence, 20),
					Description: "文が助詞から始まっています",
					Suggestion:  "主語を補って文を書き直してください",
					ImpactScore: 3,
				})
				break
			}
		}
	}

	return clampScore(score), issues
}

// checkTerminology penalizes casual vocabulary and rewards a consistent
// formal register.
func checkTerminology(text string, _ []string) (float64, []models.QualityIssue) {
	score := baseTerminology
	var issues []models.QualityIssue

	for _, term := range informalTerms {
		if strings.Contains(text, term) {
			score -= 4
			issues = append(issues, models.QualityIssue{
				Category:    models.CheckTerminology,
				Severity:    models.SeverityMajor,
				Location:    term,
				Description: fmt.Sprintf("口語的な表現「%s」が使われています", term),
				Suggestion:  "申請書にふさわしい文語表現に置き換えてください",
				ImpactScore: 4,
			})
		}
	}

	formalCount := 0
	for _, term := range formalTerms {
		if strings.Contains(text, term) {
			formalCount++
		}
	}
	if formalCount >= 3 {
		score += 5
	}

	return clampScore(score), issues
}

// checkLogicStructure requires the standard plan sections and explicit
// connectives between claims.
func checkLogicStructure(text string, _ []string) (float64, []models.QualityIssue) {
	score := baseLogicStructure
	var issues []models.QualityIssue

	for _, section := range requiredSections {
		if !strings.Contains(text, section) {
			score -= 8
			issues = append(issues, models.QualityIssue{
				Category:    models.CheckLogicStructure,
				Severity:    models.SeverityMajor,
				Location:    sectionLabels[section],
				Description: fmt.Sprintf("「%s」に関する記述が見当たりません", sectionLabels[section]),
				Suggestion:  fmt.Sprintf("%sの項目を追加してください", sectionLabels[section]),
				ImpactScore: 8,
			})
		}
	}

	connectiveCount := 0
	for _, connective := range logicalConnectives {
		if strings.Contains(text, connective) {
			connectiveCount++
		}
	}
	if connectiveCount < 3 {
		score -= 3
		issues = append(issues, models.QualityIssue{
			Category:    models.CheckLogicStructure,
			Severity:    models.SeverityMinor,
			Location:    "全体",
			Description: "接続詞が少なく、論理の流れが追いにくくなっています",
			Suggestion:  "「そのため」「これにより」などの接続詞で因果関係を明示してください",
			ImpactScore: 3,
		})
	}

	return clampScore(score), issues
}

// checkPersuasiveness rewards persuasive vocabulary and quantitative
// evidence, and penalizes their absence.
func checkPersuasiveness(text string, _ []string) (float64, []models.QualityIssue) {
	score := basePersuasiveness
	var issues []models.QualityIssue

	persuasiveCount := 0
	for _, phrase := range persuasivePhrases {
		if strings.Contains(text, phrase) {
			persuasiveCount++
		}
	}
	switch {
	case persuasiveCount == 0:
		score -= 10
		issues = append(issues, models.QualityIssue{
			Category:    models.CheckPersuasiveness,
			Severity:    models.SeverityMajor,
			Location:    "全体",
			Description: "自社の強みや優位性を示す表現がありません",
			Suggestion:  "「強み」「差別化」など、自社の優位性を具体的に記述してください",
			ImpactScore: 10,
		})
	case persuasiveCount >= 3:
		score += 10
	}

	quantitativeCount := len(quantitativePattern.FindAllString(text, -1))
	switch {
	case quantitativeCount < 2:
		score -= 8
		issues = append(issues, models.QualityIssue{
			Category:    models.CheckPersuasiveness,
			Severity:    models.SeverityMajor,
			Location:    "全体",
			Description: "数値による裏付けが不足しています",
			Suggestion:  "売上・件数・時間など、効果を数値で示してください",
			ImpactScore: 8,
		})
	case quantitativeCount >= 5:
		score += 8
	}

	return clampScore(score), issues
}

// checkReadability penalizes overlong sentences and dense kanji runs.
func checkReadability(text string, sentences []string) (float64, []models.QualityIssue) {
	score := baseReadability
	var issues []models.QualityIssue

	if len(sentences) > 0 {
		long := 0
		for _, sentence := range sentences {
			if len([]rune(sentence)) > 100 {
				long++
			}
		}
		if float64(long)/float64(len(sentences)) > 0.3 {
			score -= 5
			issues = append(issues, models.QualityIssue{
				Category:    models.CheckReadability,
				Severity:    models.SeverityMinor,
				Location:    "全体",
				Description: "100文字を超える長文の割合が高くなっています",
				Suggestion:  "一文一義を意識し、長い文を分割してください",
				ImpactScore: 5,
			})
		}
	}

	if kanjiDensity(text) > 0.4 {
		score -= 3
		issues = append(issues, models.QualityIssue{
			Category:    models.CheckReadability,
			Severity:    models.SeverityMinor,
			Location:    "全体",
			Description: "漢字の割合が高く、読みにくくなっています",
			Suggestion:  "一部をひらがなに開くか、箇条書きを活用してください",
			ImpactScore: 3,
		})
	}

	return clampScore(score), issues
}

// checkCompliance verifies the elements screeners reject applications for
// omitting.
func checkCompliance(text string, _ []string) (float64, []models.QualityIssue) {
	score := baseCompliance
	var issues []models.QualityIssue

	for _, element := range complianceElements {
		if !strings.Contains(text, element) {
			score -= 15
			issues = append(issues, models.QualityIssue{
				Category:    models.CheckCompliance,
				Severity:    models.SeverityCritical,
				Location:    element,
				Description: fmt.Sprintf("必須要素「%s」への言及がありません", element),
				Suggestion:  fmt.Sprintf("「%s」の項目を必ず記載してください", element),
				ImpactScore: 15,
			})
		}
	}

	return clampScore(score), issues
}

// splitSentences divides text at ideographic full stops, dropping empties.
func splitSentences(text string) []string {
	parts := strings.Split(text, "。")
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// kanjiDensity returns the share of non-space runes that are Han characters.
func kanjiDensity(text string) float64 {
	total := 0
	kanji := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.In(r, unicode.Han) {
			kanji++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(kanji) / float64(total)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
