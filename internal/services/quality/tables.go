package quality

import "subsidy-advisor-engine/internal/models"

// Check base scores. Penalties subtract from these, bonuses add where noted.
const (
	baseGrammar        = 85.0
	baseTerminology    = 80.0
	baseLogicStructure = 75.0
	basePersuasiveness = 70.0
	baseReadability    = 80.0
	baseCompliance     = 90.0
)

// doubledEndings are sentence-ending repetitions that read as monotonous.
var doubledEndings = []string{
	"です。です。",
	"ます。ます。",
	"した。した。",
	"ました。ました。",
}

// doubledPunctuation patterns indicate typos. The checks run on width-folded
// text, so full-width ！？．， arrive as their ASCII forms.
var doubledPunctuation = []string{
	"。。", "、、", "!!", "??", "..", ",,",
}

// sentenceInitialParticles should never start a sentence.
var sentenceInitialParticles = []string{
	"が、", "を、", "に、", "は、", "で、", "と、",
}

// informalTerms are casual words unacceptable in an application document.
var informalTerms = []string{
	"やばい", "すごい", "すごく", "めっちゃ", "ちゃんと", "やっぱり",
	"いっぱい", "たくさん", "だいたい", "とか", "ダメ", "ちょっと",
}

// formalTerms signal an appropriately businesslike register.
var formalTerms = []string{
	"当社", "弊社", "実施", "推進", "構築", "活用",
	"寄与", "図る", "取り組み", "強化", "整備", "確立",
}

// requiredSections are the structural headings a business plan must discuss.
var requiredSections = []string{
	"現状", "課題", "目的", "効果",
}

// sectionLabels gives the reader-facing name for each required section.
var sectionLabels = map[string]string{
	"現状": "現状分析",
	"課題": "課題の整理",
	"目的": "事業の目的",
	"効果": "期待される効果",
}

// logicalConnectives mark explicit reasoning flow between sentences.
var logicalConnectives = []string{
	"そのため", "したがって", "これにより", "その結果",
	"一方", "さらに", "また", "加えて", "なぜなら",
}

// persuasivePhrases are the vocabulary of a compelling application.
var persuasivePhrases = []string{
	"強み", "競争力", "差別化", "優位性", "独自",
	"実績", "向上", "改善", "拡大", "成長",
}

// complianceElements are the plan components screeners reject applications
// for omitting.
var complianceElements = []string{
	"事業計画", "資金計画", "実施体制", "スケジュール",
}

// categoryLabels gives the reader-facing Japanese name of each check.
var categoryLabels = map[models.CheckCategory]string{
	models.CheckGrammar:        "文法",
	models.CheckTerminology:    "用語・表現",
	models.CheckLogicStructure: "論理構成",
	models.CheckPersuasiveness: "説得力",
	models.CheckReadability:    "読みやすさ",
	models.CheckCompliance:     "必須要素",
}
