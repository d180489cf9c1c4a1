package matcher

import "subsidy-advisor-engine/internal/models"

// categoryKeywords maps each subsidy category to the project vocabulary that
// signals a fit. Matching is substring-based over the normalized project
// type and keywords.
var categoryKeywords = map[models.SubsidyCategory][]string{
	models.CategoryManufacturing: {
		"設備", "製造", "生産", "加工", "機械", "設備投資", "生産性", "試作", "工場",
	},
	models.CategoryITAdoption: {
		"IT", "システム", "ソフトウェア", "クラウド", "デジタル", "DX", "アプリ", "業務効率", "EC",
	},
	models.CategorySalesChannel: {
		"販路", "販売", "広告", "集客", "マーケティング", "ホームページ", "展示会", "ブランド",
	},
	models.CategoryRestructuring: {
		"新規事業", "転換", "再構築", "新分野", "多角化", "業態転換", "新市場",
	},
	models.CategoryEnergySaving: {
		"省エネ", "エネルギー", "脱炭素", "CO2", "電力", "空調", "太陽光",
	},
	models.CategoryEmployment: {
		"雇用", "正社員", "採用", "処遇改善", "賃上げ", "パート",
	},
	models.CategoryTraining: {
		"研修", "訓練", "教育", "人材育成", "スキル", "資格",
	},
	models.CategoryStartup: {
		"創業", "起業", "開業", "スタートアップ", "新会社",
	},
	models.CategoryResearch: {
		"研究", "開発", "技術開発", "特許", "産学連携", "試験",
	},
	models.CategorySuccession: {
		"承継", "引継ぎ", "M&A", "後継者", "買収",
	},
}

// criteriaKeywords are generic evaluation-vocabulary tokens checked against a
// program's evaluation criteria when scoring project-content fit.
var criteriaKeywords = []string{
	"革新", "生産性", "成長", "地域", "実現可能", "収益", "数値", "計画",
}
