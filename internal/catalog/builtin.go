package catalog

import (
	"subsidy-advisor-engine/internal/models"
)

// Builtin returns the built-in program catalog. Amounts are in yen; rates
// are fractions of eligible expenses. Used directly when no database-backed
// catalog is configured, and as the seed for scripts/init_db.
func Builtin() *Catalog {
	return MustNew(builtinPrograms())
}

func builtinPrograms() []*models.SubsidyProgram {
	return []*models.SubsidyProgram{
		{
			ID:          "monozukuri",
			Name:        "ものづくり・商業・サービス生産性向上促進補助金",
			Category:    models.CategoryManufacturing,
			Description: "革新的な製品・サービス開発または生産プロセス改善のための設備投資を支援する補助金。",
			MaxAmount:   12_500_000,
			SubsidyRate: 0.5,
			EligibleExpenses: []string{
				"機械装置・システム構築費", "技術導入費", "専門家経費", "運搬費", "クラウドサービス利用費", "原材料費", "外注費",
			},
			Requirements: models.Requirements{
				MaxEmployees:      models.IntPtr(300),
				SpecialConditions: []string{"3〜5年の事業計画で付加価値額年率3%以上の向上を見込むこと"},
			},
			ApplicationPeriod: "年3回程度の公募",
			EvaluationCriteria: []string{
				"技術面の革新性", "事業化の実現可能性", "収益性と政策面の意義", "数値目標の妥当性",
			},
			RequiredDocuments: []string{"事業計画書", "決算書2期分", "賃金引上げ計画の表明書"},
			Tips: []string{
				"自社の強みと技術的課題の因果関係を明確にする", "設備投資の効果を定量的に示す",
			},
			SuccessRate:      0.40,
			DocumentSections: []string{"事業計画", "技術的課題", "実施体制", "資金計画"},
			IndustryAffinity: map[string]float64{
				models.IndustryManufacturing: 1.0,
				models.IndustryIT:            0.6,
				models.IndustryConstruction:  0.7,
				models.IndustryFood:          0.6,
			},
			IsActive: true,
		},
		{
			ID:          "it-donyu",
			Name:        "IT導入補助金",
			Category:    models.CategoryITAdoption,
			Description: "中小企業・小規模事業者の労働生産性向上のためのITツール導入費用を支援する補助金。",
			MaxAmount:   4_500_000,
			SubsidyRate: 0.5,
			EligibleExpenses: []string{
				"ソフトウェア費", "クラウド利用料", "導入関連費", "ハードウェア購入費",
			},
			Requirements: models.Requirements{
				MaxEmployees:      models.IntPtr(300),
				SpecialConditions: []string{"IT導入支援事業者を通じて申請すること"},
			},
			ApplicationPeriod: "通年",
			EvaluationCriteria: []string{
				"労働生産性の向上率", "導入するITツールの適合性", "経営課題の明確さ",
			},
			RequiredDocuments: []string{"事業計画書", "履歴事項全部証明書", "納税証明書"},
			Tips: []string{
				"導入前後の業務時間を数値で比較する", "生産性向上の根拠を具体的に書く",
			},
			SuccessRate:      0.55,
			DocumentSections: []string{"導入目的", "事業計画", "期待効果", "実施体制"},
			IndustryAffinity: map[string]float64{
				models.IndustryIT:        1.0,
				models.IndustryRetail:    0.8,
				models.IndustryService:   0.8,
				models.IndustryWholesale: 0.8,
			},
			IsActive: true,
		},
		{
			ID:          "jizokuka",
			Name:        "小規模事業者持続化補助金",
			Category:    models.CategorySalesChannel,
			Description: "小規模事業者の販路開拓・業務効率化の取り組みを支援する補助金。",
			MaxAmount:   2_000_000,
			SubsidyRate: 0.67,
			EligibleExpenses: []string{
				"広報費", "ウェブサイト関連費", "展示会等出展費", "開発費", "店舗改装費",
			},
			Requirements: models.Requirements{
				MaxEmployees: models.IntPtr(20),
			},
			ApplicationPeriod: "年4回程度の公募",
			EvaluationCriteria: []string{
				"自社の経営状況分析の妥当性", "販路開拓の実現可能性", "費用対効果",
			},
			RequiredDocuments: []string{"経営計画書", "補助事業計画書", "商工会議所の事業支援計画書"},
			Tips: []string{
				"商工会議所の添削支援を受ける", "写真や図表で取り組みを具体化する",
			},
			SuccessRate:      0.60,
			DocumentSections: []string{"経営計画", "事業計画", "販路開拓", "資金計画"},
			IndustryAffinity: map[string]float64{
				models.IndustryRetail:  1.0,
				models.IndustryFood:    0.9,
				models.IndustryService: 0.9,
			},
			IsActive: true,
		},
		{
			ID:          "saikouchiku",
			Name:        "事業再構築補助金",
			Category:    models.CategoryRestructuring,
			Description: "新市場進出、事業転換、業種転換など思い切った事業再構築に挑戦する企業を支援する補助金。",
			MaxAmount:   80_000_000,
			SubsidyRate: 0.5,
			EligibleExpenses: []string{
				"建物費", "機械装置・システム構築費", "技術導入費", "広告宣伝・販売促進費", "研修費",
			},
			Requirements: models.Requirements{
				MaxEmployees:       models.IntPtr(500),
				MinYearsInBusiness: models.IntPtr(2),
				SpecialConditions:  []string{"事業再構築指針に沿った3〜5年の事業計画を認定経営革新等支援機関と策定すること"},
			},
			ApplicationPeriod: "年2回程度の公募",
			EvaluationCriteria: []string{
				"事業再構築の大胆さ", "市場の成長性", "既存事業とのシナジー", "地域経済への波及効果",
			},
			RequiredDocuments: []string{"事業計画書", "認定支援機関の確認書", "決算書", "売上減少を示す書類"},
			Tips: []string{
				"既存事業の強みを新分野でどう活かすかを示す", "市場規模データを引用する",
			},
			SuccessRate:      0.45,
			DocumentSections: []string{"事業計画", "市場分析", "実施体制", "資金計画", "収益計画"},
			IndustryAffinity: map[string]float64{
				models.IndustryFood:          0.9,
				models.IndustryService:       0.8,
				models.IndustryManufacturing: 0.8,
				models.IndustryTransport:     0.7,
			},
			IsActive: true,
		},
		{
			ID:          "shoene",
			Name:        "省エネルギー投資促進支援事業費補助金",
			Category:    models.CategoryEnergySaving,
			Description: "省エネ性能の高い設備への更新など、省エネルギー投資を支援する補助金。",
			MaxAmount:   15_000_000,
			SubsidyRate: 0.33,
			EligibleExpenses: []string{
				"省エネ設備費", "設計費", "工事費",
			},
			Requirements: models.Requirements{
				SpecialConditions: []string{"省エネルギー効果を計測・報告できること"},
			},
			ApplicationPeriod: "年1回の公募",
			EvaluationCriteria: []string{
				"省エネルギー量", "費用対効果", "エネルギー管理体制",
			},
			RequiredDocuments: []string{"事業計画書", "省エネ効果計算書", "設備仕様書"},
			Tips: []string{
				"更新前後のエネルギー使用量を kWh で示す",
			},
			SuccessRate:      0.50,
			DocumentSections: []string{"事業計画", "省エネ計画", "実施体制", "資金計画"},
			IndustryAffinity: map[string]float64{
				models.IndustryManufacturing: 1.0,
				models.IndustryTransport:     0.8,
				models.IndustryConstruction:  0.7,
			},
			IsActive: true,
		},
		{
			ID:          "career-up",
			Name:        "キャリアアップ助成金",
			Category:    models.CategoryEmployment,
			Description: "有期雇用労働者の正社員化や処遇改善の取り組みを支援する助成金。",
			MaxAmount:   1_440_000,
			SubsidyRate: 0.75,
			EligibleExpenses: []string{
				"正社員化に伴う人件費", "処遇改善費用",
			},
			Requirements: models.Requirements{
				MinEmployees:      models.IntPtr(1),
				SpecialConditions: []string{"キャリアアップ計画を事前に提出すること"},
			},
			ApplicationPeriod: "随時",
			EvaluationCriteria: []string{
				"計画の適正性", "雇用管理体制",
			},
			RequiredDocuments: []string{"キャリアアップ計画書", "就業規則", "賃金台帳"},
			Tips: []string{
				"転換前6か月と転換後6か月の賃金を比較できるようにしておく",
			},
			SuccessRate:      0.80,
			DocumentSections: []string{"雇用計画", "処遇改善", "実施体制"},
			IsActive:         true,
		},
		{
			ID:          "jinzai-kaihatsu",
			Name:        "人材開発支援助成金",
			Category:    models.CategoryTraining,
			Description: "従業員への職業訓練の実施にかかる訓練経費や訓練期間中の賃金を支援する助成金。",
			MaxAmount:   3_000_000,
			SubsidyRate: 0.45,
			EligibleExpenses: []string{
				"訓練経費", "訓練期間中の賃金",
			},
			Requirements: models.Requirements{
				MinEmployees: models.IntPtr(1),
			},
			ApplicationPeriod: "随時",
			EvaluationCriteria: []string{
				"訓練計画の具体性", "職務との関連性",
			},
			RequiredDocuments: []string{"訓練実施計画届", "訓練カリキュラム", "賃金台帳"},
			Tips: []string{
				"訓練内容と業務上の課題の対応関係を明記する",
			},
			SuccessRate:      0.75,
			DocumentSections: []string{"訓練計画", "実施体制"},
			IsActive:         true,
		},
		{
			ID:          "sogyo-josei",
			Name:        "創業助成金",
			Category:    models.CategoryStartup,
			Description: "創業初期の事業者に対し、賃借料・広告費・人件費など創業期に必要な経費を支援する助成金。",
			MaxAmount:   4_000_000,
			SubsidyRate: 0.67,
			EligibleExpenses: []string{
				"賃借料", "広告費", "器具備品購入費", "人件費",
			},
			Requirements: models.Requirements{
				MaxEmployees:      models.IntPtr(30),
				SpecialConditions: []string{"創業から5年未満であること"},
			},
			ApplicationPeriod: "年2回の公募",
			EvaluationCriteria: []string{
				"事業の独自性", "市場性", "収支計画の妥当性",
			},
			RequiredDocuments: []string{"事業計画書", "開業届または登記簿謄本", "収支計画書"},
			Tips: []string{
				"ターゲット顧客と提供価値を一文で言えるようにする",
			},
			SuccessRate:      0.55,
			DocumentSections: []string{"事業計画", "市場分析", "収支計画"},
			IsActive:         true,
		},
		{
			ID:          "go-tech",
			Name:        "成長型中小企業等研究開発支援事業",
			Category:    models.CategoryResearch,
			Description: "中小企業が大学・公設試等と連携して行う研究開発や試作品開発を支援する補助金。",
			MaxAmount:   97_500_000,
			SubsidyRate: 0.67,
			EligibleExpenses: []string{
				"機械装置費", "研究員費", "共同研究費", "知的財産権関連経費",
			},
			Requirements: models.Requirements{
				MinEmployees:      models.IntPtr(5),
				MinCapital:        models.FloatPtr(10_000_000),
				SpecialConditions: []string{"大学・公設試験研究機関等との共同体を組むこと"},
			},
			ApplicationPeriod: "年1回の公募",
			EvaluationCriteria: []string{
				"技術の新規性", "研究開発体制", "事業化計画の実現性",
			},
			RequiredDocuments: []string{"研究開発計画書", "共同体構成員の同意書", "決算書"},
			Tips: []string{
				"先行技術との差異を特許文献を引いて示す",
			},
			SuccessRate:      0.35,
			DocumentSections: []string{"研究開発計画", "技術的課題", "実施体制", "事業化計画", "資金計画"},
			IndustryAffinity: map[string]float64{
				models.IndustryManufacturing: 1.0,
				models.IndustryIT:            0.8,
				models.IndustryMedical:       0.8,
			},
			IsActive: true,
		},
		{
			ID:          "shokei",
			Name:        "事業承継・引継ぎ補助金",
			Category:    models.CategorySuccession,
			Description: "事業承継やM&Aを契機とした新しい取り組みや、経営資源の引継ぎ費用を支援する補助金。",
			MaxAmount:   6_000_000,
			SubsidyRate: 0.67,
			EligibleExpenses: []string{
				"設備費", "店舗等借入費", "専門家活用費", "廃業費用",
			},
			Requirements: models.Requirements{
				MinYearsInBusiness: models.IntPtr(3),
				SpecialConditions:  []string{"補助事業期間中に事業承継またはM&Aを行うこと"},
			},
			ApplicationPeriod: "年2回程度の公募",
			EvaluationCriteria: []string{
				"承継後の成長性", "経営資源の活用度", "地域への貢献",
			},
			RequiredDocuments: []string{"事業計画書", "承継の事実を示す書類", "決算書"},
			Tips: []string{
				"承継する経営資源と新たな取り組みの結び付きを説明する",
			},
			SuccessRate:      0.50,
			DocumentSections: []string{"事業計画", "承継計画", "実施体制", "資金計画"},
			IsActive:         true,
		},
	}
}
