// Package generator produces draft application-document sections from
// sentence templates, filling in company and project variables with
// fallback defaults for anything the caller left blank.
package generator

import (
	"fmt"
	"strings"

	"subsidy-advisor-engine/internal/models"
)

// Fallback values for template variables the caller did not supply.
const (
	defaultIndustry    = "中小企業"
	defaultProjectType = "新たな取り組み"
	defaultStrength    = "長年培ってきた技術力と顧客基盤"
	defaultKeyword     = "生産性向上"
)

// Generator fills section templates for a subsidy program.
type Generator struct{}

// NewGenerator creates a generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces a draft document containing one text section per entry
// in the program's document section list. Unknown section names fall back to
// a generic template.
func (g *Generator) Generate(profile *models.CompanyProfile, project *models.ProjectInfo, program *models.SubsidyProgram) models.Document {
	vars := newTemplateVars(profile, project, program)

	sections := program.DocumentSections
	if len(sections) == 0 {
		sections = []string{"事業計画"}
	}

	doc := make(models.Document, len(sections))
	for _, section := range sections {
		doc[section] = models.TextNode(g.fillSection(section, vars))
	}
	return doc
}

// templateVars are the substitution values shared by all section templates.
type templateVars struct {
	industry    string
	projectType string
	strength    string
	keyword     string
	budget      float64
	employees   int
	years       int
	programName string
}

func newTemplateVars(profile *models.CompanyProfile, project *models.ProjectInfo, program *models.SubsidyProgram) templateVars {
	vars := templateVars{
		industry:    defaultIndustry,
		projectType: defaultProjectType,
		strength:    defaultStrength,
		keyword:     defaultKeyword,
		programName: program.Name,
	}
	if profile != nil {
		if profile.Industry != "" {
			vars.industry = models.NormalizeIndustry(profile.Industry)
		}
		vars.employees = profile.EmployeeCount
		vars.years = profile.YearsInBusiness
	}
	if project != nil {
		if project.ProjectType != "" {
			vars.projectType = project.ProjectType
		}
		if len(project.Strengths) > 0 {
			vars.strength = strings.Join(project.Strengths, "、")
		}
		if len(project.Keywords) > 0 {
			vars.keyword = project.Keywords[0]
		}
		vars.budget = project.Budget
	}
	return vars
}

// fillSection renders the template for one section name.
func (g *Generator) fillSection(section string, v templateVars) string {
	switch {
	case strings.Contains(section, "事業計画") || strings.Contains(section, "経営計画"):
		return g.businessPlan(v)
	case strings.Contains(section, "課題"):
		return g.challenges(v)
	case strings.Contains(section, "体制"):
		return g.organization(v)
	case strings.Contains(section, "資金") || strings.Contains(section, "収支"):
		return g.financePlan(v)
	case strings.Contains(section, "市場"):
		return g.marketAnalysis(v)
	default:
		return g.generic(section, v)
	}
}

func (g *Generator) businessPlan(v templateVars) string {
	var b strings.Builder
	fmt.Fprintf(&b, "当社は%s分野で%d年にわたり事業を展開してきました。", v.industry, max(v.years, 1))
	fmt.Fprintf(&b, "現状、%sの強みを持つ一方、市場環境の変化への対応が課題となっています。", v.strength)
	fmt.Fprintf(&b, "本事業の目的は、%sを通じて%sを実現することです。", v.projectType, v.keyword)
	if v.budget > 0 {
		fmt.Fprintf(&b, "総事業費%.0f万円を投じ、", v.budget/10000)
	}
	fmt.Fprintf(&b, "3年以内に売上高10%%以上の向上と生産性20%%の改善という効果を見込んでいます。")
	b.WriteString("実施にあたっては事業計画・資金計画・実施体制・スケジュールを明確に定め、着実に推進します。")
	return b.String()
}

func (g *Generator) challenges(v templateVars) string {
	return fmt.Sprintf(
		"現状の課題として、%s業界では人手不足と生産性の伸び悩みが顕在化しています。"+
			"当社においても従業員%d名の体制で業務量の増加に対応しており、"+
			"そのため%sによる業務効率の改善が急務となっています。"+
			"これにより作業時間を30%%削減し、競争力の強化を図ります。",
		v.industry, max(v.employees, 1), v.projectType)
}

func (g *Generator) organization(v templateVars) string {
	return fmt.Sprintf(
		"実施体制として、代表者を責任者とし、従業員%d名から専任担当者を選定して推進します。"+
			"また、外部専門家の助言を受けながら、月次で進捗を確認する体制を構築します。"+
			"スケジュールは交付決定後、準備期間2か月、実施期間8か月、効果検証2か月を想定しています。",
		max(v.employees, 1))
}

func (g *Generator) financePlan(v templateVars) string {
	budget := v.budget
	if budget <= 0 {
		budget = 3_000_000
	}
	return fmt.Sprintf(
		"資金計画として、総事業費%.0f万円のうち補助金を除く自己負担分は自己資金および金融機関からの借入で賄います。"+
			"投資回収は3年以内を見込み、収支計画では初年度から営業利益率の改善効果を織り込んでいます。",
		budget/10000)
}

func (g *Generator) marketAnalysis(v templateVars) string {
	return fmt.Sprintf(
		"市場分析として、%s関連市場は今後も年率5%%程度の成長が見込まれています。"+
			"当社は%sという独自の強みを活かし、差別化された価値を提供することで市場での優位性を確立します。",
		v.keyword, v.strength)
}

func (g *Generator) generic(section string, v templateVars) string {
	return fmt.Sprintf(
		"%sについて、%sの実施を通じて%sを実現します。"+
			"具体的な数値目標と実施スケジュールを定め、計画的に取り組みます。",
		section, v.projectType, v.keyword)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
