// Package locale holds the fixed bilingual tables the analysis core depends
// on: category labels, the empty-input placeholder, module descriptions, and
// the system instruction handed to the model. The core only reaches these
// through the Table lookup, never through the raw maps.
package locale

import (
	"strings"

	"geovision-backend/internal/inputs"
)

// Locale selects one of the two supported languages.
type Locale string

const (
	EN Locale = "en"
	ZH Locale = "zh"
)

// Parse normalizes a raw locale string, defaulting to English.
func Parse(raw string) Locale {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "zh", "zh-cn", "zh-hans":
		return ZH
	default:
		return EN
	}
}

// Module is one entry of the fixed analysis-module table.
type Module struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Table is the full fixed label/instruction set for one locale.
type Table struct {
	CategoryLabels map[inputs.Category]string
	Placeholder    string
	Modules        []Module

	DataEntryLabel     string
	ResultsToolLabel   string
	HeatmapToolLabel   string
	SystemInstruction  string
	GenericFailure     string
	NotConfiguredError string
}

// For returns the table for a locale.
func For(l Locale) Table {
	if l == ZH {
		return zhTable
	}
	return enTable
}

// CategoryLabel returns the display label for a category in a locale.
func (t Table) CategoryLabel(c inputs.Category) string {
	return t.CategoryLabels[c]
}

// ModuleLabels returns the labels of the six analysis modules in table order.
func (t Table) ModuleLabels() []string {
	out := make([]string, len(t.Modules))
	for i, m := range t.Modules {
		out[i] = m.Label
	}
	return out
}

var enTable = Table{
	CategoryLabels: map[inputs.Category]string{
		inputs.CategoryField:         "Field Observations",
		inputs.CategoryHandSpecimen:  "Hand Specimen",
		inputs.CategoryMicroscopy:    "Microscopy",
		inputs.CategoryGeochemistry:  "Geochemistry",
		inputs.CategoryRemoteSensing: "Remote Sensing",
	},
	Placeholder: "N/A",
	Modules: []Module{
		{Label: "Deposit Type Classification", Description: "Classify the most likely ore deposit type with a confidence estimate."},
		{Label: "Ore Petrography", Description: "Interpret ore mineral assemblages, textures and paragenetic sequence."},
		{Label: "Alteration Zoning", Description: "Map hydrothermal alteration assemblages and their spatial zoning."},
		{Label: "Geochemical Signature", Description: "Evaluate pathfinder element patterns and geochemical anomalies."},
		{Label: "Remote Sensing Interpretation", Description: "Relate spectral and structural lineament evidence to mineralization."},
		{Label: "Exploration Targeting", Description: "Rank follow-up exploration targets and recommend next steps."},
	},
	DataEntryLabel:   "Data Entry",
	ResultsToolLabel: "Analysis Results",
	HeatmapToolLabel: "Heatmap Script",
	SystemInstruction: "You are a senior economic geologist. Respond in English. " +
		"Structure every analysis in exactly six parts, in this order: " +
		"1. Deposit type classification with an explicit confidence value. " +
		"2. Synthesis of diagnostic evidence across all observation scales, from outcrop to thin section. " +
		"3. Mineral assemblage and paragenesis narrative. " +
		"4. Interpretation of geochemical heat-map patterns. " +
		"5. A genetic model for the mineralizing system. " +
		"6. Concrete exploration recommendations.",
	GenericFailure:     "Analysis failed. Please check your connection and try again.",
	NotConfiguredError: "The analysis backend is not configured. Set GEMINI_API_KEY and restart.",
}

var zhTable = Table{
	CategoryLabels: map[inputs.Category]string{
		inputs.CategoryField:         "野外观察",
		inputs.CategoryHandSpecimen:  "手标本",
		inputs.CategoryMicroscopy:    "显微镜观察",
		inputs.CategoryGeochemistry:  "地球化学",
		inputs.CategoryRemoteSensing: "遥感",
	},
	Placeholder: "无",
	Modules: []Module{
		{Label: "矿床类型判别", Description: "判别最可能的矿床类型并给出置信度。"},
		{Label: "矿相学分析", Description: "解释矿石矿物组合、结构构造及生成顺序。"},
		{Label: "蚀变分带", Description: "圈定热液蚀变矿物组合及其空间分带。"},
		{Label: "地球化学特征", Description: "评价指示元素组合与地球化学异常。"},
		{Label: "遥感解译", Description: "将光谱异常与线性构造证据同成矿作用联系起来。"},
		{Label: "勘查靶区优选", Description: "对后续勘查靶区排序并提出工作建议。"},
	},
	DataEntryLabel:   "数据录入",
	ResultsToolLabel: "分析结果",
	HeatmapToolLabel: "热图脚本",
	SystemInstruction: "你是一位资深的矿床地质学家。请用中文回答。" +
		"每次分析必须严格按以下六个部分输出：" +
		"一、矿床类型判别并给出明确的置信度；" +
		"二、综合从露头到薄片各观察尺度的诊断性证据；" +
		"三、矿物组合与矿物生成顺序论述；" +
		"四、地球化学热图特征解释；" +
		"五、成矿系统的成因模型；" +
		"六、具体的勘查工作建议。",
	GenericFailure:     "分析失败，请检查网络连接后重试。",
	NotConfiguredError: "分析后端未配置，请设置 GEMINI_API_KEY 后重启。",
}
