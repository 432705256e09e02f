package assemble

import (
	"fmt"
	"strings"

	"geovision-backend/internal/inputs"
	"geovision-backend/internal/locale"
)

// buildSummary renders the five categories as "<label>: <text>" lines in
// canonical order. Empty or whitespace-only text shows the locale
// placeholder so the model always sees all five scales.
func buildSummary(snap inputs.Snapshot, table locale.Table) string {
	lines := make([]string, 0, len(inputs.Categories()))
	for _, c := range inputs.Categories() {
		text := strings.TrimSpace(snap.Text(c))
		if text == "" {
			text = table.Placeholder
		}
		lines = append(lines, fmt.Sprintf("%s: %s", table.CategoryLabel(c), text))
	}
	return strings.Join(lines, "\n")
}

func fullPrompt(loc locale.Locale, summary string) string {
	if loc == locale.ZH {
		return "请基于以下多尺度观察资料进行完整的矿床综合分析。附件文件是对摘要的补充。\n\n" + summary
	}
	return "Perform a complete mineral deposit analysis based on the following multi-scale observations. " +
		"The attached files supplement this summary.\n\n" + summary
}

func modulePrompt(loc locale.Locale, moduleLabel, summary string) string {
	if loc == locale.ZH {
		return fmt.Sprintf("请仅针对“%s”模块进行深入分析，其余模块从略。观察资料如下，附件文件是对摘要的补充。\n\n%s",
			moduleLabel, summary)
	}
	return fmt.Sprintf("Focus the analysis exclusively on the %q module; do not cover the other modules. "+
		"The observations follow, and the attached files supplement this summary.\n\n%s",
		moduleLabel, summary)
}

const heatmapTemplateEN = `Generate one complete, runnable Python script that renders a geochemical anomaly heatmap. Structure the script exactly as follows.

# --- Configuration ---
Declare these variables at the top, with placeholder values the user replaces before running:
INPUT_CSV_PATH, OUTPUT_IMAGE_PATH, X_COLUMN, Y_COLUMN, ELEMENT_COLUMNS.

# --- Processing ---
Read the assay table, normalize each element column, weight the elements according to the deposit context below, combine them into a composite anomaly index, interpolate the index onto a regular grid, and render it as a heatmap written to OUTPUT_IMAGE_PATH.

# --- Usage ---
Close the script with a comment block listing the required packages and the exact command to run it.

Deposit context for element weighting:
Geochemistry: %s
Field observations: %s

Full observation summary:
%s`

const heatmapTemplateZH = `请生成一个完整可运行的 Python 脚本，用于绘制地球化学异常热图。脚本结构必须严格如下。

# --- 配置 ---
在脚本开头声明以下变量，并使用占位值供用户运行前替换：
INPUT_CSV_PATH、OUTPUT_IMAGE_PATH、X_COLUMN、Y_COLUMN、ELEMENT_COLUMNS。

# --- 处理逻辑 ---
读取化验数据表，对各元素列做归一化，按下方矿床背景信息确定元素权重，合成综合异常指数，插值到规则网格，并将热图输出到 OUTPUT_IMAGE_PATH。

# --- 使用说明 ---
在脚本末尾用注释块列出所需依赖包及运行命令。

用于确定元素权重的矿床背景：
地球化学：%s
野外观察：%s

完整观察摘要：
%s`

// heatmapPrompt interpolates the raw geochemistry and field text into the
// weighting-rationale slots so the generated script reflects the deposit
// context, not just the generic template.
func heatmapPrompt(loc locale.Locale, snap inputs.Snapshot, table locale.Table, summary string) string {
	geochem := strings.TrimSpace(snap.Text(inputs.CategoryGeochemistry))
	if geochem == "" {
		geochem = table.Placeholder
	}
	field := strings.TrimSpace(snap.Text(inputs.CategoryField))
	if field == "" {
		field = table.Placeholder
	}

	template := heatmapTemplateEN
	if loc == locale.ZH {
		template = heatmapTemplateZH
	}
	return fmt.Sprintf(template, geochem, field, summary)
}
