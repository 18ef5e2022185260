package facts

import (
	"fmt"
	"strings"
)

// ResultToMarkdown renders an extraction result as a Markdown summary for
// review: a facts table plus a preview of every structured table.
func ResultToMarkdown(res *ExtractionResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Earnings Facts: %s (%s)\n\n", res.Company, res.Period))
	sb.WriteString(fmt.Sprintf("- Source: %s\n", res.SourceURL))
	sb.WriteString(fmt.Sprintf("- Extracted: %s\n", res.ExtractedAt))
	sb.WriteString(fmt.Sprintf("- Status: %s (%d facts)\n\n", res.ExtractionStatus, res.FactCount))

	if len(res.Facts) > 0 {
		sb.WriteString("## Facts\n\n")
		sb.WriteString("| Type | Metric | Value | Unit | Direction | Confidence |\n")
		sb.WriteString("| --- | --- | --- | --- | --- | --- |\n")
		for _, f := range res.Facts {
			direction := f.Direction
			if direction == "" {
				direction = "-"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				f.FactType, f.Metric, formatValue(f.Value), f.Unit, direction, f.Confidence))
		}
		sb.WriteString("\n")
	}

	for _, table := range res.Tables {
		sb.WriteString(fmt.Sprintf("## Table %d (%d rows)\n\n", table.TableIndex, table.RowCount))
		sb.WriteString(renderMarkdownTable(table))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderMarkdownTable writes one structured table as aligned Markdown.
// When no header row was detected, a generic column header line is emitted
// so the table still renders.
func renderMarkdownTable(table Table) string {
	width := len(table.Headers)
	for _, row := range table.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString("|")
	for i := 0; i < width; i++ {
		cell := ""
		if i < len(table.Headers) {
			cell = table.Headers[i]
		}
		if cell == "" {
			cell = fmt.Sprintf("col %d", i+1)
		}
		sb.WriteString(" " + escapeCell(cell) + " |")
	}
	sb.WriteString("\n|")
	for i := 0; i < width; i++ {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")

	for _, row := range table.Rows {
		sb.WriteString("|")
		for i := 0; i < width; i++ {
			cell := " "
			if i < len(row) && row[i] != "" {
				cell = row[i]
			}
			sb.WriteString(" " + escapeCell(cell) + " |")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, "|", "&#124;")
}
