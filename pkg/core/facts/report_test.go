package facts

import (
	"strings"
	"testing"
)

func TestResultToMarkdown(t *testing.T) {
	res := &ExtractionResult{
		Company:          "Test Co",
		Period:           "Q3 2023",
		SourceURL:        "https://example.com/earnings",
		ExtractedAt:      "2023-10-26T12:00:00Z",
		ExtractionStatus: StatusSuccess,
		FactCount:        1,
		Facts: []Fact{
			{FactType: FactTypeRevenue, Metric: "total_revenue", Value: 5.2, Unit: "billion_usd", Confidence: ConfidenceHigh},
		},
		Tables: []Table{
			{
				TableIndex: 2,
				Headers:    []string{"Segment", "Q3 2023"},
				Rows:       [][]string{{"North America", "$87.9B"}},
				RowCount:   5,
			},
		},
	}

	md := ResultToMarkdown(res)

	for _, want := range []string{
		"# Earnings Facts: Test Co (Q3 2023)",
		"| revenue | total_revenue | 5.2 | billion_usd |",
		"## Table 2 (5 rows)",
		"| Segment | Q3 2023 |",
		"| North America | $87.9B |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRenderMarkdownTableWithoutHeaders(t *testing.T) {
	table := Table{
		TableIndex: 0,
		Rows:       [][]string{{"$5.2B", "$4.1B"}},
		RowCount:   1,
	}

	md := renderMarkdownTable(table)
	if !strings.Contains(md, "col 1") || !strings.Contains(md, "col 2") {
		t.Errorf("header-less table should get generic column names:\n%s", md)
	}
	if !strings.Contains(md, "| $5.2B | $4.1B |") {
		t.Errorf("data row missing:\n%s", md)
	}
}

func TestEscapeCell(t *testing.T) {
	if got := escapeCell("a|b\nc"); got != "a&#124;b c" {
		t.Errorf("escapeCell = %q", got)
	}
}
