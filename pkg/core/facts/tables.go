package facts

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxTableRows caps how many rows each emitted table keeps; RowCount still
// reports the true total.
const maxTableRows = 10

// numericCellRe matches cells that look like numbers or currency amounts,
// including sign prefixes, accounting parentheses, percent signs, and scale
// suffixes ("$5.2B", "+26%", "(1,234)"). A first row made entirely of such
// cells is data, not headers.
var numericCellRe = regexp.MustCompile(`(?i)^[\s$(+-]*[\d,.]+\s*(?:[bmkt]|%)?[\s)]*$`)

// StructureTables converts every <table> in the document into a Table record.
// Indices follow document order over ALL tables and are assigned before
// zero-row tables are dropped, so emitted indices may be sparse.
func StructureTables(doc *goquery.Document) []Table {
	tables := make([]Table, 0)

	doc.Find("table").Each(func(idx int, sel *goquery.Selection) {
		headers := detectHeaders(sel)
		rows, total := collectRows(sel, headers)
		if total == 0 {
			return
		}
		tables = append(tables, Table{
			TableIndex: idx,
			Headers:    headers,
			Rows:       rows,
			RowCount:   total,
		})
	})

	return tables
}

// detectHeaders finds the column headers of a table, preferring an explicit
// <thead> row. Without one, the first row is treated as headers only if at
// least one cell does not look like a number or currency amount.
func detectHeaders(table *goquery.Selection) []string {
	headerRow := table.Find("thead").First().Find("tr").First()
	if headerRow.Length() > 0 {
		if cells := cellTexts(headerRow); len(cells) > 0 {
			return cells
		}
	}

	firstRow := table.Find("tr").First()
	if firstRow.Length() == 0 {
		return nil
	}
	cells := cellTexts(firstRow)
	if looksLikeHeaderRow(cells) {
		return cells
	}
	return nil
}

// looksLikeHeaderRow reports whether a candidate header row contains at least
// one non-numeric cell. Empty cells are ignored for the check.
func looksLikeHeaderRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if c == "" {
			continue
		}
		if !numericCellRe.MatchString(c) {
			return true
		}
	}
	return false
}

// collectRows gathers data rows from the table body (or the whole table when
// no <tbody> exists). Rows that are empty or identical to the detected header
// row are skipped; only the first maxTableRows rows are kept, with the true
// total returned alongside.
func collectRows(table *goquery.Selection, headers []string) ([][]string, int) {
	body := table.Find("tbody").First()

	var rowSel *goquery.Selection
	if body.Length() > 0 {
		rowSel = body.Find("tr")
	} else {
		rowSel = table.Find("tr")
	}

	var rows [][]string
	total := 0
	rowSel.Each(func(_ int, tr *goquery.Selection) {
		cells := cellTexts(tr)
		if len(cells) == 0 || sameCells(cells, headers) {
			return
		}
		total++
		if len(rows) < maxTableRows {
			rows = append(rows, cells)
		}
	})

	return rows, total
}

// cellTexts extracts trimmed cell strings from one row, accepting both <td>
// and <th> so header-less tables using <th> data cells still structure.
func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}

func sameCells(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
