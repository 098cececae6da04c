package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/hsereport/model"
)

// tableParser converts table XML into the flat row model. Horizontally
// merged cells (gridSpan) are expanded by repeating the cell text once per
// spanned column; vertically merged continuation cells (vMerge without
// "restart") inherit the text of the cell above them in the same column.
// Both match how word processors present merged cells, and keep header
// columns aligned with data columns.
type tableParser struct{}

func newTableParser() *tableParser {
	return &tableParser{}
}

// parseTable parses a table XML element into flat rows of trimmed cell texts.
func (tp *tableParser) parseTable(tbl tableXML) model.Table {
	var rows [][]string

	for _, row := range tbl.Rows {
		rows = append(rows, tp.parseRow(row))
	}

	tp.fillVerticalMerges(tbl, rows)
	return model.NewTable(rows)
}

// parseRow expands a row's cells into one text per grid column.
func (tp *tableParser) parseRow(row tableRowXML) []string {
	var cells []string
	for _, cell := range row.Cells {
		text := strings.TrimSpace(cellText(cell))
		span := gridSpan(cell)
		for i := 0; i < span; i++ {
			cells = append(cells, text)
		}
	}
	return cells
}

// fillVerticalMerges copies text down into vMerge continuation cells.
func (tp *tableParser) fillVerticalMerges(tbl tableXML, rows [][]string) {
	for rowIdx, row := range tbl.Rows {
		if rowIdx == 0 {
			continue
		}
		colIdx := 0
		for _, cell := range row.Cells {
			span := gridSpan(cell)
			if isMergeContinuation(cell) {
				for i := 0; i < span; i++ {
					col := colIdx + i
					if col < len(rows[rowIdx]) && col < len(rows[rowIdx-1]) {
						rows[rowIdx][col] = rows[rowIdx-1][col]
					}
				}
			}
			colIdx += span
		}
	}
}

// gridSpan returns the number of grid columns a cell occupies (at least 1).
func gridSpan(cell tableCellXML) int {
	if cell.Properties.GridSpan.Val != "" {
		if span, err := strconv.Atoi(cell.Properties.GridSpan.Val); err == nil && span > 0 {
			return span
		}
	}
	return 1
}

// isMergeContinuation reports whether a cell continues a vertical merge.
// An empty vMerge value means continue; "restart" starts a new merge.
func isMergeContinuation(cell tableCellXML) bool {
	vm := cell.Properties.VMerge
	return vm.XMLName.Local == "vMerge" && vm.Val != "restart"
}

// cellText combines the text of all paragraphs in a cell, paragraphs
// separated by newlines, runs concatenated in order.
func cellText(cell tableCellXML) string {
	var paras []string
	for _, para := range cell.Paragraphs {
		var parts []string
		for _, run := range para.Runs {
			for _, t := range run.Text {
				parts = append(parts, t.Value)
			}
			for range run.Tabs {
				parts = append(parts, "\t")
			}
			for range run.Breaks {
				parts = append(parts, "\n")
			}
		}
		if text := strings.Join(parts, ""); text != "" {
			paras = append(paras, text)
		}
	}
	return strings.Join(paras, "\n")
}
