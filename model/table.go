package model

// Table represents a table as rows of trimmed cell texts. Merged cells are
// expanded by the format reader so that every row has one entry per grid
// column and column positions line up across rows.
type Table struct {
	Rows [][]string
}

// NewTable creates a table from pre-trimmed rows.
func NewTable(rows [][]string) Table {
	return Table{Rows: rows}
}

// RowCount returns the number of rows.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of cells in the first row, or 0 for an
// empty table.
func (t Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Header returns the table's header row (row 0) and true, or nil and false
// if the table has no rows.
func (t Table) Header() ([]string, bool) {
	if len(t.Rows) == 0 {
		return nil, false
	}
	return t.Rows[0], true
}
