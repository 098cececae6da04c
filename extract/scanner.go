package extract

import (
	"fmt"

	"github.com/tsawler/hsereport/model"
)

// StructureError reports a structurally unusable table: one with zero rows,
// which leaves no header to resolve. It is fatal for the document it names.
type StructureError struct {
	Table int // zero-based table position within the document
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("table %d has no rows", e.Table)
}

// TableScanner walks a document's tables in order, exposing each table's
// rows of trimmed cell texts. It is forward-only and consume-once, in the
// manner of bufio.Scanner: call Next until it returns false, then check Err.
// Restarting requires a fresh scanner.
type TableScanner struct {
	doc  *model.Document
	pos  int
	rows [][]string
	err  error
}

// NewTableScanner returns a scanner over the document's tables.
func NewTableScanner(doc *model.Document) *TableScanner {
	return &TableScanner{doc: doc, pos: -1}
}

// Next advances to the next table. It returns false when no tables remain
// or when the current table is structurally invalid, in which case Err
// returns a StructureError.
func (s *TableScanner) Next() bool {
	if s.err != nil {
		return false
	}
	s.pos++
	if s.pos >= len(s.doc.Tables) {
		return false
	}
	t := s.doc.Tables[s.pos]
	if t.RowCount() == 0 {
		s.err = &StructureError{Table: s.pos}
		return false
	}
	s.rows = t.Rows
	return true
}

// Rows returns the current table's rows. Valid only after a true Next.
func (s *TableScanner) Rows() [][]string {
	return s.rows
}

// Header returns the current table's header row (row 0).
func (s *TableScanner) Header() []string {
	return s.rows[0]
}

// Err returns the first error encountered while scanning, or nil.
func (s *TableScanner) Err() error {
	return s.err
}
