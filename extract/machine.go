package extract

import "strings"

// rowAction is the three-way classification of a table row. Keeping the
// classification separate from the scan loop keeps the priority rule
// (section marker beats terminator in the same row) visible and testable.
type rowAction int

const (
	// rowSkip ignores the row: it is blank, or matches neither marker.
	rowSkip rowAction = iota
	// rowRecord treats the row as field data: a cell equals the section marker.
	rowRecord
	// rowStop terminates scanning of the current table: a cell equals the
	// terminator marker and none equals the section marker.
	rowStop
)

// classifyRow decides what to do with one row. Blank rows are ignored for
// all purposes, including section-boundary detection. A row carrying both
// markers is a data row: the section marker takes priority.
func classifyRow(row []string, fs FieldSet) rowAction {
	blank := true
	hasSection := false
	hasTerminator := false
	for _, cell := range row {
		t := strings.TrimSpace(cell)
		if t == "" {
			continue
		}
		blank = false
		if t == fs.SectionMarker {
			hasSection = true
		}
		if t == fs.TerminatorMarker {
			hasTerminator = true
		}
	}

	switch {
	case blank:
		return rowSkip
	case hasSection:
		return rowRecord
	case hasTerminator:
		return rowStop
	default:
		return rowSkip
	}
}

// sectionMachine scans one table at a time, feeding qualifying cell values
// into the shared per-document accumulator. Scanning starts fresh for every
// table; terminating one table never affects the next.
type sectionMachine struct {
	fields FieldSet
	acc    *Accumulator
}

func newSectionMachine(fields FieldSet, acc *Accumulator) *sectionMachine {
	return &sectionMachine{fields: fields, acc: acc}
}

// scanTable processes a table's rows in order until the rows run out or a
// terminator row stops the table. Rows after the terminator are never
// inspected.
func (m *sectionMachine) scanTable(hi HeaderIndex, rows [][]string) {
	for _, row := range rows {
		switch classifyRow(row, m.fields) {
		case rowSkip:
			continue
		case rowRecord:
			m.recordRow(hi, row)
		case rowStop:
			return
		}
	}
}

// recordRow inspects each tracked field's resolved column in a data row.
// The nil sentinel resets that field's fragments; other non-empty values
// append, unless they carry a marker substring, which is table furniture
// rather than commentary.
func (m *sectionMachine) recordRow(hi HeaderIndex, row []string) {
	for _, field := range m.fields.Fields {
		col, ok := hi.Column(field)
		if !ok || col < 0 || col >= len(row) {
			continue
		}
		val := strings.TrimSpace(row[col])
		switch {
		case val == "":
			// nothing recorded for this facility in this row
		case val == m.fields.NilSentinel:
			m.acc.RecordNil(field)
		case strings.Contains(val, m.fields.SectionMarker),
			strings.Contains(val, m.fields.TerminatorMarker):
			// marker text bleeding into a facility column is skipped
		default:
			m.acc.Append(field, val)
		}
	}
}
