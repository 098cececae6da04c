package extract

import "strings"

// HeaderIndex maps a tracked field name to its zero-based column position in
// one table. A field absent from that table's header has no entry; absence
// is expected, not an error.
type HeaderIndex map[string]int

// Column returns the column for a field and whether the field is mapped.
func (hi HeaderIndex) Column(field string) (int, bool) {
	col, ok := hi[field]
	return col, ok
}

// ResolveHeader builds the field-to-column mapping for one table from its
// header row. Matching is exact string equality after trimming; the first
// matching cell wins. Headers are resolved independently per table, so a
// table that lacks a field simply contributes nothing to that field.
func ResolveHeader(fields []string, header []string) HeaderIndex {
	hi := make(HeaderIndex, len(fields))
	for _, field := range fields {
		for col, cell := range header {
			if strings.TrimSpace(cell) == field {
				hi[field] = col
				break
			}
		}
	}
	return hi
}
