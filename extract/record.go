package extract

import "strings"

// Separator joins accumulated fragments in the final record value.
const Separator = "; "

// ValueKey returns the output key for a tracked field ("Mereenie" ->
// "Mereenie_HSE").
func ValueKey(field string) string {
	return field + "_HSE"
}

// Record is the flat output for one source document.
type Record struct {
	// File is the original source name.
	File string `json:"file"`
	// Date is the label derived from File by stripping the document
	// extension and surrounding whitespace.
	Date string `json:"date"`
	// Values maps "<field>_HSE" keys to final commentary strings.
	Values map[string]string `json:"values"`
}

// Value returns the final string for a tracked field name.
func (r Record) Value(field string) string {
	return r.Values[ValueKey(field)]
}

// DateLabel derives the date label from a source name: a trailing .docx or
// .doc suffix is stripped (case-insensitive), then surrounding whitespace
// trimmed. Report files are named after their reporting date, so this is
// the record's date column.
func DateLabel(name string) string {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)
	for _, ext := range []string{".docx", ".doc"} {
		if strings.HasSuffix(lower, ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	return strings.TrimSpace(name)
}

// assemble finalizes accumulated fragments into a Record. A field whose
// list is empty or exactly the singleton sentinel gets the literal
// sentinel; any other list is joined with the separator in accumulation
// order.
func assemble(name string, fs FieldSet, acc *Accumulator) Record {
	rec := Record{
		File:   name,
		Date:   DateLabel(name),
		Values: make(map[string]string, len(fs.Fields)),
	}
	for _, field := range fs.Fields {
		frags := acc.Fragments(field)
		if len(frags) == 0 || (len(frags) == 1 && frags[0] == fs.NilSentinel) {
			rec.Values[ValueKey(field)] = fs.NilSentinel
			continue
		}
		rec.Values[ValueKey(field)] = strings.Join(frags, Separator)
	}
	return rec
}
