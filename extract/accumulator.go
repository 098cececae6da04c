package extract

// Accumulator collects commentary fragments per tracked field across all
// tables of one document. Its lifetime is one document extraction; it is
// never shared between documents.
//
// Recording the nil sentinel resets a field's list to just the sentinel,
// but does not lock the field: later fragments append onto the existing
// list, so a sentinel followed by late commentary yields a mixed list such
// as ["Nil", "Late comment"]. That composite is preserved faithfully for
// compatibility with the established report output; see the package tests.
type Accumulator struct {
	fields    []string
	sentinel  string
	fragments map[string][]string
}

// NewAccumulator creates an accumulator with one empty fragment list per
// tracked field. Fields are fixed at construction; no keys are created
// dynamically during scanning.
func NewAccumulator(fs FieldSet) *Accumulator {
	acc := &Accumulator{
		fields:    append([]string(nil), fs.Fields...),
		sentinel:  fs.NilSentinel,
		fragments: make(map[string][]string, len(fs.Fields)),
	}
	for _, f := range fs.Fields {
		acc.fragments[f] = nil
	}
	return acc
}

// RecordNil replaces the field's fragment list with the singleton sentinel.
func (a *Accumulator) RecordNil(field string) {
	if _, ok := a.fragments[field]; !ok {
		return
	}
	a.fragments[field] = []string{a.sentinel}
}

// Append pushes a fragment onto the field's existing list. It may follow a
// prior RecordNil; the resulting mixed list is kept as-is.
func (a *Accumulator) Append(field, text string) {
	if _, ok := a.fragments[field]; !ok {
		return
	}
	a.fragments[field] = append(a.fragments[field], text)
}

// Fragments returns a copy of the field's accumulated list, in order.
func (a *Accumulator) Fragments(field string) []string {
	return append([]string(nil), a.fragments[field]...)
}
