package extract

import "fmt"

// Default marker and sentinel literals used by the standard report layout.
const (
	DefaultSectionMarker    = "HSE"
	DefaultTerminatorMarker = "Production"
	DefaultNilSentinel      = "Nil"
)

// DefaultFields is the standard set of tracked facility names.
var DefaultFields = []string{"Mereenie", "Palm Valley", "BECGS/Dingo"}

// FieldSet configures one extraction run: which facility columns to track
// and which marker literals delimit the commentary block. Report layouts
// change, so none of this is hardwired into the scanning logic.
type FieldSet struct {
	// Fields lists the tracked facility names, in output order.
	Fields []string

	// SectionMarker opens a block of qualifying remarks ("HSE").
	SectionMarker string

	// TerminatorMarker closes the block for the current table ("Production").
	TerminatorMarker string

	// NilSentinel is the "no remark" value ("Nil").
	NilSentinel string
}

// DefaultFieldSet returns the standard configuration.
func DefaultFieldSet() FieldSet {
	return FieldSet{
		Fields:           append([]string(nil), DefaultFields...),
		SectionMarker:    DefaultSectionMarker,
		TerminatorMarker: DefaultTerminatorMarker,
		NilSentinel:      DefaultNilSentinel,
	}
}

// WithFields returns a copy of the FieldSet tracking the given fields.
func (fs FieldSet) WithFields(fields ...string) FieldSet {
	out := fs
	out.Fields = append([]string(nil), fields...)
	return out
}

// WithMarkers returns a copy of the FieldSet using the given section and
// terminator markers.
func (fs FieldSet) WithMarkers(section, terminator string) FieldSet {
	out := fs
	out.SectionMarker = section
	out.TerminatorMarker = terminator
	return out
}

// Validate checks the FieldSet at configuration load time, so that bad
// configuration surfaces before any document is scanned.
func (fs FieldSet) Validate() error {
	if len(fs.Fields) == 0 {
		return fmt.Errorf("field set: no tracked fields configured")
	}
	seen := make(map[string]bool, len(fs.Fields))
	for _, f := range fs.Fields {
		if f == "" {
			return fmt.Errorf("field set: empty field name")
		}
		if seen[f] {
			return fmt.Errorf("field set: duplicate field %q", f)
		}
		seen[f] = true
	}
	if fs.SectionMarker == "" {
		return fmt.Errorf("field set: empty section marker")
	}
	if fs.TerminatorMarker == "" {
		return fmt.Errorf("field set: empty terminator marker")
	}
	if fs.SectionMarker == fs.TerminatorMarker {
		return fmt.Errorf("field set: section and terminator markers are both %q", fs.SectionMarker)
	}
	if fs.NilSentinel == "" {
		return fmt.Errorf("field set: empty nil sentinel")
	}
	return nil
}
