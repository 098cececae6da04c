package hsereport

import (
	"github.com/tsawler/hsereport/docx"
	"github.com/tsawler/hsereport/extract"
)

// Extractor provides a fluent interface for configuring and running one
// document extraction. Configuration methods return a new Extractor with
// cloned options, so a partially configured Extractor can be reused safely.
type Extractor struct {
	filename string
	data     []byte
	name     string
	inBytes  bool
	options  ExtractOptions
}

// Fields sets the tracked facility names for this extraction.
func (e *Extractor) Fields(fields ...string) *Extractor {
	ne := e.clone()
	ne.options.fieldSet = ne.options.fieldSet.WithFields(fields...)
	return ne
}

// Markers sets the section and terminator marker literals.
func (e *Extractor) Markers(section, terminator string) *Extractor {
	ne := e.clone()
	ne.options.fieldSet = ne.options.fieldSet.WithMarkers(section, terminator)
	return ne
}

// FieldSet replaces the full extraction configuration.
func (e *Extractor) FieldSet(fs extract.FieldSet) *Extractor {
	ne := e.clone()
	ne.options.fieldSet = fs
	return ne
}

// Extract is the terminal operation: it reads the document and returns its
// extracted record. The underlying reader is always closed before Extract
// returns.
func (e *Extractor) Extract() (extract.Record, error) {
	var (
		r   *docx.Reader
		err error
	)
	if e.inBytes {
		r, err = docx.OpenBytes(e.data, e.name)
	} else {
		r, err = docx.Open(e.filename)
	}
	if err != nil {
		return extract.Record{}, err
	}
	defer r.Close()

	doc, err := r.Document()
	if err != nil {
		return extract.Record{}, err
	}
	return extract.Document(doc, e.options.fieldSet)
}

// clone creates a copy of the Extractor with deep-copied options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		data:     e.data,
		name:     e.name,
		inBytes:  e.inBytes,
		options:  e.options.clone(),
	}
}
