// Package model defines the narrow, read-only document model consumed by the
// extraction core: a document is an ordered list of tables, a table an ordered
// list of rows, a row an ordered list of trimmed cell texts. Nothing about the
// on-disk format (DOCX or otherwise) leaks through this package; format
// readers produce a Document, the core only reads one.
package model

// Document represents one source document's tabular content.
type Document struct {
	// Name is the original source name (usually the uploaded filename).
	Name string

	// Tables holds the document's tables in document order.
	Tables []Table
}

// NewDocument creates an empty document with the given source name.
func NewDocument(name string) *Document {
	return &Document{Name: name}
}

// AddTable appends a table to the document.
func (d *Document) AddTable(t Table) {
	d.Tables = append(d.Tables, t)
}

// TableCount returns the number of tables in the document.
func (d *Document) TableCount() int {
	return len(d.Tables)
}
