// Package extract implements the table-scanning extraction algorithm for
// HSE commentary in tabular operations reports.
//
// A report document carries one or more tables laid out per reporting
// period. Within a table, a row containing the "HSE" marker opens a block of
// qualifying remarks, one column per tracked facility; a row containing the
// "Production" marker closes the block for that table. The extractor walks
// every table of a document, resolves each table's facility columns from its
// own header row, accumulates commentary fragments per facility across all
// tables, and collapses the "Nil" sentinel, producing one flat Record per
// document.
//
// Basic usage:
//
//	doc, err := docx.ReadDocument(data, "2024-05-01.docx")
//	if err != nil {
//	    // handle error
//	}
//	rec, err := extract.Document(doc, extract.DefaultFieldSet())
//
// All state is scoped to a single Document call; independent documents may
// be extracted concurrently without synchronization.
package extract
