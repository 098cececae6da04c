// Package hsereport provides a fluent API for extracting per-facility HSE
// commentary from tabular DOCX operations reports.
//
// Basic usage:
//
//	rec, err := hsereport.Open("2024-05-01.docx").Extract()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(rec.Value("Mereenie"))
//
// With options:
//
//	rec, err := hsereport.FromBytes(data, "2024-05-01.docx").
//	    Fields("Mereenie", "Palm Valley").
//	    Markers("HSE", "Production").
//	    Extract()
//
// For advanced use cases, the lower-level docx and extract packages are also
// available.
package hsereport

import (
	"github.com/tsawler/hsereport/extract"
)

// Open prepares a DOCX file for extraction and returns an Extractor for
// fluent configuration. The file is not read until a terminal operation
// like Extract() is called.
//
// Example:
//
//	rec, err := hsereport.Open("report.docx").Extract()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes prepares an in-memory DOCX document, as received from an
// upload. The name is carried through to the extracted record.
//
// Example:
//
//	rec, err := hsereport.FromBytes(data, "report.docx").Extract()
func FromBytes(data []byte, name string) *Extractor {
	return &Extractor{
		data:    data,
		name:    name,
		inBytes: true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	rec := hsereport.Must(hsereport.Open("report.docx").Extract())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// DefaultFields returns the standard tracked facility names.
func DefaultFields() []string {
	return append([]string(nil), extract.DefaultFields...)
}
