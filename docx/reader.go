// Package docx provides DOCX (Office Open XML) table parsing. It reads only
// what the extraction pipeline needs: the tables of word/document.xml, with
// merged cells expanded so column positions stay aligned with the table grid.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/tsawler/hsereport/format"
	"github.com/tsawler/hsereport/model"
)

// ReadError reports that raw bytes could not be parsed into a document.
// It is fatal for the document it names; batch callers continue with the
// remaining documents.
type ReadError struct {
	Name string // source name of the document
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading document %q: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// zipSource abstracts the two ways a DOCX archive can be opened.
type zipSource interface {
	files() []*zip.File
	close() error
}

type fileSource struct{ rc *zip.ReadCloser }

func (s *fileSource) files() []*zip.File { return s.rc.File }
func (s *fileSource) close() error       { return s.rc.Close() }

type bytesSource struct{ r *zip.Reader }

func (s *bytesSource) files() []*zip.File { return s.r.File }
func (s *bytesSource) close() error       { return nil }

// Reader provides access to the tables of a DOCX document.
type Reader struct {
	name     string
	source   zipSource
	document *documentXML
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, &ReadError{Name: filename, Err: fmt.Errorf("opening ZIP archive: %w", err)}
	}

	r := &Reader{name: filename, source: &fileSource{rc: zr}}
	if err := r.parse(); err != nil {
		zr.Close()
		return nil, &ReadError{Name: filename, Err: err}
	}
	return r, nil
}

// OpenBytes opens a DOCX document held in memory, as received from an
// upload. No temporary file is created. The name is carried through to the
// resulting model.Document.
func OpenBytes(data []byte, name string) (*Reader, error) {
	// Cheap sniff before handing the bytes to archive/zip, so a stray PDF
	// or HTML upload fails with a clear message instead of a zip error.
	if f := format.DetectFromBytes(data); f != format.Unknown && f != format.DOCX {
		return nil, &ReadError{Name: name, Err: fmt.Errorf("unsupported format %s, want DOCX", f)}
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ReadError{Name: name, Err: fmt.Errorf("opening ZIP archive: %w", err)}
	}

	r := &Reader{name: name, source: &bytesSource{r: zr}}
	if err := r.parse(); err != nil {
		return nil, &ReadError{Name: name, Err: err}
	}
	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.source != nil {
		err := r.source.close()
		r.source = nil
		return err
	}
	return nil
}

// parse validates the archive layout and unmarshals word/document.xml.
func (r *Reader) parse() error {
	if err := r.validate(); err != nil {
		return err
	}

	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.source.files() {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.source.files() {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// TableCount returns the number of tables in the document body.
func (r *Reader) TableCount() int {
	if r.document == nil || r.document.Body == nil {
		return 0
	}
	return len(r.document.Body.Tables)
}

// Document returns a model.Document holding the document's tables in order,
// with cell text trimmed and merged cells expanded.
func (r *Reader) Document() (*model.Document, error) {
	if r.document == nil {
		return nil, fmt.Errorf("document not parsed")
	}

	doc := model.NewDocument(r.name)
	if r.document.Body == nil {
		return doc, nil
	}

	tp := newTableParser()
	for _, tbl := range r.document.Body.Tables {
		doc.AddTable(tp.parseTable(tbl))
	}
	return doc, nil
}

// ReadDocument is a convenience that opens in-memory DOCX bytes and returns
// the table model in one step.
func ReadDocument(data []byte, name string) (*model.Document, error) {
	r, err := OpenBytes(data, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Document()
}
