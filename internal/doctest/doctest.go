// Package doctest builds minimal DOCX archives in memory for tests: given
// tables as rows of cell strings, it produces a ZIP with the required
// package parts and a word/document.xml carrying those tables.
package doctest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const rels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// DOCX returns the bytes of a DOCX document containing the given tables.
func DOCX(t testing.TB, tables ...[][]string) []byte {
	t.Helper()

	var body strings.Builder
	for _, rows := range tables {
		body.WriteString(TableXML(rows))
	}
	return DOCXFromBody(t, body.String())
}

// DOCXFromBody returns DOCX bytes whose word/document.xml body is the given
// raw XML fragment.
func DOCXFromBody(t testing.TB, bodyXML string) []byte {
	t.Helper()

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + bodyXML + `</w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": contentTypes,
		"_rels/.rels":         rels,
		"word/document.xml":   document,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	return buf.Bytes()
}

// WriteDOCX writes a DOCX with the given tables into dir and returns its path.
func WriteDOCX(t testing.TB, dir, name string, tables ...[][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, DOCX(t, tables...), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// TableXML renders rows of cell strings as a <w:tbl> fragment.
func TableXML(rows [][]string) string {
	var sb strings.Builder
	sb.WriteString("<w:tbl>")
	for _, row := range rows {
		sb.WriteString("<w:tr>")
		for _, cell := range row {
			sb.WriteString("<w:tc><w:p><w:r><w:t>")
			xml.EscapeText(&sb, []byte(cell))
			sb.WriteString("</w:t></w:r></w:p></w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}
