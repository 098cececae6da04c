// Package format provides file format detection for uploaded documents.
package format

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a detected document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// ZIP indicates a ZIP archive that is not an Office Open XML word document.
	ZIP
	// PDF indicates a PDF document.
	PDF
	// HTML indicates an HTML document.
	HTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case ZIP:
		return "ZIP"
	case PDF:
		return "PDF"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".zip":
		return ZIP
	case ".pdf":
		return PDF
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// DetectFromBytes checks content to determine format. It is more reliable
// than extension-based detection: a ZIP archive is only reported as DOCX
// when it actually carries word/ parts. Returns Unknown if the content
// cannot be classified.
func DetectFromBytes(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// PDF magic: %PDF
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}

	// ZIP magic (DOCX is a ZIP archive): PK\x03\x04
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return detectZIPFormat(data)
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	return Unknown
}

// detectZIPFormat inspects a ZIP archive to determine if it's a word document.
func detectZIPFormat(data []byte) Format {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// Truncated or malformed archive; let the DOCX reader report it.
		return ZIP
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX
		}
	}
	return ZIP
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}

	upper := strings.ToUpper(string(data[start:]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	return false
}
