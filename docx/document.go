package docx

import "encoding/xml"

// documentXML represents the structure of word/document.xml, restricted to
// the elements needed for table extraction.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body.
type bodyXML struct {
	Tables []tableXML `xml:"tbl"`
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	XMLName xml.Name      `xml:"tbl"`
	Grid    tableGridXML  `xml:"tblGrid"`
	Rows    []tableRowXML `xml:"tr"`
}

// tableGridXML represents table grid definition.
type tableGridXML struct {
	Cols []gridColXML `xml:"gridCol"`
}

// gridColXML represents a grid column.
type gridColXML struct {
	W string `xml:"w,attr"` // Width in twips
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	XMLName xml.Name       `xml:"tr"`
	Cells   []tableCellXML `xml:"tc"`
}

// tableCellXML represents a table cell (<w:tc>).
type tableCellXML struct {
	XMLName    xml.Name       `xml:"tc"`
	Properties cellPropsXML   `xml:"tcPr"`
	Paragraphs []paragraphXML `xml:"p"`
}

// cellPropsXML represents cell properties.
type cellPropsXML struct {
	GridSpan gridSpanXML `xml:"gridSpan"`
	VMerge   vMergeXML   `xml:"vMerge"`
}

// gridSpanXML represents column span.
type gridSpanXML struct {
	Val string `xml:"val,attr"` // Number of columns spanned
}

// vMergeXML represents vertical merge.
type vMergeXML struct {
	XMLName xml.Name `xml:"vMerge"`
	Val     string   `xml:"val,attr"` // "restart" or empty (continue)
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName xml.Name `xml:"p"`
	Runs    []runXML `xml:"r"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	XMLName xml.Name   `xml:"r"`
	Text    []textXML  `xml:"t"`
	Tabs    []tabXML   `xml:"tab"`
	Breaks  []breakXML `xml:"br"`
}

// textXML represents text content (<w:t>).
type textXML struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"` // preserve
	Value   string   `xml:",chardata"`
}

// tabXML represents a tab character.
type tabXML struct {
	XMLName xml.Name `xml:"tab"`
}

// breakXML represents a break (line or page).
type breakXML struct {
	XMLName xml.Name `xml:"br"`
	Type    string   `xml:"type,attr"` // page, column, textWrapping
}
