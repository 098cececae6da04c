// Package export serializes extracted records into tabular artifacts: an
// XLSX workbook for download and CSV for piping. Both use the same layout:
// File, Date, then one column per tracked field's "<field>_HSE" key.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/hsereport/extract"
)

// WorkbookName is the default download filename for the XLSX artifact.
const WorkbookName = "HSE_Summary_IndividualFields.xlsx"

const sheetName = "Sheet1"

// Columns returns the output column headers for a tracked field list.
func Columns(fields []string) []string {
	cols := make([]string, 0, len(fields)+2)
	cols = append(cols, "File", "Date")
	for _, f := range fields {
		cols = append(cols, extract.ValueKey(f))
	}
	return cols
}

// row flattens one record into the column layout.
func row(rec extract.Record, fields []string) []string {
	cells := make([]string, 0, len(fields)+2)
	cells = append(cells, rec.File, rec.Date)
	for _, f := range fields {
		cells = append(cells, rec.Values[extract.ValueKey(f)])
	}
	return cells
}

// XLSX serializes records into an XLSX workbook and returns its bytes.
func XLSX(recs []extract.Record, fields []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, recs, fields); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, recs []extract.Record, fields []string) error {
	if err := setRow(f, 1, Columns(fields)); err != nil {
		return err
	}
	for i, rec := range recs {
		if err := setRow(f, i+2, row(rec, fields)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, cells []string) error {
	for col, val := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("cell name (%d,%d): %w", col+1, rowNum, err)
		}
		if err := f.SetCellValue(sheetName, name, val); err != nil {
			return fmt.Errorf("set cell %s: %w", name, err)
		}
	}
	return nil
}

// CSV writes records in the same layout as the workbook.
func CSV(w io.Writer, recs []extract.Record, fields []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns(fields)); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := cw.Write(row(rec, fields)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
