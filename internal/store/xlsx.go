package store

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// sheetName is the single worksheet written into every XLSX artifact.
const sheetName = "Results"

// readXLSX reads the first worksheet of an XLSX artifact: a header row
// followed by data rows. Trailing empty cells are absent from the returned
// records; callers treat missing cells as empty.
func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("spreadsheet %s has no worksheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("reading worksheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("spreadsheet %s has no header row", path)
	}
	return rows[0], rows[1:], nil
}

// writeXLSX writes the table as a single worksheet, header row first.
func writeXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming worksheet: %w", err)
	}

	header := make([]interface{}, len(t.headers))
	for i, h := range t.headers {
		header[i] = h
	}
	if err := setRow(f, 1, &header); err != nil {
		return err
	}

	for i, row := range t.rows {
		rec := make([]interface{}, len(t.headers))
		for j, h := range t.headers {
			rec[j] = row[h]
		}
		if err := setRow(f, i+2, &rec); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values *[]interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("addressing row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheetName, cell, values); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}
	return nil
}
