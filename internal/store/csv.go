package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// readCSV reads a previously written CSV artifact: a header row followed by
// data rows. Ragged rows are tolerated; missing cells read as empty.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("spreadsheet %s has no header row", path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		records = append(records, rec)
	}
	return header, records, nil
}

// writeCSV writes the table as a header row plus one record per row, in the
// table's column order.
func writeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.rows {
		rec := make([]string, len(t.headers))
		for i, h := range t.headers {
			rec[i] = row[h]
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
