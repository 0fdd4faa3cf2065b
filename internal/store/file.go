package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format selects the spreadsheet codec.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name from configuration.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected xlsx or csv)", s)
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// MergeStrategy selects how a run combines with prior artifacts.
type MergeStrategy string

const (
	// MergeLatest folds this run's rows into the newest prior artifact.
	MergeLatest MergeStrategy = "latest"
	// MergeFresh ignores prior artifacts and writes only this run's rows.
	MergeFresh MergeStrategy = "fresh"
)

// ParseMergeStrategy validates a merge strategy name from configuration.
func ParseMergeStrategy(s string) (MergeStrategy, error) {
	switch m := MergeStrategy(strings.ToLower(strings.TrimSpace(s))); m {
	case MergeLatest, MergeFresh:
		return m, nil
	default:
		return "", fmt.Errorf("unknown merge strategy %q (expected latest or fresh)", s)
	}
}

// timestampLayout names artifacts like pubmed_results_20250131_154500.xlsx.
// The layout sorts lexicographically in time order.
const timestampLayout = "20060102_150405"

// TimestampedName builds the artifact file name for a run started at ts.
func TimestampedName(prefix string, format Format, ts time.Time) string {
	return prefix + ts.Format(timestampLayout) + format.Ext()
}

// FindLatest returns the path of the newest artifact in dir matching the
// prefix and format, or "" when none exists. A missing directory is the
// same as an empty one.
func FindLatest(dir, prefix string, format Format) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("scanning %s: %w", dir, err)
	}

	latest := ""
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, format.Ext()) {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	if latest == "" {
		return "", nil
	}
	return filepath.Join(dir, latest), nil
}

// Load reads a spreadsheet written by a previous run. The first row is the
// header; the remaining rows become Rows keyed by keyCol. Rows without a
// key value load fine but are never deduplicated.
func Load(path, keyCol string) (*Table, error) {
	var (
		headers []string
		records [][]string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		headers, records, err = readXLSX(path)
	case ".csv":
		headers, records, err = readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	t := NewTable(headers, keyCol)
	for _, rec := range records {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		t.Append(row)
	}
	return t, nil
}

// Save writes the table to path atomically: the data goes to a temporary
// file in the same directory and is renamed into place, so a failed write
// never leaves a partial artifact behind.
func Save(path string, t *Table) error {
	ext := strings.ToLower(filepath.Ext(path))

	tmp, err := os.CreateTemp(filepath.Dir(path), ".harvest-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	var werr error
	switch ext {
	case ".xlsx":
		werr = writeXLSX(tmp, t)
	case ".csv":
		werr = writeCSV(tmp, t)
	default:
		werr = fmt.Errorf("unsupported spreadsheet extension %q", ext)
	}
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), werr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
