package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Writer persists run output into a results directory.
type Writer struct {
	Dir      string
	Prefix   string
	Format   Format
	Strategy MergeStrategy

	// Now supplies the artifact timestamp; nil means time.Now. Tests use
	// it for deterministic file names.
	Now func() time.Time
}

// PersistResult summarizes a persisted artifact.
type PersistResult struct {
	Path       string // artifact written by this run
	MergedFrom string // prior artifact folded in, or ""
	Total      int    // rows in the artifact
	Added      int    // fresh rows not present before
	Updated    int    // fresh rows that replaced a prior row
	Carried    int    // prior rows kept untouched
}

// Persist merges the run's rows with the newest prior artifact (when the
// strategy asks for it) and writes a new timestamp-named file. Every
// failure here is fatal to the run: the artifact either appears complete
// or not at all.
func (w *Writer) Persist(fresh *Table) (*PersistResult, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}

	var existing *Table
	mergedFrom := ""
	if w.Strategy == MergeLatest {
		prior, err := FindLatest(w.Dir, w.Prefix, w.Format)
		if err != nil {
			return nil, err
		}
		if prior != "" {
			existing, err = Load(prior, fresh.KeyColumn())
			if err != nil {
				return nil, fmt.Errorf("loading prior artifact: %w", err)
			}
			mergedFrom = prior
		}
	}

	merged := Merge(existing, fresh)

	added, updated := 0, 0
	for _, r := range fresh.Rows() {
		key := strings.TrimSpace(r[fresh.KeyColumn()])
		if existing != nil && existing.Has(key) {
			updated++
		} else {
			added++
		}
	}
	carried := 0
	if existing != nil {
		carried = existing.Len() - updated
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	path := filepath.Join(w.Dir, TimestampedName(w.Prefix, w.Format, now()))
	if err := Save(path, merged); err != nil {
		return nil, err
	}

	return &PersistResult{
		Path:       path,
		MergedFrom: mergedFrom,
		Total:      merged.Len(),
		Added:      added,
		Updated:    updated,
		Carried:    carried,
	}, nil
}
