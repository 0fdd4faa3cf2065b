package store

import (
	"strings"
)

// Row is one spreadsheet row keyed by column name. Reading an absent
// column yields the empty string, which is also what the codecs write.
type Row map[string]string

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Table is an ordered collection of rows with upsert-by-key semantics.
// Appending a row whose key is already present replaces the earlier row in
// place, so the freshest data wins without disturbing row order. Rows with
// an empty key are kept in order but never deduplicated; they only occur
// when loading files that predate the key column.
type Table struct {
	headers []string
	keyCol  string
	rows    []Row
	index   map[string]int
}

// NewTable creates an empty table with the given column order and key column.
func NewTable(headers []string, keyCol string) *Table {
	return &Table{
		headers: append([]string(nil), headers...),
		keyCol:  keyCol,
		index:   make(map[string]int),
	}
}

// Headers returns a copy of the column order.
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// KeyColumn returns the name of the dedup key column.
func (t *Table) KeyColumn() string {
	return t.keyCol
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the rows in order. The slice is shared with the table;
// callers must not modify it.
func (t *Table) Rows() []Row {
	return t.rows
}

// Append upserts a row by its key column value.
func (t *Table) Append(r Row) {
	key := strings.TrimSpace(r[t.keyCol])
	if key != "" {
		if i, ok := t.index[key]; ok {
			t.rows[i] = r
			return
		}
		t.index[key] = len(t.rows)
	}
	t.rows = append(t.rows, r)
}

// Get returns the row stored under key.
func (t *Table) Get(key string) (Row, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.rows[i], true
}

// Has reports whether a row is stored under key.
func (t *Table) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Merge overlays fresh onto existing: existing rows keep their positions,
// fresh rows replace same-key rows in place and otherwise append in their
// own order. The merged table uses the fresh table's column order, which
// reflects the current configuration. Merging the same fresh table twice
// yields the same result.
func Merge(existing, fresh *Table) *Table {
	out := NewTable(fresh.headers, fresh.keyCol)
	if existing != nil {
		for _, r := range existing.rows {
			out.Append(r.Clone())
		}
	}
	for _, r := range fresh.rows {
		out.Append(r.Clone())
	}
	return out
}
