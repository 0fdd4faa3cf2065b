package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func newTestWriter(dir string, strategy MergeStrategy, ts time.Time) *Writer {
	return &Writer{
		Dir:      dir,
		Prefix:   "pubmed_results_",
		Format:   FormatCSV,
		Strategy: strategy,
		Now:      fixedClock(ts),
	}
}

func TestPersist_FirstRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	w := newTestWriter(dir, MergeLatest, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	res, err := w.Persist(sampleTable(t))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "pubmed_results_20250601_100000.csv"), res.Path)
	assert.Equal(t, "", res.MergedFrom)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, 0, res.Carried)

	loaded, err := Load(res.Path, ColPMID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
}

func TestPersist_MergeLatest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")

	first := newTestWriter(dir, MergeLatest, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	_, err := first.Persist(sampleTable(t))
	require.NoError(t, err)

	fresh := NewTable(DefaultHeaders(), ColPMID)
	fresh.Append(Row{ColPMID: "36123456", ColTitle: "Early Mobilization in the ICU (corrected)"})
	fresh.Append(Row{ColPMID: "39000001", ColTitle: "A New Trial"})

	second := newTestWriter(dir, MergeLatest, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	res, err := second.Persist(fresh)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "pubmed_results_20250601_100000.csv"), res.MergedFrom)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Carried)

	loaded, err := Load(res.Path, ColPMID)
	require.NoError(t, err)
	require.Equal(t, 3, loaded.Len())

	row, ok := loaded.Get("36123456")
	require.True(t, ok)
	assert.Equal(t, "Early Mobilization in the ICU (corrected)", row[ColTitle])

	// Prior rows keep their positions; new rows append.
	assert.Equal(t, "39000001", loaded.Rows()[2][ColPMID])
}

func TestPersist_MergeFreshIgnoresPrior(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")

	first := newTestWriter(dir, MergeLatest, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	_, err := first.Persist(sampleTable(t))
	require.NoError(t, err)

	fresh := NewTable(DefaultHeaders(), ColPMID)
	fresh.Append(Row{ColPMID: "39000001", ColTitle: "A New Trial"})

	second := newTestWriter(dir, MergeFresh, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	res, err := second.Persist(fresh)
	require.NoError(t, err)

	assert.Equal(t, "", res.MergedFrom)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 0, res.Carried)
}

func TestPersist_EmptyRunCarriesPriorRows(t *testing.T) {
	// A run that fetched nothing (e.g. max results 0) still writes an
	// artifact containing the prior rows, unchanged.
	dir := filepath.Join(t.TempDir(), "results")

	first := newTestWriter(dir, MergeLatest, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	_, err := first.Persist(sampleTable(t))
	require.NoError(t, err)

	second := newTestWriter(dir, MergeLatest, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	res, err := second.Persist(NewTable(DefaultHeaders(), ColPMID))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 2, res.Carried)

	loaded, err := Load(res.Path, ColPMID)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, "36123456", loaded.Rows()[0][ColPMID])
}

func TestPersist_CreatesResultsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "results")
	w := newTestWriter(dir, MergeFresh, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	_, err := w.Persist(sampleTable(t))
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
