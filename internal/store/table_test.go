package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeaders() []string {
	return []string{ColPMID, ColTitle, ColYear}
}

func TestTable_AppendUpserts(t *testing.T) {
	tab := NewTable(testHeaders(), ColPMID)
	tab.Append(Row{ColPMID: "1", ColTitle: "first"})
	tab.Append(Row{ColPMID: "2", ColTitle: "second"})
	tab.Append(Row{ColPMID: "1", ColTitle: "first, revised"})

	require.Equal(t, 2, tab.Len())

	got, ok := tab.Get("1")
	require.True(t, ok)
	assert.Equal(t, "first, revised", got[ColTitle])

	// The replaced row keeps its original position.
	assert.Equal(t, "1", tab.Rows()[0][ColPMID])
	assert.Equal(t, "2", tab.Rows()[1][ColPMID])
}

func TestTable_UnkeyedRowsKeptButNeverDeduplicated(t *testing.T) {
	tab := NewTable(testHeaders(), ColPMID)
	tab.Append(Row{ColTitle: "legacy row"})
	tab.Append(Row{ColTitle: "another legacy row"})

	assert.Equal(t, 2, tab.Len())
	assert.False(t, tab.Has(""))
}

func TestMerge_FreshWins(t *testing.T) {
	existing := NewTable(testHeaders(), ColPMID)
	existing.Append(Row{ColPMID: "1", ColTitle: "stale", ColYear: "2020"})
	existing.Append(Row{ColPMID: "2", ColTitle: "kept"})

	fresh := NewTable(testHeaders(), ColPMID)
	fresh.Append(Row{ColPMID: "1", ColTitle: "updated", ColYear: "2021"})
	fresh.Append(Row{ColPMID: "3", ColTitle: "new"})

	merged := Merge(existing, fresh)
	require.Equal(t, 3, merged.Len())

	rows := merged.Rows()
	assert.Equal(t, "1", rows[0][ColPMID])
	assert.Equal(t, "updated", rows[0][ColTitle])
	assert.Equal(t, "2021", rows[0][ColYear])
	assert.Equal(t, "2", rows[1][ColPMID])
	assert.Equal(t, "3", rows[2][ColPMID])
}

func TestMerge_Idempotent(t *testing.T) {
	existing := NewTable(testHeaders(), ColPMID)
	existing.Append(Row{ColPMID: "1", ColTitle: "a"})

	fresh := NewTable(testHeaders(), ColPMID)
	fresh.Append(Row{ColPMID: "1", ColTitle: "b"})
	fresh.Append(Row{ColPMID: "2", ColTitle: "c"})

	once := Merge(existing, fresh)
	twice := Merge(once, fresh)

	require.Equal(t, once.Len(), twice.Len())
	for i, row := range once.Rows() {
		assert.Equal(t, row, twice.Rows()[i])
	}
}

func TestMerge_NilExisting(t *testing.T) {
	fresh := NewTable(testHeaders(), ColPMID)
	fresh.Append(Row{ColPMID: "1"})

	merged := Merge(nil, fresh)
	assert.Equal(t, 1, merged.Len())
}

func TestMerge_CopiesRows(t *testing.T) {
	fresh := NewTable(testHeaders(), ColPMID)
	fresh.Append(Row{ColPMID: "1", ColTitle: "original"})

	merged := Merge(nil, fresh)
	merged.Rows()[0][ColTitle] = "mutated"

	assert.Equal(t, "original", fresh.Rows()[0][ColTitle])
}
