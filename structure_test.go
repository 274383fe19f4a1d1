package gridsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertRowsGrowsMerge(t *testing.T) {
	ws := NewWorksheet("insert", 10, 10)
	require.NoError(t, ws.MergeRange(NewRange(2, 2, 3, 3)))
	require.NoError(t, ws.SetCellData(2, 2, "anchor"))
	require.NoError(t, ws.SetCellData(4, 0, "below"))
	require.NoError(t, ws.SetRowsHeight(4, 1, 44))

	require.NoError(t, ws.InsertRows(3, 2))
	assert.Equal(t, 12, ws.RowCount())

	m, ok := ws.MergedRangeAt(6, 4)
	require.True(t, ok)
	assert.Equal(t, NewRange(2, 2, 5, 3), m)
	assert.Equal(t, "anchor", ws.CellData(2, 2))
	assert.Equal(t, "below", ws.CellData(6, 0))
	assert.Nil(t, ws.Cell(4, 0))
	assert.Equal(t, 44, ws.RowHeader(6).InnerHeight)
	assert.Equal(t, DefaultRowHeight, ws.RowHeader(3).InnerHeight)
	assert.NoError(t, ws.Validate())

	// above the merge it only moves
	require.NoError(t, ws.InsertRows(0, 1))
	m, ok = ws.MergedRangeAt(3, 2)
	require.True(t, ok)
	assert.Equal(t, NewRange(3, 2, 5, 3), m)

	// at the very end
	require.NoError(t, ws.InsertRows(ws.RowCount(), 2))
	assert.Equal(t, 15, ws.RowCount())
	assert.NoError(t, ws.Validate())
}

func TestDeleteRowsShrinksMerge(t *testing.T) {
	ws := NewWorksheet("delete", 10, 10)
	require.NoError(t, ws.MergeRange(NewRange(2, 2, 3, 3)))

	require.NoError(t, ws.DeleteRows(3, 1))
	m, ok := ws.MergedRangeAt(2, 2)
	require.True(t, ok)
	assert.Equal(t, NewRange(2, 2, 2, 3), m)
	assert.NoError(t, ws.Validate())

	require.NoError(t, ws.DeleteRows(0, 3))
	m, ok = ws.MergedRangeAt(0, 2)
	require.True(t, ok)
	assert.Equal(t, NewRange(0, 2, 1, 3), m)

	require.NoError(t, ws.DeleteRows(0, 1))
	assert.Empty(t, ws.MergedRanges(ws.Range()))
	assert.Equal(t, 5, ws.RowCount())
	assert.NoError(t, ws.Validate())
}

func TestDeleteColumnsShrinksMerge(t *testing.T) {
	ws := NewWorksheet("columns", 6, 6)
	require.NoError(t, ws.MergeRange(NewRange(1, 1, 2, 3)))

	require.NoError(t, ws.DeleteColumns(0, 2))
	m, ok := ws.MergedRangeAt(2, 1)
	require.True(t, ok)
	assert.Equal(t, NewRange(1, 0, 2, 2), m)
	assert.NoError(t, ws.Validate())

	require.NoError(t, ws.DeleteColumns(1, 1))
	m, ok = ws.MergedRangeAt(2, 0)
	require.True(t, ok)
	assert.Equal(t, NewRange(1, 0, 2, 1), m)

	// a region reduced to one cell stops being merged
	require.NoError(t, ws.DeleteRows(2, 1))
	assert.Empty(t, ws.MergedRanges(ws.Range()))
	c := ws.Cell(1, 0)
	require.NotNil(t, c)
	assert.Equal(t, 1, c.Rowspan())
	assert.NoError(t, ws.Validate())
}

func TestInsertColumnsSplitsBorderRuns(t *testing.T) {
	ws := NewWorksheet("runs", 4, 6)
	for col := range 4 {
		require.NoError(t, ws.SetBorder(1, col, Horizontal, thin))
	}
	require.NoError(t, ws.SetBorder(2, 1, Vertical, thin))

	require.NoError(t, ws.InsertColumns(2, 1))
	assert.Equal(t, 7, ws.ColumnCount())

	_, span := ws.Border(1, 0, Horizontal)
	assert.Equal(t, 2, span)
	style, span := ws.Border(1, 2, Horizontal)
	assert.True(t, style.IsEmpty())
	assert.Zero(t, span)
	_, span = ws.Border(1, 3, Horizontal)
	assert.Equal(t, 2, span)

	_, span = ws.Border(2, 1, Vertical)
	assert.Equal(t, 1, span)
	assert.NoError(t, ws.Validate())

	require.NoError(t, ws.DeleteColumns(2, 1))
	_, span = ws.Border(1, 0, Horizontal)
	assert.Equal(t, 4, span)
	assert.NoError(t, ws.Validate())
}

func TestInsertRowsMovesVerticalBorders(t *testing.T) {
	ws := NewWorksheet("vertical", 6, 4)
	for row := range 3 {
		require.NoError(t, ws.SetBorder(row, 2, Vertical, thin))
	}
	require.NoError(t, ws.InsertRows(0, 2))

	style, _ := ws.Border(0, 2, Vertical)
	assert.True(t, style.IsEmpty())
	_, span := ws.Border(2, 2, Vertical)
	assert.Equal(t, 3, span)
	assert.NoError(t, ws.Validate())
}

func TestStructureErrors(t *testing.T) {
	ws := NewWorksheet("errors", 5, 5)
	assert.ErrorIs(t, ws.InsertRows(-1, 1), ErrOutOfRange)
	assert.ErrorIs(t, ws.InsertRows(6, 1), ErrOutOfRange)
	assert.ErrorIs(t, ws.InsertColumns(0, 0), ErrOutOfRange)
	assert.ErrorIs(t, ws.DeleteRows(4, 2), ErrOutOfRange)
	assert.ErrorIs(t, ws.DeleteColumns(-1, 1), ErrOutOfRange)
	assert.NoError(t, ws.DeleteRows(0, 0))
	assert.Equal(t, 5, ws.RowCount())

	ws.SetReadOnly(true)
	assert.ErrorIs(t, ws.DeleteColumns(0, 1), ErrReadOnly)
	assert.Equal(t, 5, ws.ColumnCount())
}

func TestShiftSpans(t *testing.T) {
	start, length := shiftForInsert(2, 3, 3, 2)
	assert.Equal(t, []int{2, 5}, []int{start, length})
	start, length = shiftForInsert(2, 3, 2, 2)
	assert.Equal(t, []int{4, 3}, []int{start, length})
	start, length = shiftForInsert(2, 3, 5, 2)
	assert.Equal(t, []int{2, 3}, []int{start, length})

	tests := []struct {
		start, length, at, count int
		wantStart, wantLength    int
		wantOK                   bool
	}{
		{2, 3, 6, 1, 2, 3, true},
		{2, 3, 0, 1, 1, 3, true},
		{2, 3, 3, 1, 2, 2, true},
		{2, 3, 1, 2, 1, 2, true},
		{2, 3, 4, 5, 2, 2, true},
		{2, 3, 0, 10, 0, 0, false},
	}
	for _, tt := range tests {
		s, l, ok := shiftForDelete(tt.start, tt.length, tt.at, tt.count)
		assert.Equal(t, tt.wantOK, ok, "%+v", tt)
		if ok {
			assert.Equal(t, tt.wantStart, s, "%+v", tt)
			assert.Equal(t, tt.wantLength, l, "%+v", tt)
		}
	}
}
