package gridsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderOffsets(t *testing.T) {
	ws := NewWorksheet("headers", 5, 4)
	require.Equal(t, 5, ws.RowCount())
	require.Equal(t, 4, ws.ColumnCount())

	assert.Equal(t, 3*DefaultRowHeight, ws.RowHeader(3).Top)
	assert.Equal(t, 2*DefaultColumnWidth, ws.ColumnHeader(2).Left)

	require.NoError(t, ws.SetRowsHeight(1, 2, 50))
	assert.Equal(t, 20, ws.RowHeader(1).Top)
	assert.Equal(t, 70, ws.RowHeader(2).Top)
	assert.Equal(t, 120, ws.RowHeader(3).Top)
	assert.NoError(t, ws.Validate())

	assert.ErrorIs(t, ws.SetRowsHeight(4, 2, 10), ErrOutOfRange)
	assert.Nil(t, ws.RowHeader(5))
	assert.Nil(t, ws.ColumnHeader(-1))
}

func TestFindIndexByOffset(t *testing.T) {
	ws := NewWorksheet("find", 4, 3)
	assert.Equal(t, 0, ws.FindRowIndexByOffset(0))
	assert.Equal(t, 0, ws.FindRowIndexByOffset(19))
	assert.Equal(t, 1, ws.FindRowIndexByOffset(20))
	assert.Equal(t, 3, ws.FindRowIndexByOffset(79))
	assert.Equal(t, -1, ws.FindRowIndexByOffset(80))
	assert.Equal(t, -1, ws.FindRowIndexByOffset(-1))

	require.NoError(t, ws.HideRows(1, 1))
	assert.Equal(t, 2, ws.FindRowIndexByOffset(20))

	assert.Equal(t, 2, ws.FindColumnIndexByOffset(140))
	assert.Equal(t, -1, ws.FindColumnIndexByOffset(210))
}

func TestFindIndexNearBoundary(t *testing.T) {
	ws := NewWorksheet("near", 3, 3)

	idx, inline := ws.FindRowIndexNearBoundary(10, 2)
	assert.Equal(t, 0, idx)
	assert.True(t, inline)

	idx, inline = ws.FindRowIndexNearBoundary(19, 2)
	assert.Equal(t, 0, idx)
	assert.False(t, inline)

	idx, inline = ws.FindRowIndexNearBoundary(21, 2)
	assert.Equal(t, 0, idx)
	assert.False(t, inline)

	idx, inline = ws.FindRowIndexNearBoundary(61, 2)
	assert.Equal(t, 2, idx)
	assert.False(t, inline)

	idx, _ = ws.FindColumnIndexNearBoundary(500, 2)
	assert.Equal(t, -1, idx)

	idx, inline = ws.FindColumnIndexNearBoundary(100, 2)
	assert.Equal(t, 1, idx)
	assert.True(t, inline)
}

func TestHideAndShowHeaders(t *testing.T) {
	ws := NewWorksheet("hide", 4, 4)
	require.NoError(t, ws.SetColumnsWidth(2, 1, 120))
	require.NoError(t, ws.HideColumns(2, 1))
	assert.False(t, ws.ColumnHeader(2).IsVisible())
	assert.Equal(t, 140, ws.ColumnHeader(3).Left)

	require.NoError(t, ws.ShowColumns(0, 4))
	assert.Equal(t, 120, ws.ColumnHeader(2).InnerWidth)
	assert.Equal(t, 260, ws.ColumnHeader(3).Left)

	require.NoError(t, ws.HideRows(0, 2))
	require.NoError(t, ws.ShowRows(0, 2))
	assert.Equal(t, DefaultRowHeight, ws.RowHeader(1).InnerHeight)
	assert.NoError(t, ws.Validate())
}

func TestCellBounds(t *testing.T) {
	ws := NewWorksheet("bounds", 5, 5)
	left, top, width, height, ok := ws.CellBounds(1, 1)
	require.True(t, ok)
	assert.Equal(t, []int{70, 20, 70, 20}, []int{left, top, width, height})

	require.NoError(t, ws.MergeRange(NewRange(1, 1, 2, 3)))
	left, top, width, height, ok = ws.CellBounds(2, 3)
	require.True(t, ok)
	assert.Equal(t, []int{70, 20, 210, 40}, []int{left, top, width, height})

	_, _, _, _, ok = ws.CellBounds(5, 0)
	assert.False(t, ok)
}

func TestWorksheetOptions(t *testing.T) {
	ws := NewWorksheet("opts", 2, 2,
		WithDefaultRowHeight(30),
		WithDefaultColumnWidth(100),
		WithSelectionMode(SelectionCell),
		WithReadOnly(true),
		WithViewportSize(640, 300),
	)
	assert.Equal(t, 30, ws.RowHeader(1).Top)
	assert.Equal(t, 100, ws.ColumnHeader(1).Left)
	assert.Equal(t, SelectionCell, ws.SelectionMode())
	assert.True(t, ws.IsReadOnly())
	w, h := ws.ViewportSize()
	assert.Equal(t, 640, w)
	assert.Equal(t, 300, h)

	require.NoError(t, ws.Resize(4, 3))
	assert.Equal(t, 60, ws.RowHeader(2).Top)
}
