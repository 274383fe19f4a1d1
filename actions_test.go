package gridsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func borderMap(ws *Worksheet) map[Orientation]map[CellPosition]BorderSegment {
	out := map[Orientation]map[CellPosition]BorderSegment{}
	for _, o := range []Orientation{Horizontal, Vertical} {
		out[o] = map[CellPosition]BorderSegment{}
		for pos, seg := range ws.Borders(o) {
			out[o][pos] = *seg
		}
	}
	return out
}

func TestActionsUndo(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, ws *Worksheet)
		action Action
		check  func(t *testing.T, ws *Worksheet)
	}{
		{
			name:   "set cell data",
			setup:  func(t *testing.T, ws *Worksheet) { require.NoError(t, ws.SetCellData(1, 1, "old")) },
			action: &SetCellDataAction{Row: 1, Col: 1, Data: "new"},
			check: func(t *testing.T, ws *Worksheet) {
				assert.Equal(t, "new", ws.CellData(1, 1))
			},
		},
		{
			name: "merge range",
			setup: func(t *testing.T, ws *Worksheet) {
				require.NoError(t, ws.SetRangeBorders(NewRange(0, 0, 6, 6), BorderAll, thin))
				require.NoError(t, ws.MergeRange(NewRange(1, 1, 2, 2)))
			},
			action: &MergeRangeAction{Range: NewRange(0, 0, 4, 4)},
			check: func(t *testing.T, ws *Worksheet) {
				assert.Equal(t, []RangePosition{NewRange(0, 0, 4, 4)}, ws.MergedRanges(ws.Range()))
			},
		},
		{
			name:   "unmerge range",
			setup:  func(t *testing.T, ws *Worksheet) { require.NoError(t, ws.MergeRange(NewRange(2, 2, 3, 2))) },
			action: &UnmergeRangeAction{Range: NewRange(3, 3, 1, 1)},
			check: func(t *testing.T, ws *Worksheet) {
				assert.Empty(t, ws.MergedRanges(ws.Range()))
			},
		},
		{
			name: "set border",
			setup: func(t *testing.T, ws *Worksheet) {
				for col := range 4 {
					require.NoError(t, ws.SetBorder(1, col, Horizontal, thin))
				}
			},
			action: &SetBorderAction{Row: 1, Col: 2, Orientation: Horizontal, Style: BorderStyle{Line: BorderDashed}},
			check: func(t *testing.T, ws *Worksheet) {
				_, span := ws.Border(1, 0, Horizontal)
				assert.Equal(t, 2, span)
			},
		},
		{
			name:   "set border on empty slot",
			action: &SetBorderAction{Row: 0, Col: 3, Orientation: Vertical, Style: thin},
			check: func(t *testing.T, ws *Worksheet) {
				_, span := ws.Border(0, 3, Vertical)
				assert.Equal(t, 1, span)
			},
		},
		{
			name: "set range borders",
			setup: func(t *testing.T, ws *Worksheet) {
				require.NoError(t, ws.SetRangeBorders(NewRange(2, 2, 2, 2), BorderInside, BorderStyle{Line: BorderDouble}))
			},
			action: &SetRangeBordersAction{Range: NewRange(1, 1, 4, 4), Positions: BorderAll, Style: thin},
			check: func(t *testing.T, ws *Worksheet) {
				style, span := ws.Border(3, 1, Horizontal)
				assert.Equal(t, thin, style)
				assert.Equal(t, 4, span)
			},
		},
		{
			name:   "insert rows",
			setup:  func(t *testing.T, ws *Worksheet) { require.NoError(t, ws.SetCellData(5, 0, "moved")) },
			action: &InsertRowsAction{Row: 2, Count: 3},
			check: func(t *testing.T, ws *Worksheet) {
				assert.Equal(t, 11, ws.RowCount())
				assert.Equal(t, "moved", ws.CellData(8, 0))
			},
		},
		{
			name:   "set rows height",
			setup:  func(t *testing.T, ws *Worksheet) { require.NoError(t, ws.SetRowsHeight(2, 1, 33)) },
			action: &SetRowsHeightAction{Row: 1, Count: 2, Height: 50},
			check: func(t *testing.T, ws *Worksheet) {
				assert.Equal(t, 120, ws.RowHeader(3).Top)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := NewWorksheet(tt.name, 8, 8)
			if tt.setup != nil {
				tt.setup(t, ws)
			}
			before := ws.Clone()

			require.NoError(t, tt.action.Do(ws))
			assert.NotEmpty(t, tt.action.Name())
			tt.check(t, ws)
			require.NoError(t, ws.Validate())

			require.NoError(t, tt.action.Undo(ws))
			require.NoError(t, ws.Validate())
			assert.Equal(t, before.RowCount(), ws.RowCount())
			assert.Equal(t, before.MergedRanges(before.Range()), ws.MergedRanges(ws.Range()))
			assert.Equal(t, borderMap(before), borderMap(ws))
			for pos, c := range before.Cells(before.Range(), false) {
				assert.Equal(t, c.Data, ws.CellData(pos.Row, pos.Col), "cell %s", pos)
			}
			for row := range ws.RowCount() {
				assert.Equal(t, before.RowHeader(row).InnerHeight, ws.RowHeader(row).InnerHeight, "row %d", row)
			}
		})
	}
}

func TestFailedActionLeavesSheetUntouched(t *testing.T) {
	ws := NewWorksheet("fail", 6, 6)
	require.NoError(t, ws.MergeRange(NewRange(0, 0, 2, 2)))

	merge := &MergeRangeAction{Range: NewRange(1, 1, 3, 3)}
	assert.ErrorIs(t, merge.Do(ws), ErrMergeConflict)
	assert.Equal(t, []RangePosition{NewRange(0, 0, 2, 2)}, ws.MergedRanges(ws.Range()))

	height := &SetRowsHeightAction{Row: 5, Count: 2, Height: 10}
	assert.ErrorIs(t, height.Do(ws), ErrOutOfRange)

	ws.SetReadOnly(true)
	data := &SetCellDataAction{Row: 0, Col: 0, Data: "x"}
	assert.ErrorIs(t, data.Do(ws), ErrReadOnly)
	border := &SetBorderAction{Row: 0, Col: 0, Orientation: Horizontal, Style: thin}
	assert.ErrorIs(t, border.Undo(ws), ErrReadOnly)
	borders := &SetRangeBordersAction{Range: NewRange(0, 0, 2, 2), Positions: BorderAll, Style: thin}
	assert.ErrorIs(t, borders.Undo(ws), ErrReadOnly)
	assert.Empty(t, borderMap(ws)[Horizontal])
	assert.Empty(t, borderMap(ws)[Vertical])
}
