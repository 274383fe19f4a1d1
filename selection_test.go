package gridsheet

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViewport struct {
	invalidated int
	scrolled    []CellPosition
}

func (v *fakeViewport) Invalidate() { v.invalidated++ }

func (v *fakeViewport) ScrollToCell(pos CellPosition) { v.scrolled = append(v.scrolled, pos) }

func TestSelectInsideMergeSelectsWholeRegion(t *testing.T) {
	ws := NewWorksheet("select", 10, 10)
	require.NoError(t, ws.MergeRange(NewRange(2, 2, 3, 3)))
	vp := &fakeViewport{}
	ws.SetViewport(vp)

	ws.SelectRange(NewRange(3, 3, 1, 1))
	assert.Equal(t, NewRange(2, 2, 3, 3), ws.SelectionRange())
	assert.Equal(t, NewCellPosition(2, 2), ws.FocusPos())
	assert.Equal(t, NewCellPosition(3, 3), ws.Selection().Start)
	assert.Equal(t, 1, vp.invalidated)
	assert.Equal(t, []CellPosition{{2, 2}}, vp.scrolled)
}

func TestSelectionGrowsAcrossChainedMerges(t *testing.T) {
	ws := NewWorksheet("chain", 10, 10)
	require.NoError(t, ws.MergeRange(NewRange(1, 2, 2, 2)))
	require.NoError(t, ws.MergeRange(NewRange(2, 1, 2, 1)))

	// touching the first merge pulls in the second through the grown edge
	ws.ChangeSelectionRange(NewCellPosition(0, 0), NewCellPosition(1, 2))
	assert.Equal(t, NewRange(0, 0, 4, 4), ws.SelectionRange())
}

func TestSelectionModes(t *testing.T) {
	ws := NewWorksheet("modes", 10, 10, WithSelectionMode(SelectionCell))
	ws.SelectRange(NewRange(1, 1, 3, 3))
	assert.Equal(t, NewRange(1, 1, 1, 1), ws.SelectionRange())

	// the rows dragged over are kept when switching to whole rows
	ws.SetSelectionMode(SelectionRow)
	assert.Equal(t, NewRange(1, 0, 3, 10), ws.SelectionRange())
	assert.Equal(t, NewCellPosition(1, 1), ws.FocusPos())

	ws.SetSelectionMode(SelectionColumn)
	ws.SelectRange(NewRange(4, 3, 1, 1))
	assert.Equal(t, NewRange(0, 3, 10, 1), ws.SelectionRange())

	ws.SetSelectionMode(SelectionRange)
	require.NoError(t, ws.SelectRangeByAddress("B2:D4"))
	assert.Equal(t, NewRange(1, 1, 3, 3), ws.SelectionRange())
	assert.ErrorIs(t, ws.SelectRangeByAddress("??"), ErrInvalidAddress)

	ws.SelectRange(EntireRows(5, 2))
	assert.Equal(t, NewRange(5, 0, 2, 10), ws.SelectionRange())
}

func TestSelectionModeNone(t *testing.T) {
	ws := NewWorksheet("none", 5, 5)
	ws.SelectRange(NewRange(1, 1, 1, 1))
	ws.SetSelectionMode(SelectionNone)

	changed := 0
	ws.OnSelectionChanged(func(RangePosition) { changed++ })
	ws.SelectRange(NewRange(3, 3, 1, 1))
	ws.MoveFocusDown(false)
	ws.MoveSelectionRight(false)
	assert.Zero(t, changed)
	assert.Equal(t, NewRange(1, 1, 1, 1), ws.SelectionRange())
	assert.Equal(t, RangePosition{}, ws.FixRangeSelection(NewRange(0, 0, 2, 2)))

	ws.SetSelectionMode(SelectionRange)
	ws.SelectRange(NewRange(3, 3, 1, 1))
	assert.Equal(t, 1, changed)
}

func TestBeforeSelectionHooks(t *testing.T) {
	ws := NewWorksheet("hooks", 10, 10)
	ws.OnBeforeSelectionChange(func(ev *BeforeSelectionChangeEvent) {
		if ev.End.Row > 5 {
			ev.Cancel = true
		}
	})
	ws.SelectRange(NewRange(2, 2, 1, 1))
	assert.Equal(t, NewRange(2, 2, 1, 1), ws.SelectionRange())

	ws.SelectRange(NewRange(7, 7, 1, 1))
	assert.Equal(t, NewRange(2, 2, 1, 1), ws.SelectionRange())
	assert.Equal(t, NewCellPosition(2, 2), ws.FocusPos())
}

func TestBeforeSelectionHookRewriteIsFixed(t *testing.T) {
	ws := NewWorksheet("rewrite", 10, 10)
	require.NoError(t, ws.MergeRange(NewRange(2, 2, 3, 3)))
	ws.OnBeforeSelectionChange(func(ev *BeforeSelectionChangeEvent) {
		ev.Start = NewCellPosition(3, 3)
		ev.End = NewCellPosition(30, 3)
	})
	ws.SelectRange(NewRange(0, 0, 1, 1))
	assert.Equal(t, NewRange(2, 2, 8, 3), ws.SelectionRange())
	assert.Equal(t, NewCellPosition(9, 3), ws.Selection().End)
}

func TestRangeSelectNotifications(t *testing.T) {
	ws := NewWorksheet("drag", 10, 10)
	var changing, changed []RangePosition
	ws.OnSelectionChanging(func(r RangePosition) { changing = append(changing, r) })
	ws.OnSelectionChanged(func(r RangePosition) { changed = append(changed, r) })

	ws.BeginRangeSelect()
	assert.Equal(t, StatusRangeSelect, ws.Selection().Status)
	ws.ChangeSelectionRange(NewCellPosition(1, 1), NewCellPosition(2, 2))
	ws.ChangeSelectionRange(NewCellPosition(1, 1), NewCellPosition(3, 3))
	assert.Len(t, changing, 2)
	assert.Empty(t, changed)

	ws.EndRangeSelect()
	assert.Equal(t, StatusDefault, ws.Selection().Status)
	assert.Equal(t, []RangePosition{NewRange(1, 1, 3, 3)}, changed)

	// ending twice does nothing
	ws.EndRangeSelect()
	assert.Len(t, changed, 1)

	// selecting the same range again does not notify
	ws.ChangeSelectionRange(NewCellPosition(1, 1), NewCellPosition(3, 3))
	assert.Len(t, changed, 1)
}

func TestFocusHook(t *testing.T) {
	ws := NewWorksheet("focus", 10, 10)
	var moves []CellPosition
	ws.OnFocusChanged(func(p CellPosition) { moves = append(moves, p) })

	ws.SelectRange(NewRange(4, 4, 1, 1))
	ws.SelectRange(NewRange(4, 4, 3, 3))
	ws.MoveFocusRight(false)
	assert.Equal(t, []CellPosition{{4, 4}, {4, 5}}, moves)
	assert.Equal(t, NewRange(4, 4, 3, 3), ws.SelectionRange())
}

func TestSelectionRefitsAfterStructureChange(t *testing.T) {
	ws := NewWorksheet("refit", 10, 10)
	ws.SelectRange(NewRange(7, 7, 3, 3))
	require.NoError(t, ws.DeleteRows(5, 5))
	assert.Equal(t, NewRange(4, 7, 1, 3), ws.SelectionRange())
	assert.True(t, ws.SelectionRange().Contains(ws.FocusPos()))
}

func TestSelectionRefitNotifies(t *testing.T) {
	ws := NewWorksheet("refit hooks", 10, 10)
	ws.SelectRange(NewRange(2, 2, 1, 1))
	var changed []RangePosition
	ws.OnSelectionChanged(func(r RangePosition) { changed = append(changed, r) })

	require.NoError(t, ws.MergeRange(NewRange(1, 1, 3, 3)))
	assert.Equal(t, []RangePosition{NewRange(1, 1, 3, 3)}, changed)

	// a merge away from the selection leaves it alone
	require.NoError(t, ws.MergeRange(NewRange(6, 6, 2, 2)))
	assert.Len(t, changed, 1)

	require.NoError(t, ws.Resize(2, 2))
	assert.Equal(t, NewRange(1, 1, 1, 1), ws.SelectionRange())
	assert.Equal(t, ws.SelectionRange(), changed[len(changed)-1])
}

func TestRandomSelectionsNeverSplitMerges(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	ws := NewWorksheet("p6", 20, 20)
	for range 40 {
		r := NewRange(rng.IntN(20), rng.IntN(20), 1+rng.IntN(4), 1+rng.IntN(4))
		if err := ws.MergeRange(r); err != nil {
			require.ErrorIs(t, err, ErrMergeConflict)
		}
	}
	require.NoError(t, ws.Validate())
	merged := ws.MergedRanges(ws.Range())
	require.NotEmpty(t, merged)

	for range 300 {
		a := NewCellPosition(rng.IntN(20), rng.IntN(20))
		b := NewCellPosition(rng.IntN(20), rng.IntN(20))
		ws.ChangeSelectionRange(a, b)

		sel := ws.SelectionRange()
		require.True(t, sel.ContainsRange(RangeFromPositions(a, b)), "selection %s from %s:%s", sel, a, b)
		for _, m := range merged {
			assert.True(t, !sel.Intersects(m) || sel.ContainsRange(m), "selection %s splits %s", sel, m)
		}
		assert.True(t, ws.isReachable(ws.FocusPos()), "focus %s", ws.FocusPos())
		assert.True(t, sel.Contains(ws.FocusPos()))
	}
}
