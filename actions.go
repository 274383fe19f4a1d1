package gridsheet

import "github.com/olekukonko/errors"

// Action is a reversible edit. An undo stack keeps actions whose Do succeeded
// and replays Undo and Do on them. A failed Do leaves the worksheet untouched.
type Action interface {
	Do(ws *Worksheet) error
	Undo(ws *Worksheet) error
	Name() string
}

// SetCellDataAction writes Data into one cell.
type SetCellDataAction struct {
	Row, Col int
	Data     any

	backup any
}

// Name returns the label shown in an undo history.
func (a *SetCellDataAction) Name() string { return "Set Cell Data" }

// Do writes Data and keeps the previous value.
func (a *SetCellDataAction) Do(ws *Worksheet) error {
	backup := ws.CellData(a.Row, a.Col)
	if err := ws.SetCellData(a.Row, a.Col, a.Data); err != nil {
		return err
	}
	a.backup = backup
	return nil
}

// Undo restores the previous value.
func (a *SetCellDataAction) Undo(ws *Worksheet) error {
	return ws.SetCellData(a.Row, a.Col, a.backup)
}

// MergeRangeAction merges Range. Undo restores the merges it replaced and the
// borders it dropped.
type MergeRangeAction struct {
	Range RangePosition

	merges  []RangePosition
	borders borderSnapshot
}

// Name returns the label shown in an undo history.
func (a *MergeRangeAction) Name() string { return "Merge Range" }

// Do merges Range and records the regions and borders it replaces.
func (a *MergeRangeAction) Do(ws *Worksheet) error {
	merges := ws.MergedRanges(a.Range)
	borders := ws.snapshotBorders(ws.FixRangePosition(a.Range))
	if err := ws.MergeRange(a.Range); err != nil {
		return err
	}
	a.merges, a.borders = merges, borders
	return nil
}

// Undo unmerges Range, then restores the replaced regions and borders.
func (a *MergeRangeAction) Undo(ws *Worksheet) error {
	if err := ws.UnmergeRange(a.Range); err != nil {
		return err
	}
	for _, m := range a.merges {
		if err := ws.MergeRange(m); err != nil {
			return err
		}
	}
	ws.restoreBorders(a.borders)
	return nil
}

// UnmergeRangeAction unmerges every merged cell intersecting Range.
type UnmergeRangeAction struct {
	Range RangePosition

	merges []RangePosition
}

// Name returns the label shown in an undo history.
func (a *UnmergeRangeAction) Name() string { return "Unmerge Range" }

// Do unmerges Range and records the regions it split.
func (a *UnmergeRangeAction) Do(ws *Worksheet) error {
	merges := ws.MergedRanges(a.Range)
	if err := ws.UnmergeRange(a.Range); err != nil {
		return err
	}
	a.merges = merges
	return nil
}

// Undo merges the recorded regions again.
func (a *UnmergeRangeAction) Undo(ws *Worksheet) error {
	for _, m := range a.merges {
		if err := ws.MergeRange(m); err != nil {
			return err
		}
	}
	return nil
}

// SetBorderAction sets one edge slot.
type SetBorderAction struct {
	Row, Col    int
	Orientation Orientation
	Style       BorderStyle

	backup *BorderSegment
}

// Name returns the label shown in an undo history.
func (a *SetBorderAction) Name() string { return "Set Border" }

// Do sets the slot and keeps its previous segment.
func (a *SetBorderAction) Do(ws *Worksheet) error {
	var backup *BorderSegment
	if seg := ws.BorderSegment(a.Row, a.Col, a.Orientation); seg != nil {
		backup = seg.clone()
	}
	if err := ws.SetBorder(a.Row, a.Col, a.Orientation, a.Style); err != nil {
		return err
	}
	a.backup = backup
	return nil
}

// Undo puts back the previous segment and repairs its run.
func (a *SetBorderAction) Undo(ws *Worksheet) error {
	if ws.readOnly {
		return errors.Newf("undo border at %d,%d", a.Row, a.Col).Wrap(ErrReadOnly)
	}
	style, owner := NoBorder, OwnerBoth
	if a.backup != nil {
		style, owner = a.backup.Style, a.backup.Owner
	}
	ws.writeBorder(a.Row, a.Col, a.Orientation, style, owner)
	ws.RecomputeRun(a.Row, a.Col, a.Orientation)
	return nil
}

// SetRangeBordersAction applies Style to the Positions edges of Range.
type SetRangeBordersAction struct {
	Range     RangePosition
	Positions BorderPositions
	Style     BorderStyle

	borders borderSnapshot
}

// Name returns the label shown in an undo history.
func (a *SetRangeBordersAction) Name() string { return "Set Range Borders" }

// Do applies the borders and keeps a snapshot of the slots around Range.
func (a *SetRangeBordersAction) Do(ws *Worksheet) error {
	borders := ws.snapshotBorders(ws.FixRangePosition(a.Range))
	if err := ws.SetRangeBorders(a.Range, a.Positions, a.Style); err != nil {
		return err
	}
	a.borders = borders
	return nil
}

// Undo restores the snapshot.
func (a *SetRangeBordersAction) Undo(ws *Worksheet) error {
	if ws.readOnly {
		return errors.Newf("undo borders of %s", a.Range).Wrap(ErrReadOnly)
	}
	ws.restoreBorders(a.borders)
	return nil
}

// InsertRowsAction inserts Count rows before Row.
type InsertRowsAction struct {
	Row, Count int
}

// Name returns the label shown in an undo history.
func (a *InsertRowsAction) Name() string { return "Insert Rows" }

// Do inserts the rows.
func (a *InsertRowsAction) Do(ws *Worksheet) error { return ws.InsertRows(a.Row, a.Count) }

// Undo deletes the inserted rows.
func (a *InsertRowsAction) Undo(ws *Worksheet) error { return ws.DeleteRows(a.Row, a.Count) }

// SetRowsHeightAction resizes Count rows starting at Row.
type SetRowsHeightAction struct {
	Row, Count, Height int

	backup []int
}

// Name returns the label shown in an undo history.
func (a *SetRowsHeightAction) Name() string { return "Set Rows Height" }

// Do resizes the rows and keeps their previous heights.
func (a *SetRowsHeightAction) Do(ws *Worksheet) error {
	if err := ws.checkRows(a.Row, a.Count); err != nil {
		return err
	}
	backup := make([]int, a.Count)
	for i := range backup {
		backup[i] = ws.headers.rows[a.Row+i].InnerHeight
	}
	if err := ws.SetRowsHeight(a.Row, a.Count, a.Height); err != nil {
		return err
	}
	a.backup = backup
	return nil
}

// Undo restores the previous heights.
func (a *SetRowsHeightAction) Undo(ws *Worksheet) error {
	if err := ws.checkRows(a.Row, len(a.backup)); err != nil {
		return err
	}
	for i, h := range a.backup {
		ws.headers.rows[a.Row+i].InnerHeight = h
	}
	ws.headers.updateRowOffsets(a.Row)
	return nil
}

// borderSnapshot holds the edge slots around and inside a range.
type borderSnapshot struct {
	r    RangePosition
	h, v map[CellPosition]BorderSegment
}

func (ws *Worksheet) snapshotBorders(r RangePosition) borderSnapshot {
	s := borderSnapshot{r: r, h: map[CellPosition]BorderSegment{}, v: map[CellPosition]BorderSegment{}}
	if r.IsEmpty() {
		return s
	}
	for pos, seg := range ws.hBorders.all(NewRange(r.Row, r.Col, r.Rows+1, r.Cols), false) {
		s.h[pos] = *seg
	}
	for pos, seg := range ws.vBorders.all(NewRange(r.Row, r.Col, r.Rows, r.Cols+1), false) {
		s.v[pos] = *seg
	}
	return s
}

// restoreBorders puts back every slot of s and rebuilds the runs crossing it.
func (ws *Worksheet) restoreBorders(s borderSnapshot) {
	r := s.r
	if r.IsEmpty() {
		return
	}
	restore := func(store *sparseMatrix[*BorderSegment], area RangePosition, saved map[CellPosition]BorderSegment) {
		for row := area.Row; row <= area.EndRow(); row++ {
			for col := area.Col; col <= area.EndCol(); col++ {
				seg, ok := saved[CellPosition{Row: row, Col: col}]
				if !ok {
					store.delete(row, col)
					continue
				}
				store.set(row, col, &seg)
			}
		}
	}
	restore(ws.hBorders, NewRange(r.Row, r.Col, r.Rows+1, r.Cols), s.h)
	restore(ws.vBorders, NewRange(r.Row, r.Col, r.Rows, r.Cols+1), s.v)

	for row := r.Row; row <= r.EndRow()+1; row++ {
		ws.recomputeLine(Horizontal, row)
	}
	for col := r.Col; col <= r.EndCol()+1; col++ {
		ws.recomputeLine(Vertical, col)
	}
}
