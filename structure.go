package gridsheet

import "github.com/olekukonko/errors"

// InsertRows inserts count empty rows before row. Merged regions crossing the
// insertion point grow; borders below move down.
func (ws *Worksheet) InsertRows(row, count int) error {
	if ws.readOnly {
		return errors.Newf("insert rows at %d", row).Wrap(ErrReadOnly)
	}
	if row < 0 || row > ws.RowCount() || count <= 0 {
		return errors.Newf("insert %d rows at %d of %d", count, row, ws.RowCount()).Wrap(ErrOutOfRange)
	}

	regions := ws.detachRegions(func(m RangePosition) bool { return m.EndRow() >= row })

	ws.cells.insertRows(row, count)
	ws.hBorders.insertRows(row, count)
	ws.vBorders.insertRows(row, count)
	ws.headers.insertRows(row, count)

	ws.reattachRegions(regions, func(m RangePosition) (RangePosition, bool) {
		m.Row, m.Rows = shiftForInsert(m.Row, m.Rows, row, count)
		return m, true
	})
	ws.logger.Debugf("inserted %d rows at %d", count, row)
	return nil
}

// DeleteRows removes rows [row, row+count). Merged regions losing rows shrink
// and are dropped once they cover a single cell.
func (ws *Worksheet) DeleteRows(row, count int) error {
	if ws.readOnly {
		return errors.Newf("delete rows at %d", row).Wrap(ErrReadOnly)
	}
	if count <= 0 {
		return nil
	}
	if err := ws.checkRows(row, count); err != nil {
		return err
	}

	regions := ws.detachRegions(func(m RangePosition) bool { return m.EndRow() >= row })

	ws.cells.deleteRows(row, count)
	ws.hBorders.deleteRows(row, count)
	ws.vBorders.deleteRows(row, count)
	ws.headers.deleteRows(row, count)

	ws.reattachRegions(regions, func(m RangePosition) (RangePosition, bool) {
		var ok bool
		m.Row, m.Rows, ok = shiftForDelete(m.Row, m.Rows, row, count)
		return m, ok
	})
	ws.logger.Debugf("deleted %d rows at %d", count, row)
	return nil
}

// InsertColumns inserts count empty columns before col.
func (ws *Worksheet) InsertColumns(col, count int) error {
	if ws.readOnly {
		return errors.Newf("insert columns at %d", col).Wrap(ErrReadOnly)
	}
	if col < 0 || col > ws.ColumnCount() || count <= 0 {
		return errors.Newf("insert %d columns at %d of %d", count, col, ws.ColumnCount()).Wrap(ErrOutOfRange)
	}

	regions := ws.detachRegions(func(m RangePosition) bool { return m.EndCol() >= col })

	ws.cells.insertColumns(col, count)
	ws.hBorders.insertColumns(col, count)
	ws.vBorders.insertColumns(col, count)
	ws.headers.insertColumns(col, count)

	ws.reattachRegions(regions, func(m RangePosition) (RangePosition, bool) {
		m.Col, m.Cols = shiftForInsert(m.Col, m.Cols, col, count)
		return m, true
	})
	ws.logger.Debugf("inserted %d columns at %d", count, col)
	return nil
}

// DeleteColumns removes columns [col, col+count).
func (ws *Worksheet) DeleteColumns(col, count int) error {
	if ws.readOnly {
		return errors.Newf("delete columns at %d", col).Wrap(ErrReadOnly)
	}
	if count <= 0 {
		return nil
	}
	if err := ws.checkColumns(col, count); err != nil {
		return err
	}

	regions := ws.detachRegions(func(m RangePosition) bool { return m.EndCol() >= col })

	ws.cells.deleteColumns(col, count)
	ws.hBorders.deleteColumns(col, count)
	ws.vBorders.deleteColumns(col, count)
	ws.headers.deleteColumns(col, count)

	ws.reattachRegions(regions, func(m RangePosition) (RangePosition, bool) {
		var ok bool
		m.Col, m.Cols, ok = shiftForDelete(m.Col, m.Cols, col, count)
		return m, ok
	})
	ws.logger.Debugf("deleted %d columns at %d", count, col)
	return nil
}

// detachRegions unmerges the regions matching affected so the stores can be
// shifted without stale merge positions, and returns them.
func (ws *Worksheet) detachRegions(affected func(RangePosition) bool) []RangePosition {
	var detached []RangePosition
	for _, m := range ws.allMergedRanges() {
		if affected(m) {
			ws.unmergeRegion(m)
			detached = append(detached, m)
		}
	}
	return detached
}

// reattachRegions restores slot identity after a shift, re-merges the adjusted
// regions and rebuilds every border run.
func (ws *Worksheet) reattachRegions(regions []RangePosition, adjust func(RangePosition) (RangePosition, bool)) {
	ws.reindexCells()
	for _, m := range regions {
		if moved, ok := adjust(m); ok && !moved.IsEmpty() && !moved.IsSingleCell() {
			ws.mergeRegion(moved)
		}
	}
	ws.recomputeAllRuns()
	ws.refreshSelection()
}

// reindexCells makes every cell report the slot it is stored in.
func (ws *Worksheet) reindexCells() {
	for pos, c := range ws.cells.allocated() {
		c.Row, c.Col = pos.Row, pos.Col
	}
}

// shiftForInsert moves or grows the span [start, start+length) for count
// indexes inserted at `at`.
func shiftForInsert(start, length, at, count int) (int, int) {
	switch {
	case start >= at:
		return start + count, length
	case start+length > at:
		return start, length + count
	}
	return start, length
}

// shiftForDelete moves or shrinks the span [start, start+length) for indexes
// [at, at+count) removed. ok is false when nothing of the span survives.
func shiftForDelete(start, length, at, count int) (int, int, bool) {
	end := start + length // exclusive
	delEnd := at + count
	switch {
	case end <= at:
		return start, length, true
	case start >= delEnd:
		return start - count, length, true
	}
	overlap := min(end, delEnd) - max(start, at)
	newStart := start
	if start > at {
		newStart = at
	}
	newLength := length - overlap
	return newStart, newLength, newLength > 0
}
