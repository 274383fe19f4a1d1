package gridsheet

import (
	"slices"

	"github.com/olekukonko/errors"
)

// MergeRange turns r into one logical cell anchored at its top-left corner.
// Merged regions fully inside r, or fully holding r, are replaced. A partial
// overlap with an existing region fails with ErrMergeConflict and changes nothing.
// Merging a single cell or an empty range is a no-op.
func (ws *Worksheet) MergeRange(r RangePosition) error {
	if ws.readOnly {
		return errors.Newf("merge %s", r).Wrap(ErrReadOnly)
	}
	fixed, err := ws.checkRange(r)
	if err != nil {
		return err
	}
	if fixed.IsEmpty() || fixed.IsSingleCell() {
		return nil
	}

	existing := ws.MergedRanges(fixed)
	for _, m := range existing {
		if m == fixed {
			return nil
		}
		if !fixed.ContainsRange(m) && !m.ContainsRange(fixed) {
			ws.logger.Warnf("merge %s rejected: overlaps %s", fixed, m)
			return errors.Newf("merge %s overlaps %s", fixed, m).Wrap(ErrMergeConflict)
		}
	}

	for _, m := range existing {
		ws.unmergeRegion(m)
	}
	ws.mergeRegion(fixed)
	if ws.selection.Range.Intersects(fixed) {
		ws.refreshSelection()
	}
	ws.logger.Debugf("merged %s (replaced %d regions)", fixed, len(existing))
	return nil
}

// UnmergeRange splits every merged region intersecting r back into plain cells.
// Cell data is kept.
func (ws *Worksheet) UnmergeRange(r RangePosition) error {
	if ws.readOnly {
		return errors.Newf("unmerge %s", r).Wrap(ErrReadOnly)
	}
	fixed, err := ws.checkRange(r)
	if err != nil {
		return err
	}
	if fixed.IsEmpty() {
		return nil
	}
	regions := ws.MergedRanges(fixed)
	for _, m := range regions {
		ws.unmergeRegion(m)
	}
	if len(regions) > 0 {
		ws.logger.Debugf("unmerged %d regions in %s", len(regions), fixed)
	}
	return nil
}

// FindAnchor returns the merge anchor of a covered cell, or the position itself.
func (ws *Worksheet) FindAnchor(row, col int) CellPosition {
	if c := ws.cells.get(row, col); c != nil && c.IsCovered() {
		return c.MergeStartPos()
	}
	return CellPosition{Row: row, Col: col}
}

// MergedRangeAt returns the merged region holding row, col.
func (ws *Worksheet) MergedRangeAt(row, col int) (RangePosition, bool) {
	c := ws.Cell(row, col)
	if c == nil {
		return RangePosition{}, false
	}
	return c.MergedRange()
}

// IsMergedCell reports whether r is exactly one merged region.
func (ws *Worksheet) IsMergedCell(r RangePosition) bool {
	m, ok := ws.MergedRangeAt(r.Row, r.Col)
	return ok && m == r
}

// MergedRanges returns the merged regions intersecting r, ordered by anchor.
func (ws *Worksheet) MergedRanges(r RangePosition) []RangePosition {
	fixed := ws.FixRangePosition(r)
	seen := map[CellPosition]struct{}{}
	var regions []RangePosition
	for _, c := range ws.cells.all(fixed, false) {
		m, ok := c.MergedRange()
		if !ok {
			continue
		}
		if _, dup := seen[m.StartPos()]; dup {
			continue
		}
		seen[m.StartPos()] = struct{}{}
		regions = append(regions, m)
	}
	slices.SortFunc(regions, func(a, b RangePosition) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return regions
}

// mergeRegion tags every cell of r and drops the borders inside it. r must be
// inside the sheet and free of other merges.
func (ws *Worksheet) mergeRegion(r RangePosition) {
	start, end := r.StartPos(), r.EndPos()
	for row := r.Row; row <= r.EndRow(); row++ {
		for col := r.Col; col <= r.EndCol(); col++ {
			c := ws.createCell(row, col)
			if row == r.Row && col == r.Col {
				c.setAnchor(r.Rows, r.Cols)
				continue
			}
			c.setCovered(start, end)
		}
	}

	for row := r.Row + 1; row <= r.EndRow(); row++ {
		for col := r.Col; col <= r.EndCol(); col++ {
			ws.hBorders.delete(row, col)
		}
		ws.recomputeLine(Horizontal, row)
	}
	for col := r.Col + 1; col <= r.EndCol(); col++ {
		for row := r.Row; row <= r.EndRow(); row++ {
			ws.vBorders.delete(row, col)
		}
		ws.recomputeLine(Vertical, col)
	}
	ws.recomputeLine(Horizontal, r.Row)
	ws.recomputeLine(Horizontal, r.EndRow()+1)
	ws.recomputeLine(Vertical, r.Col)
	ws.recomputeLine(Vertical, r.EndCol()+1)
}

// unmergeRegion resets every cell of r to a plain cell. Borders suppressed by
// the merge are not restored.
func (ws *Worksheet) unmergeRegion(r RangePosition) {
	for row := r.Row; row <= r.EndRow(); row++ {
		for col := r.Col; col <= r.EndCol(); col++ {
			c := ws.cells.get(row, col)
			if c == nil {
				continue
			}
			c.setPlain()
		}
	}
}

// allMergedRanges returns every merged region of the sheet, ordered by anchor.
func (ws *Worksheet) allMergedRanges() []RangePosition {
	var regions []RangePosition
	for _, c := range ws.cells.allocated() {
		if c.IsMergedAnchor() {
			m, _ := c.MergedRange()
			regions = append(regions, m)
		}
	}
	return regions
}
