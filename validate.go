package gridsheet

import "github.com/olekukonko/errors"

// Validate re-checks the structural invariants of the worksheet: slot
// identity, merge shape, border spans, the absence of borders inside merged
// cells and header offsets. Every mutation keeps them; a failure means a bug.
func (ws *Worksheet) Validate() error {
	for pos, c := range ws.cells.allocated() {
		if err := ws.validateCell(pos, c); err != nil {
			return err
		}
	}
	for _, o := range []Orientation{Horizontal, Vertical} {
		if err := ws.validateBorders(o); err != nil {
			return err
		}
	}
	return ws.validateHeaders()
}

func (ws *Worksheet) validateCell(pos CellPosition, c *Cell) error {
	if c.Row != pos.Row || c.Col != pos.Col {
		return violation("cell stored at %s reports %s", pos, c.Position())
	}
	if !ws.inSheet(pos.Row, pos.Col) {
		return violation("cell %v outside %dx%d sheet", pos, ws.RowCount(), ws.ColumnCount())
	}
	switch {
	case c.IsMergedAnchor():
		m, _ := c.MergedRange()
		if m.Rows != c.Rowspan() || m.Cols != c.Colspan() || m.IsSingleCell() {
			return violation("anchor %s has span %dx%d for %s", pos, c.Rowspan(), c.Colspan(), m)
		}
		if !ws.Range().ContainsRange(m) {
			return violation("merged cell %s exceeds the sheet", m)
		}
		for row := m.Row; row <= m.EndRow(); row++ {
			for col := m.Col; col <= m.EndCol(); col++ {
				if row == m.Row && col == m.Col {
					continue
				}
				cc := ws.cells.get(row, col)
				if cc == nil || !cc.IsCovered() || cc.MergeStartPos() != pos || cc.MergeEndPos() != m.EndPos() {
					return violation("cell %s is not covered by merged cell %s", NewCellPosition(row, col), m)
				}
			}
		}
	case c.IsCovered():
		if c.Rowspan() != 0 || c.Colspan() != 0 {
			return violation("covered cell %s has a span", pos)
		}
		anchor := ws.cells.get(c.MergeStartPos().Row, c.MergeStartPos().Col)
		if anchor == nil || !anchor.IsMergedAnchor() {
			return violation("covered cell %s points at %s which is no anchor", pos, c.MergeStartPos())
		}
		if m, _ := anchor.MergedRange(); !m.Contains(pos) || m.EndPos() != c.MergeEndPos() {
			return violation("covered cell %s lies outside its merged cell %s", pos, m)
		}
	}
	return nil
}

func (ws *Worksheet) validateBorders(o Orientation) error {
	rows, cols := ws.borderSlots(o)
	for pos, seg := range ws.borderStore(o).allocated() {
		if pos.Row >= rows || pos.Col >= cols {
			return violation("%s border %v outside the sheet", o, pos)
		}
		if seg.Style.IsEmpty() {
			return violation("%s border %v is stored without a style", o, pos)
		}
		if ws.isInteriorEdge(pos.Row, pos.Col, o) {
			return violation("%s border %v lies inside a merged cell", o, pos)
		}
		if want := ws.runLength(pos, o); seg.Span != want {
			return violation("%s border %v has span %d, want %d", o, pos, seg.Span, want)
		}
	}
	return nil
}

// runLength counts the slots from pos onwards that share its style.
func (ws *Worksheet) runLength(pos CellPosition, o Orientation) int {
	store := ws.borderStore(o)
	style := store.get(pos.Row, pos.Col).Style
	n := 0
	for {
		seg := store.get(pos.Row, pos.Col)
		if seg == nil || seg.Style != style {
			return n
		}
		n++
		if o == Vertical {
			pos.Row++
		} else {
			pos.Col++
		}
	}
}

func (ws *Worksheet) validateHeaders() error {
	top := 0
	for i, h := range ws.headers.rows {
		if h.Index != i || h.Top != top || h.InnerHeight < 0 {
			return violation("row header %d: index %d top %d height %d", i, h.Index, h.Top, h.InnerHeight)
		}
		top = h.Bottom()
	}
	left := 0
	for i, h := range ws.headers.cols {
		if h.Index != i || h.Left != left || h.InnerWidth < 0 {
			return violation("column header %d: index %d left %d width %d", i, h.Index, h.Left, h.InnerWidth)
		}
		left = h.Right()
	}
	return nil
}

func violation(format string, args ...any) error {
	return errors.Newf(format, args...).Wrap(ErrInvariantViolation)
}
