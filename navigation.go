package gridsheet

// Direction is a cursor movement direction.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return "unknown"
}

// ParseDirection returns the direction named s, as printed by String.
func ParseDirection(s string) (Direction, bool) {
	for d := DirectionUp; d <= DirectionRight; d++ {
		if d.String() == s {
			return d, true
		}
	}
	return DirectionDown, false
}

// Axis selects what MoveSelectionHome and MoveSelectionEnd jump along.
type Axis int

const (
	// AxisRow jumps to the first or last column of the current row.
	AxisRow Axis = iota
	// AxisColumn jumps to the first or last row of the current column.
	AxisColumn
)

// FindNextMovableCellUp returns the next focusable cell above pos inside bound.
func (ws *Worksheet) FindNextMovableCellUp(pos CellPosition, bound RangePosition, autoReturn bool) (CellPosition, bool) {
	return ws.findNextMovableCell(pos, DirectionUp, bound, autoReturn)
}

// FindNextMovableCellDown returns the next focusable cell below pos inside bound.
func (ws *Worksheet) FindNextMovableCellDown(pos CellPosition, bound RangePosition, autoReturn bool) (CellPosition, bool) {
	return ws.findNextMovableCell(pos, DirectionDown, bound, autoReturn)
}

// FindNextMovableCellLeft returns the next focusable cell left of pos inside bound.
func (ws *Worksheet) FindNextMovableCellLeft(pos CellPosition, bound RangePosition, autoReturn bool) (CellPosition, bool) {
	return ws.findNextMovableCell(pos, DirectionLeft, bound, autoReturn)
}

// FindNextMovableCellRight returns the next focusable cell right of pos inside bound.
func (ws *Worksheet) FindNextMovableCellRight(pos CellPosition, bound RangePosition, autoReturn bool) (CellPosition, bool) {
	return ws.findNextMovableCell(pos, DirectionRight, bound, autoReturn)
}

// findNextMovableCell steps from the merged region holding pos in direction
// dir, skipping hidden rows and columns, and returns the anchor of the first
// cell reached. Past the edge of bound it wraps to the start of the next lane
// when autoReturn is set; otherwise it reports false and pos is unchanged.
func (ws *Worksheet) findNextMovableCell(pos CellPosition, dir Direction, bound RangePosition, autoReturn bool) (CellPosition, bool) {
	bound = ws.FixRangePosition(bound)
	if bound.IsEmpty() || !bound.Contains(pos) {
		return pos, false
	}
	origin := ws.FindAnchor(pos.Row, pos.Col)
	region, merged := ws.MergedRangeAt(origin.Row, origin.Col)
	if !merged {
		region = NewRange(origin.Row, origin.Col, 1, 1)
	}

	// step walks along the direction, lane is the row or column being walked
	vertical := dir == DirectionUp || dir == DirectionDown
	delta := 1
	if dir == DirectionUp || dir == DirectionLeft {
		delta = -1
	}
	var (
		step, lane               int
		stepLo, stepHi           int
		laneLo, laneHi           int
		stepVisible, laneVisible func(int) bool
		at                       func(step, lane int) CellPosition
	)
	if vertical {
		lane = pos.Col
		stepLo, stepHi, laneLo, laneHi = bound.Row, bound.EndRow(), bound.Col, bound.EndCol()
		stepVisible, laneVisible = ws.headers.rowVisible, ws.headers.colVisible
		at = func(s, l int) CellPosition { return CellPosition{Row: s, Col: l} }
		step = region.Row - 1
		if delta > 0 {
			step = region.EndRow() + 1
		}
	} else {
		lane = pos.Row
		stepLo, stepHi, laneLo, laneHi = bound.Col, bound.EndCol(), bound.Row, bound.EndRow()
		stepVisible, laneVisible = ws.headers.colVisible, ws.headers.rowVisible
		at = func(s, l int) CellPosition { return CellPosition{Row: l, Col: s} }
		step = region.Col - 1
		if delta > 0 {
			step = region.EndCol() + 1
		}
	}

	limit := (stepHi-stepLo+2)*(laneHi-laneLo+1) + 1
	for range limit {
		if step < stepLo || step > stepHi {
			if !autoReturn {
				return pos, false
			}
			lane += delta
			if lane < laneLo || lane > laneHi {
				lane = laneLo
				if delta < 0 {
					lane = laneHi
				}
			}
			step = stepLo
			if delta < 0 {
				step = stepHi
			}
			continue
		}
		if stepVisible(step) && laneVisible(lane) {
			p := at(step, lane)
			if target := ws.FindAnchor(p.Row, p.Col); target != origin {
				return target, true
			}
		}
		step += delta
	}
	return pos, false
}

// MoveFocus moves the focus one cell in dir. When the selection is a single
// cell or one merged cell the selection follows; otherwise the focus moves
// inside the selection and wraps when autoReturn is set.
func (ws *Worksheet) MoveFocus(dir Direction, autoReturn bool) {
	if !ws.canNavigate() {
		return
	}
	r := ws.selection.Range
	if r.IsSingleCell() || ws.IsMergedCell(r) {
		if next, ok := ws.findNextMovableCell(ws.selection.Focus, dir, ws.Range(), autoReturn); ok {
			ws.selectCell(next)
		}
		return
	}
	if next, ok := ws.findNextMovableCell(ws.selection.Focus, dir, r, autoReturn); ok {
		ws.setFocus(next)
	}
}

// MoveFocusRight moves the focus one cell to the right.
func (ws *Worksheet) MoveFocusRight(autoReturn bool) { ws.MoveFocus(DirectionRight, autoReturn) }

// MoveFocusDown moves the focus one cell down.
func (ws *Worksheet) MoveFocusDown(autoReturn bool) { ws.MoveFocus(DirectionDown, autoReturn) }

// MoveSelectionUp moves the selection up one cell, or extends it with appendSelect.
func (ws *Worksheet) MoveSelectionUp(appendSelect bool) { ws.moveSelection(DirectionUp, appendSelect) }

// MoveSelectionDown moves the selection down one cell, or extends it with appendSelect.
func (ws *Worksheet) MoveSelectionDown(appendSelect bool) {
	ws.moveSelection(DirectionDown, appendSelect)
}

// MoveSelectionLeft moves the selection left one cell, or extends it with appendSelect.
func (ws *Worksheet) MoveSelectionLeft(appendSelect bool) {
	ws.moveSelection(DirectionLeft, appendSelect)
}

// MoveSelectionRight moves the selection right one cell, or extends it with appendSelect.
func (ws *Worksheet) MoveSelectionRight(appendSelect bool) {
	ws.moveSelection(DirectionRight, appendSelect)
}

func (ws *Worksheet) moveSelection(dir Direction, appendSelect bool) {
	if !ws.canNavigate() {
		return
	}
	if appendSelect {
		next, ok := ws.findNextMovableCell(ws.selection.End, dir, ws.Range(), false)
		if ok {
			ws.changeSelection(ws.selection.Start, next)
		}
		return
	}
	if next, ok := ws.findNextMovableCell(ws.selection.Focus, dir, ws.Range(), false); ok {
		ws.selectCell(next)
	}
}

// MoveSelectionForward moves to the next cell in reading order, as Tab does.
func (ws *Worksheet) MoveSelectionForward() { ws.moveInOrder(DirectionRight) }

// MoveSelectionBackward moves to the previous cell in reading order, as Shift+Tab does.
func (ws *Worksheet) MoveSelectionBackward() { ws.moveInOrder(DirectionLeft) }

func (ws *Worksheet) moveInOrder(dir Direction) {
	if !ws.canNavigate() {
		return
	}
	r := ws.selection.Range
	if r.IsSingleCell() || ws.IsMergedCell(r) {
		if next, ok := ws.findNextMovableCell(ws.selection.Focus, dir, ws.Range(), true); ok {
			ws.selectCell(next)
		}
		return
	}
	if next, ok := ws.findNextMovableCell(ws.selection.Focus, dir, r, true); ok {
		ws.setFocus(next)
	}
}

// MoveSelectionHome jumps to the first visible column of the row (AxisRow) or
// the first visible row of the column (AxisColumn).
func (ws *Worksheet) MoveSelectionHome(axis Axis, appendSelect bool) {
	ws.moveToEdge(axis, false, appendSelect)
}

// MoveSelectionEnd jumps to the last visible column of the row (AxisRow) or
// the last visible row of the column (AxisColumn).
func (ws *Worksheet) MoveSelectionEnd(axis Axis, appendSelect bool) {
	ws.moveToEdge(axis, true, appendSelect)
}

func (ws *Worksheet) moveToEdge(axis Axis, last, appendSelect bool) {
	if !ws.canNavigate() {
		return
	}
	from := ws.selection.Focus
	if appendSelect {
		from = ws.selection.End
	}
	target := from
	if axis == AxisRow {
		target.Col = ws.edgeVisible(ws.ColumnCount(), ws.headers.colVisible, last)
	} else {
		target.Row = ws.edgeVisible(ws.RowCount(), ws.headers.rowVisible, last)
	}
	if target.Row < 0 || target.Col < 0 {
		return
	}
	target = ws.FindAnchor(target.Row, target.Col)
	if appendSelect {
		ws.changeSelection(ws.selection.Start, target)
		return
	}
	ws.selectCell(target)
}

// MoveSelectionPageUp moves up by the height of the viewport.
func (ws *Worksheet) MoveSelectionPageUp(appendSelect bool) { ws.movePage(false, appendSelect) }

// MoveSelectionPageDown moves down by the height of the viewport.
func (ws *Worksheet) MoveSelectionPageDown(appendSelect bool) { ws.movePage(true, appendSelect) }

func (ws *Worksheet) movePage(down, appendSelect bool) {
	if !ws.canNavigate() {
		return
	}
	from := ws.selection.Focus
	if appendSelect {
		from = ws.selection.End
	}
	header := ws.RowHeader(from.Row)
	if header == nil {
		return
	}
	y := header.Top - ws.viewHeight
	if down {
		y = header.Top + ws.viewHeight
	}
	row := ws.FindRowIndexByOffset(max(y, 0))
	if row < 0 {
		row = ws.edgeVisible(ws.RowCount(), ws.headers.rowVisible, down)
	}
	if row < 0 {
		return
	}
	target := ws.FindAnchor(row, from.Col)
	if target == ws.FindAnchor(from.Row, from.Col) {
		return
	}
	if appendSelect {
		ws.changeSelection(ws.selection.Start, target)
		return
	}
	ws.selectCell(target)
}

// ViewportSize returns the visible area used by page navigation.
func (ws *Worksheet) ViewportSize() (width, height int) {
	return ws.viewWidth, ws.viewHeight
}

// selectCell selects the cell at pos and focuses it.
func (ws *Worksheet) selectCell(pos CellPosition) {
	if !ws.changeSelection(pos, pos) {
		return
	}
	if ws.selection.Range.Contains(pos) && ws.isReachable(pos) {
		ws.setFocus(pos)
	}
}

// edgeVisible returns the first (or last) visible header index, or -1.
func (ws *Worksheet) edgeVisible(count int, visible func(int) bool, last bool) int {
	if last {
		for i := count - 1; i >= 0; i-- {
			if visible(i) {
				return i
			}
		}
		return -1
	}
	for i := range count {
		if visible(i) {
			return i
		}
	}
	return -1
}
