package gridsheet

// SelectionMode restricts the shape of the selection.
type SelectionMode int

const (
	// SelectionNone disables selection and navigation.
	SelectionNone SelectionMode = iota
	// SelectionCell always selects a single cell.
	SelectionCell
	// SelectionRange selects any rectangle.
	SelectionRange
	// SelectionRow selects whole rows.
	SelectionRow
	// SelectionColumn selects whole columns.
	SelectionColumn
)

var selectionModeNames = [...]string{"none", "cell", "range", "row", "column"}

func (m SelectionMode) String() string {
	if m < 0 || int(m) >= len(selectionModeNames) {
		return "unknown"
	}
	return selectionModeNames[m]
}

// ParseSelectionMode returns the mode named s, as printed by String.
func ParseSelectionMode(s string) (SelectionMode, bool) {
	for i, name := range selectionModeNames {
		if name == s {
			return SelectionMode(i), true
		}
	}
	return SelectionRange, false
}

// OperationStatus tells whether a selection is being dragged.
type OperationStatus int

const (
	StatusDefault OperationStatus = iota
	StatusRangeSelect
)

// SelectionState is the cursor state of a worksheet.
type SelectionState struct {
	Mode   SelectionMode
	Status OperationStatus
	Start  CellPosition // corner the selection was started from
	End    CellPosition // corner the selection was extended to
	Focus  CellPosition // cell receiving input, always a valid cell
	Range  RangePosition
}

// BeforeSelectionChangeEvent is passed to hooks before a selection is
// committed. Hooks may set Cancel or move Start and End; a moved selection is
// fixed up again before it is applied.
type BeforeSelectionChangeEvent struct {
	Start  CellPosition
	End    CellPosition
	Cancel bool
}

// Viewport is the presentation collaborator notified about selection changes.
type Viewport interface {
	Invalidate()
	ScrollToCell(pos CellPosition)
}

type selectionHooks struct {
	before   []func(*BeforeSelectionChangeEvent)
	changing []func(RangePosition)
	changed  []func(RangePosition)
	focus    []func(CellPosition)
}

// OnBeforeSelectionChange registers a hook run before every selection change.
func (ws *Worksheet) OnBeforeSelectionChange(fn func(*BeforeSelectionChangeEvent)) {
	ws.hooks.before = append(ws.hooks.before, fn)
}

// OnSelectionChanging registers a hook run for selection changes made while dragging.
func (ws *Worksheet) OnSelectionChanging(fn func(RangePosition)) {
	ws.hooks.changing = append(ws.hooks.changing, fn)
}

// OnSelectionChanged registers a hook run when a selection change is committed.
func (ws *Worksheet) OnSelectionChanged(fn func(RangePosition)) {
	ws.hooks.changed = append(ws.hooks.changed, fn)
}

// OnFocusChanged registers a hook run when the focus cell moves.
func (ws *Worksheet) OnFocusChanged(fn func(CellPosition)) {
	ws.hooks.focus = append(ws.hooks.focus, fn)
}

// Selection returns a copy of the selection state.
func (ws *Worksheet) Selection() SelectionState { return ws.selection }

// SelectionRange returns the committed selection.
func (ws *Worksheet) SelectionRange() RangePosition { return ws.selection.Range }

// FocusPos returns the focused cell.
func (ws *Worksheet) FocusPos() CellPosition { return ws.selection.Focus }

// SelectionMode returns the current selection mode.
func (ws *Worksheet) SelectionMode() SelectionMode { return ws.selection.Mode }

// SetSelectionMode changes the selection mode and refits the current selection.
func (ws *Worksheet) SetSelectionMode(mode SelectionMode) {
	if ws.selection.Mode == mode {
		return
	}
	ws.selection.Mode = mode
	if mode == SelectionNone {
		return
	}
	ws.refreshSelection()
}

// BeginRangeSelect marks the start of a drag; changes report through OnSelectionChanging.
func (ws *Worksheet) BeginRangeSelect() {
	ws.selection.Status = StatusRangeSelect
}

// EndRangeSelect ends a drag and commits the current selection.
func (ws *Worksheet) EndRangeSelect() {
	if ws.selection.Status != StatusRangeSelect {
		return
	}
	ws.selection.Status = StatusDefault
	ws.notifySelection()
}

// SelectRange selects r. Entire rows or columns are resolved against the sheet.
func (ws *Worksheet) SelectRange(r RangePosition) {
	fixed := ws.FixRangePosition(r)
	if fixed.IsEmpty() {
		return
	}
	ws.ChangeSelectionRange(fixed.StartPos(), fixed.EndPos())
}

// SelectRangeByAddress selects the range named by an address such as "B2:D4".
func (ws *Worksheet) SelectRangeByAddress(addr string) error {
	r, err := ParseRangePosition(addr)
	if err != nil {
		return err
	}
	ws.SelectRange(r)
	return nil
}

// FixRangeSelection clamps r to the sheet, applies the selection mode and grows
// the result until no merged region is partially included.
func (ws *Worksheet) FixRangeSelection(r RangePosition) RangePosition {
	fixed := ws.FixRangePosition(r)
	if fixed.IsEmpty() {
		return fixed
	}
	switch ws.selection.Mode {
	case SelectionNone:
		return RangePosition{}
	case SelectionCell:
		fixed = NewRange(fixed.Row, fixed.Col, 1, 1)
	case SelectionRow:
		fixed.Col, fixed.Cols = 0, ws.ColumnCount()
	case SelectionColumn:
		fixed.Row, fixed.Rows = 0, ws.RowCount()
	}
	return ws.checkMergedRange(fixed)
}

// checkMergedRange grows r until it holds every merged region it touches. A
// region crossing r always has a cell on one of r's four edges, so only the
// edges are scanned.
func (ws *Worksheet) checkMergedRange(r RangePosition) RangePosition {
	for {
		grown := r
		visit := func(row, col int) {
			if m, ok := ws.MergedRangeAt(row, col); ok && !grown.ContainsRange(m) {
				grown = grown.Union(m)
			}
		}
		for col := r.Col; col <= r.EndCol(); col++ {
			visit(r.Row, col)
			visit(r.EndRow(), col)
		}
		for row := r.Row + 1; row < r.EndRow(); row++ {
			visit(row, r.Col)
			visit(row, r.EndCol())
		}
		if grown == r {
			return r
		}
		r = grown
	}
}

// ChangeSelectionRange selects the rectangle spanned by start and end after
// running the before-change hooks and fixing the range up.
func (ws *Worksheet) ChangeSelectionRange(start, end CellPosition) {
	ws.changeSelection(start, end)
}

// changeSelection reports false when the change was vetoed or had nothing to select.
func (ws *Worksheet) changeSelection(start, end CellPosition) bool {
	if !ws.canNavigate() {
		return false
	}
	if len(ws.hooks.before) > 0 {
		ev := &BeforeSelectionChangeEvent{Start: start, End: end}
		for _, fn := range ws.hooks.before {
			fn(ev)
			if ev.Cancel {
				ws.logger.Debugf("selection change to %s:%s cancelled", start, end)
				return false
			}
		}
		start, end = ev.Start, ev.End
	}

	r := ws.FixRangeSelection(ws.FixRange(start, end))
	if r.IsEmpty() {
		return false
	}
	start = ws.clampPosition(start)
	end = ws.clampPosition(end)
	if r == ws.selection.Range && start == ws.selection.Start && end == ws.selection.End {
		return true
	}

	ws.selection.Start = start
	ws.selection.End = end
	ws.selection.Range = r

	if !r.Contains(ws.selection.Focus) || !ws.isReachable(ws.selection.Focus) {
		ws.setFocus(ws.firstReachableCell(r))
	}
	ws.notifySelection()
	if ws.viewport != nil {
		ws.viewport.Invalidate()
		ws.viewport.ScrollToCell(ws.FindAnchor(end.Row, end.Col))
	}
	return true
}

func (ws *Worksheet) notifySelection() {
	hooks := ws.hooks.changed
	if ws.selection.Status == StatusRangeSelect {
		hooks = ws.hooks.changing
	}
	for _, fn := range hooks {
		fn(ws.selection.Range)
	}
}

func (ws *Worksheet) setFocus(pos CellPosition) {
	if pos == ws.selection.Focus {
		return
	}
	ws.selection.Focus = pos
	for _, fn := range ws.hooks.focus {
		fn(pos)
	}
}

// firstReachableCell scans r row-major for the first visible cell that is not
// covered by a merge. It falls back to the anchor of r's first cell.
func (ws *Worksheet) firstReachableCell(r RangePosition) CellPosition {
	for row := r.Row; row <= r.EndRow(); row++ {
		if !ws.headers.rowVisible(row) {
			continue
		}
		for col := r.Col; col <= r.EndCol(); col++ {
			if !ws.headers.colVisible(col) {
				continue
			}
			if c := ws.cells.get(row, col); c == nil || c.IsValidCell() {
				return CellPosition{Row: row, Col: col}
			}
		}
	}
	return ws.FindAnchor(r.Row, r.Col)
}

// isReachable reports whether pos is inside the sheet and not a covered cell.
func (ws *Worksheet) isReachable(pos CellPosition) bool {
	if !ws.inSheet(pos.Row, pos.Col) {
		return false
	}
	c := ws.cells.get(pos.Row, pos.Col)
	return c == nil || c.IsValidCell()
}

func (ws *Worksheet) clampPosition(p CellPosition) CellPosition {
	return CellPosition{
		Row: clamp(p.Row, 0, ws.RowCount()-1),
		Col: clamp(p.Col, 0, ws.ColumnCount()-1),
	}
}

func (ws *Worksheet) canNavigate() bool {
	return ws.selection.Mode != SelectionNone && ws.RowCount() > 0 && ws.ColumnCount() > 0
}

// resetSelection puts the selection on the first cell, or clears it on an empty sheet.
func (ws *Worksheet) resetSelection() {
	ws.selection.Status = StatusDefault
	ws.selection.Start, ws.selection.End, ws.selection.Focus = EmptyPosition, EmptyPosition, EmptyPosition
	ws.selection.Range = RangePosition{}
	if ws.RowCount() == 0 || ws.ColumnCount() == 0 {
		return
	}
	origin := CellPosition{}
	ws.selection.Start, ws.selection.End = origin, origin
	ws.selection.Range = ws.checkMergedRange(NewRange(0, 0, 1, 1))
	ws.selection.Focus = ws.FindAnchor(0, 0)
}

// refreshSelection re-fits the selection after a structural change and reports
// a changed range to the selection hooks. Positions are clamped to the new extents.
func (ws *Worksheet) refreshSelection() {
	prev := ws.selection.Range
	ws.refitSelection()
	if ws.selection.Range != prev && ws.selection.Mode != SelectionNone {
		ws.notifySelection()
	}
}

func (ws *Worksheet) refitSelection() {
	if ws.RowCount() == 0 || ws.ColumnCount() == 0 {
		ws.resetSelection()
		return
	}
	if ws.selection.Start.IsEmpty() {
		ws.resetSelection()
		return
	}
	start := ws.clampPosition(ws.selection.Start)
	end := ws.clampPosition(ws.selection.End)
	mode := ws.selection.Mode
	if mode == SelectionNone {
		ws.selection.Mode = SelectionRange
	}
	r := ws.FixRangeSelection(ws.FixRange(start, end))
	ws.selection.Mode = mode
	ws.selection.Start, ws.selection.End, ws.selection.Range = start, end, r
	if !r.Contains(ws.selection.Focus) || !ws.isReachable(ws.selection.Focus) {
		ws.selection.Focus = ws.firstReachableCell(r)
	}
}
