package gridsheet

import (
	"iter"

	"github.com/olekukonko/errors"
)

// BorderLineStyle is the line pattern of a border. Values match the xlsx border style indexes.
type BorderLineStyle int

const (
	BorderNone BorderLineStyle = iota
	BorderThin
	BorderMedium
	BorderDashed
	BorderDotted
	BorderThick
	BorderDouble
	BorderHair
	BorderMediumDashed
	BorderDashDot
	BorderMediumDashDot
	BorderDashDotDot
	BorderMediumDashDotDot
	BorderSlantDashDot
)

var borderLineNames = [...]string{
	"none", "thin", "medium", "dashed", "dotted", "thick", "double", "hair",
	"medium-dashed", "dash-dot", "medium-dash-dot", "dash-dot-dot",
	"medium-dash-dot-dot", "slant-dash-dot",
}

func (s BorderLineStyle) String() string {
	if s < 0 || int(s) >= len(borderLineNames) {
		return "unknown"
	}
	return borderLineNames[s]
}

// ParseBorderLineStyle returns the style named s, as printed by String.
func ParseBorderLineStyle(s string) (BorderLineStyle, bool) {
	for i, name := range borderLineNames {
		if name == s {
			return BorderLineStyle(i), true
		}
	}
	return BorderNone, false
}

// BorderStyle describes one border edge. Two edges belong to the same run when
// their styles are equal.
type BorderStyle struct {
	Line  BorderLineStyle
	Color string // RGB hex, "" for automatic
}

// NoBorder is the absent border.
var NoBorder = BorderStyle{}

// IsEmpty reports whether the style draws nothing.
func (s BorderStyle) IsEmpty() bool { return s.Line == BorderNone }

// Orientation selects the horizontal or the vertical border store.
type Orientation int

const (
	// Horizontal edges run along a row; slot (r, c) is the edge above row r at column c.
	Horizontal Orientation = iota
	// Vertical edges run along a column; slot (r, c) is the edge left of column c at row r.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// BorderOwner records which neighbouring cell a border was applied from.
type BorderOwner uint8

const (
	// OwnerBefore is the cell above (horizontal) or left of (vertical) the edge.
	OwnerBefore BorderOwner = 1 << iota
	// OwnerAfter is the cell below (horizontal) or right of (vertical) the edge.
	OwnerAfter

	OwnerBoth = OwnerBefore | OwnerAfter
)

// BorderSegment is the stored state of one edge slot. Span counts the slots,
// starting here and going right (horizontal) or down (vertical), that share Style.
type BorderSegment struct {
	Style BorderStyle
	Span  int
	Owner BorderOwner
}

func (b *BorderSegment) clone() *BorderSegment {
	cp := *b
	return &cp
}

// BorderPositions selects edges of a range for SetRangeBorders.
type BorderPositions uint8

const (
	BorderTop BorderPositions = 1 << iota
	BorderBottom
	BorderLeft
	BorderRight
	BorderInsideHorizontal
	BorderInsideVertical

	BorderOutline = BorderTop | BorderBottom | BorderLeft | BorderRight
	BorderInside  = BorderInsideHorizontal | BorderInsideVertical
	BorderAll     = BorderOutline | BorderInside
)

func (ws *Worksheet) borderStore(o Orientation) *sparseMatrix[*BorderSegment] {
	if o == Vertical {
		return ws.vBorders
	}
	return ws.hBorders
}

// borderSlots returns the slot extents of a store.
func (ws *Worksheet) borderSlots(o Orientation) (rows, cols int) {
	if o == Vertical {
		return ws.RowCount(), ws.ColumnCount() + 1
	}
	return ws.RowCount() + 1, ws.ColumnCount()
}

func (ws *Worksheet) inBorderSlots(row, col int, o Orientation) bool {
	rows, cols := ws.borderSlots(o)
	return row >= 0 && col >= 0 && row < rows && col < cols
}

// Border returns the style and span stored at an edge slot.
func (ws *Worksheet) Border(row, col int, o Orientation) (BorderStyle, int) {
	if !ws.inBorderSlots(row, col, o) {
		return NoBorder, 0
	}
	seg := ws.borderStore(o).get(row, col)
	if seg == nil {
		return NoBorder, 0
	}
	return seg.Style, seg.Span
}

// BorderSegment returns the stored segment at an edge slot, or nil.
func (ws *Worksheet) BorderSegment(row, col int, o Orientation) *BorderSegment {
	if !ws.inBorderSlots(row, col, o) {
		return nil
	}
	return ws.borderStore(o).get(row, col)
}

// Borders iterates the non-empty slots of a store in row-major order.
func (ws *Worksheet) Borders(o Orientation) iter.Seq2[CellPosition, *BorderSegment] {
	return ws.borderStore(o).allocated()
}

// SetBorder writes one edge slot and repairs the spans of its run. Writes onto
// an edge inside a merged cell are ignored.
func (ws *Worksheet) SetBorder(row, col int, o Orientation, style BorderStyle) error {
	if !ws.inBorderSlots(row, col, o) {
		return errors.Newf("%s border at %s", o, NewCellPosition(row, col)).Wrap(ErrOutOfRange)
	}
	if ws.readOnly {
		return errors.Newf("%s border at %s", o, NewCellPosition(row, col)).Wrap(ErrReadOnly)
	}
	if !ws.writeBorder(row, col, o, style, OwnerBoth) {
		return nil
	}
	ws.repairSpan(row, col, o)
	return nil
}

// SetRangeBorders applies style to the selected edges of r. Edges inside
// merged cells are skipped. Pass NoBorder to remove borders.
func (ws *Worksheet) SetRangeBorders(r RangePosition, pos BorderPositions, style BorderStyle) error {
	fixed, err := ws.checkRange(r)
	if err != nil {
		return err
	}
	if ws.readOnly {
		return errors.Newf("borders of %s", r).Wrap(ErrReadOnly)
	}
	if fixed.IsEmpty() {
		return nil
	}
	for _, e := range rangeEdges(fixed, pos) {
		ws.writeBorder(e.row, e.col, e.o, style, e.owner)
	}
	ws.recomputeRangeRuns(fixed, pos)
	ws.logger.Debugf("borders %06b of %s set to %s", pos, fixed, style.Line)
	return nil
}

// RemoveRangeBorders clears the selected edges of r.
func (ws *Worksheet) RemoveRangeBorders(r RangePosition, pos BorderPositions) error {
	return ws.SetRangeBorders(r, pos, NoBorder)
}

type borderEdge struct {
	row, col int
	o        Orientation
	owner    BorderOwner
}

// rangeEdges lists the edge slots of r selected by pos.
func rangeEdges(r RangePosition, pos BorderPositions) []borderEdge {
	var edges []borderEdge
	for c := r.Col; c <= r.EndCol(); c++ {
		if pos&BorderTop != 0 {
			edges = append(edges, borderEdge{r.Row, c, Horizontal, OwnerAfter})
		}
		if pos&BorderBottom != 0 {
			edges = append(edges, borderEdge{r.EndRow() + 1, c, Horizontal, OwnerBefore})
		}
		if pos&BorderInsideHorizontal != 0 {
			for row := r.Row + 1; row <= r.EndRow(); row++ {
				edges = append(edges, borderEdge{row, c, Horizontal, OwnerBoth})
			}
		}
	}
	for row := r.Row; row <= r.EndRow(); row++ {
		if pos&BorderLeft != 0 {
			edges = append(edges, borderEdge{row, r.Col, Vertical, OwnerAfter})
		}
		if pos&BorderRight != 0 {
			edges = append(edges, borderEdge{row, r.EndCol() + 1, Vertical, OwnerBefore})
		}
		if pos&BorderInsideVertical != 0 {
			for c := r.Col + 1; c <= r.EndCol(); c++ {
				edges = append(edges, borderEdge{row, c, Vertical, OwnerBoth})
			}
		}
	}
	return edges
}

// recomputeRangeRuns rescans every run touched by rangeEdges(r, pos).
func (ws *Worksheet) recomputeRangeRuns(r RangePosition, pos BorderPositions) {
	if pos&BorderTop != 0 {
		ws.recomputeLine(Horizontal, r.Row)
	}
	if pos&BorderBottom != 0 {
		ws.recomputeLine(Horizontal, r.EndRow()+1)
	}
	if pos&BorderInsideHorizontal != 0 {
		for row := r.Row + 1; row <= r.EndRow(); row++ {
			ws.recomputeLine(Horizontal, row)
		}
	}
	if pos&BorderLeft != 0 {
		ws.recomputeLine(Vertical, r.Col)
	}
	if pos&BorderRight != 0 {
		ws.recomputeLine(Vertical, r.EndCol()+1)
	}
	if pos&BorderInsideVertical != 0 {
		for c := r.Col + 1; c <= r.EndCol(); c++ {
			ws.recomputeLine(Vertical, c)
		}
	}
}

// writeBorder stores style at one slot without touching spans. It returns
// false when the slot is outside the sheet or inside a merged cell.
func (ws *Worksheet) writeBorder(row, col int, o Orientation, style BorderStyle, owner BorderOwner) bool {
	if !ws.inBorderSlots(row, col, o) || ws.isInteriorEdge(row, col, o) {
		return false
	}
	store := ws.borderStore(o)
	if style.IsEmpty() {
		store.delete(row, col)
		return true
	}
	seg := store.get(row, col)
	if seg == nil {
		seg = &BorderSegment{}
		store.set(row, col, seg)
	}
	seg.Style = style
	seg.Owner = owner
	return true
}

// isInteriorEdge reports whether the slot separates two cells of the same merged region.
func (ws *Worksheet) isInteriorEdge(row, col int, o Orientation) bool {
	var a, b CellPosition
	if o == Horizontal {
		if row <= 0 || row >= ws.RowCount() {
			return false
		}
		a, b = ws.regionStart(row-1, col), ws.regionStart(row, col)
	} else {
		if col <= 0 || col >= ws.ColumnCount() {
			return false
		}
		a, b = ws.regionStart(row, col-1), ws.regionStart(row, col)
	}
	return !a.IsEmpty() && a == b
}

// regionStart returns the anchor of the merged region holding row, col, or EmptyPosition.
func (ws *Worksheet) regionStart(row, col int) CellPosition {
	c := ws.cells.get(row, col)
	if c == nil {
		return EmptyPosition
	}
	return c.MergeStartPos()
}

// run addresses the slots of one border line: index i of line maps to a store slot.
type run struct {
	store  *sparseMatrix[*BorderSegment]
	o      Orientation
	line   int
	length int
}

func (ws *Worksheet) runOf(o Orientation, line int) run {
	rows, cols := ws.borderSlots(o)
	if o == Vertical {
		return run{store: ws.vBorders, o: o, line: line, length: rows}
	}
	return run{store: ws.hBorders, o: o, line: line, length: cols}
}

func (r run) at(i int) *BorderSegment {
	if i < 0 || i >= r.length {
		return nil
	}
	if r.o == Vertical {
		return r.store.get(i, r.line)
	}
	return r.store.get(r.line, i)
}

// spanAt is the span slot i should hold given the already correct span of slot i+1.
func (r run) spanAt(i int) int {
	seg := r.at(i)
	if seg == nil || seg.Style.IsEmpty() {
		return 0
	}
	if next := r.at(i + 1); next != nil && next.Style == seg.Style {
		return next.Span + 1
	}
	return 1
}

// repairSpan fixes the span of the written slot and walks back over its run
// until a predecessor already holds the right span.
func (ws *Worksheet) repairSpan(row, col int, o Orientation) {
	line, i := row, col
	if o == Vertical {
		line, i = col, row
	}
	r := ws.runOf(o, line)
	if seg := r.at(i); seg != nil {
		seg.Span = r.spanAt(i)
	}
	for j := i - 1; j >= 0; j-- {
		seg := r.at(j)
		if seg == nil {
			return
		}
		span := r.spanAt(j)
		if seg.Span == span {
			return
		}
		seg.Span = span
	}
}

// RecomputeRun rescans the whole border line holding the slot at row, col.
func (ws *Worksheet) RecomputeRun(row, col int, o Orientation) {
	if o == Vertical {
		ws.recomputeLine(o, col)
		return
	}
	ws.recomputeLine(o, row)
}

func (ws *Worksheet) recomputeLine(o Orientation, line int) {
	r := ws.runOf(o, line)
	if line < 0 {
		return
	}
	if o == Horizontal {
		if line >= ws.hBorders.rowLen() {
			return
		}
		for i := min(r.length, ws.hBorders.colLen(line)) - 1; i >= 0; i-- {
			if seg := r.at(i); seg != nil {
				seg.Span = r.spanAt(i)
			}
		}
		return
	}
	for i := min(r.length, ws.vBorders.rowLen()) - 1; i >= 0; i-- {
		if seg := r.at(i); seg != nil {
			seg.Span = r.spanAt(i)
		}
	}
}

// recomputeAllRuns rescans every run of both stores. Used after structural edits.
func (ws *Worksheet) recomputeAllRuns() {
	for row := ws.hBorders.rowLen() - 1; row >= 0; row-- {
		ws.recomputeLine(Horizontal, row)
	}

	// vertical runs go down the rows; walk bottom-up keeping the next slot per column
	type next struct {
		row int
		seg *BorderSegment
	}
	below := map[int]next{}
	var slots []CellPosition
	for pos := range ws.vBorders.allocated() {
		slots = append(slots, pos)
	}
	for i := len(slots) - 1; i >= 0; i-- {
		pos := slots[i]
		seg := ws.vBorders.get(pos.Row, pos.Col)
		seg.Span = 1
		if n, ok := below[pos.Col]; ok && n.row == pos.Row+1 && n.seg.Style == seg.Style {
			seg.Span = n.seg.Span + 1
		}
		below[pos.Col] = next{row: pos.Row, seg: seg}
	}
}
