package gridsheet

import (
	"iter"

	"github.com/olekukonko/errors"
	"github.com/olekukonko/ll"
)

const (
	defaultViewWidth  = 800
	defaultViewHeight = 400
)

// Worksheet owns the cells, headers, borders and selection of one sheet.
// A Worksheet is not safe for concurrent use.
type Worksheet struct {
	Name string

	headers  headerIndex
	cells    *sparseMatrix[*Cell]
	hBorders *sparseMatrix[*BorderSegment]
	vBorders *sparseMatrix[*BorderSegment]

	selection SelectionState
	hooks     selectionHooks
	viewport  Viewport

	viewWidth  int
	viewHeight int
	readOnly   bool

	logger *ll.Logger
}

// NewWorksheet creates a sheet of rows x cols cells.
func NewWorksheet(name string, rows, cols int, opts ...Option) *Worksheet {
	ws := &Worksheet{
		Name:       name,
		headers:    newHeaderIndex(DefaultRowHeight, DefaultColumnWidth),
		cells:      newSparseMatrix[*Cell](),
		hBorders:   newSparseMatrix[*BorderSegment](),
		vBorders:   newSparseMatrix[*BorderSegment](),
		viewWidth:  defaultViewWidth,
		viewHeight: defaultViewHeight,
		logger:     newDisabledLogger(),
		selection: SelectionState{
			Mode:  SelectionRange,
			Start: EmptyPosition,
			End:   EmptyPosition,
			Focus: EmptyPosition,
		},
	}
	for _, opt := range opts {
		opt(ws)
	}
	ws.headers.resize(rows, cols)
	ws.resetSelection()
	return ws
}

// RowCount returns the number of rows.
func (ws *Worksheet) RowCount() int { return len(ws.headers.rows) }

// ColumnCount returns the number of columns.
func (ws *Worksheet) ColumnCount() int { return len(ws.headers.cols) }

// Range returns the range covering the whole sheet.
func (ws *Worksheet) Range() RangePosition {
	return NewRange(0, 0, ws.RowCount(), ws.ColumnCount())
}

// IsReadOnly reports whether the worksheet rejects edits.
func (ws *Worksheet) IsReadOnly() bool { return ws.readOnly }

// SetReadOnly toggles the read-only flag.
func (ws *Worksheet) SetReadOnly(readOnly bool) { ws.readOnly = readOnly }

// Logger returns the trace logger of the worksheet.
func (ws *Worksheet) Logger() *ll.Logger { return ws.logger }

// SetViewport attaches the collaborator asked to repaint and scroll on
// selection changes. nil detaches it.
func (ws *Worksheet) SetViewport(v Viewport) { ws.viewport = v }

// SetViewportSize sets the visible area used by page navigation.
func (ws *Worksheet) SetViewportSize(width, height int) {
	ws.viewWidth, ws.viewHeight = width, height
}

// Resize grows or shrinks the sheet. Shrinking drops the trailing rows and
// columns the way DeleteRows and DeleteColumns do.
func (ws *Worksheet) Resize(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return errors.Newf("resize to %dx%d", rows, cols).Wrap(ErrOutOfRange)
	}
	if rows < ws.RowCount() {
		if err := ws.DeleteRows(rows, ws.RowCount()-rows); err != nil {
			return err
		}
	}
	if cols < ws.ColumnCount() {
		if err := ws.DeleteColumns(cols, ws.ColumnCount()-cols); err != nil {
			return err
		}
	}
	ws.headers.resize(rows, cols)
	ws.logger.Debugf("resized %q to %dx%d", ws.Name, rows, cols)
	ws.refreshSelection()
	return nil
}

// Clear drops every cell and border and resets the selection. Headers keep their size.
func (ws *Worksheet) Clear() {
	ws.cells.clear()
	ws.hBorders.clear()
	ws.vBorders.clear()
	ws.resetSelection()
}

// Clone returns an independent deep copy. Hooks and the viewport are not copied.
func (ws *Worksheet) Clone() *Worksheet {
	c := &Worksheet{
		Name:       ws.Name,
		headers:    ws.headers.clone(),
		cells:      ws.cells.clone((*Cell).clone),
		hBorders:   ws.hBorders.clone((*BorderSegment).clone),
		vBorders:   ws.vBorders.clone((*BorderSegment).clone),
		selection:  ws.selection,
		viewWidth:  ws.viewWidth,
		viewHeight: ws.viewHeight,
		readOnly:   ws.readOnly,
		logger:     ws.logger,
	}
	return c
}

// Cell returns the cell at row, col or nil when the slot is empty or out of range.
func (ws *Worksheet) Cell(row, col int) *Cell {
	if !ws.inSheet(row, col) {
		return nil
	}
	return ws.cells.get(row, col)
}

// CreateAndGetCell returns the cell at row, col, allocating it on first use.
func (ws *Worksheet) CreateAndGetCell(row, col int) (*Cell, error) {
	if !ws.inSheet(row, col) {
		return nil, errors.Newf("cell %s", NewCellPosition(row, col)).Wrap(ErrOutOfRange)
	}
	return ws.createCell(row, col), nil
}

func (ws *Worksheet) createCell(row, col int) *Cell {
	if c := ws.cells.get(row, col); c != nil {
		return c
	}
	c := &Cell{Row: row, Col: col}
	ws.cells.set(row, col, c)
	return c
}

// Cells iterates the cells of r in row-major order. With includeEmpty, empty
// slots are yielded as nil; otherwise they are skipped.
func (ws *Worksheet) Cells(r RangePosition, includeEmpty bool) iter.Seq2[CellPosition, *Cell] {
	return ws.cells.all(ws.FixRangePosition(r), includeEmpty)
}

// SetCellData writes data into the cell at row, col. Writes to a covered cell
// go to its merge anchor. A nil write frees a cell that carries nothing else.
func (ws *Worksheet) SetCellData(row, col int, data any) error {
	if !ws.inSheet(row, col) {
		return errors.Newf("set data at %s", NewCellPosition(row, col)).Wrap(ErrOutOfRange)
	}
	pos := ws.FindAnchor(row, col)
	if err := ws.checkWritable(pos.Row, pos.Col); err != nil {
		return err
	}
	if data == nil {
		c := ws.cells.get(pos.Row, pos.Col)
		if c == nil {
			return nil
		}
		c.Data = nil
		if c.isBlank() {
			ws.cells.delete(pos.Row, pos.Col)
		}
		return nil
	}
	ws.createCell(pos.Row, pos.Col).Data = data
	return nil
}

// CellData returns the data of the cell at row, col, resolving merged cells to their anchor.
func (ws *Worksheet) CellData(row, col int) any {
	if !ws.inSheet(row, col) {
		return nil
	}
	pos := ws.FindAnchor(row, col)
	if c := ws.cells.get(pos.Row, pos.Col); c != nil {
		return c.Data
	}
	return nil
}

// SetCellFormula stores a formula on the cell. Formulas are kept as text and never evaluated.
func (ws *Worksheet) SetCellFormula(row, col int, formula string) error {
	if !ws.inSheet(row, col) {
		return errors.Newf("set formula at %s", NewCellPosition(row, col)).Wrap(ErrOutOfRange)
	}
	pos := ws.FindAnchor(row, col)
	if err := ws.checkWritable(pos.Row, pos.Col); err != nil {
		return err
	}
	ws.createCell(pos.Row, pos.Col).Formula = formula
	return nil
}

// SetCellStyle sets the style of the cell at row, col.
func (ws *Worksheet) SetCellStyle(row, col int, style *CellStyle) error {
	if !ws.inSheet(row, col) {
		return errors.Newf("set style at %s", NewCellPosition(row, col)).Wrap(ErrOutOfRange)
	}
	pos := ws.FindAnchor(row, col)
	if err := ws.checkWritable(pos.Row, pos.Col); err != nil {
		return err
	}
	ws.createCell(pos.Row, pos.Col).Style = style
	return nil
}

// SetCellReadOnly flags a single cell read-only. It is allowed on a read-only sheet.
func (ws *Worksheet) SetCellReadOnly(row, col int, readOnly bool) error {
	if !ws.inSheet(row, col) {
		return errors.Newf("set read-only at %s", NewCellPosition(row, col)).Wrap(ErrOutOfRange)
	}
	pos := ws.FindAnchor(row, col)
	ws.createCell(pos.Row, pos.Col).IsReadOnly = readOnly
	return nil
}

// ClearRangeData removes the data and formulas of every cell in r. Nothing is
// changed when any cell in r is read-only.
func (ws *Worksheet) ClearRangeData(r RangePosition) error {
	if ws.readOnly {
		return errors.Newf("clear %s", r).Wrap(ErrReadOnly)
	}
	fixed := ws.FixRangePosition(r)
	for pos, c := range ws.cells.all(fixed, false) {
		if c.IsReadOnly {
			return errors.Newf("clear %s", pos).Wrap(ErrReadOnly)
		}
	}
	for pos, c := range ws.cells.all(fixed, false) {
		c.Data = nil
		c.Formula = ""
		if c.isBlank() {
			ws.cells.delete(pos.Row, pos.Col)
		}
	}
	return nil
}

// FixRange returns the normalized range spanned by two corners, clamped to the sheet.
func (ws *Worksheet) FixRange(start, end CellPosition) RangePosition {
	return fixRange(start, end, ws.RowCount(), ws.ColumnCount())
}

// FixRangePosition resolves Entire rows/columns and clamps r to the sheet.
func (ws *Worksheet) FixRangePosition(r RangePosition) RangePosition {
	if r.IsEmpty() {
		return RangePosition{}
	}
	if r.IsEntireColumn() {
		r.Row, r.Rows = 0, ws.RowCount()
	}
	if r.IsEntireRow() {
		r.Col, r.Cols = 0, ws.ColumnCount()
	}
	if r.Rows < 0 || r.Cols < 0 {
		return RangePosition{}
	}
	return ws.FixRange(r.StartPos(), r.EndPos())
}

// checkRange resolves r and rejects ranges lying entirely outside the sheet.
func (ws *Worksheet) checkRange(r RangePosition) (RangePosition, error) {
	if r.IsEmpty() {
		return RangePosition{}, nil
	}
	if !r.IsEntireColumn() && !r.IsEntireRow() {
		if r.Rows < 0 || r.Cols < 0 || !ws.Range().Intersects(r) {
			return RangePosition{}, errors.Newf("range %s", r).Wrap(ErrOutOfRange)
		}
	}
	return ws.FixRangePosition(r), nil
}

func (ws *Worksheet) checkWritable(row, col int) error {
	if ws.readOnly {
		return errors.Newf("write %s on %q", NewCellPosition(row, col), ws.Name).Wrap(ErrReadOnly)
	}
	if c := ws.cells.get(row, col); c != nil && c.IsReadOnly {
		return errors.Newf("write %s", NewCellPosition(row, col)).Wrap(ErrReadOnly)
	}
	return nil
}

func (ws *Worksheet) checkRows(row, count int) error {
	if row < 0 || count < 0 || row+count > ws.RowCount() {
		return errors.Newf("rows %d+%d of %d", row, count, ws.RowCount()).Wrap(ErrOutOfRange)
	}
	return nil
}

func (ws *Worksheet) checkColumns(col, count int) error {
	if col < 0 || count < 0 || col+count > ws.ColumnCount() {
		return errors.Newf("columns %d+%d of %d", col, count, ws.ColumnCount()).Wrap(ErrOutOfRange)
	}
	return nil
}

func (ws *Worksheet) inSheet(row, col int) bool {
	return row >= 0 && col >= 0 && row < ws.RowCount() && col < ws.ColumnCount()
}
