package gridsheet

import (
	"slices"
	"sort"
)

const (
	// DefaultRowHeight is the height in pixels of a new row.
	DefaultRowHeight = 20

	// DefaultColumnWidth is the width in pixels of a new column.
	DefaultColumnWidth = 70
)

// RowHeader holds the geometry of one row.
type RowHeader struct {
	Index       int
	Top         int // cumulative offset of the row
	InnerHeight int // 0 means hidden
	Style       *CellStyle

	lastHeight int // height restored when a hidden row is shown again
}

// Bottom returns the offset just below the row.
func (h *RowHeader) Bottom() int { return h.Top + h.InnerHeight }

// IsVisible reports whether the row has a positive height.
func (h *RowHeader) IsVisible() bool { return h.InnerHeight > 0 }

// ColumnHeader holds the geometry of one column.
type ColumnHeader struct {
	Index      int
	Left       int // cumulative offset of the column
	InnerWidth int // 0 means hidden
	Style      *CellStyle

	lastWidth int
}

// Right returns the offset just right of the column.
func (h *ColumnHeader) Right() int { return h.Left + h.InnerWidth }

// IsVisible reports whether the column has a positive width.
func (h *ColumnHeader) IsVisible() bool { return h.InnerWidth > 0 }

// headerIndex keeps the ordered row and column headers of a sheet.
type headerIndex struct {
	rows []*RowHeader
	cols []*ColumnHeader

	defaultRowHeight   int
	defaultColumnWidth int
}

func newHeaderIndex(rowHeight, columnWidth int) headerIndex {
	return headerIndex{defaultRowHeight: rowHeight, defaultColumnWidth: columnWidth}
}

// resize grows or shrinks both header lists. Existing headers keep their size.
func (hi *headerIndex) resize(rows, cols int) {
	rows, cols = max(rows, 0), max(cols, 0)

	if rows < len(hi.rows) {
		hi.rows = slices.Delete(hi.rows, rows, len(hi.rows))
	} else if rows > len(hi.rows) {
		hi.insertRows(len(hi.rows), rows-len(hi.rows))
	}

	if cols < len(hi.cols) {
		hi.cols = slices.Delete(hi.cols, cols, len(hi.cols))
	} else if cols > len(hi.cols) {
		hi.insertColumns(len(hi.cols), cols-len(hi.cols))
	}
}

func (hi *headerIndex) insertRows(at, count int) {
	added := make([]*RowHeader, count)
	for i := range added {
		added[i] = &RowHeader{InnerHeight: hi.defaultRowHeight, lastHeight: hi.defaultRowHeight}
	}
	hi.rows = slices.Insert(hi.rows, at, added...)
	hi.updateRowOffsets(at)
}

func (hi *headerIndex) deleteRows(at, count int) {
	hi.rows = slices.Delete(hi.rows, at, at+count)
	hi.updateRowOffsets(at)
}

func (hi *headerIndex) insertColumns(at, count int) {
	added := make([]*ColumnHeader, count)
	for i := range added {
		added[i] = &ColumnHeader{InnerWidth: hi.defaultColumnWidth, lastWidth: hi.defaultColumnWidth}
	}
	hi.cols = slices.Insert(hi.cols, at, added...)
	hi.updateColumnOffsets(at)
}

func (hi *headerIndex) deleteColumns(at, count int) {
	hi.cols = slices.Delete(hi.cols, at, at+count)
	hi.updateColumnOffsets(at)
}

// updateRowOffsets recomputes Index and Top for every row from `from` on.
func (hi *headerIndex) updateRowOffsets(from int) {
	top := 0
	if from > 0 && from <= len(hi.rows) {
		top = hi.rows[from-1].Bottom()
	}
	for i := max(from, 0); i < len(hi.rows); i++ {
		h := hi.rows[i]
		h.Index = i
		h.Top = top
		top = h.Bottom()
	}
}

func (hi *headerIndex) updateColumnOffsets(from int) {
	left := 0
	if from > 0 && from <= len(hi.cols) {
		left = hi.cols[from-1].Right()
	}
	for i := max(from, 0); i < len(hi.cols); i++ {
		h := hi.cols[i]
		h.Index = i
		h.Left = left
		left = h.Right()
	}
}

func (hi *headerIndex) setRowsHeight(row, count, height int) {
	for i := row; i < row+count; i++ {
		hi.rows[i].InnerHeight = height
		if height > 0 {
			hi.rows[i].lastHeight = height
		}
	}
	hi.updateRowOffsets(row)
}

func (hi *headerIndex) setColumnsWidth(col, count, width int) {
	for i := col; i < col+count; i++ {
		hi.cols[i].InnerWidth = width
		if width > 0 {
			hi.cols[i].lastWidth = width
		}
	}
	hi.updateColumnOffsets(col)
}

func (hi *headerIndex) showRows(row, count int) {
	for i := row; i < row+count; i++ {
		h := hi.rows[i]
		if h.InnerHeight == 0 {
			h.InnerHeight = h.lastHeight
			if h.InnerHeight <= 0 {
				h.InnerHeight = hi.defaultRowHeight
			}
		}
	}
	hi.updateRowOffsets(row)
}

func (hi *headerIndex) showColumns(col, count int) {
	for i := col; i < col+count; i++ {
		h := hi.cols[i]
		if h.InnerWidth == 0 {
			h.InnerWidth = h.lastWidth
			if h.InnerWidth <= 0 {
				h.InnerWidth = hi.defaultColumnWidth
			}
		}
	}
	hi.updateColumnOffsets(col)
}

func (hi *headerIndex) rowVisible(row int) bool {
	return row >= 0 && row < len(hi.rows) && hi.rows[row].IsVisible()
}

func (hi *headerIndex) colVisible(col int) bool {
	return col >= 0 && col < len(hi.cols) && hi.cols[col].IsVisible()
}

func (hi *headerIndex) clone() headerIndex {
	c := *hi
	c.rows = make([]*RowHeader, len(hi.rows))
	for i, h := range hi.rows {
		cp := *h
		c.rows[i] = &cp
	}
	c.cols = make([]*ColumnHeader, len(hi.cols))
	for i, h := range hi.cols {
		cp := *h
		c.cols[i] = &cp
	}
	return c
}

// findIndexByOffset returns the header whose [start, end) interval holds
// offset, or -1. Hidden headers have an empty interval and are never returned.
func findIndexByOffset(count int, end func(int) int, start func(int) int, offset int) int {
	if offset < 0 || count == 0 {
		return -1
	}
	i := sort.Search(count, func(i int) bool { return end(i) > offset })
	if i >= count || start(i) > offset {
		return -1
	}
	return i
}

// findIndexNearBoundary returns the header whose trailing boundary lies within
// thumb of offset, with inline=false; otherwise the header holding offset with
// inline=true. -1 when offset is outside every header and every boundary.
func findIndexNearBoundary(count int, end func(int) int, start func(int) int, offset, thumb int) (int, bool) {
	if count == 0 || offset < 0 {
		return -1, false
	}
	i := findIndexByOffset(count, end, start, offset)
	if i < 0 {
		last := count - 1
		if offset >= end(last) && offset <= end(last)+thumb {
			return last, false
		}
		return -1, false
	}
	if offset >= end(i)-thumb {
		return i, false
	}
	if i > 0 && offset < start(i)+thumb {
		return i - 1, false
	}
	return i, true
}

// RowHeader returns the header of row, or nil when row is out of range.
func (ws *Worksheet) RowHeader(row int) *RowHeader {
	if row < 0 || row >= len(ws.headers.rows) {
		return nil
	}
	return ws.headers.rows[row]
}

// ColumnHeader returns the header of col, or nil when col is out of range.
func (ws *Worksheet) ColumnHeader(col int) *ColumnHeader {
	if col < 0 || col >= len(ws.headers.cols) {
		return nil
	}
	return ws.headers.cols[col]
}

// FindRowIndexByOffset returns the row holding the vertical pixel offset y, or -1.
func (ws *Worksheet) FindRowIndexByOffset(y int) int {
	rows := ws.headers.rows
	return findIndexByOffset(len(rows),
		func(i int) int { return rows[i].Bottom() },
		func(i int) int { return rows[i].Top }, y)
}

// FindColumnIndexByOffset returns the column holding the horizontal pixel offset x, or -1.
func (ws *Worksheet) FindColumnIndexByOffset(x int) int {
	cols := ws.headers.cols
	return findIndexByOffset(len(cols),
		func(i int) int { return cols[i].Right() },
		func(i int) int { return cols[i].Left }, x)
}

// FindRowIndexNearBoundary returns the row nearest y and whether y is inside
// the row (true) or on its bottom resize handle (false).
func (ws *Worksheet) FindRowIndexNearBoundary(y, thumb int) (int, bool) {
	rows := ws.headers.rows
	return findIndexNearBoundary(len(rows),
		func(i int) int { return rows[i].Bottom() },
		func(i int) int { return rows[i].Top }, y, thumb)
}

// FindColumnIndexNearBoundary returns the column nearest x and whether x is
// inside the column (true) or on its right resize handle (false).
func (ws *Worksheet) FindColumnIndexNearBoundary(x, thumb int) (int, bool) {
	cols := ws.headers.cols
	return findIndexNearBoundary(len(cols),
		func(i int) int { return cols[i].Right() },
		func(i int) int { return cols[i].Left }, x, thumb)
}

// SetRowsHeight sets the height of rows [row, row+count). A height of 0 hides them.
func (ws *Worksheet) SetRowsHeight(row, count, height int) error {
	if err := ws.checkRows(row, count); err != nil {
		return err
	}
	ws.headers.setRowsHeight(row, count, max(height, 0))
	return nil
}

// SetColumnsWidth sets the width of columns [col, col+count). A width of 0 hides them.
func (ws *Worksheet) SetColumnsWidth(col, count, width int) error {
	if err := ws.checkColumns(col, count); err != nil {
		return err
	}
	ws.headers.setColumnsWidth(col, count, max(width, 0))
	return nil
}

// HideRows hides rows [row, row+count).
func (ws *Worksheet) HideRows(row, count int) error {
	return ws.SetRowsHeight(row, count, 0)
}

// ShowRows restores the previous height of hidden rows in [row, row+count).
func (ws *Worksheet) ShowRows(row, count int) error {
	if err := ws.checkRows(row, count); err != nil {
		return err
	}
	ws.headers.showRows(row, count)
	return nil
}

// HideColumns hides columns [col, col+count).
func (ws *Worksheet) HideColumns(col, count int) error {
	return ws.SetColumnsWidth(col, count, 0)
}

// ShowColumns restores the previous width of hidden columns in [col, col+count).
func (ws *Worksheet) ShowColumns(col, count int) error {
	if err := ws.checkColumns(col, count); err != nil {
		return err
	}
	ws.headers.showColumns(col, count)
	return nil
}

// CellBounds returns the pixel rectangle of the cell at row, col, taking
// merged spans into account. ok is false when the position is out of range.
func (ws *Worksheet) CellBounds(row, col int) (left, top, width, height int, ok bool) {
	if !ws.inSheet(row, col) {
		return 0, 0, 0, 0, false
	}
	r, merged := ws.MergedRangeAt(row, col)
	if !merged {
		r = NewRange(row, col, 1, 1)
	}
	first, last := ws.headers.rows[r.Row], ws.headers.rows[r.EndRow()]
	left0, right0 := ws.headers.cols[r.Col], ws.headers.cols[r.EndCol()]
	return left0.Left, first.Top, right0.Right() - left0.Left, last.Bottom() - first.Top, true
}
