package gridsheet

import (
	"slices"

	"github.com/xuri/excelize/v2"
)

// MergeCell defines a merged cell data.
type MergeCell struct {
	TopLeftCell     string
	BottomRightCell string
}

func newMergeCell(r RangePosition) MergeCell {
	return MergeCell{TopLeftCell: r.StartPos().String(), BottomRightCell: r.EndPos().String()}
}

// Row represents a row of data in the Excel sheet.
type Row struct {
	Index      int                // zero-based worksheet row
	Cols       []int              // zero-based column of each entry in Cells
	Cells      []excelize.Cell    // Cells in the row
	MergeCells []MergeCell        // Merged cells anchored in the row
	RowOpts    []excelize.RowOpts // Options for the row, only useful when useStreamWriter is true
}

// IsEmpty reports whether the row carries nothing to write.
func (r Row) IsEmpty() bool {
	return len(r.Cells) == 0 && len(r.MergeCells) == 0 && len(r.RowOpts) == 0
}

// cellEdges are the four borders drawn around one exported cell.
type cellEdges struct {
	top, bottom, left, right BorderStyle
}

// styleKey identifies one xlsx style: the cell format plus its borders.
type styleKey struct {
	cell  CellStyle
	edges cellEdges
}

// buildRow collects the cells, borders and merges of one worksheet row.
func (e *Exporter) buildRow(ws *Worksheet, row int) (Row, error) {
	out := Row{Index: row}

	for _, col := range rowColumns(ws, row) {
		var cell excelize.Cell
		var key styleKey
		if c := ws.cells.get(row, col); c != nil {
			// xlsx keeps no values under a merge
			if !c.IsCovered() {
				cell.Value = c.Data
				cell.Formula = c.Formula
			}
			if c.Style != nil {
				key.cell = *c.Style
			}
			if c.IsMergedAnchor() {
				m, _ := c.MergedRange()
				out.MergeCells = append(out.MergeCells, newMergeCell(m))
			}
		}
		key.edges = ws.cellEdges(row, col)
		if key != (styleKey{}) {
			id, err := e.styleID(key)
			if err != nil {
				return Row{}, err
			}
			cell.StyleID = id
		}
		if cell.Value == nil && cell.Formula == "" && cell.StyleID == 0 {
			continue
		}
		out.Cols = append(out.Cols, col)
		out.Cells = append(out.Cells, cell)
	}

	h := ws.headers.rows[row]
	switch {
	case !h.IsVisible():
		out.RowOpts = append(out.RowOpts, excelize.RowOpts{Height: pxToPoints(h.lastHeight), Hidden: true})
	case h.InnerHeight != ws.headers.defaultRowHeight:
		out.RowOpts = append(out.RowOpts, excelize.RowOpts{Height: pxToPoints(h.InnerHeight)})
	}
	return out, nil
}

// rowColumns returns, in order, the columns of row holding a cell or touching a border.
func rowColumns(ws *Worksheet, row int) []int {
	seen := map[int]struct{}{}
	full := NewRange(row, 0, 1, ws.ColumnCount())
	for pos := range ws.cells.all(full, false) {
		seen[pos.Col] = struct{}{}
	}
	for _, line := range []int{row, row + 1} {
		for pos := range ws.hBorders.all(NewRange(line, 0, 1, ws.ColumnCount()), false) {
			seen[pos.Col] = struct{}{}
		}
	}
	for pos := range ws.vBorders.all(NewRange(row, 0, 1, ws.ColumnCount()+1), false) {
		if pos.Col < ws.ColumnCount() {
			seen[pos.Col] = struct{}{}
		}
		if pos.Col > 0 {
			seen[pos.Col-1] = struct{}{}
		}
	}
	cols := make([]int, 0, len(seen))
	for col := range seen {
		cols = append(cols, col)
	}
	slices.Sort(cols)
	return cols
}

// cellEdges returns the borders owned by the cell at row, col.
func (ws *Worksheet) cellEdges(row, col int) cellEdges {
	var e cellEdges
	if seg := ws.hBorders.get(row, col); seg != nil && seg.Owner&OwnerAfter != 0 {
		e.top = seg.Style
	}
	if seg := ws.hBorders.get(row+1, col); seg != nil && seg.Owner&OwnerBefore != 0 {
		e.bottom = seg.Style
	}
	if seg := ws.vBorders.get(row, col); seg != nil && seg.Owner&OwnerAfter != 0 {
		e.left = seg.Style
	}
	if seg := ws.vBorders.get(row, col+1); seg != nil && seg.Owner&OwnerBefore != 0 {
		e.right = seg.Style
	}
	return e
}
