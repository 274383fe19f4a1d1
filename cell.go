package gridsheet

import "fmt"

// CellStyle is the subset of cell formatting carried by the grid.
type CellStyle struct {
	BackColor string // RGB hex, e.g. "FFEEAA"
	TextColor string
	Bold      bool
	Italic    bool
}

type cellKind uint8

const (
	cellPlain cellKind = iota
	cellAnchor
	cellCovered
)

// mergeState is the merge role of a cell. Only an anchor carries spans; a
// covered cell only knows its anchor and the region end, by position.
type mergeState struct {
	kind    cellKind
	rowspan int
	colspan int
	start   CellPosition
	end     CellPosition
}

// Cell is one slot of the sheet. Cells are created and owned by the worksheet.
type Cell struct {
	Row        int
	Col        int
	Data       any
	Formula    string // stored, never evaluated
	Style      *CellStyle
	IsReadOnly bool

	merge mergeState
}

// Position returns the slot of the cell.
func (c *Cell) Position() CellPosition {
	return CellPosition{Row: c.Row, Col: c.Col}
}

// Rowspan is 1 for a plain cell, the region height for a merge anchor and 0
// for a covered cell.
func (c *Cell) Rowspan() int {
	switch c.merge.kind {
	case cellAnchor:
		return c.merge.rowspan
	case cellCovered:
		return 0
	}
	return 1
}

// Colspan is 1 for a plain cell, the region width for a merge anchor and 0
// for a covered cell.
func (c *Cell) Colspan() int {
	switch c.merge.kind {
	case cellAnchor:
		return c.merge.colspan
	case cellCovered:
		return 0
	}
	return 1
}

// MergeStartPos returns the anchor of the merged region holding the cell, or
// EmptyPosition.
func (c *Cell) MergeStartPos() CellPosition {
	if c.merge.kind == cellPlain {
		return EmptyPosition
	}
	return c.merge.start
}

// MergeEndPos returns the bottom-right cell of the merged region holding the
// cell, or EmptyPosition.
func (c *Cell) MergeEndPos() CellPosition {
	if c.merge.kind == cellPlain {
		return EmptyPosition
	}
	return c.merge.end
}

// IsMergedAnchor reports whether the cell is the top-left cell of a merged region.
func (c *Cell) IsMergedAnchor() bool { return c.merge.kind == cellAnchor }

// IsCovered reports whether the cell is a non-anchor cell of a merged region.
func (c *Cell) IsCovered() bool { return c.merge.kind == cellCovered }

// IsValidCell reports whether the cell can be focused.
func (c *Cell) IsValidCell() bool { return c.merge.kind != cellCovered }

// MergedRange returns the region the cell belongs to.
func (c *Cell) MergedRange() (RangePosition, bool) {
	if c.merge.kind == cellPlain {
		return RangePosition{}, false
	}
	return RangeFromPositions(c.merge.start, c.merge.end), true
}

// DisplayText returns Data formatted for display.
func (c *Cell) DisplayText() string {
	if c.Data == nil {
		return ""
	}
	return fmt.Sprint(c.Data)
}

func (c *Cell) setAnchor(rows, cols int) {
	start := c.Position()
	c.merge = mergeState{
		kind:    cellAnchor,
		rowspan: rows,
		colspan: cols,
		start:   start,
		end:     start.Offset(rows-1, cols-1),
	}
}

func (c *Cell) setCovered(start, end CellPosition) {
	c.merge = mergeState{kind: cellCovered, start: start, end: end}
}

func (c *Cell) setPlain() {
	c.merge = mergeState{}
}

// isBlank reports whether the cell holds nothing worth keeping.
func (c *Cell) isBlank() bool {
	return c.Data == nil && c.Formula == "" && c.Style == nil && !c.IsReadOnly && c.merge.kind == cellPlain
}

func (c *Cell) clone() *Cell {
	cp := *c
	if c.Style != nil {
		st := *c.Style
		cp.Style = &st
	}
	return &cp
}
