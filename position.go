package gridsheet

import (
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/errors"
	"github.com/xuri/excelize/v2"
)

// Entire is used as Rows or Cols of a RangePosition to select whole columns or whole rows.
const Entire = -1

// CellPosition addresses a single cell, zero-based.
type CellPosition struct {
	Row int
	Col int
}

// EmptyPosition marks the absence of a position.
var EmptyPosition = CellPosition{Row: -1, Col: -1}

// NewCellPosition returns the position at row, col.
func NewCellPosition(row, col int) CellPosition {
	return CellPosition{Row: row, Col: col}
}

// ParseCellPosition parses an A1-style cell name such as "B3".
func ParseCellPosition(addr string) (CellPosition, error) {
	col, row, err := excelize.CellNameToCoordinates(strings.TrimSpace(addr))
	if err != nil {
		return EmptyPosition, errors.Newf("parse cell %q", addr).Wrap(ErrInvalidAddress)
	}
	return CellPosition{Row: row - 1, Col: col - 1}, nil
}

// IsEmpty reports whether p is EmptyPosition or otherwise negative.
func (p CellPosition) IsEmpty() bool {
	return p.Row < 0 || p.Col < 0
}

// Offset returns p moved by rows and cols.
func (p CellPosition) Offset(rows, cols int) CellPosition {
	return CellPosition{Row: p.Row + rows, Col: p.Col + cols}
}

// String returns the A1-style name of p, or "" for an empty position.
func (p CellPosition) String() string {
	if p.IsEmpty() {
		return ""
	}
	name, err := excelize.CoordinatesToCellName(p.Col+1, p.Row+1)
	if err != nil {
		return ""
	}
	return name
}

// RangePosition is a rectangle of cells. Rows == Entire selects whole columns,
// Cols == Entire selects whole rows; such ranges are resolved against a sheet by
// Worksheet.FixRangePosition before use.
type RangePosition struct {
	Row  int
	Col  int
	Rows int
	Cols int
}

// NewRange returns the range starting at row, col spanning rows x cols cells.
func NewRange(row, col, rows, cols int) RangePosition {
	return RangePosition{Row: row, Col: col, Rows: rows, Cols: cols}
}

// RangeFromPositions returns the smallest range holding both corners.
func RangeFromPositions(a, b CellPosition) RangePosition {
	top, bottom := min(a.Row, b.Row), max(a.Row, b.Row)
	left, right := min(a.Col, b.Col), max(a.Col, b.Col)
	return RangePosition{Row: top, Col: left, Rows: bottom - top + 1, Cols: right - left + 1}
}

// EntireRows returns a range covering rows [row, row+count).
func EntireRows(row, count int) RangePosition {
	return RangePosition{Row: row, Col: 0, Rows: count, Cols: Entire}
}

// EntireColumns returns a range covering columns [col, col+count).
func EntireColumns(col, count int) RangePosition {
	return RangePosition{Row: 0, Col: col, Rows: Entire, Cols: count}
}

// EndRow returns the last row of the range.
func (r RangePosition) EndRow() int {
	if r.Rows < 0 {
		return math.MaxInt32
	}
	return r.Row + r.Rows - 1
}

// EndCol returns the last column of the range.
func (r RangePosition) EndCol() int {
	if r.Cols < 0 {
		return math.MaxInt32
	}
	return r.Col + r.Cols - 1
}

// StartPos returns the top-left cell.
func (r RangePosition) StartPos() CellPosition {
	return CellPosition{Row: r.Row, Col: r.Col}
}

// EndPos returns the bottom-right cell.
func (r RangePosition) EndPos() CellPosition {
	return CellPosition{Row: r.EndRow(), Col: r.EndCol()}
}

// IsEntireRow reports whether r spans all columns.
func (r RangePosition) IsEntireRow() bool { return r.Cols == Entire }

// IsEntireColumn reports whether r spans all rows.
func (r RangePosition) IsEntireColumn() bool { return r.Rows == Entire }

// IsEmpty reports whether r holds no cells.
func (r RangePosition) IsEmpty() bool {
	return r.Rows == 0 || r.Cols == 0
}

// IsSingleCell reports whether r is exactly one cell.
func (r RangePosition) IsSingleCell() bool {
	return r.Rows == 1 && r.Cols == 1
}

// Contains reports whether p lies inside r.
func (r RangePosition) Contains(p CellPosition) bool {
	return !r.IsEmpty() &&
		p.Row >= r.Row && p.Row <= r.EndRow() &&
		p.Col >= r.Col && p.Col <= r.EndCol()
}

// ContainsRange reports whether o lies entirely inside r.
func (r RangePosition) ContainsRange(o RangePosition) bool {
	return !r.IsEmpty() && !o.IsEmpty() &&
		o.Row >= r.Row && o.EndRow() <= r.EndRow() &&
		o.Col >= r.Col && o.EndCol() <= r.EndCol()
}

// Intersects reports whether r and o share at least one cell.
func (r RangePosition) Intersects(o RangePosition) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Row <= o.EndRow() && o.Row <= r.EndRow() &&
		r.Col <= o.EndCol() && o.Col <= r.EndCol()
}

// Union returns the smallest range holding both r and o.
func (r RangePosition) Union(o RangePosition) RangePosition {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	top, left := min(r.Row, o.Row), min(r.Col, o.Col)
	bottom, right := max(r.EndRow(), o.EndRow()), max(r.EndCol(), o.EndCol())
	return RangePosition{Row: top, Col: left, Rows: bottom - top + 1, Cols: right - left + 1}
}

// String returns r as "A1:C3", "B2" for one cell, "A:C" for whole columns or "2:4" for whole rows.
func (r RangePosition) String() string {
	switch {
	case r.IsEmpty():
		return ""
	case r.IsEntireColumn() && r.IsEntireRow():
		return "A:" + columnName(excelize.MaxColumns-1)
	case r.IsEntireColumn():
		return columnName(r.Col) + ":" + columnName(r.EndCol())
	case r.IsEntireRow():
		return strconv.Itoa(r.Row+1) + ":" + strconv.Itoa(r.EndRow()+1)
	case r.IsSingleCell():
		return r.StartPos().String()
	}
	return r.StartPos().String() + ":" + r.EndPos().String()
}

// ParseRangePosition parses "A1:C3", "B2", "A:C" or "2:4".
func ParseRangePosition(addr string) (RangePosition, error) {
	addr = strings.TrimSpace(addr)
	first, second, found := strings.Cut(addr, ":")
	if !found {
		p, err := ParseCellPosition(addr)
		if err != nil {
			return RangePosition{}, err
		}
		return NewRange(p.Row, p.Col, 1, 1), nil
	}

	if isLetters(first) && isLetters(second) {
		c1, err1 := excelize.ColumnNameToNumber(first)
		c2, err2 := excelize.ColumnNameToNumber(second)
		if err1 != nil || err2 != nil {
			return RangePosition{}, errors.Newf("parse columns %q", addr).Wrap(ErrInvalidAddress)
		}
		return EntireColumns(min(c1, c2)-1, abs(c2-c1)+1), nil
	}

	if isDigits(first) && isDigits(second) {
		r1, _ := strconv.Atoi(first)
		r2, _ := strconv.Atoi(second)
		if r1 < 1 || r2 < 1 {
			return RangePosition{}, errors.Newf("parse rows %q", addr).Wrap(ErrInvalidAddress)
		}
		return EntireRows(min(r1, r2)-1, abs(r2-r1)+1), nil
	}

	a, err := ParseCellPosition(first)
	if err != nil {
		return RangePosition{}, err
	}
	b, err := ParseCellPosition(second)
	if err != nil {
		return RangePosition{}, err
	}
	return RangeFromPositions(a, b), nil
}

// fixRange normalizes the rectangle spanned by a and b and clamps it to a sheet
// of rows x cols. The result is empty when the sheet is.
func fixRange(a, b CellPosition, rows, cols int) RangePosition {
	if rows <= 0 || cols <= 0 {
		return RangePosition{}
	}
	top := clamp(min(a.Row, b.Row), 0, rows-1)
	bottom := clamp(max(a.Row, b.Row), 0, rows-1)
	left := clamp(min(a.Col, b.Col), 0, cols-1)
	right := clamp(max(a.Col, b.Col), 0, cols-1)
	return RangePosition{Row: top, Col: left, Rows: bottom - top + 1, Cols: right - left + 1}
}

func columnName(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return ""
	}
	return name
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if (ch < 'A' || ch > 'Z') && (ch < 'a' || ch > 'z') {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
