package gridsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxDefaultColWidth is the width excelize reports for columns without a custom width.
const xlsxDefaultColWidth = 9.140625

// ImportFile opens the workbook at path and loads one sheet. An empty sheet
// name loads the active sheet.
func ImportFile(path, sheet string, opts ...Option) (*Worksheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Import(f, sheet, opts...)
}

// Import loads a sheet of f into a new worksheet: values, formulas, cell
// styles, borders, merges, row heights, column widths and hidden headers.
func Import(f *excelize.File, sheet string, opts ...Option) (*Worksheet, error) {
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	mergeCells, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read merged cells: %w", err)
	}

	extent := NewRange(0, 0, len(rows), 0)
	for _, row := range rows {
		extent.Cols = max(extent.Cols, len(row))
	}
	if dim, err := f.GetSheetDimension(sheet); err == nil && dim != "" {
		if r, err := ParseRangePosition(dim); err == nil {
			extent.Rows = max(extent.Rows, r.EndRow()+1)
			extent.Cols = max(extent.Cols, r.EndCol()+1)
		}
	}
	merges := make([]RangePosition, 0, len(mergeCells))
	for _, mc := range mergeCells {
		r, err := ParseRangePosition(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		merges = append(merges, r)
		extent.Rows = max(extent.Rows, r.EndRow()+1)
		extent.Cols = max(extent.Cols, r.EndCol()+1)
	}

	ws := NewWorksheet(sheet, extent.Rows, extent.Cols, opts...)
	readOnly := ws.readOnly
	ws.readOnly = false
	defer func() { ws.readOnly = readOnly }()

	if err := importHeaders(f, sheet, ws); err != nil {
		return nil, err
	}

	styles := map[int]*excelize.Style{}
	for r := range extent.Rows {
		for c := range extent.Cols {
			name, _ := excelize.CoordinatesToCellName(c+1, r+1)
			var raw string
			if r < len(rows) && c < len(rows[r]) {
				raw = rows[r][c]
			}
			if raw != "" {
				typ, _ := f.GetCellType(sheet, name)
				if err := ws.SetCellData(r, c, cellValue(typ, raw)); err != nil {
					return nil, err
				}
			}
			formula, err := f.GetCellFormula(sheet, name)
			if err != nil {
				return nil, fmt.Errorf("failed to read formula of %s: %w", name, err)
			}
			if formula != "" {
				if err := ws.SetCellFormula(r, c, formula); err != nil {
					return nil, err
				}
			}
			if err := importStyle(f, sheet, name, ws, r, c, styles); err != nil {
				return nil, err
			}
		}
	}
	ws.recomputeAllRuns()

	for _, m := range merges {
		if err := ws.MergeRange(m); err != nil {
			ws.logger.Warnf("skipped merge %s of %q: %v", m, sheet, err)
		}
	}
	ws.resetSelection()
	ws.logger.Debugf("imported %q: %dx%d, %d merges", sheet, ws.RowCount(), ws.ColumnCount(), len(merges))
	return ws, nil
}

func importHeaders(f *excelize.File, sheet string, ws *Worksheet) error {
	for r := range ws.RowCount() {
		height, err := f.GetRowHeight(sheet, r+1)
		if err != nil {
			return fmt.Errorf("failed to read row height: %w", err)
		}
		if px := pointsToPx(height); px > 0 && px != ws.headers.defaultRowHeight {
			ws.headers.setRowsHeight(r, 1, px)
		}
		visible, err := f.GetRowVisible(sheet, r+1)
		if err != nil {
			return fmt.Errorf("failed to read row visibility: %w", err)
		}
		if !visible {
			ws.headers.setRowsHeight(r, 1, 0)
		}
	}
	for c := range ws.ColumnCount() {
		name := columnName(c)
		width, err := f.GetColWidth(sheet, name)
		if err != nil {
			return fmt.Errorf("failed to read column width: %w", err)
		}
		px := charsToPx(width)
		if math.Abs(width-xlsxDefaultColWidth) < 1e-6 {
			px = ws.headers.defaultColumnWidth
		}
		if px > 0 && px != ws.headers.defaultColumnWidth {
			ws.headers.setColumnsWidth(c, 1, px)
		}
		visible, err := f.GetColVisible(sheet, name)
		if err != nil {
			return fmt.Errorf("failed to read column visibility: %w", err)
		}
		if !visible || px == 0 {
			ws.headers.setColumnsWidth(c, 1, 0)
		}
	}
	return nil
}

// cellValue converts a raw cell string to a number or bool when its type says so.
func cellValue(typ excelize.CellType, raw string) any {
	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	}
	return raw
}

// importStyle copies the format of one xlsx cell and turns its borders into
// edge slots owned by that cell.
func importStyle(f *excelize.File, sheet, name string, ws *Worksheet, row, col int, cache map[int]*excelize.Style) error {
	idx, err := f.GetCellStyle(sheet, name)
	if err != nil {
		return fmt.Errorf("failed to read style of %s: %w", name, err)
	}
	if idx == 0 {
		return nil
	}
	style, ok := cache[idx]
	if !ok {
		if style, err = f.GetStyle(idx); err != nil {
			return fmt.Errorf("failed to read style %d: %w", idx, err)
		}
		cache[idx] = style
	}

	var cs CellStyle
	if style.Fill.Type == "pattern" && style.Fill.Pattern == 1 && len(style.Fill.Color) > 0 {
		cs.BackColor = normalizeColor(style.Fill.Color[0])
	}
	if style.Font != nil {
		cs.Bold = style.Font.Bold
		cs.Italic = style.Font.Italic
		cs.TextColor = normalizeColor(style.Font.Color)
	}
	if cs != (CellStyle{}) {
		if err := ws.SetCellStyle(row, col, &cs); err != nil {
			return err
		}
	}

	for _, b := range style.Border {
		if b.Style <= int(BorderNone) || b.Style > int(BorderSlantDashDot) {
			continue
		}
		bs := BorderStyle{Line: BorderLineStyle(b.Style), Color: normalizeColor(b.Color)}
		switch b.Type {
		case "top":
			ws.importEdge(row, col, Horizontal, bs, OwnerAfter)
		case "bottom":
			ws.importEdge(row+1, col, Horizontal, bs, OwnerBefore)
		case "left":
			ws.importEdge(row, col, Vertical, bs, OwnerAfter)
		case "right":
			ws.importEdge(row, col+1, Vertical, bs, OwnerBefore)
		}
	}
	return nil
}

// importEdge stores an edge read from a cell. Both neighbours drawing the same
// edge give it both owners. Spans are fixed up by the caller.
func (ws *Worksheet) importEdge(row, col int, o Orientation, style BorderStyle, owner BorderOwner) {
	if seg := ws.BorderSegment(row, col, o); seg != nil && seg.Style == style {
		owner |= seg.Owner
	}
	ws.writeBorder(row, col, o, style, owner)
}

// normalizeColor returns an upper-case RGB hex color, dropping a leading '#'
// and an alpha byte.
func normalizeColor(s string) string {
	s = strings.ToUpper(strings.TrimPrefix(s, "#"))
	if len(s) == 8 {
		s = s[2:]
	}
	return s
}
