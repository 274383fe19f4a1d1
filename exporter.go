package gridsheet

import (
	"fmt"
	"io"
	"math"

	"github.com/olekukonko/errors"
	"github.com/xuri/excelize/v2"
)

// SheetMaxRows defines the maximum number of rows per sheet for Excel 2007 and later versions (.xlsx format).
const SheetMaxRows = 1048576

// SheetData represents the data for a single sheet.
type SheetData struct {
	Name      string // defaults to Worksheet.Name
	Worksheet *Worksheet
}

// Exporter writes worksheets to an xlsx workbook.
type Exporter struct {
	File            *excelize.File
	FileName        string
	CurrentSheet    string // Current sheet name
	UseStreamWriter bool
	StreamWriter    *excelize.StreamWriter

	styles map[styleKey]int
}

// NewExporter creates a new Exporter instance. An empty fileName keeps the
// workbook in memory; use WriteTo to get its bytes.
func NewExporter(fileName string, useStreamWriter bool) *Exporter {
	return &Exporter{
		File:            excelize.NewFile(),
		FileName:        fileName,
		UseStreamWriter: useStreamWriter,
		styles:          map[styleKey]int{},
	}
}

// Export exports the Excel file.
func (e *Exporter) Export(sheets []SheetData) error {
	for i, sheet := range sheets {
		if sheet.Worksheet == nil {
			return fmt.Errorf("sheet %d has no worksheet", i)
		}
		if sheet.Name == "" {
			sheet.Name = sheet.Worksheet.Name
		}
		if _, err := e.File.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create a new sheet: %w", err)
		}

		// delete default sheet
		if i == 0 && e.File.SheetCount > 1 {
			if err := e.File.DeleteSheet("Sheet1"); err != nil {
				return fmt.Errorf("failed to delete default sheet: %w", err)
			}
		}

		if e.UseStreamWriter {
			if err := e.exportUsingStreamWriter(sheet); err != nil {
				return err
			}
		} else {
			if err := e.exportUsingMemory(sheet); err != nil {
				return err
			}
		}
	}

	if e.FileName == "" {
		return nil
	}
	return e.File.SaveAs(e.FileName)
}

// WriteTo writes the workbook to w.
func (e *Exporter) WriteTo(w io.Writer) (int64, error) {
	return e.File.WriteTo(w)
}

func (e *Exporter) exportUsingStreamWriter(sheet SheetData) error {
	ws := sheet.Worksheet
	var merges []MergeCell

	initFunc := func(sheetName string) error {
		var err error
		e.StreamWriter, err = e.File.NewStreamWriter(sheetName)
		if err != nil {
			return err
		}
		// column widths must precede every row
		for col, h := range ws.headers.cols {
			width := h.InnerWidth
			if !h.IsVisible() {
				width = h.lastWidth
			}
			if width == ws.headers.defaultColumnWidth {
				continue
			}
			if err := e.StreamWriter.SetColWidth(col+1, col+1, pxToChars(width)); err != nil {
				return err
			}
		}
		return nil
	}

	writeRowFunc := func(sheetName string, row Row) error {
		if len(row.Cells) == 0 && len(row.RowOpts) == 0 {
			merges = append(merges, row.MergeCells...)
			return nil
		}
		last := 0
		if len(row.Cols) > 0 {
			last = row.Cols[len(row.Cols)-1]
		}
		rowCells := make([]interface{}, last+1)
		for j, cell := range row.Cells {
			rowCells[row.Cols[j]] = cell
		}

		cell, _ := excelize.CoordinatesToCellName(1, row.Index+1)
		if err := e.StreamWriter.SetRow(cell, rowCells, row.RowOpts...); err != nil {
			return err
		}
		merges = append(merges, row.MergeCells...)
		return nil
	}

	if err := e.exportHelper(sheet, initFunc, writeRowFunc); err != nil {
		return err
	}

	for _, mergeCell := range merges {
		if err := e.StreamWriter.MergeCell(mergeCell.TopLeftCell, mergeCell.BottomRightCell); err != nil {
			return err
		}
	}

	if err := e.StreamWriter.Flush(); err != nil {
		return err
	}

	// the stream writer cannot hide columns; the flushed sheet can be edited directly
	for col, h := range ws.headers.cols {
		if h.IsVisible() {
			continue
		}
		if err := e.File.SetColVisible(e.CurrentSheet, columnName(col), false); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) exportUsingMemory(sheet SheetData) error {
	ws := sheet.Worksheet

	initFunc := func(sheetName string) error {
		for col, h := range ws.headers.cols {
			name := columnName(col)
			if !h.IsVisible() {
				if err := e.File.SetColWidth(sheetName, name, name, pxToChars(h.lastWidth)); err != nil {
					return err
				}
				if err := e.File.SetColVisible(sheetName, name, false); err != nil {
					return err
				}
				continue
			}
			if h.InnerWidth != ws.headers.defaultColumnWidth {
				if err := e.File.SetColWidth(sheetName, name, name, pxToChars(h.InnerWidth)); err != nil {
					return err
				}
			}
		}
		return nil
	}

	writeRowFunc := func(sheetName string, row Row) error {
		for j, cell := range row.Cells {
			cellName, _ := excelize.CoordinatesToCellName(row.Cols[j]+1, row.Index+1)
			if cell.Value != nil {
				if err := e.File.SetCellValue(sheetName, cellName, cell.Value); err != nil {
					return err
				}
			}

			if cell.StyleID > 0 {
				if err := e.File.SetCellStyle(sheetName, cellName, cellName, cell.StyleID); err != nil {
					return err
				}
			}

			if cell.Formula != "" {
				if err := e.File.SetCellFormula(sheetName, cellName, cell.Formula); err != nil {
					return err
				}
			}
		}

		for _, opts := range row.RowOpts {
			if err := e.File.SetRowHeight(sheetName, row.Index+1, opts.Height); err != nil {
				return err
			}
			if opts.Hidden {
				if err := e.File.SetRowVisible(sheetName, row.Index+1, false); err != nil {
					return err
				}
			}
		}

		for _, mergeCell := range row.MergeCells {
			if err := e.File.MergeCell(sheetName, mergeCell.TopLeftCell, mergeCell.BottomRightCell); err != nil {
				return err
			}
		}

		return nil
	}

	return e.exportHelper(sheet, initFunc, writeRowFunc)
}

func (e *Exporter) exportHelper(sheet SheetData, initFunc func(string) error, writeRowFunc func(string, Row) error) error {
	ws := sheet.Worksheet
	if ws.RowCount() > SheetMaxRows || ws.ColumnCount() > excelize.MaxColumns {
		return errors.Newf("export %dx%d sheet %q", ws.RowCount(), ws.ColumnCount(), sheet.Name).Wrap(ErrOutOfRange)
	}
	e.CurrentSheet = sheet.Name

	if err := initFunc(e.CurrentSheet); err != nil {
		return err
	}

	for rowID := range ws.RowCount() {
		row, err := e.buildRow(ws, rowID)
		if err != nil {
			return err
		}
		if row.IsEmpty() {
			continue
		}
		if err := writeRowFunc(e.CurrentSheet, row); err != nil {
			return err
		}
	}

	ws.logger.Debugf("exported %q as %q (%d styles)", ws.Name, sheet.Name, len(e.styles))
	return nil
}

// styleID returns the workbook style for key, creating it on first use.
func (e *Exporter) styleID(key styleKey) (int, error) {
	if id, ok := e.styles[key]; ok {
		return id, nil
	}
	style := &excelize.Style{}
	for _, b := range []struct {
		side  string
		style BorderStyle
	}{
		{"top", key.edges.top},
		{"bottom", key.edges.bottom},
		{"left", key.edges.left},
		{"right", key.edges.right},
	} {
		if b.style.IsEmpty() {
			continue
		}
		color := b.style.Color
		if color == "" {
			color = "000000"
		}
		style.Border = append(style.Border, excelize.Border{Type: b.side, Color: color, Style: int(b.style.Line)})
	}
	if cs := key.cell; cs != (CellStyle{}) {
		if cs.BackColor != "" {
			style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{cs.BackColor}}
		}
		if cs.Bold || cs.Italic || cs.TextColor != "" {
			style.Font = &excelize.Font{Bold: cs.Bold, Italic: cs.Italic, Color: cs.TextColor}
		}
	}
	id, err := e.File.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("failed to create style: %w", err)
	}
	e.styles[key] = id
	return id, nil
}

// pxToPoints converts a row height in pixels to points.
func pxToPoints(px int) float64 {
	return float64(px) * 72 / 96
}

// pointsToPx converts a row height in points to pixels.
func pointsToPx(points float64) int {
	return int(math.Round(points * 96 / 72))
}

// pxToChars converts a column width in pixels to character units.
func pxToChars(px int) float64 {
	return max(float64(px-5)/7, 0)
}

// charsToPx converts a column width in character units to pixels.
func charsToPx(chars float64) int {
	if chars <= 0 {
		return 0
	}
	return int(math.Round(chars*7 + 5))
}
