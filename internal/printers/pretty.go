// Package printers renders worksheet structure as aligned terminal tables.
package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/xelarion/gridsheet"
)

// PrettyPrint writes tables to Out.
type PrettyPrint struct {
	Out io.Writer
}

// New returns a PrettyPrint writing to the color-aware stdout.
func New() *PrettyPrint {
	return &PrettyPrint{Out: color.Output}
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.Out, tbl)
	_, _ = fmt.Fprintln(pp.Out, "")
}

// Title prints a bold underlined heading.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.Out, title)
}

// None prints a faint placeholder for an empty listing.
func (pp *PrettyPrint) None() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.Out, " none\n\n")
}

// Summary prints the size and header geometry of ws.
func (pp *PrettyPrint) Summary(ws *gridsheet.Worksheet) {
	bold := color.New(color.Bold)
	hiddenRows, hiddenCols := 0, 0
	for row := range ws.RowCount() {
		if !ws.RowHeader(row).IsVisible() {
			hiddenRows++
		}
	}
	for col := range ws.ColumnCount() {
		if !ws.ColumnHeader(col).IsVisible() {
			hiddenCols++
		}
	}
	cells := 0
	for range ws.Cells(ws.Range(), false) {
		cells++
	}

	pp.Title(ws.Name)
	tbl := pp.table()
	tbl.AddRow(bold.Sprint("Rows"), ws.RowCount(), fmt.Sprintf("%d hidden", hiddenRows))
	tbl.AddRow(bold.Sprint("Columns"), ws.ColumnCount(), fmt.Sprintf("%d hidden", hiddenCols))
	tbl.AddRow(bold.Sprint("Cells"), cells, "")
	tbl.AddRow(bold.Sprint("Merges"), len(ws.MergedRanges(ws.Range())), "")
	tbl.RightAlign(1)
	pp.flush(tbl)
}

// Merges prints every merged region of ws with its anchor text.
func (pp *PrettyPrint) Merges(ws *gridsheet.Worksheet) {
	pp.Title("Merged ranges")
	merges := ws.MergedRanges(ws.Range())
	if len(merges) == 0 {
		pp.None()
		return
	}

	bold := color.New(color.Bold)
	tbl := pp.table()
	tbl.AddRow(bold.Sprint("Range"), bold.Sprint("Size"), bold.Sprint("Value"))
	for _, m := range merges {
		text := ""
		if c := ws.Cell(m.Row, m.Col); c != nil {
			text = c.DisplayText()
		}
		tbl.AddRow(m.String(), fmt.Sprintf("%dx%d", m.Rows, m.Cols), text)
	}
	pp.flush(tbl)
}

// Borders prints the border runs of one orientation, one line per run.
func (pp *PrettyPrint) Borders(ws *gridsheet.Worksheet, o gridsheet.Orientation) {
	pp.Title(fmt.Sprintf("%s borders", o))

	bold := color.New(color.Bold)
	tbl := pp.table()
	tbl.AddRow(bold.Sprint("From"), bold.Sprint("To"), bold.Sprint("Line"), bold.Sprint("Color"), bold.Sprint("Span"), bold.Sprint("Owner"))
	runs := 0
	for pos, seg := range ws.Borders(o) {
		if continuesRun(ws, pos, seg, o) {
			continue
		}
		end := pos.Offset(0, seg.Span-1)
		if o == gridsheet.Vertical {
			end = pos.Offset(seg.Span-1, 0)
		}
		tbl.AddRow(slotName(pos), slotName(end), seg.Style.Line, colorName(seg.Style.Color), seg.Span, ownerName(seg.Owner))
		runs++
	}
	if runs == 0 {
		pp.None()
		return
	}
	tbl.RightAlign(4)
	pp.flush(tbl)
}

// Selection prints the selection range and focus of ws.
func (pp *PrettyPrint) Selection(ws *gridsheet.Worksheet) {
	bold := color.New(color.Bold)
	sel := ws.Selection()

	tbl := pp.table()
	tbl.AddRow(bold.Sprint("Mode"), sel.Mode)
	tbl.AddRow(bold.Sprint("Range"), sel.Range)
	tbl.AddRow(bold.Sprint("Focus"), sel.Focus)
	if c := ws.Cell(sel.Focus.Row, sel.Focus.Col); c != nil && c.Data != nil {
		tbl.AddRow(bold.Sprint("Value"), c.DisplayText())
	}
	pp.flush(tbl)
}

// Valid prints the outcome of a structural check.
func (pp *PrettyPrint) Valid(err error) {
	if err != nil {
		_, _ = color.New(color.FgRed, color.Bold).Fprintf(pp.Out, "invalid: %v\n", err)
		return
	}
	_, _ = color.New(color.FgGreen).Fprintln(pp.Out, "valid")
}

// continuesRun reports whether the slot before pos belongs to the same run.
func continuesRun(ws *gridsheet.Worksheet, pos gridsheet.CellPosition, seg *gridsheet.BorderSegment, o gridsheet.Orientation) bool {
	prev := pos.Offset(0, -1)
	if o == gridsheet.Vertical {
		prev = pos.Offset(-1, 0)
	}
	if prev.Row < 0 || prev.Col < 0 {
		return false
	}
	style, span := ws.Border(prev.Row, prev.Col, o)
	return style == seg.Style && span == seg.Span+1
}

func slotName(pos gridsheet.CellPosition) string {
	return fmt.Sprintf("%d,%d", pos.Row, pos.Col)
}

func colorName(c string) string {
	if c == "" {
		return "auto"
	}
	return "#" + c
}

func ownerName(o gridsheet.BorderOwner) string {
	switch o {
	case gridsheet.OwnerBefore:
		return "before"
	case gridsheet.OwnerAfter:
		return "after"
	case gridsheet.OwnerBoth:
		return "both"
	}
	return "-"
}
