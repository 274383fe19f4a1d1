// Package navigate replays cursor moves on a worksheet loaded from xlsx.
package navigate

import (
	"context"
	"fmt"

	"github.com/xelarion/gridsheet"
	"github.com/xelarion/gridsheet/internal/printers"
)

// Navigate selects Range, applies Moves Times times and prints the result.
type Navigate struct {
	Path   string
	Sheet  string
	Range  string
	Moves  []string
	Times  int
	Append bool

	Options []gridsheet.Option
	Printer *printers.PrettyPrint
}

// Do runs the moves. Unknown move names fail before the workbook is read.
func (n *Navigate) Do(_ context.Context) error {
	moves := make([]func(*gridsheet.Worksheet), 0, len(n.Moves))
	for _, name := range n.Moves {
		move, err := n.move(name)
		if err != nil {
			return err
		}
		moves = append(moves, move)
	}

	ws, err := gridsheet.ImportFile(n.Path, n.Sheet, n.Options...)
	if err != nil {
		return err
	}
	if n.Range != "" {
		if err := ws.SelectRangeByAddress(n.Range); err != nil {
			return err
		}
	}
	for range max(n.Times, 1) {
		for _, move := range moves {
			move(ws)
		}
	}

	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}
	pp.Selection(ws)
	return nil
}

func (n *Navigate) move(name string) (func(*gridsheet.Worksheet), error) {
	appendSelect := n.Append
	if dir, ok := gridsheet.ParseDirection(name); ok {
		return func(ws *gridsheet.Worksheet) {
			switch dir {
			case gridsheet.DirectionUp:
				ws.MoveSelectionUp(appendSelect)
			case gridsheet.DirectionDown:
				ws.MoveSelectionDown(appendSelect)
			case gridsheet.DirectionLeft:
				ws.MoveSelectionLeft(appendSelect)
			case gridsheet.DirectionRight:
				ws.MoveSelectionRight(appendSelect)
			}
		}, nil
	}

	switch name {
	case "forward":
		return (*gridsheet.Worksheet).MoveSelectionForward, nil
	case "backward":
		return (*gridsheet.Worksheet).MoveSelectionBackward, nil
	case "home":
		return func(ws *gridsheet.Worksheet) { ws.MoveSelectionHome(gridsheet.AxisRow, appendSelect) }, nil
	case "end":
		return func(ws *gridsheet.Worksheet) { ws.MoveSelectionEnd(gridsheet.AxisRow, appendSelect) }, nil
	case "top":
		return func(ws *gridsheet.Worksheet) { ws.MoveSelectionHome(gridsheet.AxisColumn, appendSelect) }, nil
	case "bottom":
		return func(ws *gridsheet.Worksheet) { ws.MoveSelectionEnd(gridsheet.AxisColumn, appendSelect) }, nil
	case "pageup":
		return func(ws *gridsheet.Worksheet) { ws.MoveSelectionPageUp(appendSelect) }, nil
	case "pagedown":
		return func(ws *gridsheet.Worksheet) { ws.MoveSelectionPageDown(appendSelect) }, nil
	}
	return nil, fmt.Errorf("unknown move %q", name)
}
