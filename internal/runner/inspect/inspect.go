// Package inspect prints the structure of a worksheet loaded from xlsx.
package inspect

import (
	"context"

	"github.com/xelarion/gridsheet"
	"github.com/xelarion/gridsheet/internal/printers"
)

// Inspect loads one sheet and prints its size, merges and border runs.
type Inspect struct {
	Path     string
	Sheet    string
	Validate bool
	Borders  bool
	Options  []gridsheet.Option
	Printer  *printers.PrettyPrint
}

// Do runs the inspection.
func (i *Inspect) Do(_ context.Context) error {
	ws, err := gridsheet.ImportFile(i.Path, i.Sheet, i.Options...)
	if err != nil {
		return err
	}
	pp := i.Printer
	if pp == nil {
		pp = printers.New()
	}

	pp.Summary(ws)
	pp.Merges(ws)
	if i.Borders {
		pp.Borders(ws, gridsheet.Horizontal)
		pp.Borders(ws, gridsheet.Vertical)
	}
	if i.Validate {
		err = ws.Validate()
		pp.Valid(err)
		return err
	}
	return nil
}
