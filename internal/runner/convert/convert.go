// Package convert re-exports workbook sheets through the worksheet engine.
package convert

import (
	"context"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/xelarion/gridsheet"
)

// Convert reads sheets from Input and writes them to Output.
type Convert struct {
	Input  string
	Output string
	// Sheets limits the conversion; empty converts every sheet in workbook order.
	Sheets  []string
	Stream  bool
	Options []gridsheet.Option

	// Converted lists the sheets written by the last Do.
	Converted []string
}

// Do runs the conversion.
func (c *Convert) Do(ctx context.Context) error {
	if c.Output == "" {
		return fmt.Errorf("no output file given")
	}
	f, err := excelize.OpenFile(c.Input)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Input, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(c.Sheets) > 0 {
		for _, name := range c.Sheets {
			if !slices.Contains(names, name) {
				return fmt.Errorf("sheet %q not found in %s", name, c.Input)
			}
		}
		names = c.Sheets
	}

	sheets := make([]gridsheet.SheetData, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		ws, err := gridsheet.Import(f, name, c.Options...)
		if err != nil {
			return fmt.Errorf("failed to import sheet %q: %w", name, err)
		}
		sheets = append(sheets, gridsheet.SheetData{Name: name, Worksheet: ws})
	}

	exporter := gridsheet.NewExporter(c.Output, c.Stream)
	if err := exporter.Export(sheets); err != nil {
		return fmt.Errorf("failed to export %s: %w", c.Output, err)
	}
	c.Converted = names
	return nil
}
