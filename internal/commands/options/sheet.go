package options

import (
	"github.com/spf13/cobra"
)

// SheetOptions selects a sheet of the input workbook.
type SheetOptions struct {
	Sheet string
}

func AddSheetArgs(cmd *cobra.Command, o *SheetOptions) {
	cmd.Flags().StringVarP(&o.Sheet, "sheet", "s", "",
		"Sheet to load (default is the active sheet).")
}

// InspectOptions
type InspectOptions struct {
	Validate bool
	Borders  bool
}

func AddInspectArgs(cmd *cobra.Command, o *InspectOptions) {
	cmd.Flags().BoolVar(&o.Validate, "validate", false,
		"Check merge and border invariants.")
	cmd.Flags().BoolVar(&o.Borders, "borders", true,
		"List border runs.")
}

// ConvertOptions
type ConvertOptions struct {
	Stream bool
	Sheets []string
}

func AddConvertArgs(cmd *cobra.Command, o *ConvertOptions) {
	cmd.Flags().BoolVar(&o.Stream, "stream", false,
		"Write rows with the excelize stream writer.")
	cmd.Flags().StringSliceVar(&o.Sheets, "sheets", nil,
		"Sheets to convert (default is every sheet).")
}

// ResolveStream applies the configured default unless --stream was given.
func (o *ConvertOptions) ResolveStream(cmd *cobra.Command, configured bool) bool {
	if cmd.Flags().Changed("stream") {
		return o.Stream
	}
	return configured
}

// MoveOptions
type MoveOptions struct {
	Moves  []string
	Times  int
	Append bool
}

func AddMoveArgs(cmd *cobra.Command, o *MoveOptions) {
	cmd.Flags().StringSliceVarP(&o.Moves, "move", "m", nil,
		"Moves to apply: up, down, left, right, forward, backward, home, end, top, bottom, pageup, pagedown.")
	cmd.Flags().IntVarP(&o.Times, "times", "n", 1,
		"Repeat the moves this many times.")
	cmd.Flags().BoolVarP(&o.Append, "append", "a", false,
		"Extend the selection instead of moving it.")
}
