package gridsheet

import (
	"io"

	"github.com/olekukonko/ll"
	"github.com/olekukonko/ll/lh"
)

// Option configures a Worksheet.
type Option func(*Worksheet)

// WithDefaultRowHeight sets the height in pixels given to new rows.
func WithDefaultRowHeight(height int) Option {
	return func(ws *Worksheet) {
		if height > 0 {
			ws.headers.defaultRowHeight = height
		}
	}
}

// WithDefaultColumnWidth sets the width in pixels given to new columns.
func WithDefaultColumnWidth(width int) Option {
	return func(ws *Worksheet) {
		if width > 0 {
			ws.headers.defaultColumnWidth = width
		}
	}
}

// WithSelectionMode sets the initial selection mode.
func WithSelectionMode(mode SelectionMode) Option {
	return func(ws *Worksheet) {
		ws.selection.Mode = mode
	}
}

// WithReadOnly makes the worksheet reject every content edit.
func WithReadOnly(readOnly bool) Option {
	return func(ws *Worksheet) {
		ws.readOnly = readOnly
	}
}

// WithViewportSize sets the visible area used by page up/down navigation.
func WithViewportSize(width, height int) Option {
	return func(ws *Worksheet) {
		ws.viewWidth, ws.viewHeight = width, height
	}
}

// WithLogger replaces the worksheet trace logger.
func WithLogger(logger *ll.Logger) Option {
	return func(ws *Worksheet) {
		if logger != nil {
			ws.logger = logger
		}
	}
}

// WithDebug enables trace logging to w.
func WithDebug(w io.Writer) Option {
	return func(ws *Worksheet) {
		if w == nil {
			return
		}
		ws.logger = ll.New("worksheet").Handler(lh.NewTextHandler(w))
		ws.logger.Enable()
		ws.logger.Resume()
	}
}

func newDisabledLogger() *ll.Logger {
	logger := ll.New("worksheet")
	logger.Disable()
	logger.Suspend()
	return logger
}
