package gridsheet

import "github.com/olekukonko/errors"

// Errors returned by worksheet operations. Call sites wrap them with context,
// match them with errors.Is.
var (
	// ErrOutOfRange is returned when a row, column or range lies outside the sheet.
	ErrOutOfRange = errors.New("position out of range")

	// ErrMergeConflict is returned when a merge partially overlaps an existing merged cell.
	ErrMergeConflict = errors.New("range partially overlaps a merged cell")

	// ErrReadOnly is returned when writing to a read-only worksheet or cell.
	ErrReadOnly = errors.New("worksheet or cell is read-only")

	// ErrInvalidAddress is returned when an A1-style address cannot be parsed.
	ErrInvalidAddress = errors.New("invalid cell address")

	// ErrInvariantViolation is returned by Validate when the worksheet structure is inconsistent.
	ErrInvariantViolation = errors.New("worksheet invariant violated")
)
