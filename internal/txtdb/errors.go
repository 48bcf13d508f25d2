package txtdb

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientColumns is returned when a row has fewer columns than the table needs.
	ErrInsufficientColumns = errors.New("insufficient columns")
	// ErrTooManyColumns is returned when a row has more columns than the table allows.
	ErrTooManyColumns = errors.New("too many columns")
	// ErrInvalidFormat is returned when a script column does not open with a brace.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrMismatchedBraces is returned when the last script column never balances.
	ErrMismatchedBraces = errors.New("mismatching curly braces")
	// ErrSkipRow marks a row a handler rejects as expected; it is logged as
	// a warning rather than an error.
	ErrSkipRow = errors.New("row skipped")
)

// RowError describes why a single row was rejected.
type RowError struct {
	Line   int
	ID     int    // value of the first column, 0 when unknown
	Column string // script column name for format errors
	Err    error
}

func (e *RowError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("%v (%s column) in line %d (id %d)", e.Err, e.Column, e.Line, e.ID)
	case e.ID != 0:
		return fmt.Sprintf("%v in line %d (id %d)", e.Err, e.Line, e.ID)
	default:
		return fmt.Sprintf("%v in line %d", e.Err, e.Line)
	}
}

func (e *RowError) Unwrap() error { return e.Err }
