package txtdb

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// maxLineSize bounds a single row. Script columns can be long.
const maxLineSize = 1 << 20

// ErrStop is wrapped by row handlers that want the rest of the file skipped.
var ErrStop = errors.New("stop reading file")

// Result counts what happened to the rows of one file.
type Result struct {
	Entries int  // rows accepted by the handler
	Skipped int  // rows rejected by the tokenizer or the handler
	Aborted bool // the handler stopped the file early
}

// Columns bounds the column count accepted by ReadColumns.
type Columns struct {
	Min, Max int
}

// ReadScripted tokenizes every data row of path with layout and hands the
// fields to fn. Rejected rows are logged and skipped. An fn error wrapping
// ErrStop ends the file; it is returned together with the partial Result.
func ReadScripted(path string, layout Scripted, fn func(line int, fields []string) error) (Result, error) {
	var res Result
	err := eachLine(path, func(n int, line string) error {
		fields, ok, err := layout.Split(line)
		if !ok {
			return nil
		}
		if err != nil {
			res.Skipped++
			logRowError(path, n, err)
			return nil
		}
		if err := fn(n, fields); err != nil {
			res.Skipped++
			if errors.Is(err, ErrStop) {
				res.Aborted = true
				return err
			}
			logRowError(path, n, err)
			return nil
		}
		res.Entries++
		return nil
	})
	return res, err
}

// ReadColumns reads a plain delimited table. Rows whose column count falls
// outside cols are rejected before fn runs; fn errors skip the row.
func ReadColumns(path string, delim byte, cols Columns, fn func(fields []string) error) (Result, error) {
	var res Result
	err := eachLine(path, func(n int, line string) error {
		line, ok := StripComment(line)
		if !ok {
			return nil
		}
		fields := SplitColumns(line, delim)
		switch {
		case len(fields) < cols.Min:
			res.Skipped++
			logRowError(path, n, fmt.Errorf("%w (found %d, need at least %d)", ErrInsufficientColumns, len(fields), cols.Min))
			return nil
		case cols.Max > 0 && len(fields) > cols.Max:
			res.Skipped++
			logRowError(path, n, fmt.Errorf("%w (found %d, maximum is %d)", ErrTooManyColumns, len(fields), cols.Max))
			return nil
		}
		if err := fn(fields); err != nil {
			res.Skipped++
			logRowError(path, n, fmt.Errorf("could not process contents: %w", err))
			return nil
		}
		res.Entries++
		return nil
	})
	return res, err
}

func eachLine(path string, fn func(n int, line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	n := 0
	for sc.Scan() {
		n++
		if err := fn(n, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

func logRowError(path string, line int, err error) {
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		rowErr.Line = line
	}
	if errors.Is(err, ErrSkipRow) {
		slog.Warn("skipping row", "file", path, "line", line, "err", err)
		return
	}
	slog.Error("skipping row", "file", path, "line", line, "err", err)
}
