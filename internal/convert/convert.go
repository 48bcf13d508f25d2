// Package convert merges rows of the legacy text databases with the name
// bindings and item side tables, and emits them as YAML records.
package convert

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/csv2yaml/internal/names"
	"github.com/udisondev/csv2yaml/internal/sidetable"
	"github.com/udisondev/csv2yaml/internal/txtdb"
)

// ErrAbortFile ends the conversion of the current file. Rows already
// emitted are kept.
var ErrAbortFile = fmt.Errorf("aborting file: %w", txtdb.ErrStop)

// ErrUnknownCode is returned for numeric codes missing from the symbol tables.
var ErrUnknownCode = errors.New("unknown code")

// Appender receives converted records in order.
type Appender interface {
	Append(rec any) error
}

// Options tune the conversion.
type Options struct {
	Renewal bool // item attack column packs attack:magic attack
	Delim   byte
}

// Converter turns table rows into records. Names and side tables must be
// fully loaded before it is built; it only reads them.
type Converter struct {
	names  *names.Resolver
	tables *sidetable.Tables
	opts   Options
}

// New returns a Converter over preloaded names and side tables. A nil
// tables value behaves as empty tables.
func New(r *names.Resolver, t *sidetable.Tables, opts Options) *Converter {
	if t == nil {
		t = sidetable.New()
	}
	if opts.Delim == 0 {
		opts.Delim = txtdb.DefaultDelimiter
	}
	return &Converter{names: r, tables: t, opts: opts}
}

// sink appends records and remembers the first write failure, which ends
// the file.
type sink struct {
	out Appender
	err error
}

func (s *sink) add(rec any) error {
	if err := s.out.Append(rec); err != nil {
		s.err = err
		return fmt.Errorf("%w: %w", txtdb.ErrStop, err)
	}
	return nil
}

func (s *sink) finish(path string, res txtdb.Result, err error) (txtdb.Result, error) {
	if s.err != nil {
		return res, fmt.Errorf("writing record: %w", s.err)
	}
	if errors.Is(err, ErrAbortFile) {
		slog.Error("aborting file", "file", path, "entries", res.Entries, "err", err)
		return res, nil
	}
	return res, err
}
