package sidetable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/csv2yaml/internal/txtdb"
)

// Location is one source root of side tables.
type Location struct {
	Dir      string // holds every table except item_nouse.txt
	NoUseDir string // holds item_nouse.txt; empty skips that table
}

type table struct {
	file  string
	cols  txtdb.Columns
	nouse bool
	parse func(*Tables, []string) error
}

var tables = []table{
	{file: "item_buyingstore.txt", cols: txtdb.Columns{Min: 1, Max: 1}, parse: parseBuyingStore},
	{file: "item_flag.txt", cols: txtdb.Columns{Min: 2, Max: 2}, parse: parseFlag},
	{file: "item_delay.txt", cols: txtdb.Columns{Min: 2, Max: 3}, parse: parseDelay},
	{file: "item_stack.txt", cols: txtdb.Columns{Min: 3, Max: 3}, parse: parseStack},
	{file: "item_nouse.txt", cols: txtdb.Columns{Min: 3, Max: 3}, nouse: true, parse: parseNoUse},
	{file: "item_trade.txt", cols: txtdb.Columns{Min: 3, Max: 3}, parse: parseTrade},
}

// Load reads every side table from locs. Tables are independent and load
// concurrently; within a table the locations load in order, so a later
// location replaces entries of an earlier one. Files that are missing
// or unreadable are logged and leave the table without those entries.
func Load(ctx context.Context, locs []Location, delim byte) (*Tables, error) {
	t := New()

	g, ctx := errgroup.WithContext(ctx)
	for _, tbl := range tables {
		g.Go(func() error {
			for _, loc := range locs {
				if err := ctx.Err(); err != nil {
					return err
				}
				dir := loc.Dir
				if tbl.nouse {
					dir = loc.NoUseDir
				}
				if dir == "" {
					continue
				}
				if err := loadFile(t, tbl, filepath.Join(dir, tbl.file), delim); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("loaded item side tables",
		"buyingstore", len(t.BuyingStore),
		"flag", len(t.Flags),
		"delay", len(t.Delays),
		"stack", len(t.Stacks),
		"nouse", len(t.NoUses),
		"trade", len(t.Trades),
	)
	return t, nil
}

func loadFile(t *Tables, tbl table, path string, delim byte) error {
	res, err := txtdb.ReadColumns(path, delim, tbl.cols, func(fields []string) error {
		return tbl.parse(t, fields)
	})
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("side table not found, skipping", "file", path)
		return nil
	case err != nil:
		slog.Warn("side table unreadable, keeping entries read so far", "file", path, "entries", res.Entries, "err", err)
		return nil
	}
	slog.Info("done reading side table", "file", path, "entries", res.Entries, "skipped", res.Skipped)
	return nil
}

// LoadFile reads a single side table file into t. The table is picked by
// file name (for example "item_flag.txt").
func (t *Tables) LoadFile(path string, delim byte) error {
	name := filepath.Base(path)
	for _, tbl := range tables {
		if tbl.file == name {
			return loadFile(t, tbl, path, delim)
		}
	}
	return fmt.Errorf("unknown side table %q", name)
}
