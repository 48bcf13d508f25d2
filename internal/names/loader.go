package names

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/csv2yaml/internal/txtdb"
)

// Column layout of the tables names are taken from.
const (
	mobColumns   = 57 // 31 + 2*MVP drops(3) + 2*drops(10)
	mobNameCol   = 1
	skillColumns = 18
	skillNameCol = 16
)

// ItemTable is the layout of item_db.txt.
func ItemTable(delim byte) txtdb.Scripted {
	return txtdb.Scripted{
		Leading: 19,
		Scripts: []string{"Script", "OnEquip_Script", "OnUnequip_Script"},
		Delim:   delim,
	}
}

// Sources lists the name-bearing tables per kind, in load order. Later
// files override earlier ones.
type Sources struct {
	Items  []string
	Mobs   []string
	Skills []string
}

// Preload fills a new Resolver from src. The three kinds are independent
// and load concurrently; within a kind files load in order. Missing files
// or unreadable files are logged and skipped.
func Preload(ctx context.Context, src Sources, delim byte) (*Resolver, error) {
	r := NewResolver()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loadAll(ctx, src.Items, func(p string) (txtdb.Result, error) { return LoadItems(r, p, delim) }) })
	g.Go(func() error { return loadAll(ctx, src.Mobs, func(p string) (txtdb.Result, error) { return LoadMobs(r, p, delim) }) })
	g.Go(func() error { return loadAll(ctx, src.Skills, func(p string) (txtdb.Result, error) { return LoadSkills(r, p, delim) }) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("loaded name bindings",
		"items", r.Len(Item),
		"mobs", r.Len(Mob),
		"skills", r.Len(Skill),
	)
	return r, nil
}

func loadAll(ctx context.Context, paths []string, load func(path string) (txtdb.Result, error)) error {
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := load(p)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Warn("name table not found, skipping", "file", p)
			continue
		case err != nil:
			slog.Warn("name table unreadable, keeping bindings read so far", "file", p, "entries", res.Entries, "err", err)
			continue
		}
		slog.Info("done reading name table", "file", p, "entries", res.Entries, "skipped", res.Skipped)
	}
	return nil
}

// LoadItems binds item names from an item_db.txt file. The script columns
// are tokenized so that malformed rows are rejected exactly as the item
// converter rejects them.
func LoadItems(r *Resolver, path string, delim byte) (txtdb.Result, error) {
	return txtdb.ReadScripted(path, ItemTable(delim), func(_ int, fields []string) error {
		r.Bind(Item, uint32(txtdb.Atoi(fields[0])), fields[1])
		return nil
	})
}

// LoadMobs binds monster names from a mob_db.txt file.
func LoadMobs(r *Resolver, path string, delim byte) (txtdb.Result, error) {
	return txtdb.ReadColumns(path, delim, txtdb.Columns{Min: mobColumns, Max: mobColumns}, func(fields []string) error {
		r.Bind(Mob, uint32(txtdb.Atoi(fields[0])), fields[mobNameCol])
		return nil
	})
}

// LoadSkills binds skill names from a skill_db.txt file.
func LoadSkills(r *Resolver, path string, delim byte) (txtdb.Result, error) {
	return txtdb.ReadColumns(path, delim, txtdb.Columns{Min: skillColumns, Max: skillColumns}, func(fields []string) error {
		if fields[skillNameCol] == "" {
			return fmt.Errorf("skill %s has no name", fields[0])
		}
		r.Bind(Skill, uint32(txtdb.Atoi(fields[0])), fields[skillNameCol])
		return nil
	})
}
