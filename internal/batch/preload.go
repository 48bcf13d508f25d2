package batch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/udisondev/csv2yaml/internal/config"
	"github.com/udisondev/csv2yaml/internal/convert"
	"github.com/udisondev/csv2yaml/internal/names"
	"github.com/udisondev/csv2yaml/internal/sidetable"
)

const itemTable = "item_db.txt"

// NameSources lists the name-bearing tables of cfg: the mode directory
// first, then the import overlay.
func NameSources(cfg config.Config) names.Sources {
	dirs := []string{cfg.BaseDir(), cfg.ImportPath()}
	var src names.Sources
	for _, d := range dirs {
		src.Items = append(src.Items, filepath.Join(d, itemTable))
		src.Mobs = append(src.Mobs, filepath.Join(d, "mob_db.txt"))
		src.Skills = append(src.Skills, filepath.Join(d, "skill_db.txt"))
	}
	return src
}

// SideTableLocations lists where item side tables are read from. A
// location is used only if it holds an item table. item_nouse.txt is read
// from the database root for the mode directory and never from the
// overlay.
func SideTableLocations(cfg config.Config) []sidetable.Location {
	var locs []sidetable.Location
	if fileExists(filepath.Join(cfg.BaseDir(), itemTable)) {
		locs = append(locs, sidetable.Location{Dir: cfg.BaseDir(), NoUseDir: cfg.RootDir()})
	}
	if fileExists(filepath.Join(cfg.ImportPath(), itemTable)) {
		locs = append(locs, sidetable.Location{Dir: cfg.ImportPath()})
	}
	return locs
}

// Prepare loads every name binding and side table cfg points at and
// returns a Converter over them.
func Prepare(ctx context.Context, cfg config.Config) (*convert.Converter, error) {
	r, err := names.Preload(ctx, NameSources(cfg), cfg.Delim())
	if err != nil {
		return nil, fmt.Errorf("loading name bindings: %w", err)
	}
	t, err := sidetable.Load(ctx, SideTableLocations(cfg), cfg.Delim())
	if err != nil {
		return nil, fmt.Errorf("loading side tables: %w", err)
	}
	return convert.New(r, t, convert.Options{
		Renewal: cfg.Renewal(),
		Delim:   cfg.Delim(),
	}), nil
}
