// Package batch discovers legacy tables under the configured source roots
// and drives their conversion into YAML documents.
package batch

import (
	"fmt"
	"sort"

	"github.com/udisondev/csv2yaml/internal/config"
	"github.com/udisondev/csv2yaml/internal/convert"
	"github.com/udisondev/csv2yaml/internal/txtdb"
)

// ConvertFunc converts the table at path into out.
type ConvertFunc func(c *convert.Converter, path string, out convert.Appender) (txtdb.Result, error)

// Job converts one kind of legacy table.
type Job struct {
	Name    string // table name; the source is Name.txt, the result Name.yml
	Desc    string
	Type    string // document header type
	Version uint32
	Roots   func(cfg config.Config) []string
	Convert ConvertFunc
}

var jobs []Job

func registerJob(j Job) {
	jobs = append(jobs, j)
}

func init() {
	registerJob(Job{
		Name:    "guild_skill_tree",
		Desc:    "Guild skill tree (guild_skill_tree.txt)",
		Type:    "GUILD_SKILL_TREE_DB",
		Version: 1,
		Roots:   rootAndImport,
		Convert: (*convert.Converter).GuildSkillTree,
	})
	registerJob(Job{
		Name:    "pet_db",
		Desc:    "Pet database (pet_db.txt)",
		Type:    "PET_DB",
		Version: 1,
		Roots:   modeAndImport,
		Convert: (*convert.Converter).Pets,
	})
	registerJob(Job{
		Name:    "item_db",
		Desc:    "Item database merged with item side tables (item_db.txt)",
		Type:    "ITEM_DB",
		Version: 1,
		Roots:   modeAndImport,
		Convert: (*convert.Converter).Items,
	})
}

func rootAndImport(cfg config.Config) []string {
	return []string{cfg.RootDir(), cfg.ImportPath()}
}

func modeAndImport(cfg config.Config) []string {
	return []string{cfg.BaseDir(), cfg.ImportPath()}
}

// Jobs returns every registered job in processing order.
func Jobs() []Job {
	return append([]Job(nil), jobs...)
}

// Select returns the jobs named in args, in processing order. "all"
// selects every job.
func Select(args []string) ([]Job, error) {
	want := make(map[string]bool, len(args))
	for _, a := range args {
		if a == "all" {
			return Jobs(), nil
		}
		want[a] = true
	}

	var out []Job
	for _, j := range jobs {
		if want[j.Name] {
			out = append(out, j)
			delete(want, j.Name)
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for name := range want {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown job: %v", unknown)
	}
	return out, nil
}
