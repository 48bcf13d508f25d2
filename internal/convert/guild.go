package convert

import (
	"fmt"

	"github.com/udisondev/csv2yaml/internal/names"
	"github.com/udisondev/csv2yaml/internal/txtdb"
)

// maxGuildSkillRequire is the number of prerequisite slots per row.
const maxGuildSkillRequire = 5

// GuildSkillTreeColumns is the column count of guild_skill_tree.txt:
// skill id, max level, then an (id, level) pair per prerequisite slot.
const GuildSkillTreeColumns = 2 + 2*maxGuildSkillRequire

// GuildSkill is one node of a GUILD_SKILL_TREE_DB document.
type GuildSkill struct {
	ID       string          `yaml:"Id"`
	MaxLevel int             `yaml:"MaxLevel"`
	Required []RequiredSkill `yaml:"Required,omitempty"`
}

// RequiredSkill is a prerequisite of a guild skill.
type RequiredSkill struct {
	ID    string `yaml:"Id"`
	Level int    `yaml:"Level"`
}

// GuildSkillTree converts a guild_skill_tree.txt file. Rows naming an
// unknown skill are skipped.
func (c *Converter) GuildSkillTree(path string, out Appender) (txtdb.Result, error) {
	s := &sink{out: out}
	cols := txtdb.Columns{Min: GuildSkillTreeColumns, Max: GuildSkillTreeColumns}
	res, err := txtdb.ReadColumns(path, c.opts.Delim, cols, func(fields []string) error {
		rec, err := c.GuildSkill(fields)
		if err != nil {
			return err
		}
		return s.add(rec)
	})
	return s.finish(path, res, err)
}

// GuildSkill converts one guild skill tree row. Prerequisite slots with a
// zero id or level are left out; the others keep their slot order.
func (c *Converter) GuildSkill(fields []string) (*GuildSkill, error) {
	if len(fields) < GuildSkillTreeColumns {
		return nil, fmt.Errorf("guild skill row has %d fields: %w", len(fields), txtdb.ErrInsufficientColumns)
	}

	name, err := c.names.MustResolve(names.Skill, uint32(txtdb.Atoi(fields[0])))
	if err != nil {
		return nil, err
	}
	node := &GuildSkill{ID: name, MaxLevel: txtdb.Atoi(fields[1])}

	for i := 0; i < maxGuildSkillRequire; i++ {
		reqID := txtdb.Atoi(fields[2+i*2])
		reqLevel := txtdb.Atoi(fields[3+i*2])
		if reqID == 0 || reqLevel == 0 {
			continue
		}
		reqName, err := c.names.MustResolve(names.Skill, uint32(reqID))
		if err != nil {
			return nil, fmt.Errorf("required skill of %s: %w", name, err)
		}
		node.Required = append(node.Required, RequiredSkill{ID: reqName, Level: reqLevel})
	}
	return node, nil
}
