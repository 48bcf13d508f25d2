package names

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver(t *testing.T) {
	r := NewResolver()
	r.Bind(Skill, 10000, " GD_APPROVAL ")
	r.Bind(Item, 501, "Red_Potion")

	name, ok := r.Resolve(Skill, 10000)
	assert.True(t, ok)
	assert.Equal(t, "GD_APPROVAL", name)

	_, ok = r.Resolve(Mob, 501)
	assert.False(t, ok, "kinds are separate identifier spaces")

	_, err := r.MustResolve(Item, 999)
	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, Item, unresolved.Kind)
	assert.Equal(t, uint32(999), unresolved.ID)
}

func writeTable(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func mobRow(id, name string) string {
	cols := make([]string, mobColumns)
	for i := range cols {
		cols[i] = "0"
	}
	cols[0], cols[1] = id, name
	return strings.Join(cols, ",")
}

func skillRow(id, name string) string {
	cols := make([]string, skillColumns)
	for i := range cols {
		cols[i] = "0"
	}
	cols[0], cols[skillNameCol] = id, name
	return strings.Join(cols, ",")
}

func TestPreload_OverlayWins(t *testing.T) {
	base, overlay := t.TempDir(), t.TempDir()

	src := Sources{
		Items: []string{
			writeTable(t, base, "item_db.txt",
				"// comment",
				"501,Red_Potion,Red Potion,0,50,,70,,,,,0xFFFFFFFF,63,2,,,,,,{ itemheal rand(45,65),0; },{},{}",
				"502,Orange_Potion,Orange Potion,0,200,,100,,,,,0xFFFFFFFF,63,2,,,,,,{},{},{}",
				"503,Broken,Broken,0,0",
			),
			writeTable(t, overlay, "item_db.txt",
				"502,Custom_Orange,Custom,0,200,,100,,,,,0xFFFFFFFF,63,2,,,,,,{},{},{}",
			),
			filepath.Join(overlay, "missing_item_db.txt"),
		},
		Mobs: []string{
			writeTable(t, base, "mob_db.txt", mobRow("1002", "PORING"), "1003,TOO,SHORT"),
		},
		Skills: []string{
			writeTable(t, base, "skill_db.txt", skillRow("10000", "GD_APPROVAL"), skillRow("10001", "GD_KAFRA_CONTRACT")),
			writeTable(t, overlay, "skill_db.txt", skillRow("10001", "GD_KAFRA_CONTRACT_X")),
		},
	}

	r, err := Preload(context.Background(), src, ',')
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len(Item))
	name, _ := r.Resolve(Item, 502)
	assert.Equal(t, "Custom_Orange", name)
	_, ok := r.Resolve(Item, 503)
	assert.False(t, ok, "malformed rows bind nothing")

	assert.Equal(t, 1, r.Len(Mob))
	name, _ = r.Resolve(Mob, 1002)
	assert.Equal(t, "PORING", name)

	name, _ = r.Resolve(Skill, 10001)
	assert.Equal(t, "GD_KAFRA_CONTRACT_X", name)
}

func TestPreload_UnreadableTableIsSkipped(t *testing.T) {
	base, overlay := t.TempDir(), t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "item_db.txt"), 0o755))

	src := Sources{
		Items: []string{
			filepath.Join(base, "item_db.txt"),
			writeTable(t, overlay, "item_db.txt", "501,Red_Potion,Red Potion,0,50,,70,,,,,0xFFFFFFFF,63,2,,,,,,{},{},{}"),
		},
		Mobs: []string{writeTable(t, base, "mob_db.txt", mobRow("1002", "PORING"))},
	}

	r, err := Preload(context.Background(), src, ',')
	require.NoError(t, err)

	name, ok := r.Resolve(Item, 501)
	assert.True(t, ok)
	assert.Equal(t, "Red_Potion", name)
	assert.Equal(t, 1, r.Len(Mob))
}
