package constants

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecompose_Jobs(t *testing.T) {
	assert.Empty(t, Decompose(0, Jobs))
	assert.Equal(t, []string{"Swordman", "Knight", "Crusader"}, Decompose(1<<1|1<<7|1<<14, Jobs))
	assert.Len(t, Decompose(JobMaskAll, Jobs), len(Jobs))
}

func TestDecompose_MatchesSetBits(t *testing.T) {
	for _, table := range [][]Flag{Jobs, Classes, EquipLocations} {
		var all uint64
		for _, f := range table {
			assert.Equal(t, 1, bits.OnesCount64(f.Mask), f.Name)
			all |= f.Mask
		}
		for _, mask := range []uint64{0, 1, 0x22, 0x88, 0x3F, all} {
			assert.Len(t, Decompose(mask, table), bits.OnesCount64(mask&all))
		}
	}
}

func TestItemTypeName(t *testing.T) {
	name, ok := ItemWeapon.Name()
	assert.True(t, ok)
	assert.Equal(t, "IT_WEAPON", name)

	_, ok = ItemType(1).Name()
	assert.False(t, ok)
}

func TestSexName(t *testing.T) {
	name, ok := SexName(SexFemale)
	assert.True(t, ok)
	assert.Equal(t, "SEX_FEMALE", name)

	_, ok = SexName(SexBoth)
	assert.False(t, ok)
}

func TestDropEffectString(t *testing.T) {
	assert.Equal(t, "", DropEffectNone.String())
	assert.Equal(t, "ORANGE_PILLAR", DropEffectOrangePillar.String())
	assert.Equal(t, "", DropEffect(42).String())
}
