package convert

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/csv2yaml/internal/names"
	"github.com/udisondev/csv2yaml/internal/txtdb"
)

const poringRow = "1002,PORING,Poring,619,9001,10013,537,80,60,50,100,250,20,2000,150,1,0,350,400,800,{ petloot 10; },{ bonus bLuk,2; }"

func petFields(t *testing.T, row string) []string {
	t.Helper()
	fields, ok, err := PetTable(',').Split(row)
	require.True(t, ok)
	require.NoError(t, err)
	return fields
}

func TestPet_Defaults(t *testing.T) {
	p, err := New(newResolver(), nil, Options{}).Pet(petFields(t, poringRow))
	require.NoError(t, err)

	assert.Equal(t, "PORING", p.Mob)
	assert.Equal(t, "Unripe_Apple", p.TameItem)
	assert.Equal(t, "Poring_Egg", p.EggItem)
	assert.Equal(t, "Backpack", p.EquipItem)
	assert.Equal(t, "Pet_Food", p.FoodItem)
	assert.Equal(t, 80, p.Fullness)
	assert.Equal(t, 50, p.IntimacyFed)
	assert.Equal(t, 2000, p.CaptureRate)
	assert.Equal(t, 350, p.AttackRate)
	assert.Equal(t, 400, p.RetaliateRate)
	assert.Equal(t, 800, p.ChangeTargetRate)

	assert.Nil(t, p.HungryDelay)
	assert.Nil(t, p.IntimacyStart)
	assert.Nil(t, p.IntimacyOverfed)
	assert.Nil(t, p.IntimacyOwnerDie)
	assert.Nil(t, p.SpecialPerformance)

	assert.EqualValues(t, " bonus bLuk,2; ", p.Script)
	assert.EqualValues(t, " petloot 10; ", p.SupportScript)
}

func TestPet_NonDefaults(t *testing.T) {
	row := strings.Replace(poringRow, ",80,60,50,100,250,20,2000,150,1,", ",80,30,50,90,100,15,2000,150,0,", 1)
	p, err := New(newResolver(), nil, Options{}).Pet(petFields(t, row))
	require.NoError(t, err)

	require.NotNil(t, p.HungryDelay)
	assert.Equal(t, 30, *p.HungryDelay)
	require.NotNil(t, p.IntimacyStart)
	assert.Equal(t, 100, *p.IntimacyStart)
	require.NotNil(t, p.IntimacyOverfed)
	assert.Equal(t, -90, *p.IntimacyOverfed)
	require.NotNil(t, p.IntimacyOwnerDie)
	assert.Equal(t, -15, *p.IntimacyOwnerDie)
	require.NotNil(t, p.SpecialPerformance)
	assert.False(t, *p.SpecialPerformance)
}

func TestPet_OptionalItems(t *testing.T) {
	row := strings.Replace(poringRow, "1002,PORING,Poring,619,9001,10013,537,", "1002,PORING,Poring,0,9001,0,0,", 1)
	p, err := New(newResolver(), nil, Options{}).Pet(petFields(t, row))
	require.NoError(t, err)

	assert.Empty(t, p.TameItem)
	assert.Empty(t, p.EquipItem)
	assert.Empty(t, p.FoodItem)
	assert.Equal(t, "Poring_Egg", p.EggItem)
}

func TestPet_UnknownMobSkipsRow(t *testing.T) {
	row := strings.Replace(poringRow, "1002,", "4444,", 1)
	_, err := New(newResolver(), nil, Options{}).Pet(petFields(t, row))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAbortFile))
	assert.ErrorIs(t, err, txtdb.ErrSkipRow)
}

func TestPets_UnknownMobIsWarning(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := writeFile(t, "pet_db.txt", strings.Replace(poringRow, "1002,", "4444,", 1))
	res, err := New(newResolver(), nil, Options{}).Pets(path, &collector{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "invalid mob-class 4444")
	assert.NotContains(t, logs.String(), "level=ERROR")
}

func TestPet_UnknownItemAbortsFile(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{"tame", ",619,", ",7777,"},
		{"egg", ",9001,", ",7777,"},
		{"equip", ",10013,", ",7777,"},
		{"food", ",537,", ",7777,"},
		{"egg zero", ",9001,", ",0,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := strings.Replace(poringRow, tt.from, tt.to, 1)
			_, err := New(newResolver(), nil, Options{}).Pet(petFields(t, row))
			require.ErrorIs(t, err, ErrAbortFile)
			var unresolved *names.UnresolvedError
			require.ErrorAs(t, err, &unresolved)
			assert.Equal(t, names.Item, unresolved.Kind)
		})
	}
}

func TestPets_File(t *testing.T) {
	path := writeFile(t, "pet_db.txt",
		"// mob,name,...",
		poringRow,
		strings.Replace(poringRow, "1002,", "4444,", 1),
		strings.Replace(poringRow, ",537,", ",7777,", 1),
		poringRow,
	)
	out := &collector{}
	res, err := New(newResolver(), nil, Options{}).Pets(path, out)
	require.NoError(t, err)

	assert.Len(t, out.recs, 1)
	assert.Equal(t, 1, res.Entries)
	assert.Equal(t, 2, res.Skipped)
	assert.True(t, res.Aborted)
}

type failingAppender struct{ calls int }

func (f *failingAppender) Append(any) error {
	f.calls++
	return errors.New("disk full")
}

func TestPets_WriteFailure(t *testing.T) {
	path := writeFile(t, "pet_db.txt", poringRow, poringRow)
	out := &failingAppender{}

	_, err := New(newResolver(), nil, Options{}).Pets(path, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, out.calls)
}
