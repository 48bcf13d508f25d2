package convert

import (
	"fmt"

	"github.com/udisondev/csv2yaml/internal/names"
	"github.com/udisondev/csv2yaml/internal/txtdb"
	"github.com/udisondev/csv2yaml/internal/yamldoc"
)

// Pet table columns.
const (
	colPetMob = iota
	colPetName
	colPetJName
	colPetTameItem
	colPetEggItem
	colPetEquipItem
	colPetFoodItem
	colPetFullness
	colPetHungryDelay
	colPetIntimacyFed
	colPetIntimacyOverfed
	colPetIntimacyStart
	colPetIntimacyOwnerDie
	colPetCaptureRate
	colPetSpeed
	colPetSpecialPerformance
	colPetTalkConvert
	colPetAttackRate
	colPetRetaliateRate
	colPetChangeTargetRate
	colPetSupportScript
	colPetScript
)

// Values the pet database assumes when a field is absent. Overfed and
// owner death penalties are stored as positive magnitudes.
const (
	defaultHungryDelay      = 60
	defaultIntimacyStart    = 250
	defaultIntimacyOverfed  = 100
	defaultIntimacyOwnerDie = 20
)

// PetTable is the layout of pet_db.txt.
func PetTable(delim byte) txtdb.Scripted {
	return txtdb.Scripted{
		Leading: 20,
		Scripts: []string{"Pet_Script", "Loyal_Script"},
		Delim:   delim,
	}
}

// Pet is one entry of a PET_DB document.
type Pet struct {
	Mob                string          `yaml:"Mob"`
	TameItem           string          `yaml:"TameItem,omitempty"`
	EggItem            string          `yaml:"EggItem"`
	EquipItem          string          `yaml:"EquipItem,omitempty"`
	FoodItem           string          `yaml:"FoodItem,omitempty"`
	Fullness           int             `yaml:"Fullness"`
	HungryDelay        *int            `yaml:"HungryDelay,omitempty"`
	IntimacyStart      *int            `yaml:"IntimacyStart,omitempty"`
	IntimacyFed        int             `yaml:"IntimacyFed"`
	IntimacyOverfed    *int            `yaml:"IntimacyOverfed,omitempty"`
	IntimacyOwnerDie   *int            `yaml:"IntimacyOwnerDie,omitempty"`
	CaptureRate        int             `yaml:"CaptureRate"`
	SpecialPerformance *bool           `yaml:"SpecialPerformance,omitempty"`
	AttackRate         int             `yaml:"AttackRate"`
	RetaliateRate      int             `yaml:"RetaliateRate"`
	ChangeTargetRate   int             `yaml:"ChangeTargetRate"`
	Script             yamldoc.Literal `yaml:"Script,omitempty"`
	SupportScript      yamldoc.Literal `yaml:"SupportScript,omitempty"`
}

// errUnknownMob skips a pet row without ending the file. It is logged as
// a warning.
type errUnknownMob struct{ id uint32 }

func (e errUnknownMob) Error() string {
	return fmt.Sprintf("invalid mob-class %d, pet not read", e.id)
}

func (e errUnknownMob) Unwrap() error { return txtdb.ErrSkipRow }

// Pets converts a pet_db.txt file. A pet whose mob is unknown is skipped;
// a pet referring to an unknown item ends the file.
func (c *Converter) Pets(path string, out Appender) (txtdb.Result, error) {
	s := &sink{out: out}
	res, err := txtdb.ReadScripted(path, PetTable(c.opts.Delim), func(_ int, fields []string) error {
		rec, err := c.Pet(fields)
		if err != nil {
			return err
		}
		return s.add(rec)
	})
	return s.finish(path, res, err)
}

// Pet converts one tokenized pet row.
func (c *Converter) Pet(fields []string) (*Pet, error) {
	if len(fields) <= colPetScript {
		return nil, fmt.Errorf("pet row has %d fields: %w", len(fields), txtdb.ErrInsufficientColumns)
	}
	num := func(col int) int { return txtdb.Atoi(fields[col]) }

	mobID := uint32(num(colPetMob))
	mob, ok := c.names.Resolve(names.Mob, mobID)
	if !ok {
		return nil, errUnknownMob{id: mobID}
	}
	p := &Pet{Mob: mob}

	var err error
	if p.TameItem, err = c.optionalItem(num(colPetTameItem)); err != nil {
		return nil, err
	}
	if p.EggItem, err = c.names.MustResolve(names.Item, uint32(num(colPetEggItem))); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAbortFile, err)
	}
	if p.EquipItem, err = c.optionalItem(num(colPetEquipItem)); err != nil {
		return nil, err
	}
	if p.FoodItem, err = c.optionalItem(num(colPetFoodItem)); err != nil {
		return nil, err
	}

	p.Fullness = num(colPetFullness)
	if v := num(colPetHungryDelay); v != defaultHungryDelay {
		p.HungryDelay = &v
	}
	if v := num(colPetIntimacyStart); v != defaultIntimacyStart {
		p.IntimacyStart = &v
	}
	p.IntimacyFed = num(colPetIntimacyFed)
	if v := num(colPetIntimacyOverfed); v != defaultIntimacyOverfed {
		v = -v
		p.IntimacyOverfed = &v
	}
	if v := num(colPetIntimacyOwnerDie); v != defaultIntimacyOwnerDie {
		v = -v
		p.IntimacyOwnerDie = &v
	}
	p.CaptureRate = num(colPetCaptureRate)
	if num(colPetSpecialPerformance) == 0 {
		off := false
		p.SpecialPerformance = &off
	}
	p.AttackRate = num(colPetAttackRate)
	p.RetaliateRate = num(colPetRetaliateRate)
	p.ChangeTargetRate = num(colPetChangeTargetRate)

	p.Script = yamldoc.Literal(fields[colPetScript])
	p.SupportScript = yamldoc.Literal(fields[colPetSupportScript])
	return p, nil
}

// optionalItem resolves an item reference where 0 means none.
func (c *Converter) optionalItem(id int) (string, error) {
	if id <= 0 {
		return "", nil
	}
	name, err := c.names.MustResolve(names.Item, uint32(id))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAbortFile, err)
	}
	return name, nil
}
