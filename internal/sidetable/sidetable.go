// Package sidetable loads the auxiliary per-item tables (flags, delays,
// stack limits, no-use and trade restrictions, buying store eligibility)
// that are merged into converted item records.
package sidetable

import (
	"strings"

	"github.com/udisondev/csv2yaml/internal/constants"
	"github.com/udisondev/csv2yaml/internal/txtdb"
)

// Flag is an entry of item_flag.txt.
type Flag struct {
	DeadBranch   bool
	Container    bool
	GUID         bool
	BindOnEquip  bool
	DropAnnounce bool
	NoConsume    bool
	DropEffect   constants.DropEffect
}

// Delay is an entry of item_delay.txt.
type Delay struct {
	Duration uint32
	Status   string
}

// Stack is an entry of item_stack.txt.
type Stack struct {
	Amount       uint16
	Inventory    bool
	Cart         bool
	Storage      bool
	GuildStorage bool
}

// NoUse is an entry of item_nouse.txt.
type NoUse struct {
	Override uint16
	Sitting  bool
}

// Trade is an entry of item_trade.txt.
type Trade struct {
	Override       uint16
	NoDrop         bool
	NoTrade        bool
	TradePartner   bool
	NoSell         bool
	NoCart         bool
	NoStorage      bool
	NoGuildStorage bool
	NoMail         bool
	NoAuction      bool
}

// Tables holds every side table keyed by item id.
type Tables struct {
	BuyingStore map[uint32]bool
	Flags       map[uint32]Flag
	Delays      map[uint32]Delay
	Stacks      map[uint32]Stack
	NoUses      map[uint32]NoUse
	Trades      map[uint32]Trade
}

// New returns empty tables.
func New() *Tables {
	return &Tables{
		BuyingStore: make(map[uint32]bool),
		Flags:       make(map[uint32]Flag),
		Delays:      make(map[uint32]Delay),
		Stacks:      make(map[uint32]Stack),
		NoUses:      make(map[uint32]NoUse),
		Trades:      make(map[uint32]Trade),
	}
}

func id(field string) uint32 { return uint32(txtdb.Atoi(field)) }

func parseBuyingStore(t *Tables, fields []string) error {
	t.BuyingStore[id(fields[0])] = true
	return nil
}

// parseFlag decodes the flag bitmask. Drop effect bits are tested from the
// lowest up and the first match wins.
func parseFlag(t *Tables, fields []string) error {
	v := txtdb.Atoi(fields[1])
	if v < 0 {
		v = -v
	}
	flag := uint16(v)

	var f Flag
	f.DeadBranch = flag&1 != 0
	f.Container = flag&2 != 0
	f.GUID = flag&4 != 0
	f.BindOnEquip = flag&8 != 0
	f.DropAnnounce = flag&16 != 0
	f.NoConsume = flag&32 != 0
	switch {
	case flag&64 != 0:
		f.DropEffect = constants.DropEffectClient
	case flag&128 != 0:
		f.DropEffect = constants.DropEffectWhitePillar
	case flag&256 != 0:
		f.DropEffect = constants.DropEffectBluePillar
	case flag&512 != 0:
		f.DropEffect = constants.DropEffectYellowPillar
	case flag&1024 != 0:
		f.DropEffect = constants.DropEffectPurplePillar
	case flag&2048 != 0:
		f.DropEffect = constants.DropEffectOrangePillar
	}

	t.Flags[id(fields[0])] = f
	return nil
}

func parseDelay(t *Tables, fields []string) error {
	d := Delay{Duration: uint32(txtdb.Atoi(fields[1]))}
	if len(fields) == 3 {
		d.Status = strings.TrimSpace(fields[2])
	}
	t.Delays[id(fields[0])] = d
	return nil
}

func parseStack(t *Tables, fields []string) error {
	kind := txtdb.Atoi(fields[2])
	t.Stacks[id(fields[0])] = Stack{
		Amount:       uint16(txtdb.Atoi(fields[1])),
		Inventory:    kind&1 != 0,
		Cart:         kind&2 != 0,
		Storage:      kind&4 != 0,
		GuildStorage: kind&8 != 0,
	}
	return nil
}

// parseNoUse always marks the entry as a sitting restriction; the flag
// column of item_nouse.txt is not consulted.
func parseNoUse(t *Tables, fields []string) error {
	t.NoUses[id(fields[0])] = NoUse{
		Override: uint16(txtdb.Atoi(fields[2])),
		Sitting:  true,
	}
	return nil
}

func parseTrade(t *Tables, fields []string) error {
	flag := txtdb.Atoi(fields[1])
	t.Trades[id(fields[0])] = Trade{
		Override:       uint16(txtdb.Atoi(fields[2])),
		NoDrop:         flag&1 != 0,
		NoTrade:        flag&2 != 0,
		TradePartner:   flag&4 != 0,
		NoSell:         flag&8 != 0,
		NoCart:         flag&16 != 0,
		NoStorage:      flag&32 != 0,
		NoGuildStorage: flag&64 != 0,
		NoMail:         flag&128 != 0,
		NoAuction:      flag&256 != 0,
	}
	return nil
}
