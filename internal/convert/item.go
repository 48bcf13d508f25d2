package convert

import (
	"fmt"

	"github.com/udisondev/csv2yaml/internal/constants"
	"github.com/udisondev/csv2yaml/internal/names"
	"github.com/udisondev/csv2yaml/internal/sidetable"
	"github.com/udisondev/csv2yaml/internal/txtdb"
	"github.com/udisondev/csv2yaml/internal/yamldoc"
)

// Item table columns.
const (
	colItemID = iota
	colItemAegisName
	colItemName
	colItemType
	colItemBuy
	colItemSell
	colItemWeight
	colItemAttack
	colItemDefense
	colItemRange
	colItemSlots
	colItemJob
	colItemClass
	colItemGender
	colItemLocation
	colItemWeaponLevel
	colItemEquipLevel
	colItemRefineable
	colItemView
	colItemScript
	colItemEquipScript
	colItemUnEquipScript
)

// Item is one entry of an ITEM_DB document. Zero values are the defaults
// and are not written.
type Item struct {
	ID            int             `yaml:"Id"`
	AegisName     string          `yaml:"AegisName"`
	Name          string          `yaml:"Name"`
	Type          string          `yaml:"Type"`
	SubType       string          `yaml:"SubType,omitempty"`
	Buy           int             `yaml:"Buy,omitempty"`
	Sell          int             `yaml:"Sell,omitempty"`
	Weight        int             `yaml:"Weight,omitempty"`
	Attack        int             `yaml:"Attack,omitempty"`
	MagicAttack   int             `yaml:"MagicAttack,omitempty"`
	Defense       int             `yaml:"Defense,omitempty"`
	Range         int             `yaml:"Range,omitempty"`
	Slots         int             `yaml:"Slots,omitempty"`
	Job           yamldoc.Flags   `yaml:"Job,omitempty"`
	Class         yamldoc.Flags   `yaml:"Class,omitempty"`
	Gender        string          `yaml:"Gender,omitempty"`
	Location      yamldoc.Flags   `yaml:"Location,omitempty"`
	WeaponLevel   int             `yaml:"WeaponLevel,omitempty"`
	EquipLevelMin int             `yaml:"EquipLevelMin,omitempty"`
	EquipLevelMax int             `yaml:"EquipLevelMax,omitempty"`
	Refineable    bool            `yaml:"Refineable,omitempty"`
	View          int             `yaml:"View,omitempty"`
	BuyingStore   bool            `yaml:"BuyingStore,omitempty"`
	DeadBranch    bool            `yaml:"DeadBranch,omitempty"`
	Container     bool            `yaml:"Container,omitempty"`
	GUID          bool            `yaml:"GUID,omitempty"`
	BindOnEquip   bool            `yaml:"BindOnEquip,omitempty"`
	DropAnnounce  bool            `yaml:"DropAnnounce,omitempty"`
	NoConsume     bool            `yaml:"NoConsume,omitempty"`
	DropEffect    string          `yaml:"DropEffect,omitempty"`
	Delay         *ItemDelay      `yaml:"Delay,omitempty"`
	Stack         *ItemStack      `yaml:"Stack,omitempty"`
	NoUse         *ItemNoUse      `yaml:"NoUse,omitempty"`
	Trade         *ItemTrade      `yaml:"Trade,omitempty"`
	Script        yamldoc.Literal `yaml:"Script,omitempty"`
	EquipScript   yamldoc.Literal `yaml:"EquipScript,omitempty"`
	UnEquipScript yamldoc.Literal `yaml:"UnEquipScript,omitempty"`
}

// ItemDelay is the consumption delay of an item.
type ItemDelay struct {
	Duration uint32 `yaml:"Duration"`
	Status   string `yaml:"Status,omitempty"`
}

// ItemStack limits how many items stack per container.
type ItemStack struct {
	Amount       uint16 `yaml:"Amount"`
	Inventory    bool   `yaml:"Inventory,omitempty"`
	Cart         bool   `yaml:"Cart,omitempty"`
	Storage      bool   `yaml:"Storage,omitempty"`
	GuildStorage bool   `yaml:"GuildStorage,omitempty"`
}

// ItemNoUse restricts item use.
type ItemNoUse struct {
	Override uint16 `yaml:"Override"`
	Sitting  bool   `yaml:"Sitting"`
}

// ItemTrade restricts where an item may go.
type ItemTrade struct {
	Override       uint16 `yaml:"Override"`
	NoDrop         bool   `yaml:"NoDrop,omitempty"`
	NoTrade        bool   `yaml:"NoTrade,omitempty"`
	TradePartner   bool   `yaml:"TradePartner,omitempty"`
	NoSell         bool   `yaml:"NoSell,omitempty"`
	NoCart         bool   `yaml:"NoCart,omitempty"`
	NoStorage      bool   `yaml:"NoStorage,omitempty"`
	NoGuildStorage bool   `yaml:"NoGuildStorage,omitempty"`
	NoMail         bool   `yaml:"NoMail,omitempty"`
	NoAuction      bool   `yaml:"NoAuction,omitempty"`
}

// Items converts an item_db.txt file.
func (c *Converter) Items(path string, out Appender) (txtdb.Result, error) {
	s := &sink{out: out}
	res, err := txtdb.ReadScripted(path, names.ItemTable(c.opts.Delim), func(_ int, fields []string) error {
		rec, err := c.Item(fields)
		if err != nil {
			return err
		}
		return s.add(rec)
	})
	return s.finish(path, res, err)
}

// Item converts one tokenized item row.
func (c *Converter) Item(fields []string) (*Item, error) {
	if len(fields) <= colItemUnEquipScript {
		return nil, fmt.Errorf("item row has %d fields: %w", len(fields), txtdb.ErrInsufficientColumns)
	}
	num := func(col int) int { return txtdb.Atoi(fields[col]) }

	it := &Item{
		ID:        num(colItemID),
		AegisName: fields[colItemAegisName],
		Name:      fields[colItemName],
	}

	itemType := constants.ItemType(num(colItemType))
	typeName, ok := itemType.Name()
	if !ok {
		return nil, fmt.Errorf("item %d: item type %d: %w", it.ID, itemType, ErrUnknownCode)
	}
	it.Type = typeName

	view := num(colItemView)
	switch {
	case itemType == constants.ItemWeapon && view != 0:
		name, ok := constants.WeaponTypeName(view)
		if !ok {
			return nil, fmt.Errorf("item %d: weapon type %d: %w", it.ID, view, ErrUnknownCode)
		}
		it.SubType = name
	case itemType == constants.ItemAmmo && view != 0:
		name, ok := constants.AmmoTypeName(view)
		if !ok {
			return nil, fmt.Errorf("item %d: ammo type %d: %w", it.ID, view, ErrUnknownCode)
		}
		it.SubType = name
	case itemType != constants.ItemWeapon && itemType != constants.ItemAmmo && view > 0:
		it.View = view
	}

	it.Buy = positive(num(colItemBuy))
	if sell := num(colItemSell); sell > 0 && num(colItemBuy)/2 != sell {
		it.Sell = sell
	}
	it.Weight = positive(num(colItemWeight))

	if c.opts.Renewal {
		atk, matk := txtdb.SplitPair(fields[colItemAttack])
		it.Attack = positive(atk)
		it.MagicAttack = positive(matk)
	} else {
		it.Attack = positive(num(colItemAttack))
	}
	it.Defense = positive(num(colItemDefense))
	it.Range = positive(num(colItemRange))
	it.Slots = positive(num(colItemSlots))

	it.Job = jobFlags(fields[colItemJob])
	it.Class = classFlags(fields[colItemClass])
	if fields[colItemGender] != "" {
		it.Gender, _ = constants.SexName(num(colItemGender))
	}
	if loc := num(colItemLocation); loc > 0 {
		it.Location = yamldoc.Set(constants.Decompose(uint64(loc), constants.EquipLocations)...)
	}

	it.WeaponLevel = positive(num(colItemWeaponLevel))
	minLv, maxLv := txtdb.SplitPair(fields[colItemEquipLevel])
	it.EquipLevelMin = positive(minLv)
	it.EquipLevelMax = positive(maxLv)
	it.Refineable = num(colItemRefineable) > 0

	c.mergeSideTables(it)

	it.Script = yamldoc.Literal(fields[colItemScript])
	it.EquipScript = yamldoc.Literal(fields[colItemEquipScript])
	it.UnEquipScript = yamldoc.Literal(fields[colItemUnEquipScript])
	return it, nil
}

func (c *Converter) mergeSideTables(it *Item) {
	id := uint32(it.ID)

	it.BuyingStore = c.tables.BuyingStore[id]

	if f, ok := c.tables.Flags[id]; ok {
		it.DeadBranch = f.DeadBranch
		it.Container = f.Container
		it.GUID = f.GUID
		it.BindOnEquip = f.BindOnEquip
		it.DropAnnounce = f.DropAnnounce
		it.NoConsume = f.NoConsume
		it.DropEffect = f.DropEffect.String()
	}

	if d, ok := c.tables.Delays[id]; ok {
		it.Delay = &ItemDelay{Duration: d.Duration, Status: d.Status}
	}
	if s, ok := c.tables.Stacks[id]; ok {
		it.Stack = &ItemStack{
			Amount:       s.Amount,
			Inventory:    s.Inventory,
			Cart:         s.Cart,
			Storage:      s.Storage,
			GuildStorage: s.GuildStorage,
		}
	}
	if n, ok := c.tables.NoUses[id]; ok {
		it.NoUse = &ItemNoUse{Override: n.Override, Sitting: n.Sitting}
	}
	if t, ok := c.tables.Trades[id]; ok {
		it.Trade = tradeRecord(t)
	}
}

func tradeRecord(t sidetable.Trade) *ItemTrade {
	return &ItemTrade{
		Override:       t.Override,
		NoDrop:         t.NoDrop,
		NoTrade:        t.NoTrade,
		TradePartner:   t.TradePartner,
		NoSell:         t.NoSell,
		NoCart:         t.NoCart,
		NoStorage:      t.NoStorage,
		NoGuildStorage: t.NoGuildStorage,
		NoMail:         t.NoMail,
		NoAuction:      t.NoAuction,
	}
}

// jobFlags renders the job mask. An empty column keeps the default (every
// job), as does the all-bits mask.
func jobFlags(col string) yamldoc.Flags {
	if col == "" {
		return nil
	}
	switch mask := txtdb.ParseMask(col); mask {
	case constants.JobMaskNone:
		return yamldoc.Flags{{Name: "All", Value: false}}
	case constants.JobMaskAll:
		return nil
	case constants.JobMaskAllButNovice:
		return yamldoc.Flags{{Name: "All", Value: true}, {Name: "Novice", Value: false}}
	default:
		return yamldoc.Set(constants.Decompose(mask, constants.Jobs)...)
	}
}

// classFlags renders the item class column with the same three cases as
// the job mask.
func classFlags(col string) yamldoc.Flags {
	if col == "" {
		return nil
	}
	switch class := txtdb.Atoi(col); class {
	case constants.ClassNone:
		return yamldoc.Flags{{Name: "All", Value: false}}
	case constants.ClassAll:
		return nil
	default:
		return yamldoc.Set(constants.Decompose(uint64(class), constants.Classes)...)
	}
}

func positive(v int) int {
	if v > 0 {
		return v
	}
	return 0
}
