package constants

// Symbolic tables for the legacy item, pet and skill databases.
//
// The numeric codes are those stored in the text tables; the names are the
// ones the YAML databases expect.

// ItemType is the item type column of item_db.txt.
type ItemType int

const (
	ItemHealing      ItemType = 0
	ItemUsable       ItemType = 2
	ItemEtc          ItemType = 3
	ItemArmor        ItemType = 4
	ItemWeapon       ItemType = 5
	ItemCard         ItemType = 6
	ItemPetEgg       ItemType = 7
	ItemPetArmor     ItemType = 8
	ItemAmmo         ItemType = 10
	ItemDelayConsume ItemType = 11
	ItemShadowGear   ItemType = 12
	ItemCash         ItemType = 18
)

var itemTypeNames = map[ItemType]string{
	ItemHealing:      "IT_HEALING",
	ItemUsable:       "IT_USABLE",
	ItemEtc:          "IT_ETC",
	ItemArmor:        "IT_ARMOR",
	ItemWeapon:       "IT_WEAPON",
	ItemCard:         "IT_CARD",
	ItemPetEgg:       "IT_PETEGG",
	ItemPetArmor:     "IT_PETARMOR",
	ItemAmmo:         "IT_AMMO",
	ItemDelayConsume: "IT_DELAYCONSUME",
	ItemShadowGear:   "IT_SHADOWGEAR",
	ItemCash:         "IT_CASH",
}

// Name returns the symbolic name of the item type.
func (t ItemType) Name() (string, bool) {
	name, ok := itemTypeNames[t]
	return name, ok
}

var weaponTypeNames = map[int]string{
	0:  "W_FIST",
	1:  "W_DAGGER",
	2:  "W_1HSWORD",
	3:  "W_2HSWORD",
	4:  "W_1HSPEAR",
	5:  "W_2HSPEAR",
	6:  "W_1HAXE",
	7:  "W_2HAXE",
	8:  "W_MACE",
	9:  "W_2HMACE",
	10: "W_STAFF",
	11: "W_BOW",
	12: "W_KNUCKLE",
	13: "W_MUSICAL",
	14: "W_WHIP",
	15: "W_BOOK",
	16: "W_KATAR",
	17: "W_REVOLVER",
	18: "W_RIFLE",
	19: "W_GATLING",
	20: "W_SHOTGUN",
	21: "W_GRENADE",
	22: "W_HUUMA",
	23: "W_2HSTAFF",
}

// WeaponTypeName returns the weapon sub-type name for code.
func WeaponTypeName(code int) (string, bool) {
	name, ok := weaponTypeNames[code]
	return name, ok
}

var ammoTypeNames = map[int]string{
	1: "AMMO_ARROW",
	2: "AMMO_DAGGER",
	3: "AMMO_BULLET",
	4: "AMMO_SHELL",
	5: "AMMO_GRENADE",
	6: "AMMO_SHURIKEN",
	7: "AMMO_KUNAI",
	8: "AMMO_CANNONBALL",
	9: "AMMO_THROWWEAPON",
}

// AmmoTypeName returns the ammo sub-type name for code.
func AmmoTypeName(code int) (string, bool) {
	name, ok := ammoTypeNames[code]
	return name, ok
}

// Gender restriction codes.
const (
	SexFemale = 0
	SexMale   = 1
	SexBoth   = 2
)

// SexName returns the name of a gender code. SexBoth has no name because
// it is never written out.
func SexName(code int) (string, bool) {
	switch code {
	case SexFemale:
		return "SEX_FEMALE", true
	case SexMale:
		return "SEX_MALE", true
	}
	return "", false
}

// DropEffect is the visual effect shown when an item drops.
type DropEffect uint8

const (
	DropEffectNone DropEffect = iota
	DropEffectClient
	DropEffectWhitePillar
	DropEffectBluePillar
	DropEffectYellowPillar
	DropEffectPurplePillar
	DropEffectOrangePillar
)

var dropEffectNames = [...]string{
	DropEffectNone:         "",
	DropEffectClient:       "CLIENT",
	DropEffectWhitePillar:  "WHITE_PILLAR",
	DropEffectBluePillar:   "BLUE_PILLAR",
	DropEffectYellowPillar: "YELLOW_PILLAR",
	DropEffectPurplePillar: "PURPLE_PILLAR",
	DropEffectOrangePillar: "ORANGE_PILLAR",
}

func (e DropEffect) String() string {
	if int(e) < len(dropEffectNames) {
		return dropEffectNames[e]
	}
	return ""
}
