package constants

// Flag names a bit (or bit group) of a packed mask column.
type Flag struct {
	Name string
	Mask uint64
}

// Decompose returns the names of every flag fully set in mask, in table order.
func Decompose(mask uint64, flags []Flag) []string {
	var names []string
	for _, f := range flags {
		if mask&f.Mask == f.Mask {
			names = append(names, f.Name)
		}
	}
	return names
}

// Job mask values with a dedicated representation.
const (
	JobMaskNone         uint64 = 0
	JobMaskAll          uint64 = 0xFFFFFFFF
	JobMaskAllButNovice uint64 = 0xFFFFFFFE
)

// Jobs lists the job bits of the item job mask.
// Bits 13 and 20 are unused by the tables.
var Jobs = []Flag{
	{"Novice", 1 << 0},
	{"Swordman", 1 << 1},
	{"Mage", 1 << 2},
	{"Archer", 1 << 3},
	{"Acolyte", 1 << 4},
	{"Merchant", 1 << 5},
	{"Thief", 1 << 6},
	{"Knight", 1 << 7},
	{"Priest", 1 << 8},
	{"Wizard", 1 << 9},
	{"Blacksmith", 1 << 10},
	{"Hunter", 1 << 11},
	{"Assassin", 1 << 12},
	{"Crusader", 1 << 14},
	{"Monk", 1 << 15},
	{"Sage", 1 << 16},
	{"Rogue", 1 << 17},
	{"Alchemist", 1 << 18},
	{"BardDancer", 1 << 19},
	{"Taekwon", 1 << 21},
	{"StarGladiator", 1 << 22},
	{"SoulLinker", 1 << 23},
	{"Gunslinger", 1 << 24},
	{"Ninja", 1 << 25},
	{"Gangsi", 1 << 26},
	{"DeathKnight", 1 << 27},
	{"DarkCollector", 1 << 28},
	{"KagerouOboro", 1 << 29},
	{"Rebellion", 1 << 30},
	{"Summoner", 1 << 31},
}

// Item class (upper/baby/third job) codes.
const (
	ClassNone = 0x00
	ClassAll  = 0x3F
)

// Classes lists the bits of the item class column.
var Classes = []Flag{
	{"Normal", 0x01},
	{"Upper", 0x02},
	{"Baby", 0x04},
	{"Third", 0x08},
	{"Third_Upper", 0x10},
	{"Third_Baby", 0x20},
}

// EquipLocations lists the bits of the equip location column.
var EquipLocations = []Flag{
	{"Head_Low", 0x000001},
	{"Right_Hand", 0x000002},
	{"Garment", 0x000004},
	{"Right_Accessory", 0x000008},
	{"Armor", 0x000010},
	{"Left_Hand", 0x000020},
	{"Shoes", 0x000040},
	{"Left_Accessory", 0x000080},
	{"Head_Top", 0x000100},
	{"Head_Mid", 0x000200},
	{"Costume_Head_Top", 0x000400},
	{"Costume_Head_Mid", 0x000800},
	{"Costume_Head_Low", 0x001000},
	{"Costume_Garment", 0x002000},
	{"Ammo", 0x008000},
	{"Shadow_Armor", 0x010000},
	{"Shadow_Weapon", 0x020000},
	{"Shadow_Shield", 0x040000},
	{"Shadow_Shoes", 0x080000},
	{"Shadow_Right_Accessory", 0x100000},
	{"Shadow_Left_Accessory", 0x200000},
}
