package wow

// Faction of the raid the character belongs to.
type Faction string

const (
	Alliance       Faction = "Alliance"
	Horde          Faction = "Horde"
	FactionUnknown Faction = "Unknown"
)

const (
	ClassWarrior = "Warrior"
	ClassPaladin = "Paladin" // Alliance only in this era
	PetName      = "Pet"

	EnemyTypeBoss = "Boss"
)

// Buff is a toggleable aura tracked as time windows over the fight.
type Buff string

const (
	BuffDeathWish    Buff = "death_wish"
	BuffRecklessness Buff = "recklessness"
)

// Spell ids used to recognise buffs in the log.
const (
	SpellSaygesDarkFortune = 23768
	SpellSpiritOfZandalar  = 355365
	SpellDeathWish         = 12328
	SpellRecklessness      = 1719
)

// Event types from the log provider.
const (
	EventDamage       = "damage"
	EventApplyBuff    = "applybuff"
	EventRemoveBuff   = "removebuff"
	EventApplyDebuff  = "applydebuff"
	EventRemoveDebuff = "removedebuff"
)
