package wow

import "github.com/shopspring/decimal"

// AbilityKind is the closed set of damage sources the calculator understands.
type AbilityKind int

const (
	AbilityNone AbilityKind = iota
	AbilityMainHand
	AbilityOffHand
	AbilityBloodthirst
	AbilityWhirlwind
	AbilityExecute
	AbilityHeroicStrike
	AbilityCleave
)

// ScalingKind selects how attack power turns into extra base damage.
type ScalingKind int

const (
	ScaleNone ScalingKind = iota
	// ScaleFlat adds Factor × AP.
	ScaleFlat
	// ScaleMainHandSpeed adds main-hand speed × AP / 14.
	ScaleMainHandSpeed
	// ScaleOffHandSpeed adds off-hand speed × AP / 14.
	ScaleOffHandSpeed
)

// Table picks which attack table an ability rolls on.
type Table int

const (
	TableAbility Table = iota
	TableMainHand
	TableOffHand
	TableOffHandRetained
)

type AbilityInfo struct {
	Kind AbilityKind

	// Name is the ability name in the log, Key the ability-stat key and Label the result key.
	Name  string
	Key   string
	Label string

	Table   Table
	Scaling ScalingKind
	Factor  decimal.Decimal

	// Melee swings crit for 2.0, abilities use the talented 2.2.
	Melee bool

	// Simulated is false for abilities only tracked for stats.
	Simulated bool
}

const (
	NameMelee        = "Melee"
	NameBloodthirst  = "Bloodthirst"
	NameWhirlwind    = "Whirlwind"
	NameExecute      = "Execute"
	NameHeroicStrike = "Heroic Strike"
	NameCleave       = "Cleave"

	KeyMainHand = "main"
	KeyOffHand  = "off"
)

var (
	Abilities = map[AbilityKind]AbilityInfo{
		AbilityMainHand: {
			Kind: AbilityMainHand, Name: NameMelee, Key: KeyMainHand, Label: "main_hand",
			Table: TableMainHand, Scaling: ScaleMainHandSpeed, Melee: true, Simulated: true,
		},
		AbilityOffHand: {
			Kind: AbilityOffHand, Name: NameMelee, Key: KeyOffHand, Label: "off_hand",
			Table: TableOffHand, Scaling: ScaleOffHandSpeed, Melee: true, Simulated: true,
		},
		AbilityBloodthirst: {
			Kind: AbilityBloodthirst, Name: NameBloodthirst, Key: NameBloodthirst, Label: NameBloodthirst,
			Table: TableAbility, Scaling: ScaleFlat, Factor: decimal.RequireFromString("0.45"), Simulated: true,
		},
		AbilityWhirlwind: {
			Kind: AbilityWhirlwind, Name: NameWhirlwind, Key: NameWhirlwind, Label: NameWhirlwind,
			Table: TableAbility, Scaling: ScaleMainHandSpeed, Simulated: true,
		},
		AbilityExecute: {
			Kind: AbilityExecute, Name: NameExecute, Key: NameExecute, Label: NameExecute,
			Table: TableAbility, Scaling: ScaleNone, Simulated: true,
		},
		AbilityHeroicStrike: {
			Kind: AbilityHeroicStrike, Name: NameHeroicStrike, Key: NameHeroicStrike, Label: NameHeroicStrike,
			Table: TableAbility, Scaling: ScaleMainHandSpeed, Simulated: true,
		},
		AbilityCleave: {
			Kind: AbilityCleave, Name: NameCleave, Key: NameCleave, Label: NameCleave,
			Table: TableAbility, Scaling: ScaleMainHandSpeed,
		},
	}

	// StatKeys lists the ability-stat keys in the order they are reported.
	StatKeys = []string{KeyMainHand, KeyOffHand, NameHeroicStrike, NameCleave, NameExecute, NameBloodthirst, NameWhirlwind}

	// SwingNames are the abilities that consume a main- or off-hand swing.
	SwingNames = []string{NameMelee, NameHeroicStrike, NameCleave}

	abilityByName = map[string]AbilityKind{
		NameBloodthirst:  AbilityBloodthirst,
		NameWhirlwind:    AbilityWhirlwind,
		NameExecute:      AbilityExecute,
		NameHeroicStrike: AbilityHeroicStrike,
		NameCleave:       AbilityCleave,
	}
)

// Resolve returns the ability kind of a logged event; melee swings need their hand assigned.
func Resolve(name string, hand Hand) AbilityKind {
	if name == NameMelee {
		switch hand {
		case HandMain:
			return AbilityMainHand
		case HandOff:
			return AbilityOffHand
		}
		return AbilityNone
	}
	return abilityByName[name]
}

// StatKey is the ability-stat key an event is accounted under.
func StatKey(name string, hand Hand) string {
	if hand != HandNone {
		return hand.String()
	}
	return name
}

func IsSwing(name string) bool {
	for _, s := range SwingNames {
		if s == name {
			return true
		}
	}
	return false
}
