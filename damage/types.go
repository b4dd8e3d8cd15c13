package damage

import (
	"wcl_check/wow"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CombatEvent is a single damage (or aura) event of the analysed character.
type CombatEvent struct {
	Timestamp int64  `json:"timestamp"`
	Type      string `json:"type"`
	SourceID  int    `json:"source_id"`
	TargetID  int    `json:"target_id"`

	Ability string      `json:"ability"`
	Hand    wow.Hand    `json:"hand"`
	Outcome wow.HitType `json:"hit_type"`

	Amount decimal.Decimal `json:"amount"`
	// Product of damage buffs active at Timestamp. Zero is read as 1.
	Multiplier decimal.Decimal `json:"multiplier"`

	HitPoints    int64 `json:"hit_points,omitempty"`
	MaxHitPoints int64 `json:"max_hit_points,omitempty"`
}

func (e *CombatEvent) DamageMultiplier() decimal.Decimal {
	if e.Multiplier.IsZero() {
		return one
	}
	return e.Multiplier
}

// AbilityStat aggregates one ability over the original fight.
// TotalHitDamage has buff and crit multipliers divided out.
type AbilityStat struct {
	TotalHitDamage decimal.Decimal `json:"total_hit_damage"`
	AvgHitDamage   decimal.Decimal `json:"avg_hit_damage"`

	Attacks int `json:"attacks"`
	Hit     int `json:"hit"`
	Crit    int `json:"crit"`
	Glance  int `json:"glance"`
	Dodge   int `json:"dodge"`
	Parry   int `json:"parry"`
	Miss    int `json:"miss"`
	Block   int `json:"block"`
	Unknown int `json:"unknown"`
}

// Status is the character sheet before any change. Hit and Crit are percentages.
type Status struct {
	MainHandSkill decimal.Decimal `json:"mh_skill"`
	OffHandSkill  decimal.Decimal `json:"oh_skill"`
	MainHandSpeed decimal.Decimal `json:"main_hand_speed"`
	OffHandSpeed  decimal.Decimal `json:"off_hand_speed"`
	Hit           decimal.Decimal `json:"hit"`
	Crit          decimal.Decimal `json:"crit"`
}

func DefaultStatus() Status {
	return Status{
		MainHandSkill: decimal.NewFromInt(300),
		OffHandSkill:  decimal.NewFromInt(300),
		MainHandSpeed: dec("2.4"),
		OffHandSpeed:  dec("1.8"),
		Hit:           decimal.NewFromInt(10),
		Crit:          decimal.NewFromInt(45),
	}
}

// UnmarshalJSON defaults an absent hit or crit. An explicit 0 is kept.
func (s *Status) UnmarshalJSON(b []byte) error {
	var v struct {
		MainHandSkill decimal.Decimal     `json:"mh_skill"`
		OffHandSkill  decimal.Decimal     `json:"oh_skill"`
		MainHandSpeed decimal.Decimal     `json:"main_hand_speed"`
		OffHandSpeed  decimal.Decimal     `json:"off_hand_speed"`
		Hit           decimal.NullDecimal `json:"hit"`
		Crit          decimal.NullDecimal `json:"crit"`
	}
	err := jsoniter.Unmarshal(b, &v)
	if err != nil {
		return errors.WithStack(err)
	}

	d := DefaultStatus()
	*s = Status{
		MainHandSkill: v.MainHandSkill,
		OffHandSkill:  v.OffHandSkill,
		MainHandSpeed: v.MainHandSpeed,
		OffHandSpeed:  v.OffHandSpeed,
		Hit:           d.Hit,
		Crit:          d.Crit,
	}
	if v.Hit.Valid {
		s.Hit = v.Hit.Decimal
	}
	if v.Crit.Valid {
		s.Crit = v.Crit.Decimal
	}
	return nil
}

// WithDefaults fills zero skills and weapon speeds from DefaultStatus.
// Hit and Crit may legitimately be 0 and are left alone.
func (s Status) WithDefaults() Status {
	d := DefaultStatus()
	fill := func(v *decimal.Decimal, def decimal.Decimal) {
		if v.IsZero() {
			*v = def
		}
	}
	fill(&s.MainHandSkill, d.MainHandSkill)
	fill(&s.OffHandSkill, d.OffHandSkill)
	fill(&s.MainHandSpeed, d.MainHandSpeed)
	fill(&s.OffHandSpeed, d.OffHandSpeed)
	return s
}

// Buffs are the fight-wide multipliers found by the buff analysis.
type Buffs struct {
	DarkFortune decimal.Decimal `json:"sayges_dark_fortune"`
	Zandalar    decimal.Decimal `json:"spirit_of_zandalar"`
	Windows     WindowIndex     `json:"windows"`
}

func (b Buffs) BaseMultiplier() decimal.Decimal {
	if b.DarkFortune.IsZero() {
		return one
	}
	return b.DarkFortune
}

func (b Buffs) StatMultiplier() decimal.Decimal {
	if b.Zandalar.IsZero() {
		return one
	}
	return b.Zandalar
}

// Attributes is a hypothetical change to the character. Hit, Crit and Haste are percentages.
type Attributes struct {
	Strength      decimal.Decimal `json:"strength"`
	Agility       decimal.Decimal `json:"agility"`
	AttackPower   decimal.Decimal `json:"attackPower"`
	Crit          decimal.Decimal `json:"crit"`
	Hit           decimal.Decimal `json:"hit"`
	Haste         decimal.Decimal `json:"haste"`
	MainHandSkill decimal.Decimal `json:"mainHandSkill"`
	OffHandSkill  decimal.Decimal `json:"offHandSkill"`
}

func (a Attributes) IsZero() bool {
	return a.Strength.IsZero() && a.Agility.IsZero() && a.AttackPower.IsZero() &&
		a.Crit.IsZero() && a.Hit.IsZero() && a.Haste.IsZero() &&
		a.MainHandSkill.IsZero() && a.OffHandSkill.IsZero()
}

// Add sums two attribute deltas field by field.
func (a Attributes) Add(b Attributes) Attributes {
	return Attributes{
		Strength:      a.Strength.Add(b.Strength),
		Agility:       a.Agility.Add(b.Agility),
		AttackPower:   a.AttackPower.Add(b.AttackPower),
		Crit:          a.Crit.Add(b.Crit),
		Hit:           a.Hit.Add(b.Hit),
		Haste:         a.Haste.Add(b.Haste),
		MainHandSkill: a.MainHandSkill.Add(b.MainHandSkill),
		OffHandSkill:  a.OffHandSkill.Add(b.OffHandSkill),
	}
}

// Fight is everything the calculator needs from one analysed encounter.
type Fight struct {
	BossIDs  []int                  `json:"boss_ids"`
	Events   []CombatEvent          `json:"events"`
	Duration decimal.Decimal        `json:"duration"` // seconds
	Buffs    Buffs                  `json:"buffs"`
	Stats    map[string]AbilityStat `json:"stats"`
	Status   Status                 `json:"status"`
	Faction  wow.Faction            `json:"faction"`
}

////////////////////////////////////////////////////////////////////////////////////////////////////

const (
	LabelMainHand         = "main_hand"
	LabelOffHand          = "off_hand"
	LabelBloodthirst      = wow.NameBloodthirst
	LabelWhirlwind        = wow.NameWhirlwind
	LabelExecute          = wow.NameExecute
	LabelHeroicStrike     = wow.NameHeroicStrike
	LabelHeroicStrikeRage = "Heroic Strike (from Rage)"
	LabelExecuteRage      = "Execute (from Rage)"
	LabelTotal            = "total"
)

// Labels lists every key of a Result, total last.
var Labels = []string{
	LabelMainHand,
	LabelOffHand,
	LabelBloodthirst,
	LabelWhirlwind,
	LabelExecute,
	LabelHeroicStrike,
	LabelHeroicStrikeRage,
	LabelExecuteRage,
	LabelTotal,
}

// Result maps ability labels to a DPS delta. LabelTotal is the sum of the others.
type Result map[string]decimal.Decimal

func zeroResult() Result {
	r := make(Result, len(Labels))
	for _, l := range Labels {
		r[l] = zero
	}
	return r
}

func (r Result) Total() decimal.Decimal {
	return r[LabelTotal]
}
