package damage

import (
	"wcl_check/wow"

	"github.com/shopspring/decimal"
)

var (
	skillBase      = decimal.NewFromInt(300)
	skillMissKnee  = decimal.NewFromInt(305)
	skillBlockKnee = decimal.NewFromInt(315)
	skillDefense   = decimal.NewFromInt(315)

	missLow       = dec("0.09")
	missLowStep   = dec("0.004")
	missHigh      = dec("0.06")
	missHighStep  = dec("0.001")
	dualWieldMiss = dec("0.19")

	dodgeBase  = dec("0.065")
	parryBase  = dec("0.14")
	blockBase  = dec("0.05")
	skillStep  = dec("0.001")
	critLoss   = dec("0.03")
	critSkill  = dec("0.0004")

	glanceBase  = dec("0.35")
	glanceStep  = dec("0.04")
	glanceMin   = dec("0.05")
	glanceLower = decimal.NewFromInt(-5)
	glanceUpper = decimal.NewFromInt(8)
)

// Rates is one side (current or new) of an attack table.
type Rates struct {
	Hit           decimal.Decimal `json:"hit"`
	Crit          decimal.Decimal `json:"crit"`
	Dodge         decimal.Decimal `json:"dodge"`
	Parry         decimal.Decimal `json:"parry"`
	FrontMiss     decimal.Decimal `json:"front_miss"`
	FrontCrit     decimal.Decimal `json:"front_crit"`
	GlancePenalty decimal.Decimal `json:"glance_penalty"`
	// ActualHit is the chance the swing lands at all, glances included.
	ActualHit decimal.Decimal `json:"actual_hit"`
}

// AttackTable pairs the table before and after an attribute change.
type AttackTable struct {
	Category wow.Table `json:"category"`
	Current  Rates     `json:"current"`
	New      Rates     `json:"new"`
}

type AttackTables struct {
	Ability         AttackTable `json:"ability"`
	MainHand        AttackTable `json:"main_hand"`
	OffHand         AttackTable `json:"off_hand"`
	OffHandRetained AttackTable `json:"off_hand_retained"`
}

func (t *AttackTables) For(c wow.Table) AttackTable {
	switch c {
	case wow.TableMainHand:
		return t.MainHand
	case wow.TableOffHand:
		return t.OffHand
	case wow.TableOffHandRetained:
		return t.OffHandRetained
	}
	return t.Ability
}

// ComputeTables builds all four tables for st, once untouched and once with a applied.
// a is expected to be transformed already (see TransformAttributes).
func ComputeTables(st Status, a Attributes) AttackTables {
	cur := newSheet(st, Attributes{})
	nw := newSheet(st, a)

	return AttackTables{
		Ability:         AttackTable{Category: wow.TableAbility, Current: cur.ability(), New: nw.ability()},
		MainHand:        AttackTable{Category: wow.TableMainHand, Current: cur.mainHand(), New: nw.mainHand()},
		OffHand:         AttackTable{Category: wow.TableOffHand, Current: cur.offHand(), New: nw.offHand()},
		OffHandRetained: AttackTable{Category: wow.TableOffHandRetained, Current: cur.offHandRetained(), New: nw.offHandRetained()},
	}
}

////////////////////////////////////////////////////////////////////////////////////////////////////

// sheet is the weapon skills and fractional hit/crit a table is derived from.
type sheet struct {
	mhSkill decimal.Decimal
	ohSkill decimal.Decimal
	hit     decimal.Decimal
	crit    decimal.Decimal
}

func newSheet(st Status, a Attributes) sheet {
	return sheet{
		mhSkill: st.MainHandSkill.Add(a.MainHandSkill),
		ohSkill: st.OffHandSkill.Add(a.OffHandSkill),
		hit:     percent(st.Hit.Add(a.Hit)),
		crit:    percent(st.Crit.Add(a.Crit)),
	}
}

func baseMiss(skill decimal.Decimal) decimal.Decimal {
	if skill.LessThan(skillMissKnee) {
		return missLow.Sub(skill.Sub(skillBase).Mul(missLowStep))
	}
	return missHigh.Sub(skill.Sub(skillMissKnee).Mul(missHighStep))
}

func abilityMiss(skill, hit decimal.Decimal) decimal.Decimal {
	return floor0(baseMiss(skill).Sub(hit))
}

func dualWieldMissRate(skill, hit decimal.Decimal) decimal.Decimal {
	return floor0(dualWieldMiss.Add(baseMiss(skill)).Sub(hit))
}

func dodgeRate(skill decimal.Decimal) decimal.Decimal {
	return floor0(dodgeBase.Sub(skill.Sub(skillBase).Mul(skillStep)))
}

func parryRate(skill decimal.Decimal) decimal.Decimal {
	return floor0(parryBase.Sub(skill.Sub(skillBase).Mul(skillStep)))
}

func blockRate(skill decimal.Decimal) decimal.Decimal {
	if skill.LessThanOrEqual(skillBlockKnee) {
		return blockBase
	}
	return floor0(blockBase.Sub(skill.Sub(skillBlockKnee).Mul(skillStep)))
}

// bossCrit is the crit chance left after the boss' level and defense suppression.
func bossCrit(skill, crit decimal.Decimal) decimal.Decimal {
	return floor0(crit.Sub(critLoss).Sub(floor0(skillDefense.Sub(skill).Mul(critSkill))))
}

// GlancePenalty is the damage lost on a glancing blow at the given weapon skill.
func GlancePenalty(skill decimal.Decimal) decimal.Decimal {
	diff := skill.Sub(skillBase)
	diff = maxDec(minDec(diff, glanceUpper), glanceLower)
	return maxDec(glanceBase.Sub(diff.Mul(glanceStep)), glanceMin)
}

// build partitions what is left after avoid into crit and hit, and adds the front arc view.
func build(skill, avoid, miss, glance, crit decimal.Decimal) Rates {
	table := floor0(one.Sub(avoid))
	c := minDec(table, bossCrit(skill, crit))
	h := floor0(table.Sub(c))

	dodge := dodgeRate(skill)
	parry := parryRate(skill)
	frontMiss := minDec(one, blockRate(skill).Add(parry).Add(dodge).Add(miss))

	return Rates{
		Hit:           h,
		Crit:          c,
		Dodge:         dodge,
		Parry:         parry,
		FrontMiss:     frontMiss,
		FrontCrit:     floor0(minDec(c, one.Sub(frontMiss))),
		GlancePenalty: GlancePenalty(skill),
		ActualHit:     clamp01(h.Add(c).Add(glance)),
	}
}

func (s sheet) ability() Rates {
	miss := abilityMiss(s.mhSkill, s.hit)
	return build(s.mhSkill, dodgeRate(s.mhSkill).Add(miss), miss, zero, s.crit)
}

func (s sheet) mainHand() Rates {
	miss := dualWieldMissRate(s.mhSkill, s.hit)
	avoid := dodgeRate(s.mhSkill).Add(wow.GlanceRate).Add(miss)
	return build(s.mhSkill, avoid, miss, wow.GlanceRate, s.crit)
}

func (s sheet) offHand() Rates {
	miss := dualWieldMissRate(s.ohSkill, s.hit)
	avoid := dodgeRate(s.ohSkill).Add(wow.GlanceRate).Add(miss)
	return build(s.ohSkill, avoid, miss, wow.GlanceRate, s.crit)
}

// offHandRetained is the off-hand while Heroic Strike is queued: no dual wield miss.
func (s sheet) offHandRetained() Rates {
	avoid := dodgeRate(s.ohSkill).Add(wow.GlanceRate)
	return build(s.ohSkill, avoid, abilityMiss(s.ohSkill, s.hit), wow.GlanceRate, s.crit)
}
