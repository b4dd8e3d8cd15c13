package damage

import (
	"wcl_check/wow"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var defaultGlanceDamage = dec("0.65")

// Cast is one historical swing or cast to be replayed against a new table.
type Cast struct {
	Event *CombatEvent
	Table AttackTable
	Stat  AbilityStat

	// APBonus is the extra base damage the attack power change adds.
	APBonus        decimal.Decimal
	CritMultiplier decimal.Decimal

	// Glance outcomes are only reclassified as glances on melee swings.
	Melee          bool
	GuaranteedCrit bool
}

// Reclassify returns the damage the swing would have gained under the new table,
// keeping the observed outcome as the pivot. The result includes the event's buff multiplier.
func Reclassify(c Cast) decimal.Decimal {
	e := c.Event
	cur, nw := c.Table.Current, c.Table.New

	mult := e.DamageMultiplier()
	observed := e.Amount.Div(mult)

	base := observed
	if e.Amount.IsZero() {
		base = c.Stat.AvgHitDamage
	}

	var land, hitShare, critShare, glanceShare decimal.Decimal
	glanceDamage := defaultGlanceDamage

	critOr := func(v decimal.Decimal) decimal.Decimal {
		if c.GuaranteedCrit {
			return one
		}
		return v
	}

	switch {
	case e.Outcome == wow.HitNormal:
		land = capRatio(nw.ActualHit, cur.ActualHit)
		if cur.Hit.IsPositive() {
			critShare = minDec(one, floor0(nw.Crit.Sub(cur.Crit)).Div(cur.Hit))
		}
		hitShare = one.Sub(critShare)

	case e.Outcome == wow.HitCrit:
		land = capRatio(nw.ActualHit, cur.ActualHit)
		critShare = critOr(capRatio(nw.Crit, cur.Crit))
		hitShare = one.Sub(critShare)
		base = base.Div(c.CritMultiplier)

	case e.Outcome == wow.HitGlance && c.Melee:
		land = one
		glanceShare = one
		glanceDamage = one.Sub(nw.GlancePenalty)
		base = base.Div(one.Sub(cur.GlancePenalty))

	case e.Outcome == wow.HitDodge:
		land = one.Sub(capRatio(nw.Dodge, cur.Dodge))
		critShare = critOr(nw.Crit)
		hitShare = one.Sub(critShare)
		observed = zero

	case e.Outcome == wow.HitParry:
		land = one.Sub(capRatio(nw.Parry, cur.Parry)).
			Mul(one.Sub(capRatio(nw.FrontMiss, cur.FrontMiss)))
		critShare = critOr(nw.FrontCrit)
		hitShare = one.Sub(critShare)
		observed = zero

	case e.Outcome == wow.HitBlock:
		// Blocked swings count as plain hits; block chance is not re-derived.
		land = one
		hitShare = one

	default:
		// miss, and the spell outcomes (immune, resist) that land the same way
		land = one.Sub(capRatio(one.Sub(nw.ActualHit), one.Sub(cur.ActualHit)))
		critShare = critOr(nw.Crit)
		hitShare = one.Sub(critShare)
		observed = zero
	}

	unit := hitShare.Add(glanceShare.Mul(glanceDamage)).Add(critShare.Mul(c.CritMultiplier))
	delta := base.Add(c.APBonus).Mul(unit).Mul(land).Sub(observed)

	log.Debug().
		Str("ability", e.Ability).
		Stringer("outcome", e.Outcome).
		Stringer("land", land).
		Stringer("crit", critShare).
		Stringer("unit", unit).
		Stringer("delta", delta).
		Msg("reclassify")

	return delta.Mul(mult)
}
