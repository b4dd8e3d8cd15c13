package fight

import (
	"wcl_check/damage"
	"wcl_check/wow"

	"github.com/shopspring/decimal"
)

// AbilityStats aggregates the tracked abilities with buff and crit multipliers divided out, and
// writes each event's damage multiplier. Melee swings must have their hand assigned first.
func AbilityStats(events []damage.CombatEvent, buffs damage.Buffs) map[string]damage.AbilityStat {
	stats := make(map[string]damage.AbilityStat, len(wow.StatKeys))
	for _, k := range wow.StatKeys {
		stats[k] = damage.AbilityStat{}
	}

	base := buffs.BaseMultiplier()

	for i := range events {
		e := &events[i]

		key := wow.StatKey(e.Ability, e.Hand)
		st, ok := stats[key]
		if !ok {
			continue
		}

		e.Multiplier = base
		if buffs.Windows.Contains(wow.BuffDeathWish, e.Timestamp) {
			e.Multiplier = e.Multiplier.Mul(wow.DeathWishMultiplier)
		}

		st.Attacks++
		amount := e.Amount

		switch e.Outcome {
		case wow.HitNormal:
			st.Hit++
			amount = amount.Div(e.Multiplier)
		case wow.HitCrit:
			st.Crit++
			amount = amount.Div(e.Multiplier).Div(critMultiplier(key))
		case wow.HitGlance:
			st.Glance++
		case wow.HitDodge:
			st.Dodge++
		case wow.HitParry:
			st.Parry++
		case wow.HitMiss:
			st.Miss++
		case wow.HitBlock:
			st.Block++
		default:
			st.Unknown++
		}

		st.TotalHitDamage = st.TotalHitDamage.Add(amount)
		stats[key] = st
	}

	for k, st := range stats {
		n := st.Hit + st.Crit + st.Glance
		if n < 1 {
			n = 1
		}
		st.AvgHitDamage = st.TotalHitDamage.Div(decimal.NewFromInt(int64(n)))
		stats[k] = st
	}

	return stats
}

func critMultiplier(key string) decimal.Decimal {
	if key == wow.KeyMainHand || key == wow.KeyOffHand {
		return wow.CritMultiplierMelee
	}
	return wow.CritMultiplierAbility
}
