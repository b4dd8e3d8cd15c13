package fight

import (
	"sort"

	"wcl_check/damage"
	"wcl_check/wow"

	"github.com/shopspring/decimal"
)

const TotalRow = "Total"

// Row is one line of the damage breakdown. Hits counts every outcome that dealt damage.
type Row struct {
	Ability       string          `json:"ability"`
	TotalDamage   decimal.Decimal `json:"total_damage"`
	DPS           decimal.Decimal `json:"dps"`
	DamagePercent decimal.Decimal `json:"damage_percent"`

	Casts         int `json:"casts"`
	Hits          int `json:"hits"`
	Crits         int `json:"crits"`
	Misses        int `json:"misses"`
	Dodges        int `json:"dodges"`
	Parries       int `json:"parries"`
	Glances       int `json:"glances"`
	Blocks        int `json:"blocks"`
	Immune        int `json:"immune"`
	Resist        int `json:"resist"`
	PartialResist int `json:"partial_resist"`

	CritRate decimal.Decimal `json:"crit_rate"`
	MissRate decimal.Decimal `json:"miss_rate"`
}

func (r *Row) add(e *damage.CombatEvent) {
	r.TotalDamage = r.TotalDamage.Add(e.Amount)
	r.Casts++

	switch e.Outcome {
	case wow.HitNormal:
		r.Hits++
	case wow.HitCrit:
		r.Crits++
	case wow.HitMiss:
		r.Misses++
	case wow.HitBlock:
		r.Blocks++
	case wow.HitGlance:
		r.Glances++
	case wow.HitDodge:
		r.Dodges++
	case wow.HitParry:
		r.Parries++
	case wow.HitImmune:
		r.Immune++
	case wow.HitResist:
		r.Resist++
	case wow.HitPartialResist:
		r.PartialResist++
	}
}

func (r *Row) missed() int {
	return r.Misses + r.Dodges + r.Parries + r.Resist
}

func percentOf(n, d int) decimal.Decimal {
	if d <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(n)).Div(decimal.NewFromInt(int64(d))).Mul(decimal.NewFromInt(100))
}

// Summarize builds the per-ability damage breakdown, largest first, followed by the Total row.
func Summarize(events []damage.CombatEvent, duration decimal.Decimal) []Row {
	if len(events) == 0 {
		return nil
	}

	byAbility := make(map[string]*Row)
	var rows []*Row
	for i := range events {
		e := &events[i]
		r, ok := byAbility[e.Ability]
		if !ok {
			r = &Row{Ability: e.Ability}
			byAbility[e.Ability] = r
			rows = append(rows, r)
		}
		r.add(e)
	}

	var (
		damageSum decimal.Decimal
		total     = Row{Ability: TotalRow}
	)
	for _, r := range rows {
		damageSum = damageSum.Add(r.TotalDamage)
	}

	for _, r := range rows {
		landed := r.Hits + r.Crits + r.Glances + r.Blocks
		if landed > 0 {
			r.CritRate = percentOf(r.Crits, landed)
		} else {
			r.CritRate = decimal.NewFromInt(int64(r.Crits)).Mul(decimal.NewFromInt(100))
		}
		r.MissRate = percentOf(r.missed(), r.Casts)
		r.Hits = landed

		if damageSum.IsPositive() {
			r.DamagePercent = r.TotalDamage.Div(damageSum).Mul(decimal.NewFromInt(100))
		}
		if duration.IsPositive() {
			r.DPS = r.TotalDamage.Div(duration)
		}

		total.TotalDamage = total.TotalDamage.Add(r.TotalDamage)
		total.Casts += r.Casts
		total.Hits += r.Hits
		total.Crits += r.Crits
		total.Misses += r.Misses
		total.Dodges += r.Dodges
		total.Parries += r.Parries
		total.Glances += r.Glances
		total.Blocks += r.Blocks
		total.Immune += r.Immune
		total.Resist += r.Resist
		total.PartialResist += r.PartialResist
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalDamage.GreaterThan(rows[j].TotalDamage) })

	if duration.IsPositive() {
		total.DPS = total.TotalDamage.Div(duration)
	}
	total.DamagePercent = decimal.NewFromInt(100)
	total.CritRate = percentOf(total.Crits, total.Hits+total.Crits)
	total.MissRate = percentOf(total.missed(), total.Casts)

	r := make([]Row, 0, len(rows)+1)
	for _, row := range rows {
		r = append(r, *row)
	}
	return append(r, total)
}
