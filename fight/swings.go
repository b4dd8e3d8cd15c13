package fight

import (
	"sort"

	"wcl_check/damage"
	"wcl_check/wow"

	"github.com/shopspring/decimal"
)

// ClassifySwings assigns a hand to every melee swing. The main hand gets its share of swings
// from the weapon speeds, less the Heroic Strikes and Cleaves that already replaced main-hand
// swings. Within hits and glances the largest amounts go to the main hand.
func ClassifySwings(events []damage.CombatEvent, mhSpeed, ohSpeed decimal.Decimal) {
	var (
		swings   int
		melee    int
		landed   []*damage.CombatEvent
		glancing []*damage.CombatEvent
		missed   []*damage.CombatEvent
	)

	for i := range events {
		e := &events[i]
		if !wow.IsSwing(e.Ability) {
			continue
		}
		swings++
		if e.Ability != wow.NameMelee {
			continue
		}
		melee++

		switch e.Outcome {
		case wow.HitNormal, wow.HitCrit:
			landed = append(landed, e)
		case wow.HitGlance:
			glancing = append(glancing, e)
		case wow.HitMiss, wow.HitDodge, wow.HitParry, wow.HitBlock:
			missed = append(missed, e)
		}
	}
	if melee == 0 {
		return
	}

	// main-hand share of the melee swings is mh / melee
	mh := mainHandSwings(swings, mhSpeed, ohSpeed) - (swings - melee)
	if mh < 0 {
		mh = 0
	}

	byAmount := func(s []*damage.CombatEvent) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Amount.GreaterThan(s[j].Amount) })
	}
	byAmount(landed)
	byAmount(glancing)

	assignRanked(landed, ceilDiv(len(landed)*mh, melee))
	assignRanked(glancing, ceilDiv(len(glancing)*mh, melee))
	assignMisses(missed, mh, melee)
}

// mainHandSwings is ceil(swings × proportion) with proportion = (1/mh) / (1/mh + 1/oh).
func mainHandSwings(swings int, mhSpeed, ohSpeed decimal.Decimal) int {
	n := decimal.NewFromInt(int64(swings))

	var v decimal.Decimal
	if mhSpeed.IsZero() || ohSpeed.IsZero() {
		v = n.Div(decimal.NewFromInt(2))
	} else {
		v = n.Mul(ohSpeed).Div(mhSpeed.Add(ohSpeed))
	}
	return int(v.Ceil().IntPart())
}

func assignRanked(events []*damage.CombatEvent, main int) {
	for i, e := range events {
		if i < main {
			e.Hand = wow.HandMain
		} else {
			e.Hand = wow.HandOff
		}
	}
}

// assignMisses spreads misses over both hands in turn, keeping the running ratio of each hand
// close to its final count.
func assignMisses(events []*damage.CombatEvent, mh, melee int) {
	n := len(events)
	if n == 0 {
		return
	}

	wantMain := int(decimal.NewFromInt(int64(n * mh)).Div(decimal.NewFromInt(int64(melee))).RoundBank(0).IntPart())
	wantOff := n - wantMain

	var curMain, curOff int
	for _, e := range events {
		var main bool
		switch {
		case wantOff == 0:
			main = true
		case wantMain == 0:
			main = false
		default:
			main = curMain*wantOff <= curOff*wantMain
		}

		switch {
		case main && curMain < wantMain:
			e.Hand = wow.HandMain
			curMain++
		case curOff < wantOff:
			e.Hand = wow.HandOff
			curOff++
		default:
			e.Hand = wow.HandMain
			curMain++
		}
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
