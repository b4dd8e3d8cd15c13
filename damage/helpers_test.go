package damage

import (
	"testing"

	"wcl_check/wow"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func di(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertNear(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	diff := got.Sub(d(want)).Abs()
	assert.True(t, diff.LessThan(d("0.000001")), append([]interface{}{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func fixtureStatus() Status {
	return Status{
		MainHandSkill: di(305),
		OffHandSkill:  di(305),
		MainHandSpeed: d("2.4"),
		OffHandSpeed:  d("1.8"),
		Hit:           di(9),
		Crit:          di(30),
	}
}

func fixtureStat() AbilityStat {
	return AbilityStat{TotalHitDamage: di(1000), AvgHitDamage: di(1000), Attacks: 1, Hit: 1}
}

// fixtureFight is one swing of every hand and ability, all with the same outcome.
// Avoided swings carry no damage; landed ones deal 1000.
func fixtureFight(outcome wow.HitType) *Fight {
	amount := di(1000)
	switch outcome {
	case wow.HitMiss, wow.HitDodge, wow.HitParry:
		amount = zero
	}

	swings := []struct {
		name string
		hand wow.Hand
	}{
		{wow.NameMelee, wow.HandMain},
		{wow.NameMelee, wow.HandOff},
		{wow.NameBloodthirst, wow.HandNone},
		{wow.NameWhirlwind, wow.HandNone},
		{wow.NameExecute, wow.HandNone},
		{wow.NameHeroicStrike, wow.HandNone},
	}

	f := &Fight{
		BossIDs:  []int{99},
		Duration: di(10),
		Status:   fixtureStatus(),
		Faction:  wow.Alliance,
		Stats:    map[string]AbilityStat{},
	}
	for i, s := range swings {
		f.Events = append(f.Events, CombatEvent{
			Timestamp:  int64(i+1) * 1000,
			Type:       wow.EventDamage,
			TargetID:   99,
			Ability:    s.name,
			Hand:       s.hand,
			Outcome:    outcome,
			Amount:     amount,
			Multiplier: one,
		})
	}
	for _, k := range wow.StatKeys {
		f.Stats[k] = fixtureStat()
	}
	return f
}
