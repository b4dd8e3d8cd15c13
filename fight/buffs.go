package fight

import (
	"wcl_check/damage"
	"wcl_check/wcl"
	"wcl_check/wow"

	"github.com/shopspring/decimal"
)

type toggle struct {
	buff   wow.Buff
	apply  string
	remove string
}

// Death Wish is logged as a debuff on the warrior.
var toggles = map[int]toggle{
	wow.SpellDeathWish:    {wow.BuffDeathWish, wow.EventApplyDebuff, wow.EventRemoveDebuff},
	wow.SpellRecklessness: {wow.BuffRecklessness, wow.EventApplyBuff, wow.EventRemoveBuff},
}

// AnalyzeBuffs reads the static world buffs from the first event's auras and the uptime windows
// of the toggled buffs on charID. Windows still open are closed at fightEnd.
func AnalyzeBuffs(events []wcl.Event, fightEnd int64, charID int) damage.Buffs {
	b := damage.Buffs{
		DarkFortune: decimal.NewFromInt(1),
		Zandalar:    decimal.NewFromInt(1),
		Windows:     damage.WindowIndex{},
	}

	if len(events) > 0 {
		for _, aura := range events[0].Auras {
			switch aura.Ability {
			case wow.SpellSaygesDarkFortune:
				b.DarkFortune = wow.DarkFortuneMultiplier
			case wow.SpellSpiritOfZandalar:
				b.Zandalar = wow.ZandalarMultiplier
			}
		}
	}

	open := make(map[wow.Buff]int64)
	for _, e := range events {
		t, ok := toggles[e.Ability.GUID]
		if !ok || e.TargetID != charID {
			continue
		}

		switch e.Type {
		case t.apply:
			open[t.buff] = e.Timestamp
		case t.remove:
			start, ok := open[t.buff]
			if !ok {
				continue
			}
			b.Windows.Add(t.buff, start, e.Timestamp)
			delete(open, t.buff)
		}
	}

	for buff, start := range open {
		b.Windows.Add(buff, start, fightEnd)
	}

	return b
}
