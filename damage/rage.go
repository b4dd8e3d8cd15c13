package damage

import (
	"wcl_check/wow"

	"github.com/shopspring/decimal"
)

type SlotTag int

const (
	SlotUntouched SlotTag = iota
	SlotFull
	SlotFraction
)

func (t SlotTag) String() string {
	switch t {
	case SlotFull:
		return "full"
	case SlotFraction:
		return "fraction"
	}
	return "untouched"
}

// Slot is a main-hand swing before the execute phase that Heroic Strike could have replaced.
type Slot struct {
	EventIndex int             `json:"event_index"`
	Multiplier decimal.Decimal `json:"multiplier"`

	Tag      SlotTag         `json:"tag"`
	Fraction decimal.Decimal `json:"fraction"`
	Delta    decimal.Decimal `json:"delta"`
}

// RageModel is the expected value of one swing and one Heroic Strike under the new tables.
type RageModel struct {
	AvgHitDamage decimal.Decimal
	MainHand     Rates
	Ability      Rates
}

func (m RageModel) meleeUnit() decimal.Decimal {
	return m.MainHand.Hit.
		Add(wow.CritMultiplierMelee.Mul(m.MainHand.Crit)).
		Add(one.Sub(m.MainHand.GlancePenalty).Mul(wow.GlanceRate))
}

func (m RageModel) heroicStrikeUnit() decimal.Decimal {
	return m.Ability.Hit.Add(wow.CritMultiplierAbility.Mul(m.Ability.Crit))
}

// RageLedger tracks the rage a single simulation run gains and spends. It must not be shared.
type RageLedger struct {
	Generated        decimal.Decimal `json:"generated"`         // before execute
	ExecuteGenerated decimal.Decimal `json:"execute_generated"` // during execute

	Retained decimal.Decimal `json:"retained"`
	// Charged is a rage deficit billed to Heroic Strike up front (never positive).
	Charged  decimal.Decimal `json:"charged"`
	Spent    decimal.Decimal `json:"spent"`
	Finisher decimal.Decimal `json:"finisher"`

	Slots []Slot `json:"slots"`

	HeroicStrikeDelta decimal.Decimal `json:"heroic_strike_delta"`
	ExecuteDelta      decimal.Decimal `json:"execute_delta"`
}

// NewRageLedger converts the melee damage gained before and during execute into rage.
func NewRageLedger(normalMelee, executeMelee decimal.Decimal) *RageLedger {
	normal := normalMelee.Div(wow.RageConversion)
	return &RageLedger{
		Generated:        normal,
		ExecuteGenerated: executeMelee.Div(wow.RageConversion),
		Retained:         normal,
	}
}

// Spend replaces swings in slots, most recent first, with Heroic Strikes while rage lasts
// and returns the damage gained. slots is tagged in place and kept on the ledger.
func (l *RageLedger) Spend(slots []Slot, m RageModel) decimal.Decimal {
	meleeUnit := m.meleeUnit()
	avgSwingRage := meleeUnit.Mul(m.AvgHitDamage).Div(wow.RageConversion)
	avgGain := m.heroicStrikeUnit().Mul(m.AvgHitDamage.Add(wow.HeroicStrikeDamageAdd)).
		Sub(meleeUnit.Mul(m.AvgHitDamage))
	castCost := wow.HeroicStrikeRageCost.Add(avgSwingRage)

	total := zero
	if quantize5(l.Retained).IsNegative() {
		// lost rage means Heroic Strikes that were never cast. The deficit is billed here only
		// and not carried into the execute pool as well, where it would be counted twice.
		total = avgGain.Mul(l.Retained).Div(castCost)
		l.Charged = l.Retained
		l.Retained = zero
	}

	for i := range slots {
		s := &slots[i]
		if !quantize5(l.Retained).IsPositive() {
			break
		}

		var gain decimal.Decimal
		if l.Retained.LessThan(castCost) {
			s.Tag = SlotFraction
			s.Fraction = l.Retained.Div(castCost)
			gain = avgGain.Mul(s.Fraction)
			l.Spent = l.Spent.Add(l.Retained)
			l.Retained = zero
		} else {
			s.Tag = SlotFull
			s.Fraction = one
			gain = avgGain
			l.Spent = l.Spent.Add(castCost)
			l.Retained = l.Retained.Sub(castCost)
		}

		s.Delta = gain.Mul(s.Multiplier)
		total = total.Add(s.Delta)
	}

	l.Slots = slots
	l.HeroicStrikeDelta = total
	return total
}

// Finish turns the leftover rage plus execute phase rage into Execute damage.
// Without any Execute in the original log there is nothing to scale by and it adds nothing.
func (l *RageLedger) Finish(execute AbilityStat) decimal.Decimal {
	l.Retained = l.Retained.Add(l.ExecuteGenerated)
	if !quantize5(l.Retained).IsPositive() {
		l.Retained = zero
	}

	if execute.Attacks == 0 {
		l.ExecuteDelta = zero
		return zero
	}

	odds := decimal.NewFromInt(int64(execute.Hit)).
		Add(decimal.NewFromInt(int64(execute.Crit)).Mul(wow.CritMultiplierAbility)).
		Div(decimal.NewFromInt(int64(execute.Attacks)))

	l.Finisher = l.Retained
	l.ExecuteDelta = l.Retained.Mul(wow.ExecuteDamagePerRage).Mul(odds)
	l.Retained = zero
	return l.ExecuteDelta
}
