package damage

import (
	"wcl_check/wow"

	"github.com/shopspring/decimal"
)

var (
	strengthToAP  = decimal.NewFromInt(2)
	agilityToCrit = decimal.NewFromInt(20)
)

// TransformAttributes folds strength into attack power and agility into crit.
// Kings (Alliance) and Spirit of Zandalar multiply both stats.
func TransformAttributes(a Attributes, faction wow.Faction, zandalar decimal.Decimal) Attributes {
	m := one
	if faction == wow.Alliance {
		m = m.Mul(wow.KingsMultiplier)
	}
	if !zandalar.IsZero() {
		m = m.Mul(zandalar)
	}

	a.AttackPower = a.AttackPower.Add(a.Strength.Mul(strengthToAP).Mul(m))
	a.Crit = a.Crit.Add(a.Agility.Mul(m).Div(agilityToCrit))
	return a
}
