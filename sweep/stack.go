package sweep

import (
	"context"

	"wcl_check/damage"

	"github.com/shopspring/decimal"
)

type Gain struct {
	Attribute    string                     `json:"attribute"`
	TotalDPSGain decimal.Decimal            `json:"total_dps_gain"`
	AbilityGains map[string]decimal.Decimal `json:"ability_gains"`
}

// StackResult holds the combined gain of all attributes and the gain of each one alone.
type StackResult struct {
	TotalGains      map[string]decimal.Decimal `json:"total_gains"`
	IndividualGains []Gain                     `json:"individual_gains"`
}

type single struct {
	name  string
	value func(a damage.Attributes) decimal.Decimal
	set   func(a *damage.Attributes, v decimal.Decimal)
}

var singles = []single{
	{"Strength", func(a damage.Attributes) decimal.Decimal { return a.Strength }, func(a *damage.Attributes, v decimal.Decimal) { a.Strength = v }},
	{"Agility", func(a damage.Attributes) decimal.Decimal { return a.Agility }, func(a *damage.Attributes, v decimal.Decimal) { a.Agility = v }},
	{"Attack Power", func(a damage.Attributes) decimal.Decimal { return a.AttackPower }, func(a *damage.Attributes, v decimal.Decimal) { a.AttackPower = v }},
	{"Haste", func(a damage.Attributes) decimal.Decimal { return a.Haste }, func(a *damage.Attributes, v decimal.Decimal) { a.Haste = v }},
	{"Crit", func(a damage.Attributes) decimal.Decimal { return a.Crit }, func(a *damage.Attributes, v decimal.Decimal) { a.Crit = v }},
	{"Hit", func(a damage.Attributes) decimal.Decimal { return a.Hit }, func(a *damage.Attributes, v decimal.Decimal) { a.Hit = v }},
	{"Weapon Skill (MH)", func(a damage.Attributes) decimal.Decimal { return a.MainHandSkill }, func(a *damage.Attributes, v decimal.Decimal) { a.MainHandSkill = v }},
	{"Weapon Skill (OH)", func(a damage.Attributes) decimal.Decimal { return a.OffHandSkill }, func(a *damage.Attributes, v decimal.Decimal) { a.OffHandSkill = v }},
}

func withoutTotal(r damage.Result) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(r))
	for k, v := range r {
		if k != damage.LabelTotal {
			m[k] = v
		}
	}
	return m
}

// Stack compares the gain of attrs as a whole with the gain of each non-zero attribute alone.
func Stack(ctx context.Context, calc Calculator, attrs damage.Attributes, opt Options) (*StackResult, error) {
	runs := []damage.Attributes{attrs}
	var names []string
	for _, s := range singles {
		v := s.value(attrs)
		if v.IsZero() {
			continue
		}
		var a damage.Attributes
		s.set(&a, v)
		runs = append(runs, a)
		names = append(names, s.name)
	}

	results, err := run(ctx, calc, runs, opt)
	if err != nil {
		return nil, err
	}

	r := &StackResult{
		TotalGains:      withoutTotal(results[0]),
		IndividualGains: make([]Gain, 0, len(names)),
	}
	for i, name := range names {
		res := results[i+1]
		r.IndividualGains = append(r.IndividualGains, Gain{
			Attribute:    name,
			TotalDPSGain: res.Total(),
			AbilityGains: withoutTotal(res),
		})
	}
	return r, nil
}
