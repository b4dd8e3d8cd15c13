package damage

import (
	"wcl_check/wow"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingAbilityStat = errors.New("missing ability stat")
	ErrInvalidDuration    = errors.New("fight duration must be positive")
)

// replayed is an event resolved once per fight.
type replayed struct {
	index     int
	kind      wow.AbilityKind
	info      wow.AbilityInfo
	stat      AbilityStat
	executing bool
	reckless  bool
}

// Calculator replays one fight under hypothetical attributes. It is safe for concurrent use.
type Calculator struct {
	fight *Fight
	phase Phase

	replay []replayed
	stats  map[string]AbilityStat
}

// NewCalculator resolves every damage event of f to its ability and stat.
// An event whose ability has no AbilityStat is a configuration error.
func NewCalculator(f *Fight) (*Calculator, error) {
	if f == nil || !f.Duration.IsPositive() {
		return nil, errors.WithStack(ErrInvalidDuration)
	}

	c := &Calculator{
		fight: f,
		phase: NewPhase(f.Events, f.BossIDs),
		stats: f.Stats,
	}
	if c.stats == nil {
		c.stats = map[string]AbilityStat{}
	}

	for i := range f.Events {
		e := &f.Events[i]
		if e.Type != wow.EventDamage || !e.Outcome.Known() {
			continue
		}

		kind := wow.Resolve(e.Ability, e.Hand)
		info, ok := wow.Abilities[kind]
		if !ok || !info.Simulated {
			continue
		}

		stat, ok := c.stats[info.Key]
		if !ok {
			return nil, errors.Wrapf(ErrMissingAbilityStat, "%s (event %d)", info.Key, i)
		}

		c.replay = append(c.replay, replayed{
			index:     i,
			kind:      kind,
			info:      info,
			stat:      stat,
			executing: c.phase.Executing(e.Timestamp),
			reckless:  f.Buffs.Windows.Contains(wow.BuffRecklessness, e.Timestamp),
		})
	}

	return c, nil
}

func (c *Calculator) Fight() *Fight {
	return c.fight
}

func (c *Calculator) Phase() Phase {
	return c.phase
}

// Simulation is the outcome of one run, ledger included.
type Simulation struct {
	Attributes Attributes   `json:"attributes"`
	Tables     AttackTables `json:"tables"`
	Result     Result       `json:"result"`
	Rage       *RageLedger  `json:"rage"`
}

func (c *Calculator) Calculate(a Attributes) (Result, error) {
	s, err := c.Simulate(a)
	if err != nil {
		return nil, err
	}
	return s.Result, nil
}

// Simulate replays every event against the tables a produces.
func (c *Calculator) Simulate(a Attributes) (*Simulation, error) {
	if a.IsZero() {
		return &Simulation{
			Attributes: a,
			Result:     zeroResult(),
			Rage:       NewRageLedger(zero, zero),
		}, nil
	}

	f := c.fight
	st := f.Status
	at := TransformAttributes(a, f.Faction, f.Buffs.StatMultiplier())
	tables := ComputeTables(st, at)

	sums := make(map[string]decimal.Decimal, len(Labels))
	for _, l := range Labels {
		sums[l] = zero
	}

	var (
		slots        []Slot
		normalMelee  = zero
		executeMelee = zero
	)

	for _, r := range c.replay {
		e := &f.Events[r.index]

		category := r.info.Table
		if r.kind == wow.AbilityOffHand {
			if r.executing || (e.Outcome == wow.HitNormal && tables.OffHand.Current.Hit.IsZero()) {
				category = wow.TableOffHandRetained
			}
		}

		critMultiplier := wow.CritMultiplierAbility
		if r.info.Melee {
			critMultiplier = wow.CritMultiplierMelee
		}

		delta := Reclassify(Cast{
			Event:          e,
			Table:          tables.For(category),
			Stat:           r.stat,
			APBonus:        apBonus(r.info, st, at.AttackPower),
			CritMultiplier: critMultiplier,
			Melee:          r.info.Melee,
			GuaranteedCrit: r.reckless,
		})
		sums[r.info.Label] = sums[r.info.Label].Add(delta)

		if !r.info.Melee {
			continue
		}
		if r.executing {
			executeMelee = executeMelee.Add(delta)
			continue
		}
		normalMelee = normalMelee.Add(delta)
		if r.kind == wow.AbilityMainHand {
			slots = append(slots, Slot{EventIndex: r.index, Multiplier: e.DamageMultiplier()})
		}
	}

	if !at.Haste.IsZero() {
		h := percent(at.Haste)
		for _, k := range []wow.AbilityKind{wow.AbilityMainHand, wow.AbilityOffHand, wow.AbilityHeroicStrike} {
			info := wow.Abilities[k]
			sums[info.Label] = sums[info.Label].Add(c.stats[info.Key].TotalHitDamage.Mul(h))
		}
		normalMelee = normalMelee.Mul(one.Add(h))
		executeMelee = executeMelee.Mul(one.Add(h))
	}

	// most recent swing first
	for i, j := 0, len(slots)-1; i < j; i, j = i+1, j-1 {
		slots[i], slots[j] = slots[j], slots[i]
	}

	ledger := NewRageLedger(normalMelee, executeMelee)
	sums[LabelHeroicStrikeRage] = ledger.Spend(slots, RageModel{
		AvgHitDamage: c.stats[wow.KeyMainHand].AvgHitDamage,
		MainHand:     tables.MainHand.New,
		Ability:      tables.Ability.New,
	})
	sums[LabelExecuteRage] = ledger.Finish(c.stats[wow.NameExecute])

	return &Simulation{
		Attributes: a,
		Tables:     tables,
		Result:     aggregate(sums, f.Duration),
		Rage:       ledger,
	}, nil
}

func apBonus(info wow.AbilityInfo, st Status, ap decimal.Decimal) decimal.Decimal {
	switch info.Scaling {
	case wow.ScaleFlat:
		return info.Factor.Mul(ap)
	case wow.ScaleMainHandSpeed:
		return st.MainHandSpeed.Mul(ap).Div(wow.WeaponSpeedDivisor)
	case wow.ScaleOffHandSpeed:
		return st.OffHandSpeed.Mul(ap).Div(wow.WeaponSpeedDivisor)
	}
	return zero
}

// aggregate converts damage sums into per second rates and adds the total.
func aggregate(sums map[string]decimal.Decimal, duration decimal.Decimal) Result {
	r := make(Result, len(Labels))
	total := zero
	for _, l := range Labels {
		if l == LabelTotal {
			continue
		}
		v := sums[l].Div(duration)
		r[l] = v
		total = total.Add(v)
	}
	r[LabelTotal] = total
	return r
}
