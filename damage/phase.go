package damage

import (
	"wcl_check/wow"

	"github.com/shopspring/decimal"
)

// Phase marks where the execute phase begins.
type Phase struct {
	ExecuteStart int64 `json:"execute_start"`
	Found        bool  `json:"found"`
}

// NewPhase finds the first damage event on a boss at or below the execute health threshold.
func NewPhase(events []CombatEvent, bossIDs []int) Phase {
	bosses := make(map[int]struct{}, len(bossIDs))
	for _, id := range bossIDs {
		bosses[id] = struct{}{}
	}

	for i := range events {
		e := &events[i]
		if e.Type != wow.EventDamage {
			continue
		}
		if _, ok := bosses[e.TargetID]; !ok {
			continue
		}
		if e.HitPoints <= 0 || e.MaxHitPoints <= 0 {
			continue
		}

		ratio := decimal.NewFromInt(e.HitPoints).Div(decimal.NewFromInt(e.MaxHitPoints))
		if ratio.LessThanOrEqual(wow.ExecuteThreshold) {
			return Phase{ExecuteStart: e.Timestamp, Found: true}
		}
	}
	return Phase{}
}

// Executing reports whether ts is in the execute phase. A zero timestamp never is.
func (p Phase) Executing(ts int64) bool {
	return p.Found && ts != 0 && ts >= p.ExecuteStart
}
