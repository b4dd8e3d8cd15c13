package fight

import (
	"wcl_check/damage"
	"wcl_check/share"
	"wcl_check/wcl"
	"wcl_check/wow"

	"github.com/shopspring/decimal"
)

// FilterDamage keeps the damage charID dealt to hostile targets. A non-empty whitelist also
// drops targets whose name is not on it.
func FilterDamage(events []wcl.Event, charID int, targetNames map[int]string, whitelist share.SortedStrings) []wcl.Event {
	var r []wcl.Event
	for _, e := range events {
		if e.Type != wow.EventDamage || e.SourceID != charID || e.TargetIsFriendly {
			continue
		}
		if len(whitelist) > 0 && !whitelist.Contains(targetNames[e.TargetID]) {
			continue
		}
		r = append(r, e)
	}
	return r
}

func TargetNames(rd *wcl.ReportDetails) map[int]string {
	m := make(map[int]string, len(rd.Enemies))
	for _, e := range rd.Enemies {
		m[e.ID] = e.Name
	}
	return m
}

func Convert(events []wcl.Event) []damage.CombatEvent {
	r := make([]damage.CombatEvent, len(events))
	for i, e := range events {
		r[i] = damage.CombatEvent{
			Timestamp:    e.Timestamp,
			Type:         e.Type,
			SourceID:     e.SourceID,
			TargetID:     e.TargetID,
			Ability:      e.Ability.Name,
			Outcome:      wow.ParseHitType(e.HitType),
			Amount:       decimal.NewFromInt(e.Amount),
			HitPoints:    e.HitPoints,
			MaxHitPoints: e.MaxHitPoints,
		}
	}
	return r
}
