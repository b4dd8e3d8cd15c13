package damage

import (
	"testing"

	"wcl_check/wow"

	"github.com/stretchr/testify/assert"
)

func TestNewPhase(t *testing.T) {
	events := []CombatEvent{
		{Timestamp: 100, Type: wow.EventDamage, TargetID: 1, HitPoints: 50, MaxHitPoints: 100},
		{Timestamp: 200, Type: wow.EventDamage, TargetID: 2, HitPoints: 10, MaxHitPoints: 100}, // not a boss
		{Timestamp: 300, Type: wow.EventApplyBuff, TargetID: 1, HitPoints: 10, MaxHitPoints: 100},
		{Timestamp: 400, Type: wow.EventDamage, TargetID: 1, HitPoints: 0, MaxHitPoints: 100},
		{Timestamp: 500, Type: wow.EventDamage, TargetID: 1, HitPoints: 20, MaxHitPoints: 100},
		{Timestamp: 600, Type: wow.EventDamage, TargetID: 1, HitPoints: 5, MaxHitPoints: 100},
	}

	p := NewPhase(events, []int{1})
	assert.True(t, p.Found)
	assert.Equal(t, int64(500), p.ExecuteStart)

	assert.False(t, p.Executing(499))
	assert.True(t, p.Executing(500))
	assert.True(t, p.Executing(10000))
	assert.False(t, p.Executing(0))

	none := NewPhase(events, []int{3})
	assert.False(t, none.Found)
	assert.False(t, none.Executing(600))
}
