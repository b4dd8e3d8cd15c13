package damage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRageModel() RageModel {
	tables := ComputeTables(fixtureStatus(), Attributes{})
	return RageModel{
		AvgHitDamage: di(1000),
		MainHand:     tables.MainHand.New,
		Ability:      tables.Ability.New,
	}
}

func testSlots(n int) []Slot {
	slots := make([]Slot, n)
	for i := range slots {
		slots[i] = Slot{EventIndex: i, Multiplier: one}
	}
	return slots
}

func TestRageSpend(t *testing.T) {
	l := NewRageLedger(di(2000), zero)
	hs := l.Spend(testSlots(3), testRageModel())

	require.Len(t, l.Slots, 3)
	assert.Equal(t, SlotFull, l.Slots[0].Tag)
	assert.Equal(t, SlotFraction, l.Slots[1].Tag)
	assert.Equal(t, SlotUntouched, l.Slots[2].Tag)
	assertNear(t, "0.476053976", l.Slots[1].Fraction)

	assertNear(t, "695.065551557", hs)
	assertNear(t, "470.8944", l.Slots[0].Delta)
	assert.True(t, l.Slots[2].Delta.IsZero())

	assert.True(t, l.Retained.IsZero())
	assertNear(t, l.Generated.String(), l.Spent)
}

func TestRageSpendMultiplier(t *testing.T) {
	slots := testSlots(2)
	slots[0].Multiplier = d("1.2")

	l := NewRageLedger(di(2000), zero)
	assertNear(t, "789.244431557", l.Spend(slots, testRageModel()))
}

func TestRageDeficit(t *testing.T) {
	l := NewRageLedger(di(-300), zero)
	hs := l.Spend(testSlots(3), testRageModel())

	assertNear(t, "-104.259832734", hs)
	assertNear(t, "-9.757049468", l.Charged)
	assert.True(t, l.Retained.IsZero())
	for _, s := range l.Slots {
		assert.Equal(t, SlotUntouched, s.Tag)
	}

	// the deficit is not billed again to Execute
	assert.True(t, l.Finish(fixtureStat()).IsZero())

	l = NewRageLedger(di(-300), di(3000))
	l.Spend(testSlots(3), testRageModel())
	l.Finish(AbilityStat{Attacks: 2, Hit: 1, Crit: 1})
	assertNear(t, l.ExecuteGenerated.String(), l.Finisher)
}

func TestRageFinish(t *testing.T) {
	l := NewRageLedger(zero, di(3000))
	l.Spend(testSlots(2), testRageModel())

	exec := AbilityStat{Attacks: 2, Hit: 1, Crit: 1}
	assertNear(t, "2341.691872378", l.Finish(exec))
	assertNear(t, l.ExecuteGenerated.String(), l.Finisher)

	none := NewRageLedger(zero, di(3000))
	assert.True(t, none.Finish(AbilityStat{}).IsZero())
}

func TestRageRoundingNoise(t *testing.T) {
	l := NewRageLedger(d("-0.0000001"), zero)
	assert.True(t, l.Spend(testSlots(1), testRageModel()).IsZero())
	assert.True(t, l.Charged.IsZero())
	assert.Equal(t, SlotUntouched, l.Slots[0].Tag)
}

func TestRageConservation(t *testing.T) {
	for _, normal := range []int64{-2000, -10, 0, 10, 500, 2000, 20000} {
		for _, execute := range []int64{-500, 0, 300, 4000} {
			l := NewRageLedger(di(normal), di(execute))
			l.Spend(testSlots(4), testRageModel())
			l.Finish(fixtureStat())

			budget := floor0(l.Generated).Add(floor0(l.ExecuteGenerated))
			used := l.Spent.Add(l.Finisher)
			assert.True(t, used.LessThanOrEqual(budget.Add(d("0.00001"))),
				"normal %d execute %d: used %s of %s", normal, execute, used, budget)
		}
	}
}
