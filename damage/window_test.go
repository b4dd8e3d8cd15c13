package damage

import (
	"testing"

	"wcl_check/wow"

	"github.com/stretchr/testify/assert"
)

func TestWindowIndex(t *testing.T) {
	var x WindowIndex
	assert.False(t, x.Contains(wow.BuffDeathWish, 10))

	x.Add(wow.BuffDeathWish, 5000, 6000)
	x.Add(wow.BuffDeathWish, 1000, 2000)
	x.Add(wow.BuffRecklessness, 3000, 3500)

	assert.Equal(t, []Window{{1000, 2000}, {5000, 6000}}, x.Windows(wow.BuffDeathWish))

	for ts, want := range map[int64]bool{
		999: false, 1000: true, 1500: true, 2000: true, 2001: false,
		4999: false, 5000: true, 6000: true, 6001: false,
	} {
		assert.Equal(t, want, x.Contains(wow.BuffDeathWish, ts), "ts %d", ts)
	}
	assert.True(t, x.Contains(wow.BuffRecklessness, 3000))
	assert.False(t, x.Contains(wow.BuffRecklessness, 1500))
	assert.Equal(t, int64(2000), x.Uptime(wow.BuffDeathWish))
}

func TestWindowIndexMerge(t *testing.T) {
	var x WindowIndex
	x.Add(wow.BuffDeathWish, 1000, 3000)
	x.Add(wow.BuffDeathWish, 2500, 4000)
	x.Add(wow.BuffDeathWish, 9000, 8000)

	assert.Equal(t, []Window{{1000, 4000}, {8000, 9000}}, x.Windows(wow.BuffDeathWish))
}
