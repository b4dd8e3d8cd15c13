package wow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHitType(t *testing.T) {
	assert.Equal(t, HitGlance, ParseHitType(6))
	assert.Equal(t, HitPartialResist, ParseHitType(16))
	assert.Equal(t, HitUnknown, ParseHitType(3))
	assert.False(t, HitUnknown.Known())
	assert.True(t, HitGlance.Landed())
	assert.False(t, HitBlock.Landed())
	assert.Equal(t, "unknown(3)", HitType(3).String())
}

func TestResolve(t *testing.T) {
	assert.Equal(t, AbilityMainHand, Resolve(NameMelee, HandMain))
	assert.Equal(t, AbilityOffHand, Resolve(NameMelee, HandOff))
	assert.Equal(t, AbilityNone, Resolve(NameMelee, HandNone))
	assert.Equal(t, AbilityBloodthirst, Resolve(NameBloodthirst, HandNone))
	assert.Equal(t, AbilityNone, Resolve("Hamstring", HandNone))

	for kind, info := range Abilities {
		assert.Equal(t, kind, info.Kind)
	}
	assert.Equal(t, "0.45", Abilities[AbilityBloodthirst].Factor.String())
	assert.False(t, Abilities[AbilityCleave].Simulated)
}

func TestStatKey(t *testing.T) {
	assert.Equal(t, KeyMainHand, StatKey(NameMelee, HandMain))
	assert.Equal(t, KeyOffHand, StatKey(NameMelee, HandOff))
	assert.Equal(t, NameExecute, StatKey(NameExecute, HandNone))
	assert.True(t, IsSwing(NameCleave))
	assert.False(t, IsSwing(NameWhirlwind))
}

func TestWhitelist(t *testing.T) {
	require.Contains(t, TargetWhitelist, "克苏恩")
	assert.ElementsMatch(t, []string{"维姆", "亚尔基公主", "克里勋爵"}, TargetWhitelist["安其拉三宝"])

	wl, err := ParseWhitelist(strings.NewReader("\uFEFFOuro, Ouro ,,Dirt Mound\nbad\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"Ouro": {"Ouro", "Dirt Mound"}}, wl)
}
