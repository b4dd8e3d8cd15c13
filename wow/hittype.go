package wow

import "strconv"

// HitType is the outcome code Warcraft Logs reports on a damage event.
type HitType int

const (
	HitMiss          HitType = 0
	HitNormal        HitType = 1
	HitCrit          HitType = 2
	HitBlock         HitType = 4
	HitGlance        HitType = 6
	HitDodge         HitType = 7
	HitParry         HitType = 8
	HitImmune        HitType = 10
	HitResist        HitType = 14
	HitPartialResist HitType = 16

	HitUnknown HitType = -1
)

var hitTypeNames = map[HitType]string{
	HitMiss:          "miss",
	HitNormal:        "hit",
	HitCrit:          "crit",
	HitBlock:         "block",
	HitGlance:        "glance",
	HitDodge:         "dodge",
	HitParry:         "parry",
	HitImmune:        "immune",
	HitResist:        "resist",
	HitPartialResist: "partial_resist",
}

// ParseHitType maps a raw code to a HitType, HitUnknown for anything unrecognized.
func ParseHitType(code int) HitType {
	if _, ok := hitTypeNames[HitType(code)]; ok {
		return HitType(code)
	}
	return HitUnknown
}

// Known reports whether h is one of the outcome kinds the log provider defines.
func (h HitType) Known() bool {
	_, ok := hitTypeNames[h]
	return ok
}

// Landed reports whether the swing dealt its damage (hit, crit or glance).
func (h HitType) Landed() bool {
	return h == HitNormal || h == HitCrit || h == HitGlance
}

func (h HitType) String() string {
	if s, ok := hitTypeNames[h]; ok {
		return s
	}
	return "unknown(" + strconv.Itoa(int(h)) + ")"
}

////////////////////////////////////////////////////////////////////////////////////////////////////

// Hand is the weapon a melee swing came from.
type Hand int

const (
	HandNone Hand = iota
	HandMain
	HandOff
)

func (h Hand) String() string {
	switch h {
	case HandMain:
		return "main"
	case HandOff:
		return "off"
	}
	return ""
}
