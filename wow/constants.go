package wow

import "github.com/shopspring/decimal"

// Combat constants for a level 60 character against a level 63 boss.
var (
	CritMultiplierAbility = decimal.RequireFromString("2.2") // Impale
	CritMultiplierMelee   = decimal.RequireFromString("2.0")

	GlanceRate = decimal.RequireFromString("0.40")

	// damage × 2.5 / (60 × 22.5 + 270)
	RageConversion = decimal.RequireFromString("30.747")

	ExecuteDamagePerRage  = decimal.NewFromInt(15)
	HeroicStrikeRageCost  = decimal.NewFromInt(12)
	HeroicStrikeDamageAdd = decimal.NewFromInt(157)

	DeathWishMultiplier   = decimal.RequireFromString("1.2")
	DarkFortuneMultiplier = decimal.RequireFromString("1.1")
	ZandalarMultiplier    = decimal.RequireFromString("1.15")
	KingsMultiplier       = decimal.RequireFromString("1.1") // Blessing of Kings, Alliance only

	ExecuteThreshold = decimal.RequireFromString("0.2")

	WeaponSpeedDivisor = decimal.NewFromInt(14)
)
