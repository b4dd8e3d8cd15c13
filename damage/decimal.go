package damage

import "github.com/shopspring/decimal"

var (
	zero    = decimal.Zero
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func floor0(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return zero
	}
	return v
}

func clamp01(v decimal.Decimal) decimal.Decimal {
	if v.GreaterThan(one) {
		return one
	}
	return floor0(v)
}

func minDec(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

func maxDec(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// capRatio is min(1, n/d); a non-positive denominator counts as a full ratio.
func capRatio(n, d decimal.Decimal) decimal.Decimal {
	if !d.IsPositive() {
		return one
	}
	return minDec(one, n.Div(d))
}

// quantize5 rounds to 1e-5 so that sign checks ignore rounding noise.
func quantize5(v decimal.Decimal) decimal.Decimal {
	return v.Round(5)
}

func percent(v decimal.Decimal) decimal.Decimal {
	return v.Div(hundred)
}
