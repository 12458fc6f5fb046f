package pricing

import "github.com/shopspring/decimal"

var (
	// MinPercent is the lowest percentage decrease that can be emitted.
	MinPercent = decimal.Zero
	// MaxPercent is the highest percentage decrease that can be emitted.
	MaxPercent = decimal.NewFromInt(100)
)

// DiscountPercentage converts an absolute target price into the percentage decrease that
// takes original down to target. The result is always within [0, 100].
func DiscountPercentage(original, target decimal.Decimal) decimal.Decimal {
	if !original.IsPositive() {
		return decimal.Zero
	}
	percent := original.Sub(target).Mul(MaxPercent).Div(original)
	return ClampPercent(percent)
}

// ClampPercent bounds p to the closed interval [MinPercent, MaxPercent].
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.LessThan(MinPercent) {
		return MinPercent
	}
	if p.GreaterThan(MaxPercent) {
		return MaxPercent
	}
	return p
}
