package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Amounts are rejected outside these limits before any arithmetic. Rescaling two
// decimals to a common exponent costs time and memory proportional to the exponent
// gap, so unbounded exponents would make a single short literal arbitrarily expensive.
const (
	// MaxExponent bounds the absolute base-10 exponent of an amount.
	MaxExponent = 64
	// MaxDigits bounds the number of digits in an amount's coefficient.
	MaxDigits = 64
	// MaxLiteralLen bounds the raw text accepted by ParseAmount.
	MaxLiteralLen = 96
)

// ErrAmountOutOfRange reports an amount whose magnitude or precision exceeds the limits.
var ErrAmountOutOfRange = errors.New("pricing: amount out of range")

// InRange reports whether d fits within MaxExponent and MaxDigits.
func InRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > MaxExponent || exp < -MaxExponent {
		return false
	}
	return d.NumDigits() <= MaxDigits
}

// ParseAmount parses a plain decimal literal and enforces the range limits.
func ParseAmount(s string) (decimal.Decimal, error) {
	if len(s) > MaxLiteralLen {
		return decimal.Zero, ErrAmountOutOfRange
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !InRange(d) {
		return decimal.Zero, ErrAmountOutOfRange
	}
	return d, nil
}
