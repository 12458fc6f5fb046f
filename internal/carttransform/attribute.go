package carttransform

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/cart-transform/internal/pricing"
)

const (
	// PriceAttributeKey is the line attribute carrying the externally determined price.
	PriceAttributeKey = "_Price"
	// PricePrefix must lead every price attribute value.
	PricePrefix = "$"
)

// TargetPrice returns the first parseable price attribute in attrs.
// Entries with the right key but an unparseable value are skipped.
func TargetPrice(attrs []Attribute) (decimal.Decimal, bool) {
	for _, attr := range attrs {
		if attr.Key != PriceAttributeKey {
			continue
		}
		if price, ok := ParsePrice(attr.Value); ok {
			return price, true
		}
	}
	return decimal.Zero, false
}

// ParsePrice parses values of the form "$600" or "$19.99". Only a plain
// '.'-separated decimal is accepted after the dollar sign: no thousands
// separators, no whitespace and no locale-specific decimal comma. Values outside
// the pricing range limits are rejected like any other malformed value.
func ParsePrice(value string) (decimal.Decimal, bool) {
	rest, found := strings.CutPrefix(value, PricePrefix)
	if !found || rest == "" {
		return decimal.Zero, false
	}
	price, err := pricing.ParseAmount(rest)
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}

// hasPriceAttribute reports whether any attribute uses the price key, parseable or not.
func hasPriceAttribute(attrs []Attribute) bool {
	for _, attr := range attrs {
		if attr.Key == PriceAttributeKey {
			return true
		}
	}
	return false
}
