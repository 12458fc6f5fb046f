package carttransform

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	valid := map[string]string{
		"$600":   "600",
		"$19.99": "19.99",
		"$0":     "0",
		"$-5":    "-5",
		"$1e3":   "1000",
	}
	for in, want := range valid {
		got, ok := ParsePrice(in)
		require.Truef(t, ok, "expected %q to parse", in)
		require.Truef(t, got.Equal(decimal.RequireFromString(want)), "%q: expected %s got %s", in, want, got)
	}

	invalid := []string{"", "$", "600", "abc", "$abc", "$$600", "$1,000", "$19,99", "$ 600", "USD600", "$NaN", "$Inf"}
	invalid = append(invalid,
		"$1e65",
		"$1e-65",
		"$1e2000000",
		"$1e-2000000000",
		"$0."+strings.Repeat("0", 70)+"1",
		"$"+strings.Repeat("9", 65),
	)
	for _, in := range invalid {
		_, ok := ParsePrice(in)
		require.Falsef(t, ok, "expected %q to be rejected", in)
	}
}

func TestTargetPrice(t *testing.T) {
	t.Run("nil attributes", func(t *testing.T) {
		_, ok := TargetPrice(nil)
		require.False(t, ok)
	})

	t.Run("other keys ignored", func(t *testing.T) {
		_, ok := TargetPrice([]Attribute{{Key: "_price", Value: "$10"}, {Key: "Price", Value: "$10"}})
		require.False(t, ok)
	})

	t.Run("first match wins", func(t *testing.T) {
		price, ok := TargetPrice([]Attribute{
			{Key: "_Engraving", Value: "hello"},
			{Key: PriceAttributeKey, Value: "$600"},
			{Key: PriceAttributeKey, Value: "$700"},
		})
		require.True(t, ok)
		require.True(t, price.Equal(decimal.NewFromInt(600)))
	})

	t.Run("malformed entry skipped for later valid one", func(t *testing.T) {
		price, ok := TargetPrice([]Attribute{
			{Key: PriceAttributeKey, Value: "abc"},
			{Key: PriceAttributeKey, Value: "$42.50"},
		})
		require.True(t, ok)
		require.True(t, price.Equal(decimal.RequireFromString("42.5")))
	})

	t.Run("only malformed entries", func(t *testing.T) {
		attrs := []Attribute{{Key: PriceAttributeKey, Value: "abc"}}
		_, ok := TargetPrice(attrs)
		require.False(t, ok)
		require.True(t, hasPriceAttribute(attrs))
	})
}
