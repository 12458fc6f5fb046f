package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestDiscountPercentage(t *testing.T) {
	cases := []struct {
		name     string
		original string
		target   string
		want     string
	}{
		{name: "forty percent", original: "1000", target: "600", want: "40"},
		{name: "cents", original: "20", target: "19.99", want: "0.05"},
		{name: "equal prices", original: "250", target: "250", want: "0"},
		{name: "target above original", original: "1000", target: "1500", want: "0"},
		{name: "zero target", original: "80", target: "0", want: "100"},
		{name: "negative target", original: "80", target: "-10", want: "100"},
		{name: "zero original", original: "0", target: "10", want: "0"},
		{name: "negative original", original: "-50", target: "-100", want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DiscountPercentage(d(tc.original), d(tc.target))
			require.Truef(t, got.Equal(d(tc.want)), "expected %s got %s", tc.want, got)
		})
	}
}

func TestDiscountPercentageBounds(t *testing.T) {
	originals := []string{"0.01", "1", "19.99", "1000", "123456.78"}
	targets := []string{"-1000", "-0.01", "0", "0.5", "10", "999.99", "1000", "5000"}
	for _, o := range originals {
		for _, tg := range targets {
			p := DiscountPercentage(d(o), d(tg))
			require.Falsef(t, p.LessThan(MinPercent), "%s/%s below range: %s", o, tg, p)
			require.Falsef(t, p.GreaterThan(MaxPercent), "%s/%s above range: %s", o, tg, p)
		}
	}
}

func TestDiscountPercentageMonotonic(t *testing.T) {
	original := d("1000")
	prev := DiscountPercentage(original, d("1200"))
	for _, target := range []string{"1000", "999", "750", "600", "1", "0", "-5"} {
		next := DiscountPercentage(original, d(target))
		require.Falsef(t, next.LessThan(prev), "percentage decreased at target %s: %s < %s", target, next, prev)
		prev = next
	}
}

func TestClampPercent(t *testing.T) {
	require.True(t, ClampPercent(d("-3")).Equal(MinPercent))
	require.True(t, ClampPercent(d("150")).Equal(MaxPercent))
	require.True(t, ClampPercent(d("42.5")).Equal(d("42.5")))
}
