package carttransform

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/cart-transform/internal/pricing"
)

// Input is the cart snapshot supplied by the host for a single run.
type Input struct {
	Cart *Cart `json:"cart" validate:"required"`
}

// Cart holds the ordered cart lines.
type Cart struct {
	Lines []CartLine `json:"lines" validate:"dive"`
}

// CartLine is one purchasable entry in the cart. Quantity is decoded to mirror the host
// payload; adjustments are per unit and never read it.
type CartLine struct {
	ID         string      `json:"id" validate:"required"`
	Quantity   int         `json:"quantity,omitempty" validate:"gte=0"`
	Cost       LineCost    `json:"cost"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// UnitPrice returns the per-quantity amount the adjustment is computed against.
func (l CartLine) UnitPrice() decimal.Decimal {
	return l.Cost.AmountPerQuantity.Amount
}

// LineCost carries the line's pricing before any transform.
type LineCost struct {
	AmountPerQuantity Money `json:"amountPerQuantity"`
}

// Money is an amount in the cart's presentment currency.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode,omitempty"`
}

// UnmarshalJSON accepts the amount as a JSON string or number and rejects amounts
// outside the pricing range limits.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount       json.RawMessage `json:"amount"`
		CurrencyCode string          `json:"currencyCode"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.CurrencyCode = raw.CurrencyCode
	m.Amount = decimal.Zero
	if len(raw.Amount) == 0 || string(raw.Amount) == "null" {
		return nil
	}
	if len(raw.Amount) > pricing.MaxLiteralLen+2 {
		return fmt.Errorf("amount: %w", pricing.ErrAmountOutOfRange)
	}
	literal := string(raw.Amount)
	if raw.Amount[0] == '"' {
		if err := json.Unmarshal(raw.Amount, &literal); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
	}
	amount, err := pricing.ParseAmount(literal)
	if err != nil {
		return fmt.Errorf("amount %q: %w", literal, err)
	}
	m.Amount = amount
	return nil
}

// Attribute is a free-form key/value annotation attached to a line.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Result is the list of operations the host applies to the cart.
type Result struct {
	Operations []Operation `json:"operations"`
}

// Operation wraps a single cart operation. Only updates are produced.
type Operation struct {
	Update *LineUpdate `json:"update,omitempty"`
}

// LineUpdate changes the price of one cart line.
type LineUpdate struct {
	CartLineID string      `json:"cartLineId"`
	Price      PriceUpdate `json:"price"`
}

// PriceUpdate describes how the line price changes.
type PriceUpdate struct {
	Adjustment PriceAdjustment `json:"adjustment"`
}

// PriceAdjustment is a relative price change.
type PriceAdjustment struct {
	PercentageDecrease *Percentage `json:"percentageDecrease,omitempty"`
}

// Percentage is a decimal percentage in [0, 100].
type Percentage struct {
	Value decimal.Decimal `json:"value"`
}

// NewPercentageDecrease builds an update operation for lineID.
func NewPercentageDecrease(lineID string, percent decimal.Decimal) Operation {
	return Operation{Update: &LineUpdate{
		CartLineID: lineID,
		Price: PriceUpdate{Adjustment: PriceAdjustment{
			PercentageDecrease: &Percentage{Value: percent},
		}},
	}}
}
