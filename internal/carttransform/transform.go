package carttransform

import "github.com/noah-isme/cart-transform/internal/pricing"

// LineOutcome classifies what a run did with one cart line.
type LineOutcome string

const (
	// OutcomeAdjusted means the line received a percentage decrease.
	OutcomeAdjusted LineOutcome = "adjusted"
	// OutcomeSkipped means the line had no price attribute.
	OutcomeSkipped LineOutcome = "skipped"
	// OutcomeMalformed means the line had a price attribute but none parsed, or its
	// unit price is outside the pricing range limits.
	OutcomeMalformed LineOutcome = "malformed"
)

// Run scans the cart and emits one percentage decrease per line that carries a
// valid price attribute. Lines without one are left untouched. Run keeps no
// state and is safe for concurrent use.
func Run(in Input) Result {
	return scan(in, nil)
}

type lineObserver func(line CartLine, outcome LineOutcome, op Operation)

func scan(in Input, observe lineObserver) Result {
	ops := make([]Operation, 0)
	if in.Cart == nil {
		return Result{Operations: ops}
	}
	for _, line := range in.Cart.Lines {
		op, outcome := lineOperation(line)
		if outcome == OutcomeAdjusted {
			ops = append(ops, op)
		}
		if observe != nil {
			observe(line, outcome, op)
		}
	}
	return Result{Operations: ops}
}

func lineOperation(line CartLine) (Operation, LineOutcome) {
	target, ok := TargetPrice(line.Attributes)
	if !ok {
		if hasPriceAttribute(line.Attributes) {
			return Operation{}, OutcomeMalformed
		}
		return Operation{}, OutcomeSkipped
	}
	if !pricing.InRange(line.UnitPrice()) {
		return Operation{}, OutcomeMalformed
	}
	percent := pricing.DiscountPercentage(line.UnitPrice(), target)
	return NewPercentageDecrease(line.ID, percent), OutcomeAdjusted
}
