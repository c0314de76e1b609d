package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Outcome classifies a pre-submission quantity check.
type Outcome int

const (
	// OutcomeAccepted means the requested quantity already satisfies
	// the minimum notional and is used unchanged.
	OutcomeAccepted Outcome = iota
	// OutcomeAdjusted means the quantity was raised to the smallest
	// lot-step multiple that satisfies the minimum notional.
	OutcomeAdjusted
	// OutcomeRejected means the quantity is too small and auto-adjust
	// was disabled.
	OutcomeRejected
	// OutcomeSkipped means the check could not run (price or filters
	// unavailable) and the order proceeds unvalidated. The exchange is
	// authoritative and will reject a bad order itself.
	OutcomeSkipped
)

// SkipCause records why a check was skipped, so a missing symbol can be
// told apart from a network failure or an absent filter key.
type SkipCause string

const (
	SkipPriceUnavailable   SkipCause = "price_unavailable"
	SkipSymbolNotFound     SkipCause = "symbol_not_found"
	SkipFiltersUnavailable SkipCause = "filters_unavailable"
	SkipFilterMissing      SkipCause = "filter_missing"
)

// Validation is the outcome of the minimum-notional check for one order.
type Validation struct {
	Outcome     Outcome
	Quantity    decimal.Decimal // effective quantity to submit
	MinQty      decimal.Decimal // smallest valid quantity, when computed
	MinNotional decimal.Decimal
	Reason      string // human-readable rejection reason
	SkipCause   SkipCause
}

func init() {
	// Exchange prices and quantities can carry many decimal places;
	// keep division precision comfortably above them.
	if decimal.DivisionPrecision < 18 {
		decimal.DivisionPrecision = 18
	}
}

// ValidateNotional checks that quantity*price reaches the symbol's
// minimum notional value. When it does not, the smallest quantity that
// both reaches it and is an integer multiple of stepSize is computed by
// rounding minNotional/price UP to the next step. Rounding down would
// still be rejected by the exchange, so the ceiling is never relaxed.
//
// Pure function: the caller fetches price and filters and handles
// fetch failures (see BasicBot.checkMinNotional).
func ValidateNotional(price, minNotional, stepSize, quantity decimal.Decimal, autoAdjust bool) (Validation, error) {
	if price.Sign() <= 0 {
		return Validation{}, fmt.Errorf("price must be positive, got %s", price)
	}
	if stepSize.Sign() <= 0 {
		return Validation{}, fmt.Errorf("step size must be positive, got %s", stepSize)
	}
	if quantity.Sign() <= 0 {
		return Validation{}, fmt.Errorf("quantity must be positive, got %s", quantity)
	}
	if minNotional.Sign() < 0 {
		return Validation{}, fmt.Errorf("min notional must not be negative, got %s", minNotional)
	}

	if quantity.Mul(price).GreaterThanOrEqual(minNotional) {
		return Validation{
			Outcome:     OutcomeAccepted,
			Quantity:    quantity,
			MinNotional: minNotional,
		}, nil
	}

	requiredQty := minNotional.Div(price)
	multiplier := requiredQty.Div(stepSize).Ceil()
	minQty := multiplier.Mul(stepSize)

	v := Validation{
		MinQty:      minQty,
		MinNotional: minNotional,
	}
	if autoAdjust {
		v.Outcome = OutcomeAdjusted
		v.Quantity = minQty
		return v, nil
	}

	v.Outcome = OutcomeRejected
	v.Reason = fmt.Sprintf("Quantity too small. Minimum quantity is %s (min notional %s).", minQty, minNotional)
	return v, nil
}
