package signal

import "math"

// Sizing constants shared by the two policies.
const (
	// BaseQuantity is the share count a full-confidence signal would buy.
	BaseQuantity = 100

	// FixedDollarBudget is the per-trade budget for the threshold strategy.
	FixedDollarBudget = 5000.0
)

// ConfidenceScaledSize maps a post-deadband confidence in (0, 1] to a share
// quantity by scaling the base quantity. Fractional shares are dropped
// toward zero, never rounded up.
func ConfidenceScaledSize(confidence float64) int {
	if confidence <= 0 {
		return 0
	}
	return int(math.Floor(BaseQuantity * confidence))
}

// FixedBudgetSize converts the fixed dollar budget into whole shares at the
// current price. A non-positive price yields zero shares.
func FixedBudgetSize(price float64) int {
	if price <= 0 {
		return 0
	}
	return int(math.Floor(FixedDollarBudget / price))
}
