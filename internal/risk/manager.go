package risk

import (
	"errors"
	"math"

	"github.com/kosuri18/stock-screener/internal/signal"
	"github.com/kosuri18/stock-screener/pkg/types"
)

// Default risk limits.
const (
	DefaultMaxPositionPct   = 0.10 // of portfolio value per position
	DefaultMaxPortfolioRisk = 0.02 // of portfolio value at risk across positions
	DefaultStopLossPct      = 0.05
)

// ErrNoPriceData reports a missing or empty price series.
var ErrNoPriceData = errors.New("no price data for risk evaluation")

// PortfolioManager enforces position and portfolio level risk limits.
type PortfolioManager struct {
	maxPositionPct   float64
	maxPortfolioRisk float64
	stopLossPct      float64
}

// NewPortfolioManager creates a risk manager with the given limits; zero
// values fall back to the defaults.
func NewPortfolioManager(maxPositionPct, maxPortfolioRisk, stopLossPct float64) *PortfolioManager {
	if maxPositionPct <= 0 {
		maxPositionPct = DefaultMaxPositionPct
	}
	if maxPortfolioRisk <= 0 {
		maxPortfolioRisk = DefaultMaxPortfolioRisk
	}
	if stopLossPct <= 0 {
		stopLossPct = DefaultStopLossPct
	}
	return &PortfolioManager{
		maxPositionPct:   maxPositionPct,
		maxPortfolioRisk: maxPortfolioRisk,
		stopLossPct:      stopLossPct,
	}
}

// ValidateTrade checks buying power, the per-position cap and the total
// portfolio risk budget for the proposed trade.
func (m *PortfolioManager) ValidateTrade(sig *signal.TradeSignal, portfolio *types.Portfolio, bars []types.Bar) (bool, error) {
	if len(bars) == 0 {
		return false, ErrNoPriceData
	}
	price := bars[len(bars)-1].Close
	if price <= 0 {
		return false, ErrNoPriceData
	}

	cost := price * float64(sig.Quantity)

	if sig.Action == signal.ActionBuy && cost > portfolio.BuyingPower {
		return false, nil
	}

	if cost > portfolio.Value*m.maxPositionPct {
		return false, nil
	}

	tradeRisk := price * m.stopLossPct * float64(sig.Quantity)
	if m.currentRisk(portfolio)+tradeRisk > portfolio.Value*m.maxPortfolioRisk {
		return false, nil
	}

	return true, nil
}

// CalculatePositionSize bounds the quantity by the per-position cap at the
// current price. Fractional shares are truncated toward zero.
func (m *PortfolioManager) CalculatePositionSize(sig *signal.TradeSignal, portfolio *types.Portfolio, bars []types.Bar, chain *types.OptionChain) (int, error) {
	if len(bars) == 0 {
		return 0, ErrNoPriceData
	}
	price := bars[len(bars)-1].Close
	if price <= 0 || portfolio.Value <= 0 {
		return 0, nil
	}

	maxValue := portfolio.Value * m.maxPositionPct
	quantity := int(math.Floor(maxValue / price))

	if sig.Quantity > 0 && sig.Quantity < quantity {
		quantity = sig.Quantity
	}
	return quantity, nil
}

// StopLoss places the stop a fixed percentage away from the latest close,
// below for buys and above for sells.
func (m *PortfolioManager) StopLoss(bars []types.Bar, action signal.Action) (float64, error) {
	if len(bars) == 0 {
		return 0, ErrNoPriceData
	}
	price := bars[len(bars)-1].Close

	switch action {
	case signal.ActionBuy:
		return price * (1 - m.stopLossPct), nil
	case signal.ActionSell:
		return price * (1 + m.stopLossPct), nil
	default:
		return 0, nil
	}
}

// currentRisk sums the distance to each open position's stop.
func (m *PortfolioManager) currentRisk(portfolio *types.Portfolio) float64 {
	total := 0.0
	for _, p := range portfolio.Positions {
		if p.CurrentPrice <= 0 || p.StopLoss <= 0 || p.Quantity <= 0 {
			continue
		}
		total += math.Abs(p.CurrentPrice-p.StopLoss) * float64(p.Quantity)
	}
	return total
}
