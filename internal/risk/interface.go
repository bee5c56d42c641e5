package risk

import (
	"github.com/kosuri18/stock-screener/internal/signal"
	"github.com/kosuri18/stock-screener/pkg/types"
)

// Manager defines the interface for trade risk management. Implementations
// treat the portfolio as read-only state.
type Manager interface {
	// ValidateTrade reports whether a proposed trade meets the risk
	// criteria. A false result is a normal rejection, not an error.
	ValidateTrade(sig *signal.TradeSignal, portfolio *types.Portfolio, bars []types.Bar) (bool, error)

	// CalculatePositionSize returns the bounded share quantity for a
	// validated trade. A result of zero or less means no trade.
	CalculatePositionSize(sig *signal.TradeSignal, portfolio *types.Portfolio, bars []types.Bar, chain *types.OptionChain) (int, error)

	// StopLoss returns the protective stop price for the action at the
	// latest close.
	StopLoss(bars []types.Bar, action signal.Action) (float64, error)
}
