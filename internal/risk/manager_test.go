package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosuri18/stock-screener/internal/signal"
	"github.com/kosuri18/stock-screener/pkg/types"
)

func barsAt(price float64) []types.Bar {
	return []types.Bar{{
		Open: price, High: price, Low: price, Close: price,
		Volume:    100_000,
		Timestamp: time.Now(),
	}}
}

func buySignal(quantity int) *signal.TradeSignal {
	return &signal.TradeSignal{
		Ticker:   "AAPL",
		Action:   signal.ActionBuy,
		Quantity: quantity,
	}
}

// TestValidateTrade_Accepts tests a small trade inside every limit
func TestValidateTrade_Accepts(t *testing.T) {
	m := NewPortfolioManager(0, 0, 0)
	portfolio := &types.Portfolio{Value: 1_000_000, Cash: 500_000, BuyingPower: 500_000}

	ok, err := m.ValidateTrade(buySignal(10), portfolio, barsAt(100))
	require.NoError(t, err)

	assert.True(t, ok)
}

// TestValidateTrade_RejectsInsufficientBuyingPower tests the buying power gate
func TestValidateTrade_RejectsInsufficientBuyingPower(t *testing.T) {
	m := NewPortfolioManager(0, 0, 0)
	portfolio := &types.Portfolio{Value: 1_000_000, BuyingPower: 500}

	ok, err := m.ValidateTrade(buySignal(50), portfolio, barsAt(100))
	require.NoError(t, err)

	assert.False(t, ok)
}

// TestValidateTrade_RejectsOversizedPosition tests the 10% position cap
func TestValidateTrade_RejectsOversizedPosition(t *testing.T) {
	m := NewPortfolioManager(0, 0, 0)
	portfolio := &types.Portfolio{Value: 10_000, BuyingPower: 10_000}

	// 50 shares at 100 is half the portfolio, well past the 10% cap.
	ok, err := m.ValidateTrade(buySignal(50), portfolio, barsAt(100))
	require.NoError(t, err)

	assert.False(t, ok)
}

// TestValidateTrade_RejectsPortfolioRiskBudget tests that open-position risk
// counts against a new trade
func TestValidateTrade_RejectsPortfolioRiskBudget(t *testing.T) {
	m := NewPortfolioManager(0, 0, 0)
	portfolio := &types.Portfolio{
		Value:       100_000,
		BuyingPower: 100_000,
		Positions: []types.Position{
			// 1900 at risk already; budget is 2000.
			{Ticker: "MSFT", Quantity: 100, CurrentPrice: 119, StopLoss: 100},
		},
	}

	// 50 shares at 100 with a 5% stop adds 250 of risk.
	ok, err := m.ValidateTrade(buySignal(50), portfolio, barsAt(100))
	require.NoError(t, err)

	assert.False(t, ok)
}

// TestValidateTrade_NoPriceData tests the missing-series error
func TestValidateTrade_NoPriceData(t *testing.T) {
	m := NewPortfolioManager(0, 0, 0)

	_, err := m.ValidateTrade(buySignal(10), &types.Portfolio{Value: 100_000}, nil)

	assert.ErrorIs(t, err, ErrNoPriceData)
}

// TestCalculatePositionSize_CapsAtPortfolioLimit tests the 10% value cap
func TestCalculatePositionSize_CapsAtPortfolioLimit(t *testing.T) {
	m := NewPortfolioManager(0, 0, 0)
	portfolio := &types.Portfolio{Value: 100_000}

	// Cap is 10000; at price 300 that is 33 whole shares.
	qty, err := m.CalculatePositionSize(buySignal(500), portfolio, barsAt(300), nil)
	require.NoError(t, err)

	assert.Equal(t, 33, qty)
}

// TestCalculatePositionSize_KeepsSmallerProposal tests that a proposal under
// the cap passes through unchanged
func TestCalculatePositionSize_KeepsSmallerProposal(t *testing.T) {
	m := NewPortfolioManager(0, 0, 0)
	portfolio := &types.Portfolio{Value: 100_000}

	qty, err := m.CalculatePositionSize(buySignal(5), portfolio, barsAt(300), nil)
	require.NoError(t, err)

	assert.Equal(t, 5, qty)
}

// TestCalculatePositionSize_EmptyPortfolio tests the zero-value portfolio
func TestCalculatePositionSize_EmptyPortfolio(t *testing.T) {
	m := NewPortfolioManager(0, 0, 0)

	qty, err := m.CalculatePositionSize(buySignal(10), &types.Portfolio{}, barsAt(100), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, qty)
}

// TestStopLoss_Buy tests the stop below the close for long entries
func TestStopLoss_Buy(t *testing.T) {
	m := NewPortfolioManager(0, 0, 0)

	stop, err := m.StopLoss(barsAt(200), signal.ActionBuy)
	require.NoError(t, err)

	assert.InDelta(t, 190.0, stop, 1e-9)
}

// TestStopLoss_Sell tests the stop above the close for short entries
func TestStopLoss_Sell(t *testing.T) {
	m := NewPortfolioManager(0, 0, 0)

	stop, err := m.StopLoss(barsAt(200), signal.ActionSell)
	require.NoError(t, err)

	assert.InDelta(t, 210.0, stop, 1e-9)
}

// TestStopLoss_Hold tests that a hold gets no stop price
func TestStopLoss_Hold(t *testing.T) {
	m := NewPortfolioManager(0, 0, 0)

	stop, err := m.StopLoss(barsAt(200), signal.ActionHold)
	require.NoError(t, err)

	assert.Equal(t, 0.0, stop)
}
