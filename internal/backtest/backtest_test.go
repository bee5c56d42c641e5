package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosuri18/stock-screener/pkg/types"
)

func barsFromCloses(closes []float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = types.Bar{
			Open: c, High: c, Low: c, Close: c,
			Volume:    500_000,
			Timestamp: start.AddDate(0, 0, i),
		}
	}
	return bars
}

// cycleCloses builds a flat-rise-fall price path that forces a full golden
// cross and death cross.
func cycleCloses() []float64 {
	closes := make([]float64, 0, 130)
	for i := 0; i < 50; i++ {
		closes = append(closes, 100)
	}
	for i := 0; i < 40; i++ {
		closes = append(closes, 100+float64(i+1))
	}
	for i := 0; i < 40; i++ {
		closes = append(closes, 140-float64(i+1)*2)
	}
	return closes
}

// reversionCloses builds a drift-drop-recover path that trips the RSI
// oversold entry and overbought exit.
func reversionCloses() []float64 {
	closes := make([]float64, 0, 100)
	for i := 0; i < 50; i++ {
		closes = append(closes, 100+float64(i)*0.1)
	}
	for i := 0; i < 20; i++ {
		closes = append(closes, 105-float64(i+1))
	}
	for i := 0; i < 30; i++ {
		closes = append(closes, 85+float64(i+1)*1.5)
	}
	return closes
}

// TestSimulate_InsufficientHistory tests the short-series error
func TestSimulate_InsufficientHistory(t *testing.T) {
	e := NewEngine(StrategyMomentum)

	_, err := e.Simulate(barsFromCloses(make([]float64, 30)))

	assert.ErrorIs(t, err, ErrNoHistory)
}

// TestSimulate_UnknownStrategy tests the error on a bad strategy name
func TestSimulate_UnknownStrategy(t *testing.T) {
	e := NewEngine("martingale")

	_, err := e.Simulate(barsFromCloses(cycleCloses()))

	assert.Error(t, err)
}

// TestSimulate_MomentumRoundTrip tests that a rise-then-fall path books
// exactly one momentum round trip
func TestSimulate_MomentumRoundTrip(t *testing.T) {
	e := NewEngine(StrategyMomentum)

	results, err := e.Simulate(barsFromCloses(cycleCloses()))
	require.NoError(t, err)

	require.Len(t, results.Trades, 1)
	trade := results.Trades[0]
	assert.True(t, trade.ExitDate.After(trade.EntryDate))
	assert.Greater(t, trade.EntryPrice, 0.0)
	assert.InDelta(t, trade.PnL/trade.EntryPrice*100, trade.PnLPct, 1e-9)
}

// TestSimulate_MeanReversionRoundTrip tests the oversold entry and
// overbought exit
func TestSimulate_MeanReversionRoundTrip(t *testing.T) {
	e := NewEngine(StrategyMeanReversion)

	results, err := e.Simulate(barsFromCloses(reversionCloses()))
	require.NoError(t, err)

	require.NotEmpty(t, results.Trades)
	trade := results.Trades[0]
	assert.True(t, trade.ExitDate.After(trade.EntryDate))
}

// TestRun_BundlesMetrics tests that Run condenses simulation results into a
// signal bundle
func TestRun_BundlesMetrics(t *testing.T) {
	e := NewEngine(StrategyMomentum)

	bundle, err := e.Run(barsFromCloses(cycleCloses()))
	require.NoError(t, err)

	require.NotNil(t, bundle.SharpeRatio)
	assert.Equal(t, 1, bundle.TotalTrades)
}

// TestNewEngineWithCapital_SeedsCapitalPath tests that the configured
// starting capital reaches the simulation
func TestNewEngineWithCapital_SeedsCapitalPath(t *testing.T) {
	e := NewEngineWithCapital(StrategyMomentum, 25_000)

	results, err := e.Simulate(barsFromCloses(cycleCloses()))
	require.NoError(t, err)

	assert.Equal(t, 25_000.0, results.InitialCapital)
	require.Len(t, results.Trades, 1)
	assert.InDelta(t, 25_000*(1+results.Trades[0].PnLPct/100), results.FinalCapital, 1e-9)
}

// TestNewEngineWithCapital_NonPositiveFallsBack tests the capital default
func TestNewEngineWithCapital_NonPositiveFallsBack(t *testing.T) {
	e := NewEngineWithCapital(StrategyMomentum, 0)

	results, err := e.Simulate(barsFromCloses(cycleCloses()))
	require.NoError(t, err)

	assert.Equal(t, defaultInitialCapital, results.InitialCapital)
}

// TestNewEngine_DefaultStrategy tests that an empty name falls back to momentum
func TestNewEngine_DefaultStrategy(t *testing.T) {
	e := NewEngine("")

	results, err := e.Simulate(barsFromCloses(cycleCloses()))
	require.NoError(t, err)

	assert.Equal(t, StrategyMomentum, results.Strategy)
}
