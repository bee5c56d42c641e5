package backtest

import (
	"errors"
	"fmt"
	"time"

	"github.com/kosuri18/stock-screener/internal/analysis/technical"
	"github.com/kosuri18/stock-screener/internal/signal"
	"github.com/kosuri18/stock-screener/pkg/types"
)

// Strategy names accepted by the engine.
const (
	StrategyMomentum      = "momentum"
	StrategyMeanReversion = "mean_reversion"
)

const (
	defaultInitialCapital = 100_000.0
	warmupBars            = 50
)

// ErrNoHistory reports a series too short to simulate.
var ErrNoHistory = errors.New("insufficient price history for backtest")

// Trade is one completed round trip in a simulation.
type Trade struct {
	EntryDate   time.Time
	ExitDate    time.Time
	EntryPrice  float64
	ExitPrice   float64
	PnL         float64
	PnLPct      float64
	HoldingDays int
}

// Results carries the trades and capital path of one simulated strategy.
type Results struct {
	Strategy       string
	InitialCapital float64
	FinalCapital   float64
	Trades         []Trade
}

// Engine simulates simple long-only strategies over a price series to
// grade how historically tradable a ticker has been.
type Engine struct {
	strategy       string
	initialCapital float64
}

// NewEngine creates a backtest engine running the named strategy with the
// default starting capital.
func NewEngine(strategy string) *Engine {
	return NewEngineWithCapital(strategy, defaultInitialCapital)
}

// NewEngineWithCapital creates a backtest engine with an explicit starting
// capital. Non-positive capital falls back to the default.
func NewEngineWithCapital(strategy string, initialCapital float64) *Engine {
	if strategy == "" {
		strategy = StrategyMomentum
	}
	if initialCapital <= 0 {
		initialCapital = defaultInitialCapital
	}
	return &Engine{
		strategy:       strategy,
		initialCapital: initialCapital,
	}
}

// Run simulates the configured strategy and condenses the outcome into the
// bundle the fusion engine consumes.
func (e *Engine) Run(bars []types.Bar) (signal.BacktestSignals, error) {
	results, err := e.Simulate(bars)
	if err != nil {
		return signal.BacktestSignals{}, err
	}

	return signal.BacktestSignals{
		SharpeRatio:    signal.Float64(results.SharpeRatio()),
		WinRate:        results.WinRate(),
		TotalTrades:    len(results.Trades),
		TotalReturnPct: results.TotalReturnPct(),
	}, nil
}

// Simulate runs the configured strategy and returns the full trade log.
func (e *Engine) Simulate(bars []types.Bar) (*Results, error) {
	if len(bars) <= warmupBars {
		return nil, ErrNoHistory
	}

	switch e.strategy {
	case StrategyMomentum:
		return e.runMomentum(bars), nil
	case StrategyMeanReversion:
		return e.runMeanReversion(bars), nil
	default:
		return nil, fmt.Errorf("unknown backtest strategy %q", e.strategy)
	}
}

// runMomentum enters on an SMA 20/50 golden cross and exits on the death
// cross.
func (e *Engine) runMomentum(bars []types.Bar) *Results {
	results := &Results{
		Strategy:       StrategyMomentum,
		InitialCapital: e.initialCapital,
		FinalCapital:   e.initialCapital,
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	inPosition := false
	var entry types.Bar

	for i := warmupBars; i < len(bars); i++ {
		smaShort := technical.SMA(closes[:i+1], technical.SMAShortPeriod)
		smaLong := technical.SMA(closes[:i+1], technical.SMALongPeriod)
		prevShort := technical.SMA(closes[:i], technical.SMAShortPeriod)
		prevLong := technical.SMA(closes[:i], technical.SMALongPeriod)

		if !inPosition {
			if smaShort > smaLong && prevShort <= prevLong {
				inPosition = true
				entry = bars[i]
			}
		} else if smaShort < smaLong && prevShort >= prevLong {
			results.close(entry, bars[i])
			inPosition = false
		}
	}

	return results
}

// runMeanReversion buys an oversold RSI and sells once it turns overbought.
func (e *Engine) runMeanReversion(bars []types.Bar) *Results {
	results := &Results{
		Strategy:       StrategyMeanReversion,
		InitialCapital: e.initialCapital,
		FinalCapital:   e.initialCapital,
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	inPosition := false
	var entry types.Bar

	for i := warmupBars; i < len(bars); i++ {
		rsi := technical.RSI(closes[:i+1], technical.RSIPeriod)

		if !inPosition {
			if rsi < 30 {
				inPosition = true
				entry = bars[i]
			}
		} else if rsi > 70 {
			results.close(entry, bars[i])
			inPosition = false
		}
	}

	return results
}

// close books a round trip and compounds the capital path.
func (r *Results) close(entry, exit types.Bar) {
	pnl := exit.Close - entry.Close
	pnlPct := pnl / entry.Close * 100

	r.Trades = append(r.Trades, Trade{
		EntryDate:   entry.Timestamp,
		ExitDate:    exit.Timestamp,
		EntryPrice:  entry.Close,
		ExitPrice:   exit.Close,
		PnL:         pnl,
		PnLPct:      pnlPct,
		HoldingDays: int(exit.Timestamp.Sub(entry.Timestamp).Hours() / 24),
	})
	r.FinalCapital *= 1 + pnlPct/100
}
