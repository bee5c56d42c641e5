package pipeline

import (
	"errors"
	"fmt"

	"github.com/kosuri18/stock-screener/internal/monitoring"
	"github.com/kosuri18/stock-screener/internal/risk"
	"github.com/kosuri18/stock-screener/internal/signal"
	"github.com/kosuri18/stock-screener/pkg/types"
)

// DataProvider supplies everything known about a ticker for one run.
type DataProvider interface {
	Collect(ticker string) (*types.MarketData, error)
}

// TechnicalAnalyzer derives the technical signal bundle from price history.
type TechnicalAnalyzer interface {
	Analyze(bars []types.Bar) (signal.TechnicalSignals, error)
}

// OptionsAnalyzer derives flow sentiment from an options chain.
type OptionsAnalyzer interface {
	Analyze(chain *types.OptionChain) (signal.OptionsSignals, error)
}

// Backtester grades historical tradability of the price series.
type Backtester interface {
	Run(bars []types.Bar) (signal.BacktestSignals, error)
}

// ErrNoData reports a missing or empty market data bundle.
var ErrNoData = errors.New("no market data collected")

// Pipeline runs one ticker through collection, analysis, fusion and risk
// management. Its two public entry points never return an error: every
// failure is converted at this boundary into a well-formed hold signal
// carrying the failure as a reason.
type Pipeline struct {
	provider    DataProvider
	technical   TechnicalAnalyzer
	options     OptionsAnalyzer
	backtester  Backtester
	riskManager risk.Manager
	strategy    signal.DecisionStrategy
	suggester   signal.DecisionStrategy
}

// New wires a pipeline with the fusion strategy for processing and the
// threshold strategy for suggestions.
func New(provider DataProvider, technical TechnicalAnalyzer, options OptionsAnalyzer, backtester Backtester, riskManager risk.Manager) *Pipeline {
	return &Pipeline{
		provider:    provider,
		technical:   technical,
		options:     options,
		backtester:  backtester,
		riskManager: riskManager,
		strategy:    signal.NewFusionStrategy(),
		suggester:   signal.NewThresholdStrategy(),
	}
}

// SetStrategy overrides the decision strategy Process runs. A nil strategy
// keeps the current one.
func (p *Pipeline) SetStrategy(s signal.DecisionStrategy) {
	if s != nil {
		p.strategy = s
	}
}

// Process runs the full decision pipeline for one ticker against the
// read-only portfolio and returns the final trade signal.
func (p *Pipeline) Process(ticker string, portfolio *types.Portfolio) (out signal.TradeSignal) {
	defer func() {
		if r := recover(); r != nil {
			monitoring.RecordError("pipeline_panic")
			out = signal.Hold(ticker, fmt.Sprintf("processing failed: %v", r))
		}
	}()

	sig, err := p.process(ticker, portfolio)
	if err != nil {
		monitoring.RecordError("pipeline")
		return signal.Hold(ticker, fmt.Sprintf("processing failed: %v", err))
	}
	return sig
}

func (p *Pipeline) process(ticker string, portfolio *types.Portfolio) (signal.TradeSignal, error) {
	md, err := p.provider.Collect(ticker)
	if err != nil {
		return signal.TradeSignal{}, fmt.Errorf("data collection: %w", err)
	}
	if md == nil || len(md.Bars) == 0 {
		return signal.TradeSignal{}, ErrNoData
	}

	snap, err := p.analyze(md)
	if err != nil {
		return signal.TradeSignal{}, err
	}

	sig := p.strategy.Decide(ticker, snap)
	if sig.Price == 0 {
		sig.Price = snap.Price
	}
	monitoring.UpdatePrice(ticker, snap.Price)
	monitoring.RecordSignal(ticker, sig.Action.String(), sig.Confidence)

	if sig.Action == signal.ActionHold {
		return sig, nil
	}

	ok, err := p.riskManager.ValidateTrade(&sig, portfolio, md.Bars)
	if err != nil {
		return signal.TradeSignal{}, fmt.Errorf("risk validation: %w", err)
	}
	if !ok {
		monitoring.RecordRejection("validation")
		return rejected(sig, "Trade rejected by risk manager"), nil
	}

	quantity, err := p.riskManager.CalculatePositionSize(&sig, portfolio, md.Bars, md.Options)
	if err != nil {
		return signal.TradeSignal{}, fmt.Errorf("position sizing: %w", err)
	}
	if quantity <= 0 {
		monitoring.RecordRejection("position_size")
		return rejected(sig, "Position size not viable"), nil
	}
	sig.Quantity = quantity

	stop, err := p.riskManager.StopLoss(md.Bars, sig.Action)
	if err != nil {
		return signal.TradeSignal{}, fmt.Errorf("stop loss: %w", err)
	}
	sig.StopLoss = stop

	return sig, nil
}

// Suggest applies the simplified RSI/MACD rule to already-collected data.
// Like Process, it never returns an error.
func (p *Pipeline) Suggest(md *types.MarketData) (out signal.TradeSignal) {
	ticker := ""
	if md != nil {
		ticker = md.Ticker
	}
	defer func() {
		if r := recover(); r != nil {
			monitoring.RecordError("pipeline_panic")
			out = signal.Hold(ticker, fmt.Sprintf("suggestion failed: %v", r))
		}
	}()

	if md == nil || len(md.Bars) == 0 {
		return signal.Hold(ticker, "suggestion failed: "+ErrNoData.Error())
	}

	tech, err := p.technical.Analyze(md.Bars)
	if err != nil {
		monitoring.RecordError("technical")
		return signal.Hold(ticker, fmt.Sprintf("suggestion failed: %v", err))
	}

	return p.suggester.Decide(ticker, signal.Snapshot{
		Price:     md.LastClose(),
		Technical: tech,
	})
}

// analyze runs the three providers over the collected bundle.
func (p *Pipeline) analyze(md *types.MarketData) (signal.Snapshot, error) {
	tech, err := p.technical.Analyze(md.Bars)
	if err != nil {
		return signal.Snapshot{}, fmt.Errorf("technical analysis: %w", err)
	}

	opts, err := p.options.Analyze(md.Options)
	if err != nil {
		return signal.Snapshot{}, fmt.Errorf("options analysis: %w", err)
	}

	back, err := p.backtester.Run(md.Bars)
	if err != nil {
		return signal.Snapshot{}, fmt.Errorf("backtest: %w", err)
	}

	return signal.Snapshot{
		Price:     md.LastClose(),
		Technical: tech,
		Options:   opts,
		Backtest:  back,
	}, nil
}

// rejected forces a proposed trade back to hold, keeping the fusion
// reasons for the audit trail.
func rejected(sig signal.TradeSignal, reason string) signal.TradeSignal {
	sig.Action = signal.ActionHold
	sig.Quantity = 0
	sig.StopLoss = 0
	sig.Reasons = append(sig.Reasons, reason)
	return sig
}
