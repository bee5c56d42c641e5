package signal

import "time"

// Snapshot is the analyzed view of one ticker that a strategy decides on.
// Price is the latest close of the collected series.
type Snapshot struct {
	Price     float64
	Technical TechnicalSignals
	Options   OptionsSignals
	Backtest  BacktestSignals
}

// DecisionStrategy turns an analyzed snapshot into a trade signal. The two
// implementations differ deliberately in how RSI and MACD interact and must
// stay separate: fusion lets both contribute to one additive score, while
// the threshold strategy gives RSI priority and only lets MACD fill in.
type DecisionStrategy interface {
	Decide(ticker string, snap Snapshot) TradeSignal
	Name() string
}

// FusionStrategy scores all evidence sources additively (see Fuse).
type FusionStrategy struct{}

// NewFusionStrategy creates the additive-scoring strategy.
func NewFusionStrategy() *FusionStrategy {
	return &FusionStrategy{}
}

// Decide delegates to the fusion engine.
func (s *FusionStrategy) Decide(ticker string, snap Snapshot) TradeSignal {
	return Fuse(ticker, snap.Technical, snap.Options, snap.Backtest)
}

// Name returns the strategy name.
func (s *FusionStrategy) Name() string {
	return "fusion"
}

// ThresholdStrategy is the simplified RSI/MACD rule behind trade
// suggestions. RSI thresholds are applied first; MACD may then set an
// action but never reverses one RSI already set. Sizing uses the fixed
// dollar budget instead of confidence scaling.
type ThresholdStrategy struct{}

// NewThresholdStrategy creates the RSI-priority strategy.
func NewThresholdStrategy() *ThresholdStrategy {
	return &ThresholdStrategy{}
}

// Decide applies the RSI-first, MACD-no-reversal rule.
func (s *ThresholdStrategy) Decide(ticker string, snap Snapshot) TradeSignal {
	sig := TradeSignal{
		Ticker:    ticker,
		Action:    ActionHold,
		Price:     snap.Price,
		Reasons:   make([]string, 0, 2),
		Timestamp: time.Now(),
	}

	rsi := snap.Technical.RSIValue()
	if rsi < rsiOversold {
		sig.Action = ActionBuy
		sig.Reasons = []string{"RSI oversold"}
	} else if rsi > rsiOverbought {
		sig.Action = ActionSell
		sig.Reasons = []string{"RSI overbought"}
	}

	// MACD may set or confirm an action but cannot flip an RSI call. When
	// it fires it replaces the reason outright; agreeing signals are not
	// merged into a combined rationale.
	macd := snap.Technical.MACDValue()
	if macd > 0 && sig.Action != ActionSell {
		sig.Action = ActionBuy
		sig.Reasons = []string{"MACD bullish"}
	} else if macd < 0 && sig.Action != ActionBuy {
		sig.Action = ActionSell
		sig.Reasons = []string{"MACD bearish"}
	}

	if sig.Action != ActionHold {
		sig.Quantity = FixedBudgetSize(snap.Price)
		if sig.Quantity == 0 {
			sig.Action = ActionHold
		}
	}

	return sig
}

// Name returns the strategy name.
func (s *ThresholdStrategy) Name() string {
	return "threshold"
}

// StrategyByName resolves a configured strategy name. Unknown names fall
// back to fusion, the full-evidence default.
func StrategyByName(name string) DecisionStrategy {
	if name == "threshold" {
		return NewThresholdStrategy()
	}
	return NewFusionStrategy()
}
