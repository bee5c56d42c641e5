package signal

import (
	"math"
	"time"
)

// Fusion weights. Each evidence source contributes a fixed additive amount
// so a score is reproducible and auditable from its reasons list.
const (
	rsiWeight     = 0.3
	macdWeight    = 0.2
	optionsWeight = 0.2
	sharpeWeight  = 0.1

	// confidenceDeadband is the |confidence| zone in which no trade is
	// proposed, so weak or conflicting evidence never produces an order.
	confidenceDeadband = 0.3

	rsiOversold   = 30.0
	rsiOverbought = 70.0
)

// Fuse combines the three analyzer bundles into a single trade signal for
// the ticker. Scoring is deterministic: RSI extremes contribute ±0.3, MACD
// always contributes ±0.2, options flow ±0.2 when directional, and the
// backtest Sharpe ratio ±0.1 beyond ±1. The final action follows the sign
// of the score unless it falls inside the deadband, in which case the
// signal holds with zero quantity.
func Fuse(ticker string, tech TechnicalSignals, opts OptionsSignals, back BacktestSignals) TradeSignal {
	sig := TradeSignal{
		Ticker:    ticker,
		Action:    ActionHold,
		Reasons:   make([]string, 0, 4),
		Timestamp: time.Now(),
	}

	rsi := tech.RSIValue()
	if rsi < rsiOversold {
		sig.Confidence += rsiWeight
		sig.Reasons = append(sig.Reasons, "Oversold (RSI)")
		sig.Action = ActionBuy
	} else if rsi > rsiOverbought {
		sig.Confidence -= rsiWeight
		sig.Reasons = append(sig.Reasons, "Overbought (RSI)")
		sig.Action = ActionSell
	}

	if tech.MACDValue() > 0 {
		sig.Confidence += macdWeight
		sig.Reasons = append(sig.Reasons, "Bullish MACD")
	} else {
		sig.Confidence -= macdWeight
		sig.Reasons = append(sig.Reasons, "Bearish MACD")
	}

	switch opts.Sentiment {
	case SentimentBullish:
		sig.Confidence += optionsWeight
		sig.Reasons = append(sig.Reasons, "Bullish Options Flow")
	case SentimentBearish:
		sig.Confidence -= optionsWeight
		sig.Reasons = append(sig.Reasons, "Bearish Options Flow")
	}

	if sharpe := back.SharpeValue(); sharpe > 1 {
		sig.Confidence += sharpeWeight
		sig.Reasons = append(sig.Reasons, "Strong Historical Performance")
	} else if sharpe < -1 {
		sig.Confidence -= sharpeWeight
		sig.Reasons = append(sig.Reasons, "Poor Historical Performance")
	}

	// The aggregated score overrides whatever action RSI set above.
	switch {
	case math.Abs(sig.Confidence) < confidenceDeadband:
		sig.Action = ActionHold
		sig.Quantity = 0
	case sig.Confidence > 0:
		sig.Action = ActionBuy
		sig.Quantity = ConfidenceScaledSize(sig.Confidence)
	default:
		sig.Action = ActionSell
		sig.Quantity = ConfidenceScaledSize(math.Abs(sig.Confidence))
	}

	return sig
}
