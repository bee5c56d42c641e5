package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshotWith(rsi, macd, price float64) Snapshot {
	return Snapshot{
		Price: price,
		Technical: TechnicalSignals{
			RSI:        Float64(rsi),
			MACDSignal: Float64(macd),
		},
	}
}

// TestThresholdStrategy_MACDCannotReverseRSIBuy tests that a bearish MACD is
// suppressed when RSI already set a buy
func TestThresholdStrategy_MACDCannotReverseRSIBuy(t *testing.T) {
	s := NewThresholdStrategy()

	sig := s.Decide("AAPL", snapshotWith(25, -1, 100))

	assert.Equal(t, ActionBuy, sig.Action)
	assert.Equal(t, 50, sig.Quantity) // 5000 / 100
	assert.Equal(t, []string{"RSI oversold"}, sig.Reasons)
}

// TestThresholdStrategy_MACDCannotReverseRSISell tests that a bullish MACD is
// suppressed when RSI already set a sell
func TestThresholdStrategy_MACDCannotReverseRSISell(t *testing.T) {
	s := NewThresholdStrategy()

	sig := s.Decide("AAPL", snapshotWith(75, 1, 250))

	assert.Equal(t, ActionSell, sig.Action)
	assert.Equal(t, 20, sig.Quantity) // 5000 / 250
	assert.Equal(t, []string{"RSI overbought"}, sig.Reasons)
}

// TestThresholdStrategy_MACDSetsActionWhenRSINeutral tests that MACD decides
// alone when RSI is between the thresholds
func TestThresholdStrategy_MACDSetsActionWhenRSINeutral(t *testing.T) {
	s := NewThresholdStrategy()

	buy := s.Decide("MSFT", snapshotWith(50, 0.8, 200))
	assert.Equal(t, ActionBuy, buy.Action)
	assert.Equal(t, []string{"MACD bullish"}, buy.Reasons)

	sell := s.Decide("MSFT", snapshotWith(50, -0.8, 200))
	assert.Equal(t, ActionSell, sell.Action)
	assert.Equal(t, []string{"MACD bearish"}, sell.Reasons)
}

// TestThresholdStrategy_AgreementReplacesReason tests that when RSI and MACD
// agree the MACD reason replaces the RSI one rather than combining
func TestThresholdStrategy_AgreementReplacesReason(t *testing.T) {
	s := NewThresholdStrategy()

	sig := s.Decide("NVDA", snapshotWith(25, 2, 500))

	assert.Equal(t, ActionBuy, sig.Action)
	assert.Equal(t, []string{"MACD bullish"}, sig.Reasons)
}

// TestThresholdStrategy_NoSignalHolds tests the quiet middle with flat MACD
func TestThresholdStrategy_NoSignalHolds(t *testing.T) {
	s := NewThresholdStrategy()

	sig := s.Decide("V", snapshotWith(50, 0, 200))

	assert.Equal(t, ActionHold, sig.Action)
	assert.Equal(t, 0, sig.Quantity)
}

// TestThresholdStrategy_ZeroQuantityForcesHold tests that an unaffordable
// price collapses the action back to hold
func TestThresholdStrategy_ZeroQuantityForcesHold(t *testing.T) {
	s := NewThresholdStrategy()

	sig := s.Decide("BRK.A", snapshotWith(25, 1, 700000))

	assert.Equal(t, ActionHold, sig.Action)
	assert.Equal(t, 0, sig.Quantity)
}

// TestFusionStrategy_DelegatesToFuse tests that the fusion variant matches
// the fusion engine output
func TestFusionStrategy_DelegatesToFuse(t *testing.T) {
	s := NewFusionStrategy()
	snap := Snapshot{
		Technical: TechnicalSignals{RSI: Float64(25), MACDSignal: Float64(1)},
		Options:   OptionsSignals{Sentiment: SentimentBullish},
	}

	sig := s.Decide("GOOG", snap)

	assert.Equal(t, ActionBuy, sig.Action)
	assert.InDelta(t, 0.7, sig.Confidence, 1e-9)
	assert.Equal(t, 70, sig.Quantity)
}

// TestStrategyNames tests the registered strategy names
func TestStrategyNames(t *testing.T) {
	assert.Equal(t, "fusion", NewFusionStrategy().Name())
	assert.Equal(t, "threshold", NewThresholdStrategy().Name())
}

// TestStrategyByName tests the configured-name lookup and its fusion fallback
func TestStrategyByName(t *testing.T) {
	assert.Equal(t, "threshold", StrategyByName("threshold").Name())
	assert.Equal(t, "fusion", StrategyByName("fusion").Name())
	assert.Equal(t, "fusion", StrategyByName("").Name())
	assert.Equal(t, "fusion", StrategyByName("martingale").Name())
}
