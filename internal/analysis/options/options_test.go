package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosuri18/stock-screener/internal/signal"
	"github.com/kosuri18/stock-screener/pkg/types"
)

func contract(volume int, lastPrice, iv float64, dte int) types.OptionContract {
	return types.OptionContract{
		Volume:            volume,
		LastPrice:         lastPrice,
		ImpliedVolatility: iv,
		Expiration:        time.Now().AddDate(0, 0, dte),
	}
}

// TestAnalyze_NilChainIsNeutral tests that missing options data yields a
// neutral bundle without error
func TestAnalyze_NilChainIsNeutral(t *testing.T) {
	a := NewAnalyzer()

	out, err := a.Analyze(nil)
	require.NoError(t, err)

	assert.Equal(t, signal.SentimentNeutral, out.Sentiment)
	assert.Equal(t, 1.0, out.PutCallRatio)
}

// TestAnalyze_BullishFlow tests heavy call volume with a large call trade
func TestAnalyze_BullishFlow(t *testing.T) {
	a := NewAnalyzer()
	chain := &types.OptionChain{
		Underlying: "AAPL",
		Calls: []types.OptionContract{
			contract(100, 2.0, 0.3, 10),
			contract(100, 2.5, 0.3, 10),
			contract(5000, 3.0, 0.4, 10), // outsized call trade
		},
		Puts: []types.OptionContract{
			contract(100, 1.0, 0.3, 10),
			contract(100, 1.2, 0.3, 10),
			contract(120, 1.1, 0.3, 10),
		},
	}

	out, err := a.Analyze(chain)
	require.NoError(t, err)

	assert.Less(t, out.PutCallRatio, 0.7)
	assert.Equal(t, signal.SentimentBullish, out.Sentiment)
	assert.InDelta(t, 0.3167, out.AvgIV, 0.001)
}

// TestAnalyze_BearishFlow tests heavy put volume with a large put trade
func TestAnalyze_BearishFlow(t *testing.T) {
	a := NewAnalyzer()
	chain := &types.OptionChain{
		Underlying: "TSLA",
		Calls: []types.OptionContract{
			contract(100, 2.0, 0.5, 10),
			contract(100, 2.1, 0.5, 10),
			contract(110, 2.2, 0.5, 10),
		},
		Puts: []types.OptionContract{
			contract(100, 1.5, 0.6, 10),
			contract(100, 1.6, 0.6, 10),
			contract(6000, 2.0, 0.7, 10), // outsized put trade
		},
	}

	out, err := a.Analyze(chain)
	require.NoError(t, err)

	assert.Greater(t, out.PutCallRatio, 1.3)
	assert.Equal(t, signal.SentimentBearish, out.Sentiment)
}

// TestAnalyze_BalancedFlowIsNeutral tests that an unskewed ratio stays neutral
func TestAnalyze_BalancedFlowIsNeutral(t *testing.T) {
	a := NewAnalyzer()
	chain := &types.OptionChain{
		Calls: []types.OptionContract{contract(100, 2.0, 0.3, 10), contract(100, 2.0, 0.3, 10)},
		Puts:  []types.OptionContract{contract(100, 1.5, 0.3, 10), contract(100, 1.5, 0.3, 10)},
	}

	out, err := a.Analyze(chain)
	require.NoError(t, err)

	assert.Equal(t, signal.SentimentNeutral, out.Sentiment)
	assert.InDelta(t, 1.0, out.PutCallRatio, 1e-9)
}

// TestAnalyze_FarDatedContractsIgnored tests that contracts past the
// near-term window cannot set sentiment
func TestAnalyze_FarDatedContractsIgnored(t *testing.T) {
	a := NewAnalyzer()
	chain := &types.OptionChain{
		Calls: []types.OptionContract{contract(5000, 3.0, 0.4, 90)},
		Puts:  []types.OptionContract{contract(100, 1.0, 0.3, 90)},
	}

	out, err := a.Analyze(chain)
	require.NoError(t, err)

	assert.Equal(t, signal.SentimentNeutral, out.Sentiment)
}

// TestPutCallRatio_NoCallVolume tests the bearish extreme when calls are dead
func TestPutCallRatio_NoCallVolume(t *testing.T) {
	chain := &types.OptionChain{
		Calls: []types.OptionContract{contract(0, 2.0, 0.3, 10)},
		Puts:  []types.OptionContract{contract(500, 1.5, 0.3, 10)},
	}

	assert.Equal(t, 2.0, PutCallRatio(chain))
}
