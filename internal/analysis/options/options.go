package options

import (
	"math"
	"time"

	"github.com/kosuri18/stock-screener/internal/signal"
	"github.com/kosuri18/stock-screener/pkg/types"
)

// Put/call ratio bounds beyond which flow reads directional.
const (
	bullishRatioMax = 0.7
	bearishRatioMin = 1.3

	// neutralRatio stands in when call volume is missing entirely.
	neutralRatio = 1.0
	bearishRatio = 2.0

	// nearTermWindow limits flow analysis to contracts expiring soon.
	nearTermWindow = 30 * 24 * time.Hour
)

// Analyzer derives flow sentiment from an options chain.
type Analyzer struct{}

// NewAnalyzer creates an options analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze computes the options signal bundle. A nil or empty chain yields a
// neutral bundle rather than an error; missing options data is a normal
// condition for thinly traded tickers.
func (a *Analyzer) Analyze(chain *types.OptionChain) (signal.OptionsSignals, error) {
	if chain == nil || (len(chain.Calls) == 0 && len(chain.Puts) == 0) {
		return signal.OptionsSignals{
			Sentiment:    signal.SentimentNeutral,
			PutCallRatio: neutralRatio,
		}, nil
	}

	out := signal.OptionsSignals{
		PutCallRatio: PutCallRatio(chain),
		AvgIV:        averageIV(chain),
	}
	out.Sentiment = a.flowSentiment(chain, out.PutCallRatio)

	return out, nil
}

// PutCallRatio is total put volume over total call volume. Zero call volume
// reads as bearish extreme.
func PutCallRatio(chain *types.OptionChain) float64 {
	callVolume := totalVolume(chain.Calls)
	putVolume := totalVolume(chain.Puts)

	if callVolume == 0 {
		return bearishRatio
	}
	return float64(putVolume) / float64(callVolume)
}

// flowSentiment needs both a skewed put/call ratio and dominant large-trade
// premium on the same side before calling a direction; everything else is
// neutral.
func (a *Analyzer) flowSentiment(chain *types.OptionChain, pcRatio float64) signal.Sentiment {
	nearCalls := nearTerm(chain.Calls)
	nearPuts := nearTerm(chain.Puts)
	if len(nearCalls) == 0 || len(nearPuts) == 0 {
		return signal.SentimentNeutral
	}

	callPremium := largeTradePremium(nearCalls)
	putPremium := largeTradePremium(nearPuts)

	switch {
	case pcRatio < bullishRatioMax && callPremium > putPremium:
		return signal.SentimentBullish
	case pcRatio > bearishRatioMin && putPremium > callPremium:
		return signal.SentimentBearish
	default:
		return signal.SentimentNeutral
	}
}

// largeTradePremium sums volume-weighted premium of contracts trading more
// than one standard deviation above mean volume.
func largeTradePremium(contracts []types.OptionContract) float64 {
	if len(contracts) == 0 {
		return 0
	}

	mean := 0.0
	for _, c := range contracts {
		mean += float64(c.Volume)
	}
	mean /= float64(len(contracts))

	variance := 0.0
	for _, c := range contracts {
		diff := float64(c.Volume) - mean
		variance += diff * diff
	}
	std := math.Sqrt(variance / float64(len(contracts)))

	premium := 0.0
	for _, c := range contracts {
		if float64(c.Volume) > mean+std {
			premium += float64(c.Volume) * c.LastPrice
		}
	}
	return premium
}

func nearTerm(contracts []types.OptionContract) []types.OptionContract {
	cutoff := time.Now().Add(nearTermWindow)
	out := make([]types.OptionContract, 0, len(contracts))
	for _, c := range contracts {
		if !c.Expiration.After(cutoff) {
			out = append(out, c)
		}
	}
	return out
}

func totalVolume(contracts []types.OptionContract) int {
	total := 0
	for _, c := range contracts {
		total += c.Volume
	}
	return total
}

func averageIV(chain *types.OptionChain) float64 {
	count := len(chain.Calls) + len(chain.Puts)
	if count == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range chain.Calls {
		sum += c.ImpliedVolatility
	}
	for _, p := range chain.Puts {
		sum += p.ImpliedVolatility
	}
	return sum / float64(count)
}
