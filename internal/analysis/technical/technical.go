package technical

import (
	"errors"

	"github.com/kosuri18/stock-screener/internal/signal"
	"github.com/kosuri18/stock-screener/pkg/types"
)

// Default indicator parameters.
const (
	RSIPeriod        = 14
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
	SMAShortPeriod   = 20
	SMALongPeriod    = 50
	BollingerPeriod  = 20
	BollingerStd     = 2.0
)

// minBars is the shortest series the analyzer accepts. The long SMA is the
// binding constraint; it also covers the slow MACD EMA plus its signal line.
const minBars = SMALongPeriod

// ErrInsufficientData reports a price series too short to analyze.
var ErrInsufficientData = errors.New("insufficient price history for technical analysis")

// Analyzer computes the technical signal bundle for a price series.
type Analyzer struct{}

// NewAnalyzer creates a technical analyzer with default parameters.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze derives the indicator bundle from the bars. On a series too short
// to analyze it returns a neutral bundle along with ErrInsufficientData, so
// downstream fusion still has well-defined defaults to work with.
func (a *Analyzer) Analyze(bars []types.Bar) (signal.TechnicalSignals, error) {
	if len(bars) < minBars {
		return signal.TechnicalSignals{}, ErrInsufficientData
	}

	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	upper, lower := Bollinger(closes, BollingerPeriod, BollingerStd)

	out := signal.TechnicalSignals{
		RSI:            signal.Float64(RSI(closes, RSIPeriod)),
		MACDSignal:     signal.Float64(MACDHistogram(closes, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)),
		SMA20:          SMA(closes, SMAShortPeriod),
		SMA50:          SMA(closes, SMALongPeriod),
		BollingerUpper: upper,
		BollingerLower: lower,
	}

	if out.SMA20 > out.SMA50 {
		out.Trend = "bullish"
	} else {
		out.Trend = "bearish"
	}

	volumeSMA := SMA(volumes, SMAShortPeriod)
	if volumes[len(volumes)-1] > volumeSMA {
		out.VolumeTrend = "high"
	} else {
		out.VolumeTrend = "low"
	}

	return out, nil
}
