package market

import (
	"errors"
	"math"

	"github.com/kosuri18/stock-screener/internal/analysis/technical"
	"github.com/kosuri18/stock-screener/pkg/types"
)

const (
	atrPeriod     = 14
	tradingDays   = 252
	shortTermSMA  = 20
	mediumTermSMA = 50
	longTermSMA   = 200
)

// ErrInsufficientHistory reports a series too short for condition analysis.
var ErrInsufficientHistory = errors.New("insufficient history for market analysis")

// Trend labels the market direction over three horizons.
type Trend struct {
	ShortTerm  string
	MediumTerm string
	LongTerm   string
}

// Volatility summarizes the dispersion of recent returns.
type Volatility struct {
	Daily       float64
	Annualized  float64
	ATR         float64
	MaxDrawdown float64
}

// Conditions is the overall market read, usually taken from an index proxy.
type Conditions struct {
	Trend      Trend
	Volatility Volatility
}

// Analyzer reads broad market conditions from a price series.
type Analyzer struct{}

// NewAnalyzer creates a market analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze computes trend and volatility over the series. The long-term
// trend needs 200 bars; shorter series produce an error.
func (a *Analyzer) Analyze(bars []types.Bar) (*Conditions, error) {
	if len(bars) < longTermSMA {
		return nil, ErrInsufficientHistory
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	current := closes[len(closes)-1]

	cond := &Conditions{
		Trend: Trend{
			ShortTerm:  direction(current, technical.SMA(closes, shortTermSMA)),
			MediumTerm: direction(current, technical.SMA(closes, mediumTermSMA)),
			LongTerm:   direction(current, technical.SMA(closes, longTermSMA)),
		},
	}

	daily := dailyVolatility(closes)
	cond.Volatility = Volatility{
		Daily:       daily,
		Annualized:  daily * math.Sqrt(tradingDays),
		ATR:         ATR(bars, atrPeriod),
		MaxDrawdown: MaxDrawdown(closes),
	}

	return cond, nil
}

// ATR is the average true range over the last period bars.
func ATR(bars []types.Bar, period int) float64 {
	if len(bars) < period+1 {
		return 0
	}
	atr := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		tr := math.Max(
			bars[i].High-bars[i].Low,
			math.Max(
				math.Abs(bars[i].High-bars[i-1].Close),
				math.Abs(bars[i].Low-bars[i-1].Close),
			),
		)
		atr += tr
	}
	return atr / float64(period)
}

// MaxDrawdown is the deepest fall from a running peak, as a negative
// fraction of that peak.
func MaxDrawdown(closes []float64) float64 {
	peak := math.Inf(-1)
	maxDD := 0.0
	for _, c := range closes {
		if c > peak {
			peak = c
		}
		if peak > 0 {
			dd := c/peak - 1
			if dd < maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

func dailyVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] != 0 {
			returns = append(returns, closes[i]/closes[i-1]-1)
		}
	}
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(returns)-1))
}

func direction(price, sma float64) string {
	if price > sma {
		return "bullish"
	}
	return "bearish"
}
