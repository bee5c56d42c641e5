package backtest

import "math"

// SharpeRatio is the mean per-trade percentage return over its standard
// deviation. Fewer than two trades, or a zero-volatility trade log, scores 0.
func (r *Results) SharpeRatio() float64 {
	if len(r.Trades) < 2 {
		return 0
	}

	mean := 0.0
	for _, t := range r.Trades {
		mean += t.PnLPct
	}
	mean /= float64(len(r.Trades))

	variance := 0.0
	for _, t := range r.Trades {
		diff := t.PnLPct - mean
		variance += diff * diff
	}
	std := math.Sqrt(variance / float64(len(r.Trades)))
	if std == 0 {
		return 0
	}

	return mean / std
}

// WinRate is the fraction of trades closed at a profit.
func (r *Results) WinRate() float64 {
	if len(r.Trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range r.Trades {
		if t.PnL > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(r.Trades))
}

// TotalReturnPct is the compounded return over the whole simulation.
func (r *Results) TotalReturnPct() float64 {
	if r.InitialCapital == 0 {
		return 0
	}
	return (r.FinalCapital - r.InitialCapital) / r.InitialCapital * 100
}

// MaxDrawdownPct is the deepest peak-to-trough loss of the compounded
// capital path, as a positive percentage.
func (r *Results) MaxDrawdownPct() float64 {
	capital := r.InitialCapital
	peak := capital
	maxDD := 0.0

	for _, t := range r.Trades {
		capital *= 1 + t.PnLPct/100
		if capital > peak {
			peak = capital
		}
		if peak > 0 {
			dd := (peak - capital) / peak * 100
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}
