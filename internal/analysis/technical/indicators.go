package technical

import "math"

// SMA returns the simple moving average of the last period values.
func SMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period)
}

// EMA returns the last value of an exponential moving average over values.
func EMA(values []float64, period int) float64 {
	series := emaSeries(values, period)
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

// emaSeries seeds with an SMA over the first period values and then applies
// the standard smoothing multiplier.
func emaSeries(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	multiplier := 2.0 / float64(period+1)

	series := make([]float64, 0, len(values)-period+1)
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	seed /= float64(period)
	series = append(series, seed)

	for i := period; i < len(values); i++ {
		prev := series[len(series)-1]
		series = append(series, (values[i]-prev)*multiplier+prev)
	}
	return series
}

// RSI computes the relative strength index over the last period changes.
func RSI(values []float64, period int) float64 {
	if period <= 0 || len(values) < period+1 {
		return 50
	}

	gains, losses := 0.0, 0.0
	for i := len(values) - period; i < len(values); i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	if losses == 0 {
		return 100
	}
	rs := gains / losses
	return 100 - 100/(1+rs)
}

// MACDHistogram returns the distance between the MACD line (EMA fast minus
// EMA slow) and its signal line. Positive values read as bullish momentum.
func MACDHistogram(values []float64, fast, slow, signalPeriod int) float64 {
	if len(values) < slow+signalPeriod {
		return 0
	}

	fastSeries := emaSeries(values, fast)
	slowSeries := emaSeries(values, slow)
	if len(fastSeries) == 0 || len(slowSeries) == 0 {
		return 0
	}

	// Align the two series on their tails before differencing.
	n := len(slowSeries)
	macdLine := make([]float64, n)
	offset := len(fastSeries) - n
	for i := 0; i < n; i++ {
		macdLine[i] = fastSeries[offset+i] - slowSeries[i]
	}

	signalSeries := emaSeries(macdLine, signalPeriod)
	if len(signalSeries) == 0 {
		return 0
	}
	return macdLine[len(macdLine)-1] - signalSeries[len(signalSeries)-1]
}

// Bollinger returns the upper and lower bands around a period SMA.
func Bollinger(values []float64, period int, numStd float64) (upper, lower float64) {
	if period <= 0 || len(values) < period {
		return 0, 0
	}

	mean := SMA(values, period)
	variance := 0.0
	for i := len(values) - period; i < len(values); i++ {
		diff := values[i] - mean
		variance += diff * diff
	}
	std := math.Sqrt(variance / float64(period))

	return mean + numStd*std, mean - numStd*std
}
