package types

import "time"

// Bar is a single OHLCV candle of the price series.
type Bar struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// OptionContract is one leg of an options chain.
type OptionContract struct {
	Symbol            string
	Strike            float64
	LastPrice         float64
	Bid               float64
	Ask               float64
	Volume            int
	OpenInterest      int
	ImpliedVolatility float64
	Expiration        time.Time
}

// OptionChain holds the calls and puts for one underlying.
type OptionChain struct {
	Underlying string
	Calls      []OptionContract
	Puts       []OptionContract
}

// NewsItem is a single headline with a coarse sentiment tag.
type NewsItem struct {
	Headline    string
	Publisher   string
	Sentiment   string
	PublishedAt time.Time
}

// MarketData bundles everything collected for one ticker. It is owned by
// the caller for the duration of a single pipeline run.
type MarketData struct {
	Ticker  string
	Bars    []Bar
	Options *OptionChain
	News    []NewsItem
}

// LastClose returns the latest close price, or 0 when no bars are present.
func (m *MarketData) LastClose() float64 {
	if m == nil || len(m.Bars) == 0 {
		return 0
	}
	return m.Bars[len(m.Bars)-1].Close
}
