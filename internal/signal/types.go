package signal

import "time"

// Action represents the type of trading action
type Action int

const (
	ActionHold Action = iota
	ActionBuy
	ActionSell
)

func (a Action) String() string {
	switch a {
	case ActionHold:
		return "HOLD"
	case ActionBuy:
		return "BUY"
	case ActionSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON serializes the action as its string form.
func (a Action) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON parses the string form back into an action. Unknown values
// decode as hold.
func (a *Action) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"BUY"`:
		*a = ActionBuy
	case `"SELL"`:
		*a = ActionSell
	default:
		*a = ActionHold
	}
	return nil
}

// Sentiment is the options-flow reading produced by the options analyzer.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Defaults applied when an analyzer leaves a field unset. A missing RSI is
// treated as neutral (50) so neither the oversold nor the overbought branch
// fires; a missing MACD or Sharpe reads as zero.
const (
	DefaultRSI         = 50.0
	DefaultMACDSignal  = 0.0
	DefaultSharpeRatio = 0.0
)

// TechnicalSignals is the technical analyzer's output bundle. Optional
// fields are pointers; nil means the analyzer could not compute the value
// and the documented default applies.
type TechnicalSignals struct {
	RSI            *float64
	MACDSignal     *float64
	SMA20          float64
	SMA50          float64
	BollingerUpper float64
	BollingerLower float64
	Trend          string
	VolumeTrend    string
}

// RSIValue returns the RSI or its neutral default.
func (t TechnicalSignals) RSIValue() float64 {
	if t.RSI == nil {
		return DefaultRSI
	}
	return *t.RSI
}

// MACDValue returns the MACD signal or its zero default.
func (t TechnicalSignals) MACDValue() float64 {
	if t.MACDSignal == nil {
		return DefaultMACDSignal
	}
	return *t.MACDSignal
}

// OptionsSignals is the options analyzer's output bundle.
type OptionsSignals struct {
	Sentiment    Sentiment
	PutCallRatio float64
	AvgIV        float64
}

// BacktestSignals is the backtester's output bundle.
type BacktestSignals struct {
	SharpeRatio    *float64
	WinRate        float64
	TotalTrades    int
	TotalReturnPct float64
}

// SharpeValue returns the Sharpe ratio or its zero default.
func (b BacktestSignals) SharpeValue() float64 {
	if b.SharpeRatio == nil {
		return DefaultSharpeRatio
	}
	return *b.SharpeRatio
}

// TradeSignal is the final decision record emitted by the pipeline.
//
// Invariants: Action == ActionHold implies Quantity == 0, and Quantity > 0
// implies Action is buy or sell.
type TradeSignal struct {
	Ticker     string    `json:"ticker"`
	Action     Action    `json:"action"`
	Quantity   int       `json:"quantity"`
	Confidence float64   `json:"confidence,omitempty"`
	Price      float64   `json:"price,omitempty"`
	Reasons    []string  `json:"reasons"`
	StopLoss   float64   `json:"stop_loss,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Hold returns a well-formed hold signal carrying the given reason. Every
// failure path funnels through here so callers always receive a valid record.
func Hold(ticker, reason string) TradeSignal {
	return TradeSignal{
		Ticker:    ticker,
		Action:    ActionHold,
		Quantity:  0,
		Reasons:   []string{reason},
		Timestamp: time.Now(),
	}
}

// Float64 returns a pointer to v, for filling optional bundle fields.
func Float64(v float64) *float64 {
	return &v
}
