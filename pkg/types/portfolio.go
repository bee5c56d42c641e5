package types

// Position is an open holding in the portfolio.
type Position struct {
	Ticker       string
	Quantity     int
	EntryPrice   float64
	CurrentPrice float64
	StopLoss     float64
}

// Portfolio is the current account state. The decision pipeline only ever
// reads it; sizing and validation never mutate positions or balances.
type Portfolio struct {
	Value       float64
	Cash        float64
	BuyingPower float64
	Positions   []Position
}
