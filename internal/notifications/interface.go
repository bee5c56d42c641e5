package notifications

import "github.com/kosuri18/stock-screener/internal/signal"

// Notifier defines the interface for notification services
type Notifier interface {
	// SendAlert sends an alert with the specified level and message
	SendAlert(level, message string) error

	// SendSignal sends a formatted trade signal alert
	SendSignal(sig signal.TradeSignal) error
}
