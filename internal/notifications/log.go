package notifications

import (
	"log"
	"strings"

	"github.com/kosuri18/stock-screener/internal/signal"
)

// LogNotifier writes alerts to the process log. It is the default backend
// when no Telegram credentials are configured and in test mode.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (l *LogNotifier) SendAlert(level, message string) error {
	log.Printf("[%s] %s", strings.ToUpper(level), message)
	return nil
}

func (l *LogNotifier) SendSignal(sig signal.TradeSignal) error {
	if sig.Action == signal.ActionHold {
		return nil
	}
	return l.SendAlert("info", FormatSignal(sig))
}
