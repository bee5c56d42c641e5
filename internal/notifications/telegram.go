package notifications

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kosuri18/stock-screener/internal/signal"
)

type TelegramNotifier struct {
	token  string
	chatID string
}

func NewTelegramNotifier(token, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		token:  token,
		chatID: chatID,
	}
}

func (t *TelegramNotifier) SendAlert(level, message string) error {
	emoji := "ℹ️"
	switch level {
	case "warning":
		emoji = "⚠️"
	case "error":
		emoji = "🚨"
	case "success":
		emoji = "✅"
	}

	text := fmt.Sprintf("%s *Screener Alert*\n\n%s", emoji, message)

	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.token)

	data := url.Values{}
	data.Set("chat_id", t.chatID)
	data.Set("text", text)
	data.Set("parse_mode", "Markdown")

	resp, err := http.Post(apiURL, "application/x-www-form-urlencoded",
		strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}

// SendSignal formats a non-hold signal as a trade alert. Hold signals are
// skipped so the channel only carries actionable decisions.
func (t *TelegramNotifier) SendSignal(sig signal.TradeSignal) error {
	if sig.Action == signal.ActionHold {
		return nil
	}
	return t.SendAlert("success", FormatSignal(sig))
}

// FormatSignal renders a signal into the message body shared by all
// notifier backends.
func FormatSignal(sig signal.TradeSignal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s x%d @ $%.2f\n", sig.Action, sig.Ticker, sig.Quantity, sig.Price)
	fmt.Fprintf(&b, "Confidence: %.2f\n", sig.Confidence)
	if sig.StopLoss > 0 {
		fmt.Fprintf(&b, "Stop loss: $%.2f\n", sig.StopLoss)
	}
	if len(sig.Reasons) > 0 {
		fmt.Fprintf(&b, "Reasons: %s", strings.Join(sig.Reasons, "; "))
	}
	return b.String()
}
