package reporting

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kosuri18/stock-screener/internal/signal"
)

// ConsoleReporter renders a scan report as a terminal table.
type ConsoleReporter struct{}

// NewConsoleReporter creates a new console reporter
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// OutputReport prints the full scan to stdout.
func (r *ConsoleReporter) OutputReport(report *Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("SCAN RESULTS %s", report.GeneratedAt.Format("2006-01-02 15:04"))
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Ticker", "Action", "Qty", "Price", "Conf", "Stop", "Reasons"})
	for _, sig := range report.Signals {
		t.AppendRow(table.Row{
			sig.Ticker,
			actionCell(sig.Action),
			sig.Quantity,
			fmt.Sprintf("$%.2f", sig.Price),
			fmt.Sprintf("%+.2f", sig.Confidence),
			stopCell(sig.StopLoss),
			strings.Join(sig.Reasons, "; "),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 6, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 7, WidthMax: 50, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Println()
}

// OutputSummary prints one line per actionable signal, for log-style runs.
func (r *ConsoleReporter) OutputSummary(report *Report) {
	actionable := report.Actionable()
	if len(actionable) == 0 {
		fmt.Println("No actionable signals this scan")
		return
	}
	for _, sig := range actionable {
		fmt.Printf("%s %s x%d @ $%.2f (conf %+.2f)\n",
			actionCell(sig.Action), sig.Ticker, sig.Quantity, sig.Price, sig.Confidence)
	}
}

func actionCell(a signal.Action) string {
	switch a {
	case signal.ActionBuy:
		return "🟢 BUY"
	case signal.ActionSell:
		return "🔴 SELL"
	default:
		return "⚪ HOLD"
	}
}

func stopCell(stop float64) string {
	if stop <= 0 {
		return "-"
	}
	return fmt.Sprintf("$%.2f", stop)
}
