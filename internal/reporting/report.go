package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kosuri18/stock-screener/internal/signal"
)

// Report is one scan of the ticker universe, ready for output.
type Report struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Signals     []signal.TradeSignal `json:"signals"`
}

// NewReport stamps a scan's signals with the generation time.
func NewReport(signals []signal.TradeSignal) *Report {
	return &Report{
		GeneratedAt: time.Now(),
		Signals:     signals,
	}
}

// Actionable returns only the buy and sell signals.
func (r *Report) Actionable() []signal.TradeSignal {
	out := make([]signal.TradeSignal, 0, len(r.Signals))
	for _, sig := range r.Signals {
		if sig.Action != signal.ActionHold {
			out = append(out, sig)
		}
	}
	return out
}

// DefaultOutputDir returns the per-day results directory.
func DefaultOutputDir(day time.Time) string {
	return filepath.Join("results", day.Format("2006-01-02"))
}

// EnsureDirectoryExists creates the parent directory of path if needed.
func EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// timestampedName builds scan_<ts>.<ext> for a report file.
func timestampedName(at time.Time, ext string) string {
	return fmt.Sprintf("scan_%s.%s", at.Format("20060102_150405"), strings.TrimPrefix(ext, "."))
}
