package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosuri18/stock-screener/internal/signal"
)

func sampleReport() *Report {
	return &Report{
		GeneratedAt: time.Date(2024, 6, 3, 16, 30, 0, 0, time.UTC),
		Signals: []signal.TradeSignal{
			{
				Ticker:     "AAPL",
				Action:     signal.ActionBuy,
				Quantity:   40,
				Confidence: 0.5,
				Price:      125.0,
				StopLoss:   118.75,
				Reasons:    []string{"Oversold (RSI)", "Bullish MACD"},
				Timestamp:  time.Date(2024, 6, 3, 16, 30, 0, 0, time.UTC),
			},
			signal.Hold("MSFT", "Neutral technical indicators"),
		},
	}
}

// TestActionable_FiltersHolds verifies only buy/sell signals survive.
func TestActionable_FiltersHolds(t *testing.T) {
	report := sampleReport()

	actionable := report.Actionable()

	require.Len(t, actionable, 1)
	assert.Equal(t, "AAPL", actionable[0].Ticker)
}

// TestWriteReportJSON_RoundTrip writes a report and reads it back.
func TestWriteReportJSON_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "scan.json")

	err := WriteReportJSON(sampleReport(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Signals, 2)
	assert.Equal(t, "AAPL", got.Signals[0].Ticker)
	assert.Equal(t, 40, got.Signals[0].Quantity)
	assert.Equal(t, []string{"Oversold (RSI)", "Bullish MACD"}, got.Signals[0].Reasons)
}

// TestWriteReportXLSX_CreatesFile verifies the workbook is written.
func TestWriteReportXLSX_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.xlsx")

	err := NewExcelReporter().WriteReportXLSX(sampleReport(), path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

// TestSaveReport_TimestampedNames verifies both output files exist.
func TestSaveReport_TimestampedNames(t *testing.T) {
	dir := t.TempDir()

	jsonPath, err := SaveReport(sampleReport(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scan_20240603_163000.json"), jsonPath)

	_, err = os.Stat(filepath.Join(dir, "scan_20240603_163000.xlsx"))
	assert.NoError(t, err)
}
