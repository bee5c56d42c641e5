package reporting

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelReporter writes a scan report to an xlsx workbook.
type ExcelReporter struct{}

// NewExcelReporter creates a new Excel reporter
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

type excelStyles struct {
	header   int
	currency int
	buy      int
	sell     int
}

// WriteReportXLSX writes the scan to path, one row per signal.
func (r *ExcelReporter) WriteReportXLSX(report *Report, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const sheet = "Signals"
	fx.SetSheetName(fx.GetSheetName(0), sheet)

	styles, err := r.createStyles(fx)
	if err != nil {
		return err
	}

	headers := []string{"Ticker", "Action", "Quantity", "Price", "Confidence", "Stop Loss", "Reasons", "Timestamp"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.header)
	}

	for i, sig := range report.Signals {
		row := i + 2
		values := []interface{}{
			sig.Ticker,
			sig.Action.String(),
			sig.Quantity,
			sig.Price,
			sig.Confidence,
			sig.StopLoss,
			strings.Join(sig.Reasons, "; "),
			sig.Timestamp.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			fx.SetCellValue(sheet, cell, v)
		}

		// Currency columns
		for _, col := range []int{4, 6} {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			fx.SetCellStyle(sheet, cell, cell, styles.currency)
		}

		// Highlight actionable rows
		actionCell, _ := excelize.CoordinatesToCellName(2, row)
		switch sig.Action.String() {
		case "BUY":
			fx.SetCellStyle(sheet, actionCell, actionCell, styles.buy)
		case "SELL":
			fx.SetCellStyle(sheet, actionCell, actionCell, styles.sell)
		}
	}

	fx.SetColWidth(sheet, "A", "A", 10)
	fx.SetColWidth(sheet, "G", "G", 50)
	fx.SetColWidth(sheet, "H", "H", 20)

	return fx.SaveAs(path)
}

func (r *ExcelReporter) createStyles(fx *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	styles.header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.currency, err = fx.NewStyle(&excelize.Style{
		NumFmt: 7,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.buy, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "006100"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return styles, err
	}

	styles.sell, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	return styles, err
}
