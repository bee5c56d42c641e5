package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteReportJSON writes the scan report to path as indented JSON.
func WriteReportJSON(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	if err := EnsureDirectoryExists(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// SaveReport writes JSON and xlsx copies of the report under dir using
// timestamped names, and returns the JSON path.
func SaveReport(report *Report, dir string) (string, error) {
	jsonPath := filepath.Join(dir, timestampedName(report.GeneratedAt, "json"))
	if err := WriteReportJSON(report, jsonPath); err != nil {
		return "", err
	}

	xlsxPath := filepath.Join(dir, timestampedName(report.GeneratedAt, "xlsx"))
	if err := NewExcelReporter().WriteReportXLSX(report, xlsxPath); err != nil {
		return "", err
	}

	return jsonPath, nil
}
