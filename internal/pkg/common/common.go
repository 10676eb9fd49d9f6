package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// WriteCSVFile writes records to a CSV file.
func WriteCSVFile(filename string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("could not write record: %v", err)
		}
	}

	return nil
}

// FormatAmount renders currency amounts for reports and notifications.
func FormatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// FormatReportTime renders timestamps the way report consumers expect.
func FormatReportTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
