// Package report renders validation results: the CSV artifact, the
// aggregate summary block, and the per-address verbose listing.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ignite/email-validator/internal/validator"
)

// CSVHeader is the fixed column contract of the output file.
var CSVHeader = []string{"email", "valid_format", "disposable", "mx_valid", "status"}

// WriteCSV writes one row per result, in order, under the fixed header.
// Booleans render as "true" and "false".
func WriteCSV(path string, results []validator.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	records := make([][]string, 0, len(results)+1)
	records = append(records, CSVHeader)
	for _, r := range results {
		records = append(records, []string{
			r.Email,
			strconv.FormatBool(r.ValidFormat),
			strconv.FormatBool(r.Disposable),
			strconv.FormatBool(r.MXValid),
			r.Status,
		})
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", path, err)
	}
	return nil
}
