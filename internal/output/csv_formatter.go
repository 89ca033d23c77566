package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"
)

var hundredDec = decimal.NewFromInt(100)

// CSVFormatter emits the per-year percentile series, one row per simulated
// year, suitable for spreadsheet charting.
type CSVFormatter struct{}

func (cf *CSVFormatter) Name() string { return "csv" }

// Format generates CSV output for the report's baseline yearly percentiles.
func (cf *CSVFormatter) Format(report *Report) ([]byte, error) {
	if report.Results == nil {
		return nil, fmt.Errorf("no results to format")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"year", "age", "p10", "p25", "p50", "p75", "p90"}); err != nil {
		return nil, err
	}

	for _, yp := range report.Results.YearlyPercentiles {
		row := []string{
			fmt.Sprintf("%d", yp.Year),
			fmt.Sprintf("%d", yp.Age),
			yp.P10.StringFixed(2),
			yp.P25.StringFixed(2),
			yp.P50.StringFixed(2),
			yp.P75.StringFixed(2),
			yp.P90.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
