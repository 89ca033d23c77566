package output

import (
	"fmt"

	"github.com/glidepath/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// Report bundles everything one calculation produced, sufficient for a
// presentation layer to render without recomputation.
type Report struct {
	Scenario *domain.ScenarioInput `json:"scenario,omitempty"`

	// Results is the baseline (independent-normal) simulation.
	Results *domain.AggregateResult `json:"results"`

	// EnhancedResults is the mean-reverting variant run alongside the
	// baseline for side-by-side comparison, when requested.
	EnhancedResults *domain.AggregateResult `json:"enhancedResults,omitempty"`

	// Decision is present for guardrail recommendation runs.
	Decision *domain.GuardrailDecision `json:"decision,omitempty"`
}

// Formatter renders a report in one output format.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// GetFormatterByName returns the formatter registered under the given name,
// or nil if there is none.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "json":
		return &JSONFormatter{Pretty: true}
	case "console":
		return &ConsoleFormatter{}
	case "csv":
		return &CSVFormatter{}
	default:
		return nil
	}
}

// FormatCurrency formats a decimal as currency.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatReport renders with the named formatter.
func FormatReport(report *Report, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return f.Format(report)
}
