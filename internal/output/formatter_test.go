package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/glidepath/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *domain.AggregateResult {
	return &domain.AggregateResult{
		ProbabilityOfSuccess: decimal.NewFromFloat(87.5),
		Successful:           875,
		Failed:               125,
		Iterations:           1000,
		FinalValues: domain.FinalValuePercentiles{
			P10: decimal.NewFromInt(100000),
			P25: decimal.NewFromInt(400000),
			P50: decimal.NewFromInt(900000),
			P75: decimal.NewFromInt(1600000),
			P90: decimal.NewFromInt(2500000),
			Min: decimal.Zero,
			Max: decimal.NewFromInt(4000000),
		},
		YearlyPercentiles: []domain.YearlyPercentile{
			{Year: 0, Age: 65, P10: decimal.NewFromInt(950000), P25: decimal.NewFromInt(980000), P50: decimal.NewFromInt(1000000), P75: decimal.NewFromInt(1020000), P90: decimal.NewFromInt(1050000)},
			{Year: 1, Age: 66, P10: decimal.NewFromInt(900000), P25: decimal.NewFromInt(960000), P50: decimal.NewFromInt(1010000), P75: decimal.NewFromInt(1060000), P90: decimal.NewFromInt(1120000)},
		},
		ExpectedReturn: decimal.NewFromFloat(0.082),
		Volatility:     decimal.NewFromFloat(0.128),
		Year0: domain.Year0Breakdown{
			Income:        decimal.NewFromInt(20000),
			Expenses:      decimal.NewFromInt(5000),
			Spending:      decimal.NewFromInt(45000),
			NetWithdrawal: decimal.NewFromInt(30000),
		},
	}
}

func sampleReport() *Report {
	return &Report{
		Scenario: &domain.ScenarioInput{
			Name:           "baseline",
			Age1:           65,
			RetirementAge:  65,
			HorizonYears:   30,
			PortfolioValue: decimal.NewFromInt(1000000),
			AnnualSpending: decimal.NewFromInt(45000),
			Allocation: domain.Allocation{
				Stock: decimal.NewFromInt(60),
				Bond:  decimal.NewFromInt(35),
				Cash:  decimal.NewFromInt(5),
			},
			Guardrails: domain.DefaultGuardrails(),
		},
		Results: sampleResult(),
	}
}

func TestJSONFormatter_Keys(t *testing.T) {
	report := sampleReport()
	report.EnhancedResults = sampleResult()

	data, err := (&JSONFormatter{Pretty: true}).Format(report)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "scenario")
	assert.Contains(t, decoded, "results")
	assert.Contains(t, decoded, "enhancedResults")
	assert.NotContains(t, decoded, "decision", "absent decision is omitted")
}

func TestJSONFormatter_OmitsEnhancedWhenAbsent(t *testing.T) {
	data, err := (&JSONFormatter{}).Format(sampleReport())
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "enhancedResults")
}

func TestJSONFormatter_ResultFields(t *testing.T) {
	data, err := (&JSONFormatter{}).Format(sampleReport())
	require.NoError(t, err)

	var decoded struct {
		Results struct {
			ProbabilityOfSuccess decimal.Decimal `json:"probabilityOfSuccess"`
			Iterations           int             `json:"iterations"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Results.ProbabilityOfSuccess.Equal(decimal.NewFromFloat(87.5)))
	assert.Equal(t, 1000, decoded.Results.Iterations)
}

func TestConsoleFormatter(t *testing.T) {
	report := sampleReport()
	report.Decision = &domain.GuardrailDecision{
		Status:              domain.StatusBelowLower,
		Adjustment:          domain.AdjustDecrease,
		RecommendedSpending: decimal.NewFromInt(38500),
		ChangeAmount:        decimal.NewFromInt(-6500),
		ChangePercent:       decimal.NewFromFloat(-14.44),
		SearchIterations:    7,
		Converged:           true,
	}

	data, err := (&ConsoleFormatter{}).Format(report)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "RETIREMENT SPENDING SUSTAINABILITY ANALYSIS")
	assert.Contains(t, text, "baseline")
	assert.Contains(t, text, "87.50%")
	assert.Contains(t, text, "$900000.00") // p50 final value
	assert.Contains(t, text, "GUARDRAIL RECOMMENDATION")
	assert.Contains(t, text, "$38500.00/yr")
	assert.Contains(t, text, "converged=true")
}

func TestConsoleFormatter_MaintainHidesSearch(t *testing.T) {
	report := sampleReport()
	report.Decision = &domain.GuardrailDecision{
		Status:              domain.StatusWithinRange,
		Adjustment:          domain.AdjustMaintain,
		RecommendedSpending: decimal.NewFromInt(45000),
		Converged:           true,
	}

	data, err := (&ConsoleFormatter{}).Format(report)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Search:")
}

func TestCSVFormatter(t *testing.T) {
	data, err := (&CSVFormatter{}).Format(sampleReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "header plus one row per year")
	assert.Equal(t, "year,age,p10,p25,p50,p75,p90", lines[0])
	assert.Equal(t, "0,65,950000.00,980000.00,1000000.00,1020000.00,1050000.00", lines[1])
}

func TestCSVFormatter_NoResults(t *testing.T) {
	_, err := (&CSVFormatter{}).Format(&Report{})
	assert.Error(t, err)
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "json", GetFormatterByName("json").Name())
	assert.Equal(t, "console", GetFormatterByName("console").Name())
	assert.Equal(t, "csv", GetFormatterByName("csv").Name())
	assert.Nil(t, GetFormatterByName("xml"))
}

func TestFormatReport_UnknownFormat(t *testing.T) {
	_, err := FormatReport(sampleReport(), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "87.50%", FormatPercentage(decimal.NewFromFloat(87.5)))
}
