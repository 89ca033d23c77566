package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glidepath/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScenarioYAML = `
name: "test household"
age: 65
retirement_age: 65
horizon_years: 30
portfolio_value: 1000000
annual_spending: 45000
allocation:
  stock: 60
  bond: 35
  cash: 5
fee_rate: 0.005
inflation_rate: 0.03
spending_profile: smile
guardrails:
  lower: 80
  target: 90
  upper: 95
iterations: 5000
income_sources:
  - name: "social security"
    annual_amount: 30000
    start_age: 67
    inflation_adjusted: true
expenses:
  - name: "roof replacement"
    annual_amount: 25000
    start_age: 72
    one_time: true
  - name: "travel"
    annual_amount: 8000
    start_age: 66
    duration_years: 5
`

func TestParse_ValidScenario(t *testing.T) {
	parser := NewInputParser()
	scenario, err := parser.Parse([]byte(validScenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, 65, scenario.Age1)
	assert.Equal(t, 30, scenario.HorizonYears)
	assert.True(t, scenario.PortfolioValue.Equal(decimal.NewFromInt(1000000)))
	assert.Equal(t, domain.ProfileSmile, scenario.SpendingProfile)
	assert.Equal(t, 5000, scenario.Iterations)
	require.Len(t, scenario.IncomeSources, 1)
	assert.True(t, scenario.IncomeSources[0].InflationAdjusted)
	require.Len(t, scenario.Expenses, 2)
	assert.True(t, scenario.Expenses[0].OneTime)
	assert.Equal(t, 5, scenario.Expenses[1].DurationYears)
}

func TestParse_AppliesDefaults(t *testing.T) {
	minimal := `
age: 60
retirement_age: 62
horizon_years: 25
portfolio_value: 500000
annual_spending: 30000
allocation:
  stock: 50
  bond: 40
  cash: 10
`
	parser := NewInputParser()
	scenario, err := parser.Parse([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, domain.ProfileFlat, scenario.SpendingProfile)
	assert.True(t, scenario.Guardrails.Lower.Equal(decimal.NewFromInt(80)))
	assert.True(t, scenario.Guardrails.Target.Equal(decimal.NewFromInt(90)))
	assert.True(t, scenario.Guardrails.Upper.Equal(decimal.NewFromInt(95)))
	assert.Equal(t, 10000, scenario.Iterations)
	assert.Equal(t, domain.AnchorActivation, scenario.IncomeInflationAnchor)
}

func TestParse_MalformedYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.Parse([]byte("age: [not closed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse scenario")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validScenarioYAML), 0o644))

	parser := NewInputParser()
	scenario, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test household", scenario.Name)
}

func TestLoadFromFile_Missing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func validScenario() *domain.ScenarioInput {
	return &domain.ScenarioInput{
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
		FeeRate:               decimal.NewFromFloat(0.005),
		InflationRate:         decimal.NewFromFloat(0.03),
		SpendingProfile:       domain.ProfileFlat,
		Guardrails:            domain.DefaultGuardrails(),
		Iterations:            10000,
		IncomeInflationAnchor: domain.AnchorActivation,
	}
}

func TestValidateScenario_FieldErrors(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(s *domain.ScenarioInput)
		wantMsg string
	}{
		{
			name:    "allocation sums to 99",
			mutate:  func(s *domain.ScenarioInput) { s.Allocation.Cash = decimal.NewFromInt(4) },
			wantMsg: "allocation must sum to 100",
		},
		{
			name: "negative allocation weight",
			mutate: func(s *domain.ScenarioInput) {
				s.Allocation.Bond = decimal.NewFromInt(-5)
				s.Allocation.Stock = decimal.NewFromInt(100)
			},
			wantMsg: "allocation.bond cannot be negative",
		},
		{
			name: "guardrail lower above target",
			mutate: func(s *domain.ScenarioInput) {
				s.Guardrails.Lower = decimal.NewFromInt(90)
				s.Guardrails.Target = decimal.NewFromInt(85)
			},
			wantMsg: "guardrails.lower",
		},
		{
			name:    "guardrail upper above 99",
			mutate:  func(s *domain.ScenarioInput) { s.Guardrails.Upper = decimal.NewFromInt(100) },
			wantMsg: "guardrails.upper must be at most 99",
		},
		{
			name:    "iterations below minimum",
			mutate:  func(s *domain.ScenarioInput) { s.Iterations = 50 },
			wantMsg: "iterations must be between",
		},
		{
			name:    "iterations above maximum",
			mutate:  func(s *domain.ScenarioInput) { s.Iterations = 500000 },
			wantMsg: "iterations must be between",
		},
		{
			name:    "horizon too long",
			mutate:  func(s *domain.ScenarioInput) { s.HorizonYears = 61 },
			wantMsg: "horizon_years must be between",
		},
		{
			name:    "zero portfolio",
			mutate:  func(s *domain.ScenarioInput) { s.PortfolioValue = decimal.Zero },
			wantMsg: "portfolio_value must be positive",
		},
		{
			name:    "negative spending",
			mutate:  func(s *domain.ScenarioInput) { s.AnnualSpending = decimal.NewFromInt(-1) },
			wantMsg: "annual_spending cannot be negative",
		},
		{
			name:    "fee rate above cap",
			mutate:  func(s *domain.ScenarioInput) { s.FeeRate = decimal.NewFromFloat(0.15) },
			wantMsg: "fee_rate must be between",
		},
		{
			name:    "extreme deflation",
			mutate:  func(s *domain.ScenarioInput) { s.InflationRate = decimal.NewFromFloat(-0.5) },
			wantMsg: "inflation_rate",
		},
		{
			name:    "unknown profile",
			mutate:  func(s *domain.ScenarioInput) { s.SpendingProfile = "exponential" },
			wantMsg: "spending_profile must be one of",
		},
		{
			name:    "custom profile without points",
			mutate:  func(s *domain.ScenarioInput) { s.SpendingProfile = domain.ProfileCustom },
			wantMsg: "custom_profile requires at least one control point",
		},
		{
			name: "phi out of range",
			mutate: func(s *domain.ScenarioInput) {
				phi := -0.8
				s.Phi = &phi
			},
			wantMsg: "phi must be between",
		},
		{
			name: "positive phi rejected",
			mutate: func(s *domain.ScenarioInput) {
				phi := 0.2
				s.Phi = &phi
			},
			wantMsg: "phi must be between",
		},
		{
			name:    "bad inflation anchor",
			mutate:  func(s *domain.ScenarioInput) { s.IncomeInflationAnchor = "midpoint" },
			wantMsg: "income_inflation_anchor",
		},
		{
			name: "income source without name",
			mutate: func(s *domain.ScenarioInput) {
				s.IncomeSources = []domain.IncomeSource{{AnnualAmount: decimal.NewFromInt(1000), StartAge: 65}}
			},
			wantMsg: "income_sources[0].name is required",
		},
		{
			name: "income end age before start",
			mutate: func(s *domain.ScenarioInput) {
				end := 60
				s.IncomeSources = []domain.IncomeSource{{Name: "p", AnnualAmount: decimal.NewFromInt(1000), StartAge: 65, EndAge: &end}}
			},
			wantMsg: "end_age",
		},
		{
			name: "expense one_time and duration conflict",
			mutate: func(s *domain.ScenarioInput) {
				s.Expenses = []domain.ExpenseItem{{Name: "x", AnnualAmount: decimal.NewFromInt(1000), StartAge: 70, OneTime: true, DurationYears: 3}}
			},
			wantMsg: "either one_time or duration_years",
		},
		{
			name: "recurring expense without duration",
			mutate: func(s *domain.ScenarioInput) {
				s.Expenses = []domain.ExpenseItem{{Name: "x", AnnualAmount: decimal.NewFromInt(1000), StartAge: 70}}
			},
			wantMsg: "duration_years must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := validScenario()
			tt.mutate(scenario)

			err := parser.ValidateScenario(scenario)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateScenario_AllocationTolerance(t *testing.T) {
	parser := NewInputParser()

	scenario := validScenario()
	scenario.Allocation = domain.Allocation{
		Stock: decimal.NewFromFloat(60.005),
		Bond:  decimal.NewFromInt(35),
		Cash:  decimal.NewFromInt(5),
	}
	assert.NoError(t, parser.ValidateScenario(scenario), "sum within ±0.01 is accepted")
}

func TestValidateScenario_CustomProfileOK(t *testing.T) {
	parser := NewInputParser()

	scenario := validScenario()
	scenario.SpendingProfile = domain.ProfileCustom
	scenario.CustomProfile = []domain.CustomProfilePoint{
		{Age: 65, Multiplier: 1.0},
		{Age: 85, Multiplier: 0.8},
	}
	assert.NoError(t, parser.ValidateScenario(scenario))
}
