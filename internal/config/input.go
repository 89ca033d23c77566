package config

import (
	"fmt"
	"os"

	"github.com/glidepath/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	allocTolerance = decimal.NewFromFloat(0.01)
	allocTotal     = decimal.NewFromInt(100)
	guardrailFloor = decimal.NewFromInt(1)
	guardrailCeil  = decimal.NewFromInt(99)
	minInflation   = decimal.NewFromFloat(-0.10)
	maxFeeRate     = decimal.NewFromFloat(0.10)
)

// InputParser handles parsing of scenario input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML or JSON file. YAML is a superset
// of JSON, so both parse through the same path.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates raw scenario bytes.
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioInput, error) {
	var scenario domain.ScenarioInput
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	applyDefaults(&scenario)

	if err := ip.ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &scenario, nil
}

// applyDefaults fills the optional fields a scenario may omit.
func applyDefaults(scenario *domain.ScenarioInput) {
	if scenario.SpendingProfile == "" {
		scenario.SpendingProfile = domain.ProfileFlat
	}
	if scenario.Guardrails == (domain.GuardrailBands{}) {
		scenario.Guardrails = domain.DefaultGuardrails()
	}
	if scenario.Iterations == 0 {
		scenario.Iterations = 10000
	}
	if scenario.IncomeInflationAnchor == "" {
		scenario.IncomeInflationAnchor = domain.AnchorActivation
	}
}

// ValidateScenario checks the full input taxonomy: required fields,
// allocation sum, guardrail ordering, bounds, and per-item income/expense
// shape. Every message names the offending field.
func (ip *InputParser) ValidateScenario(scenario *domain.ScenarioInput) error {
	if scenario.Age1 <= 0 {
		return fmt.Errorf("age must be positive, got %d", scenario.Age1)
	}
	if scenario.Age2 != nil && *scenario.Age2 <= 0 {
		return fmt.Errorf("age2 must be positive, got %d", *scenario.Age2)
	}
	if scenario.RetirementAge <= 0 {
		return fmt.Errorf("retirement_age must be positive, got %d", scenario.RetirementAge)
	}
	if scenario.HorizonYears < domain.MinHorizonYears || scenario.HorizonYears > domain.MaxHorizonYears {
		return fmt.Errorf("horizon_years must be between %d and %d, got %d",
			domain.MinHorizonYears, domain.MaxHorizonYears, scenario.HorizonYears)
	}
	if scenario.PortfolioValue.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("portfolio_value must be positive, got %s", scenario.PortfolioValue.String())
	}
	if scenario.AnnualSpending.LessThan(decimal.Zero) {
		return fmt.Errorf("annual_spending cannot be negative, got %s", scenario.AnnualSpending.String())
	}
	if scenario.FeeRate.LessThan(decimal.Zero) || scenario.FeeRate.GreaterThan(maxFeeRate) {
		return fmt.Errorf("fee_rate must be between 0 and %s, got %s", maxFeeRate.String(), scenario.FeeRate.String())
	}
	if scenario.InflationRate.LessThan(minInflation) {
		return fmt.Errorf("inflation_rate cannot be less than %s (extreme deflation), got %s",
			minInflation.String(), scenario.InflationRate.String())
	}

	if err := ip.validateAllocation(scenario.Allocation); err != nil {
		return err
	}
	if err := ip.validateGuardrails(scenario.Guardrails); err != nil {
		return err
	}

	if scenario.Iterations < domain.MinIterations || scenario.Iterations > domain.MaxIterations {
		return fmt.Errorf("iterations must be between %d and %d, got %d",
			domain.MinIterations, domain.MaxIterations, scenario.Iterations)
	}

	if err := ip.validateProfile(scenario); err != nil {
		return err
	}

	if scenario.Phi != nil {
		if *scenario.Phi < domain.PhiMin || *scenario.Phi > 0 {
			return fmt.Errorf("phi must be between %.2f and 0, got %.2f", domain.PhiMin, *scenario.Phi)
		}
	}

	switch scenario.IncomeInflationAnchor {
	case domain.AnchorActivation, domain.AnchorScenarioStart:
	default:
		return fmt.Errorf("income_inflation_anchor must be %q or %q, got %q",
			domain.AnchorActivation, domain.AnchorScenarioStart, scenario.IncomeInflationAnchor)
	}

	for i := range scenario.IncomeSources {
		if err := ip.validateIncomeSource(i, &scenario.IncomeSources[i]); err != nil {
			return err
		}
	}
	for i := range scenario.Expenses {
		if err := ip.validateExpense(i, &scenario.Expenses[i]); err != nil {
			return err
		}
	}

	return nil
}

func (ip *InputParser) validateAllocation(alloc domain.Allocation) error {
	for _, w := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"allocation.stock", alloc.Stock},
		{"allocation.bond", alloc.Bond},
		{"allocation.cash", alloc.Cash},
	} {
		if w.value.LessThan(decimal.Zero) {
			return fmt.Errorf("%s cannot be negative, got %s", w.name, w.value.String())
		}
	}

	sum := alloc.Sum()
	if sum.Sub(allocTotal).Abs().GreaterThan(allocTolerance) {
		return fmt.Errorf("allocation must sum to 100 (±0.01), got %s", sum.String())
	}
	return nil
}

func (ip *InputParser) validateGuardrails(bands domain.GuardrailBands) error {
	if bands.Lower.LessThan(guardrailFloor) {
		return fmt.Errorf("guardrails.lower must be at least 1, got %s", bands.Lower.String())
	}
	if bands.Upper.GreaterThan(guardrailCeil) {
		return fmt.Errorf("guardrails.upper must be at most 99, got %s", bands.Upper.String())
	}
	if !bands.Lower.LessThan(bands.Target) {
		return fmt.Errorf("guardrails.lower (%s) must be less than guardrails.target (%s)",
			bands.Lower.String(), bands.Target.String())
	}
	if !bands.Target.LessThan(bands.Upper) {
		return fmt.Errorf("guardrails.target (%s) must be less than guardrails.upper (%s)",
			bands.Target.String(), bands.Upper.String())
	}
	return nil
}

func (ip *InputParser) validateProfile(scenario *domain.ScenarioInput) error {
	switch scenario.SpendingProfile {
	case domain.ProfileFlat, domain.ProfileSmile, domain.ProfileStepdown:
		return nil
	case domain.ProfileCustom:
		if len(scenario.CustomProfile) == 0 {
			return fmt.Errorf("custom_profile requires at least one control point")
		}
		for i, pt := range scenario.CustomProfile {
			if pt.Multiplier < 0 {
				return fmt.Errorf("custom_profile[%d].multiplier cannot be negative, got %.4f", i, pt.Multiplier)
			}
			if pt.Age <= 0 {
				return fmt.Errorf("custom_profile[%d].age must be positive, got %d", i, pt.Age)
			}
		}
		return nil
	default:
		return fmt.Errorf("spending_profile must be one of flat, smile, stepdown, custom; got %q", scenario.SpendingProfile)
	}
}

func (ip *InputParser) validateIncomeSource(index int, src *domain.IncomeSource) error {
	if src.Name == "" {
		return fmt.Errorf("income_sources[%d].name is required", index)
	}
	if src.AnnualAmount.LessThan(decimal.Zero) {
		return fmt.Errorf("income_sources[%d].annual_amount cannot be negative, got %s", index, src.AnnualAmount.String())
	}
	if src.StartAge <= 0 {
		return fmt.Errorf("income_sources[%d].start_age must be positive, got %d", index, src.StartAge)
	}
	if src.EndAge != nil && *src.EndAge < src.StartAge {
		return fmt.Errorf("income_sources[%d].end_age (%d) cannot be before start_age (%d)", index, *src.EndAge, src.StartAge)
	}
	switch src.Recipient {
	case "", domain.RecipientHousehold, domain.RecipientPerson1, domain.RecipientPerson2:
	default:
		return fmt.Errorf("income_sources[%d].recipient must be household, person1 or person2; got %q", index, src.Recipient)
	}
	return nil
}

func (ip *InputParser) validateExpense(index int, item *domain.ExpenseItem) error {
	if item.Name == "" {
		return fmt.Errorf("expenses[%d].name is required", index)
	}
	if item.AnnualAmount.LessThan(decimal.Zero) {
		return fmt.Errorf("expenses[%d].annual_amount cannot be negative, got %s", index, item.AnnualAmount.String())
	}
	if item.StartAge <= 0 {
		return fmt.Errorf("expenses[%d].start_age must be positive, got %d", index, item.StartAge)
	}
	if item.OneTime && item.DurationYears > 0 {
		return fmt.Errorf("expenses[%d]: specify either one_time or duration_years, not both", index)
	}
	if !item.OneTime && item.DurationYears < 1 {
		return fmt.Errorf("expenses[%d].duration_years must be at least 1 for recurring expenses, got %d", index, item.DurationYears)
	}
	return nil
}
