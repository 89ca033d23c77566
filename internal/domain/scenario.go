package domain

import (
	"github.com/shopspring/decimal"
)

// SpendingProfileKind selects the spending curve applied over the horizon.
type SpendingProfileKind string

const (
	ProfileFlat     SpendingProfileKind = "flat"
	ProfileSmile    SpendingProfileKind = "smile"
	ProfileStepdown SpendingProfileKind = "stepdown"
	ProfileCustom   SpendingProfileKind = "custom"
)

// InflationAnchor controls which year an income source's inflation adjustment
// counts from. The reference behavior anchors at the source's own start age;
// expenses always anchor at scenario start regardless of this setting.
type InflationAnchor string

const (
	AnchorActivation    InflationAnchor = "activation"
	AnchorScenarioStart InflationAnchor = "scenario_start"
)

// Recipient tags an income source with who receives it. Informational only;
// it does not change how amounts aggregate.
type Recipient string

const (
	RecipientHousehold Recipient = "household"
	RecipientPerson1   Recipient = "person1"
	RecipientPerson2   Recipient = "person2"
)

// Allocation holds asset-class weights as percentages summing to 100.
type Allocation struct {
	Stock decimal.Decimal `yaml:"stock" json:"stock"`
	Bond  decimal.Decimal `yaml:"bond" json:"bond"`
	Cash  decimal.Decimal `yaml:"cash" json:"cash"`
}

// Sum returns stock + bond + cash.
func (a Allocation) Sum() decimal.Decimal {
	return a.Stock.Add(a.Bond).Add(a.Cash)
}

// GuardrailBands holds the probability-of-success thresholds, in percent.
// Invariant: 1 <= Lower < Target < Upper <= 99.
type GuardrailBands struct {
	Lower  decimal.Decimal `yaml:"lower" json:"lower"`
	Target decimal.Decimal `yaml:"target" json:"target"`
	Upper  decimal.Decimal `yaml:"upper" json:"upper"`
}

// DefaultGuardrails returns the 80/90/95 bands used when a scenario omits them.
func DefaultGuardrails() GuardrailBands {
	return GuardrailBands{
		Lower:  decimal.NewFromInt(80),
		Target: decimal.NewFromInt(90),
		Upper:  decimal.NewFromInt(95),
	}
}

// IncomeSource is a recurring income stream in today's dollars.
type IncomeSource struct {
	Name              string          `yaml:"name" json:"name"`
	Recipient         Recipient       `yaml:"recipient,omitempty" json:"recipient,omitempty"`
	AnnualAmount      decimal.Decimal `yaml:"annual_amount" json:"annualAmount"`
	StartAge          int             `yaml:"start_age" json:"startAge"`
	EndAge            *int            `yaml:"end_age,omitempty" json:"endAge,omitempty"`
	InflationAdjusted bool            `yaml:"inflation_adjusted" json:"inflationAdjusted"`
}

// ActiveAt reports whether the source pays out at the given age.
func (s *IncomeSource) ActiveAt(age int) bool {
	if age < s.StartAge {
		return false
	}
	return s.EndAge == nil || age <= *s.EndAge
}

// ExpenseItem is an extra expense beyond baseline spending. Either OneTime is
// set (fires exactly once, at StartAge) or DurationYears >= 1 (fires every
// year from StartAge through EndAge()).
type ExpenseItem struct {
	Name              string          `yaml:"name" json:"name"`
	AnnualAmount      decimal.Decimal `yaml:"annual_amount" json:"annualAmount"`
	StartAge          int             `yaml:"start_age" json:"startAge"`
	OneTime           bool            `yaml:"one_time,omitempty" json:"oneTime,omitempty"`
	DurationYears     int             `yaml:"duration_years,omitempty" json:"durationYears,omitempty"`
	InflationAdjusted bool            `yaml:"inflation_adjusted" json:"inflationAdjusted"`
}

// EndAge returns the last age the expense fires.
func (e *ExpenseItem) EndAge() int {
	if e.OneTime {
		return e.StartAge
	}
	return e.StartAge + e.DurationYears - 1
}

// ActiveAt reports whether the expense fires at the given age.
func (e *ExpenseItem) ActiveAt(age int) bool {
	if e.OneTime {
		return age == e.StartAge
	}
	return age >= e.StartAge && age <= e.EndAge()
}

// CustomProfilePoint is one (age, multiplier) control point for a custom
// spending profile.
type CustomProfilePoint struct {
	Age        int     `yaml:"age" json:"age"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

// ScenarioInput is the complete immutable description of one calculation
// request. It is constructed once, validated, and read-only thereafter.
type ScenarioInput struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	Age1          int  `yaml:"age" json:"age"`
	Age2          *int `yaml:"age2,omitempty" json:"age2,omitempty"`
	RetirementAge int  `yaml:"retirement_age" json:"retirementAge"`
	HorizonYears  int  `yaml:"horizon_years" json:"horizonYears"`

	PortfolioValue decimal.Decimal `yaml:"portfolio_value" json:"portfolioValue"`
	AnnualSpending decimal.Decimal `yaml:"annual_spending" json:"annualSpending"`
	Allocation     Allocation      `yaml:"allocation" json:"allocation"`
	FeeRate        decimal.Decimal `yaml:"fee_rate" json:"feeRate"`
	InflationRate  decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`

	SpendingProfile SpendingProfileKind  `yaml:"spending_profile" json:"spendingProfile"`
	CustomProfile   []CustomProfilePoint `yaml:"custom_profile,omitempty" json:"customProfile,omitempty"`

	Guardrails GuardrailBands `yaml:"guardrails" json:"guardrails"`
	Iterations int            `yaml:"iterations" json:"iterations"`

	// Enhanced mode: mean-reverting log-normal returns with AR(1) coefficient
	// Phi in [-0.40, 0].
	Enhanced bool     `yaml:"enhanced,omitempty" json:"enhanced,omitempty"`
	Phi      *float64 `yaml:"phi,omitempty" json:"phi,omitempty"`

	IncomeInflationAnchor InflationAnchor `yaml:"income_inflation_anchor,omitempty" json:"incomeInflationAnchor,omitempty"`

	IncomeSources []IncomeSource `yaml:"income_sources,omitempty" json:"incomeSources,omitempty"`
	Expenses      []ExpenseItem  `yaml:"expenses,omitempty" json:"expenses,omitempty"`
}

// Iteration bounds accepted by the engine.
const (
	MinIterations = 100
	MaxIterations = 100000
)

// Horizon bounds accepted by the engine, in years.
const (
	MinHorizonYears = 1
	MaxHorizonYears = 60
)

// PhiMin is the most negative mean-reversion coefficient accepted.
const PhiMin = -0.40

// DefaultPhi is the mean-reversion coefficient used when enhanced mode is
// requested without an explicit phi.
const DefaultPhi = -0.10

// PhiValue returns the effective AR(1) coefficient for enhanced mode.
func (s *ScenarioInput) PhiValue() float64 {
	if s.Phi == nil {
		return DefaultPhi
	}
	return *s.Phi
}

// AnchorValue returns the effective income inflation anchor.
func (s *ScenarioInput) AnchorValue() InflationAnchor {
	if s.IncomeInflationAnchor == "" {
		return AnchorActivation
	}
	return s.IncomeInflationAnchor
}

// DeepCopy returns an independent copy of the scenario, so trial spending
// levels can be evaluated without touching the caller's input.
func (s *ScenarioInput) DeepCopy() *ScenarioInput {
	out := *s
	if s.Age2 != nil {
		age := *s.Age2
		out.Age2 = &age
	}
	if s.Phi != nil {
		phi := *s.Phi
		out.Phi = &phi
	}
	out.CustomProfile = append([]CustomProfilePoint(nil), s.CustomProfile...)
	out.IncomeSources = make([]IncomeSource, len(s.IncomeSources))
	for i, src := range s.IncomeSources {
		out.IncomeSources[i] = src
		if src.EndAge != nil {
			end := *src.EndAge
			out.IncomeSources[i].EndAge = &end
		}
	}
	out.Expenses = append([]ExpenseItem(nil), s.Expenses...)
	return &out
}
