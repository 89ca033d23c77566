package cashflow

import (
	"github.com/glidepath/glidepath/internal/domain"
	"github.com/glidepath/glidepath/internal/spending"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Model composes a spending profile with income sources and future expense
// items. All methods are pure over the constructed state, so one Model can
// serve every trajectory of a simulation.
type Model struct {
	profile       spending.Profile
	retirementAge int
	inflationRate decimal.Decimal
	anchor        domain.InflationAnchor
	incomes       []domain.IncomeSource
	expenses      []domain.ExpenseItem
}

// NewModel builds the cash-flow model for a scenario.
func NewModel(scenario *domain.ScenarioInput) *Model {
	return &Model{
		profile:       spending.CreateProfile(scenario.SpendingProfile, scenario.CustomProfile),
		retirementAge: scenario.RetirementAge,
		inflationRate: scenario.InflationRate,
		anchor:        scenario.AnchorValue(),
		incomes:       scenario.IncomeSources,
		expenses:      scenario.Expenses,
	}
}

// Profile exposes the spending profile in use.
func (m *Model) Profile() spending.Profile { return m.profile }

// Income totals all active income sources at the given age and year index.
// Inflation-adjusted sources grow per the configured anchor: from the year
// the source activates (age - start age), or from scenario start (year
// index).
func (m *Model) Income(age, yearIndex int) decimal.Decimal {
	total := decimal.Zero
	for i := range m.incomes {
		src := &m.incomes[i]
		if !src.ActiveAt(age) {
			continue
		}
		amount := src.AnnualAmount
		if src.InflationAdjusted {
			years := yearIndex
			if m.anchor == domain.AnchorActivation {
				years = age - src.StartAge
			}
			amount = amount.Mul(m.growth(years))
		}
		total = total.Add(amount)
	}
	return total
}

// Expenses totals all expense items firing at the given age. Inflation
// scaling for expenses always counts from scenario start; the asymmetry with
// income anchoring is the reference behavior.
func (m *Model) Expenses(age, yearIndex int) decimal.Decimal {
	total := decimal.Zero
	for i := range m.expenses {
		item := &m.expenses[i]
		if !item.ActiveAt(age) {
			continue
		}
		amount := item.AnnualAmount
		if item.InflationAdjusted {
			amount = amount.Mul(m.growth(yearIndex))
		}
		total = total.Add(amount)
	}
	return total
}

// Spending is the year's target spending for the given initial level:
// inflation growth over the year index times the profile multiplier at that
// age.
func (m *Model) Spending(initial decimal.Decimal, age, yearIndex int) decimal.Decimal {
	return spending.YearSpending(m.profile, initial, age, m.retirementAge, m.inflationRate, yearIndex)
}

// NetWithdrawal is spending plus expenses minus income for the year. It can
// be negative when income exceeds outflows.
func (m *Model) NetWithdrawal(initial decimal.Decimal, age, yearIndex int) decimal.Decimal {
	return m.Spending(initial, age, yearIndex).
		Add(m.Expenses(age, yearIndex)).
		Sub(m.Income(age, yearIndex))
}

func (m *Model) growth(years int) decimal.Decimal {
	if years <= 0 {
		return one
	}
	return one.Add(m.inflationRate).Pow(decimal.NewFromInt(int64(years)))
}
