package simulation

import (
	"github.com/shopspring/decimal"
)

// YearRecord is one simulated year within a trajectory.
type YearRecord struct {
	Year           int
	Age            int
	PortfolioValue decimal.Decimal
	Return         decimal.Decimal
	Spending       decimal.Decimal
	Expenses       decimal.Decimal
	Income         decimal.Decimal
	NetWithdrawal  decimal.Decimal
}

// Trajectory is one Monte Carlo iteration. Trajectories are created and
// discarded within a single run; none persist past aggregation. When a
// trajectory fails, Years stops at the depletion year rather than being
// zero-filled to the horizon.
type Trajectory struct {
	Years         []YearRecord
	Succeeded     bool
	DepletionYear int
	FinalValue    decimal.Decimal
}

// ValueAtYear returns the portfolio value at the end of the given year index,
// substituting zero for years past depletion.
func (t *Trajectory) ValueAtYear(year int) decimal.Decimal {
	if year < len(t.Years) {
		return t.Years[year].PortfolioValue
	}
	return decimal.Zero
}
