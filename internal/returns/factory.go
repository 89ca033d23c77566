package returns

import (
	"github.com/glidepath/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Weights converts a percentage allocation to fractional weights.
func Weights(alloc domain.Allocation) (stockW, bondW, cashW float64) {
	stockW, _ = alloc.Stock.Div(hundred).Float64()
	bondW, _ = alloc.Bond.Div(hundred).Float64()
	cashW, _ = alloc.Cash.Div(hundred).Float64()
	return stockW, bondW, cashW
}

// CreateModel builds the return model a scenario calls for: the
// mean-reverting log-normal model in enhanced mode, otherwise the baseline
// independent-normal model.
func CreateModel(scenario *domain.ScenarioInput, assume domain.MarketAssumptions, seed int64) Model {
	stockW, bondW, cashW := Weights(scenario.Allocation)
	if scenario.Enhanced {
		return NewMeanReverting(assume, stockW, bondW, cashW, scenario.PhiValue(), seed)
	}
	return NewIndependentNormal(assume, stockW, bondW, cashW, seed)
}
