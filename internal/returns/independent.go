package returns

import (
	"math/rand"

	"github.com/glidepath/glidepath/internal/domain"
)

// IndependentNormalModel draws each asset class's return independently from
// Normal(mean_i, stddev_i) and blends them by weight. This is the baseline
// return strategy.
type IndependentNormalModel struct {
	assume domain.MarketAssumptions
	rng    *rand.Rand

	expectedReturn float64
	volatility     float64
}

// NewIndependentNormal creates the baseline model calibrated to the given
// weights (fractions summing to 1).
func NewIndependentNormal(assume domain.MarketAssumptions, stockW, bondW, cashW float64, seed int64) *IndependentNormalModel {
	return &IndependentNormalModel{
		assume:         assume,
		rng:            rand.New(rand.NewSource(seed)),
		expectedReturn: PortfolioMean(assume, stockW, bondW, cashW),
		volatility:     PortfolioVolatility(assume, stockW, bondW, cashW),
	}
}

// Sample draws one blended annual return.
func (m *IndependentNormalModel) Sample(stockW, bondW, cashW float64) float64 {
	return stockW*m.sampleClass(m.assume.Stock) +
		bondW*m.sampleClass(m.assume.Bond) +
		cashW*m.sampleClass(m.assume.Cash)
}

func (m *IndependentNormalModel) sampleClass(class domain.AssetClassAssumption) float64 {
	if class.StdDev == 0 {
		// Degenerate distribution, return the mean deterministically.
		return class.Mean
	}
	return class.Mean + class.StdDev*boxMuller(m.rng)
}

// Reset is a no-op: draws are independent year to year.
func (m *IndependentNormalModel) Reset() {}

func (m *IndependentNormalModel) ExpectedReturn() float64 { return m.expectedReturn }

func (m *IndependentNormalModel) Volatility() float64 { return m.volatility }
