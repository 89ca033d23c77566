package returns

import (
	"math"
	"math/rand"

	"github.com/glidepath/glidepath/internal/domain"
)

// Model produces one synthetic annual return for a blended portfolio per
// call. Implementations hold their own RNG and are not safe for concurrent
// use; the simulation constructs one per worker.
type Model interface {
	// Sample draws the next annual portfolio return given asset-class
	// weights as fractions summing to 1.
	Sample(stockW, bondW, cashW float64) float64

	// Reset clears any internal state carried between draws. Called at the
	// start of every trajectory so sequences do not leak across iterations.
	Reset()

	// ExpectedReturn is the deterministic arithmetic mean of the blended
	// portfolio, for reporting.
	ExpectedReturn() float64

	// Volatility is the closed-form blended standard deviation, for
	// reporting.
	Volatility() float64
}

// PortfolioMean returns the weight-weighted arithmetic mean return.
func PortfolioMean(assume domain.MarketAssumptions, stockW, bondW, cashW float64) float64 {
	return stockW*assume.Stock.Mean + bondW*assume.Bond.Mean + cashW*assume.Cash.Mean
}

// PortfolioVolatility returns the blended standard deviation from the
// closed-form variance with pairwise correlations:
//
//	sigma_p^2 = sum (w_i*sigma_i)^2 + 2*sum_{i<j} w_i*w_j*sigma_i*sigma_j*rho_ij
//
// This is a calibration formula only; sampling remains a single scalar draw
// per year, not correlated per-asset draws.
func PortfolioVolatility(assume domain.MarketAssumptions, stockW, bondW, cashW float64) float64 {
	ss := stockW * assume.Stock.StdDev
	bs := bondW * assume.Bond.StdDev
	cs := cashW * assume.Cash.StdDev

	variance := ss*ss + bs*bs + cs*cs
	variance += 2 * ss * bs * assume.Correlations.StockBond
	variance += 2 * ss * cs * assume.Correlations.StockCash
	variance += 2 * bs * cs * assume.Correlations.BondCash

	if variance <= 0 {
		return 0
	}
	return math.Sqrt(variance)
}

// boxMuller draws one standard normal variate from the given RNG using the
// Box-Muller transform.
func boxMuller(rng *rand.Rand) float64 {
	var u1 float64
	for u1 == 0 {
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
