package returns

import (
	"math"
	"math/rand"

	"github.com/glidepath/glidepath/internal/domain"
)

// MeanRevertingModel is the enhanced return strategy: a log-normal return
// distribution evolved by an AR(1) process so each year's log-return is
// pulled back toward the long-run mean.
//
// Calibration uses geometric-mean centering, deliberately more conservative
// than the arithmetic-mean-preserving form:
//
//	sigmaLog = sqrt(ln(1 + sigma^2/(1+mu)^2))
//	muLog    = ln(1+mu) - sigmaLog^2
//
// so the expected compounded return matches the geometric rather than the
// arithmetic mean of the inputs.
type MeanRevertingModel struct {
	rng *rand.Rand
	phi float64

	expectedReturn float64
	volatility     float64

	muLog    float64
	sigmaLog float64
	sigmaEps float64

	prevLog    float64
	hasPrevLog bool
}

// NewMeanReverting creates the enhanced model calibrated to the given weights
// (fractions summing to 1). phi is clamped to [-0.40, 0].
func NewMeanReverting(assume domain.MarketAssumptions, stockW, bondW, cashW, phi float64, seed int64) *MeanRevertingModel {
	if phi < domain.PhiMin {
		phi = domain.PhiMin
	}
	if phi > 0 {
		phi = 0
	}

	mu := PortfolioMean(assume, stockW, bondW, cashW)
	sigma := PortfolioVolatility(assume, stockW, bondW, cashW)

	m := &MeanRevertingModel{
		rng:            rand.New(rand.NewSource(seed)),
		phi:            phi,
		expectedReturn: mu,
		volatility:     sigma,
	}

	if sigma > 0 {
		onePlusMu := 1 + mu
		sigmaLogSq := math.Log(1 + (sigma*sigma)/(onePlusMu*onePlusMu))
		m.sigmaLog = math.Sqrt(sigmaLogSq)
		m.muLog = math.Log(onePlusMu) - sigmaLogSq
		m.sigmaEps = m.sigmaLog * math.Sqrt(1-phi*phi)
	} else {
		// Zero volatility degenerates to the deterministic mean.
		m.muLog = math.Log(1 + mu)
	}

	return m
}

// Sample evolves the AR(1) log-return one step and returns the implied
// annual return. The first draw after Reset is unconditional.
func (m *MeanRevertingModel) Sample(stockW, bondW, cashW float64) float64 {
	if m.sigmaLog == 0 {
		return math.Exp(m.muLog) - 1
	}

	var x float64
	if !m.hasPrevLog {
		x = m.muLog + m.sigmaLog*boxMuller(m.rng)
	} else {
		x = m.muLog + m.phi*(m.prevLog-m.muLog) + m.sigmaEps*boxMuller(m.rng)
	}

	m.prevLog = x
	m.hasPrevLog = true
	return math.Exp(x) - 1
}

// Reset forgets the previous log-return so the next trajectory starts with
// an unconditional draw.
func (m *MeanRevertingModel) Reset() {
	m.prevLog = 0
	m.hasPrevLog = false
}

func (m *MeanRevertingModel) ExpectedReturn() float64 { return m.expectedReturn }

func (m *MeanRevertingModel) Volatility() float64 { return m.volatility }

// Phi returns the clamped AR(1) coefficient in use.
func (m *MeanRevertingModel) Phi() float64 { return m.phi }
