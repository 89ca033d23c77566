package guardrail

import (
	"github.com/shopspring/decimal"
)

// Options configures the target-seeking search.
type Options struct {
	// SearchIterations caps the binary search. 12 halvings of a spending
	// bracket are enough to localize within Monte Carlo noise.
	SearchIterations int

	// SearchSampleSize is the reduced iteration count used for trial
	// evaluations, trading precision for search speed.
	SearchSampleSize int

	// Tolerance is the acceptable gap from the target probability of
	// success, in percentage points.
	Tolerance decimal.Decimal

	// RoundTo rounds the final recommendation, in dollars.
	RoundTo decimal.Decimal

	// Seed for the simulations. Zero picks a time-based seed.
	Seed int64

	// Workers caps trajectory-level parallelism. Zero uses NumCPU.
	Workers int
}

// DefaultOptions returns the standard search configuration.
func DefaultOptions() Options {
	return Options{
		SearchIterations: 12,
		SearchSampleSize: 1000,
		Tolerance:        decimal.NewFromFloat(0.5),
		RoundTo:          decimal.NewFromInt(10),
	}
}

// GuardrailError represents errors from the guardrail engine.
type GuardrailError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *GuardrailError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *GuardrailError) Unwrap() error {
	return e.Cause
}
