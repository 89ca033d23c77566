package domain

import (
	"github.com/shopspring/decimal"
)

// FinalValuePercentiles summarizes the distribution of ending portfolio
// values across all trajectories.
type FinalValuePercentiles struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// YearlyPercentile is one year's percentile band across all trajectories,
// computed independently per year with 0 substituted for trajectories already
// depleted by that year. Used for charting.
type YearlyPercentile struct {
	Year int             `json:"year"`
	Age  int             `json:"age"`
	P10  decimal.Decimal `json:"p10"`
	P25  decimal.Decimal `json:"p25"`
	P50  decimal.Decimal `json:"p50"`
	P75  decimal.Decimal `json:"p75"`
	P90  decimal.Decimal `json:"p90"`
}

// Year0Breakdown gives the first year's cash flows so a presentation layer
// can render them without recomputation.
type Year0Breakdown struct {
	Income        decimal.Decimal `json:"income"`
	Expenses      decimal.Decimal `json:"expenses"`
	Spending      decimal.Decimal `json:"spending"`
	NetWithdrawal decimal.Decimal `json:"netWithdrawal"`
}

// AggregateResult is what one Monte Carlo run returns to collaborators.
type AggregateResult struct {
	ProbabilityOfSuccess decimal.Decimal       `json:"probabilityOfSuccess"`
	Successful           int                   `json:"successful"`
	Failed               int                   `json:"failed"`
	Iterations           int                   `json:"iterations"`
	FinalValues          FinalValuePercentiles `json:"finalValues"`
	YearlyPercentiles    []YearlyPercentile    `json:"yearlyPercentiles"`

	// Portfolio calibration, for reporting.
	ExpectedReturn decimal.Decimal `json:"expectedReturn"`
	Volatility     decimal.Decimal `json:"volatility"`

	Year0 Year0Breakdown `json:"year0"`
}

// GuardrailStatus classifies a baseline probability of success against the
// configured bands.
type GuardrailStatus string

const (
	StatusAboveUpper  GuardrailStatus = "above_upper"
	StatusWithinRange GuardrailStatus = "within_range"
	StatusBelowLower  GuardrailStatus = "below_lower"
)

// GuardrailAdjustment is the recommended direction of spending change.
type GuardrailAdjustment string

const (
	AdjustIncrease GuardrailAdjustment = "increase"
	AdjustMaintain GuardrailAdjustment = "maintain"
	AdjustDecrease GuardrailAdjustment = "decrease"
)

// GuardrailDecision is the engine's final recommendation.
type GuardrailDecision struct {
	Status              GuardrailStatus     `json:"status"`
	Adjustment          GuardrailAdjustment `json:"adjustment"`
	RecommendedSpending decimal.Decimal     `json:"recommendedSpending"`
	ChangeAmount        decimal.Decimal     `json:"changeAmount"`
	ChangePercent       decimal.Decimal     `json:"changePercent"`

	// Baseline is the full-iteration-count simulation at the desired spending
	// that the classification was made from.
	Baseline *AggregateResult `json:"baseline"`

	// Search diagnostics. Converged=false means the binary search exhausted
	// its budget and RecommendedSpending is the best level seen, which is
	// expected occasionally under Monte Carlo noise.
	SearchIterations int  `json:"searchIterations,omitempty"`
	Converged        bool `json:"converged"`
}
