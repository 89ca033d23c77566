package guardrail

import (
	"context"
	"fmt"

	"github.com/glidepath/glidepath/internal/domain"
	"github.com/glidepath/glidepath/internal/simulation"
	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	five    = decimal.NewFromInt(5)
	hundred = decimal.NewFromInt(100)
)

// Engine classifies a scenario against its guardrail bands and, when a band
// is breached, searches for the spending level that restores the target
// probability of success.
type Engine struct {
	Assume  domain.MarketAssumptions
	Options Options
}

// NewEngine creates a guardrail engine.
func NewEngine(assume domain.MarketAssumptions, options Options) *Engine {
	return &Engine{Assume: assume, Options: options}
}

// NewDefaultEngine creates an engine with default search options.
func NewDefaultEngine(assume domain.MarketAssumptions) *Engine {
	return NewEngine(assume, DefaultOptions())
}

// Decide runs one full-count simulation at the desired spending, classifies
// it, and target-seeks a recommendation if a guardrail is breached.
func (e *Engine) Decide(ctx context.Context, scenario *domain.ScenarioInput) (*domain.GuardrailDecision, error) {
	if err := validateBands(scenario.Guardrails); err != nil {
		return nil, &GuardrailError{Operation: "decide", Message: "invalid guardrails", Cause: err}
	}

	baseline, err := e.simulate(ctx, scenario, 0, nil)
	if err != nil {
		return nil, &GuardrailError{Operation: "decide", Message: "baseline simulation failed", Cause: err}
	}

	decision := &domain.GuardrailDecision{
		Baseline:  baseline,
		Converged: true,
	}

	pos := baseline.ProbabilityOfSuccess
	bands := scenario.Guardrails
	switch {
	case pos.GreaterThan(bands.Upper):
		decision.Status = domain.StatusAboveUpper
		decision.Adjustment = domain.AdjustIncrease
	case pos.LessThan(bands.Lower):
		decision.Status = domain.StatusBelowLower
		decision.Adjustment = domain.AdjustDecrease
	default:
		decision.Status = domain.StatusWithinRange
		decision.Adjustment = domain.AdjustMaintain
		decision.RecommendedSpending = scenario.AnnualSpending
		decision.ChangeAmount = decimal.Zero
		decision.ChangePercent = decimal.Zero
		return decision, nil
	}

	recommended, iterations, converged, err := e.seekTarget(ctx, scenario, decision.Status)
	if err != nil {
		return nil, err
	}

	decision.RecommendedSpending = recommended
	decision.SearchIterations = iterations
	decision.Converged = converged
	decision.ChangeAmount = recommended.Sub(scenario.AnnualSpending)
	if scenario.AnnualSpending.IsPositive() {
		decision.ChangePercent = decision.ChangeAmount.Div(scenario.AnnualSpending).Mul(hundred)
	}

	return decision, nil
}

// seekTarget binary-searches the spending level whose simulated probability
// of success hits the target band. The objective is noisy: every evaluation
// re-samples a fresh Monte Carlo run, so the best-seen midpoint is tracked
// rather than trusting only the final bracket. Exhausting the budget is not
// fatal; the best level seen is returned with converged=false.
func (e *Engine) seekTarget(ctx context.Context, scenario *domain.ScenarioInput, status domain.GuardrailStatus) (decimal.Decimal, int, bool, error) {
	desired := scenario.AnnualSpending
	target := scenario.Guardrails.Target

	var low, high decimal.Decimal
	if status == domain.StatusBelowLower {
		low = decimal.Zero
		high = desired
	} else {
		low = desired
		high = decimal.Max(desired.Mul(two), scenario.PortfolioValue.Div(five))
	}

	var best decimal.Decimal
	bestGap := decimal.NewFromInt(-1)
	iterations := 0

	for iterations < e.Options.SearchIterations {
		iterations++

		select {
		case <-ctx.Done():
			return decimal.Zero, iterations, false, ctx.Err()
		default:
		}

		mid := low.Add(high).Div(two)

		result, err := e.simulate(ctx, scenario, e.Options.SearchSampleSize, &mid)
		if err != nil {
			return decimal.Zero, iterations, false, &GuardrailError{
				Operation: "seek_target",
				Message:   fmt.Sprintf("trial simulation at spending %s failed", mid.StringFixed(0)),
				Cause:     err,
			}
		}

		gap := result.ProbabilityOfSuccess.Sub(target)
		if bestGap.IsNegative() || gap.Abs().LessThan(bestGap) {
			best = mid
			bestGap = gap.Abs()
		}

		if gap.Abs().LessThanOrEqual(e.Options.Tolerance) {
			return e.round(best), iterations, true, nil
		}

		if gap.IsNegative() {
			// Success probability below target: spending too high.
			high = mid
		} else {
			low = mid
		}
	}

	return e.round(best), iterations, false, nil
}

// simulate runs one Monte Carlo pass, optionally at a reduced iteration
// count and overridden spending level.
func (e *Engine) simulate(ctx context.Context, scenario *domain.ScenarioInput, iterations int, spending *decimal.Decimal) (*domain.AggregateResult, error) {
	cfg := simulation.Config{
		Iterations:       iterations,
		Seed:             e.Options.Seed,
		Workers:          e.Options.Workers,
		SpendingOverride: spending,
	}
	sim, err := simulation.NewMonteCarloSimulation(scenario, e.Assume, cfg)
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx)
}

// round snaps a spending level to the nearest RoundTo dollars.
func (e *Engine) round(value decimal.Decimal) decimal.Decimal {
	if !e.Options.RoundTo.IsPositive() {
		return value
	}
	return value.Div(e.Options.RoundTo).Round(0).Mul(e.Options.RoundTo)
}

// validateBands re-checks the guardrail ordering invariant defensively.
func validateBands(bands domain.GuardrailBands) error {
	if bands.Lower.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("guardrails.lower must be at least 1, got %s", bands.Lower.String())
	}
	if bands.Upper.GreaterThan(decimal.NewFromInt(99)) {
		return fmt.Errorf("guardrails.upper must be at most 99, got %s", bands.Upper.String())
	}
	if !bands.Lower.LessThan(bands.Target) || !bands.Target.LessThan(bands.Upper) {
		return fmt.Errorf("guardrails must satisfy lower < target < upper, got %s/%s/%s",
			bands.Lower.String(), bands.Target.String(), bands.Upper.String())
	}
	return nil
}
