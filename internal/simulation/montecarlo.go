package simulation

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/glidepath/glidepath/internal/cashflow"
	"github.com/glidepath/glidepath/internal/domain"
	"github.com/glidepath/glidepath/internal/returns"
	"github.com/shopspring/decimal"
)

var (
	one        = decimal.NewFromInt(1)
	hundred    = decimal.NewFromInt(100)
	allocTol   = decimal.NewFromFloat(0.01)
	allocTotal = decimal.NewFromInt(100)
)

// Config holds per-run settings for a Monte Carlo simulation.
type Config struct {
	// Iterations overrides the scenario's iteration count when non-zero.
	Iterations int

	// Seed for the pseudo-random sampling. Zero picks a time-based seed.
	Seed int64

	// Workers caps trajectory-level parallelism. Zero uses NumCPU.
	Workers int

	// SpendingOverride evaluates the scenario at a different initial
	// spending level, used by the guardrail search. Nil uses the
	// scenario's desired spending.
	SpendingOverride *decimal.Decimal
}

// MonteCarloSimulation drives N independent trajectories over the planning
// horizon and aggregates them into success probabilities and percentile
// bands.
type MonteCarloSimulation struct {
	scenario *domain.ScenarioInput
	assume   domain.MarketAssumptions
	cfg      Config
	flows    *cashflow.Model
	spending decimal.Decimal
}

// NewMonteCarloSimulation constructs a simulation, rejecting configuration
// violations before any sampling runs.
func NewMonteCarloSimulation(scenario *domain.ScenarioInput, assume domain.MarketAssumptions, cfg Config) (*MonteCarloSimulation, error) {
	iterations := cfg.Iterations
	if iterations == 0 {
		iterations = scenario.Iterations
	}
	if iterations < domain.MinIterations || iterations > domain.MaxIterations {
		return nil, fmt.Errorf("iterations must be between %d and %d, got %d", domain.MinIterations, domain.MaxIterations, iterations)
	}
	if scenario.HorizonYears < domain.MinHorizonYears || scenario.HorizonYears > domain.MaxHorizonYears {
		return nil, fmt.Errorf("horizon_years must be between %d and %d, got %d", domain.MinHorizonYears, domain.MaxHorizonYears, scenario.HorizonYears)
	}
	if diff := scenario.Allocation.Sum().Sub(allocTotal).Abs(); diff.GreaterThan(allocTol) {
		return nil, fmt.Errorf("allocation must sum to 100 (±0.01), got %s", scenario.Allocation.Sum().String())
	}
	if scenario.PortfolioValue.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("portfolio_value must be positive, got %s", scenario.PortfolioValue.String())
	}

	cfg.Iterations = iterations
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Workers > iterations {
		cfg.Workers = iterations
	}

	spending := scenario.AnnualSpending
	if cfg.SpendingOverride != nil {
		spending = *cfg.SpendingOverride
	}
	if spending.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("annual_spending cannot be negative, got %s", spending.String())
	}

	return &MonteCarloSimulation{
		scenario: scenario,
		assume:   assume,
		cfg:      cfg,
		flows:    cashflow.NewModel(scenario),
		spending: spending,
	}, nil
}

// Run executes all trajectories and aggregates them. Trajectories are
// embarrassingly parallel; each worker carries its own return model so no
// state is shared beyond result collection.
func (s *MonteCarloSimulation) Run(ctx context.Context) (*domain.AggregateResult, error) {
	iterations := s.cfg.Iterations
	trajectories := make([]Trajectory, iterations)

	stockW, bondW, cashW := returns.Weights(s.scenario.Allocation)

	var wg sync.WaitGroup
	errCh := make(chan error, s.cfg.Workers)

	chunk := (iterations + s.cfg.Workers - 1) / s.cfg.Workers
	for w := 0; w < s.cfg.Workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > iterations {
			end = iterations
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(workerID, start, end int) {
			defer wg.Done()

			model := returns.CreateModel(s.scenario, s.assume, s.cfg.Seed+int64(workerID))
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				default:
				}
				trajectories[i] = s.runTrajectory(model, stockW, bondW, cashW)
			}
		}(w, start, end)
	}

	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, err
	}

	return s.aggregate(trajectories), nil
}

// runTrajectory simulates one path from the current portfolio value to the
// horizon or depletion, whichever comes first.
func (s *MonteCarloSimulation) runTrajectory(model returns.Model, stockW, bondW, cashW float64) Trajectory {
	model.Reset()

	traj := Trajectory{
		Years:     make([]YearRecord, 0, s.scenario.HorizonYears),
		Succeeded: true,
	}

	value := s.scenario.PortfolioValue
	oneMinusFee := one.Sub(s.scenario.FeeRate)

	for year := 0; year < s.scenario.HorizonYears; year++ {
		age := s.scenario.Age1 + year

		r := model.Sample(stockW, bondW, cashW)
		annualReturn := decimal.NewFromFloat(r)

		value = value.Mul(one.Add(annualReturn)).Mul(oneMinusFee)

		spend := s.flows.Spending(s.spending, age, year)
		expenses := s.flows.Expenses(age, year)
		income := s.flows.Income(age, year)
		net := spend.Add(expenses).Sub(income)

		value = value.Sub(net)

		depleted := value.LessThanOrEqual(decimal.Zero)
		if depleted {
			value = decimal.Zero
		}

		traj.Years = append(traj.Years, YearRecord{
			Year:           year,
			Age:            age,
			PortfolioValue: value,
			Return:         annualReturn,
			Spending:       spend,
			Expenses:       expenses,
			Income:         income,
			NetWithdrawal:  net,
		})

		if depleted {
			traj.Succeeded = false
			traj.DepletionYear = year
			break
		}
	}

	traj.FinalValue = value
	return traj
}

// aggregate computes the success probability and percentile bands over all
// trajectories.
func (s *MonteCarloSimulation) aggregate(trajectories []Trajectory) *domain.AggregateResult {
	successes := 0
	finalValues := make([]decimal.Decimal, len(trajectories))
	for i := range trajectories {
		if trajectories[i].Succeeded {
			successes++
		}
		finalValues[i] = trajectories[i].FinalValue
	}

	sortValues(finalValues)

	pos := hundred.Mul(decimal.NewFromInt(int64(successes))).
		Div(decimal.NewFromInt(int64(len(trajectories))))

	result := &domain.AggregateResult{
		ProbabilityOfSuccess: pos,
		Successful:           successes,
		Failed:               len(trajectories) - successes,
		Iterations:           len(trajectories),
		FinalValues: domain.FinalValuePercentiles{
			P10: percentileOfSorted(finalValues, 0.10),
			P25: percentileOfSorted(finalValues, 0.25),
			P50: percentileOfSorted(finalValues, 0.50),
			P75: percentileOfSorted(finalValues, 0.75),
			P90: percentileOfSorted(finalValues, 0.90),
			Min: finalValues[0],
			Max: finalValues[len(finalValues)-1],
		},
		YearlyPercentiles: s.yearlyPercentiles(trajectories),
	}

	// Calibration accessors are deterministic, so any model instance works.
	model := returns.CreateModel(s.scenario, s.assume, s.cfg.Seed)
	result.ExpectedReturn = decimal.NewFromFloat(model.ExpectedReturn())
	result.Volatility = decimal.NewFromFloat(model.Volatility())

	income := s.flows.Income(s.scenario.Age1, 0)
	expenses := s.flows.Expenses(s.scenario.Age1, 0)
	spend := s.flows.Spending(s.spending, s.scenario.Age1, 0)
	result.Year0 = domain.Year0Breakdown{
		Income:        income,
		Expenses:      expenses,
		Spending:      spend,
		NetWithdrawal: spend.Add(expenses).Sub(income),
	}

	return result
}

// yearlyPercentiles computes each year's band independently over all
// trajectories, substituting zero for trajectories already depleted by that
// year.
func (s *MonteCarloSimulation) yearlyPercentiles(trajectories []Trajectory) []domain.YearlyPercentile {
	series := make([]domain.YearlyPercentile, s.scenario.HorizonYears)
	values := make([]decimal.Decimal, len(trajectories))

	for year := 0; year < s.scenario.HorizonYears; year++ {
		for i := range trajectories {
			values[i] = trajectories[i].ValueAtYear(year)
		}
		sortValues(values)

		series[year] = domain.YearlyPercentile{
			Year: year,
			Age:  s.scenario.Age1 + year,
			P10:  percentileOfSorted(values, 0.10),
			P25:  percentileOfSorted(values, 0.25),
			P50:  percentileOfSorted(values, 0.50),
			P75:  percentileOfSorted(values, 0.75),
			P90:  percentileOfSorted(values, 0.90),
		}
	}

	return series
}
