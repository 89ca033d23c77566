package output

import (
	"fmt"
	"strings"

	"github.com/glidepath/glidepath/internal/domain"
)

// ConsoleFormatter renders a plain-text report for terminal display.
type ConsoleFormatter struct{}

func (cf *ConsoleFormatter) Name() string { return "console" }

// Format generates the console report.
func (cf *ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("=================================================================\n")
	b.WriteString("RETIREMENT SPENDING SUSTAINABILITY ANALYSIS\n")
	b.WriteString("=================================================================\n\n")

	if report.Scenario != nil {
		cf.writeScenario(&b, report.Scenario)
	}
	if report.Results != nil {
		cf.writeResult(&b, "BASELINE SIMULATION", report.Results)
	}
	if report.EnhancedResults != nil {
		cf.writeResult(&b, "ENHANCED SIMULATION (mean-reverting returns)", report.EnhancedResults)
	}
	if report.Decision != nil {
		cf.writeDecision(&b, report.Decision)
	}

	return []byte(b.String()), nil
}

func (cf *ConsoleFormatter) writeScenario(b *strings.Builder, s *domain.ScenarioInput) {
	if s.Name != "" {
		fmt.Fprintf(b, "Scenario: %s\n", s.Name)
	}
	fmt.Fprintf(b, "Age %d, retiring at %d, %d-year horizon\n", s.Age1, s.RetirementAge, s.HorizonYears)
	fmt.Fprintf(b, "Portfolio:        %s\n", FormatCurrency(s.PortfolioValue))
	fmt.Fprintf(b, "Desired spending: %s/yr\n", FormatCurrency(s.AnnualSpending))
	fmt.Fprintf(b, "Allocation:       %s/%s/%s stock/bond/cash\n",
		s.Allocation.Stock.StringFixed(0), s.Allocation.Bond.StringFixed(0), s.Allocation.Cash.StringFixed(0))
	fmt.Fprintf(b, "Guardrails:       %s / %s / %s (lower/target/upper)\n\n",
		s.Guardrails.Lower.StringFixed(0), s.Guardrails.Target.StringFixed(0), s.Guardrails.Upper.StringFixed(0))
}

func (cf *ConsoleFormatter) writeResult(b *strings.Builder, title string, r *domain.AggregateResult) {
	fmt.Fprintf(b, "%s\n%s\n", title, strings.Repeat("-", len(title)))
	fmt.Fprintf(b, "Probability of success: %s (%d of %d trajectories)\n",
		FormatPercentage(r.ProbabilityOfSuccess), r.Successful, r.Iterations)
	fmt.Fprintf(b, "Expected return:        %s  Volatility: %s\n",
		FormatPercentage(r.ExpectedReturn.Mul(hundredDec)), FormatPercentage(r.Volatility.Mul(hundredDec)))
	b.WriteString("Final portfolio value percentiles:\n")
	fmt.Fprintf(b, "  p10: %s\n", FormatCurrency(r.FinalValues.P10))
	fmt.Fprintf(b, "  p25: %s\n", FormatCurrency(r.FinalValues.P25))
	fmt.Fprintf(b, "  p50: %s\n", FormatCurrency(r.FinalValues.P50))
	fmt.Fprintf(b, "  p75: %s\n", FormatCurrency(r.FinalValues.P75))
	fmt.Fprintf(b, "  p90: %s\n", FormatCurrency(r.FinalValues.P90))
	b.WriteString("Year-0 cash flows:\n")
	fmt.Fprintf(b, "  spending %s, expenses %s, income %s, net withdrawal %s\n\n",
		FormatCurrency(r.Year0.Spending), FormatCurrency(r.Year0.Expenses),
		FormatCurrency(r.Year0.Income), FormatCurrency(r.Year0.NetWithdrawal))
}

func (cf *ConsoleFormatter) writeDecision(b *strings.Builder, d *domain.GuardrailDecision) {
	b.WriteString("GUARDRAIL RECOMMENDATION\n")
	b.WriteString("------------------------\n")
	fmt.Fprintf(b, "Status:     %s\n", d.Status)
	fmt.Fprintf(b, "Adjustment: %s\n", d.Adjustment)
	fmt.Fprintf(b, "Recommended spending: %s/yr\n", FormatCurrency(d.RecommendedSpending))
	if d.Adjustment != domain.AdjustMaintain {
		fmt.Fprintf(b, "Change: %s (%s)\n", FormatCurrency(d.ChangeAmount), FormatPercentage(d.ChangePercent))
		fmt.Fprintf(b, "Search: %d iterations, converged=%t\n", d.SearchIterations, d.Converged)
	}
	b.WriteString("\n")
}
