package tui

import (
	"fmt"
	"strings"

	"github.com/glidepath/glidepath/internal/domain"
	"github.com/glidepath/glidepath/internal/output"
	"github.com/glidepath/glidepath/internal/tui/components"
)

// View renders the current scene (required by tea.Model).
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("glidepath"))
	b.WriteString("  ")
	b.WriteString(SubtitleStyle.Render(m.currentScene.String()))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.loadingMessage)
		b.WriteString("\n\n")
	}

	switch m.currentScene {
	case SceneResults:
		m.viewResults(&b)
	case SceneRecommend:
		m.viewRecommendation(&b)
	case SceneEditSpending:
		m.viewEditSpending(&b)
	default:
		m.viewSummary(&b)
	}

	b.WriteString("\n")
	b.WriteString(m.helpBar())

	return AppStyle.Render(b.String())
}

func (m Model) viewSummary(b *strings.Builder) {
	if m.scenario == nil {
		b.WriteString("Loading scenario...\n")
		return
	}

	s := m.scenario
	writeMetric(b, "Age / retirement age", fmt.Sprintf("%d / %d", s.Age1, s.RetirementAge))
	writeMetric(b, "Horizon", fmt.Sprintf("%d years", s.HorizonYears))
	writeMetric(b, "Portfolio", output.FormatCurrency(s.PortfolioValue))
	writeMetric(b, "Desired spending", output.FormatCurrency(s.AnnualSpending)+"/yr")
	writeMetric(b, "Allocation", fmt.Sprintf("%s/%s/%s stock/bond/cash",
		s.Allocation.Stock.StringFixed(0), s.Allocation.Bond.StringFixed(0), s.Allocation.Cash.StringFixed(0)))
	writeMetric(b, "Spending profile", string(s.SpendingProfile))
	writeMetric(b, "Guardrails", fmt.Sprintf("%s / %s / %s",
		s.Guardrails.Lower.StringFixed(0), s.Guardrails.Target.StringFixed(0), s.Guardrails.Upper.StringFixed(0)))
	writeMetric(b, "Iterations", fmt.Sprintf("%d", s.Iterations))
	if s.Enhanced {
		writeMetric(b, "Mean reversion (phi)", fmt.Sprintf("%.2f", s.PhiValue()))
	}
}

func (m Model) viewResults(b *strings.Builder) {
	if m.results == nil {
		b.WriteString("No results yet. Press r to run the simulation.\n")
		return
	}

	r := m.results
	posStyle := SuccessStyle
	if r.ProbabilityOfSuccess.LessThan(m.scenario.Guardrails.Lower) {
		posStyle = DangerStyle
	} else if r.ProbabilityOfSuccess.LessThan(m.scenario.Guardrails.Target) {
		posStyle = WarningStyle
	}

	writeMetric(b, "Probability of success", posStyle.Render(output.FormatPercentage(r.ProbabilityOfSuccess)))
	writeMetric(b, "Trajectories", fmt.Sprintf("%d succeeded, %d failed", r.Successful, r.Failed))
	writeMetric(b, "Median final value", output.FormatCurrency(r.FinalValues.P50))
	writeMetric(b, "p10 / p90 final value", fmt.Sprintf("%s / %s",
		output.FormatCurrency(r.FinalValues.P10), output.FormatCurrency(r.FinalValues.P90)))
	b.WriteString("\n")

	chart := components.NewBandChart("Portfolio value by age", r.YearlyPercentiles).
		WithSize(m.width-20, 10)
	b.WriteString(chart.Render())
}

func (m Model) viewRecommendation(b *strings.Builder) {
	if m.decision == nil {
		b.WriteString("No recommendation yet. Press g to evaluate the guardrails.\n")
		return
	}

	d := m.decision
	var statusStyle = SuccessStyle
	switch d.Status {
	case domain.StatusBelowLower:
		statusStyle = DangerStyle
	case domain.StatusAboveUpper:
		statusStyle = WarningStyle
	}

	writeMetric(b, "Status", statusStyle.Render(string(d.Status)))
	writeMetric(b, "Adjustment", string(d.Adjustment))
	writeMetric(b, "Recommended spending", output.FormatCurrency(d.RecommendedSpending)+"/yr")
	if d.Adjustment != domain.AdjustMaintain {
		writeMetric(b, "Change", fmt.Sprintf("%s (%s)",
			output.FormatCurrency(d.ChangeAmount), output.FormatPercentage(d.ChangePercent)))
		writeMetric(b, "Search", fmt.Sprintf("%d iterations, converged=%t", d.SearchIterations, d.Converged))
	}
	if d.Baseline != nil {
		writeMetric(b, "Baseline success", output.FormatPercentage(d.Baseline.ProbabilityOfSuccess))
	}
}

func (m Model) viewEditSpending(b *strings.Builder) {
	b.WriteString("Annual spending:\n\n")
	b.WriteString(BorderStyle.Render(m.spendingInput.View()))
	b.WriteString("\n\n")
	b.WriteString(HelpDescStyle.Render("enter to apply, esc to cancel"))
	b.WriteString("\n")
}

func (m Model) helpBar() string {
	if m.currentScene == SceneEditSpending {
		return ""
	}
	entries := []struct{ key, desc string }{
		{"r", "run simulation"},
		{"g", "guardrail recommendation"},
		{"s", "edit spending"},
		{"esc", "summary"},
		{"q", "quit"},
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = HelpKeyStyle.Render(e.key) + " " + HelpDescStyle.Render(e.desc)
	}
	return strings.Join(parts, "  ")
}

func writeMetric(b *strings.Builder, label, value string) {
	b.WriteString(MetricLabelStyle.Render(label))
	b.WriteString(MetricValueStyle.Render(value))
	b.WriteString("\n")
}
