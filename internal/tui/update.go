package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

var errInvalidSpending = errors.New("spending must be a non-negative number")

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ScenarioLoadedMsg:
		m.scenario = msg.Scenario
		m.err = nil
		return m, nil

	case SimulationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.results = msg.Results
		m.currentScene = SceneResults
		return m, nil

	case RecommendationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.decision = msg.Decision
		m.results = msg.Decision.Baseline
		m.currentScene = SceneRecommend
		return m, nil
	}

	if m.currentScene == SceneEditSpending {
		var cmd tea.Cmd
		m.spendingInput, cmd = m.spendingInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyPress routes key events by scene.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.currentScene == SceneEditSpending {
		switch msg.String() {
		case "enter":
			return m.applySpendingEdit()
		case "esc":
			m.currentScene = SceneSummary
			m.spendingInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.spendingInput, cmd = m.spendingInput.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		if m.scenario == nil || m.loading {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Running simulation..."
		return m, runSimulationCmd(m.scenario)

	case "g":
		if m.scenario == nil || m.loading {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Seeking guardrail recommendation..."
		return m, recommendCmd(m.scenario)

	case "s":
		if m.scenario == nil {
			return m, nil
		}
		m.currentScene = SceneEditSpending
		m.spendingInput.SetValue(m.scenario.AnnualSpending.StringFixed(0))
		m.spendingInput.Focus()
		return m, textinput.Blink

	case "esc":
		m.currentScene = SceneSummary
		return m, nil
	}

	return m, nil
}

// applySpendingEdit parses the entered spending and returns to the summary.
func (m Model) applySpendingEdit() (tea.Model, tea.Cmd) {
	value, err := decimal.NewFromString(m.spendingInput.Value())
	if err != nil || value.IsNegative() {
		m.err = errInvalidSpending
		return m, nil
	}

	updated := m.scenario.DeepCopy()
	updated.AnnualSpending = value
	m.scenario = updated
	m.results = nil
	m.decision = nil
	m.err = nil
	m.currentScene = SceneSummary
	m.spendingInput.Blur()
	return m, nil
}
