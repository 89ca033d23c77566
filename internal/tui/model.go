package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glidepath/glidepath/internal/config"
	"github.com/glidepath/glidepath/internal/domain"
	"github.com/glidepath/glidepath/internal/guardrail"
	"github.com/glidepath/glidepath/internal/simulation"
)

// Model is the application state for the interactive interface.
type Model struct {
	currentScene Scene

	width  int
	height int

	scenarioPath string
	scenario     *domain.ScenarioInput

	results  *domain.AggregateResult
	decision *domain.GuardrailDecision

	spendingInput textinput.Model

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates the application model for the given scenario file.
func NewModel(scenarioPath string) Model {
	input := textinput.New()
	input.Placeholder = "annual spending"
	input.CharLimit = 12
	input.Width = 16

	return Model{
		currentScene:  SceneSummary,
		scenarioPath:  scenarioPath,
		spendingInput: input,
		width:         80,
		height:        24,
	}
}

// Init loads the scenario file (required by tea.Model).
func (m Model) Init() tea.Cmd {
	return loadScenarioCmd(m.scenarioPath)
}

// loadScenarioCmd returns a command that loads and validates the scenario.
func loadScenarioCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		scenario, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ScenarioLoadedMsg{Scenario: scenario}
	}
}

// runSimulationCmd returns a command that runs the Monte Carlo simulation.
func runSimulationCmd(scenario *domain.ScenarioInput) tea.Cmd {
	return func() tea.Msg {
		sim, err := simulation.NewMonteCarloSimulation(scenario, domain.DefaultMarketAssumptions(), simulation.Config{})
		if err != nil {
			return SimulationCompleteMsg{Err: err}
		}
		results, err := sim.Run(context.Background())
		return SimulationCompleteMsg{Results: results, Err: err}
	}
}

// recommendCmd returns a command that runs the guardrail engine.
func recommendCmd(scenario *domain.ScenarioInput) tea.Cmd {
	return func() tea.Msg {
		engine := guardrail.NewDefaultEngine(domain.DefaultMarketAssumptions())
		decision, err := engine.Decide(context.Background(), scenario)
		return RecommendationCompleteMsg{Decision: decision, Err: err}
	}
}
