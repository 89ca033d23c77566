package tui

import (
	"github.com/glidepath/glidepath/internal/domain"
)

// Scene represents the screens in the TUI.
type Scene int

const (
	SceneSummary Scene = iota
	SceneResults
	SceneRecommend
	SceneEditSpending
)

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user.
type ErrorMsg struct {
	Err error
}

// ScenarioLoadedMsg signals the scenario file has been loaded and validated.
type ScenarioLoadedMsg struct {
	Scenario *domain.ScenarioInput
}

// SimulationCompleteMsg signals a Monte Carlo run has finished.
type SimulationCompleteMsg struct {
	Results *domain.AggregateResult
	Err     error
}

// RecommendationCompleteMsg signals a guardrail decision has finished.
type RecommendationCompleteMsg struct {
	Decision *domain.GuardrailDecision
	Err      error
}

// String returns a human-readable name for a scene.
func (s Scene) String() string {
	switch s {
	case SceneSummary:
		return "Summary"
	case SceneResults:
		return "Results"
	case SceneRecommend:
		return "Recommendation"
	case SceneEditSpending:
		return "Edit Spending"
	default:
		return "Unknown"
	}
}
