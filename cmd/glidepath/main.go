package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/glidepath/glidepath/internal/config"
	"github.com/glidepath/glidepath/internal/domain"
	"github.com/glidepath/glidepath/internal/guardrail"
	"github.com/glidepath/glidepath/internal/output"
	"github.com/glidepath/glidepath/internal/simulation"
	"github.com/glidepath/glidepath/internal/spending"
	"github.com/glidepath/glidepath/internal/store"
	"github.com/glidepath/glidepath/internal/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errorPayload is the structured error emitted on stderr for batch callers.
type errorPayload struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// fatal writes a structured error payload to stderr and exits non-zero.
func fatal(err error) {
	payload := errorPayload{Error: err.Error()}
	data, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stderr, string(data))
	os.Exit(1)
}

var rootCmd = &cobra.Command{
	Use:   "glidepath",
	Short: "Retirement spending guardrail calculator",
	Long:  "Monte Carlo retirement planner that projects spending sustainability and recommends guardrail-based spending adjustments",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [scenario-file]",
	Short: "Run the Monte Carlo simulation for a scenario",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario := loadScenario(args[0], cmd)

		enhanced, _ := cmd.Flags().GetBool("enhanced")
		seed, _ := cmd.Flags().GetInt64("seed")
		assume := domain.DefaultMarketAssumptions()

		report := &output.Report{Scenario: scenario}

		baselineScenario := scenario.DeepCopy()
		baselineScenario.Enhanced = false
		report.Results = runSimulation(baselineScenario, assume, seed)

		if enhanced || scenario.Enhanced {
			enhancedScenario := scenario.DeepCopy()
			enhancedScenario.Enhanced = true
			report.EnhancedResults = runSimulation(enhancedScenario, assume, seed)
		}

		emit(cmd, report)
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [scenario-file]",
	Short: "Classify a scenario against its guardrails and recommend a spending level",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario := loadScenario(args[0], cmd)

		seed, _ := cmd.Flags().GetInt64("seed")
		options := guardrail.DefaultOptions()
		options.Seed = seed

		engine := guardrail.NewEngine(domain.DefaultMarketAssumptions(), options)
		decision, err := engine.Decide(context.Background(), scenario)
		if err != nil {
			fatal(err)
		}

		emit(cmd, &output.Report{
			Scenario: scenario,
			Results:  decision.Baseline,
			Decision: decision,
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [scenario-file]",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			fatal(err)
		}
		fmt.Printf("Scenario file %s is valid\n", args[0])
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Print spending profile multiplier tables",
	Run: func(cmd *cobra.Command, args []string) {
		retirementAge, _ := cmd.Flags().GetInt("retirement-age")
		profiles := []spending.Profile{
			spending.FlatProfile{},
			spending.SmileProfile{},
			spending.StepdownProfile{},
		}

		fmt.Printf("%-5s", "age")
		for _, p := range profiles {
			fmt.Printf("%12s", p.Kind())
		}
		fmt.Println()
		for age := retirementAge; age <= retirementAge+35; age++ {
			fmt.Printf("%-5d", age)
			for _, p := range profiles {
				fmt.Printf("%12.3f", p.Multiplier(age, retirementAge))
			}
			fmt.Println()
		}
	},
}

var saveCmd = &cobra.Command{
	Use:   "save [name] [scenario-file]",
	Short: "Save a validated scenario under a name",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		scenario := loadScenario(args[1], cmd)
		st := openStore(cmd)
		if err := st.Save(args[0], scenario); err != nil {
			fatal(err)
		}
		fmt.Printf("Saved scenario %q\n", args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore(cmd)
		names, err := st.List()
		if err != nil {
			fatal(err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui [scenario-file]",
	Short: "Interactive terminal interface",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := tea.NewProgram(tui.NewModel(args[0]), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatal(err)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "glidepath %s (commit %s, built %s)\n", version, commit, date)
		if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
			fmt.Fprintln(os.Stdout, bi.Main.Version)
		}
	},
}

func loadScenario(path string, cmd *cobra.Command) *domain.ScenarioInput {
	parser := config.NewInputParser()
	scenario, err := parser.LoadFromFile(path)
	if err != nil {
		fatal(err)
	}
	if iterations, _ := cmd.Flags().GetInt("iterations"); iterations > 0 {
		scenario.Iterations = iterations
		if err := parser.ValidateScenario(scenario); err != nil {
			fatal(err)
		}
	}
	return scenario
}

func runSimulation(scenario *domain.ScenarioInput, assume domain.MarketAssumptions, seed int64) *domain.AggregateResult {
	sim, err := simulation.NewMonteCarloSimulation(scenario, assume, simulation.Config{Seed: seed})
	if err != nil {
		fatal(err)
	}
	result, err := sim.Run(context.Background())
	if err != nil {
		fatal(err)
	}
	return result
}

func emit(cmd *cobra.Command, report *output.Report) {
	format, _ := cmd.Flags().GetString("format")
	data, err := output.FormatReport(report, format)
	if err != nil {
		fatal(err)
	}
	fmt.Print(string(data))
}

func openStore(cmd *cobra.Command) *store.ScenarioStore {
	dir, _ := cmd.Flags().GetString("scenario-dir")
	st, err := store.NewScenarioStore(dir)
	if err != nil {
		fatal(err)
	}
	return st
}

func main() {
	for _, cmd := range []*cobra.Command{calculateCmd, recommendCmd} {
		cmd.Flags().String("format", "json", "Output format: json, console, csv")
		cmd.Flags().Int("iterations", 0, "Override the scenario's iteration count")
		cmd.Flags().Int64("seed", 0, "Random seed (0 = time-based)")
	}
	calculateCmd.Flags().Bool("enhanced", false, "Also run the mean-reverting variant for comparison")
	profilesCmd.Flags().Int("retirement-age", 65, "Retirement age the table is anchored at")
	for _, cmd := range []*cobra.Command{saveCmd, listCmd} {
		cmd.Flags().String("scenario-dir", "scenarios", "Directory holding saved scenarios")
	}
	saveCmd.Flags().Int("iterations", 0, "Override the scenario's iteration count")

	rootCmd.AddCommand(calculateCmd, recommendCmd, validateCmd, profilesCmd, saveCmd, listCmd, tuiCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
