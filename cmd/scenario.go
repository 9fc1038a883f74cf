// ABOUTME: Non-interactive calculate and compare commands
// ABOUTME: Builds scenarios from a template plus flag overrides, locally or via the API

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/capacity-planner/internal/client"
	"github.com/markalston/capacity-planner/internal/tui/comparison"
	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/services"
	"github.com/spf13/cobra"
)

// outputWidth is the rendering width for human-readable comparisons
const outputWidth = 100

var (
	scenarioTemplate string
	scenarioProvider string
	calcRole         string
	calcName         string

	workloadFlags models.WorkloadParams
	availability  float64
	leverFlags    models.AdvancedParams
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate one scenario",
	Long: `Size a single scenario now and at twelve months.

The scenario starts from a template; any workload or lever flag overrides the
template default.

Example:
  capacity-planner calculate --template ecommerce-api --provider aws-equivalent --avg-rps 2000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		input, err := buildCalculateInput(cmd.Flags().Changed)
		if err != nil {
			return err
		}
		return runCalculate(ctx, os.Stdout, input, IsJSONOutput())
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a baseline and an optimized scenario",
	Long: `Compare the template's baseline against an optimized scenario.

Workload flags apply to both scenarios. Lever flags apply to the optimized
scenario only; the baseline keeps the template's levers.

Example:
  capacity-planner compare --template social-feed-api --cache-hit 60 --async-offload 30 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		pair, err := buildComparePair(cmd.Flags().Changed)
		if err != nil {
			return err
		}
		return runCompare(ctx, os.Stdout, pair, IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(compareCmd)

	for _, c := range []*cobra.Command{calculateCmd, compareCmd} {
		c.Flags().StringVar(&scenarioTemplate, "template", models.CustomTemplateID, "Workload template id (see 'templates')")
		c.Flags().StringVar(&scenarioProvider, "provider", string(models.ProviderNeutral), "Pricing mode: neutral or aws-equivalent")
		addWorkloadFlags(c)
		addLeverFlags(c)
	}
	calculateCmd.Flags().StringVar(&calcRole, "role", string(models.RoleBaseline), "Scenario role: baseline or optimized")
	calculateCmd.Flags().StringVar(&calcName, "name", "", "Scenario name (default: Baseline or Optimized)")
}

func addWorkloadFlags(c *cobra.Command) {
	f := c.Flags()
	f.Float64Var(&workloadFlags.AvgRPS, "avg-rps", 0, "Average requests per second")
	f.Float64Var(&workloadFlags.PeakMultiplier, "peak-multiplier", 0, "Peak to average traffic ratio")
	f.Float64Var(&workloadFlags.PayloadKB, "payload-kb", 0, "Average payload size in KB")
	f.Float64Var(&workloadFlags.ConcurrentUsers, "users", 0, "Concurrent users")
	f.Float64Var(&workloadFlags.ReadPercent, "read-percent", 0, "Share of reads (0-100)")
	f.Float64Var(&availability, "availability", 0, "Availability target: 99, 99.9, 99.95, or 99.99")
	f.Float64Var(&workloadFlags.AnnualGrowthPercent, "growth", 0, "Annual traffic growth percent")
}

func addLeverFlags(c *cobra.Command) {
	f := c.Flags()
	f.Float64Var(&leverFlags.CacheHitPercent, "cache-hit", 0, "Cache hit rate percent")
	f.Float64Var(&leverFlags.AsyncOffloadPercent, "async-offload", 0, "Async offload percent")
	f.Float64Var(&leverFlags.DBOffloadPercent, "db-offload", 0, "DB offload percent")
	f.Float64Var(&leverFlags.TargetUtilizationPercent, "target-utilization", 0, "Target utilization percent")
}

// applyWorkloadFlags overrides the fields whose flags were set
func applyWorkloadFlags(wl models.WorkloadParams, changed func(string) bool) models.WorkloadParams {
	if changed("avg-rps") {
		wl.AvgRPS = workloadFlags.AvgRPS
	}
	if changed("peak-multiplier") {
		wl.PeakMultiplier = workloadFlags.PeakMultiplier
	}
	if changed("payload-kb") {
		wl.PayloadKB = workloadFlags.PayloadKB
	}
	if changed("users") {
		wl.ConcurrentUsers = workloadFlags.ConcurrentUsers
	}
	if changed("read-percent") {
		wl.ReadPercent = workloadFlags.ReadPercent
	}
	if changed("availability") {
		wl.AvailabilityTarget = models.AvailabilityTarget(availability)
	}
	if changed("growth") {
		wl.AnnualGrowthPercent = workloadFlags.AnnualGrowthPercent
	}
	return wl
}

// applyLeverFlags overrides the levers whose flags were set
func applyLeverFlags(a models.AdvancedParams, changed func(string) bool) models.AdvancedParams {
	if changed("cache-hit") {
		a.CacheHitPercent = leverFlags.CacheHitPercent
	}
	if changed("async-offload") {
		a.AsyncOffloadPercent = leverFlags.AsyncOffloadPercent
	}
	if changed("db-offload") {
		a.DBOffloadPercent = leverFlags.DBOffloadPercent
	}
	if changed("target-utilization") {
		a.TargetUtilizationPercent = leverFlags.TargetUtilizationPercent
	}
	return a
}

func validateSelection() error {
	if err := services.ValidateTemplateID(scenarioTemplate); err != nil {
		return err
	}
	return services.ValidateProviderMode(models.ProviderMode(scenarioProvider))
}

func buildCalculateInput(changed func(string) bool) (models.CapacityScenarioInput, error) {
	if err := validateSelection(); err != nil {
		return models.CapacityScenarioInput{}, err
	}
	role := models.ScenarioRole(calcRole)
	if !role.Valid() {
		return models.CapacityScenarioInput{}, fmt.Errorf("invalid role: %s (want baseline or optimized)", calcRole)
	}

	input := services.CreateScenarioFromTemplate(role, scenarioTemplate, calcName, models.ProviderMode(scenarioProvider))
	input.Workload = applyWorkloadFlags(input.Workload, changed)
	input.Advanced = applyLeverFlags(input.Advanced, changed)

	if err := services.ValidateScenarioInput(input); err != nil {
		return models.CapacityScenarioInput{}, fmt.Errorf("invalid scenario: %w", err)
	}
	return input, nil
}

func buildComparePair(changed func(string) bool) (models.ScenarioPair, error) {
	if err := validateSelection(); err != nil {
		return models.ScenarioPair{}, err
	}

	pair := services.CreateScenarioPairFromTemplate(scenarioTemplate, models.ProviderMode(scenarioProvider))
	pair.Baseline.Workload = applyWorkloadFlags(pair.Baseline.Workload, changed)
	pair.Optimized.Workload = pair.Baseline.Workload
	pair.Optimized.Advanced = applyLeverFlags(pair.Optimized.Advanced, changed)

	if err := services.ValidateScenarioPair(pair); err != nil {
		return models.ScenarioPair{}, fmt.Errorf("invalid scenario pair: %w", err)
	}
	return pair, nil
}

// calculateScenario runs the model locally, or on the server when an API URL is set
func calculateScenario(ctx context.Context, input models.CapacityScenarioInput) (*models.CapacityScenarioOutput, error) {
	if url := GetAPIURL(); url != "" {
		return client.New(url).Calculate(ctx, input)
	}
	out := services.CalculateScenarioOutput(input)
	return &out, nil
}

// compareScenarioPair runs the comparison locally, or on the server when an API URL is set
func compareScenarioPair(ctx context.Context, pair models.ScenarioPair) (*models.ScenarioPairResult, error) {
	if url := GetAPIURL(); url != "" {
		return client.New(url).CompareScenarios(ctx, pair)
	}
	result := services.CompareScenarios(pair)
	return &result, nil
}

func runCalculate(ctx context.Context, w io.Writer, input models.CapacityScenarioInput, jsonOut bool) error {
	out, err := calculateScenario(ctx, input)
	if err != nil {
		return err
	}

	if jsonOut {
		return writeJSON(w, out)
	}
	fmt.Fprintln(w, comparison.RenderScenario(input, *out))
	return nil
}

func runCompare(ctx context.Context, w io.Writer, pair models.ScenarioPair, jsonOut bool) error {
	result, err := compareScenarioPair(ctx, pair)
	if err != nil {
		return err
	}

	if jsonOut {
		return writeJSON(w, result)
	}
	fmt.Fprintln(w, comparison.New(pair, result, outputWidth).View())
	return nil
}
