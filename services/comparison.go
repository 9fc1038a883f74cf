// ABOUTME: Comparison of baseline and optimized scenario outputs
// ABOUTME: Computes signed deltas and human-readable summary lines

package services

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/markalston/capacity-planner/models"
)

// EquivalentSummary is the only summary line when nothing differs
const EquivalentSummary = "Both scenarios are currently equivalent under the selected assumptions."

// PercentDelta returns the change from base to next as a percentage of base.
// A zero base yields 0 when next is also zero and 100 otherwise.
func PercentDelta(base, next float64) float64 {
	if base == 0 {
		if next == 0 {
			return 0
		}
		return 100
	}
	return (next - base) / base * 100
}

// CompareScenarioOutputs diffs the optimized projection against the baseline.
// Deltas are optimized minus baseline at the current horizon.
func CompareScenarioOutputs(baseline, optimized models.CapacityScenarioOutput) models.ScenarioComparisonOutput {
	base := baseline.Now
	next := optimized.Now

	out := models.ScenarioComparisonOutput{
		CostDeltaMonthlyUSD:    roundTo(next.MonthlyCostUSD-base.MonthlyCostUSD, 2),
		CostDeltaPercent:       roundTo(PercentDelta(base.MonthlyCostUSD, next.MonthlyCostUSD), 1),
		LatencyP95DeltaMs:      roundTo(next.LatencyP95Ms-base.LatencyP95Ms, 1),
		LatencyP95DeltaPercent: roundTo(PercentDelta(base.LatencyP95Ms, next.LatencyP95Ms), 1),
		RequiredCUDelta:        next.RequiredCU - base.RequiredCU,
		NodeCountDelta:         next.NodeCount - base.NodeCount,
	}
	out.Summary = comparisonSummary(out, baseline.Month12.RequiredCU, optimized.Month12.RequiredCU)
	return out
}

// comparisonSummary emits cost, latency, and month-12 capacity lines in that
// order, falling back to the equivalence line when none apply.
func comparisonSummary(c models.ScenarioComparisonOutput, baselineMonth12CU, optimizedMonth12CU float64) []string {
	summary := []string{}

	switch {
	case c.CostDeltaMonthlyUSD < 0:
		summary = append(summary, fmt.Sprintf("Optimized scenario lowers monthly cost by $%s (%.1f%%).",
			formatUSD(-c.CostDeltaMonthlyUSD), -c.CostDeltaPercent))
	case c.CostDeltaMonthlyUSD > 0:
		summary = append(summary, fmt.Sprintf("Optimized scenario raises monthly cost by $%s (+%.1f%%).",
			formatUSD(c.CostDeltaMonthlyUSD), c.CostDeltaPercent))
	}

	switch {
	case c.LatencyP95DeltaMs < 0:
		summary = append(summary, fmt.Sprintf("Optimized scenario improves p95 latency by %.1f ms (%.1f%%).",
			-c.LatencyP95DeltaMs, -c.LatencyP95DeltaPercent))
	case c.LatencyP95DeltaMs > 0:
		summary = append(summary, fmt.Sprintf("Optimized scenario degrades p95 latency by %.1f ms (+%.1f%%).",
			c.LatencyP95DeltaMs, c.LatencyP95DeltaPercent))
	}

	if optimizedMonth12CU < baselineMonth12CU {
		summary = append(summary, fmt.Sprintf("At 12 months the optimized scenario needs %s fewer capacity units.",
			humanize.FormatFloat("#,###.#", baselineMonth12CU-optimizedMonth12CU)))
	}

	if len(summary) == 0 {
		summary = append(summary, EquivalentSummary)
	}
	return summary
}

// CompareScenarios runs the model for both sides of a pair and compares them
func CompareScenarios(pair models.ScenarioPair) models.ScenarioPairResult {
	baseline := CalculateScenarioOutput(pair.Baseline)
	optimized := CalculateScenarioOutput(pair.Optimized)
	return models.ScenarioPairResult{
		Baseline:   baseline,
		Optimized:  optimized,
		Comparison: CompareScenarioOutputs(baseline, optimized),
	}
}

func formatUSD(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
