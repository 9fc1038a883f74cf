// ABOUTME: Tests for comparison view component
// ABOUTME: Validates baseline vs optimized scenario display

package comparison

import (
	"strings"
	"testing"

	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/services"
)

func optimizedPair() models.ScenarioPair {
	pair := services.CreateScenarioPairFromTemplate("ecommerce-api", models.ProviderAWSEquivalent)
	pair.Optimized.Advanced.CacheHitPercent = 85
	pair.Optimized.Advanced.AsyncOffloadPercent = 40
	return pair
}

func TestComparisonView(t *testing.T) {
	pair := optimizedPair()
	result := services.CompareScenarios(pair)

	view := New(pair, &result, 140).View()

	for _, want := range []string{
		"Scenario Comparison",
		"Baseline",
		"Optimized",
		"Month 12",
		"ecommerce-api / aws-equivalent",
		result.Baseline.Now.AwsEquivalent.InstanceType,
		"Changes (optimized - baseline)",
		result.Comparison.Summary[0],
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestComparisonView_Equivalent(t *testing.T) {
	pair := services.CreateScenarioPairFromTemplate("b2b-saas-backend", models.ProviderNeutral)
	result := services.CompareScenarios(pair)

	view := New(pair, &result, 140).View()

	if !strings.Contains(view, services.EquivalentSummary) {
		t.Error("expected equivalence summary")
	}
	if !strings.Contains(view, "+0.0 ms") {
		t.Error("expected zero latency delta")
	}
}

func TestComparisonViewNilResult(t *testing.T) {
	view := New(models.ScenarioPair{}, nil, 80).View()

	if !strings.Contains(view, "No comparison data") {
		t.Error("expected view to show 'No comparison data' for nil result")
	}
}

func TestComparisonView_WarningsTaggedBySource(t *testing.T) {
	pair := optimizedPair()
	result := services.CompareScenarios(pair)
	result.Baseline.Now.Warnings = []string{"baseline warning"}
	result.Optimized.Now.Warnings = []string{"optimized warning"}

	view := New(pair, &result, 140).View()

	if !strings.Contains(view, "[baseline] baseline warning") {
		t.Error("expected baseline warning tagged")
	}
	if !strings.Contains(view, "[optimized] optimized warning") {
		t.Error("expected optimized warning tagged")
	}
}

func TestRenderDeltas_Signs(t *testing.T) {
	out := renderDeltas(models.ScenarioComparisonOutput{
		CostDeltaMonthlyUSD: -1234.5,
		CostDeltaPercent:    -12.5,
		LatencyP95DeltaMs:   3.25,
		NodeCountDelta:      -2,
	})

	if !strings.Contains(out, "-$1,234.50 (-12.5%)") {
		t.Errorf("unexpected cost delta rendering: %q", out)
	}
	if !strings.Contains(out, "+3.2 ms") && !strings.Contains(out, "+3.3 ms") {
		t.Errorf("unexpected latency delta rendering: %q", out)
	}
	if !strings.Contains(out, "-2") {
		t.Errorf("unexpected node delta rendering: %q", out)
	}
}

func TestNew_MinimumWidth(t *testing.T) {
	if c := New(models.ScenarioPair{}, nil, 10); c.width != minWidth {
		t.Errorf("width = %d, want %d", c.width, minWidth)
	}
}
