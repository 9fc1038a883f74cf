// ABOUTME: Tests for scenario input validation
// ABOUTME: Verifies range checks and that template defaults always validate

package services

import (
	"strings"
	"testing"

	"github.com/markalston/capacity-planner/models"
)

func TestValidateScenarioInput_TemplatesAreValid(t *testing.T) {
	for _, input := range allScenarioFixtures(t) {
		if err := ValidateScenarioInput(input); err != nil {
			t.Errorf("%s: unexpected error: %v", fixtureName(input), err)
		}
	}
}

func TestValidateScenarioInput_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CapacityScenarioInput)
		want   string
	}{
		{"bad role", func(s *models.CapacityScenarioInput) { s.ID = "candidate" }, "id must be"},
		{"empty name", func(s *models.CapacityScenarioInput) { s.Name = "  " }, "name cannot be empty"},
		{"unknown template", func(s *models.CapacityScenarioInput) { s.TemplateID = "nope" }, "unknown template"},
		{"bad provider", func(s *models.CapacityScenarioInput) { s.ProviderMode = "gcp" }, "invalid provider mode"},
		{"negative rps", func(s *models.CapacityScenarioInput) { s.Workload.AvgRPS = -1 }, "avgRps"},
		{"peak below one", func(s *models.CapacityScenarioInput) { s.Workload.PeakMultiplier = 0.5 }, "peakMultiplier"},
		{"zero payload", func(s *models.CapacityScenarioInput) { s.Workload.PayloadKB = 0 }, "payloadKb"},
		{"negative users", func(s *models.CapacityScenarioInput) { s.Workload.ConcurrentUsers = -10 }, "concurrentUsers"},
		{"read over 100", func(s *models.CapacityScenarioInput) { s.Workload.ReadPercent = 101 }, "readPercent"},
		{"odd availability", func(s *models.CapacityScenarioInput) { s.Workload.AvailabilityTarget = 99.5 }, "availabilityTarget"},
		{"growth below -100", func(s *models.CapacityScenarioInput) { s.Workload.AnnualGrowthPercent = -150 }, "annualGrowthPercent"},
		{"cache over 100", func(s *models.CapacityScenarioInput) { s.Advanced.CacheHitPercent = 120 }, "cacheHitPercent"},
		{"negative async", func(s *models.CapacityScenarioInput) { s.Advanced.AsyncOffloadPercent = -1 }, "asyncOffloadPercent"},
		{"db over 100", func(s *models.CapacityScenarioInput) { s.Advanced.DBOffloadPercent = 101 }, "dbOffloadPercent"},
		{"zero utilization", func(s *models.CapacityScenarioInput) { s.Advanced.TargetUtilizationPercent = 0 }, "targetUtilizationPercent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := CreateScenarioFromTemplate(models.RoleBaseline, "ecommerce-api", "", models.ProviderNeutral)
			tt.mutate(&input)

			err := ValidateScenarioInput(input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateScenarioInput_ReportsEveryProblem(t *testing.T) {
	input := CreateScenarioFromTemplate(models.RoleBaseline, "ecommerce-api", "", models.ProviderNeutral)
	input.Workload.AvgRPS = 0
	input.Advanced.CacheHitPercent = 200

	err := ValidateScenarioInput(input)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "avgRps") || !strings.Contains(err.Error(), "cacheHitPercent") {
		t.Errorf("expected both problems reported, got %q", err)
	}
}

func TestValidateScenarioPair_RolesMustMatch(t *testing.T) {
	pair := CreateScenarioPairFromTemplate("ecommerce-api", models.ProviderNeutral)
	pair.Baseline, pair.Optimized = pair.Optimized, pair.Baseline

	if err := ValidateScenarioPair(pair); err == nil {
		t.Error("expected error for swapped roles")
	}
}

func TestSanitizeForLog(t *testing.T) {
	if got := sanitizeForLog("bad\nid\x00"); got != "badid" {
		t.Errorf("sanitizeForLog() = %q, want %q", got, "badid")
	}
}
