// ABOUTME: Input validation for scenario parameters at the API and CLI boundary
// ABOUTME: The scenario model itself never validates; callers needing hard checks use these

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markalston/capacity-planner/models"
)

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

// ValidateTemplateID accepts the five presets and the custom template
func ValidateTemplateID(id string) error {
	if _, ok := GetCapacityTemplate(id); !ok {
		return fmt.Errorf("unknown template: %s", sanitizeForLog(id))
	}
	return nil
}

// ValidateProviderMode accepts neutral and aws-equivalent
func ValidateProviderMode(mode models.ProviderMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid provider mode: %s", sanitizeForLog(string(mode)))
	}
	return nil
}

// ValidateScenarioInput reports every out-of-range field of a scenario
func ValidateScenarioInput(input models.CapacityScenarioInput) error {
	var errs []error

	if !input.ID.Valid() {
		errs = append(errs, fmt.Errorf("id must be baseline or optimized, got %q", sanitizeForLog(string(input.ID))))
	}
	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, errors.New("name cannot be empty"))
	}
	if err := ValidateTemplateID(input.TemplateID); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateProviderMode(input.ProviderMode); err != nil {
		errs = append(errs, err)
	}

	w := input.Workload
	if w.AvgRPS <= 0 {
		errs = append(errs, fmt.Errorf("avgRps must be positive, got %g", w.AvgRPS))
	}
	if w.PeakMultiplier < 1 {
		errs = append(errs, fmt.Errorf("peakMultiplier must be at least 1, got %g", w.PeakMultiplier))
	}
	if w.PayloadKB <= 0 {
		errs = append(errs, fmt.Errorf("payloadKb must be positive, got %g", w.PayloadKB))
	}
	if w.ConcurrentUsers < 0 {
		errs = append(errs, fmt.Errorf("concurrentUsers cannot be negative, got %g", w.ConcurrentUsers))
	}
	errs = appendPercentError(errs, "readPercent", w.ReadPercent)
	if !w.AvailabilityTarget.Valid() {
		errs = append(errs, fmt.Errorf("availabilityTarget must be one of 99, 99.9, 99.95, 99.99, got %g", float64(w.AvailabilityTarget)))
	}
	if w.AnnualGrowthPercent < -100 {
		errs = append(errs, fmt.Errorf("annualGrowthPercent cannot be below -100, got %g", w.AnnualGrowthPercent))
	}

	a := input.Advanced
	errs = appendPercentError(errs, "cacheHitPercent", a.CacheHitPercent)
	errs = appendPercentError(errs, "asyncOffloadPercent", a.AsyncOffloadPercent)
	errs = appendPercentError(errs, "dbOffloadPercent", a.DBOffloadPercent)
	if a.TargetUtilizationPercent <= 0 || a.TargetUtilizationPercent > 100 {
		errs = append(errs, fmt.Errorf("targetUtilizationPercent must be in (0, 100], got %g", a.TargetUtilizationPercent))
	}

	return errors.Join(errs...)
}

// ValidateScenarioPair validates both scenarios and their fixed roles
func ValidateScenarioPair(pair models.ScenarioPair) error {
	var errs []error
	if pair.Baseline.ID != models.RoleBaseline {
		errs = append(errs, errors.New("baseline scenario must have id baseline"))
	}
	if pair.Optimized.ID != models.RoleOptimized {
		errs = append(errs, errors.New("optimized scenario must have id optimized"))
	}
	if err := ValidateScenarioInput(pair.Baseline); err != nil {
		errs = append(errs, fmt.Errorf("baseline: %w", err))
	}
	if err := ValidateScenarioInput(pair.Optimized); err != nil {
		errs = append(errs, fmt.Errorf("optimized: %w", err))
	}
	return errors.Join(errs...)
}

func appendPercentError(errs []error, field string, v float64) []error {
	if v < 0 || v > 100 {
		return append(errs, fmt.Errorf("%s must be between 0 and 100, got %g", field, v))
	}
	return errs
}
