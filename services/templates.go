// ABOUTME: Named workload presets for capacity planning
// ABOUTME: Builds baseline/optimized scenario pairs from a template

package services

import "github.com/markalston/capacity-planner/models"

var capacityTemplates = []models.CapacityTemplate{
	{
		ID:            "ecommerce-api",
		Name:          "E-commerce API",
		Description:   "Catalog, cart, and checkout traffic with seasonal peaks and a read-heavy mix.",
		WorkloadClass: models.ClassGeneralAPI,
		Workload: models.WorkloadParams{
			AvgRPS:              1200,
			PeakMultiplier:      3,
			PayloadKB:           24,
			ConcurrentUsers:     15000,
			ReadPercent:         80,
			AvailabilityTarget:  models.Availability999,
			AnnualGrowthPercent: 35,
		},
		Advanced: models.AdvancedParams{CacheHitPercent: 30, AsyncOffloadPercent: 10, DBOffloadPercent: 10, TargetUtilizationPercent: 65},
	},
	{
		ID:            "b2b-saas-backend",
		Name:          "B2B SaaS Backend",
		Description:   "Multi-tenant business APIs with steady weekday load and tenant isolation overhead.",
		WorkloadClass: models.ClassSaaSMultiTenant,
		Workload: models.WorkloadParams{
			AvgRPS:              600,
			PeakMultiplier:      2.5,
			PayloadKB:           32,
			ConcurrentUsers:     8000,
			ReadPercent:         70,
			AvailabilityTarget:  models.Availability999,
			AnnualGrowthPercent: 40,
		},
		Advanced: models.AdvancedParams{CacheHitPercent: 25, AsyncOffloadPercent: 15, DBOffloadPercent: 10, TargetUtilizationPercent: 65},
	},
	{
		ID:            "fintech-payments-api",
		Name:          "Fintech Payments API",
		Description:   "Payment authorization and ledger writes with strict latency and availability budgets.",
		WorkloadClass: models.ClassLatencyCritical,
		Workload: models.WorkloadParams{
			AvgRPS:              400,
			PeakMultiplier:      4,
			PayloadKB:           8,
			ConcurrentUsers:     5000,
			ReadPercent:         55,
			AvailabilityTarget:  models.Availability9999,
			AnnualGrowthPercent: 25,
		},
		Advanced: models.AdvancedParams{CacheHitPercent: 10, AsyncOffloadPercent: 5, DBOffloadPercent: 5, TargetUtilizationPercent: 55},
	},
	{
		ID:            "social-feed-api",
		Name:          "Social Feed API",
		Description:   "Fan-out timelines and notifications with bursty, event-driven traffic.",
		WorkloadClass: models.ClassEventHeavy,
		Workload: models.WorkloadParams{
			AvgRPS:              3000,
			PeakMultiplier:      3.5,
			PayloadKB:           16,
			ConcurrentUsers:     60000,
			ReadPercent:         90,
			AvailabilityTarget:  models.Availability999,
			AnnualGrowthPercent: 60,
		},
		Advanced: models.AdvancedParams{CacheHitPercent: 40, AsyncOffloadPercent: 20, DBOffloadPercent: 15, TargetUtilizationPercent: 70},
	},
	{
		ID:            "video-streaming-api",
		Name:          "Video Streaming API",
		Description:   "Manifest and segment delivery where payload size dominates per-request cost.",
		WorkloadClass: models.ClassMediaHeavy,
		Workload: models.WorkloadParams{
			AvgRPS:              900,
			PeakMultiplier:      2.5,
			PayloadKB:           512,
			ConcurrentUsers:     25000,
			ReadPercent:         95,
			AvailabilityTarget:  models.Availability9995,
			AnnualGrowthPercent: 50,
		},
		Advanced: models.AdvancedParams{CacheHitPercent: 50, AsyncOffloadPercent: 10, DBOffloadPercent: 5, TargetUtilizationPercent: 70},
	},
}

// customTemplate is the editable starting point for user-defined workloads
var customTemplate = models.CapacityTemplate{
	ID:            models.CustomTemplateID,
	Name:          "Custom Workload",
	Description:   "Start from neutral defaults and tune every parameter.",
	WorkloadClass: models.ClassGeneralAPI,
	Workload: models.WorkloadParams{
		AvgRPS:              500,
		PeakMultiplier:      2,
		PayloadKB:           16,
		ConcurrentUsers:     5000,
		ReadPercent:         75,
		AvailabilityTarget:  models.Availability999,
		AnnualGrowthPercent: 20,
	},
	Advanced: models.AdvancedParams{CacheHitPercent: 20, AsyncOffloadPercent: 10, DBOffloadPercent: 10, TargetUtilizationPercent: 65},
}

// GetCapacityTemplates returns the five presets in display order
func GetCapacityTemplates() []models.CapacityTemplate {
	templates := make([]models.CapacityTemplate, len(capacityTemplates))
	copy(templates, capacityTemplates)
	return templates
}

// GetCapacityTemplate looks up a preset or the custom template by id
func GetCapacityTemplate(id string) (models.CapacityTemplate, bool) {
	if id == models.CustomTemplateID {
		return customTemplate, true
	}
	for _, t := range capacityTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return models.CapacityTemplate{}, false
}

// WorkloadClassForTemplate returns the template's class, general-api when unknown
func WorkloadClassForTemplate(id string) models.WorkloadClass {
	if t, ok := GetCapacityTemplate(id); ok {
		return t.WorkloadClass
	}
	return models.ClassGeneralAPI
}

// CreateScenarioFromTemplate builds a scenario from a template's defaults.
// Unknown template ids produce the custom scenario.
func CreateScenarioFromTemplate(role models.ScenarioRole, templateID, name string, providerMode models.ProviderMode) models.CapacityScenarioInput {
	t, ok := GetCapacityTemplate(templateID)
	if !ok {
		t = customTemplate
	}
	if name == "" {
		name = defaultScenarioName(role)
	}
	if !providerMode.Valid() {
		providerMode = models.ProviderNeutral
	}

	return models.CapacityScenarioInput{
		ID:           role,
		Name:         name,
		TemplateID:   t.ID,
		ProviderMode: providerMode,
		Workload:     t.Workload,
		Advanced:     t.Advanced,
	}
}

// CreateScenarioPairFromTemplate builds a baseline and an optimized scenario
// with the same workload. Each side owns its own advanced levers.
func CreateScenarioPairFromTemplate(templateID string, providerMode models.ProviderMode) models.ScenarioPair {
	baseline := CreateScenarioFromTemplate(models.RoleBaseline, templateID, "", providerMode)
	optimized := CreateScenarioFromTemplate(models.RoleOptimized, templateID, "", providerMode)
	optimized.Workload = baseline.Workload

	return models.ScenarioPair{
		Baseline:  baseline,
		Optimized: optimized,
	}
}

func defaultScenarioName(role models.ScenarioRole) string {
	if role == models.RoleOptimized {
		return "Optimized"
	}
	return "Baseline"
}
