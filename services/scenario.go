// ABOUTME: Scenario model converting workload inputs into infrastructure sizing
// ABOUTME: Projects capacity units, nodes, cost, and latency now and at twelve months

package services

import (
	"fmt"
	"math"

	"github.com/markalston/capacity-planner/models"
)

const (
	// RPSPerCU is the peak request rate one capacity unit absorbs for a small read
	RPSPerCU = 250.0
	// UsersPerCU is the number of concurrent connections one capacity unit holds
	UsersPerCU = 2500.0
	// LeverFloor is the smallest fraction of raw demand the offload levers can leave
	LeverFloor = 0.55
	// DefaultTargetUtilizationPct applies when no positive utilization target is set
	DefaultTargetUtilizationPct = 70.0
	// SaturationUtilizationPct is the provisioned utilization treated as saturated
	SaturationUtilizationPct = 85.0

	cacheReductionWeight = 0.45
	asyncReductionWeight = 0.25
	dbReductionWeight    = 0.20
	writeCostWeight      = 0.6
	payloadCostWeight    = 0.35
	payloadReferenceKB   = 32.0
	payloadMsPerKB       = 0.12
	cacheLatencyWeight   = 0.3
	maxQueuePressure     = 0.97
)

// availabilityProfile is the redundancy layered on top of raw demand
type availabilityProfile struct {
	multiplier float64
	minNodes   int
	label      string
}

var availabilityProfiles = map[models.AvailabilityTarget]availabilityProfile{
	models.Availability99:   {multiplier: 1.00, minNodes: 1, label: "single zone"},
	models.Availability999:  {multiplier: 1.15, minNodes: 2, label: "multi-zone"},
	models.Availability9995: {multiplier: 1.30, minNodes: 3, label: "N+1"},
	models.Availability9999: {multiplier: 1.50, minNodes: 4, label: "N+2"},
}

// latencyProfile holds the unloaded p95 and the p95 budget for a workload class
type latencyProfile struct {
	baseP95Ms   float64
	budgetP95Ms float64
}

var latencyProfiles = map[models.WorkloadClass]latencyProfile{
	models.ClassGeneralAPI:      {baseP95Ms: 45, budgetP95Ms: 250},
	models.ClassEventHeavy:      {baseP95Ms: 60, budgetP95Ms: 300},
	models.ClassMediaHeavy:      {baseP95Ms: 90, budgetP95Ms: 600},
	models.ClassLatencyCritical: {baseP95Ms: 18, budgetP95Ms: 80},
	models.ClassSaaSMultiTenant: {baseP95Ms: 50, budgetP95Ms: 250},
}

// CalculateScenarioOutput sizes a scenario now and after one year of growth.
// Growth compounds once over the year and scales request rate and concurrency.
// Inputs are not validated; see ValidateScenarioInput.
func CalculateScenarioOutput(input models.CapacityScenarioInput) models.CapacityScenarioOutput {
	growth := 1 + input.Workload.AnnualGrowthPercent/100
	return models.CapacityScenarioOutput{
		Now:     projectScenario(input, 1),
		Month12: projectScenario(input, growth),
	}
}

// projectScenario sizes the scenario with request rate and concurrency scaled by growth
func projectScenario(input models.CapacityScenarioInput, growth float64) models.PointProjection {
	w := input.Workload
	a := input.Advanced

	peakRPS := w.AvgRPS * growth * w.PeakMultiplier
	users := w.ConcurrentUsers * growth
	readShare := clampPercent(w.ReadPercent) / 100
	payloadKB := math.Max(w.PayloadKB, 0)

	rawCU := rawDemandCU(peakRPS, users, payloadKB, 1-readShare)
	leverFactor, floored := leverReduction(a, readShare)
	availability := availabilityFor(w.AvailabilityTarget)
	requiredCU := rawCU * leverFactor * availability.multiplier

	targetUtilPct := a.TargetUtilizationPercent
	if targetUtilPct <= 0 {
		targetUtilPct = DefaultTargetUtilizationPct
	}
	if targetUtilPct > 100 {
		targetUtilPct = 100
	}
	deployableCU := requiredCU / (targetUtilPct / 100)

	tier := SelectAwsEquivalentTier(requiredCU)
	nodeCount := int(math.Ceil(deployableCU / tier.CUPerNode))
	if nodeCount < availability.minNodes {
		nodeCount = availability.minNodes
	}
	utilizationPct := requiredCU / (float64(nodeCount) * tier.CUPerNode) * 100

	var monthlyCost float64
	var awsEquivalent *models.AwsEquivalentTier
	if input.ProviderMode == models.ProviderAWSEquivalent {
		monthlyCost = float64(nodeCount) * tier.MonthlyCostUSD
		selected := tier
		awsEquivalent = &selected
	} else {
		monthlyCost = requiredCU * GetNeutralRatePerCUMonth(input.TemplateID)
	}
	monthlyCost = roundTo(monthlyCost, 2)

	class := WorkloadClassForTemplate(input.TemplateID)
	p95, p99 := estimateLatency(class, utilizationPct, payloadKB, clampPercent(a.CacheHitPercent)/100*readShare)

	projection := models.PointProjection{
		RequiredCU:         requiredCU,
		NodeCount:          nodeCount,
		MonthlyCostUSD:     monthlyCost,
		AnnualCostUSD:      roundTo(monthlyCost*12, 2),
		LatencyP95Ms:       p95,
		LatencyP99Ms:       p99,
		ThroughputMBps:     roundTo(peakRPS*payloadKB/1024, 2),
		UtilizationPercent: roundTo(utilizationPct, 1),
		AwsEquivalent:      awsEquivalent,
	}
	projection.Warnings = projectionWarnings(input, projection, class, floored, targetUtilPct)
	projection.Recommendations = projectionRecommendations(input, readShare, targetUtilPct)
	return projection
}

// rawDemandCU is peak traffic in capacity units before offload and redundancy.
// Larger payloads and write-heavy mixes raise the per-request cost.
func rawDemandCU(peakRPS, users, payloadKB, writeShare float64) float64 {
	payloadFactor := 1 + payloadCostWeight*math.Log2(1+payloadKB/payloadReferenceKB)
	writeFactor := 1 + writeCostWeight*writeShare
	return peakRPS/RPSPerCU*payloadFactor*writeFactor + users/UsersPerCU
}

// leverReduction combines the offload levers multiplicatively so each one
// diminishes independently. The result never drops below LeverFloor; the bool
// reports whether the floor was applied.
func leverReduction(a models.AdvancedParams, readShare float64) (float64, bool) {
	cache := clampPercent(a.CacheHitPercent) / 100 * cacheReductionWeight * readShare
	async := clampPercent(a.AsyncOffloadPercent) / 100 * asyncReductionWeight
	db := clampPercent(a.DBOffloadPercent) / 100 * dbReductionWeight

	factor := (1 - cache) * (1 - async) * (1 - db)
	if factor < LeverFloor {
		return LeverFloor, true
	}
	return factor, false
}

// availabilityFor returns the profile for the target, or for the highest
// supported target below it. Anything under 99 is treated as 99.
func availabilityFor(target models.AvailabilityTarget) availabilityProfile {
	profile := availabilityProfiles[models.Availability99]
	for _, t := range models.AvailabilityTargets {
		if target >= t {
			profile = availabilityProfiles[t]
		}
	}
	return profile
}

// estimateLatency applies a queueing factor for provisioned utilization on top
// of the class base latency and payload transfer time.
func estimateLatency(class models.WorkloadClass, utilizationPct, payloadKB, cachedReadShare float64) (float64, float64) {
	profile, ok := latencyProfiles[class]
	if !ok {
		profile = latencyProfiles[models.ClassGeneralAPI]
	}

	rho := math.Min(math.Max(utilizationPct/100, 0), maxQueuePressure)
	queueFactor := 1 + 0.5*rho*rho/(1-rho)
	cacheFactor := 1 - cacheLatencyWeight*cachedReadShare

	p95 := (profile.baseP95Ms + payloadKB*payloadMsPerKB) * cacheFactor * queueFactor
	p99 := p95 * (1.6 + 0.6*rho)
	return roundTo(p95, 1), roundTo(p99, 1)
}

func projectionWarnings(input models.CapacityScenarioInput, p models.PointProjection, class models.WorkloadClass, floored bool, targetUtilPct float64) []string {
	warnings := []string{}

	if p.UtilizationPercent >= SaturationUtilizationPct {
		warnings = append(warnings, fmt.Sprintf("Provisioned utilization of %.0f%% is near saturation; peak bursts will queue.", p.UtilizationPercent))
	}

	if largest := largestTier(); p.RequiredCU > largest.MaxPreferredCU {
		warnings = append(warnings, fmt.Sprintf("Required capacity of %.0f CU exceeds the largest %s tier; consider sharding the workload.", p.RequiredCU, largest.InstanceType))
	}

	target := input.Workload.AvailabilityTarget
	if target >= models.Availability9995 && targetUtilPct > 80 {
		warnings = append(warnings, fmt.Sprintf("A %.0f%% utilization target leaves too little failover headroom for %v%% availability.", targetUtilPct, float64(target)))
	}

	if floored {
		warnings = append(warnings, fmt.Sprintf("Offload assumptions exceed the practical floor; savings are capped at %.0f%% of raw demand.", (1-LeverFloor)*100))
	}

	if budget := latencyProfiles[class].budgetP95Ms; budget > 0 && p.LatencyP95Ms > budget {
		warnings = append(warnings, fmt.Sprintf("Estimated p95 latency of %.0f ms exceeds the %.0f ms budget for %s workloads.", p.LatencyP95Ms, budget, class))
	}

	return warnings
}

func projectionRecommendations(input models.CapacityScenarioInput, readShare, targetUtilPct float64) []string {
	w := input.Workload
	a := input.Advanced
	recs := []string{}

	if readShare >= 0.7 && a.CacheHitPercent < 40 {
		recs = append(recs, "Read-heavy traffic with a low cache hit rate: add an edge or application cache to absorb repeat reads.")
	}
	if readShare >= 0.6 && a.DBOffloadPercent < 25 {
		recs = append(recs, "Route reads to replicas or a search index to offload the primary database.")
	}
	if 1-readShare >= 0.3 && a.AsyncOffloadPercent < 20 {
		recs = append(recs, "Move non-critical write work to asynchronous queues to flatten peaks.")
	}
	if w.PayloadKB >= 256 {
		recs = append(recs, "Serve large payloads from object storage or a CDN instead of application nodes.")
	}
	if targetUtilPct < 50 {
		recs = append(recs, "Raise the target utilization toward 60-70% to reduce idle provisioned capacity.")
	}
	if w.PeakMultiplier >= 4 {
		recs = append(recs, "Peak traffic is several times the average; pair a smaller base fleet with autoscaling.")
	}

	return recs
}

func clampPercent(v float64) float64 {
	return math.Min(math.Max(v, 0), 100)
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
