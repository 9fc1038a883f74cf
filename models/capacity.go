// ABOUTME: Data models for capacity planning scenario inputs and projections
// ABOUTME: Value types shared by the scenario model, comparison, API, and CLI

package models

// ScenarioRole identifies which side of a scenario pair an input belongs to
type ScenarioRole string

const (
	RoleBaseline  ScenarioRole = "baseline"
	RoleOptimized ScenarioRole = "optimized"
)

// Valid reports whether the role is one of the two fixed pair roles
func (r ScenarioRole) Valid() bool {
	return r == RoleBaseline || r == RoleOptimized
}

// ProviderMode selects the pricing strategy
type ProviderMode string

const (
	// ProviderNeutral prices capacity units with a per-workload-class rate
	ProviderNeutral ProviderMode = "neutral"
	// ProviderAWSEquivalent prices whole nodes from the instance tier table
	ProviderAWSEquivalent ProviderMode = "aws-equivalent"
)

// Valid reports whether the mode is a known provider mode
func (m ProviderMode) Valid() bool {
	return m == ProviderNeutral || m == ProviderAWSEquivalent
}

// AvailabilityTarget is an uptime percentage from a closed set
type AvailabilityTarget float64

const (
	Availability99   AvailabilityTarget = 99
	Availability999  AvailabilityTarget = 99.9
	Availability9995 AvailabilityTarget = 99.95
	Availability9999 AvailabilityTarget = 99.99
)

// AvailabilityTargets lists the supported targets in ascending order
var AvailabilityTargets = []AvailabilityTarget{
	Availability99,
	Availability999,
	Availability9995,
	Availability9999,
}

// Valid reports whether the target is one of the supported values
func (a AvailabilityTarget) Valid() bool {
	for _, t := range AvailabilityTargets {
		if a == t {
			return true
		}
	}
	return false
}

// WorkloadClass tags a template with the pricing and latency profile it uses
type WorkloadClass string

const (
	ClassGeneralAPI      WorkloadClass = "general-api"
	ClassEventHeavy      WorkloadClass = "event-heavy"
	ClassMediaHeavy      WorkloadClass = "media-heavy"
	ClassLatencyCritical WorkloadClass = "latency-critical"
	ClassSaaSMultiTenant WorkloadClass = "saas-multi-tenant"
)

// CustomTemplateID is the template id for a user-defined workload
const CustomTemplateID = "custom"

// WorkloadParams describes the traffic a scenario must serve
type WorkloadParams struct {
	AvgRPS              float64            `json:"avgRps"`
	PeakMultiplier      float64            `json:"peakMultiplier"`
	PayloadKB           float64            `json:"payloadKb"`
	ConcurrentUsers     float64            `json:"concurrentUsers"`
	ReadPercent         float64            `json:"readPercent"`
	AvailabilityTarget  AvailabilityTarget `json:"availabilityTarget"`
	AnnualGrowthPercent float64            `json:"annualGrowthPercent"`
}

// AdvancedParams holds the offload levers, each a 0-100 percentage
type AdvancedParams struct {
	CacheHitPercent          float64 `json:"cacheHitPercent"`
	AsyncOffloadPercent      float64 `json:"asyncOffloadPercent"`
	DBOffloadPercent         float64 `json:"dbOffloadPercent"`
	TargetUtilizationPercent float64 `json:"targetUtilizationPercent"`
}

// CapacityScenarioInput is one side of a scenario pair
type CapacityScenarioInput struct {
	ID           ScenarioRole   `json:"id"`
	Name         string         `json:"name"`
	TemplateID   string         `json:"templateId"`
	ProviderMode ProviderMode   `json:"providerMode"`
	Workload     WorkloadParams `json:"workload"`
	Advanced     AdvancedParams `json:"advanced"`
}

// ScenarioPair is a baseline and an optimized scenario sharing one workload
type ScenarioPair struct {
	Baseline  CapacityScenarioInput `json:"baseline"`
	Optimized CapacityScenarioInput `json:"optimized"`
}

// CapacityTemplate is a named workload preset
type CapacityTemplate struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	WorkloadClass WorkloadClass  `json:"workloadClass"`
	Workload      WorkloadParams `json:"workload"`
	Advanced      AdvancedParams `json:"advanced"`
}

// AwsEquivalentTier is one entry of the instance tier catalog
type AwsEquivalentTier struct {
	InstanceType   string  `json:"instanceType"`
	MaxPreferredCU float64 `json:"maxPreferredCU"`
	CUPerNode      float64 `json:"cuPerNode"`
	MonthlyCostUSD float64 `json:"monthlyCostUSD"`
	CPUCores       int     `json:"cpuCores"`
	MemoryGB       int     `json:"memoryGB"`
	NetworkGbps    float64 `json:"networkGbps"`
}

// PointProjection is the sizing result at one time horizon
type PointProjection struct {
	RequiredCU         float64            `json:"requiredCU"`
	NodeCount          int                `json:"nodeCount"`
	MonthlyCostUSD     float64            `json:"monthlyCostUSD"`
	AnnualCostUSD      float64            `json:"annualCostUSD"`
	LatencyP95Ms       float64            `json:"latencyP95Ms"`
	LatencyP99Ms       float64            `json:"latencyP99Ms"`
	ThroughputMBps     float64            `json:"throughputMBps"`
	UtilizationPercent float64            `json:"utilizationPercent"`
	AwsEquivalent      *AwsEquivalentTier `json:"awsEquivalent,omitempty"`
	Warnings           []string           `json:"warnings"`
	Recommendations    []string           `json:"recommendations"`
}

// CapacityScenarioOutput holds projections for now and twelve months out
type CapacityScenarioOutput struct {
	Now     PointProjection `json:"now"`
	Month12 PointProjection `json:"month12"`
}

// ScenarioComparisonOutput holds signed optimized-minus-baseline deltas.
// Negative cost and latency deltas are improvements.
type ScenarioComparisonOutput struct {
	CostDeltaMonthlyUSD    float64  `json:"costDeltaMonthlyUSD"`
	CostDeltaPercent       float64  `json:"costDeltaPercent"`
	LatencyP95DeltaMs      float64  `json:"latencyP95DeltaMs"`
	LatencyP95DeltaPercent float64  `json:"latencyP95DeltaPercent"`
	RequiredCUDelta        float64  `json:"requiredCUDelta"`
	NodeCountDelta         int      `json:"nodeCountDelta"`
	Summary                []string `json:"summary"`
}

// ScenarioPairResult bundles both outputs with their comparison
type ScenarioPairResult struct {
	Baseline   CapacityScenarioOutput   `json:"baseline"`
	Optimized  CapacityScenarioOutput   `json:"optimized"`
	Comparison ScenarioComparisonOutput `json:"comparison"`
}
