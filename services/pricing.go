// ABOUTME: Instance tier catalog and neutral per-CU pricing
// ABOUTME: Maps capacity unit requirements to node types and monthly rates

package services

import "github.com/markalston/capacity-planner/models"

// awsEquivalentTiers is ordered by ascending capacity. cuPerNode doubles per
// tier and cost is proportional to cuPerNode, so rounding up to whole nodes on
// a larger tier never costs less than rounding up on a smaller one.
var awsEquivalentTiers = []models.AwsEquivalentTier{
	{InstanceType: "m6i.large", MaxPreferredCU: 8, CUPerNode: 4, MonthlyCostUSD: 70.08, CPUCores: 2, MemoryGB: 8, NetworkGbps: 12.5},
	{InstanceType: "m6i.xlarge", MaxPreferredCU: 24, CUPerNode: 8, MonthlyCostUSD: 140.16, CPUCores: 4, MemoryGB: 16, NetworkGbps: 12.5},
	{InstanceType: "m6i.2xlarge", MaxPreferredCU: 64, CUPerNode: 16, MonthlyCostUSD: 280.32, CPUCores: 8, MemoryGB: 32, NetworkGbps: 12.5},
	{InstanceType: "m6i.4xlarge", MaxPreferredCU: 160, CUPerNode: 32, MonthlyCostUSD: 560.64, CPUCores: 16, MemoryGB: 64, NetworkGbps: 12.5},
	{InstanceType: "m6i.8xlarge", MaxPreferredCU: 384, CUPerNode: 64, MonthlyCostUSD: 1121.28, CPUCores: 32, MemoryGB: 128, NetworkGbps: 12.5},
	{InstanceType: "m6i.16xlarge", MaxPreferredCU: 1024, CUPerNode: 128, MonthlyCostUSD: 2242.56, CPUCores: 64, MemoryGB: 256, NetworkGbps: 25},
}

// neutralRatePerCUMonth is the cloud-agnostic monthly price of one CU by workload class
var neutralRatePerCUMonth = map[models.WorkloadClass]float64{
	models.ClassGeneralAPI:      42,
	models.ClassEventHeavy:      38,
	models.ClassMediaHeavy:      55,
	models.ClassLatencyCritical: 61,
	models.ClassSaaSMultiTenant: 47,
}

// AwsEquivalentTiers returns a copy of the tier catalog in ascending order
func AwsEquivalentTiers() []models.AwsEquivalentTier {
	tiers := make([]models.AwsEquivalentTier, len(awsEquivalentTiers))
	copy(tiers, awsEquivalentTiers)
	return tiers
}

// SelectAwsEquivalentTier returns the smallest tier whose preferred ceiling
// covers requiredCU. Requirements beyond the catalog get the largest tier.
func SelectAwsEquivalentTier(requiredCU float64) models.AwsEquivalentTier {
	if requiredCU < 1 {
		requiredCU = 1
	}
	for _, tier := range awsEquivalentTiers {
		if tier.MaxPreferredCU >= requiredCU {
			return tier
		}
	}
	return awsEquivalentTiers[len(awsEquivalentTiers)-1]
}

// largestTier returns the last catalog entry
func largestTier() models.AwsEquivalentTier {
	return awsEquivalentTiers[len(awsEquivalentTiers)-1]
}

// GetNeutralRatePerCUMonth returns the neutral monthly rate for the template's
// workload class. Custom and unknown templates price as general-api.
func GetNeutralRatePerCUMonth(templateID string) float64 {
	return neutralRatePerCUMonth[WorkloadClassForTemplate(templateID)]
}
