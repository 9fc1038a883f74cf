// ABOUTME: Shared helpers for command tests
// ABOUTME: Resets package-level flag state and fakes cobra's Changed lookups

package cmd

import (
	"testing"

	"github.com/markalston/capacity-planner/models"
)

// resetFlags restores every package-level flag to its default and again after the test
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		apiURL = ""
		jsonOutput = false
		scenarioTemplate = models.CustomTemplateID
		scenarioProvider = string(models.ProviderNeutral)
		calcRole = string(models.RoleBaseline)
		calcName = ""
		workloadFlags = models.WorkloadParams{}
		availability = 0
		leverFlags = models.AdvancedParams{}
		sessionDir = ""
	}
	reset()
	t.Cleanup(reset)
}

// changed reports the given flag names as set on the command line
func changed(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}
