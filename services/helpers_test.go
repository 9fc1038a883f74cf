// ABOUTME: Test helpers for services tests
// ABOUTME: Builds scenario fixtures across every template and provider mode

package services

import (
	"testing"

	"github.com/markalston/capacity-planner/models"
)

// allScenarioFixtures returns one baseline scenario per template and provider mode
func allScenarioFixtures(t *testing.T) []models.CapacityScenarioInput {
	t.Helper()

	ids := []string{models.CustomTemplateID}
	for _, tmpl := range GetCapacityTemplates() {
		ids = append(ids, tmpl.ID)
	}

	var fixtures []models.CapacityScenarioInput
	for _, id := range ids {
		for _, mode := range []models.ProviderMode{models.ProviderNeutral, models.ProviderAWSEquivalent} {
			fixtures = append(fixtures, CreateScenarioFromTemplate(models.RoleBaseline, id, "", mode))
		}
	}
	return fixtures
}

func fixtureName(input models.CapacityScenarioInput) string {
	return input.TemplateID + "/" + string(input.ProviderMode)
}
