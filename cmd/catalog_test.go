// ABOUTME: Tests for the templates and tiers commands
// ABOUTME: Verifies table and JSON output of the built-in catalogs

package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/markalston/capacity-planner/models"
)

func TestRunTemplates_Human(t *testing.T) {
	var buf bytes.Buffer
	if err := runTemplates(&buf, false); err != nil {
		t.Fatalf("runTemplates failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Workload Templates", "ecommerce-api", "social-feed-api", "video-streaming-api", "1,200", "30/10/10/65"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRunTemplates_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := runTemplates(&buf, true); err != nil {
		t.Fatalf("runTemplates failed: %v", err)
	}

	var templates []models.CapacityTemplate
	if err := json.Unmarshal(buf.Bytes(), &templates); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(templates) != 5 {
		t.Errorf("expected 5 templates, got %d", len(templates))
	}
}

func TestRunTiers_Human(t *testing.T) {
	var buf bytes.Buffer
	if err := runTiers(&buf, false); err != nil {
		t.Fatalf("runTiers failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"AWS-Equivalent Tiers", "m6i.large", "m6i.16xlarge", "$"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRunTiers_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := runTiers(&buf, true); err != nil {
		t.Fatalf("runTiers failed: %v", err)
	}

	var resp struct {
		Tiers []models.AwsEquivalentTier `json:"tiers"`
	}
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(resp.Tiers) == 0 {
		t.Fatal("expected tiers in output")
	}
	if resp.Tiers[0].InstanceType != "m6i.large" {
		t.Errorf("expected first tier m6i.large, got %s", resp.Tiers[0].InstanceType)
	}
}
