// ABOUTME: HTTP handlers for scenario creation, calculation, and comparison
// ABOUTME: Validates input at the boundary and memoizes calculations in the TTL cache

package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/services"
)

// PairRequest selects the template and provider mode for a new scenario pair
type PairRequest struct {
	TemplateID   string              `json:"templateId"`
	ProviderMode models.ProviderMode `json:"providerMode"`
}

// CreatePair returns a baseline and optimized scenario seeded from a template.
// An empty templateId selects the custom template.
func (h *Handler) CreatePair(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.TemplateID == "" {
		req.TemplateID = models.CustomTemplateID
	}
	if err := services.ValidateTemplateID(req.TemplateID); err != nil {
		h.writeErrorWithDetails(w, "Unknown template", err.Error(), http.StatusBadRequest)
		return
	}
	if req.ProviderMode == "" {
		req.ProviderMode = h.defaultProviderMode()
	}
	if err := services.ValidateProviderMode(req.ProviderMode); err != nil {
		h.writeErrorWithDetails(w, "Invalid provider mode", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, services.CreateScenarioPairFromTemplate(req.TemplateID, req.ProviderMode))
}

// CalculateScenario projects one scenario now and at twelve months.
func (h *Handler) CalculateScenario(w http.ResponseWriter, r *http.Request) {
	var input models.CapacityScenarioInput
	if !h.decodeJSON(w, r, &input) {
		return
	}
	if err := services.ValidateScenarioInput(input); err != nil {
		h.writeValidationError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, h.calculate(input))
}

// CompareScenario projects both scenarios of a pair and compares them.
func (h *Handler) CompareScenario(w http.ResponseWriter, r *http.Request) {
	var pair models.ScenarioPair
	if !h.decodeJSON(w, r, &pair) {
		return
	}
	if err := services.ValidateScenarioPair(pair); err != nil {
		h.writeValidationError(w, err)
		return
	}

	baseline := h.calculate(pair.Baseline)
	optimized := h.calculate(pair.Optimized)
	h.writeJSON(w, http.StatusOK, models.ScenarioPairResult{
		Baseline:   baseline,
		Optimized:  optimized,
		Comparison: services.CompareScenarioOutputs(baseline, optimized),
	})
}

// calculate memoizes the model by input. Concurrent identical requests share
// one computation.
func (h *Handler) calculate(input models.CapacityScenarioInput) models.CapacityScenarioOutput {
	if h.cache == nil {
		return services.CalculateScenarioOutput(input)
	}

	key, err := calculationKey(input)
	if err != nil {
		slog.Warn("Skipping calculation cache", "error", err)
		return services.CalculateScenarioOutput(input)
	}

	if cached, found := h.cache.Get(key); found {
		if out, ok := cached.(models.CapacityScenarioOutput); ok {
			slog.Debug("Calculation cache hit", "template", input.TemplateID)
			return out
		}
	}

	v, _, _ := h.calcs.Do(key, func() (any, error) {
		out := services.CalculateScenarioOutput(input)
		h.cache.Set(key, out)
		return out, nil
	})
	return v.(models.CapacityScenarioOutput)
}

// calculationKey is a digest of the inputs the model reads. The scenario id
// and name do not affect the projection and are left out.
func calculationKey(input models.CapacityScenarioInput) (string, error) {
	data, err := json.Marshal(struct {
		TemplateID   string                `json:"t"`
		ProviderMode models.ProviderMode   `json:"p"`
		Workload     models.WorkloadParams `json:"w"`
		Advanced     models.AdvancedParams `json:"a"`
	}{input.TemplateID, input.ProviderMode, input.Workload, input.Advanced})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return "calc:" + hex.EncodeToString(sum[:]), nil
}
