// ABOUTME: HTTP handlers for health and catalog endpoints
// ABOUTME: Reports service status and serves the template and tier catalogs

package handlers

import (
	"net/http"

	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/services"
)

// HealthResponse reports service status
type HealthResponse struct {
	Status         string `json:"status"`
	SessionBackend string `json:"session_backend"`
	CacheEnabled   bool   `json:"cache_enabled"`
}

// Health returns API health status and the configured session backend.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:         "ok",
		SessionBackend: h.sessionBackend(),
		CacheEnabled:   h.cache != nil,
	})
}

// TemplatesResponse lists the preset templates and the custom starting point
type TemplatesResponse struct {
	Templates []models.CapacityTemplate `json:"templates"`
	Custom    models.CapacityTemplate   `json:"custom"`
}

// GetTemplates returns the template catalog.
func (h *Handler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	custom, _ := services.GetCapacityTemplate(models.CustomTemplateID)
	h.writeJSON(w, http.StatusOK, TemplatesResponse{
		Templates: services.GetCapacityTemplates(),
		Custom:    custom,
	})
}

// GetTiers returns the AWS-equivalent tier catalog in ascending size.
func (h *Handler) GetTiers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"tiers": services.AwsEquivalentTiers(),
	})
}
