// ABOUTME: HTTP handlers for the persisted planning session
// ABOUTME: Sessions are scoped per client by X-Client-ID, falling back to client IP

package handlers

import (
	"net/http"

	"github.com/markalston/capacity-planner/middleware"
	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/services"
	"github.com/markalston/capacity-planner/storage"
)

// SaveSessionRequest is the editable part of a session; version and
// timestamp are stamped by the server.
type SaveSessionRequest struct {
	Baseline         models.CapacityScenarioInput `json:"baseline"`
	Optimized        models.CapacityScenarioInput `json:"optimized"`
	ActiveTemplateID string                       `json:"activeTemplateId"`
}

func (h *Handler) sessionStore(r *http.Request) *services.SessionStore {
	return services.NewSessionStore(storage.WithPrefix(h.sessions, middleware.ClientKey(r)))
}

// GetSession returns the caller's saved session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		h.writeError(w, "Session storage unavailable", http.StatusServiceUnavailable)
		return
	}

	session := h.sessionStore(r).Load()
	if session == nil {
		h.writeError(w, "No saved session", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, session)
}

// SaveSession validates and persists the caller's session.
func (h *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		h.writeError(w, "Session storage unavailable", http.StatusServiceUnavailable)
		return
	}

	var req SaveSessionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := services.ValidateScenarioPair(models.ScenarioPair{Baseline: req.Baseline, Optimized: req.Optimized}); err != nil {
		h.writeValidationError(w, err)
		return
	}
	if req.ActiveTemplateID != "" {
		if err := services.ValidateTemplateID(req.ActiveTemplateID); err != nil {
			h.writeErrorWithDetails(w, "Unknown template", err.Error(), http.StatusBadRequest)
			return
		}
	}

	saved := h.sessionStore(r).Save(models.CapacityPlanningSession{
		Baseline:         req.Baseline,
		Optimized:        req.Optimized,
		ActiveTemplateID: req.ActiveTemplateID,
	}, h.now())
	if saved == nil {
		h.writeError(w, "Failed to save session", http.StatusServiceUnavailable)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

// ClearSession removes the caller's session. Clearing an absent session succeeds.
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		h.writeError(w, "Session storage unavailable", http.StatusServiceUnavailable)
		return
	}

	h.sessionStore(r).Clear()
	w.WriteHeader(http.StatusNoContent)
}
