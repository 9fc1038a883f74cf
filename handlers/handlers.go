// ABOUTME: HTTP handlers for capacity planner API endpoints
// ABOUTME: Shares the handler state and JSON request/response helpers

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/markalston/capacity-planner/cache"
	"github.com/markalston/capacity-planner/config"
	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/storage"
	"golang.org/x/sync/singleflight"
)

// maxRequestBodySize limits JSON request bodies to 1MB
const maxRequestBodySize = 1 << 20

type Handler struct {
	cfg      *config.Config
	cache    *cache.Cache
	sessions storage.Store
	calcs    singleflight.Group
	now      func() time.Time
}

// NewHandler wires the handlers. cfg, c, and sessions may be nil: calculations
// are then not memoized and the session endpoints report unavailable storage.
func NewHandler(cfg *config.Config, c *cache.Cache, sessions storage.Store) *Handler {
	return &Handler{
		cfg:      cfg,
		cache:    c,
		sessions: sessions,
		now:      time.Now,
	}
}

func (h *Handler) defaultProviderMode() models.ProviderMode {
	if h.cfg != nil && h.cfg.DefaultProviderMode.Valid() {
		return h.cfg.DefaultProviderMode
	}
	return models.ProviderNeutral
}

func (h *Handler) sessionBackend() string {
	if h.sessions == nil {
		return "unavailable"
	}
	if h.cfg == nil {
		return config.SessionBackendMemory
	}
	return h.cfg.SessionBackend
}

// decodeJSON reads a size-limited JSON body into v. Unknown fields are rejected
// so typos in lever names surface as 400s instead of silent defaults.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return false
		}
		h.writeErrorWithDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorWithDetails(w, message, "", code)
}

func (h *Handler) writeErrorWithDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// writeValidationError reports input that parsed but failed range checks
func (h *Handler) writeValidationError(w http.ResponseWriter, err error) {
	h.writeErrorWithDetails(w, "Invalid scenario input", fmt.Sprint(err), http.StatusBadRequest)
}
