// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Pattern returns the Go 1.22+ ServeMux pattern for the route.
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// IsWrite reports whether the route mutates state and takes the write rate limit.
func (r Route) IsWrite() bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Catalogs
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/v1/templates", Handler: h.GetTemplates},
		{Method: http.MethodGet, Path: "/api/v1/tiers", Handler: h.GetTiers},

		// Scenario
		{Method: http.MethodPost, Path: "/api/v1/scenario/pair", Handler: h.CreatePair},
		{Method: http.MethodPost, Path: "/api/v1/scenario/calculate", Handler: h.CalculateScenario},
		{Method: http.MethodPost, Path: "/api/v1/scenario/compare", Handler: h.CompareScenario},

		// Session
		{Method: http.MethodGet, Path: "/api/v1/session", Handler: h.GetSession},
		{Method: http.MethodPut, Path: "/api/v1/session", Handler: h.SaveSession},
		{Method: http.MethodDelete, Path: "/api/v1/session", Handler: h.ClearSession},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
