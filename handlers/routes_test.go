// ABOUTME: Tests for route table definitions
// ABOUTME: Verifies all routes have required fields and no duplicates

package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestRoutes_AllRoutesHaveRequiredFields(t *testing.T) {
	routes := NewHandler(nil, nil, nil).Routes()

	if len(routes) == 0 {
		t.Fatal("Routes() returned empty slice")
	}

	for i, route := range routes {
		if route.Method == "" {
			t.Errorf("Route %d: Method is empty", i)
		}
		if route.Handler == nil {
			t.Errorf("Route %d: Handler is nil", i)
		}
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			t.Errorf("Route %d: Path %q must start with /api/v1/", i, route.Path)
		}
	}
}

func TestRoutes_NoDuplicatePatterns(t *testing.T) {
	seen := make(map[string]bool)
	for _, route := range NewHandler(nil, nil, nil).Routes() {
		if seen[route.Pattern()] {
			t.Errorf("Duplicate route: %s", route.Pattern())
		}
		seen[route.Pattern()] = true
	}
}

func TestRoutes_ExpectedEndpoints(t *testing.T) {
	expected := map[string]bool{
		"GET /api/v1/health":              false,
		"GET /api/v1/templates":           false,
		"GET /api/v1/tiers":               false,
		"POST /api/v1/scenario/pair":      false,
		"POST /api/v1/scenario/calculate": false,
		"POST /api/v1/scenario/compare":   false,
		"GET /api/v1/session":             false,
		"PUT /api/v1/session":             false,
		"DELETE /api/v1/session":          false,
		"GET /api/v1/openapi.yaml":        false,
	}

	for _, route := range NewHandler(nil, nil, nil).Routes() {
		if _, ok := expected[route.Pattern()]; ok {
			expected[route.Pattern()] = true
		}
	}

	for key, found := range expected {
		if !found {
			t.Errorf("Missing expected route: %s", key)
		}
	}
}

func TestRoute_IsWrite(t *testing.T) {
	tests := map[string]bool{
		http.MethodGet:    false,
		http.MethodPost:   true,
		http.MethodPut:    true,
		http.MethodDelete: true,
	}
	for method, want := range tests {
		if got := (Route{Method: method}).IsWrite(); got != want {
			t.Errorf("IsWrite(%s) = %v, want %v", method, got, want)
		}
	}
}
