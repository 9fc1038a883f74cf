// ABOUTME: Tests for the capacity planner API client
// ABOUTME: Uses httptest to mock backend responses and to run the real handlers

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/markalston/capacity-planner/handlers"
	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/services"
)

func TestHealth_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("expected path /api/v1/health, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok", SessionBackend: "redis"})
	}))
	defer server.Close()

	resp, err := New(server.URL + "/").Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "ok" || resp.SessionBackend != "redis" {
		t.Errorf("unexpected health: %+v", resp)
	}
}

func TestHealth_ConnectionError(t *testing.T) {
	_, err := New("http://127.0.0.1:1").Health(context.Background())
	if err == nil || !strings.Contains(err.Error(), "cannot connect to backend") {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestHealth_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "internal error", Code: 500})
	}))
	defer server.Close()

	_, err := New(server.URL).Health(context.Background())
	if err == nil || err.Error() != "backend error: internal error" {
		t.Errorf("expected backend error, got %v", err)
	}
}

func TestHealth_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL).Health(context.Background())
	if err == nil || err.Error() != "backend returned status 502" {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestHealth_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(server.URL).Health(ctx)
	if err == nil || err.Error() != "request timed out" {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestClientID_Header(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Client-ID")
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	if _, err := New(server.URL).WithClientID("laptop").Health(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got != "laptop" {
		t.Errorf("X-Client-ID = %q, want laptop", got)
	}
}

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := handlers.NewHandler(nil, nil, nil)
	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Pattern(), route.Handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCalculate_AgainstHandlers(t *testing.T) {
	server := newAPIServer(t)
	input := services.CreateScenarioFromTemplate(models.RoleBaseline, "ecommerce-api", "", models.ProviderAWSEquivalent)

	out, err := New(server.URL).Calculate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := services.CalculateScenarioOutput(input)
	if out.Now.NodeCount != want.Now.NodeCount || out.Now.MonthlyCostUSD != want.Now.MonthlyCostUSD {
		t.Errorf("now = %+v, want %+v", out.Now, want.Now)
	}
}

func TestCompareScenarios_AgainstHandlers(t *testing.T) {
	server := newAPIServer(t)
	pair := services.CreateScenarioPairFromTemplate("social-feed-api", models.ProviderNeutral)
	pair.Optimized.Advanced.CacheHitPercent = 85

	result, err := New(server.URL).CompareScenarios(context.Background(), pair)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Comparison.CostDeltaMonthlyUSD >= 0 {
		t.Errorf("expected a cost reduction, got %v", result.Comparison.CostDeltaMonthlyUSD)
	}
}

func TestCompareScenarios_ValidationError(t *testing.T) {
	server := newAPIServer(t)
	pair := services.CreateScenarioPairFromTemplate("ecommerce-api", models.ProviderNeutral)
	pair.Baseline.Workload.ReadPercent = 140

	_, err := New(server.URL).CompareScenarios(context.Background(), pair)
	if err == nil || !strings.Contains(err.Error(), "readPercent") {
		t.Errorf("expected validation error mentioning readPercent, got %v", err)
	}
}
