// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds a full API server with the same middleware chain as serve

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/markalston/capacity-planner/cache"
	"github.com/markalston/capacity-planner/config"
	"github.com/markalston/capacity-planner/handlers"
	"github.com/markalston/capacity-planner/middleware"
	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/storage"
)

// testConfig returns a config with rate limiting off and one allowed origin
func testConfig() *config.Config {
	return &config.Config{
		CacheTTL:            60,
		SessionBackend:      config.SessionBackendMemory,
		RateLimitWrite:      30,
		RateLimitDefault:    100,
		DefaultProviderMode: models.ProviderNeutral,
		CORSAllowedOrigins:  []string{"https://planner.example.com"},
	}
}

// newTestServer starts the API over store, wiring every route through
// logging, CORS, and rate limiting in the order serve uses
func newTestServer(t *testing.T, cfg *config.Config, store storage.Store) *httptest.Server {
	t.Helper()

	c := cache.New(time.Duration(cfg.CacheTTL) * time.Second)
	t.Cleanup(c.Close)
	h := handlers.NewHandler(cfg, c, store)

	var writeLimiter, defaultLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		writeLimiter = middleware.NewRateLimiter(cfg.RateLimitWrite, time.Minute)
		defaultLimiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
	}
	cors := middleware.CORSWithConfig(cfg.CORSAllowedOrigins)

	mux := http.NewServeMux()
	seen := make(map[string]bool)
	for _, route := range h.Routes() {
		limiter := defaultLimiter
		if route.IsWrite() {
			limiter = writeLimiter
		}
		mux.HandleFunc(route.Pattern(), middleware.Chain(route.Handler,
			middleware.LogRequest,
			cors,
			middleware.RateLimit(limiter, middleware.ClientKey),
		))
		if !seen[route.Path] {
			seen[route.Path] = true
			mux.HandleFunc("OPTIONS "+route.Path, middleware.Chain(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}, cors))
		}
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// doJSON sends body as JSON with the given client id and decodes a JSON reply into out
func doJSON(t *testing.T, method, url, clientID string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if clientID != "" {
		req.Header.Set("X-Client-ID", clientID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode %s %s response: %v", method, url, err)
		}
	}
	return resp
}
