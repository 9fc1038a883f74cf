// ABOUTME: HTTP client for the capacity planner API
// ABOUTME: Wraps API calls with error handling suited to CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/markalston/capacity-planner/models"
)

// Client is the API client for a running capacity planner server
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithClientID sets the X-Client-ID header used to scope server-side sessions
func (c *Client) WithClientID(id string) *Client {
	c.clientID = id
	return c
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status         string `json:"status"`
	SessionBackend string `json:"session_backend"`
	CacheEnabled   bool   `json:"cache_enabled"`
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Calculate calls POST /api/v1/scenario/calculate
func (c *Client) Calculate(ctx context.Context, input models.CapacityScenarioInput) (*models.CapacityScenarioOutput, error) {
	var out models.CapacityScenarioOutput
	if err := c.do(ctx, http.MethodPost, "/api/v1/scenario/calculate", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompareScenarios calls POST /api/v1/scenario/compare
func (c *Client) CompareScenarios(ctx context.Context, pair models.ScenarioPair) (*models.ScenarioPairResult, error) {
	var result models.ScenarioPairResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/scenario/compare", pair, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do sends body as JSON and decodes a 2xx response into out
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}
	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if errResp.Details != "" {
		return fmt.Errorf("backend error: %s: %s", errResp.Error, errResp.Details)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}
