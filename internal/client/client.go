// Package client is a Go client for the BetPilot HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/Youngjiloo-101/Betpilot/internal/models"
	"github.com/Youngjiloo-101/Betpilot/internal/odds"
	"github.com/Youngjiloo-101/Betpilot/internal/planner"
	"github.com/Youngjiloo-101/Betpilot/internal/scenario"
)

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to a BetPilot server.
type Client struct {
	baseURL string
	http    *RateLimitedHTTPClient
}

// New creates a client for the server at baseURL.
func New(baseURL string, cfg HTTPClientConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    NewRateLimitedHTTPClient(cfg, logger),
	}
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}

// Simulate runs a simulation on the server.
func (c *Client) Simulate(ctx context.Context, req models.SimulationRequest) (*models.SimulationResponse, error) {
	var resp models.SimulationResponse
	if err := c.do(ctx, http.MethodPost, "/api/simulations", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchOdds runs a reverse odds search.
func (c *Client) SearchOdds(ctx context.Context, q odds.Query) ([]odds.Match, error) {
	var resp models.OddsSearchResponse
	if err := c.do(ctx, http.MethodPost, "/api/odds/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// Recommend fetches priced recommendations.
func (c *Client) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	var resp models.RecommendationResponse
	if err := c.do(ctx, http.MethodPost, "/api/planner/recommendations", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WeeklyPlan fetches a weekly plan.
func (c *Client) WeeklyPlan(ctx context.Context, req models.WeeklyPlanRequest) (*planner.WeeklyPlan, error) {
	var plan planner.WeeklyPlan
	if err := c.do(ctx, http.MethodPost, "/api/planner/weekly", req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// SaveScenario runs a simulation on the server and stores it.
func (c *Client) SaveScenario(ctx context.Context, req models.SaveScenarioRequest) (*scenario.Scenario, error) {
	var saved scenario.Scenario
	if err := c.do(ctx, http.MethodPost, "/api/scenarios", req, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListScenarios returns every stored scenario.
func (c *Client) ListScenarios(ctx context.Context) ([]scenario.Scenario, error) {
	var resp models.ScenarioListResponse
	if err := c.do(ctx, http.MethodGet, "/api/scenarios", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Scenarios, nil
}

// DeleteScenario removes a stored scenario.
func (c *Client) DeleteScenario(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/scenarios/"+id.String(), nil, nil)
}

// CompareScenarios compares stored scenarios by ID.
func (c *Client) CompareScenarios(ctx context.Context, ids []uuid.UUID) (*scenario.Comparison, error) {
	var comparison scenario.Comparison
	if err := c.do(ctx, http.MethodPost, "/api/scenarios/compare", models.CompareRequest{IDs: ids}, &comparison); err != nil {
		return nil, err
	}
	return &comparison, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	var reqBody interface{}
	if payload != nil {
		reqBody = payload
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		var errBody models.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
