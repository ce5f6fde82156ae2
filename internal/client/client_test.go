package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Youngjiloo-101/Betpilot/internal/api"
	"github.com/Youngjiloo-101/Betpilot/internal/models"
	"github.com/Youngjiloo-101/Betpilot/internal/odds"
	"github.com/Youngjiloo-101/Betpilot/internal/scenario"
	"github.com/Youngjiloo-101/Betpilot/internal/simulation"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fastConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           5 * time.Second,
		MaxRetries:        3,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      5 * time.Millisecond,
		CircuitBreakerMax: 2,
	}
}

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := quietLogger()
	srv := api.New(api.Config{
		Logger:      log,
		Simulations: simulation.NewService(simulation.Limits{MaxTrials: 5000}, 0, simulation.BinRuleInclusiveMax, log),
		Catalog:     odds.DefaultCatalog(),
		Scenarios:   scenario.NewStore(time.Hour, 10, log),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func referenceRequest() models.SimulationRequest {
	return models.SimulationRequest{
		Config: simulation.Config{
			InitialBankroll: 1000,
			BetAmount:       100,
			Odds:            2,
			WinProbability:  0.45,
			NumBets:         20,
			NumTrials:       300,
		},
		Seed: 7,
	}
}

func TestClientAgainstServer(t *testing.T) {
	ts := newAPIServer(t)
	c := New(ts.URL, fastConfig(), quietLogger())
	defer c.Close()
	ctx := context.Background()

	first, err := c.Simulate(ctx, referenceRequest())
	require.NoError(t, err)
	second, err := c.Simulate(ctx, referenceRequest())
	require.NoError(t, err)
	assert.Equal(t, first.Result.Statistics, second.Result.Statistics)
	assert.Equal(t, 300, first.Result.Histogram.Total())

	matches, err := c.SearchOdds(ctx, odds.Query{TargetOdds: 4.0, Tolerance: 0.1})
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, 6, matches[0].ID)

	a, err := c.SaveScenario(ctx, models.SaveScenarioRequest{Name: "A", Simulation: referenceRequest()})
	require.NoError(t, err)
	bReq := referenceRequest()
	bReq.WinProbability = 0.55
	b, err := c.SaveScenario(ctx, models.SaveScenarioRequest{Name: "B", Simulation: bReq})
	require.NoError(t, err)

	list, err := c.ListScenarios(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	comparison, err := c.CompareScenarios(ctx, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, comparison.BestExpectedValue)

	require.NoError(t, c.DeleteScenario(ctx, a.ID))
	err = c.DeleteScenario(ctx, a.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "scenario not found")
}

func TestClientValidationErrorIsNotRetried(t *testing.T) {
	ts := newAPIServer(t)
	c := New(ts.URL, fastConfig(), quietLogger())

	req := referenceRequest()
	req.Odds = 0.5
	_, err := c.Simulate(context.Background(), req)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "odds must be greater than 1")
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"scenarios":[],"count":0}`))
	}))
	defer ts.Close()

	c := New(ts.URL, fastConfig(), quietLogger())
	list, err := c.ListScenarios(context.Background())

	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientReturnsLastResponseWhenRetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, fastConfig(), quietLogger())
	_, err := c.ListScenarios(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "rate limit exceeded", apiErr.Message)
	assert.Equal(t, int32(4), calls.Load())
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	cfg := fastConfig()
	cfg.MaxRetries = 0
	c := New(url, cfg, quietLogger())
	ctx := context.Background()

	_, err := c.ListScenarios(ctx)
	require.Error(t, err)
	assert.False(t, c.http.IsOpen())

	_, err = c.ListScenarios(ctx)
	require.Error(t, err)
	assert.True(t, c.http.IsOpen())

	_, err = c.ListScenarios(ctx)
	assert.True(t, errors.Is(err, ErrCircuitOpen))

	c.http.Reset()
	assert.False(t, c.http.IsOpen())
}

func TestCustomRetryPolicy(t *testing.T) {
	policy := customRetryPolicy()
	ctx := context.Background()

	for _, code := range []int{429, 500, 502, 503, 504} {
		retry, err := policy(ctx, &http.Response{StatusCode: code}, nil)
		assert.NoError(t, err)
		assert.True(t, retry, "status %d", code)
	}
	for _, code := range []int{200, 400, 404, 409} {
		retry, _ := policy(ctx, &http.Response{StatusCode: code}, nil)
		assert.False(t, retry, "status %d", code)
	}

	retry, err := policy(ctx, nil, errors.New("connection refused"))
	assert.True(t, retry)
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	retry, err = policy(cancelled, nil, errors.New("connection refused"))
	assert.False(t, retry)
	assert.ErrorIs(t, err, context.Canceled)
}
