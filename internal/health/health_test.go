package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string { return s.name }
func (s stubChecker) Check(ctx context.Context) error { return s.err }

func serve(t *testing.T, h *Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	r := chi.NewRouter()
	h.Mount(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealthAndLive(t *testing.T) {
	h := NewHandler(Config{ServiceName: "betpilot-api", Version: "1.0.0"})

	rec, body := serve(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "1.0.0", body["version"])

	rec, body = serve(t, h, "/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "betpilot-api", body["service"])
}

func TestReadyRequiresFlag(t *testing.T) {
	h := NewHandler(Config{ServiceName: "betpilot-api"})

	rec, body := serve(t, h, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not_ready", body["status"])

	h.SetReady(true)
	rec, body = serve(t, h, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestReadyReportsFailingChecker(t *testing.T) {
	h := NewHandler(Config{
		ServiceName: "betpilot-api",
		Checkers: []Checker{
			stubChecker{name: "scenario_store"},
			stubChecker{name: "limiter", err: errors.New("exhausted")},
		},
	})
	h.SetReady(true)

	rec, body := serve(t, h, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["scenario_store"])
	assert.Equal(t, "error: exhausted", checks["limiter"])
}
