// Package health provides liveness and readiness endpoints.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Checker is a dependency consulted by the readiness probe.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Handler serves /health, /live and /ready.
type Handler struct {
	serviceName  string
	version      string
	commit       string
	checkTimeout time.Duration
	logger       *logrus.Logger
	checkers     []Checker
	mu           sync.RWMutex
	ready        bool
}

// Config holds the configuration for the health handler.
type Config struct {
	ServiceName  string
	Version      string
	Commit       string
	CheckTimeout time.Duration
	Logger       *logrus.Logger
	Checkers     []Checker
}

// NewHandler creates a health handler. It reports not ready until SetReady(true).
func NewHandler(cfg Config) *Handler {
	timeout := cfg.CheckTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Handler{
		serviceName:  cfg.ServiceName,
		version:      cfg.Version,
		commit:       cfg.Commit,
		checkTimeout: timeout,
		logger:       cfg.Logger,
		checkers:     cfg.Checkers,
	}
}

// SetReady marks the service as ready to accept traffic.
func (h *Handler) SetReady(ready bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ready = ready
}

// IsReady returns whether the service is ready.
func (h *Handler) IsReady() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ready
}

// Mount registers the probe routes on r.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Get("/live", h.HandleLive)
	r.Get("/ready", h.HandleReady)
}

// HandleHealth handles the /health endpoint - basic liveness check.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   h.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Commit:    h.commit,
	})
}

// HandleLive handles the /live endpoint - kubernetes liveness probe.
func (h *Handler) HandleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: h.serviceName})
}

// HandleReady handles the /ready endpoint - runs every registered checker.
func (h *Handler) HandleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !h.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.checkTimeout)
	defer cancel()
	for _, checker := range h.checkers {
		if err := checker.Check(ctx); err != nil {
			allHealthy = false
			checks[checker.Name()] = fmt.Sprintf("error: %v", err)
			if h.logger != nil {
				h.logger.WithError(err).WithField("check", checker.Name()).Warn("Readiness check failed")
			}
		} else {
			checks[checker.Name()] = "ok"
		}
	}

	response := ReadyResponse{
		Service:  h.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}
	status := http.StatusOK
	response.Status = "ok"
	if !allHealthy {
		response.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
