package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Youngjiloo-101/Betpilot/internal/models"
	"github.com/Youngjiloo-101/Betpilot/internal/odds"
	"github.com/Youngjiloo-101/Betpilot/internal/planner"
	"github.com/Youngjiloo-101/Betpilot/internal/scenario"
	"github.com/Youngjiloo-101/Betpilot/internal/simulation"
)

const maxBodyBytes = 1 << 20

var (
	errBadRequest  = errors.New("malformed request")
	errRateLimited = errors.New("rate limit exceeded")
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), models.ErrorResponse{Error: err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, errBadRequest),
		errors.Is(err, simulation.ErrInvalidConfiguration),
		errors.Is(err, simulation.ErrLimitExceeded),
		errors.Is(err, odds.ErrInvalidQuery),
		errors.Is(err, planner.ErrInvalidPlan),
		errors.Is(err, scenario.ErrTooManyScenarios),
		errors.Is(err, scenario.ErrNotEnoughScenarios):
		return http.StatusBadRequest
	case errors.Is(err, scenario.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, scenario.ErrStoreFull):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
