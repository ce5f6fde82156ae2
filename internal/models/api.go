// Package models holds the request and response bodies shared by the HTTP
// API and its client.
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Youngjiloo-101/Betpilot/internal/odds"
	"github.com/Youngjiloo-101/Betpilot/internal/planner"
	"github.com/Youngjiloo-101/Betpilot/internal/scenario"
	"github.com/Youngjiloo-101/Betpilot/internal/simulation"
)

// SimulationRequest is a simulation config plus an optional seed. A zero
// seed lets the server choose.
type SimulationRequest struct {
	simulation.Config
	Seed int64 `json:"seed,omitempty"`
}

// SimulationResponse carries a result and its derived insights.
type SimulationResponse struct {
	Result   *simulation.Result  `json:"result"`
	Insights simulation.Insights `json:"insights"`
}

// Stream message types.
const (
	StreamResult = "result"
	StreamError  = "error"
)

// StreamMessage is one frame sent on the simulation websocket.
type StreamMessage struct {
	Type       string              `json:"type"`
	Sequence   int                 `json:"sequence"`
	Simulation *SimulationResponse `json:"simulation,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// OddsFiltersResponse lists the values accepted by the search filters.
type OddsFiltersResponse struct {
	Sports     []string `json:"sports"`
	Bookmakers []string `json:"bookmakers"`
}

// OddsSearchResponse wraps search hits.
type OddsSearchResponse struct {
	Query   odds.Query   `json:"query"`
	Matches []odds.Match `json:"matches"`
}

// RecommendationRequest asks for options priced for Stake. OnTarget lists
// options whose return reaches TargetReturn when it is set.
type RecommendationRequest struct {
	Stake        decimal.Decimal `json:"stake"`
	TargetReturn decimal.Decimal `json:"target_return"`
}

// RecommendationResponse groups priced options by risk.
type RecommendationResponse struct {
	Categories []planner.Category `json:"categories"`
	OnTarget   []int              `json:"on_target"`
}

// WeeklyPlanRequest asks for a weekly plan.
type WeeklyPlanRequest struct {
	Stake            decimal.Decimal `json:"stake"`
	TargetPercentage decimal.Decimal `json:"target_percentage"`
}

// SaveScenarioRequest runs a simulation and stores it under Name.
type SaveScenarioRequest struct {
	Name       string            `json:"name"`
	Simulation SimulationRequest `json:"simulation"`
}

// CompareRequest selects stored scenarios to compare.
type CompareRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// ScenarioListResponse wraps stored scenarios.
type ScenarioListResponse struct {
	Scenarios []scenario.Scenario `json:"scenarios"`
	Count     int                 `json:"count"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
