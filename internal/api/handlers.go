package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Youngjiloo-101/Betpilot/internal/metrics"
	"github.com/Youngjiloo-101/Betpilot/internal/models"
	"github.com/Youngjiloo-101/Betpilot/internal/odds"
	"github.com/Youngjiloo-101/Betpilot/internal/planner"
	"github.com/Youngjiloo-101/Betpilot/internal/scenario"
)

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req models.SimulationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, insights, err := s.simulations.Simulate(r.Context(), req.Config, req.Seed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SimulationResponse{Result: result, Insights: insights})
}

func (s *Server) handleOddsOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]odds.BettingOption{"options": s.catalog.Options()})
}

func (s *Server) handleOddsFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.OddsFiltersResponse{
		Sports:     s.catalog.Sports(),
		Bookmakers: s.catalog.Bookmakers(),
	})
}

func (s *Server) handleOddsSearch(w http.ResponseWriter, r *http.Request) {
	var q odds.Query
	if err := decodeJSON(r, &q); err != nil {
		writeError(w, err)
		return
	}
	matches, err := s.catalog.Search(q)
	if err != nil {
		metrics.RecordOddsSearch("invalid")
		writeError(w, err)
		return
	}
	metrics.RecordOddsSearch("success")
	s.simLog.LogOddsSearch(q.TargetOdds, q.Tolerance, q.Sports, q.Bookmakers, len(matches))
	writeJSON(w, http.StatusOK, models.OddsSearchResponse{Query: q, Matches: matches})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	categories, err := planner.Recommend(req.Stake)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.RecordPlanGenerated("recommendations")
	writeJSON(w, http.StatusOK, models.RecommendationResponse{
		Categories: categories,
		OnTarget:   planner.OnTarget(categories, req.TargetReturn),
	})
}

func (s *Server) handleWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	var req models.WeeklyPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	plan, err := planner.BuildWeeklyPlan(req.Stake, req.TargetPercentage)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.RecordPlanGenerated("weekly")
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios := s.scenarios.List()
	writeJSON(w, http.StatusOK, models.ScenarioListResponse{Scenarios: scenarios, Count: len(scenarios)})
}

func (s *Server) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	var req models.SaveScenarioRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, _, err := s.simulations.Simulate(r.Context(), req.Simulation.Config, req.Simulation.Seed)
	if err != nil {
		writeError(w, err)
		return
	}
	saved, err := s.scenarios.Save(scenario.FromResult(req.Name, result))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	found, err := s.scenarios.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.scenarios.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateScenario(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	dup, err := s.scenarios.Duplicate(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dup)
}

func (s *Server) handleCompareScenarios(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.IDs) > scenario.MaxCompare {
		writeError(w, fmt.Errorf("%w: got %d, maximum is %d", scenario.ErrTooManyScenarios, len(req.IDs), scenario.MaxCompare))
		return
	}
	selected, err := s.scenarios.GetMany(req.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	comparison, err := scenario.Compare(selected)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.RecordScenarioOperation("compare")
	writeJSON(w, http.StatusOK, comparison)
}

func scenarioID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid scenario id %q", errBadRequest, raw)
	}
	return id, nil
}

