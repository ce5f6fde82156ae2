// Package scenario keeps named simulation results in memory so they can be
// listed, duplicated and compared side by side.
package scenario

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Youngjiloo-101/Betpilot/internal/simulation"
)

var (
	ErrNotFound           = errors.New("scenario not found")
	ErrStoreFull          = errors.New("scenario store is full")
	ErrStoreUnavailable   = errors.New("scenario store is not initialized")
	ErrTooManyScenarios   = errors.New("too many scenarios to compare")
	ErrNotEnoughScenarios = errors.New("at least two scenarios are needed for a comparison")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
)

// Scenario is a saved simulation: its inputs and headline outcomes.
type Scenario struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	Config           simulation.Config `json:"config"`
	AverageFinal     float64           `json:"average_final"`
	ProfitPercentage float64           `json:"profit_percentage"`
	Min              float64           `json:"min"`
	Max              float64           `json:"max"`
	CreatedAt        time.Time         `json:"created_at"`
}

// FromResult captures the headline numbers of a simulation result. A blank
// name is filled in by Store.Save.
func FromResult(name string, result *simulation.Result) Scenario {
	stats := result.Statistics
	return Scenario{
		Name:             name,
		Config:           result.Config,
		AverageFinal:     stats.MeanFinalBankroll,
		ProfitPercentage: stats.ProfitablePercentage,
		Min:              stats.MinFinalBankroll,
		Max:              stats.MaxFinalBankroll,
	}
}

// ExpectedValue is the theoretical profit per bet of the scenario's inputs.
func (s Scenario) ExpectedValue() float64 {
	return simulation.ExpectedValue(s.Config)
}
