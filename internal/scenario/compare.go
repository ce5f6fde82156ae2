package scenario

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Youngjiloo-101/Betpilot/internal/simulation"
)

// MaxCompare is the most scenarios shown side by side.
const MaxCompare = 3

// ComparisonRow is one scenario's column in a comparison.
type ComparisonRow struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	InitialBankroll  float64          `json:"initial_bankroll"`
	AverageFinal     float64          `json:"average_final"`
	Min              float64          `json:"min"`
	Max              float64          `json:"max"`
	ProfitPercentage float64          `json:"profit_percentage"`
	WinProbability   float64          `json:"win_probability"`
	ExpectedValue    float64          `json:"expected_value"`
	Risk             simulation.Level `json:"risk"`
}

// Comparison lines up scenarios and points at the leader in each category.
// Indexes refer to Rows; ties go to the earlier row.
type Comparison struct {
	Rows              []ComparisonRow `json:"rows"`
	BestAverage       int             `json:"best_average"`
	BestProfit        int             `json:"best_profit"`
	BestExpectedValue int             `json:"best_expected_value"`
	HighestMax        int             `json:"highest_max"`
	DeepestDrawdown   int             `json:"deepest_drawdown"`
}

// Compare builds a comparison of two to MaxCompare scenarios.
func Compare(scenarios []Scenario) (Comparison, error) {
	if len(scenarios) > MaxCompare {
		return Comparison{}, fmt.Errorf("%w: got %d, maximum is %d", ErrTooManyScenarios, len(scenarios), MaxCompare)
	}
	if len(scenarios) < 2 {
		return Comparison{}, fmt.Errorf("%w: got %d", ErrNotEnoughScenarios, len(scenarios))
	}

	rows := make([]ComparisonRow, len(scenarios))
	for i, s := range scenarios {
		rows[i] = ComparisonRow{
			ID:               s.ID,
			Name:             s.Name,
			InitialBankroll:  s.Config.InitialBankroll,
			AverageFinal:     s.AverageFinal,
			Min:              s.Min,
			Max:              s.Max,
			ProfitPercentage: s.ProfitPercentage,
			WinProbability:   s.Config.WinProbability,
			ExpectedValue:    s.ExpectedValue(),
			Risk:             simulation.ClassifyRisk(s.ProfitPercentage),
		}
	}

	return Comparison{
		Rows:              rows,
		BestAverage:       argBest(rows, func(r ComparisonRow) float64 { return r.AverageFinal }),
		BestProfit:        argBest(rows, func(r ComparisonRow) float64 { return r.ProfitPercentage }),
		BestExpectedValue: argBest(rows, func(r ComparisonRow) float64 { return r.ExpectedValue }),
		HighestMax:        argBest(rows, func(r ComparisonRow) float64 { return r.Max }),
		DeepestDrawdown: argBest(rows, func(r ComparisonRow) float64 {
			if r.InitialBankroll == 0 {
				return 0
			}
			return -r.Min / r.InitialBankroll
		}),
	}, nil
}

// argBest returns the index of the row with the largest score.
func argBest(rows []ComparisonRow, score func(ComparisonRow) float64) int {
	best := 0
	for i := 1; i < len(rows); i++ {
		if score(rows[i]) > score(rows[best]) {
			best = i
		}
	}
	return best
}
