package simulation

import "math"

// Level is a coarse Low/Medium/High rating.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Insights are the derived readings shown next to a simulation result.
type Insights struct {
	ExpectedValue        float64 `json:"expected_value"`
	ExpectedValueRounded int64   `json:"expected_value_rounded"`
	ProfitChance         int64   `json:"profit_chance"`
	Risk                 Level   `json:"risk"`
	Variance             Level   `json:"variance"`
}

// ExpectedValue returns the theoretical profit per bet:
// (odds * winProbability - 1) * betAmount.
func ExpectedValue(cfg Config) float64 {
	return (cfg.Odds*cfg.WinProbability - 1) * cfg.BetAmount
}

// ClassifyRisk rates a run by the share of profitable trials.
func ClassifyRisk(profitablePercentage float64) Level {
	switch {
	case profitablePercentage > 75:
		return LevelLow
	case profitablePercentage > 50:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// ClassifyVariance rates the spread of final bankrolls against the
// starting bankroll.
func ClassifyVariance(stats SummaryStatistics, initialBankroll float64) Level {
	spread := stats.MaxFinalBankroll - stats.MinFinalBankroll
	switch {
	case spread > initialBankroll*2:
		return LevelHigh
	case spread > initialBankroll:
		return LevelMedium
	default:
		return LevelLow
	}
}

// BuildInsights derives the insight block for a result.
func BuildInsights(result *Result) Insights {
	ev := ExpectedValue(result.Config)
	return Insights{
		ExpectedValue:        ev,
		ExpectedValueRounded: roundHalfUp(ev),
		ProfitChance:         roundHalfUp(result.Statistics.ProfitablePercentage),
		Risk:                 ClassifyRisk(result.Statistics.ProfitablePercentage),
		Variance:             ClassifyVariance(result.Statistics, result.Config.InitialBankroll),
	}
}

// roundHalfUp rounds ties toward positive infinity.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
