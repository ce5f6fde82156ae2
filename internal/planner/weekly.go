package planner

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WeeklyLeg is one bet of a weekly plan. Stake is RiskPercentage of the
// initial stake.
type WeeklyLeg struct {
	ID             int             `json:"id"`
	Event          string          `json:"event"`
	Market         string          `json:"market"`
	Selection      string          `json:"selection"`
	Odds           decimal.Decimal `json:"odds"`
	Probability    string          `json:"probability"`
	RiskPercentage decimal.Decimal `json:"risk_percentage"`
	RiskBand       RiskLevel       `json:"risk_band"`
	Stake          decimal.Decimal `json:"stake"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
	Date           string          `json:"date"`
	Time           string          `json:"time"`
	Sport          string          `json:"sport"`
	Bookmaker      string          `json:"bookmaker"`
}

// WeeklyPlan spreads InitialStake over a fixed set of legs.
type WeeklyPlan struct {
	InitialStake        decimal.Decimal `json:"initial_stake"`
	TargetPercentage    decimal.Decimal `json:"target_percentage"`
	WeeklyTarget        decimal.Decimal `json:"weekly_target"`
	Legs                []WeeklyLeg     `json:"legs"`
	TotalStake          decimal.Decimal `json:"total_stake"`
	TotalExpectedReturn decimal.Decimal `json:"total_expected_return"`
	Progress            decimal.Decimal `json:"progress"`
}

// WeeklyTarget returns the profit goal: stake * percentage / 100.
func WeeklyTarget(stake, percentage decimal.Decimal) decimal.Decimal {
	return stake.Mul(percentage).Div(hundred)
}

// BuildWeeklyPlan prices the weekly legs for stake and reports how much of
// the target their combined return covers, capped at 100.
func BuildWeeklyPlan(stake, percentage decimal.Decimal) (WeeklyPlan, error) {
	if !stake.IsPositive() {
		return WeeklyPlan{}, fmt.Errorf("%w: stake must be positive, got %s", ErrInvalidPlan, stake)
	}
	if !percentage.IsPositive() {
		return WeeklyPlan{}, fmt.Errorf("%w: target percentage must be positive, got %s", ErrInvalidPlan, percentage)
	}

	plan := WeeklyPlan{
		InitialStake:     stake,
		TargetPercentage: percentage,
		WeeklyTarget:     WeeklyTarget(stake, percentage),
		Legs:             make([]WeeklyLeg, 0, len(weeklyCatalog)),
	}
	for _, leg := range weeklyCatalog {
		leg.Stake = stake.Mul(leg.RiskPercentage).Div(hundred)
		leg.ExpectedReturn = leg.Stake.Mul(leg.Odds)
		leg.RiskBand = riskBand(leg.RiskPercentage)
		plan.TotalStake = plan.TotalStake.Add(leg.Stake)
		plan.TotalExpectedReturn = plan.TotalExpectedReturn.Add(leg.ExpectedReturn)
		plan.Legs = append(plan.Legs, leg)
	}

	progress := plan.TotalExpectedReturn.Div(plan.WeeklyTarget).Mul(hundred)
	plan.Progress = decimal.Min(progress, hundred)
	return plan, nil
}

func riskBand(percentage decimal.Decimal) RiskLevel {
	switch {
	case percentage.LessThanOrEqual(decimal.NewFromInt(10)):
		return RiskLow
	case percentage.LessThanOrEqual(decimal.NewFromInt(15)):
		return RiskMedium
	default:
		return RiskHigh
	}
}

var weeklyCatalog = []WeeklyLeg{
	{ID: 1, Event: "Liverpool vs Manchester City", Market: "Double Chance", Selection: "Liverpool or Draw",
		Odds: mustDecimal("1.45"), Probability: "68%", RiskPercentage: decimal.NewFromInt(15),
		Date: "2025-05-13", Time: "15:00", Sport: "Football", Bookmaker: "Bet365"},
	{ID: 2, Event: "Arsenal vs Chelsea", Market: "Both Teams to Score", Selection: "Yes",
		Odds: mustDecimal("1.75"), Probability: "57%", RiskPercentage: decimal.NewFromInt(10),
		Date: "2025-05-14", Time: "19:45", Sport: "Football", Bookmaker: "Betfair"},
	{ID: 3, Event: "Los Angeles Lakers vs Golden State Warriors", Market: "Total Points", Selection: "Over 219.5",
		Odds: mustDecimal("1.90"), Probability: "52%", RiskPercentage: decimal.NewFromInt(12),
		Date: "2025-05-15", Time: "20:30", Sport: "Basketball", Bookmaker: "DraftKings"},
	{ID: 4, Event: "Novak Djokovic vs Rafael Nadal", Market: "Match Winner", Selection: "Djokovic",
		Odds: mustDecimal("1.65"), Probability: "60%", RiskPercentage: decimal.NewFromInt(15),
		Date: "2025-05-16", Time: "14:00", Sport: "Tennis", Bookmaker: "Unibet"},
	{ID: 5, Event: "New York Yankees vs Boston Red Sox", Market: "Money Line", Selection: "Yankees",
		Odds: mustDecimal("1.55"), Probability: "64%", RiskPercentage: decimal.NewFromInt(18),
		Date: "2025-05-17", Time: "18:05", Sport: "Baseball", Bookmaker: "FanDuel"},
}
