// Package odds implements the reverse odds lookup: given a target price and
// a tolerance, find catalog selections priced close to it.
package odds

import "time"

// Confidence is the analyst confidence attached to a selection.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// Trend is the recent price movement of a selection.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// BettingOption is a single priced selection offered by a bookmaker.
type BettingOption struct {
	ID          int        `json:"id" msgpack:"id"`
	Event       string     `json:"event" msgpack:"event"`
	Market      string     `json:"market" msgpack:"market"`
	Selection   string     `json:"selection" msgpack:"selection"`
	Odds        float64    `json:"odds" msgpack:"odds"`
	Probability string     `json:"probability" msgpack:"probability"`
	Confidence  Confidence `json:"confidence" msgpack:"confidence"`
	StartTime   time.Time  `json:"start_time" msgpack:"start_time"`
	League      string     `json:"league,omitempty" msgpack:"league,omitempty"`
	Sport       string     `json:"sport" msgpack:"sport"`
	Bookmaker   string     `json:"bookmaker" msgpack:"bookmaker"`
	Trend       Trend      `json:"trend,omitempty" msgpack:"trend,omitempty"`
}

// ImpliedProbability returns the probability implied by the decimal odds.
func (o BettingOption) ImpliedProbability() float64 {
	if o.Odds <= 0 {
		return 0
	}
	return 1.0 / o.Odds
}

// Distance returns the absolute price difference to target.
func (o BettingOption) Distance(target float64) float64 {
	d := o.Odds - target
	if d < 0 {
		return -d
	}
	return d
}
