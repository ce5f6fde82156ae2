// Package planner builds stake plans: risk-bucketed bet recommendations for
// a single stake and a weekly plan that spreads a stake across several legs
// toward a profit target.
package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPlan = errors.New("invalid plan request")

var hundred = decimal.NewFromInt(100)

// RiskLevel buckets options by how likely they are to land.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Option is a recommended selection priced for the caller's stake.
type Option struct {
	ID             int             `json:"id"`
	Event          string          `json:"event"`
	Market         string          `json:"market"`
	Selection      string          `json:"selection"`
	Odds           decimal.Decimal `json:"odds"`
	Probability    string          `json:"probability"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
	ExpectedValue  decimal.Decimal `json:"expected_value"`
	RiskRating     RiskLevel       `json:"risk_rating"`
	Confidence     string          `json:"confidence"`
}

// MeetsTarget reports whether the option's return reaches target.
func (o Option) MeetsTarget(target decimal.Decimal) bool {
	return o.ExpectedReturn.GreaterThanOrEqual(target)
}

// Category groups options of the same risk level.
type Category struct {
	ID      int       `json:"id"`
	Type    string    `json:"type"`
	Risk    RiskLevel `json:"risk"`
	Options []Option  `json:"options"`
}

// Recommend prices every catalog option for stake. ExpectedReturn is the
// gross return of a win rounded to whole units; ExpectedValue is the mean
// profit using the option's quoted probability.
func Recommend(stake decimal.Decimal) ([]Category, error) {
	if !stake.IsPositive() {
		return nil, fmt.Errorf("%w: stake must be positive, got %s", ErrInvalidPlan, stake)
	}

	categories := make([]Category, 0, len(recommendationCatalog))
	for _, tmpl := range recommendationCatalog {
		category := Category{ID: tmpl.ID, Type: tmpl.Type, Risk: tmpl.Risk, Options: make([]Option, 0, len(tmpl.Options))}
		for _, option := range tmpl.Options {
			p, err := ParseProbability(option.Probability)
			if err != nil {
				return nil, err
			}
			option.ExpectedReturn = stake.Mul(option.Odds).Round(0)
			option.ExpectedValue = stake.Mul(option.Odds.Mul(p).Sub(decimal.NewFromInt(1))).Round(2)
			category.Options = append(category.Options, option)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// OnTarget returns the IDs of options whose return reaches target, in
// catalog order. A non-positive target matches nothing.
func OnTarget(categories []Category, target decimal.Decimal) []int {
	ids := make([]int, 0)
	if !target.IsPositive() {
		return ids
	}
	for _, c := range categories {
		for _, o := range c.Options {
			if o.MeetsTarget(target) {
				ids = append(ids, o.ID)
			}
		}
	}
	return ids
}

// ParseProbability turns a label such as "47%" into 0.47.
func ParseProbability(label string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(label), "%"))
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse probability %q: %w", label, err)
	}
	return value.Div(hundred), nil
}

func mustDecimal(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

type categoryTemplate struct {
	ID      int
	Type    string
	Risk    RiskLevel
	Options []Option
}

var recommendationCatalog = []categoryTemplate{
	{
		ID: 1, Type: "Low Risk", Risk: RiskLow,
		Options: []Option{
			{ID: 101, Event: "Manchester City vs Tottenham", Market: "Double Chance", Selection: "Man City or Draw",
				Odds: mustDecimal("1.25"), Probability: "80%", RiskRating: RiskLow, Confidence: "Very High"},
			{ID: 102, Event: "Bayern Munich vs Dortmund", Market: "Total Goals", Selection: "Over 1.5",
				Odds: mustDecimal("1.35"), Probability: "74%", RiskRating: RiskLow, Confidence: "High"},
		},
	},
	{
		ID: 2, Type: "Medium Risk", Risk: RiskMedium,
		Options: []Option{
			{ID: 201, Event: "Real Madrid vs Barcelona", Market: "Match Result", Selection: "Real Madrid",
				Odds: mustDecimal("2.1"), Probability: "47%", RiskRating: RiskMedium, Confidence: "Medium"},
			{ID: 202, Event: "Los Angeles Lakers vs Brooklyn Nets", Market: "Point Spread", Selection: "Lakers -4.5",
				Odds: mustDecimal("1.9"), Probability: "52%", RiskRating: RiskMedium, Confidence: "Medium"},
		},
	},
	{
		ID: 3, Type: "High Risk", Risk: RiskHigh,
		Options: []Option{
			{ID: 301, Event: "Tyson Fury vs Anthony Joshua", Market: "Method of Victory", Selection: "Fury by KO/TKO",
				Odds: mustDecimal("4.5"), Probability: "22%", RiskRating: RiskHigh, Confidence: "Low"},
			{ID: 302, Event: "French Open - Final", Market: "Correct Score", Selection: "3-2 in Sets",
				Odds: mustDecimal("5.0"), Probability: "20%", RiskRating: RiskHigh, Confidence: "Low"},
		},
	},
}
