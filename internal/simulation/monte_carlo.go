// Package simulation runs Monte Carlo bankroll simulations over a sequence
// of fixed-stake bets and summarizes the distribution of outcomes.
package simulation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PercentileLevels are the quantiles reported for every bet index.
var PercentileLevels = [5]float64{0.10, 0.25, 0.50, 0.75, 0.90}

// PercentileSeries holds, per quantile, the bankroll at each bet index.
// Every series has NumBets+1 entries; index 0 is the starting bankroll.
type PercentileSeries struct {
	P10 []float64 `json:"p10"`
	P25 []float64 `json:"p25"`
	P50 []float64 `json:"p50"`
	P75 []float64 `json:"p75"`
	P90 []float64 `json:"p90"`
}

// SummaryStatistics describes the distribution of final bankrolls.
type SummaryStatistics struct {
	MeanFinalBankroll    float64 `json:"mean_final_bankroll"`
	ProfitablePercentage float64 `json:"profitable_percentage"`
	MinFinalBankroll     float64 `json:"min_final_bankroll"`
	MaxFinalBankroll     float64 `json:"max_final_bankroll"`
	StdDevFinalBankroll  float64 `json:"stddev_final_bankroll"`
	RuinPercentage       float64 `json:"ruin_percentage"`
}

// Histogram bins final bankrolls into equal-width buckets.
// Edges has len(Counts)+1 entries.
type Histogram struct {
	Labels []string  `json:"labels"`
	Counts []int     `json:"counts"`
	Edges  []float64 `json:"edges"`
}

// Total returns the number of trials counted across all bins.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Result is the outcome of one simulation run.
type Result struct {
	Config      Config            `json:"config"`
	Percentiles PercentileSeries  `json:"percentiles"`
	Statistics  SummaryStatistics `json:"statistics"`
	Histogram   Histogram         `json:"histogram"`
}

// Run simulates cfg.NumTrials independent betting sequences of cfg.NumBets
// bets each, drawing from rng, and aggregates the trajectories.
//
// A bet wins when rng.Float64() < cfg.WinProbability. The bankroll is
// floored at zero and a ruined trial stops wagering for the rest of its run.
// Draws happen trial by trial, bet by bet, so a deterministic rng gives a
// deterministic result. A nil rng is replaced by a time-seeded source.
func Run(ctx context.Context, cfg Config, rng RandomSource) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if rng == nil {
		rng = NewSource(0)
	}

	byStep, err := simulateTrials(ctx, cfg, rng)
	if err != nil {
		return nil, err
	}

	finals := append([]float64(nil), byStep[cfg.NumBets]...)
	stats := summarize(finals, cfg.InitialBankroll)

	return &Result{
		Config:      cfg,
		Percentiles: percentileSeries(byStep),
		Statistics:  stats,
		Histogram:   buildHistogram(finals, stats.MinFinalBankroll, stats.MaxFinalBankroll, DefaultBins, cfg.BinRule),
	}, nil
}

// simulateTrials runs every trial and returns the bankrolls indexed by
// step then trial: byStep[s][t] is the bankroll of trial t after s bets.
func simulateTrials(ctx context.Context, cfg Config, rng RandomSource) ([][]float64, error) {
	byStep := make([][]float64, cfg.NumBets+1)
	for s := range byStep {
		byStep[s] = make([]float64, cfg.NumTrials)
	}

	profit := cfg.ProfitPerWin()
	for t := 0; t < cfg.NumTrials; t++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation cancelled after %d trials: %w", t, err)
		}
		bankroll := cfg.InitialBankroll
		byStep[0][t] = bankroll
		for s := 1; s <= cfg.NumBets; s++ {
			if bankroll > 0 {
				if rng.Float64() < cfg.WinProbability {
					bankroll += profit
				} else {
					bankroll -= cfg.BetAmount
				}
				bankroll = math.Max(0, bankroll)
			}
			byStep[s][t] = bankroll
		}
	}
	return byStep, nil
}

// percentileSeries sorts each step column in place and reads off the
// configured quantiles.
func percentileSeries(byStep [][]float64) PercentileSeries {
	steps := len(byStep)
	series := PercentileSeries{
		P10: make([]float64, steps),
		P25: make([]float64, steps),
		P50: make([]float64, steps),
		P75: make([]float64, steps),
		P90: make([]float64, steps),
	}
	for s, column := range byStep {
		sort.Float64s(column)
		series.P10[s] = percentile(column, PercentileLevels[0])
		series.P25[s] = percentile(column, PercentileLevels[1])
		series.P50[s] = percentile(column, PercentileLevels[2])
		series.P75[s] = percentile(column, PercentileLevels[3])
		series.P90[s] = percentile(column, PercentileLevels[4])
	}
	return series
}

// percentile reads the value at rank floor(n*p) of an ascending slice.
// There is no interpolation between neighbouring ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Floor(float64(len(sorted)) * p))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func summarize(finals []float64, initial float64) SummaryStatistics {
	mean, std := stat.PopMeanStdDev(finals, nil)
	if len(finals) < 2 || math.IsNaN(std) {
		std = 0
	}
	return SummaryStatistics{
		MeanFinalBankroll:    mean,
		ProfitablePercentage: probabilityAbove(finals, initial) * 100,
		MinFinalBankroll:     floats.Min(finals),
		MaxFinalBankroll:     floats.Max(finals),
		StdDevFinalBankroll:  std,
		RuinPercentage:       probabilityAtOrBelow(finals, 0) * 100,
	}
}

func probabilityAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func probabilityAtOrBelow(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v <= threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}
