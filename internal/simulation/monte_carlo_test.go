package simulation

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceConfig() Config {
	return Config{
		InitialBankroll: 1000,
		BetAmount:       100,
		Odds:            2.0,
		WinProbability:  0.45,
		NumBets:         20,
		NumTrials:       1000,
	}
}

func TestRunDeterministicWithSeed(t *testing.T) {
	cfg := referenceConfig()

	first, err := Run(context.Background(), cfg, NewSource(42))
	require.NoError(t, err)
	second, err := Run(context.Background(), cfg, NewSource(42))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunGoldenScenario(t *testing.T) {
	result, err := Run(context.Background(), referenceConfig(), newSplitMix64(42))
	require.NoError(t, err)

	p := result.Percentiles
	assert.Equal(t, 200.0, p.P10[20])
	assert.Equal(t, 400.0, p.P25[20])
	assert.Equal(t, 800.0, p.P50[20])
	assert.Equal(t, 1000.0, p.P75[20])
	assert.Equal(t, 1400.0, p.P90[20])

	stats := result.Statistics
	assert.InDelta(t, 803.6, stats.MeanFinalBankroll, 1e-9)
	assert.InDelta(t, 24.8, stats.ProfitablePercentage, 1e-9)
	assert.Equal(t, 0.0, stats.MinFinalBankroll)
	assert.Equal(t, 2000.0, stats.MaxFinalBankroll)
	assert.InDelta(t, 6.7, stats.RuinPercentage, 1e-9)
	assert.InDelta(t, 442.613872, stats.StdDevFinalBankroll, 1e-5)

	assert.Equal(t, []int{67, 68, 127, 152, 166, 172, 112, 71, 44, 21}, result.Histogram.Counts)
	assert.Equal(t, []string{
		"$0 - $200", "$200 - $400", "$400 - $600", "$600 - $800", "$800 - $1000",
		"$1000 - $1200", "$1200 - $1400", "$1400 - $1600", "$1600 - $1800", "$1800 - $2000",
	}, result.Histogram.Labels)
}

func TestRunGoldenScenarioHalfOpenBins(t *testing.T) {
	cfg := referenceConfig()
	cfg.BinRule = BinRuleHalfOpen

	result, err := Run(context.Background(), cfg, newSplitMix64(42))
	require.NoError(t, err)

	// Six trials end exactly on the maximum of 2000 and fall outside every bin.
	assert.Equal(t, []int{67, 68, 127, 152, 166, 172, 112, 71, 44, 15}, result.Histogram.Counts)
	assert.Equal(t, 994, result.Histogram.Total())
}

func TestRunScriptedTrajectories(t *testing.T) {
	cfg := Config{
		InitialBankroll: 100,
		BetAmount:       50,
		Odds:            3,
		WinProbability:  0.5,
		NumBets:         3,
		NumTrials:       2,
	}
	src := &scriptedSource{values: []float64{0.1, 0.9, 0.1, 0.9, 0.9, 0.7, 0.7}}

	result, err := Run(context.Background(), cfg, src)
	require.NoError(t, err)

	// trial 1: 100 -> 200 -> 150 -> 250; trial 2: 100 -> 50 -> 0 -> 0
	assert.Equal(t, 5, src.next, "a ruined trial must not draw again")
	assert.Equal(t, []float64{100, 50, 0, 0}, result.Percentiles.P10)
	assert.Equal(t, []float64{100, 200, 150, 250}, result.Percentiles.P50)
	assert.Equal(t, []float64{100, 200, 150, 250}, result.Percentiles.P90)

	stats := result.Statistics
	assert.Equal(t, 125.0, stats.MeanFinalBankroll)
	assert.Equal(t, 50.0, stats.ProfitablePercentage)
	assert.Equal(t, 50.0, stats.RuinPercentage)
	assert.Equal(t, 0.0, stats.MinFinalBankroll)
	assert.Equal(t, 250.0, stats.MaxFinalBankroll)
	assert.Equal(t, 1, result.Histogram.Counts[0])
	assert.Equal(t, 1, result.Histogram.Counts[9])
}

func TestRunRuinIsPermanent(t *testing.T) {
	cfg := Config{
		InitialBankroll: 200,
		BetAmount:       100,
		Odds:            2,
		WinProbability:  0.5,
		NumBets:         6,
		NumTrials:       1,
	}
	// lose, lose, then a run of wins that must never be applied
	src := &scriptedSource{values: []float64{0.9, 0.9, 0.1, 0.1, 0.1, 0.1}}

	byStep, err := simulateTrials(context.Background(), cfg, src)
	require.NoError(t, err)

	got := make([]float64, len(byStep))
	for s := range byStep {
		got[s] = byStep[s][0]
	}
	assert.Equal(t, []float64{200, 100, 0, 0, 0, 0, 0}, got)
}

func TestRunPartialStakeClampsAtZero(t *testing.T) {
	cfg := Config{
		InitialBankroll: 150,
		BetAmount:       100,
		Odds:            2,
		WinProbability:  0.5,
		NumBets:         2,
		NumTrials:       1,
	}
	result, err := Run(context.Background(), cfg, &constantSource{value: 0.99})
	require.NoError(t, err)

	assert.Equal(t, []float64{150, 50, 0}, result.Percentiles.P50)
}

func TestRunBankrollNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 25; i++ {
		initial := 50 + rng.Float64()*1000
		cfg := Config{
			InitialBankroll: initial,
			BetAmount:       1 + rng.Float64()*(initial-1),
			Odds:            1.01 + rng.Float64()*5,
			WinProbability:  0.01 + rng.Float64()*0.98,
			NumBets:         1 + rng.Intn(40),
			NumTrials:       1 + rng.Intn(200),
		}
		byStep, err := simulateTrials(context.Background(), cfg, NewSource(int64(i+1)))
		require.NoError(t, err)
		for s := range byStep {
			for trial, v := range byStep[s] {
				require.GreaterOrEqualf(t, v, 0.0, "config %d step %d trial %d", i, s, trial)
			}
		}
	}
}

func TestRunPercentileMonotonicAndSummaryBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 25; i++ {
		cfg := Config{
			InitialBankroll: 500,
			BetAmount:       10 + rng.Float64()*200,
			Odds:            1.1 + rng.Float64()*4,
			WinProbability:  0.05 + rng.Float64()*0.9,
			NumBets:         1 + rng.Intn(30),
			NumTrials:       1 + rng.Intn(500),
		}
		result, err := Run(context.Background(), cfg, NewSource(int64(100+i)))
		require.NoError(t, err)

		p := result.Percentiles
		require.Len(t, p.P50, cfg.NumBets+1)
		for s := 0; s <= cfg.NumBets; s++ {
			assert.LessOrEqual(t, p.P10[s], p.P25[s])
			assert.LessOrEqual(t, p.P25[s], p.P50[s])
			assert.LessOrEqual(t, p.P50[s], p.P75[s])
			assert.LessOrEqual(t, p.P75[s], p.P90[s])
		}
		assert.Equal(t, cfg.InitialBankroll, p.P10[0])
		assert.Equal(t, cfg.InitialBankroll, p.P90[0])

		stats := result.Statistics
		assert.LessOrEqual(t, stats.MinFinalBankroll, stats.MeanFinalBankroll+1e-9)
		assert.LessOrEqual(t, stats.MeanFinalBankroll, stats.MaxFinalBankroll+1e-9)
		assert.GreaterOrEqual(t, stats.ProfitablePercentage, 0.0)
		assert.LessOrEqual(t, stats.ProfitablePercentage, 100.0)
		assert.Equal(t, cfg.NumTrials, result.Histogram.Total())
	}
}

func TestRunZeroVarianceAllWins(t *testing.T) {
	cfg := referenceConfig()
	cfg.NumTrials = 50

	result, err := Run(context.Background(), cfg, &constantSource{value: 0})
	require.NoError(t, err)

	stats := result.Statistics
	assert.Equal(t, 3000.0, stats.MinFinalBankroll)
	assert.Equal(t, 3000.0, stats.MaxFinalBankroll)
	assert.Equal(t, 3000.0, stats.MeanFinalBankroll)
	assert.Equal(t, 100.0, stats.ProfitablePercentage)
	assert.Equal(t, 0.0, stats.StdDevFinalBankroll)

	assert.Equal(t, []string{"$3000 - $3000"}, result.Histogram.Labels)
	assert.Equal(t, []int{50}, result.Histogram.Counts)
	assert.Equal(t, []float64{3000, 3000}, result.Histogram.Edges)
}

func TestRunZeroVarianceAllRuined(t *testing.T) {
	cfg := referenceConfig()
	cfg.NumTrials = 40
	src := &constantSource{value: 0.999}

	result, err := Run(context.Background(), cfg, src)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Statistics.ProfitablePercentage)
	assert.Equal(t, 100.0, result.Statistics.RuinPercentage)
	assert.Equal(t, []int{40}, result.Histogram.Counts)
	assert.Equal(t, 40*10, src.draws, "each trial stops drawing once ruined after ten losses")
	assert.Equal(t, 0.0, result.Percentiles.P90[10])
}

func TestRunDefaultsTrials(t *testing.T) {
	cfg := referenceConfig()
	cfg.NumTrials = 0

	result, err := Run(context.Background(), cfg, NewSource(3))
	require.NoError(t, err)

	assert.Equal(t, DefaultTrials, result.Config.NumTrials)
	assert.Equal(t, BinRuleInclusiveMax, result.Config.BinRule)
	assert.Equal(t, DefaultTrials, result.Histogram.Total())
}

func TestRunSingleTrial(t *testing.T) {
	cfg := referenceConfig()
	cfg.NumTrials = 1

	result, err := Run(context.Background(), cfg, NewSource(5))
	require.NoError(t, err)

	final := result.Statistics.MeanFinalBankroll
	assert.Equal(t, final, result.Percentiles.P10[20])
	assert.Equal(t, final, result.Percentiles.P90[20])
	assert.Equal(t, []int{1}, result.Histogram.Counts)
}

func TestRunNilSourceStillRuns(t *testing.T) {
	result, err := Run(context.Background(), referenceConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1000, result.Histogram.Total())
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, referenceConfig(), NewSource(1))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPercentileTruncatesRank(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.Equal(t, 2.0, percentile(sorted, 0.10))
	assert.Equal(t, 3.0, percentile(sorted, 0.25))
	assert.Equal(t, 6.0, percentile(sorted, 0.50))
	assert.Equal(t, 8.0, percentile(sorted, 0.75))
	assert.Equal(t, 10.0, percentile(sorted, 0.90))
	assert.Equal(t, 10.0, percentile(sorted, 1.0))
	assert.Equal(t, 0.0, percentile(nil, 0.5))
}
