package simulation

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConsoleReport(t *testing.T) {
	result, err := Run(context.Background(), referenceConfig(), newSplitMix64(42))
	require.NoError(t, err)

	report := GenerateConsoleReport(result)

	assert.Contains(t, report, "Bankroll Simulation Report")
	assert.Contains(t, report, "Average Final Bankroll: $804")
	assert.Contains(t, report, "Profit Percentage: 25%")
	assert.Contains(t, report, "Final Percentiles: p10 $200 | p25 $400 | p50 $800 | p75 $1000 | p90 $1400")
	assert.Contains(t, report, "Risk Assessment: High Risk")
	assert.Contains(t, report, "$1800 - $2000")
}

func TestGenerateCSVExport(t *testing.T) {
	cfg := Config{InitialBankroll: 100, BetAmount: 50, Odds: 3, WinProbability: 0.5, NumBets: 3, NumTrials: 2}
	src := &scriptedSource{values: []float64{0.1, 0.9, 0.1, 0.9, 0.9}}
	result, err := Run(context.Background(), cfg, src)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "percentiles.csv")
	require.NoError(t, GenerateCSVExport(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "bet,p10,p25,p50,p75,p90", lines[0])
	assert.Equal(t, "0,100.00,100.00,100.00,100.00,100.00", lines[1])
	assert.Equal(t, "3,0.00,0.00,250.00,250.00,250.00", lines[4])
}
