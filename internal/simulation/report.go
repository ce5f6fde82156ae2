package simulation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats a result and its insights for terminal output.
func GenerateConsoleReport(result *Result) string {
	insights := BuildInsights(result)
	cfg := result.Config
	stats := result.Statistics
	last := cfg.NumBets

	var builder strings.Builder
	builder.WriteString("Bankroll Simulation Report\n")
	builder.WriteString("==========================\n")
	builder.WriteString(fmt.Sprintf("Trials: %d  Bets per trial: %d\n", cfg.NumTrials, cfg.NumBets))
	builder.WriteString(fmt.Sprintf("Initial Bankroll: $%.2f  Stake: $%.2f  Odds: %.2f  Win Probability: %.0f%%\n",
		cfg.InitialBankroll, cfg.BetAmount, cfg.Odds, cfg.WinProbability*100))
	builder.WriteString(fmt.Sprintf("Average Final Bankroll: $%.0f\n", stats.MeanFinalBankroll))
	builder.WriteString(fmt.Sprintf("Profit Percentage: %d%%\n", insights.ProfitChance))
	builder.WriteString(fmt.Sprintf("Minimum Final Bankroll: $%.0f\n", stats.MinFinalBankroll))
	builder.WriteString(fmt.Sprintf("Maximum Final Bankroll: $%.0f\n", stats.MaxFinalBankroll))
	builder.WriteString(fmt.Sprintf("Ruined Trials: %.1f%%\n", stats.RuinPercentage))
	builder.WriteString(fmt.Sprintf("Final Percentiles: p10 $%.0f | p25 $%.0f | p50 $%.0f | p75 $%.0f | p90 $%.0f\n",
		result.Percentiles.P10[last], result.Percentiles.P25[last], result.Percentiles.P50[last],
		result.Percentiles.P75[last], result.Percentiles.P90[last]))
	builder.WriteString(fmt.Sprintf("Expected Value: $%d per bet\n", insights.ExpectedValueRounded))
	builder.WriteString(fmt.Sprintf("Risk Assessment: %s Risk\n", insights.Risk))
	builder.WriteString(fmt.Sprintf("Variance: %s\n", insights.Variance))
	builder.WriteString("Distribution of Final Bankrolls:\n")
	for i, label := range result.Histogram.Labels {
		builder.WriteString(fmt.Sprintf("  %-20s %d\n", label, result.Histogram.Counts[i]))
	}
	return builder.String()
}

// GenerateCSVExport writes one row per bet index with every percentile.
func GenerateCSVExport(result *Result, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("bet,p10,p25,p50,p75,p90\n")
	p := result.Percentiles
	for i := range p.P50 {
		b.WriteString(fmt.Sprintf("%d,%.2f,%.2f,%.2f,%.2f,%.2f\n", i, p.P10[i], p.P25[i], p.P50[i], p.P75[i], p.P90[i]))
	}
	return os.WriteFile(outputPath, []byte(b.String()), 0o644)
}
