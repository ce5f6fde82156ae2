// Package logger provides simulation-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// SimulationLogger provides dedicated logging for simulation runs.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger.
func NewSimulationLogger(baseLogger *logrus.Logger) *SimulationLogger {
	return &SimulationLogger{
		Entry: baseLogger.WithField("component", "simulation"),
	}
}

// LogSimulationStarted logs the parameters of a run about to start.
func (sl *SimulationLogger) LogSimulationStarted(initialBankroll, betAmount, odds, winProbability float64, numBets, numTrials int, seeded bool) {
	sl.WithFields(logrus.Fields{
		"initial_bankroll": initialBankroll,
		"bet_amount":       betAmount,
		"odds":             odds,
		"win_probability":  winProbability,
		"num_bets":         numBets,
		"num_trials":       numTrials,
		"seeded":           seeded,
	}).Debug("Simulation started")
}

// LogSimulationCompleted logs the headline statistics of a finished run.
func (sl *SimulationLogger) LogSimulationCompleted(numTrials int, meanFinal, profitablePct, minFinal, maxFinal, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"num_trials":            numTrials,
		"mean_final_bankroll":   meanFinal,
		"profitable_percentage": profitablePct,
		"min_final_bankroll":    minFinal,
		"max_final_bankroll":    maxFinal,
		"duration_ms":           durationMs,
	}).Info("Simulation completed")
}

// LogSimulationRejected logs a run refused before it started.
func (sl *SimulationLogger) LogSimulationRejected(reason string, err error) {
	sl.WithFields(logrus.Fields{
		"reason": reason,
	}).WithError(err).Warn("Simulation rejected")
}

// LogOddsSearch logs a reverse-odds lookup.
func (sl *SimulationLogger) LogOddsSearch(targetOdds, tolerance float64, sports, bookmakers []string, matches int) {
	sl.WithFields(logrus.Fields{
		"target_odds": targetOdds,
		"tolerance":   tolerance,
		"sports":      sports,
		"bookmakers":  bookmakers,
		"matches":     matches,
	}).Info("Odds search completed")
}
