package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Youngjiloo-101/Betpilot/internal/logger"
	"github.com/Youngjiloo-101/Betpilot/internal/metrics"
)

// Limits bound the work a single request may ask for. DefaultTrials
// replaces a zero NumTrials and falls back to the package DefaultTrials.
// Zero maximums mean unlimited.
type Limits struct {
	DefaultTrials int
	MaxTrials     int
	MaxBets       int
}

// Service wraps Run with size limits, seeding, logging and metrics.
type Service struct {
	limits      Limits
	defaultSeed int64
	binRule     BinRule
	logger      *logger.SimulationLogger
}

// NewService creates a simulation service. defaultSeed is used when a
// request carries no seed of its own; zero means time-seeded.
func NewService(limits Limits, defaultSeed int64, binRule BinRule, log *logrus.Logger) *Service {
	return &Service{
		limits:      limits,
		defaultSeed: defaultSeed,
		binRule:     binRule,
		logger:      logger.NewSimulationLogger(log),
	}
}

// defaultTrials is the trial count used when a request leaves it at zero.
func (s *Service) defaultTrials() int {
	if s.limits.DefaultTrials > 0 {
		return s.limits.DefaultTrials
	}
	return DefaultTrials
}

// CheckLimits reports whether cfg stays within the service limits.
func (s *Service) CheckLimits(cfg Config) error {
	trials := cfg.NumTrials
	if trials == 0 {
		trials = s.defaultTrials()
	}
	if s.limits.MaxTrials > 0 && trials > s.limits.MaxTrials {
		return fmt.Errorf("%w: num_trials %d above maximum %d", ErrLimitExceeded, trials, s.limits.MaxTrials)
	}
	if s.limits.MaxBets > 0 && cfg.NumBets > s.limits.MaxBets {
		return fmt.Errorf("%w: num_bets %d above maximum %d", ErrLimitExceeded, cfg.NumBets, s.limits.MaxBets)
	}
	return nil
}

// Simulate validates cfg, runs it and derives insights.
func (s *Service) Simulate(ctx context.Context, cfg Config, seed int64) (*Result, Insights, error) {
	if cfg.BinRule == "" {
		cfg.BinRule = s.binRule
	}
	if err := cfg.Validate(); err != nil {
		s.logger.LogSimulationRejected("validation", err)
		metrics.RecordSimulationRun("invalid")
		return nil, Insights{}, err
	}
	if cfg.NumTrials == 0 {
		cfg.NumTrials = s.defaultTrials()
	}
	if err := s.CheckLimits(cfg); err != nil {
		s.logger.LogSimulationRejected("limits", err)
		metrics.RecordSimulationRun("rejected")
		return nil, Insights{}, err
	}

	if seed == 0 {
		seed = s.defaultSeed
	}
	s.logger.LogSimulationStarted(cfg.InitialBankroll, cfg.BetAmount, cfg.Odds, cfg.WinProbability,
		cfg.NumBets, cfg.NumTrials, seed != 0)

	start := time.Now()
	result, err := Run(ctx, cfg, NewSource(seed))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			metrics.RecordSimulationRun("cancelled")
		}
		return nil, Insights{}, err
	}
	elapsed := time.Since(start)

	stats := result.Statistics
	metrics.RecordSimulationCompleted(result.Config.NumTrials, result.Config.NumBets, elapsed.Seconds(), stats.ProfitablePercentage)
	s.logger.LogSimulationCompleted(result.Config.NumTrials, stats.MeanFinalBankroll, stats.ProfitablePercentage,
		stats.MinFinalBankroll, stats.MaxFinalBankroll, float64(elapsed.Microseconds())/1000)

	return result, BuildInsights(result), nil
}
