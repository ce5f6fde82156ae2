package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Youngjiloo-101/Betpilot/internal/models"
	"github.com/Youngjiloo-101/Betpilot/internal/simulation"
)

type simulationFlags struct {
	bankroll    float64
	stake       float64
	odds        float64
	probability float64
	bets        int
	trials      int
	seed        int64
	binRule     string
}

func (f *simulationFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.bankroll, "bankroll", 1000, "Initial bankroll")
	cmd.Flags().Float64Var(&f.stake, "stake", 100, "Fixed stake per bet")
	cmd.Flags().Float64Var(&f.odds, "odds", 2.0, "Decimal odds of every bet")
	cmd.Flags().Float64Var(&f.probability, "probability", 0.45, "Win probability of every bet, between 0 and 1")
	cmd.Flags().IntVar(&f.bets, "bets", 20, "Bets per trial")
	cmd.Flags().IntVar(&f.trials, "trials", 0, "Number of trials (0 uses the configured default)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Random seed (0 uses the configured seed or the clock)")
	cmd.Flags().StringVar(&f.binRule, "bin-rule", "", "Histogram bin rule: inclusive_max or half_open")
}

func (f *simulationFlags) request() models.SimulationRequest {
	trials := f.trials
	if trials == 0 {
		trials = cfg.Simulation.DefaultTrials
	}
	return models.SimulationRequest{
		Config: simulation.Config{
			InitialBankroll: f.bankroll,
			BetAmount:       f.stake,
			Odds:            f.odds,
			WinProbability:  f.probability,
			NumBets:         f.bets,
			NumTrials:       trials,
			BinRule:         simulation.BinRule(f.binRule),
		},
		Seed: f.seed,
	}
}

func newSimulationService() *simulation.Service {
	return simulation.NewService(
		simulation.Limits{
			DefaultTrials: cfg.Simulation.DefaultTrials,
			MaxTrials:     cfg.Simulation.MaxTrials,
			MaxBets:       cfg.Simulation.MaxBets,
		},
		cfg.Simulation.Seed,
		simulation.BinRule(cfg.Simulation.BinRule),
		log,
	)
}

func newSimulateCmd() *cobra.Command {
	var (
		sf      simulationFlags
		csvPath string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a Monte Carlo bankroll simulation",
		Example: `  betpilot simulate --bankroll 1000 --stake 100 --odds 2 --probability 0.45 --bets 20
  betpilot simulate --trials 5000 --seed 42 --csv ./output/percentiles.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := runSimulation(cmd, sf.request())
			if err != nil {
				return err
			}
			if csvPath != "" {
				if err := simulation.GenerateCSVExport(resp.Result, csvPath); err != nil {
					return fmt.Errorf("failed to write csv: %w", err)
				}
				log.WithField("path", csvPath).Info("Percentile series exported")
			}
			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), simulation.GenerateConsoleReport(resp.Result))
			return err
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the percentile series to this CSV file")
	return cmd
}

func runSimulation(cmd *cobra.Command, req models.SimulationRequest) (*models.SimulationResponse, error) {
	if c, ok := remote(); ok {
		defer c.Close()
		return c.Simulate(cmd.Context(), req)
	}
	result, insights, err := newSimulationService().Simulate(cmd.Context(), req.Config, req.Seed)
	if err != nil {
		return nil, err
	}
	return &models.SimulationResponse{Result: result, Insights: insights}, nil
}
