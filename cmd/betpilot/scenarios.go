package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Youngjiloo-101/Betpilot/internal/models"
	"github.com/Youngjiloo-101/Betpilot/internal/scenario"
)

func newScenariosCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Save, list and compare simulation scenarios",
		Long: `Scenarios are kept in a local snapshot file (JSON, or msgpack when the file
ends in .msgpack or .mpk). With --server they are read from and saved to the
server's store instead.`,
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "./scenarios.json", "Scenario snapshot file")

	cmd.AddCommand(
		newScenarioSaveCmd(&file),
		newScenarioListCmd(&file),
		newScenarioCompareCmd(&file),
		newScenarioExportCmd(&file),
	)
	return cmd
}

func newScenarioSaveCmd(file *string) *cobra.Command {
	var (
		sf   simulationFlags
		name string
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Run a simulation and save it as a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			var saved *scenario.Scenario
			if c, ok := remote(); ok {
				defer c.Close()
				var err error
				if saved, err = c.SaveScenario(cmd.Context(), models.SaveScenarioRequest{Name: name, Simulation: sf.request()}); err != nil {
					return err
				}
			} else {
				store, err := loadStore(*file)
				if err != nil {
					return err
				}
				req := sf.request()
				result, _, err := newSimulationService().Simulate(cmd.Context(), req.Config, req.Seed)
				if err != nil {
					return err
				}
				s, err := store.Save(scenario.FromResult(name, result))
				if err != nil {
					return err
				}
				if err := writeSnapshot(*file, store.List()); err != nil {
					return err
				}
				saved = &s
			}

			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), saved)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Saved %q as %s (average $%.0f, %.1f%% profitable)\n",
				saved.Name, saved.ID, saved.AverageFinal, saved.ProfitPercentage)
			return err
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Scenario name (defaults to \"Scenario N\")")
	return cmd
}

func newScenarioListCmd(file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := listScenarios(cmd, *file)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), scenarios)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tBANKROLL\tSTAKE\tODDS\tWIN%\tAVERAGE\tPROFIT%")
			for _, s := range scenarios {
				fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.0f\t%.2f\t%.0f\t%.0f\t%.1f\n",
					s.ID, s.Name, s.Config.InitialBankroll, s.Config.BetAmount, s.Config.Odds,
					s.Config.WinProbability*100, s.AverageFinal, s.ProfitPercentage)
			}
			return tw.Flush()
		},
	}
}

func newScenarioCompareCmd(file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "compare ID ID [ID]",
		Short: "Compare two or three saved scenarios",
		Args:  cobra.RangeArgs(2, scenario.MaxCompare),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uuid.UUID, 0, len(args))
			for _, arg := range args {
				id, err := uuid.Parse(arg)
				if err != nil {
					return fmt.Errorf("invalid scenario id %q: %w", arg, err)
				}
				ids = append(ids, id)
			}

			var comparison *scenario.Comparison
			if c, ok := remote(); ok {
				defer c.Close()
				var err error
				if comparison, err = c.CompareScenarios(cmd.Context(), ids); err != nil {
					return err
				}
			} else {
				store, err := loadStore(*file)
				if err != nil {
					return err
				}
				selected, err := store.GetMany(ids)
				if err != nil {
					return err
				}
				built, err := scenario.Compare(selected)
				if err != nil {
					return err
				}
				comparison = &built
			}

			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), comparison)
			}
			return printComparison(cmd, comparison)
		},
	}
}

func newScenarioExportCmd(file *string) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write saved scenarios to another snapshot file",
		Long:  `Copies scenarios from the snapshot file, or from the server with --server, into --to. The format follows the extension of --to.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := listScenarios(cmd, *file)
			if err != nil {
				return err
			}
			if err := writeSnapshot(to, scenarios); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d scenarios to %s\n", len(scenarios), to)
			return err
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Destination snapshot file")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printComparison(cmd *cobra.Command, comparison *scenario.Comparison) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINITIAL\tAVERAGE\tMIN\tMAX\tPROFIT%\tWIN%\tEV/BET\tRISK")
	for _, row := range comparison.Rows {
		fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t%.0f\t%.0f\t%.1f\t%.0f\t%.2f\t%s\n",
			row.Name, row.InitialBankroll, row.AverageFinal, row.Min, row.Max,
			row.ProfitPercentage, row.WinProbability*100, row.ExpectedValue, row.Risk)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	rows := comparison.Rows
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Best average: %s\nBest profit chance: %s\nBest expected value: %s\n",
		rows[comparison.BestAverage].Name, rows[comparison.BestProfit].Name, rows[comparison.BestExpectedValue].Name)
	return err
}

func listScenarios(cmd *cobra.Command, file string) ([]scenario.Scenario, error) {
	if c, ok := remote(); ok {
		defer c.Close()
		return c.ListScenarios(cmd.Context())
	}
	store, err := loadStore(file)
	if err != nil {
		return nil, err
	}
	return store.List(), nil
}

// loadStore reads a snapshot into an unbounded store that never expires
// entries. A missing file gives an empty store.
func loadStore(path string) (*scenario.Store, error) {
	store := scenario.NewStore(0, 0, log)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scenarios, err := scenario.Import(f, scenario.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	for _, s := range scenarios {
		if _, err := store.Save(s); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func writeSnapshot(path string, scenarios []scenario.Scenario) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := scenario.Export(f, scenarios, scenario.FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
