package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Youngjiloo-101/Betpilot/internal/odds"
)

func newOddsCmd() *cobra.Command {
	var (
		target     string
		tolerance  float64
		sports     []string
		bookmakers []string
	)
	cmd := &cobra.Command{
		Use:     "odds",
		Short:   "Find selections priced close to a target",
		Example: `  betpilot odds --target 4.0 --tolerance 0.5 --sport Football`,
		RunE: func(cmd *cobra.Command, args []string) error {
			targetOdds, err := odds.ParseOddsInput(target)
			if err != nil {
				return err
			}
			q := odds.Query{TargetOdds: targetOdds, Tolerance: tolerance, Sports: sports, Bookmakers: bookmakers}

			var matches []odds.Match
			if c, ok := remote(); ok {
				defer c.Close()
				matches, err = c.SearchOdds(cmd.Context(), q)
			} else {
				matches, err = odds.DefaultCatalog().Search(q)
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), matches)
			}
			if len(matches) == 0 {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "No selections within %.2f of %.2f\n", tolerance, targetOdds)
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ODDS\tDIST\tEVENT\tSELECTION\tSPORT\tBOOKMAKER\tCONFIDENCE")
			for _, m := range matches {
				fmt.Fprintf(tw, "%.2f\t%.2f\t%s\t%s\t%s\t%s\t%s\n",
					m.Odds, m.Distance, m.Event, m.Selection, m.Sport, m.Bookmaker, m.Confidence)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Target decimal odds")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0.5, "Maximum distance from the target")
	cmd.Flags().StringSliceVar(&sports, "sport", nil, "Only include these sports")
	cmd.Flags().StringSliceVar(&bookmakers, "bookmaker", nil, "Only include these bookmakers")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
