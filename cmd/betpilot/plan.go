package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Youngjiloo-101/Betpilot/internal/models"
	"github.com/Youngjiloo-101/Betpilot/internal/planner"
)

func newPlanCmd() *cobra.Command {
	var stake, targetReturn string
	cmd := &cobra.Command{
		Use:     "plan",
		Short:   "Recommend low, medium and high risk bets for a stake",
		Example: `  betpilot plan --stake 50 --target-return 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := recommendationRequest(stake, targetReturn)
			if err != nil {
				return err
			}

			var resp *models.RecommendationResponse
			if c, ok := remote(); ok {
				defer c.Close()
				resp, err = c.Recommend(cmd.Context(), req)
			} else {
				resp, err = recommendLocally(req)
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			onTarget := make(map[int]bool, len(resp.OnTarget))
			for _, id := range resp.OnTarget {
				onTarget[id] = true
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, category := range resp.Categories {
				fmt.Fprintf(tw, "%s\n", category.Type)
				for _, o := range category.Options {
					mark := ""
					if onTarget[o.ID] {
						mark = "*"
					}
					fmt.Fprintf(tw, "  %s\t%s\t@ %s\treturn %s\tEV %s\t%s%s\n",
						o.Event, o.Selection, o.Odds.StringFixed(2), o.ExpectedReturn.StringFixed(0),
						o.ExpectedValue.StringFixed(2), o.Probability, mark)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&stake, "stake", "10", "Stake to price every option for")
	cmd.Flags().StringVar(&targetReturn, "target-return", "", "Mark options whose return reaches this amount")
	return cmd
}

func recommendationRequest(stake, targetReturn string) (models.RecommendationRequest, error) {
	var req models.RecommendationRequest
	var err error
	if req.Stake, err = decimal.NewFromString(stake); err != nil {
		return req, fmt.Errorf("invalid stake %q: %w", stake, err)
	}
	if targetReturn != "" {
		if req.TargetReturn, err = decimal.NewFromString(targetReturn); err != nil {
			return req, fmt.Errorf("invalid target return %q: %w", targetReturn, err)
		}
	}
	return req, nil
}

func recommendLocally(req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	categories, err := planner.Recommend(req.Stake)
	if err != nil {
		return nil, err
	}
	resp := &models.RecommendationResponse{
		Categories: categories,
		OnTarget:   planner.OnTarget(categories, req.TargetReturn),
	}
	return resp, nil
}

func newWeeklyCmd() *cobra.Command {
	var stake, targetPct string
	cmd := &cobra.Command{
		Use:     "weekly",
		Short:   "Spread a stake over the week toward a profit target",
		Example: `  betpilot weekly --stake 100 --target-pct 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := decimal.NewFromString(stake)
			if err != nil {
				return fmt.Errorf("invalid stake %q: %w", stake, err)
			}
			pct, err := decimal.NewFromString(targetPct)
			if err != nil {
				return fmt.Errorf("invalid target percentage %q: %w", targetPct, err)
			}

			var plan *planner.WeeklyPlan
			if c, ok := remote(); ok {
				defer c.Close()
				plan, err = c.WeeklyPlan(cmd.Context(), models.WeeklyPlanRequest{Stake: s, TargetPercentage: pct})
			} else {
				var built planner.WeeklyPlan
				built, err = planner.BuildWeeklyPlan(s, pct)
				plan = &built
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), plan)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Weekly target: $%s (%s%% of $%s)\n",
				plan.WeeklyTarget.StringFixed(2), plan.TargetPercentage.String(), plan.InitialStake.StringFixed(2))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DAY\tEVENT\tSELECTION\tODDS\tSTAKE\tRETURN\tRISK")
			for _, leg := range plan.Legs {
				fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\t$%s\t$%s\t%s\n",
					leg.Date, leg.Time, leg.Event, leg.Selection, leg.Odds.StringFixed(2),
					leg.Stake.StringFixed(2), leg.ExpectedReturn.StringFixed(2), leg.RiskBand)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Total stake $%s, expected return $%s, %s%% of target\n",
				plan.TotalStake.StringFixed(2), plan.TotalExpectedReturn.StringFixed(2), plan.Progress.StringFixed(1))
			return err
		},
	}
	cmd.Flags().StringVar(&stake, "stake", "100", "Initial stake")
	cmd.Flags().StringVar(&targetPct, "target-pct", "200", "Profit target as a percentage of the stake")
	return cmd
}
