package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rustyeddy/tradedash/analytics"
	"github.com/rustyeddy/tradedash/report"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		f      analytics.Filter
		format string
		daily  bool
		title  string
		notes  []string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show performance metrics for a selection of trades",
		Long: `Compute win rate, profit factor, average R:R and net P&L for the trades
in a date range, with breakdowns by time of day, weekday and instrument.

Formats:
  text - aligned tables (default)
  json - the full dashboard as JSON
  org  - an Org-mode review entry

Examples:
  tradedash stats
  tradedash stats --range last-3-months --instrument NQ!
  tradedash stats --start 2024-01-01 --end 2024-03-31 --format org
  tradedash stats -f org --title "Week 12" --note "stopped trading after 10:30"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades, err := a.listTrades()
			if err != nil {
				return err
			}

			sel, err := a.effectiveFilter(f)
			if err != nil {
				return err
			}
			d, err := analytics.Compute(trades, sel, a.now())
			if err != nil {
				return err
			}
			a.log.Debug().Int("trades", len(trades)).Int("filtered", d.Filtered).Msg("Computed dashboard")

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			case "org":
				return report.WriteReviewOrg(out, report.Review{
					Title:     title,
					Created:   a.now(),
					Filter:    sel,
					Dashboard: d,
					Notes:     notes,
				})
			case "text", "":
				if err := report.PrintDashboard(out, d); err != nil {
					return err
				}
				if daily {
					fmt.Fprintln(out)
					return report.PrintDaily(out, d.Daily)
				}
				return nil
			}
			return fmt.Errorf("unknown format %q (text, json, org)", format)
		},
	}

	addFilterFlags(cmd, &f)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or org")
	cmd.Flags().BoolVar(&daily, "daily", false, "include the daily P&L curve (text format)")
	cmd.Flags().StringVar(&title, "title", "", "review title (org format)")
	cmd.Flags().StringArrayVar(&notes, "note", nil, "observation for the review, repeatable (org format)")
	return cmd
}
