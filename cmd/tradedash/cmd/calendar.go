package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradedash/analytics"
	"github.com/rustyeddy/tradedash/report"
	"github.com/spf13/cobra"
)

func newCalendarCmd(a *app) *cobra.Command {
	var month, day string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show daily results on a month grid",
		Long: `Draw a month calendar with each trading day's net P&L. Filters never
apply to the calendar; it always covers every trade.

Examples:
  tradedash calendar
  tradedash calendar --month 2024-03
  tradedash calendar --day 2024-03-14`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades, err := a.listTrades()
			if err != nil {
				return err
			}
			index := analytics.Calendar(trades)
			out := cmd.OutOrStdout()

			if day != "" {
				d, ok := analytics.ParseLocalDate(day)
				if !ok {
					return fmt.Errorf("day %q: want YYYY-MM-DD", day)
				}
				key := analytics.FormatDateKey(d)
				cd, found := index[key]
				if !found {
					fmt.Fprintf(out, "No trades on %s\n", key)
					return nil
				}
				fmt.Fprint(out, report.FormatDayOrg(cd))
				return nil
			}

			m := a.now()
			if month != "" {
				if m, err = time.ParseInLocation("2006-01", month, time.Local); err != nil {
					return fmt.Errorf("month %q: want YYYY-MM", month)
				}
			}
			return report.PrintCalendar(out, index, m.Year(), m.Month())
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month YYYY-MM (default current month)")
	cmd.Flags().StringVar(&day, "day", "", "show one day's trades as Org-mode")
	return cmd
}
