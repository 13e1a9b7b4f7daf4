package cmd

import (
	"fmt"
	"strconv"

	"github.com/rustyeddy/tradedash/analytics"
	"github.com/rustyeddy/tradedash/journal"
	"github.com/rustyeddy/tradedash/report"
	"github.com/spf13/cobra"
)

func newTradeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Record and inspect journal trades",
		Long: `Record, list, show and remove trades in the SQLite journal.

Subcommands:
  add   - Record a new trade
  list  - List trades matching a filter
  show  - Show one trade as an Org-mode entry
  rm    - Delete a trade

Examples:
  tradedash trade add --time 09:41 --side long --instrument NQ! --result win --rr 2 --pl 400
  tradedash trade list --range last-30-days
  tradedash trade show 01HQ3Z9V7W8K2M4N6P8R0T2V4X`,
	}

	cmd.AddCommand(
		newTradeAddCmd(a),
		newTradeListCmd(a),
		newTradeShowCmd(a),
		newTradeRmCmd(a),
	)
	return cmd
}

func newTradeAddCmd(a *app) *cobra.Command {
	var (
		t  journal.Trade
		pl string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if t.Date == "" {
				t.Date = analytics.FormatDateKey(a.now())
			}
			if pl != "" {
				v, err := strconv.ParseFloat(pl, 64)
				if err != nil {
					return fmt.Errorf("profit/loss %q: %w", pl, err)
				}
				t.ProfitLoss = &v
			}

			trade, err := journal.NewTrade(t, a.cfg.Policy())
			if err != nil {
				return err
			}

			j, err := a.openStore()
			if err != nil {
				return err
			}
			defer j.Close()

			if err := j.Save(trade); err != nil {
				return fmt.Errorf("save trade: %w", err)
			}
			a.log.Info().Str("id", trade.ID).Str("instrument", trade.Instrument).Msg("Trade recorded")

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added trade %s\n", trade.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&t.Date, "date", "", "trade date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&t.Time, "time", "", "entry time HH:MM (required)")
	cmd.Flags().StringVar((*string)(&t.Side), "side", "", "long or short (required)")
	cmd.Flags().StringVar(&t.Instrument, "instrument", "", "instrument symbol (required)")
	cmd.Flags().StringVar((*string)(&t.Result), "result", "", "win or loss (required)")
	cmd.Flags().Float64Var(&t.RiskReward, "rr", 0, "realized risk:reward multiple")
	cmd.Flags().StringVar(&pl, "pl", "", "profit/loss in account currency")
	cmd.Flags().StringVar(&t.Notes, "notes", "", "free-form notes")
	for _, name := range []string{"time", "side", "instrument", "result"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newTradeListCmd(a *app) *cobra.Command {
	var f analytics.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades matching a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades, err := a.listTrades()
			if err != nil {
				return err
			}

			sel, err := a.effectiveFilter(f)
			if err != nil {
				return err
			}
			r, err := analytics.ResolveRange(sel.Range, a.now())
			if err != nil {
				return err
			}
			return report.PrintTrades(cmd.OutOrStdout(), analytics.Apply(trades, r, sel))
		},
	}

	addFilterFlags(cmd, &f)
	return cmd
}

func newTradeShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show one trade as an Org-mode entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := a.openStore()
			if err != nil {
				return err
			}
			defer j.Close()

			t, err := j.Get(args[0])
			if err != nil {
				return fmt.Errorf("get trade: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
			return nil
		},
	}
}

func newTradeRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <trade-id>...",
		Aliases: []string{"delete"},
		Short:   "Delete trades",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := a.openStore()
			if err != nil {
				return err
			}
			defer j.Close()

			for _, id := range args {
				if err := j.Delete(id); err != nil {
					return fmt.Errorf("delete trade: %w", err)
				}
				a.log.Info().Str("id", id).Msg("Trade deleted")
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %s\n", id)
			}
			return nil
		},
	}
}
