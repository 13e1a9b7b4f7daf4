package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/tradedash/journal"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from CSV",
		Long: `Read trades from a CSV file and save them to the journal.

The header row names the columns; id, profit_loss and notes are optional.
Rows carrying an id that already exists replace the stored trade. The
configured normalization policy is applied to every row. The file is
imported in one transaction: any bad row leaves the journal untouched.

Example:
  tradedash import trades.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open csv: %w", err)
			}
			defer f.Close()

			trades, err := journal.ReadCSV(f, a.cfg.Policy())
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %d trades parsed (dry run)\n", len(trades))
				return nil
			}

			j, err := a.openStore()
			if err != nil {
				return err
			}
			defer j.Close()

			if err := j.SaveAll(trades); err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			a.log.Info().Str("file", args[0]).Int("trades", len(trades)).Msg("Imported trades")

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades from %s\n", len(trades), args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "parse and validate only")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all trades as CSV",
		Long: `Write every journal trade as CSV, in entry order.

Examples:
  tradedash export > trades.csv
  tradedash export -o backup.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades, err := a.listTrades()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := journal.WriteCSV(w, trades); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			a.log.Debug().Int("trades", len(trades)).Str("output", output).Msg("Exported trades")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
