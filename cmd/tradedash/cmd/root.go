package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradedash/config"
	"github.com/rustyeddy/tradedash/journal"
	"github.com/rustyeddy/tradedash/logger"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand once the root has loaded
// configuration.
type app struct {
	cfgFile string
	dbPath  string

	cfg *config.Config
	log zerolog.Logger
	now func() time.Time
}

// NewRootCmd builds the complete command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{now: time.Now})
}

func newRootCmd(a *app) *cobra.Command {
	a.log = zerolog.Nop()

	root := &cobra.Command{
		Use:   "tradedash",
		Short: "Analytics for a personal trade journal",
		Long: `Tradedash keeps a local journal of discretionary trades and computes
performance analytics over it.

It provides tools for:
  - Recording, importing and exporting trades
  - Win rate, profit factor and R:R statistics over date ranges
  - Breakdowns by time of day, weekday and instrument
  - A daily P&L curve and a monthly calendar
  - A read-only JSON API for dashboards`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (YAML or JSON)")
	root.PersistentFlags().StringVarP(&a.dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")

	root.AddCommand(
		newTradeCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newStatsCmd(a),
		newCalendarCmd(a),
		newServeCmd(a),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.dbPath != "" {
		cfg.Journal.DBPath = a.dbPath
	}
	a.cfg = cfg
	a.log = logger.NewWithWriter(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	}, cmd.ErrOrStderr())
	return nil
}

func (a *app) openStore() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(a.cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	a.log.Debug().Str("db", a.cfg.Journal.DBPath).Msg("Opened journal")
	return j, nil
}

// listTrades loads a snapshot of every stored trade.
func (a *app) listTrades() ([]journal.Trade, error) {
	j, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer j.Close()

	trades, err := j.List()
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return trades, nil
}
