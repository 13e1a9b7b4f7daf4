package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/tradedash/analytics"
	"github.com/rustyeddy/tradedash/journal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatPL renders a signed currency amount with thousands separators.
func formatPL(v float64) string {
	if v >= 0 {
		return printer.Sprintf("+$%.2f", v)
	}
	return printer.Sprintf("-$%.2f", -v)
}

// PrintDashboard writes the metrics and every breakdown table.
func PrintDashboard(w io.Writer, d analytics.Dashboard) error {
	m := d.Metrics
	disp := m.Display()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Range:\t%s\n", d.Range)
	fmt.Fprintf(tw, "Trades:\t%d (%d W / %d L)\n", m.Total, m.Wins, m.Losses)
	fmt.Fprintf(tw, "Win rate:\t%s%%\n", disp.WinRate)
	fmt.Fprintf(tw, "Profit factor:\t%s\n", disp.ProfitFactor)
	fmt.Fprintf(tw, "Avg R:R:\t%s\n", disp.AvgRR)
	fmt.Fprintf(tw, "Net P&L:\t%s\n", formatPL(m.NetPnL))
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, table := range []struct {
		title  string
		groups []analytics.Group
	}{
		{"TIME", d.ByTimeBucket},
		{"DAY", d.ByWeekday},
		{"INSTRUMENT", d.ByInstrument},
	} {
		fmt.Fprintln(w)
		if err := PrintGroups(w, table.title, table.groups); err != nil {
			return err
		}
	}
	return nil
}

// PrintGroups writes one breakdown as a table.
func PrintGroups(w io.Writer, title string, groups []analytics.Group) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "%s\tTRADES\tWINS\tLOSSES\tWIN%%\tP&L\t\n", title)
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f%%\t%s\t\n", g.Key, g.Count, g.Wins, g.Losses, g.WinRate, formatPL(g.PnL))
	}
	return tw.Flush()
}

// PrintTrades lists trades one per line in the order given.
func PrintTrades(w io.Writer, trades []journal.Trade) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "ID\tDATE\tTIME\tSIDE\tINSTRUMENT\tRESULT\tR:R\tP&L\n")
	for _, t := range trades {
		pl := "-"
		if t.ProfitLoss != nil {
			pl = formatPL(*t.ProfitLoss)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\n",
			t.ID, t.Date, t.Time, t.Side, t.Instrument, t.Result, t.RiskReward, pl)
	}
	return tw.Flush()
}

// PrintDaily writes the daily P&L curve, one line per day.
func PrintDaily(w io.Writer, points []analytics.DailyPoint) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "DATE\tDAY\tP&L\tCUMULATIVE\t\n")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", p.Date, p.Label, formatPL(p.PnL), formatPL(p.Cumulative))
	}
	return tw.Flush()
}

// PrintCalendar draws a month grid, Sunday first. Each traded day shows its
// net P&L; days without trades show only the day number.
func PrintCalendar(w io.Writer, index map[string]analytics.CalendarDay, year int, month time.Month) error {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1).Day()

	fmt.Fprintf(w, "%s %d\n", month, year)

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	names := make([]string, 7)
	for i, d := range analytics.Weekdays {
		names[i] = string(d)[:3]
	}
	fmt.Fprintf(tw, "%s\t\n", strings.Join(names, "\t"))

	cells := make([]string, int(first.Weekday()))
	var wins, losses int
	var net float64
	for dnum := 1; dnum <= last; dnum++ {
		key := analytics.FormatDateKey(time.Date(year, month, dnum, 0, 0, 0, 0, time.Local))
		cell := fmt.Sprintf("%d", dnum)
		if day, ok := index[key]; ok {
			cell = fmt.Sprintf("%d %s", dnum, formatPL(day.NetPnL))
			wins += day.Wins
			losses += day.Losses
			net += day.NetPnL
		}
		cells = append(cells, cell)
		if len(cells) == 7 {
			fmt.Fprintf(tw, "%s\t\n", strings.Join(cells, "\t"))
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		fmt.Fprintf(tw, "%s\t\n", strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d W / %d L  net %s\n", wins, losses, formatPL(net))
	return err
}
