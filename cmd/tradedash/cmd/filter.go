package cmd

import (
	"github.com/rustyeddy/tradedash/analytics"
	"github.com/spf13/cobra"
)

// addFilterFlags binds the dashboard selection flags to f.
func addFilterFlags(cmd *cobra.Command, f *analytics.Filter) {
	cmd.Flags().StringVarP(&f.Range.Preset, "range", "r", "", "date range preset (default from config)")
	cmd.Flags().StringVar(&f.Range.Start, "start", "", "custom range start YYYY-MM-DD")
	cmd.Flags().StringVar(&f.Range.End, "end", "", "custom range end YYYY-MM-DD")
	cmd.Flags().StringVarP(&f.TimeBucket, "bucket", "b", "", "time of day bucket, e.g. 9:30-9:45 or 10:30+")
	cmd.Flags().StringVarP(&f.Weekday, "weekday", "w", "", "day of week, e.g. Monday")
	cmd.Flags().StringVarP(&f.Instrument, "instrument", "i", "", "instrument symbol")
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "instrument substring, case-insensitive")
}

// effectiveFilter fills in the configured default range and normalizes the
// bucket and weekday spellings.
func (a *app) effectiveFilter(f analytics.Filter) (analytics.Filter, error) {
	if f.Range == (analytics.RangeSpec{}) {
		f.Range.Preset = a.cfg.Dashboard.DefaultRange
	}
	return f.Normalize()
}
