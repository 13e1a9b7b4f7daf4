package analytics

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradedash/journal"
)

// Dashboard is everything the presentation layer draws for one snapshot of
// trades and filter.
type Dashboard struct {
	Range        DateRange              `json:"range"`
	Filtered     int                    `json:"filtered"`
	Metrics      Metrics                `json:"metrics"`
	ByTimeBucket []Group                `json:"byTimeBucket"`
	ByWeekday    []Group                `json:"byWeekday"`
	ByInstrument []Group                `json:"byInstrument"`
	Daily        []DailyPoint           `json:"daily"`
	Calendar     map[string]CalendarDay `json:"calendar"`
}

// Compute runs the whole pipeline over trades. It is pure: trades is not
// modified, nothing is cached, and the same inputs always give the same
// Dashboard. today is the caller's notion of the current date.
func Compute(trades []journal.Trade, f Filter, today time.Time) (Dashboard, error) {
	today = Midnight(today)

	r, err := ResolveRange(f.Range, today)
	if err != nil {
		return Dashboard{}, fmt.Errorf("resolve range: %w", err)
	}

	filtered := Apply(trades, r, f)

	return Dashboard{
		Range:        r,
		Filtered:     len(filtered),
		Metrics:      Summarize(filtered),
		ByTimeBucket: ByTimeBucket(filtered),
		ByWeekday:    ByWeekday(filtered),
		ByInstrument: ByInstrument(trades, filtered),
		Daily:        DailySeries(filtered, r, today),
		Calendar:     Calendar(trades),
	}, nil
}
