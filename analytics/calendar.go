package analytics

import (
	"sort"
	"time"

	"github.com/rustyeddy/tradedash/journal"
)

// CalendarDay aggregates every trade taken on one date.
type CalendarDay struct {
	Date   string          `json:"date"`
	Wins   int             `json:"wins"`
	Losses int             `json:"losses"`
	NetPnL float64         `json:"netPnl"`
	Trades []journal.Trade `json:"trades"`
}

// Calendar indexes the full trade history by date. It ignores every filter
// so the heatmap always shows what really happened each day. Days without
// trades, and trades without a parsable date, are absent.
func Calendar(trades []journal.Trade) map[string]CalendarDay {
	index := make(map[string]CalendarDay)
	for _, t := range trades {
		d, ok := ParseLocalDate(t.Date)
		if !ok {
			continue
		}
		key := FormatDateKey(d)

		day := index[key]
		day.Date = key
		switch t.Result {
		case journal.Win:
			day.Wins++
		case journal.Loss:
			day.Losses++
		}
		day.NetPnL += t.PnL()
		day.Trades = append(day.Trades, t)
		index[key] = day
	}
	return index
}

// CalendarMonth returns the indexed days that fall inside year/month,
// sorted by date.
func CalendarMonth(index map[string]CalendarDay, year int, month time.Month) []CalendarDay {
	r := ClosedMonth(year, month)

	var days []CalendarDay
	for key, day := range index {
		if r.ContainsKey(key) {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}
