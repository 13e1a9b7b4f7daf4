package analytics

import (
	"time"

	"github.com/rustyeddy/tradedash/journal"
	"gonum.org/v1/gonum/floats"
)

// DailyPoint is one calendar day of the P&L curve.
type DailyPoint struct {
	Date       string  `json:"date"`
	Label      string  `json:"label"`
	PnL        float64 `json:"pnl"`
	Cumulative float64 `json:"cumulative"`
}

// seriesBounds picks the first and last day of the curve: the range bounds
// when set, otherwise the earliest/latest trade date, otherwise today. Both
// are clamped to today and an inverted pair collapses onto start.
func seriesBounds(trades []journal.Trade, r DateRange, today time.Time) (time.Time, time.Time) {
	var first, last *time.Time
	for _, t := range trades {
		d, ok := ParseLocalDate(t.Date)
		if !ok {
			continue
		}
		if first == nil || d.Before(*first) {
			first = &d
		}
		if last == nil || d.After(*last) {
			last = &d
		}
	}

	pick := func(bound, seen *time.Time) time.Time {
		switch {
		case bound != nil:
			return *bound
		case seen != nil:
			return *seen
		}
		return today
	}

	start, end := pick(r.Start, first), pick(r.End, last)
	if start.After(today) {
		start = today
	}
	if end.After(today) {
		end = today
	}
	if end.Before(start) {
		end = start
	}
	return start, end
}

// DailySeries walks every day of the active range, weekends and empty days
// included, and reports that day's P&L and the running total.
func DailySeries(trades []journal.Trade, r DateRange, today time.Time) []DailyPoint {
	today = Midnight(today)
	start, end := seriesBounds(trades, r, today)

	perDay := make(map[string]float64)
	for _, t := range trades {
		if d, ok := ParseLocalDate(t.Date); ok {
			perDay[FormatDateKey(d)] += t.PnL()
		}
	}

	var points []DailyPoint
	var pnl []float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := FormatDateKey(d)
		points = append(points, DailyPoint{
			Date:  key,
			Label: d.Format("Jan 2"),
			PnL:   perDay[key],
		})
		pnl = append(pnl, perDay[key])
	}

	cum := make([]float64, len(pnl))
	floats.CumSum(cum, pnl)
	for i := range points {
		points[i].Cumulative = cum[i]
	}
	return points
}
