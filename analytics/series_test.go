package analytics

import (
	"testing"

	"github.com/rustyeddy/tradedash/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySeriesGapFill(t *testing.T) {
	t.Parallel()

	today := day(2024, 1, 31)
	points := DailySeries(sampleTrades(), DateRange{}, today)

	// 2024-01-02 through 2024-01-08
	require.Len(t, points, 7)
	assert.Equal(t, "2024-01-02", points[0].Date)
	assert.Equal(t, "Jan 2", points[0].Label)
	assert.Equal(t, "2024-01-08", points[6].Date)

	want := []float64{100, 150, 0, -75, 300, 0, -50}
	wantCum := []float64{100, 250, 250, 175, 475, 475, 425}
	for i, p := range points {
		assert.Equal(t, want[i], p.PnL, p.Date)
		assert.Equal(t, wantCum[i], p.Cumulative, p.Date)
	}
}

func TestDailySeriesUsesRangeBounds(t *testing.T) {
	t.Parallel()

	today := day(2024, 1, 31)
	r := ClosedMonth(2024, 1)
	points := DailySeries(Apply(sampleTrades(), r, Filter{}), r, today)

	require.Len(t, points, 31)
	assert.Equal(t, "2024-01-01", points[0].Date)
	assert.Equal(t, 0.0, points[0].PnL)
	assert.Equal(t, 425.0, points[30].Cumulative)
}

func TestDailySeriesClampsToToday(t *testing.T) {
	t.Parallel()

	// A closed month that runs past today stops at today.
	today := day(2024, 1, 10)
	points := DailySeries(nil, ClosedMonth(2024, 1), today)
	require.Len(t, points, 10)
	assert.Equal(t, "2024-01-10", points[9].Date)

	// A range entirely in the future collapses to a single day.
	start, end := day(2024, 2, 1), day(2024, 2, 5)
	points = DailySeries(nil, DateRange{Start: &start, End: &end}, today)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-01-10", points[0].Date)
}

func TestDailySeriesInvertedBoundsCollapse(t *testing.T) {
	t.Parallel()

	today := day(2024, 1, 31)
	start := day(2024, 1, 20)
	// no end bound and only older trades: the max trade date is before start
	points := DailySeries(sampleTrades(), DateRange{Start: &start}, today)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-01-20", points[0].Date)
}

func TestDailySeriesEmptyIsToday(t *testing.T) {
	t.Parallel()

	points := DailySeries(nil, DateRange{}, day(2024, 5, 15))
	require.Len(t, points, 1)
	assert.Equal(t, DailyPoint{Date: "2024-05-15", Label: "May 15"}, points[0])
}

func TestDailySeriesLengthAndTotal(t *testing.T) {
	t.Parallel()

	trades := append(sampleTrades(),
		trade("2024-02-29", "10:00", "NQ!", journal.Win, 1, 12.5),
		journal.Trade{Date: "bogus", Result: journal.Win, ProfitLoss: journal.Float(1000)},
	)
	today := day(2024, 3, 15)
	points := DailySeries(trades, DateRange{}, today)

	start, _ := ParseLocalDate("2024-01-02")
	end, _ := ParseLocalDate("2024-02-29")
	days := int(end.Sub(start).Hours()/24+0.5) + 1
	require.Len(t, points, days)

	sum := 0.0
	for _, p := range points {
		sum += p.PnL
	}
	assert.InDelta(t, sum, points[len(points)-1].Cumulative, 1e-9)
	assert.InDelta(t, 437.5, sum, 1e-9)
}
