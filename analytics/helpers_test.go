package analytics

import (
	"time"

	"github.com/rustyeddy/tradedash/journal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func trade(date, hhmm, instrument string, result journal.Result, rr, pl float64) journal.Trade {
	return journal.Trade{
		ID:         date + "T" + hhmm + "-" + instrument,
		Date:       date,
		Time:       hhmm,
		Side:       journal.Long,
		Instrument: instrument,
		Result:     result,
		RiskReward: rr,
		ProfitLoss: journal.Float(pl),
	}
}

// sampleTrades spans two instruments and several weekdays in January 2024.
// 2024-01-02 is a Tuesday.
func sampleTrades() []journal.Trade {
	return []journal.Trade{
		trade("2024-01-02", "09:35", "NQ!", journal.Win, 2, 200),
		trade("2024-01-02", "09:50", "NQ!", journal.Loss, -1, -100),
		trade("2024-01-03", "10:05", "ES!", journal.Win, 1.5, 150),
		trade("2024-01-05", "10:20", "ES!", journal.Loss, -1, -75),
		trade("2024-01-06", "11:00", "NQ!", journal.Win, 3, 300),
		trade("2024-01-08", "09:10", "CL!", journal.Loss, -1, -50),
	}
}
