package analytics

import (
	"github.com/rustyeddy/tradedash/journal"
)

// Group is one row of a breakdown table.
type Group struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"winRate"`
	PnL     float64 `json:"pnl"`
}

// breakdown emits one group per key, in key order, even for keys with no
// trades. Trades whose key is not listed are dropped.
func breakdown(keys []string, trades []journal.Trade, keyOf func(journal.Trade) string) []Group {
	groups := make([]Group, len(keys))
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		groups[i].Key = k
		index[k] = i
	}

	for _, t := range trades {
		i, ok := index[keyOf(t)]
		if !ok {
			continue
		}
		g := &groups[i]
		g.Count++
		switch t.Result {
		case journal.Win:
			g.Wins++
		case journal.Loss:
			g.Losses++
		}
		g.PnL += t.PnL()
	}

	for i := range groups {
		groups[i].WinRate = pct(groups[i].Wins, groups[i].Count, 1)
		groups[i].PnL = saturate(groups[i].PnL)
	}
	return groups
}

// ByTimeBucket groups trades into the five session buckets.
func ByTimeBucket(trades []journal.Trade) []Group {
	keys := make([]string, len(TimeBuckets))
	for i, b := range TimeBuckets {
		keys[i] = string(b)
	}
	return breakdown(keys, trades, func(t journal.Trade) string {
		return string(ClassifyTimeBucket(t.Time))
	})
}

// ByWeekday groups trades Monday through Friday. Weekend trades are left out
// of this view.
func ByWeekday(trades []journal.Trade) []Group {
	keys := make([]string, len(TradingWeekdays))
	for i, d := range TradingWeekdays {
		keys[i] = string(d)
	}
	return breakdown(keys, trades, func(t journal.Trade) string {
		return string(ClassifyWeekday(t.Date))
	})
}

// ByInstrument has one group for every instrument found in all, so an
// instrument filtered out of trades still shows up with zero counts.
func ByInstrument(all, trades []journal.Trade) []Group {
	return breakdown(Instruments(all), trades, func(t journal.Trade) string {
		return t.Instrument
	})
}

// Instruments returns the distinct instruments in first-seen order.
func Instruments(trades []journal.Trade) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, t := range trades {
		if t.Instrument == "" || seen[t.Instrument] {
			continue
		}
		seen[t.Instrument] = true
		out = append(out, t.Instrument)
	}
	return out
}
