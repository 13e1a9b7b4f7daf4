package analytics

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/rustyeddy/tradedash/journal"
	"github.com/shopspring/decimal"
)

// Factor is a ratio that may be infinite. It never holds NaN.
type Factor float64

// Infinite is the profit factor of a record set with R won and none lost.
var Infinite = Factor(math.Inf(1))

func (f Factor) IsInf() bool {
	return math.IsInf(float64(f), 1)
}

func (f Factor) String() string {
	if f.IsInf() {
		return "∞"
	}
	return strconv.FormatFloat(float64(f), 'f', 2, 64)
}

// MarshalJSON encodes the infinite sentinel as the string "Infinity" since
// JSON has no literal for it.
func (f Factor) MarshalJSON() ([]byte, error) {
	if f.IsInf() {
		return []byte(`"Infinity"`), nil
	}
	return json.Marshal(float64(f))
}

func (f *Factor) UnmarshalJSON(b []byte) error {
	if string(b) == `"Infinity"` {
		*f = Infinite
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Factor(v)
	return nil
}

// Metrics is the scalar summary of a filtered trade set.
type Metrics struct {
	Total        int     `json:"total"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"winRate"`
	TotalWinRR   float64 `json:"totalWinRR"`
	TotalLossRR  float64 `json:"totalLossRR"`
	ProfitFactor Factor  `json:"profitFactor"`
	AvgRR        float64 `json:"avgRR"`
	NetPnL       float64 `json:"netPnL"`
}

// round rounds half away from zero to the given number of decimals.
// Non-finite values pass through unchanged.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// saturate pins an overflowed sum to the largest finite value of its sign.
func saturate(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}

// pct is wins/n as a percentage, 0 for an empty set.
func pct(wins, n int, places int32) float64 {
	if n == 0 {
		return 0
	}
	return round(float64(wins)/float64(n)*100, places)
}

// Summarize reduces a filtered trade set to its Metrics.
//
// R sums that overflow float64 saturate. The ratios are then taken from the
// per-trade means, which stay finite.
func Summarize(trades []journal.Trade) Metrics {
	m := Metrics{Total: len(trades)}
	if m.Total == 0 {
		return m
	}
	n := float64(m.Total)

	var sumRR, winRR, lossRR float64
	var meanRR, meanWin, meanLoss float64
	for _, t := range trades {
		switch t.Result {
		case journal.Win:
			m.Wins++
			winRR += t.RiskReward
			meanWin += t.RiskReward / n
		case journal.Loss:
			m.Losses++
			lossRR += t.RiskReward
			meanLoss += t.RiskReward / n
		}
		sumRR += t.RiskReward
		meanRR += t.RiskReward / n
		m.NetPnL += t.PnL()
	}
	lossRR, meanLoss = math.Abs(lossRR), math.Abs(meanLoss)

	m.WinRate = pct(m.Wins, m.Total, 2)

	ratio := winRR / lossRR
	if math.IsInf(winRR, 0) || math.IsInf(lossRR, 0) {
		ratio = meanWin / meanLoss
	}
	switch {
	case lossRR > 0 && math.IsInf(ratio, 1):
		m.ProfitFactor = Infinite
	case lossRR > 0:
		m.ProfitFactor = Factor(round(ratio, 2))
	case winRR > 0:
		m.ProfitFactor = Infinite
	}
	// Wins carrying negative R can drag the ratio below zero.
	if m.ProfitFactor < 0 || math.IsNaN(float64(m.ProfitFactor)) {
		m.ProfitFactor = 0
	}

	avg := sumRR / n
	if math.IsInf(avg, 0) {
		avg = meanRR
	}
	m.AvgRR = round(avg, 2)

	m.TotalWinRR = saturate(winRR)
	m.TotalLossRR = saturate(lossRR)
	m.NetPnL = saturate(m.NetPnL)
	return m
}

// MetricsDisplay holds the fixed-point strings a dashboard shows.
type MetricsDisplay struct {
	WinRate      string `json:"winRate"`
	ProfitFactor string `json:"profitFactor"`
	AvgRR        string `json:"avgRR"`
	NetPnL       string `json:"netPnL"`
}

func (m Metrics) Display() MetricsDisplay {
	return MetricsDisplay{
		WinRate:      strconv.FormatFloat(m.WinRate, 'f', 2, 64),
		ProfitFactor: m.ProfitFactor.String(),
		AvgRR:        strconv.FormatFloat(m.AvgRR, 'f', 2, 64),
		NetPnL:       strconv.FormatFloat(m.NetPnL, 'f', 2, 64),
	}
}
