package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var csvHeader = []string{"id", "date", "time", "side", "instrument", "result", "risk_reward", "profit_loss", "notes"}

// WriteCSV writes trades with a header row. An absent P&L is an empty cell.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range trades {
		pl := ""
		if t.ProfitLoss != nil {
			pl = f(*t.ProfitLoss)
		}
		if err := cw.Write([]string{
			t.ID,
			t.Date,
			t.Time,
			string(t.Side),
			t.Instrument,
			string(t.Result),
			f(t.RiskReward),
			pl,
			t.Notes,
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses trades written by WriteCSV, or any CSV carrying the same
// header names in any column order. Each row goes through NewTrade, so rows
// without an id get a fresh one and p is applied.
//
// Spreadsheet exports are often UTF-16 or carry a UTF-8 BOM; a leading BOM
// selects the decoding, otherwise the input is read as UTF-8.
func ReadCSV(r io.Reader, p Policy) ([]Trade, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []Trade{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"date", "time", "side", "instrument", "result", "risk_reward"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	out := []Trade{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		t := Trade{
			ID:         get("id"),
			Date:       get("date"),
			Time:       get("time"),
			Side:       Side(get("side")),
			Instrument: get("instrument"),
			Result:     Result(get("result")),
			Notes:      get("notes"),
		}
		if t.RiskReward, err = strconv.ParseFloat(get("risk_reward"), 64); err != nil {
			return nil, fmt.Errorf("line %d: %w: risk_reward %q", line, ErrInvalidTrade, get("risk_reward"))
		}
		if s := get("profit_loss"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: profit_loss %q", line, ErrInvalidTrade, s)
			}
			t.ProfitLoss = &v
		}

		t, err = NewTrade(t, p)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
