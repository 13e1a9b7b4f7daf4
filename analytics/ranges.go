package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownPreset = errors.New("unknown range preset")
	ErrInvalidDate   = errors.New("invalid date")
)

// Range presets, all resolved relative to today.
const (
	PresetMonthToDate = "month-to-date"
	PresetLast3Months = "last-3-months"
	PresetLast6Months = "last-6-months"
	PresetYearToDate  = "year-to-date"
	PresetAllTime     = "all-time"
	PresetToday       = "today"
	PresetThisWeek    = "this-week"
	PresetThisMonth   = "this-month"
	PresetLast30Days  = "last-30-days"
	PresetLastMonth   = "last-month"
	PresetThisQuarter = "this-quarter"
	PresetYTD         = "ytd"
	PresetCustom      = "custom"
)

// Presets lists every named range in menu order.
var Presets = []string{
	PresetMonthToDate, PresetLast3Months, PresetLast6Months, PresetYearToDate, PresetAllTime,
	PresetToday, PresetThisWeek, PresetThisMonth, PresetLast30Days, PresetLastMonth,
	PresetThisQuarter, PresetYTD,
}

// RangeSpec selects either a named preset or an explicit start/end pair
// (YYYY-MM-DD). Explicit dates are used when Preset is empty or "custom".
type RangeSpec struct {
	Preset string `json:"preset,omitempty" yaml:"preset,omitempty"`
	Start  string `json:"start,omitempty" yaml:"start,omitempty"`
	End    string `json:"end,omitempty" yaml:"end,omitempty"`
}

// DateRange is an inclusive interval of local dates. A nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Unbounded reports whether the range accepts every date.
func (r DateRange) Unbounded() bool {
	return r.Start == nil && r.End == nil
}

// Contains reports whether d falls inside the range, both ends inclusive.
func (r DateRange) Contains(d time.Time) bool {
	if r.Start != nil && d.Before(*r.Start) {
		return false
	}
	if r.End != nil && d.After(*r.End) {
		return false
	}
	return true
}

// ContainsKey applies Contains to a YYYY-MM-DD string. Unparsable dates are
// only accepted by a fully unbounded range.
func (r DateRange) ContainsKey(date string) bool {
	if r.Unbounded() {
		return true
	}
	d, ok := ParseLocalDate(date)
	if !ok {
		return false
	}
	return r.Contains(d)
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	out := struct {
		Start *string `json:"start"`
		End   *string `json:"end"`
	}{}
	if r.Start != nil {
		s := FormatDateKey(*r.Start)
		out.Start = &s
	}
	if r.End != nil {
		s := FormatDateKey(*r.End)
		out.End = &s
	}
	return json.Marshal(out)
}

func (r DateRange) String() string {
	key := func(t *time.Time) string {
		if t == nil {
			return "…"
		}
		return FormatDateKey(*t)
	}
	if r.Unbounded() {
		return "all time"
	}
	return key(r.Start) + " → " + key(r.End)
}

func bounded(start, end time.Time) DateRange {
	return DateRange{Start: &start, End: &end}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

// ClosedMonth is the full calendar month containing year/month. Unlike the
// presets its end is the last day of the month, not clamped to today.
func ClosedMonth(year int, month time.Month) DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return bounded(start, start.AddDate(0, 1, -1))
}

// ResolveRange turns a RangeSpec into a concrete interval relative to today.
func ResolveRange(spec RangeSpec, today time.Time) (DateRange, error) {
	today = Midnight(today)

	if spec.Preset == "" || spec.Preset == PresetCustom {
		if spec.Start == "" && spec.End == "" {
			return DateRange{}, nil
		}
		return resolveCustom(spec.Start, spec.End, today)
	}

	switch spec.Preset {
	case PresetAllTime:
		return DateRange{}, nil
	case PresetToday:
		return bounded(today, today), nil
	case PresetMonthToDate, PresetThisMonth:
		return bounded(firstOfMonth(today), today), nil
	case PresetLast3Months:
		return bounded(firstOfMonth(today).AddDate(0, -2, 0), today), nil
	case PresetLast6Months:
		return bounded(firstOfMonth(today).AddDate(0, -5, 0), today), nil
	case PresetYearToDate, PresetYTD:
		return bounded(time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.Local), today), nil
	case PresetThisWeek:
		return bounded(today.AddDate(0, 0, -int(today.Weekday())), today), nil
	case PresetLast30Days:
		return bounded(today.AddDate(0, 0, -29), today), nil
	case PresetLastMonth:
		return ClosedMonth(today.Year(), today.Month()-1), nil
	case PresetThisQuarter:
		q := (int(today.Month()) - 1) / 3
		return bounded(time.Date(today.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.Local), today), nil
	}
	return DateRange{}, fmt.Errorf("%w: %q", ErrUnknownPreset, spec.Preset)
}

// resolveCustom clamps a user-picked interval: neither end may pass today,
// and a start past the end collapses onto the end.
func resolveCustom(startS, endS string, today time.Time) (DateRange, error) {
	var r DateRange

	if startS != "" {
		start, ok := ParseLocalDate(startS)
		if !ok {
			return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidDate, startS)
		}
		if start.After(today) {
			start = today
		}
		r.Start = &start
	}
	if endS != "" {
		end, ok := ParseLocalDate(endS)
		if !ok {
			return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidDate, endS)
		}
		if end.After(today) {
			end = today
		}
		r.End = &end
	}

	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		start := *r.End
		r.Start = &start
	}
	return r, nil
}
