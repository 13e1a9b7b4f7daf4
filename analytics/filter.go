package analytics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/tradedash/journal"
)

// All disables a filter dimension. An empty string means the same.
const All = "all"

// ErrInvalidFilter reports a bucket or weekday that names nothing.
var ErrInvalidFilter = errors.New("invalid filter")

// Filter is the dashboard's active selection.
type Filter struct {
	Range      RangeSpec `json:"range" yaml:"range"`
	TimeBucket string    `json:"timeBucket,omitempty" yaml:"time_bucket,omitempty"`
	Weekday    string    `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	Instrument string    `json:"instrument,omitempty" yaml:"instrument,omitempty"`
	Search     string    `json:"search,omitempty" yaml:"search,omitempty"`
}

func isAll(s string) bool {
	return s == "" || s == All
}

// Normalize returns f with the time bucket and weekday in canonical
// spelling. Values that could never match a trade are an error.
func (f Filter) Normalize() (Filter, error) {
	if isAll(strings.TrimSpace(f.TimeBucket)) {
		f.TimeBucket = ""
	} else {
		b, ok := ParseTimeBucket(f.TimeBucket)
		if !ok {
			return f, fmt.Errorf("%w: time bucket %q", ErrInvalidFilter, f.TimeBucket)
		}
		f.TimeBucket = string(b)
	}

	if isAll(strings.TrimSpace(f.Weekday)) {
		f.Weekday = ""
	} else {
		d, ok := ParseWeekday(f.Weekday)
		if !ok {
			return f, fmt.Errorf("%w: weekday %q", ErrInvalidFilter, f.Weekday)
		}
		f.Weekday = string(d)
	}
	return f, nil
}

// Match reports whether t passes every predicate of f within r. The checks
// run range, time bucket, weekday, instrument, then search. Trades with an
// unknown bucket or weekday fail any explicit selection of that dimension.
func (f Filter) Match(t journal.Trade, r DateRange) bool {
	if !r.ContainsKey(t.Date) {
		return false
	}
	if !isAll(f.TimeBucket) {
		b := ClassifyTimeBucket(t.Time)
		if b == BucketUnknown || string(b) != f.TimeBucket {
			return false
		}
	}
	if !isAll(f.Weekday) {
		d := ClassifyWeekday(t.Date)
		if d == WeekdayUnknown || string(d) != f.Weekday {
			return false
		}
	}
	if !isAll(f.Instrument) && t.Instrument != f.Instrument {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Instrument), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Apply returns the trades matching f within r, in their original order.
// The input slice is never modified.
func Apply(trades []journal.Trade, r DateRange, f Filter) []journal.Trade {
	out := make([]journal.Trade, 0, len(trades))
	for _, t := range trades {
		if f.Match(t, r) {
			out = append(out, t)
		}
	}
	return out
}
