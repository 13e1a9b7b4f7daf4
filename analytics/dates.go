package analytics

import (
	"strconv"
	"strings"
	"time"
)

const dateKeyLayout = "2006-01-02"

// ParseLocalDate builds a local-calendar date from a YYYY-MM-DD string. The
// year, month and day are used verbatim as wall-clock components; no timezone
// conversion happens. It reports false for empty or malformed input.
func ParseLocalDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	var ymd [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}
		ymd[i] = n
	}
	return time.Date(ymd[0], time.Month(ymd[1]), ymd[2], 0, 0, 0, 0, time.Local), true
}

// FormatDateKey renders d as YYYY-MM-DD.
func FormatDateKey(d time.Time) string {
	return d.Format(dateKeyLayout)
}

// Midnight truncates t to the start of its calendar day, keeping t's wall
// clock date but expressing it in the local zone like ParseLocalDate does.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// TimeBucket is a fixed slice of the trading session.
type TimeBucket string

const (
	Bucket0930    TimeBucket = "9:30-9:45"
	Bucket0945    TimeBucket = "9:45-10:00"
	Bucket1000    TimeBucket = "10:00-10:15"
	Bucket1015    TimeBucket = "10:15-10:30"
	Bucket1030    TimeBucket = "10:30+"
	BucketUnknown TimeBucket = "unknown"
)

// TimeBuckets lists the session buckets in display order.
var TimeBuckets = []TimeBucket{Bucket0930, Bucket0945, Bucket1000, Bucket1015, Bucket1030}

// ParseTimeBucket reports whether s names one of TimeBuckets. Surrounding
// space is ignored and "10:30" alone means 10:30+, since an unescaped plus
// in a query string decodes to a space.
func ParseTimeBucket(s string) (TimeBucket, bool) {
	s = strings.TrimSpace(s)
	if s == "10:30" {
		return Bucket1030, true
	}
	for _, b := range TimeBuckets {
		if string(b) == s {
			return b, true
		}
	}
	return "", false
}

// ClassifyTimeBucket maps an HH:MM entry time to its bucket.
//
// The checks are a chain of lower bounds, so anything before 9:30 lands in
// the 10:30+ bucket too. Empty or unparsable times are BucketUnknown.
func ClassifyTimeBucket(hhmm string) TimeBucket {
	mins, ok := minutesOfDay(hhmm)
	if !ok {
		return BucketUnknown
	}

	switch {
	case mins >= 10*60+30:
		return Bucket1030
	case mins >= 10*60+15:
		return Bucket1015
	case mins >= 10*60:
		return Bucket1000
	case mins >= 9*60+45:
		return Bucket0945
	case mins >= 9*60+30:
		return Bucket0930
	}
	return Bucket1030
}

func minutesOfDay(hhmm string) (int, bool) {
	h, m, found := strings.Cut(hhmm, ":")
	if !found {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	mins, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return hours*60 + mins, true
}

// Weekday is a day name, or WeekdayUnknown for an unparsable date.
type Weekday string

const WeekdayUnknown Weekday = "Unknown"

// Weekdays lists Sunday..Saturday.
var Weekdays = []Weekday{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// TradingWeekdays is the Monday..Friday subset shown in the weekday breakdown.
var TradingWeekdays = Weekdays[1:6]

// ParseWeekday matches a day name case-insensitively.
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Weekdays {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// ClassifyWeekday returns the local day of week of a YYYY-MM-DD date.
func ClassifyWeekday(date string) Weekday {
	d, ok := ParseLocalDate(date)
	if !ok {
		return WeekdayUnknown
	}
	return Weekdays[d.Weekday()]
}
