package report

import (
	"bytes"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/tradedash/analytics"
	"github.com/rustyeddy/tradedash/journal"
)

// Review is the input to the Org-mode period review.
type Review struct {
	Title     string
	Created   time.Time
	Filter    analytics.Filter
	Dashboard analytics.Dashboard
	Notes     []string
}

var reviewFuncs = template.FuncMap{
	"pl": formatPL,
	"dateOr": func(t *time.Time, fallback string) string {
		if t == nil {
			return fallback
		}
		return analytics.FormatDateKey(*t)
	},
	"orAll": func(s string) string {
		if s == "" {
			return analytics.All
		}
		return s
	},
}

var reviewTmpl = template.Must(template.New("review").Funcs(reviewFuncs).Parse(ReviewOrgTemplate))

// WriteReviewOrg renders r as an Org-mode review block.
func WriteReviewOrg(w io.Writer, r Review) error {
	buf := new(bytes.Buffer)
	if err := reviewTmpl.Execute(buf, r); err != nil {
		return fmt.Errorf("render review: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// FormatDayOrg renders one calendar day and its trades for a daily journal entry.
func FormatDayOrg(day analytics.CalendarDay) string {
	heading := fmt.Sprintf("* %s  %dW/%dL  %s\n\n", day.Date, day.Wins, day.Losses, formatPL(day.NetPnL))
	return heading + journal.FormatTradesOrg(day.Trades)
}

const ReviewOrgTemplate = `* REVIEW: {{if .Title}}{{.Title}}{{else}}(untitled){{end}}
:PROPERTIES:
:RANGE_START: {{dateOr .Dashboard.Range.Start "(open)"}}
:RANGE_END:   {{dateOr .Dashboard.Range.End "(open)"}}
:TIME_BUCKET: {{orAll .Filter.TimeBucket}}
:WEEKDAY:     {{orAll .Filter.Weekday}}
:INSTRUMENT:  {{orAll .Filter.Instrument}}
:TRADES:      {{.Dashboard.Metrics.Total}}
:WINS:        {{.Dashboard.Metrics.Wins}}
:LOSSES:      {{.Dashboard.Metrics.Losses}}
:WIN_RATE:    {{.Dashboard.Metrics.Display.WinRate}}
:PROFIT_FAC:  {{.Dashboard.Metrics.ProfitFactor}}
:AVG_RR:      {{.Dashboard.Metrics.Display.AvgRR}}
:NET_PL:      {{printf "%.2f" .Dashboard.Metrics.NetPnL}}
:CREATED:     [{{.Created.Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:       *{{pl .Dashboard.Metrics.NetPnL}}*
- Win Rate:      *{{.Dashboard.Metrics.Display.WinRate}}%*
- Profit Factor: *{{.Dashboard.Metrics.ProfitFactor}}*
- Avg R:R:       *{{.Dashboard.Metrics.Display.AvgRR}}*

** By Time of Day
| Bucket | Trades | Win % | P&L |
|--------+--------+-------+-----|
{{- range .Dashboard.ByTimeBucket }}
| {{.Key}} | {{.Count}} | {{printf "%.1f" .WinRate}} | {{pl .PnL}} |
{{- end }}

** By Weekday
| Day | Trades | Win % | P&L |
|-----+--------+-------+-----|
{{- range .Dashboard.ByWeekday }}
| {{.Key}} | {{.Count}} | {{printf "%.1f" .WinRate}} | {{pl .PnL}} |
{{- end }}

** By Instrument
| Instrument | Trades | Win % | P&L |
|------------+--------+-------+-----|
{{- range .Dashboard.ByInstrument }}
| {{.Key}} | {{.Count}} | {{printf "%.1f" .WinRate}} | {{pl .PnL}} |
{{- end }}

{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
