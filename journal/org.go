package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradedash/id"
)

// FormatTradeOrg renders a Trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in a PROPERTIES drawer for easy search; the notes,
// if any, become the Review section.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s %s (%s)", t.Date, t.Instrument, strings.ToUpper(string(t.Result)), shortID(t.ID))

	pl := "(none)"
	if t.ProfitLoss != nil {
		pl = fmt.Sprintf("%.2f", *t.ProfitLoss)
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", t.Date))
	b.WriteString(fmt.Sprintf(":TIME: %s\n", t.Time))
	b.WriteString(fmt.Sprintf(":SIDE: %s\n", t.Side))
	b.WriteString(fmt.Sprintf(":INSTRUMENT: %s\n", t.Instrument))
	b.WriteString(fmt.Sprintf(":RESULT: %s\n", t.Result))
	b.WriteString(fmt.Sprintf(":RISK_REWARD: %.2f\n", t.RiskReward))
	b.WriteString(fmt.Sprintf(":PROFIT_LOSS: %s\n", pl))
	if created, err := id.Time(t.ID); err == nil {
		b.WriteString(fmt.Sprintf(":CREATED: [%s]\n", created.Local().Format("2006-01-02 Mon 15:04")))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n")
	if t.Notes != "" {
		for _, line := range strings.Split(t.Notes, "\n") {
			b.WriteString("- " + line + "\n")
		}
	} else {
		b.WriteString("- \n")
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
