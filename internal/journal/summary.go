package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"vj-go/internal/currency"
	"vj-go/internal/model"
)

// NoActivitySummary is the summary of a day without photos, expenses or notes.
const NoActivitySummary = "No activities recorded for this day."

const (
	summaryDateLayout = "January 2, 2006"
	clockLayout       = "15:04"
	csvHeader         = "Time,Type,Description\n"
)

// renderSummary formats a day's narrative:
//
//	Daily Summary for June 2, 2024:
//
//	- 2 photos taken
//	- 1 expense recorded ($85.00 USD)
//	- 1 note created
//
//	Timeline:
//	08:00 - Note: Arrived
//	...
func renderSummary(date time.Time, timeline []model.ActivityItem, usdTotal decimal.Decimal) string {
	if len(timeline) == 0 {
		return NoActivitySummary
	}

	counts := make(map[model.ActivityKind]int, 3)
	for _, item := range timeline {
		counts[item.Kind]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily Summary for %s:\n\n", date.Format(summaryDateLayout))
	if n := counts[model.KindPhoto]; n > 0 {
		fmt.Fprintf(&b, "- %d %s taken\n", n, plural(n, "photo"))
	}
	if n := counts[model.KindExpense]; n > 0 {
		fmt.Fprintf(&b, "- %d %s recorded ($%s %s)\n", n, plural(n, "expense"), usdTotal.StringFixed(2), currency.Base)
	}
	if n := counts[model.KindNote]; n > 0 {
		fmt.Fprintf(&b, "- %d %s created\n", n, plural(n, "note"))
	}

	b.WriteString("\nTimeline:\n")
	for _, item := range timeline {
		fmt.Fprintf(&b, "%s - %s: %s\n", item.Timestamp.Format(clockLayout), item.Kind, item.Description)
	}
	return b.String()
}

// renderCSV writes the timeline with every text field quoted.
func renderCSV(timeline []model.ActivityItem) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	for _, item := range timeline {
		fmt.Fprintf(&b, "%s,%s,%s\n",
			item.Timestamp.Format(clockLayout),
			quoteCSV(string(item.Kind)),
			quoteCSV(item.Description))
	}
	return b.String()
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
