package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-suntimes/internal/sun"
)

const (
	ruleWidth      = 60
	dateTimeLayout = "2006-01-02 15:04:05 MST"
	clockLayout    = "15:04:05"
)

// WriteTable writes one day's events as a text table in solar-day order.
func WriteTable(w io.Writer, e *Export) {
	fmt.Fprintf(w, "Sun times for %s on %s [%s]\n", e.Location, e.Date, e.Backend)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	for _, ev := range sun.Events() {
		fmt.Fprintf(w, "%-20s %s\n", ev.Label(), formatEvent(e.Times, ev, dateTimeLayout))
	}

	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
	if e.DayLength != "" {
		fmt.Fprintf(w, "Day length: %s\n", e.DayLength)
	} else {
		fmt.Fprintln(w, "Day length: no sunrise or no sunset")
	}
}

// WriteComparison writes two results for the same location and day side by
// side.
func WriteComparison(w io.Writer, a, b *Export) {
	fmt.Fprintf(w, "Sun times for %s on %s\n", a.Location, a.Date)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth+20))
	fmt.Fprintf(w, "%-20s %-28s %-28s\n", "Event", a.Backend, b.Backend)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth+20))

	for _, ev := range sun.Events() {
		fmt.Fprintf(w, "%-20s %-28s %-28s%s\n",
			ev.Label(),
			formatEvent(a.Times, ev, dateTimeLayout),
			formatEvent(b.Times, ev, dateTimeLayout),
			difference(a.Times, b.Times, ev),
		)
	}
}

// difference annotates rows where the results disagree.
func difference(a, b sun.SunTimes, ev sun.Event) string {
	ta, okA := a.At(ev)
	tb, okB := b.At(ev)
	switch {
	case okA != okB:
		return "  !"
	case !okA:
		return ""
	}
	d := tb.Sub(ta)
	if d == 0 {
		return ""
	}
	if d > 0 {
		return "  +" + FormatDuration(d)
	}
	return "  " + FormatDuration(d)
}

// DayRow is one line of a day-range table.
type DayRow struct {
	Date  time.Time
	Times sun.SunTimes
}

// dayColumns are the events shown in a day-range table.
var dayColumns = []sun.Event{sun.CivilDawn, sun.Sunrise, sun.Noon, sun.Sunset, sun.CivilDusk}

// WriteDays writes one line per day with the main events in zone.
func WriteDays(w io.Writer, loc Location, backend string, rows []DayRow, zone *time.Location) {
	if zone == nil {
		zone = time.UTC
	}
	fmt.Fprintf(w, "Sun times for %s [%s, %s]\n", loc, backend, zone)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth+22))
	fmt.Fprintf(w, "%-10s", "Date")
	for _, ev := range dayColumns {
		fmt.Fprintf(w, " %-10s", shortLabel(ev))
	}
	fmt.Fprintf(w, " %s\n", "Day length")
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth+22))

	for _, r := range rows {
		st := r.Times.In(zone)
		fmt.Fprintf(w, "%-10s", r.Date.Format(time.DateOnly))
		for _, ev := range dayColumns {
			cell := "--"
			if t, ok := st.At(ev); ok {
				cell = t.Format(clockLayout)
			}
			fmt.Fprintf(w, " %-10s", cell)
		}
		length := "--"
		if d, ok := st.DayLength(); ok {
			length = FormatDuration(d)
		}
		fmt.Fprintf(w, " %s\n", length)
	}
}

func shortLabel(ev sun.Event) string {
	switch ev {
	case sun.CivilDawn:
		return "Dawn"
	case sun.CivilDusk:
		return "Dusk"
	}
	return ev.Label()
}
