package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-suntimes/internal/sun"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Width(20).
			Foreground(lipgloss.Color("39"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	absentStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("244"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// eventColors tints rows by how dark the sky is at the event.
var eventColors = map[sun.Event]lipgloss.Color{
	sun.AstroDawn: "63",
	sun.NautDawn:  "69",
	sun.CivilDawn: "75",
	sun.Sunrise:   "220",
	sun.Noon:      "226",
	sun.Sunset:    "208",
	sun.CivilDusk: "75",
	sun.NautDusk:  "69",
	sun.AstroDusk: "63",
	sun.Midnight:  "57",
}

// RenderStyled returns the table of WriteTable rendered with terminal styles.
func RenderStyled(e *Export) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s", e.Location, e.Date)))
	b.WriteString("\n")

	for _, ev := range sun.Events() {
		label := labelStyle.Foreground(eventColors[ev]).Render(ev.Label())
		var value string
		if t, ok := e.Times.At(ev); ok {
			value = timeStyle.Render(t.Format(dateTimeLayout))
		} else {
			value = absentStyle.Render(NotHappening)
		}
		b.WriteString(label + value + "\n")
	}

	b.WriteString("\n")
	if e.DayLength != "" {
		b.WriteString(labelStyle.Render("Day length") + timeStyle.Render(e.DayLength))
	} else {
		b.WriteString(labelStyle.Render("Day length") + absentStyle.Render("no sunrise or no sunset"))
	}
	b.WriteString("\n" + absentStyle.Render("backend: "+e.Backend))

	return boxStyle.Render(b.String())
}

// WriteStyledTable writes RenderStyled output followed by a newline.
func WriteStyledTable(w io.Writer, e *Export) {
	fmt.Fprintln(w, RenderStyled(e))
}
