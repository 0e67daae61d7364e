package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-suntimes/internal/report"
	"github.com/litescript/ls-suntimes/internal/state"
	"github.com/litescript/ls-suntimes/internal/sun"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
)

// phaseColors tints the phase label.
var phaseColors = map[sun.Phase]lipgloss.Color{
	sun.Night:                "57",
	sun.AstronomicalTwilight: "63",
	sun.NauticalTwilight:     "69",
	sun.CivilTwilight:        "208",
	sun.Day:                  "226",
}

// DashboardModel is the live "now" view.
type DashboardModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	zone     *time.Location
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel() DashboardModel {
	return DashboardModel{zone: time.UTC}
}

// SetSize updates the dashboard dimensions.
func (m DashboardModel) SetSize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the dashboard with a new snapshot.
func (m DashboardModel) UpdateData(snapshot state.Snapshot, zone *time.Location) DashboardModel {
	m.snapshot = snapshot
	if zone != nil {
		m.zone = zone
	}
	return m
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.snapshot.Updated.IsZero() {
		return dimStyle.Render("  Waiting for first update...")
	}

	var b strings.Builder
	b.WriteString(m.renderPosition())
	b.WriteString("\n")
	b.WriteString(m.renderHistory())
	b.WriteString("\n\n")

	left := m.renderToday()
	right := m.renderEvents()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
	return b.String()
}

func (m DashboardModel) renderPosition() string {
	snap := m.snapshot
	phase := lipgloss.NewStyle().Bold(true).Foreground(phaseColors[snap.Phase]).
		Render(strings.ReplaceAll(snap.Phase.String(), "_", " "))

	var b strings.Builder
	b.WriteString(titleStyle.Render("  Sun now"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s   %s %s   %s %s\n",
		dimStyle.Render("elevation"), valueStyle.Render(fmt.Sprintf("%6.2f°", snap.Position.Elevation)),
		dimStyle.Render("azimuth"), valueStyle.Render(fmt.Sprintf("%6.2f°", snap.Position.Azimuth)),
		dimStyle.Render("phase"), phase,
	)
	b.WriteString("  " + m.renderNext())
	return b.String()
}

// renderNext shows the next event with a countdown.
func (m DashboardModel) renderNext() string {
	next := m.snapshot.Next
	if next == nil {
		return dimStyle.Render("no twilight or sunrise event within two days")
	}
	until := next.Time.Sub(m.snapshot.Updated)
	return dimStyle.Render("next ") +
		valueStyle.Render(next.Event.Label()) +
		dimStyle.Render(fmt.Sprintf(" in %s at %s", formatCountdown(until), next.Time.In(m.zone).Format("15:04:05")))
}

func (m DashboardModel) renderHistory() string {
	samples := make([]float64, len(m.snapshot.History))
	for i, s := range m.snapshot.History {
		samples[i] = s.Elevation
	}
	width := SparklineWidth
	if m.width > 20 && m.width-20 < width {
		width = m.width - 20
	}
	if len(samples) < width {
		width = len(samples)
	}
	line := renderSparkline(resample(samples, width), rangeOf(samples))
	return "  " + dimStyle.Render("recent ") + line
}

func (m DashboardModel) renderToday() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-18s %-10s", "Today", "Time")))
	b.WriteString("\n")
	for _, ev := range sun.Events() {
		value := dimStyle.Render(report.NotHappening)
		if t, ok := m.snapshot.Today.At(ev); ok {
			value = rowStyle.Render(t.In(m.zone).Format("15:04:05"))
		}
		b.WriteString(fmt.Sprintf(" %-18s %s\n", ev.Label(), value))
	}
	return b.String()
}

func (m DashboardModel) renderEvents() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-14s %-10s", "Phase changes", "Time")))
	b.WriteString("\n")

	events := m.snapshot.Events
	if len(events) == 0 {
		b.WriteString(dimStyle.Render(" none yet"))
		return b.String()
	}
	// Newest first, limited to the visible height
	limit := 10
	if m.height > 0 && m.height-14 < limit {
		limit = max(m.height-14, 1)
	}
	for i := len(events) - 1; i >= 0 && len(events)-i <= limit; i-- {
		e := events[i]
		b.WriteString(fmt.Sprintf(" %-14s %s\n", e.Type, e.Timestamp.In(m.zone).Format("15:04:05")))
	}
	return b.String()
}

// formatCountdown renders d as "3h12m" or "45s".
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
