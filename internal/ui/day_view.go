package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-suntimes/internal/backend"
	"github.com/litescript/ls-suntimes/internal/report"
	"github.com/litescript/ls-suntimes/internal/sun"
)

// DayViewModel shows the elevation curve and events of one day.
type DayViewModel struct {
	latitude  float64
	longitude float64
	width     int
	height    int

	offset  int // days from today
	date    time.Time
	backend string
	zone    *time.Location
	times   sun.SunTimes
	samples []float64
}

// NewDayViewModel creates a day view for a location.
func NewDayViewModel(latitude, longitude float64) DayViewModel {
	return DayViewModel{latitude: latitude, longitude: longitude, zone: time.UTC}
}

// SetSize updates the view dimensions.
func (m DayViewModel) SetSize(width, height int) DayViewModel {
	m.width = width
	m.height = height
	return m
}

// Update handles day navigation keys.
func (m DayViewModel) Update(msg tea.KeyMsg) DayViewModel {
	switch msg.String() {
	case "left", "h":
		m.offset--
	case "right", "l":
		m.offset++
	case "t":
		m.offset = 0
	}
	return m
}

// UpdateData recomputes the day selected relative to now.
func (m DayViewModel) UpdateData(now time.Time, b backend.Backend, zone *time.Location) DayViewModel {
	if zone == nil {
		zone = time.UTC
	}
	date := sun.LocalDay(now.In(zone)).AddDate(0, 0, m.offset)
	if date.Equal(m.date) && b.Name == m.backend && zone == m.zone && m.samples != nil {
		return m
	}
	m.date = date
	m.backend = b.Name
	m.zone = zone
	m.times = b.Times(m.latitude, m.longitude, date)
	m.samples = daySamples(m.latitude, m.longitude, date, m.curveWidth())
	return m
}

func (m DayViewModel) curveWidth() int {
	if m.width > 10 && m.width-4 < 96 {
		return m.width - 4
	}
	return 96
}

// daySamples evaluates the elevation at n evenly spaced instants of the
// UTC day starting at date.
func daySamples(latitude, longitude float64, date time.Time, n int) []float64 {
	if n <= 0 {
		return nil
	}
	step := 24 * time.Hour / time.Duration(n)
	out := make([]float64, n)
	for i := range out {
		out[i] = sun.Elevation(latitude, longitude, date.Add(time.Duration(i)*step+step/2))
	}
	return out
}

// View renders the day.
func (m DayViewModel) View() string {
	if m.samples == nil {
		return dimStyle.Render("  Waiting for first update...")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("  %s", m.date.Format("Monday, 2006-01-02"))))
	if m.offset != 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%+d days)", m.offset)))
	}
	b.WriteString("\n\n")

	r := rangeOf(m.samples)
	b.WriteString("  " + renderSparkline(m.samples, r) + "\n")
	start := m.date.In(m.zone).Format("15:04")
	end := m.date.Add(24 * time.Hour).In(m.zone).Format("15:04")
	pad := len(m.samples) - len(start) - len(end)
	if pad < 1 {
		pad = 1
	}
	b.WriteString("  " + dimStyle.Render(start+strings.Repeat(" ", pad)+end) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  elevation %.1f° to %.1f°", r.minElev, r.maxElev)) + "\n\n")

	for _, ev := range sun.Events() {
		value := dimStyle.Render(report.NotHappening)
		if t, ok := m.times.At(ev); ok {
			value = rowStyle.Render(t.In(m.zone).Format("2006-01-02 15:04:05"))
		}
		b.WriteString(fmt.Sprintf("  %-18s %s\n", ev.Label(), value))
	}
	if d, ok := m.times.DayLength(); ok {
		b.WriteString(fmt.Sprintf("\n  %-18s %s\n", "Day length", valueStyle.Render(report.FormatDuration(d))))
	}
	return b.String()
}
