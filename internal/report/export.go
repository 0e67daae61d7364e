// Package report renders sun times as JSON and text tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/litescript/ls-suntimes/internal/sun"
)

// NotHappening is printed in place of an absent event.
const NotHappening = "does not happen"

// Location identifies the observer.
type Location struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (l Location) String() string {
	coords := fmt.Sprintf("%.5f, %.5f", l.Latitude, l.Longitude)
	if l.Name == "" {
		return coords
	}
	return fmt.Sprintf("%s (%s)", l.Name, coords)
}

// Export is the JSON-serializable result for one location, backend and day.
type Export struct {
	Location  Location     `json:"location"`
	Backend   string       `json:"backend"`
	Date      string       `json:"date"`
	Zone      string       `json:"zone"`
	Times     sun.SunTimes `json:"times"`
	DayLength string       `json:"day_length,omitempty"`
	Absent    []sun.Event  `json:"absent,omitempty"`
}

// NewExport converts engine output to an exportable form with times shown
// in zone. date is the UTC day the times were computed for.
func NewExport(loc Location, backend string, date time.Time, st sun.SunTimes, zone *time.Location) *Export {
	if zone == nil {
		zone = time.UTC
	}
	export := &Export{
		Location: loc,
		Backend:  backend,
		Date:     sun.UTCDay(date).Format(time.DateOnly),
		Zone:     zone.String(),
		Times:    st.In(zone),
		Absent:   st.Absent(),
	}
	if d, ok := st.DayLength(); ok {
		export.DayLength = FormatDuration(d)
	}
	return export
}

// WriteJSON writes the export as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteJSONList writes several exports as one indented JSON array.
func WriteJSONList(w io.Writer, exports []*Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exports)
}

// FormatDuration renders d as "15h44m21s".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%s%dh%02dm%02ds", sign, h, m, s)
}

// formatEvent renders the time of e or NotHappening.
func formatEvent(st sun.SunTimes, e sun.Event, layout string) string {
	t, ok := st.At(e)
	if !ok {
		return NotHappening
	}
	return t.Format(layout)
}
