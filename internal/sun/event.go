// Package sun computes the instants at which the sun crosses the named
// twilight and horizon elevations for a location and UTC day, and the sun's
// elevation at an arbitrary instant.
//
// Two interchangeable backends share one contract (see TimesFunc): a
// single-pass closed-form method (Wiki*) and a two-pass refined method
// (NOAA*). Every function in this package is pure and safe for concurrent
// use.
package sun

import (
	"errors"
	"fmt"
	"strings"

	"github.com/litescript/ls-suntimes/internal/astro"
)

// Event names one solar event of a day.
type Event int

const (
	Noon Event = iota
	Midnight
	AstroDawn
	NautDawn
	CivilDawn
	Sunrise
	Sunset
	CivilDusk
	NautDusk
	AstroDusk

	eventCount
)

// Elevation thresholds in degrees.
const (
	AstronomicalElevation = -18.0
	NauticalElevation     = -12.0
	CivilElevation        = -6.0
	// HorizonElevation includes the solar radius and mean refraction.
	HorizonElevation = -0.833
)

// ErrUnknownEvent is returned by ParseEvent.
var ErrUnknownEvent = errors.New("unknown solar event")

var eventNames = [eventCount]string{
	Noon:      "noon",
	Midnight:  "midnight",
	AstroDawn: "astro_dawn",
	NautDawn:  "naut_dawn",
	CivilDawn: "civil_dawn",
	Sunrise:   "sunrise",
	Sunset:    "sunset",
	CivilDusk: "civil_dusk",
	NautDusk:  "naut_dusk",
	AstroDusk: "astro_dusk",
}

var eventLabels = [eventCount]string{
	Noon:      "Noon",
	Midnight:  "Midnight",
	AstroDawn: "Astronomical dawn",
	NautDawn:  "Nautical dawn",
	CivilDawn: "Civil dawn",
	Sunrise:   "Sunrise",
	Sunset:    "Sunset",
	CivilDusk: "Civil dusk",
	NautDusk:  "Nautical dusk",
	AstroDusk: "Astronomical dusk",
}

// chronological is the order of events within one solar day.
var chronological = []Event{
	AstroDawn, NautDawn, CivilDawn, Sunrise,
	Noon,
	Sunset, CivilDusk, NautDusk, AstroDusk,
	Midnight,
}

// Events returns all events in their order within a solar day.
func Events() []Event {
	out := make([]Event, len(chronological))
	copy(out, chronological)
	return out
}

func (e Event) valid() bool {
	return e >= 0 && e < eventCount
}

// String returns the snake_case name used in JSON and on the command line.
func (e Event) String() string {
	if !e.valid() {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

// Label returns a human readable name.
func (e Event) Label() string {
	if !e.valid() {
		return e.String()
	}
	return eventLabels[e]
}

// MarshalText implements encoding.TextMarshaler.
func (e Event) MarshalText() ([]byte, error) {
	if !e.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEvent, int(e))
	}
	return []byte(eventNames[e]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Event) UnmarshalText(b []byte) error {
	v, err := ParseEvent(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseEvent parses an event name. Dashes and case are ignored.
func ParseEvent(s string) (Event, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range eventNames {
		if name == key {
			return Event(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, s)
}

// IsDawn reports whether e happens while the sun rises.
func (e Event) IsDawn() bool {
	return e >= AstroDawn && e <= Sunrise
}

// IsDusk reports whether e happens while the sun sets.
func (e Event) IsDusk() bool {
	return e >= Sunset && e <= AstroDusk
}

// Elevation returns the sun elevation in degrees that defines e. Noon and
// Midnight are not tied to an elevation and report false.
func (e Event) Elevation() (float64, bool) {
	switch e {
	case AstroDawn, AstroDusk:
		return AstronomicalElevation, true
	case NautDawn, NautDusk:
		return NauticalElevation, true
	case CivilDawn, CivilDusk:
		return CivilElevation, true
	case Sunrise, Sunset:
		return HorizonElevation, true
	default:
		return 0, false
	}
}

// TargetAngle returns the signed zenith-style angle for e: -(90+|elev|)
// degrees on the dawn side and +(90+|elev|) on the dusk side, so that its
// cosine is the sine of the elevation and its sign picks the side of the
// meridian.
//
// Calling it for Noon, Midnight or a value outside the enumeration is a
// programming error and panics.
func (e Event) TargetAngle() astro.Angle {
	elev, ok := e.Elevation()
	if !ok {
		panic(fmt.Sprintf("sun: %v has no target elevation", e))
	}
	return targetForElevation(elev, e.IsDawn())
}

// targetForElevation builds a target angle for an arbitrary elevation.
func targetForElevation(elevation float64, rising bool) astro.Angle {
	dusk := astro.Deg(90 - elevation)
	if rising {
		return dusk.Neg()
	}
	return dusk
}
