package sun

import "fmt"

// Phase is the illumination period the sun's elevation falls into.
type Phase int

const (
	Night Phase = iota
	AstronomicalTwilight
	NauticalTwilight
	CivilTwilight
	Day
)

var phaseNames = [...]string{
	Night:                "night",
	AstronomicalTwilight: "astronomical_twilight",
	NauticalTwilight:     "nautical_twilight",
	CivilTwilight:        "civil_twilight",
	Day:                  "day",
}

func (p Phase) String() string {
	if p < Night || p > Day {
		return "unknown"
	}
	return phaseNames[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// PhaseOf classifies an elevation in degrees. Each threshold belongs to the
// brighter phase.
func PhaseOf(elevation float64) Phase {
	switch {
	case elevation >= HorizonElevation:
		return Day
	case elevation >= CivilElevation:
		return CivilTwilight
	case elevation >= NauticalElevation:
		return NauticalTwilight
	case elevation >= AstronomicalElevation:
		return AstronomicalTwilight
	default:
		return Night
	}
}

// Transition returns the event that moves the sky from phase from to phase
// to when they are neighbors, e.g. CivilTwilight to Day is Sunrise.
func Transition(from, to Phase) (Event, bool) {
	if from < Night || from > Day || to < Night || to > Day {
		return 0, false
	}
	switch {
	case to == from+1:
		return [...]Event{AstroDawn, NautDawn, CivilDawn, Sunrise}[from], true
	case to == from-1:
		return [...]Event{AstroDusk, NautDusk, CivilDusk, Sunset}[to], true
	}
	return 0, false
}
