package sun

import (
	"time"
)

// SunTimes holds the events of one UTC day in UTC. Noon and Midnight are
// always set; a nil field means the elevation is not reached that day
// (polar day or night).
type SunTimes struct {
	Noon     time.Time `json:"noon"`
	Midnight time.Time `json:"midnight"`

	AstroDawn *time.Time `json:"astro_dawn"`
	NautDawn  *time.Time `json:"naut_dawn"`
	CivilDawn *time.Time `json:"civil_dawn"`
	Sunrise   *time.Time `json:"sunrise"`
	Sunset    *time.Time `json:"sunset"`
	CivilDusk *time.Time `json:"civil_dusk"`
	NautDusk  *time.Time `json:"naut_dusk"`
	AstroDusk *time.Time `json:"astro_dusk"`
}

// TimesFunc is the contract shared by every backend: all events for the UTC
// day containing date at latitude/longitude in degrees (north and east
// positive).
type TimesFunc func(latitude, longitude float64, date time.Time) SunTimes

// TimeOfFunc solves a single event; false means it does not happen.
type TimeOfFunc func(latitude, longitude float64, date time.Time, e Event) (time.Time, bool)

// Occurrence is an event paired with the instant it happens.
type Occurrence struct {
	Event Event     `json:"event"`
	Time  time.Time `json:"time"`
}

func (st *SunTimes) field(e Event) **time.Time {
	switch e {
	case AstroDawn:
		return &st.AstroDawn
	case NautDawn:
		return &st.NautDawn
	case CivilDawn:
		return &st.CivilDawn
	case Sunrise:
		return &st.Sunrise
	case Sunset:
		return &st.Sunset
	case CivilDusk:
		return &st.CivilDusk
	case NautDusk:
		return &st.NautDusk
	case AstroDusk:
		return &st.AstroDusk
	}
	return nil
}

// At returns the time of e and whether it happens.
func (st SunTimes) At(e Event) (time.Time, bool) {
	switch e {
	case Noon:
		return st.Noon, true
	case Midnight:
		return st.Midnight, true
	}
	p := st.field(e)
	if p == nil || *p == nil {
		return time.Time{}, false
	}
	return **p, true
}

// Set stores t as the time of e. Unknown events are ignored.
func (st *SunTimes) Set(e Event, t time.Time) {
	st.set(e, t, true)
}

// set stores t for e, or marks e absent when ok is false.
func (st *SunTimes) set(e Event, t time.Time, ok bool) {
	switch e {
	case Noon:
		st.Noon = t
		return
	case Midnight:
		st.Midnight = t
		return
	}
	p := st.field(e)
	if p == nil {
		return
	}
	if !ok {
		*p = nil
		return
	}
	v := t
	*p = &v
}

// Ordered lists the events that happen, in solar-day order.
func (st SunTimes) Ordered() []Occurrence {
	out := make([]Occurrence, 0, len(chronological))
	for _, e := range chronological {
		if t, ok := st.At(e); ok {
			out = append(out, Occurrence{Event: e, Time: t})
		}
	}
	return out
}

// Absent lists the events that do not happen, in solar-day order.
func (st SunTimes) Absent() []Event {
	var out []Event
	for _, e := range chronological {
		if _, ok := st.At(e); !ok {
			out = append(out, e)
		}
	}
	return out
}

// In returns a copy with every time converted to loc.
func (st SunTimes) In(loc *time.Location) SunTimes {
	var out SunTimes
	for _, e := range chronological {
		t, ok := st.At(e)
		out.set(e, t.In(loc), ok)
	}
	return out
}

// DayLength returns the time between sunrise and sunset, or false when
// either is absent.
func (st SunTimes) DayLength() (time.Duration, bool) {
	if st.Sunrise == nil || st.Sunset == nil {
		return 0, false
	}
	return st.Sunset.Sub(*st.Sunrise), true
}

// collect builds SunTimes by solving every event with timeOf.
func collect(timeOf TimeOfFunc, latitude, longitude float64, date time.Time) SunTimes {
	var st SunTimes
	for _, e := range chronological {
		t, ok := timeOf(latitude, longitude, date, e)
		st.set(e, t, ok)
	}
	return st
}
