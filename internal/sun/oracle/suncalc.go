// Package oracle adapts third-party sun calculators to the sun.TimesFunc
// contract so they can be swapped in for, and checked against, the built-in
// backends.
package oracle

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/litescript/ls-suntimes/internal/sun"
)

// suncalcNames maps events to the keys of suncalc.GetTimes.
var suncalcNames = map[sun.Event]suncalc.DayTimeName{
	sun.AstroDawn: "nightEnd",
	sun.NautDawn:  suncalc.NauticalDawn,
	sun.CivilDawn: "dawn",
	sun.Sunrise:   "sunrise",
	sun.Sunset:    "sunset",
	sun.CivilDusk: "dusk",
	sun.NautDusk:  suncalc.NauticalDusk,
	sun.AstroDusk: "night",
}

// SunCalcElevation returns the sun's elevation in degrees as computed by
// suncalc.
func SunCalcElevation(latitude, longitude float64, t time.Time) float64 {
	return suncalc.GetPosition(t, latitude, longitude).Altitude * 180 / math.Pi
}

// SunCalcTimes implements sun.TimesFunc with github.com/sixdouglas/suncalc.
//
// suncalc does not flag events that never happen, so presence is decided
// from its own sun positions: a dawn-side event exists when the sun is below
// the threshold at the preceding nadir and above it at noon, a dusk-side
// event likewise with the following nadir.
func SunCalcTimes(latitude, longitude float64, date time.Time) sun.SunTimes {
	day := sun.UTCDay(date)
	// suncalc picks the transit closest to the given instant; asking at UTC
	// noon keeps it inside the requested UTC day for every longitude.
	times := suncalc.GetTimes(day.Add(12*time.Hour), latitude, longitude)

	noon := times["solarNoon"].Value
	st := sun.SunTimes{
		Noon:     floorSecond(noon),
		Midnight: floorSecond(noon.Add(12 * time.Hour)),
	}

	high := SunCalcElevation(latitude, longitude, noon)
	lowBefore := SunCalcElevation(latitude, longitude, noon.Add(-12*time.Hour))
	lowAfter := SunCalcElevation(latitude, longitude, noon.Add(12*time.Hour))

	for e, name := range suncalcNames {
		elev, _ := e.Elevation()
		low := lowAfter
		if e.IsDawn() {
			low = lowBefore
		}
		if elev <= low || elev >= high {
			continue
		}
		t, ok := times[name]
		if !ok || !plausible(t.Value, noon) {
			continue
		}
		st.Set(e, floorSecond(t.Value))
	}
	return st
}

// plausible rejects values suncalc derived from a NaN hour angle.
func plausible(t, noon time.Time) bool {
	d := t.Sub(noon)
	return d > -12*time.Hour && d < 12*time.Hour
}

func floorSecond(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
