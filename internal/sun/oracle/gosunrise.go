package oracle

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/litescript/ls-suntimes/internal/sun"
)

// GoSunriseTimes implements sun.TimesFunc with
// github.com/nathan-osman/go-sunrise, which reports a zero time for events
// that do not happen.
//
// go-sunrise has no noon of its own. Noon is taken as the midpoint of the
// first symmetric pair of crossings that exists, or the mean solar noon
// when the sun crosses none of the thresholds.
func GoSunriseTimes(latitude, longitude float64, date time.Time) sun.SunTimes {
	y, m, d := sun.UTCDay(date).Date()

	var st sun.SunTimes
	pairs := []struct {
		elevation  float64
		dawn, dusk **time.Time
	}{
		{sun.HorizonElevation, &st.Sunrise, &st.Sunset},
		{sun.CivilElevation, &st.CivilDawn, &st.CivilDusk},
		{sun.NauticalElevation, &st.NautDawn, &st.NautDusk},
		{sun.AstronomicalElevation, &st.AstroDawn, &st.AstroDusk},
	}

	var noon time.Time
	for _, p := range pairs {
		var rise, set time.Time
		if p.elevation == sun.HorizonElevation {
			rise, set = sunrise.SunriseSunset(latitude, longitude, y, m, d)
		} else {
			rise, set = sunrise.TimeOfElevation(latitude, longitude, p.elevation, y, m, d)
		}
		if !rise.IsZero() {
			v := floorSecond(rise)
			*p.dawn = &v
		}
		if !set.IsZero() {
			v := floorSecond(set)
			*p.dusk = &v
		}
		if noon.IsZero() && !rise.IsZero() && !set.IsZero() {
			noon = rise.Add(set.Sub(rise) / 2)
		}
	}

	if noon.IsZero() {
		noon = meanSolarNoon(longitude, y, m, d)
	}
	st.Noon = floorSecond(noon)
	st.Midnight = floorSecond(noon.Add(12 * time.Hour))
	return st
}

// meanSolarNoon ignores the equation of time.
func meanSolarNoon(longitude float64, y int, m time.Month, d int) time.Time {
	offset := time.Duration(longitude / 15 * float64(time.Hour))
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Add(-offset)
}
