package sun

import (
	"math"
	"time"

	"github.com/litescript/ls-suntimes/internal/astro"
)

// Two-pass backend after the NOAA solar calculator spreadsheet. Solar noon
// is found by evaluating the equation of time twice, and each elevation
// crossing by evaluating declination and equation of time again at the first
// estimate of the crossing. It stays reliable close to the poles.

// noonOffset returns the time of solar noon as days since day (a UTC
// midnight).
func noonOffset(day astro.JulianDay, longitude astro.Angle) float64 {
	tp := day.Add((astro.Noon - longitude).Days())
	eot := astro.EquationOfTime(tp.Centuries())

	tp = day.Add((astro.Noon - longitude - eot).Days())
	eot = astro.EquationOfTime(tp.Centuries())

	return (astro.Noon - longitude - eot).Days()
}

// crossingOffset returns the time the sun reaches target as days since the
// UTC midnight preceding noon. noonDecl is the declination at noon. The
// result is NaN when the target is never reached.
func crossingOffset(noon astro.JulianDay, noonDecl, latitude, longitude, target astro.Angle) float64 {
	ha := astro.HourAngle(latitude, noonDecl, target)
	tp := noon.Add(ha.Days())

	state := astro.SolarStateAt(tp)
	ha = astro.HourAngle(latitude, state.Declination, target)

	return (astro.Noon - longitude - state.EquationOfTime + ha).Days()
}

// noaaDay holds the per-day quantities every event of the day starts from.
type noaaDay struct {
	midnight  time.Time
	latitude  astro.Angle
	longitude astro.Angle
	noonDays  float64
	noon      astro.JulianDay
	noonDecl  astro.Angle
}

func newNOAADay(latitude, longitude float64, date time.Time) noaaDay {
	midnight := UTCDay(date)
	day := astro.MidnightJulianDay(midnight)
	lon := astro.Deg(longitude)
	offset := noonOffset(day, lon)
	noon := day.Add(offset)
	return noaaDay{
		midnight:  midnight,
		latitude:  astro.Deg(latitude),
		longitude: lon,
		noonDays:  offset,
		noon:      noon,
		noonDecl:  astro.Declination(noon.Centuries()),
	}
}

func (d noaaDay) at(days float64) time.Time {
	return d.midnight.Add(astro.DaysToDuration(days))
}

func (d noaaDay) crossing(target astro.Angle) (time.Time, bool) {
	offset := crossingOffset(d.noon, d.noonDecl, d.latitude, d.longitude, target)
	if math.IsNaN(offset) {
		return time.Time{}, false
	}
	return d.at(offset), true
}

func (d noaaDay) event(e Event) (time.Time, bool) {
	switch e {
	case Noon:
		return d.at(d.noonDays), true
	case Midnight:
		return d.at(d.noonDays + 0.5), true
	}
	return d.crossing(e.TargetAngle())
}

// NOAATimeOf returns the time of e on the UTC day containing date, or false
// if it does not happen. Each call recomputes solar noon.
func NOAATimeOf(latitude, longitude float64, date time.Time, e Event) (time.Time, bool) {
	return newNOAADay(latitude, longitude, date).event(e)
}

// NOAATimeOfElevation returns when the sun passes elevation degrees, rising
// or setting, on the UTC day containing date.
func NOAATimeOfElevation(latitude, longitude float64, date time.Time, elevation float64, rising bool) (time.Time, bool) {
	return newNOAADay(latitude, longitude, date).crossing(targetForElevation(elevation, rising))
}

// NOAATimes returns all events of the UTC day containing date, solving each
// event independently.
func NOAATimes(latitude, longitude float64, date time.Time) SunTimes {
	return collect(NOAATimeOf, latitude, longitude, date)
}

// NOAATimesShared is NOAATimes with solar noon and its declination computed
// once for all events. The results are identical.
func NOAATimesShared(latitude, longitude float64, date time.Time) SunTimes {
	d := newNOAADay(latitude, longitude, date)
	var st SunTimes
	for _, e := range chronological {
		t, ok := d.event(e)
		st.set(e, t, ok)
	}
	return st
}

// Elevation returns the geometric elevation of the sun's center in degrees
// at instant t. It is defined for every input.
func Elevation(latitude, longitude float64, t time.Time) float64 {
	return astro.SolarHorizontal(astro.Deg(latitude), astro.Deg(longitude), t).Elevation.Deg()
}

// Position returns elevation, azimuth and hour angle of the sun at t.
func Position(latitude, longitude float64, t time.Time) astro.Horizontal {
	return astro.SolarHorizontal(astro.Deg(latitude), astro.Deg(longitude), t)
}
