package astro

import (
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
)

// JulianDay is a continuous day count (Julian Date). The fractional part
// encodes the time of day, with days starting at noon UT.
type JulianDay float64

const (
	// J2000 is the epoch of the solar polynomials, 2000-01-01 12:00 TT.
	J2000 JulianDay = 2451545.0

	// UnixEpoch is the Julian Date of 1970-01-01 00:00 UTC.
	UnixEpoch JulianDay = 2440587.5

	// DaysPerCentury is the length of a Julian century.
	DaysPerCentury = 36525.0

	secondsPerDay = 86400
)

// The Unix epoch offset must be a whole number of seconds that fits an int64.
// This fails to compile otherwise.
const _ = int64(float64(UnixEpoch) * secondsPerDay)

// JulianDayFromTime converts an instant to its Julian Date.
func JulianDayFromTime(t time.Time) JulianDay {
	secs := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return UnixEpoch + JulianDay(secs/secondsPerDay)
}

// Time converts the Julian Date back to a UTC instant, rounding toward
// negative infinity to whole seconds.
func (jd JulianDay) Time() time.Time {
	secs := math.Floor(float64(jd-UnixEpoch) * secondsPerDay)
	return time.Unix(int64(secs), 0).UTC()
}

// Add offsets the Julian Date by a (fractional) number of days.
func (jd JulianDay) Add(days float64) JulianDay {
	return jd + JulianDay(days)
}

// Sub returns jd - other in days.
func (jd JulianDay) Sub(other JulianDay) float64 {
	return float64(jd - other)
}

// Centuries returns the Julian centuries elapsed since J2000.
func (jd JulianDay) Centuries() float64 {
	return float64(jd-J2000) / DaysPerCentury
}

// DaysToDuration converts a day fraction to a duration, flooring to whole seconds.
func DaysToDuration(days float64) time.Duration {
	return time.Duration(math.Floor(days*secondsPerDay)) * time.Second
}

// CalendarToJulianDay converts a proleptic Gregorian calendar date to a Julian
// Date. The day may carry a fraction for the time of day.
func CalendarToJulianDay(year int, month time.Month, day float64) JulianDay {
	return JulianDay(julian.CalendarGregorianToJD(year, int(month), day))
}

// MidnightJulianDay returns the Julian Date of 0h UTC of the UTC calendar day
// containing t. The result is exact: a whole number plus one half.
func MidnightJulianDay(t time.Time) JulianDay {
	y, m, d := t.UTC().Date()
	return CalendarToJulianDay(y, m, float64(d))
}

// CalendarFromJulianDay converts a Julian Date to a calendar date with a
// fractional day.
func CalendarFromJulianDay(jd JulianDay) (year int, month time.Month, day float64) {
	y, m, d := julian.JDToCalendar(float64(jd))
	return y, time.Month(m), d
}

// calendarInstant converts a Julian Date to a UTC instant through the
// calendar, flooring to whole seconds.
func calendarInstant(jd JulianDay) time.Time {
	y, m, d := CalendarFromJulianDay(jd)
	day := math.Floor(d)
	secs := math.Floor((d - day) * secondsPerDay)
	return time.Date(y, m, int(day), 0, 0, int(secs), 0, time.UTC)
}
