package astro

import (
	"math"
	"time"
)

// Noon is the hour angle offset of local noon from UTC midnight at the
// prime meridian: half a turn.
const Noon = Angle(math.Pi)

// Horizontal is the position of the sun relative to an observer.
type Horizontal struct {
	Elevation Angle // above the horizon, no refraction
	Azimuth   Angle // 0 = North, clockwise
	HourAngle Angle // negative before transit
}

// HourAngle returns the hour angle at which the sun reaches the signed
// target angle for the given latitude and declination. Targets are
// zenith-style: cos(target) equals the sine of the elevation, negative values
// select the morning side of the meridian and positive the evening side.
//
// If the elevation is never reached the arccosine argument leaves [-1, 1]
// and the result is NaN. Callers treat NaN as "does not happen".
func HourAngle(latitude, declination, target Angle) Angle {
	omega := math.Acos(target.Cos()/(latitude.Cos()*declination.Cos()) -
		latitude.Tan()*declination.Tan())
	return Rad(math.Copysign(omega, target.Rad()))
}

// ElevationFromHourAngle solves the spherical triangle for the elevation.
func ElevationFromHourAngle(latitude, declination, hourAngle Angle) Angle {
	return Asin(latitude.Sin()*declination.Sin() +
		latitude.Cos()*declination.Cos()*hourAngle.Cos())
}

// AzimuthFromHourAngle returns the azimuth measured from north, clockwise.
// It is defined at the poles and on the meridian.
func AzimuthFromHourAngle(latitude, declination, hourAngle Angle) Angle {
	fromSouth := Atan2(hourAngle.Sin(),
		hourAngle.Cos()*latitude.Sin()-declination.Tan()*latitude.Cos())
	return Rad(math.Mod(float64(fromSouth+Noon), 2*math.Pi))
}

// DayFraction returns the UTC time of day of t as a fraction of a day.
func DayFraction(t time.Time) float64 {
	secs := t.Unix() % secondsPerDay
	if secs < 0 {
		secs += secondsPerDay
	}
	return (float64(secs) + float64(t.Nanosecond())/1e9) / secondsPerDay
}

// SolarHorizontal computes the sun's elevation and azimuth at instant t for an
// observer at latitude/longitude (east positive). It is total: there is no
// input for which it reports absence.
func SolarHorizontal(latitude, longitude Angle, t time.Time) Horizontal {
	state := SolarStateAt(JulianDayFromTime(t))

	sinceMidnight := Rad(2 * math.Pi * DayFraction(t))
	ha := longitude + state.EquationOfTime + sinceMidnight - Noon

	elev := ElevationFromHourAngle(latitude, state.Declination, ha)
	return Horizontal{
		Elevation: elev,
		Azimuth:   AzimuthFromHourAngle(latitude, state.Declination, ha),
		HourAngle: ha,
	}
}
