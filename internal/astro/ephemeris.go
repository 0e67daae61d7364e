package astro

import "math"

// Solar ephemeris after the NOAA solar calculator, which in turn uses the
// polynomials of the Astronomical Almanac. Every function takes t, the Julian
// centuries since J2000 (see JulianDay.Centuries).
//
// The coefficients are reproduced exactly; changing any digit moves event
// times by arc-seconds to arc-minutes.

// GeometricMeanLongitude returns the sun's geometric mean longitude, reduced
// to [0, 360) degrees for non-negative input.
func GeometricMeanLongitude(t float64) Angle {
	return Deg(math.Mod(280.46646+t*(36000.76983+t*0.0003032), 360.0))
}

// GeometricMeanAnomaly returns the sun's mean anomaly. It is not reduced.
func GeometricMeanAnomaly(t float64) Angle {
	return Deg(357.52911 + t*(35999.05029-0.0001537*t))
}

// EarthOrbitEccentricity returns the eccentricity of earth's orbit.
func EarthOrbitEccentricity(t float64) float64 {
	return 0.016708634 - t*(0.000042037+0.0000001267*t)
}

// EquationOfCenter returns the difference between true and mean anomaly.
func EquationOfCenter(t float64) Angle {
	m := GeometricMeanAnomaly(t)
	return Deg(m.Sin()*(1.914602-t*(0.004817+0.000014*t)) +
		m.Mul(2).Sin()*(0.019993-0.000101*t) +
		m.Mul(3).Sin()*0.000289)
}

// ascendingNode is the longitude of the moon's ascending node, used for the
// nutation and aberration corrections.
func ascendingNode(t float64) Angle {
	return Deg(125.04 - 1934.136*t)
}

// TrueLongitude returns the sun's true geometric longitude.
func TrueLongitude(t float64) Angle {
	return GeometricMeanLongitude(t) + EquationOfCenter(t)
}

// ApparentLongitude returns the true longitude corrected for nutation and
// aberration.
func ApparentLongitude(t float64) Angle {
	return TrueLongitude(t) - Deg(0.00569+0.00478*ascendingNode(t).Sin())
}

// MeanObliquity returns the mean obliquity of the ecliptic.
func MeanObliquity(t float64) Angle {
	seconds := 21.448 - t*(46.815+t*(0.00059-t*0.001813))
	return Deg(23 + (26+seconds/60)/60)
}

// CorrectedObliquity returns the obliquity corrected for nutation.
func CorrectedObliquity(t float64) Angle {
	return MeanObliquity(t) + Deg(0.00256*ascendingNode(t).Cos())
}

// Declination returns the sun's apparent declination.
func Declination(t float64) Angle {
	return Asin(CorrectedObliquity(t).Sin() * ApparentLongitude(t).Sin())
}

// EquationOfTime returns apparent minus mean solar time as an angle; a full
// turn corresponds to one day (see Angle.Days).
func EquationOfTime(t float64) Angle {
	eps := CorrectedObliquity(t)
	l0 := GeometricMeanLongitude(t)
	m := GeometricMeanAnomaly(t)
	e := EarthOrbitEccentricity(t)
	y := eps.Div(2).Tan() * eps.Div(2).Tan()

	eot := y*l0.Mul(2).Sin() -
		2*e*m.Sin() +
		4*e*y*m.Sin()*l0.Mul(2).Cos() -
		0.5*y*y*l0.Mul(4).Sin() -
		1.25*e*e*m.Mul(2).Sin()

	return Rad(eot)
}

// SolarState bundles the ephemeris quantities evaluated at one instant.
type SolarState struct {
	T              float64 // Julian centuries since J2000
	Declination    Angle
	EquationOfTime Angle
}

// SolarStateAt evaluates declination and equation of time at jd.
func SolarStateAt(jd JulianDay) SolarState {
	t := jd.Centuries()
	return SolarState{
		T:              t,
		Declination:    Declination(t),
		EquationOfTime: EquationOfTime(t),
	}
}
