package sun

import (
	"math"
	"time"

	"github.com/litescript/ls-suntimes/internal/astro"
)

// Single-pass backend following the "sunrise equation" as commonly published
// (Wikipedia, "Complete calculation on Earth"). Transit and declination come
// from one evaluation at the mean solar time of the day, with no refinement.
//
// Close to the poles this can report one last sunrise or sunset just before
// polar day or night begins where the two-pass backend reports none. The
// behavior is kept so the backends stay comparable.

// axialTilt is the fixed obliquity the single-pass method assumes.
var axialTilt = astro.Deg(23.44)

// wikiTransit returns solar transit and the declination used for the whole
// day containing midnight.
func wikiTransit(midnight time.Time, longitude astro.Angle) (astro.JulianDay, astro.Angle) {
	// Day number since J2000, with the 0.0008 day leap second/TT correction
	n := math.Ceil(astro.MidnightJulianDay(midnight).Sub(astro.J2000) + 0.0008)
	meanSolarTime := n - longitude.Days()

	anomaly := astro.Deg(math.Mod(357.5291+0.98560028*meanSolarTime, 360.0))
	center := astro.Deg(1.9148*anomaly.Sin() +
		0.0200*anomaly.Mul(2).Sin() +
		0.0003*anomaly.Mul(3).Sin())
	// 102.9372 is the argument of perihelion
	eclipticLongitude := astro.Deg(math.Mod(anomaly.Deg()+center.Deg()+180+102.9372, 360.0))

	transit := astro.J2000.Add(meanSolarTime +
		0.0053*anomaly.Sin() -
		0.0069*eclipticLongitude.Mul(2).Sin())
	declination := astro.Asin(eclipticLongitude.Sin() * axialTilt.Sin())

	return transit, declination
}

// wikiHourAngle is the textbook form of the hour angle equation. NaN means
// target is never reached.
func wikiHourAngle(latitude, declination, target astro.Angle) astro.Angle {
	num := target.Cos() - latitude.Sin()*declination.Sin()
	den := latitude.Cos() * declination.Cos()
	return astro.Rad(math.Copysign(math.Acos(num/den), target.Rad()))
}

func wikiCrossing(latitude, longitude float64, date time.Time, target astro.Angle) (time.Time, bool) {
	transit, decl := wikiTransit(UTCDay(date), astro.Deg(longitude))
	ha := wikiHourAngle(astro.Deg(latitude), decl, target)
	result := transit.Add(ha.Deg() / 360)
	if math.IsNaN(float64(result)) {
		return time.Time{}, false
	}
	return result.Time(), true
}

// WikiTimeOf returns the time of e on the UTC day containing date, or false
// if it does not happen.
func WikiTimeOf(latitude, longitude float64, date time.Time, e Event) (time.Time, bool) {
	switch e {
	case Noon, Midnight:
		transit, _ := wikiTransit(UTCDay(date), astro.Deg(longitude))
		if e == Midnight {
			transit = transit.Add(0.5)
		}
		return transit.Time(), true
	}
	return wikiCrossing(latitude, longitude, date, e.TargetAngle())
}

// WikiTimeOfElevation returns when the sun passes elevation degrees, rising
// or setting, on the UTC day containing date.
func WikiTimeOfElevation(latitude, longitude float64, date time.Time, elevation float64, rising bool) (time.Time, bool) {
	return wikiCrossing(latitude, longitude, date, targetForElevation(elevation, rising))
}

// WikiTimes returns all events of the UTC day containing date using the
// single-pass method.
func WikiTimes(latitude, longitude float64, date time.Time) SunTimes {
	return collect(WikiTimeOf, latitude, longitude, date)
}
