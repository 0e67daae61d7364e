package astro

import (
	"time"

	"github.com/mooncaker816/learnmeeus/v3/solstice"
)

// The season boundaries are computed in dynamical time; the ~1 minute
// difference to UTC is ignored since only the calendar day is of interest.

// MarchEquinox returns the instant of the March equinox of year.
func MarchEquinox(year int) time.Time {
	return calendarInstant(JulianDay(solstice.March(year)))
}

// JuneSolstice returns the instant of the June solstice of year.
func JuneSolstice(year int) time.Time {
	return calendarInstant(JulianDay(solstice.June(year)))
}

// SeptemberEquinox returns the instant of the September equinox of year.
func SeptemberEquinox(year int) time.Time {
	return calendarInstant(JulianDay(solstice.September(year)))
}

// DecemberSolstice returns the instant of the December solstice of year.
func DecemberSolstice(year int) time.Time {
	return calendarInstant(JulianDay(solstice.December(year)))
}
