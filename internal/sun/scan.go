package sun

import (
	"time"

	"github.com/litescript/ls-suntimes/internal/astro"
)

// Sampled backend: no closed form at all, the elevation curve is sampled and
// every threshold crossing bisected. Slow, but independent of the hour angle
// formulas the other backends share.

const (
	scanStep      = 10 * time.Minute
	culminateStep = time.Minute
)

// ScanTimes returns the events of the UTC day containing date by scanning
// the elevation around the day's culmination. Dawn events are the last
// rising crossing in the twelve hours before noon, dusk events the first
// setting crossing in the twelve hours after.
func ScanTimes(latitude, longitude float64, date time.Time) SunTimes {
	day := UTCDay(date)
	elevation := func(t time.Time) float64 {
		return Elevation(latitude, longitude, t)
	}

	// Mean solar noon, corrected by the sampled maximum
	approx := day.Add(12*time.Hour - time.Duration(longitude*4*float64(time.Minute)))
	noon, _ := astro.Culmination(elevation, approx.Add(-time.Hour), approx.Add(time.Hour), culminateStep)

	var st SunTimes
	st.Noon = noon.Truncate(time.Second)
	st.Midnight = noon.Add(12 * time.Hour).Truncate(time.Second)

	for _, e := range chronological {
		threshold, ok := e.Elevation()
		if !ok {
			continue
		}
		if e.IsDawn() {
			crossings, err := astro.ScanCrossings(elevation, noon.Add(-12*time.Hour), noon, scanStep, threshold)
			if err != nil {
				continue
			}
			for i := len(crossings) - 1; i >= 0; i-- {
				if crossings[i].Rising {
					st.Set(e, crossings[i].Time.Truncate(time.Second))
					break
				}
			}
			continue
		}
		crossings, err := astro.ScanCrossings(elevation, noon, noon.Add(12*time.Hour), scanStep, threshold)
		if err != nil {
			continue
		}
		for _, c := range crossings {
			if !c.Rising {
				st.Set(e, c.Time.Truncate(time.Second))
				break
			}
		}
	}
	return st
}
