// Package backend names the interchangeable sun.TimesFunc implementations so
// they can be selected by configuration.
package backend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/litescript/ls-suntimes/internal/sun"
	"github.com/litescript/ls-suntimes/internal/sun/oracle"
)

// Backend names.
const (
	NOAA       = "noaa"
	NOAAShared = "noaa-shared"
	Wiki       = "wiki"
	SunCalc    = "suncalc"
	GoSunrise  = "gosunrise"
	Scan       = "scan"
)

// ErrUnknownBackend is returned by Lookup for names not in Names.
var ErrUnknownBackend = errors.New("unknown backend")

// Backend is a named sun.TimesFunc.
type Backend struct {
	Name        string
	Description string
	Times       sun.TimesFunc
	// Reference is true for backends built into the engine, false for
	// third-party oracles.
	Reference bool
}

var registry = []Backend{
	{NOAA, "two-pass refined (NOAA), each event solved independently", sun.NOAATimes, true},
	{NOAAShared, "two-pass refined (NOAA), solar noon shared across events", sun.NOAATimesShared, true},
	{Wiki, "single-pass closed form (sunrise equation)", sun.WikiTimes, true},
	{SunCalc, "github.com/sixdouglas/suncalc", oracle.SunCalcTimes, false},
	{GoSunrise, "github.com/nathan-osman/go-sunrise", oracle.GoSunriseTimes, false},
	{Scan, "sampled elevation curve with bisected crossings", sun.ScanTimes, true},
}

// Names lists the registered backend names in a stable order.
func Names() []string {
	names := make([]string, len(registry))
	for i, b := range registry {
		names[i] = b.Name
	}
	return names
}

// All returns every registered backend.
func All() []Backend {
	out := make([]Backend, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a backend by name, ignoring case.
func Lookup(name string) (Backend, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, b := range registry {
		if b.Name == key {
			return b, nil
		}
	}
	return Backend{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownBackend, name, strings.Join(Names(), ", "))
}

// Default returns the reference backend.
func Default() Backend {
	return registry[0]
}
