package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-suntimes/internal/astro"
)

// DateKeywords lists the symbolic dates ParseDate understands besides
// YYYY-MM-DD.
var DateKeywords = []string{
	"today", "tomorrow", "yesterday",
	"march-equinox", "june-solstice", "september-equinox", "december-solstice",
}

// ParseDate resolves a date argument to an instant in loc. Keywords are
// relative to now; season keywords give the instant of the event in the
// year of now. Plain dates give local midnight.
func ParseDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	case "march-equinox":
		return astro.MarchEquinox(now.Year()).In(loc), nil
	case "june-solstice":
		return astro.JuneSolstice(now.Year()).In(loc), nil
	case "september-equinox":
		return astro.SeptemberEquinox(now.Year()).In(loc), nil
	case "december-solstice":
		return astro.DecemberSolstice(now.Year()).In(loc), nil
	}

	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: use YYYY-MM-DD or one of %s",
			ErrInvalidDate, s, strings.Join(DateKeywords, ", "))
	}
	return t, nil
}
