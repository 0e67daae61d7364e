package sun

import (
	"errors"
	"math"
	"testing"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Noon, "noon"},
		{Midnight, "midnight"},
		{AstroDawn, "astro_dawn"},
		{Sunrise, "sunrise"},
		{NautDusk, "naut_dusk"},
		{Event(42), "Event(42)"},
	}
	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		in      string
		want    Event
		wantErr bool
	}{
		{"sunrise", Sunrise, false},
		{"Civil-Dusk", CivilDusk, false},
		{" astro_dawn ", AstroDawn, false},
		{"midnight", Midnight, false},
		{"golden_hour", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEvent(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownEvent) {
					t.Errorf("ParseEvent(%q) error = %v, want ErrUnknownEvent", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseEvent(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestEventTextRoundTrip(t *testing.T) {
	for _, e := range Events() {
		b, err := e.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", e, err)
		}
		var got Event
		if err := got.UnmarshalText(b); err != nil || got != e {
			t.Errorf("UnmarshalText(%q) = %v, %v", b, got, err)
		}
	}
	if _, err := Event(-1).MarshalText(); err == nil {
		t.Error("MarshalText of invalid event should fail")
	}
}

func TestEventsOrder(t *testing.T) {
	got := Events()
	if len(got) != int(eventCount) {
		t.Fatalf("Events() has %d entries, want %d", len(got), eventCount)
	}
	if got[0] != AstroDawn || got[4] != Noon || got[len(got)-1] != Midnight {
		t.Errorf("unexpected order %v", got)
	}
	got[0] = Midnight
	if Events()[0] != AstroDawn {
		t.Error("Events() must return a copy")
	}
}

func TestEventSides(t *testing.T) {
	for _, e := range Events() {
		dawn, dusk := e.IsDawn(), e.IsDusk()
		switch e {
		case Noon, Midnight:
			if dawn || dusk {
				t.Errorf("%v should be neither dawn nor dusk", e)
			}
		default:
			if dawn == dusk {
				t.Errorf("%v: IsDawn = %v, IsDusk = %v", e, dawn, dusk)
			}
		}
	}
}

func TestEventTargetAngle(t *testing.T) {
	tests := []struct {
		event Event
		elev  float64
		want  float64
	}{
		{AstroDawn, -18, -108},
		{NautDawn, -12, -102},
		{CivilDawn, -6, -96},
		{Sunrise, -0.833, -90.833},
		{Sunset, -0.833, 90.833},
		{CivilDusk, -6, 96},
		{NautDusk, -12, 102},
		{AstroDusk, -18, 108},
	}
	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			elev, ok := tt.event.Elevation()
			if !ok || elev != tt.elev {
				t.Errorf("Elevation() = %v, %v; want %v", elev, ok, tt.elev)
			}
			target := tt.event.TargetAngle()
			if math.Abs(target.Deg()-tt.want) > 1e-12 {
				t.Errorf("TargetAngle() = %v°, want %v°", target.Deg(), tt.want)
			}
			// cos(target) is the sine of the elevation
			if math.Abs(target.Cos()-math.Sin(tt.elev*math.Pi/180)) > 1e-12 {
				t.Errorf("cos(target) = %v, sin(elev) = %v", target.Cos(), math.Sin(tt.elev*math.Pi/180))
			}
		})
	}
}

func TestEventTargetsAreDistinct(t *testing.T) {
	seen := make(map[float64]Event)
	for _, e := range Events() {
		if _, ok := e.Elevation(); !ok {
			continue
		}
		deg := e.TargetAngle().Deg()
		if prev, dup := seen[deg]; dup {
			t.Errorf("%v and %v share target %v°", prev, e, deg)
		}
		seen[deg] = e
	}
	if len(seen) != 8 {
		t.Errorf("got %d distinct targets, want 8", len(seen))
	}
}

func TestTargetAnglePanics(t *testing.T) {
	for _, e := range []Event{Noon, Midnight, Event(99), Event(-3)} {
		t.Run(e.String(), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("TargetAngle(%v) did not panic", e)
				}
			}()
			_ = e.TargetAngle()
		})
	}
}
