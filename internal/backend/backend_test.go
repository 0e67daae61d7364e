package backend

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"noaa", NOAA, false},
		{"NOAA-Shared", NOAAShared, false},
		{" wiki ", Wiki, false},
		{"suncalc", SunCalc, false},
		{"gosunrise", GoSunrise, false},
		{"Scan", Scan, false},
		{"redshift", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b, err := Lookup(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownBackend) {
					t.Errorf("Lookup(%q) error = %v, want ErrUnknownBackend", tt.in, err)
				}
				return
			}
			if err != nil || b.Name != tt.want || b.Times == nil {
				t.Errorf("Lookup(%q) = %+v, %v", tt.in, b, err)
			}
		})
	}
}

func TestNamesMatchRegistry(t *testing.T) {
	names := Names()
	want := []string{NOAA, NOAAShared, Wiki, SunCalc, GoSunrise, Scan}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}
	if len(All()) != len(names) {
		t.Error("All() and Names() disagree")
	}
	if Default().Name != NOAA {
		t.Errorf("Default() = %q", Default().Name)
	}
}

func TestBackendsShareContract(t *testing.T) {
	date := time.Date(2022, 10, 15, 0, 0, 0, 0, time.UTC)
	for _, b := range All() {
		t.Run(b.Name, func(t *testing.T) {
			for _, lat := range []float64{-90, -78.463889, 0, 52.02182, 90} {
				st := b.Times(lat, 8.53509, date)
				if st.Noon.IsZero() || st.Midnight.IsZero() {
					t.Errorf("lat %v: noon or midnight missing", lat)
				}
				if !st.Midnight.After(st.Noon) {
					t.Errorf("lat %v: midnight %v not after noon %v", lat, st.Midnight, st.Noon)
				}
			}
		})
	}
}
