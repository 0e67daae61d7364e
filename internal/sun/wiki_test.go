package sun

import (
	"reflect"
	"testing"
	"time"
)

func TestWikiTimesBielefeld(t *testing.T) {
	tests := []struct {
		name  string
		date  time.Time
		event Event
		want  time.Time
	}{
		{"summer sunrise", utcDate(2022, 6, 21), Sunrise, time.Date(2022, 6, 21, 3, 5, 0, 0, time.UTC)},
		{"summer sunset", utcDate(2022, 6, 21), Sunset, time.Date(2022, 6, 21, 19, 50, 0, 0, time.UTC)},
		{"winter sunrise", utcDate(2022, 12, 21), Sunrise, time.Date(2022, 12, 21, 7, 32, 0, 0, time.UTC)},
		{"winter sunset", utcDate(2022, 12, 21), Sunset, time.Date(2022, 12, 21, 15, 16, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WikiTimeOf(bielefeldLat, bielefeldLon, tt.date, tt.event)
			if !ok {
				t.Fatalf("%v reported absent", tt.event)
			}
			if !within(got, tt.want, 2*time.Minute) {
				t.Errorf("%v = %v, want %v ±2m", tt.event, got, tt.want)
			}
		})
	}
}

func TestWikiAgreesWithNOAA(t *testing.T) {
	dates := []time.Time{
		utcDate(2022, 1, 5), utcDate(2022, 3, 20), utcDate(2022, 6, 21),
		utcDate(2022, 9, 1), utcDate(2022, 12, 21), utcDate(2023, 10, 15),
	}
	tolerances := map[Event]time.Duration{
		Noon:     time.Minute,
		Midnight: time.Minute,
		Sunrise:  3 * time.Minute,
		Sunset:   3 * time.Minute,
	}

	for _, lat := range []float64{-55, -30, 0, 30, bielefeldLat, 55} {
		for _, lon := range []float64{-120, 0, bielefeldLon, 100} {
			for _, date := range dates {
				wiki := WikiTimes(lat, lon, date)
				noaa := NOAATimes(lat, lon, date)
				for e, tol := range tolerances {
					w, wok := wiki.At(e)
					n, nok := noaa.At(e)
					if wok != nok {
						t.Errorf("lat %v lon %v %v %v: presence differs (wiki %v, noaa %v)", lat, lon, date, e, wok, nok)
						continue
					}
					if wok && !within(w, n, tol) {
						t.Errorf("lat %v lon %v %v %v: wiki %v, noaa %v", lat, lon, date.Format(time.DateOnly), e, w, n)
					}
				}
			}
		}
	}
}

func TestWikiPolar(t *testing.T) {
	st := WikiTimes(vostokLat, vostokLon, utcDate(2022, 12, 21))
	if absent := st.Absent(); len(absent) != 8 {
		t.Errorf("polar day: absent %v, want all eight crossings", absent)
	}

	st = WikiTimes(vostokLat, vostokLon, utcDate(2022, 6, 21))
	if st.Sunrise != nil || st.Sunset != nil {
		t.Error("polar night: sunrise and sunset should be absent")
	}
	if st.AstroDawn == nil || st.AstroDusk == nil {
		t.Error("polar night: astronomical twilight should happen")
	}
}

// The single-pass method does not refine the hour angle, so on the first
// day of polar day it still reports the last sunset.
func TestWikiReportsLastSunsetBeforePolarDay(t *testing.T) {
	date := utcDate(2022, 10, 21)
	if _, ok := NOAATimeOf(vostokLat, vostokLon, date, Sunset); ok {
		t.Fatal("two-pass backend should report no sunset")
	}
	if _, ok := WikiTimeOf(vostokLat, vostokLon, date, Sunset); !ok {
		t.Error("single-pass backend should still report a sunset")
	}
}

func TestWikiNoonAndMidnight(t *testing.T) {
	for _, lat := range []float64{-90, -60, 0, 60, 90} {
		st := WikiTimes(lat, bielefeldLon, utcDate(2023, 4, 2))
		if st.Noon.IsZero() || st.Midnight.IsZero() {
			t.Fatalf("lat %v: noon or midnight missing", lat)
		}
		d := st.Midnight.Sub(st.Noon)
		if d < 12*time.Hour-time.Second || d > 12*time.Hour+time.Second {
			t.Errorf("lat %v: midnight - noon = %v", lat, d)
		}
	}
}

func TestWikiTimeOfElevationMatchesEvents(t *testing.T) {
	date := utcDate(2023, 5, 1)
	for _, e := range Events() {
		elev, ok := e.Elevation()
		if !ok {
			continue
		}
		want, wantOK := WikiTimeOf(bielefeldLat, bielefeldLon, date, e)
		got, gotOK := WikiTimeOfElevation(bielefeldLat, bielefeldLon, date, elev, e.IsDawn())
		if got != want || gotOK != wantOK {
			t.Errorf("%v: %v/%v, want %v/%v", e, got, gotOK, want, wantOK)
		}
	}
}

func TestWikiIdempotent(t *testing.T) {
	date := utcDate(2022, 10, 19)
	first := WikiTimes(bielefeldLat, bielefeldLon, date)
	if got := WikiTimes(bielefeldLat, bielefeldLon, date); !reflect.DeepEqual(got, first) {
		t.Error("repeated call differs")
	}
}
