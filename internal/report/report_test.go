package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-suntimes/internal/sun"
)

var bielefeld = Location{Name: "Bielefeld", Latitude: 52.02182, Longitude: 8.53509}

func ptr(t time.Time) *time.Time { return &t }

// midsummer is a Bielefeld-like day without astronomical night.
func midsummer() sun.SunTimes {
	at := func(h, m, s int) time.Time { return time.Date(2022, 6, 21, h, m, s, 0, time.UTC) }
	return sun.SunTimes{
		Noon:      at(11, 27, 39),
		Midnight:  at(23, 27, 39),
		NautDawn:  ptr(at(0, 57, 45)),
		CivilDawn: ptr(at(2, 13, 0)),
		Sunrise:   ptr(at(3, 5, 29)),
		Sunset:    ptr(at(19, 49, 50)),
		CivilDusk: ptr(at(20, 42, 0)),
		NautDusk:  ptr(at(21, 57, 0)),
	}
}

func TestNewExport(t *testing.T) {
	date := time.Date(2022, 6, 21, 15, 0, 0, 0, time.UTC)
	e := NewExport(bielefeld, "noaa", date, midsummer(), nil)

	if e.Date != "2022-06-21" || e.Zone != "UTC" || e.Backend != "noaa" {
		t.Errorf("header = %+v", e)
	}
	if e.DayLength != "16h44m21s" {
		t.Errorf("DayLength = %q, want 16h44m21s", e.DayLength)
	}
	if len(e.Absent) != 2 || e.Absent[0] != sun.AstroDawn || e.Absent[1] != sun.AstroDusk {
		t.Errorf("Absent = %v", e.Absent)
	}
}

func TestNewExportZone(t *testing.T) {
	cest := time.FixedZone("CEST", 2*3600)
	e := NewExport(bielefeld, "noaa", time.Date(2022, 6, 21, 0, 0, 0, 0, time.UTC), midsummer(), cest)
	if e.Times.Sunrise.Location() != cest {
		t.Errorf("sunrise zone = %v", e.Times.Sunrise.Location())
	}
	if got := e.Times.Sunrise.Format(clockLayout); got != "05:05:29" {
		t.Errorf("local sunrise = %s, want 05:05:29", got)
	}
}

func TestExportWriteJSON(t *testing.T) {
	e := NewExport(bielefeld, "noaa", time.Date(2022, 6, 21, 0, 0, 0, 0, time.UTC), midsummer(), nil)
	var buf bytes.Buffer
	if err := e.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	times := decoded["times"].(map[string]interface{})
	if times["astro_dawn"] != nil {
		t.Errorf("astro_dawn = %v, want null", times["astro_dawn"])
	}
	if times["sunrise"] != "2022-06-21T03:05:29Z" {
		t.Errorf("sunrise = %v", times["sunrise"])
	}
	absent := decoded["absent"].([]interface{})
	if len(absent) != 2 || absent[0] != "astro_dawn" {
		t.Errorf("absent = %v", absent)
	}
}

func TestWriteJSONList(t *testing.T) {
	date := time.Date(2022, 6, 21, 0, 0, 0, 0, time.UTC)
	list := []*Export{
		NewExport(bielefeld, "noaa", date, midsummer(), nil),
		NewExport(bielefeld, "wiki", date, midsummer(), nil),
	}
	var buf bytes.Buffer
	if err := WriteJSONList(&buf, list); err != nil {
		t.Fatal(err)
	}
	var decoded []Export
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Backend != "wiki" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteTable(t *testing.T) {
	e := NewExport(bielefeld, "noaa", time.Date(2022, 6, 21, 0, 0, 0, 0, time.UTC), midsummer(), nil)
	var buf bytes.Buffer
	WriteTable(&buf, e)
	out := buf.String()

	for _, want := range []string{
		"Sun times for Bielefeld (52.02182, 8.53509) on 2022-06-21 [noaa]",
		"Astronomical dawn    does not happen",
		"Sunrise              2022-06-21 03:05:29 UTC",
		"Day length: 16h44m21s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	// Rows follow the solar day
	if strings.Index(out, "Sunrise") > strings.Index(out, "Noon") ||
		strings.Index(out, "Noon") > strings.Index(out, "Sunset") {
		t.Errorf("rows out of order:\n%s", out)
	}
}

func TestWriteTablePolarNight(t *testing.T) {
	st := sun.NOAATimes(-78.463889, 106.83757, time.Date(2022, 6, 21, 0, 0, 0, 0, time.UTC))
	e := NewExport(Location{Name: "Vostok", Latitude: -78.463889, Longitude: 106.83757}, "noaa", st.Noon, st, nil)
	var buf bytes.Buffer
	WriteTable(&buf, e)
	out := buf.String()

	if strings.Count(out, NotHappening) != 4 {
		t.Errorf("expected civil twilight and sunrise/sunset absent:\n%s", out)
	}
	if !strings.Contains(out, "no sunrise or no sunset") {
		t.Errorf("missing day length note:\n%s", out)
	}
}

func TestWriteComparison(t *testing.T) {
	date := time.Date(2022, 6, 21, 0, 0, 0, 0, time.UTC)
	a := midsummer()
	b := midsummer()
	b.Sunset = ptr(a.Sunset.Add(90 * time.Second))
	b.NautDusk = nil

	var buf bytes.Buffer
	WriteComparison(&buf, NewExport(bielefeld, "noaa", date, a, nil), NewExport(bielefeld, "wiki", date, b, nil))
	out := buf.String()

	lines := strings.Split(out, "\n")
	find := func(prefix string) string {
		for _, l := range lines {
			if strings.HasPrefix(l, prefix) {
				return l
			}
		}
		t.Fatalf("no line starting with %q in:\n%s", prefix, out)
		return ""
	}

	if l := find("Sunset"); !strings.HasSuffix(l, "+0h01m30s") {
		t.Errorf("sunset line = %q", l)
	}
	if l := find("Nautical dusk"); !strings.Contains(l, NotHappening) || !strings.HasSuffix(l, "!") {
		t.Errorf("nautical dusk line = %q", l)
	}
	if l := find("Sunrise"); strings.Contains(l, "+") || strings.Contains(l, "!") {
		t.Errorf("equal rows should not be annotated: %q", l)
	}
}

func TestWriteDays(t *testing.T) {
	days := sun.Days(time.Date(2022, 12, 20, 0, 0, 0, 0, time.UTC), 3)
	rows := make([]DayRow, len(days))
	for i, d := range days {
		rows[i] = DayRow{Date: d, Times: sun.NOAATimes(bielefeld.Latitude, bielefeld.Longitude, d)}
	}

	var buf bytes.Buffer
	WriteDays(&buf, bielefeld, "noaa", rows, time.UTC)
	out := buf.String()

	for _, want := range []string{"2022-12-20", "2022-12-21", "2022-12-22", "Day length", "7h4"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "--") {
		t.Errorf("no event should be absent in Bielefeld:\n%s", out)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0h00m00s"},
		{12*time.Hour + 6*time.Minute + 31*time.Second, "12h06m31s"},
		{-90 * time.Second, "-0h01m30s"},
		{1500 * time.Millisecond, "0h00m02s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderStyled(t *testing.T) {
	e := NewExport(bielefeld, "noaa", time.Date(2022, 6, 21, 0, 0, 0, 0, time.UTC), midsummer(), nil)
	out := RenderStyled(e)
	for _, want := range []string{"Bielefeld", "Sunrise", "03:05:29", NotHappening, "16h44m21s", "noaa"} {
		if !strings.Contains(out, want) {
			t.Errorf("styled output missing %q", want)
		}
	}
}
