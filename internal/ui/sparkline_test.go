package ui

import (
	"strings"
	"testing"
)

func TestBlockFor(t *testing.T) {
	tests := []struct {
		in   float64
		want rune
	}{
		{-1, '▁'},
		{0, '▁'},
		{0.5, '▄'},
		{1, '█'},
		{2, '█'},
	}
	for _, tt := range tests {
		if got := blockFor(tt.in); got != tt.want {
			t.Errorf("blockFor(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRangeOf(t *testing.T) {
	r := rangeOf([]float64{-12, 30, 5})
	if r.minElev != -12 || r.maxElev != 30 {
		t.Errorf("rangeOf = %+v", r)
	}
	if rangeOf(nil) != fullRange {
		t.Error("empty samples should use the full range")
	}
	flat := sparklineRange{minElev: 3, maxElev: 3}
	if flat.norm(3) != 0.5 {
		t.Errorf("flat range norm = %v", flat.norm(3))
	}
	if fullRange.norm(0) != 0.5 || fullRange.norm(-120) != 0 || fullRange.norm(120) != 1 {
		t.Error("fullRange.norm should clamp and center the horizon")
	}
}

func TestResample(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		width   int
		want    []float64
	}{
		{"halve", []float64{1, 3, 5, 7}, 2, []float64{2, 6}},
		{"identity", []float64{1, 2, 3}, 3, []float64{1, 2, 3}},
		{"stretch", []float64{4, 8}, 4, []float64{4, 4, 8, 8}},
		{"empty", nil, 4, nil},
		{"zero width", []float64{1}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resample(tt.samples, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestInterpolateElevColor(t *testing.T) {
	r, g, b := interpolateElevColor(0)
	if [3]uint8{r, g, b} != elevColorLow {
		t.Errorf("low = %v %v %v", r, g, b)
	}
	r, g, b = interpolateElevColor(1)
	if [3]uint8{r, g, b} != elevColorHigh {
		t.Errorf("high = %v %v %v", r, g, b)
	}
}

func TestRenderSparkline(t *testing.T) {
	out := renderSparkline([]float64{-30, 0, 30}, rangeOf([]float64{-30, 30}))
	for _, block := range []string{"▁", "▄", "█"} {
		if !strings.Contains(out, block) {
			t.Errorf("sparkline missing %q: %q", block, out)
		}
	}
}
