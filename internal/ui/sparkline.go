package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SparklineWidth is the default width of the elevation sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Elevation gradient stops: deep night, twilight, daylight.
var (
	elevColorLow  = [3]uint8{0x1b, 0x2b, 0x4b}
	elevColorMid  = [3]uint8{0xc0, 0x60, 0x34}
	elevColorHigh = [3]uint8{0xff, 0xe0, 0x6b}
)

// sparklineRange maps elevations in [minElev, maxElev] to blocks.
type sparklineRange struct {
	minElev, maxElev float64
}

// fullRange covers every possible solar elevation.
var fullRange = sparklineRange{minElev: -90, maxElev: 90}

// norm returns elev scaled to [0, 1].
func (r sparklineRange) norm(elev float64) float64 {
	if r.maxElev <= r.minElev {
		return 0.5
	}
	t := (elev - r.minElev) / (r.maxElev - r.minElev)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// rangeOf returns the tightest range containing the samples.
func rangeOf(samples []float64) sparklineRange {
	if len(samples) == 0 {
		return fullRange
	}
	r := sparklineRange{minElev: samples[0], maxElev: samples[0]}
	for _, v := range samples[1:] {
		if v < r.minElev {
			r.minElev = v
		}
		if v > r.maxElev {
			r.maxElev = v
		}
	}
	return r
}

// blockFor returns the block character for t in [0, 1].
func blockFor(t float64) rune {
	idx := int(t * 7.0)
	if idx > 7 {
		idx = 7
	}
	if idx < 0 {
		idx = 0
	}
	return sparklineBlocks[idx]
}

// renderSparkline renders samples as colored blocks. Colors follow the
// absolute elevation so the horizon always has the same hue.
func renderSparkline(samples []float64, r sparklineRange) string {
	var sb strings.Builder
	for _, elev := range samples {
		red, green, blue := interpolateElevColor(fullRange.norm(elev))
		color := fmt.Sprintf("#%02x%02x%02x", red, green, blue)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(blockFor(r.norm(elev)))))
	}
	return sb.String()
}

// interpolateElevColor returns RGB color for elevation value t in [0, 1].
// Gradient: low (night blue) → mid (horizon orange) → high (sun yellow).
func interpolateElevColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	var r, g, b uint8
	if t < 0.5 {
		// Interpolate from low to mid
		s := t * 2 // Scale to 0-1
		r = uint8(float64(elevColorLow[0])*(1-s) + float64(elevColorMid[0])*s)
		g = uint8(float64(elevColorLow[1])*(1-s) + float64(elevColorMid[1])*s)
		b = uint8(float64(elevColorLow[2])*(1-s) + float64(elevColorMid[2])*s)
	} else {
		// Interpolate from mid to high
		s := (t - 0.5) * 2 // Scale to 0-1
		r = uint8(float64(elevColorMid[0])*(1-s) + float64(elevColorHigh[0])*s)
		g = uint8(float64(elevColorMid[1])*(1-s) + float64(elevColorHigh[1])*s)
		b = uint8(float64(elevColorMid[2])*(1-s) + float64(elevColorHigh[2])*s)
	}

	return r, g, b
}

// resample averages samples into width buckets.
func resample(samples []float64, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	samplesPerBucket := float64(len(samples)) / float64(width)

	for i := 0; i < width; i++ {
		// Average samples in this bucket
		startIdx := int(float64(i) * samplesPerBucket)
		endIdx := int(float64(i+1) * samplesPerBucket)
		if endIdx > len(samples) {
			endIdx = len(samples)
		}
		if startIdx >= endIdx {
			endIdx = startIdx + 1
		}
		if endIdx > len(samples) {
			startIdx, endIdx = len(samples)-1, len(samples)
		}

		sum := 0.0
		count := 0
		for j := startIdx; j < endIdx; j++ {
			sum += samples[j]
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}

	return result
}
