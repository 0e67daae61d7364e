package astro

import (
	"math"
	"testing"
)

// normalize reduces degrees to [0, 360).
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Reference values from Meeus, Astronomical Algorithms, example 25.a
// (1992 October 13.0 TD).
func TestEphemerisMeeusExample(t *testing.T) {
	jd := CalendarToJulianDay(1992, 10, 13.0)
	if jd != 2448908.5 {
		t.Fatalf("JD = %v, want 2448908.5", jd)
	}
	tc := jd.Centuries()
	if math.Abs(tc-(-0.072183436)) > 1e-9 {
		t.Fatalf("T = %v, want -0.072183436", tc)
	}

	tests := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"mean longitude", normalize(GeometricMeanLongitude(tc).Deg()), 201.80720, 1e-4},
		{"mean anomaly", normalize(GeometricMeanAnomaly(tc).Deg()), 278.99397, 1e-4},
		{"eccentricity", EarthOrbitEccentricity(tc), 0.016711668, 1e-9},
		{"equation of center", EquationOfCenter(tc).Deg(), -1.89732, 1e-4},
		{"true longitude", normalize(TrueLongitude(tc).Deg()), 199.90988, 1e-4},
		{"apparent longitude", normalize(ApparentLongitude(tc).Deg()), 199.90895, 2e-4},
		{"mean obliquity", MeanObliquity(tc).Deg(), 23.44023, 1e-4},
		{"corrected obliquity", CorrectedObliquity(tc).Deg(), 23.43999, 2e-4},
		{"declination", Declination(tc).Deg(), -7.78507, 2e-4},
		// Meeus example 28.b, 13m42.7s
		{"equation of time", EquationOfTime(tc).Deg(), 3.42775, 5e-3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > tt.tol {
				t.Errorf("got %.6f, want %.6f (±%g)", tt.got, tt.want, tt.tol)
			}
		})
	}
}

func TestEphemerisBoundsOverYear(t *testing.T) {
	start := CalendarToJulianDay(2024, 1, 1)
	var maxDecl, minDecl, maxEot, minEot float64
	for d := 0; d < 366; d++ {
		s := SolarStateAt(start.Add(float64(d)))
		decl := s.Declination.Deg()
		eotMinutes := s.EquationOfTime.Days() * 24 * 60
		maxDecl = math.Max(maxDecl, decl)
		minDecl = math.Min(minDecl, decl)
		maxEot = math.Max(maxEot, eotMinutes)
		minEot = math.Min(minEot, eotMinutes)
	}

	if maxDecl < 23.4 || maxDecl > 23.45 {
		t.Errorf("max declination = %.4f°", maxDecl)
	}
	if minDecl > -23.4 || minDecl < -23.45 {
		t.Errorf("min declination = %.4f°", minDecl)
	}
	// Early November peak and mid-February trough
	if maxEot < 16 || maxEot > 17 {
		t.Errorf("max equation of time = %.2f min", maxEot)
	}
	if minEot > -14 || minEot < -15 {
		t.Errorf("min equation of time = %.2f min", minEot)
	}
}

func TestSolarStateAt(t *testing.T) {
	jd := JulianDay(2448908.5)
	s := SolarStateAt(jd)
	if s.T != jd.Centuries() {
		t.Errorf("T = %v, want %v", s.T, jd.Centuries())
	}
	if s.Declination != Declination(s.T) {
		t.Errorf("declination mismatch")
	}
	if s.EquationOfTime != EquationOfTime(s.T) {
		t.Errorf("equation of time mismatch")
	}
}
