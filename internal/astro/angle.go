// Package astro provides the angle and time substrate and the solar ephemeris
// model used by the sun event backends.
package astro

import "math"

// Angle is an angular quantity stored in radians. It is never normalized
// implicitly; formulas that need a reduced range apply math.Mod themselves.
type Angle float64

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

// Deg creates an Angle from degrees.
func Deg(deg float64) Angle {
	return Angle(deg * deg2rad)
}

// Rad creates an Angle from radians.
func Rad(rad float64) Angle {
	return Angle(rad)
}

// Deg returns the angle in degrees.
func (a Angle) Deg() float64 {
	return float64(a) * rad2deg
}

// Rad returns the angle in radians.
func (a Angle) Rad() float64 {
	return float64(a)
}

// Add returns a + b.
func (a Angle) Add(b Angle) Angle {
	return a + b
}

// Sub returns a - b.
func (a Angle) Sub(b Angle) Angle {
	return a - b
}

// Mul scales the angle.
func (a Angle) Mul(f float64) Angle {
	return Angle(float64(a) * f)
}

// Div divides the angle by a scalar.
func (a Angle) Div(f float64) Angle {
	return Angle(float64(a) / f)
}

// Neg returns -a.
func (a Angle) Neg() Angle {
	return -a
}

func (a Angle) Sin() float64 { return math.Sin(float64(a)) }
func (a Angle) Cos() float64 { return math.Cos(float64(a)) }
func (a Angle) Tan() float64 { return math.Tan(float64(a)) }

// Days converts the angle to a day fraction, a full turn being one day.
func (a Angle) Days() float64 {
	return float64(a) / (2 * math.Pi)
}

// Asin returns the arcsine of x as an Angle. Out-of-domain input yields NaN.
func Asin(x float64) Angle {
	return Angle(math.Asin(x))
}

// Acos returns the arccosine of x as an Angle. Out-of-domain input yields NaN,
// which the event solvers use to detect that an elevation is never reached.
func Acos(x float64) Angle {
	return Angle(math.Acos(x))
}

// Atan2 returns the arctangent of y/x as an Angle.
func Atan2(y, x float64) Angle {
	return Angle(math.Atan2(y, x))
}

// IsNaN reports whether the angle is NaN.
func (a Angle) IsNaN() bool {
	return math.IsNaN(float64(a))
}
