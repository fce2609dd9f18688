package orbit

import (
	"fmt"
	"math"
)

// acosTol is how far outside [-1, 1] an arccos argument may drift from
// rounding before it is rejected. Arguments within the tolerance are clamped.
const acosTol = 1e-9

// acosDeg returns arccos(x) in degrees.
func acosDeg(x float64, what string) (float64, error) {
	if math.IsNaN(x) || x < -1-acosTol || x > 1+acosTol {
		return 0, fmt.Errorf("%w: %s arccos argument %v outside [-1, 1]", ErrDomain, what, x)
	}
	x = math.Max(-1, math.Min(1, x))
	return math.Acos(x) * 180 / math.Pi, nil
}

// normalizeDeg maps any finite angle into [0, 360).
func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -tiny + 360 rounds to 360.
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
