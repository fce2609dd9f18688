package vectors

import (
	"fmt"
	"math"
)

// Vec3 is a 3D vector with float64 components. Positions are in km,
// velocities in km/s.
type Vec3 struct {
	X, Y, Z float64
}

// UnitK is the unit vector along the Z axis of the geocentric equatorial frame.
var UnitK = Vec3{X: 0, Y: 0, Z: 1}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product v · o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Norm returns the Euclidean length ||v||.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v / ||v||. The second result is false when ||v|| == 0,
// in which case the zero vector is returned.
func (v Vec3) Unit() (Vec3, bool) {
	n := v.Norm()
	if n == 0 {
		return Vec3{}, false
	}
	return v.Scale(1.0 / n), true
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Sum returns the component-wise sum of vs.
func Sum(vs ...Vec3) Vec3 {
	var out Vec3
	for _, v := range vs {
		out = out.Add(v)
	}
	return out
}

func Distance(v1, v2 Vec3) float64 {
	return v1.Sub(v2).Norm()
}

// String formats v with three decimals, e.g. "[-34275.774 478.571 38810.206]".
func (v Vec3) String() string {
	return fmt.Sprintf("[%.3f %.3f %.3f]", v.X, v.Y, v.Z)
}
