package orbit

import (
	"fmt"
	"math"

	"github.com/echoflaresat/orbitcalc/vectors"
)

const degToRad = math.Pi / 180

// StateVector returns the geocentric equatorial position and velocity for el.
// The perifocal state follows from the orbit equation and is rotated through
// ω, i and Ω (3-1-3 sequence). A zero mu selects earth.Mu.
func (el Elements) StateVector(mu float64) (StateVector, error) {
	mu, err := resolveMu(mu)
	if err != nil {
		return StateVector{}, err
	}
	if el.H <= 0 {
		return StateVector{}, fmt.Errorf("%w: angular momentum must be positive, got %v", ErrDomain, el.H)
	}
	if el.Eccentricity < 0 {
		return StateVector{}, fmt.Errorf("%w: negative eccentricity %v", ErrDomain, el.Eccentricity)
	}

	sinTA, cosTA := math.Sincos(el.TrueAnomaly * degToRad)
	denom := 1 + el.Eccentricity*cosTA
	if denom <= 0 {
		return StateVector{}, fmt.Errorf("%w: true anomaly %.2f unreachable on hyperbola with e=%.4f",
			ErrDomain, el.TrueAnomaly, el.Eccentricity)
	}

	rp := vectors.Vec3{X: cosTA, Y: sinTA}.Scale(el.H * el.H / mu / denom)
	vp := vectors.Vec3{X: -sinTA, Y: el.Eccentricity + cosTA}.Scale(mu / el.H)

	rot := perifocalToGeocentric(el.RAAN*degToRad, el.Inclination*degToRad, el.ArgPerigee*degToRad)
	return StateVector{
		Position: rot.apply(rp),
		Velocity: rot.apply(vp),
	}, nil
}

// matrix3 is a row-major 3x3 rotation.
type matrix3 [3]vectors.Vec3

func (m matrix3) apply(v vectors.Vec3) vectors.Vec3 {
	return vectors.Vec3{X: m[0].Dot(v), Y: m[1].Dot(v), Z: m[2].Dot(v)}
}

func perifocalToGeocentric(raan, incl, argp float64) matrix3 {
	sO, cO := math.Sincos(raan)
	si, ci := math.Sincos(incl)
	sw, cw := math.Sincos(argp)

	return matrix3{
		{X: cO*cw - sO*sw*ci, Y: -cO*sw - sO*cw*ci, Z: sO * si},
		{X: sO*cw + cO*sw*ci, Y: -sO*sw + cO*cw*ci, Z: -cO * si},
		{X: sw * si, Y: cw * si, Z: ci},
	}
}
