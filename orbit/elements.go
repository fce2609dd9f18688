// Package orbit converts between state vectors and classical orbital elements
// of a two-body Keplerian orbit.
package orbit

import (
	"errors"
	"fmt"
	"math"

	"github.com/echoflaresat/orbitcalc/earth"
	"github.com/echoflaresat/orbitcalc/vectors"
)

// ErrDomain is returned when the geometry leaves an element undefined: a zero
// divisor (r, v, h, n, e) or an arccos argument outside [-1, 1].
var ErrDomain = errors.New("orbit: domain error")

const (
	// nodeTol is the smallest |n|/h treated as an inclined orbit.
	nodeTol = 1e-10
	// eccentricityTol is the smallest e treated as a non-circular orbit.
	eccentricityTol = 1e-10
)

// Elements holds the six classical orbital elements. Angles are in degrees.
type Elements struct {
	H            float64 // specific angular momentum, km^2/s
	Inclination  float64 // i, [0, 180]
	RAAN         float64 // Ω, [0, 360)
	Eccentricity float64 // e
	ArgPerigee   float64 // ω, [0, 360)
	TrueAnomaly  float64 // θ, [0, 360)
}

// StateVector is a position (km) and velocity (km/s) at one instant.
type StateVector struct {
	Position vectors.Vec3
	Velocity vectors.Vec3
}

// Values returns the elements in the order [h, i, Ω, e, ω, θ].
func (el Elements) Values() [6]float64 {
	return [6]float64{el.H, el.Inclination, el.RAAN, el.Eccentricity, el.ArgPerigee, el.TrueAnomaly}
}

// Rounded returns el with every element rounded to two decimals.
func (el Elements) Rounded() Elements {
	return Elements{
		H:            round2(el.H),
		Inclination:  round2(el.Inclination),
		RAAN:         normalizeDeg(round2(el.RAAN)),
		Eccentricity: round2(el.Eccentricity),
		ArgPerigee:   normalizeDeg(round2(el.ArgPerigee)),
		TrueAnomaly:  normalizeDeg(round2(el.TrueAnomaly)),
	}
}

// Compute returns the orbital elements of the state (r, v), rounded to two
// decimals. A zero mu selects earth.Mu.
func Compute(r, v vectors.Vec3, mu float64) (Elements, error) {
	el, err := ComputeExact(r, v, mu)
	if err != nil {
		return Elements{}, err
	}
	return el.Rounded(), nil
}

// ComputeExact is Compute without the final rounding.
func ComputeExact(r, v vectors.Vec3, mu float64) (Elements, error) {
	mu, err := resolveMu(mu)
	if err != nil {
		return Elements{}, err
	}
	if !r.IsFinite() || !v.IsFinite() {
		return Elements{}, fmt.Errorf("%w: non-finite state vector r=%v v=%v", ErrDomain, r, v)
	}

	rMag := r.Norm()
	vMag := v.Norm()
	if rMag == 0 {
		return Elements{}, fmt.Errorf("%w: zero position vector", ErrDomain)
	}
	if vMag == 0 {
		return Elements{}, fmt.Errorf("%w: zero velocity vector", ErrDomain)
	}

	vr := r.Dot(v) / rMag

	hVec := r.Cross(v)
	h := hVec.Norm()
	if h == 0 {
		return Elements{}, fmt.Errorf("%w: zero angular momentum (rectilinear motion)", ErrDomain)
	}

	incl, err := acosDeg(hVec.Z/h, "inclination")
	if err != nil {
		return Elements{}, err
	}

	nVec := vectors.UnitK.Cross(hVec)
	n := nVec.Norm()
	if n/h < nodeTol {
		return Elements{}, fmt.Errorf("%w: equatorial orbit (i=%.2f), node line and right ascension undefined", ErrDomain, incl)
	}

	raan, err := acosDeg(nVec.X/n, "right ascension")
	if err != nil {
		return Elements{}, err
	}
	if nVec.Y < 0 {
		raan = 360 - raan
	}

	eVec := r.Scale(vMag*vMag - mu/rMag).Sub(v.Scale(rMag * vr)).Scale(1 / mu)
	e := eVec.Norm()
	if e < eccentricityTol {
		return Elements{}, fmt.Errorf("%w: circular orbit (e=%.3g), perigee undefined", ErrDomain, e)
	}

	argp, err := acosDeg(nVec.Dot(eVec)/(n*e), "argument of perigee")
	if err != nil {
		return Elements{}, err
	}
	if eVec.Z < 0 {
		argp = 360 - argp
	}

	ta, err := acosDeg(eVec.Dot(r)/(e*rMag), "true anomaly")
	if err != nil {
		return Elements{}, err
	}
	if vr < 0 {
		ta = 360 - ta
	}

	return Elements{
		H:            h,
		Inclination:  incl,
		RAAN:         normalizeDeg(raan),
		Eccentricity: e,
		ArgPerigee:   normalizeDeg(argp),
		TrueAnomaly:  normalizeDeg(ta),
	}, nil
}

func resolveMu(mu float64) (float64, error) {
	switch {
	case mu == 0:
		return earth.Mu, nil
	case mu < 0 || math.IsNaN(mu) || math.IsInf(mu, 0):
		return 0, fmt.Errorf("%w: gravitational parameter must be positive, got %v", ErrDomain, mu)
	}
	return mu, nil
}
