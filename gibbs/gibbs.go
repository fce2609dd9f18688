// Package gibbs estimates an orbit from three coplanar position vectors
// observed at successive times (Gibbs' method).
package gibbs

import (
	"errors"
	"fmt"
	"math"

	"github.com/echoflaresat/orbitcalc/earth"
	"github.com/echoflaresat/orbitcalc/orbit"
	"github.com/echoflaresat/orbitcalc/vectors"
)

// CoplanarTolerance bounds |û1 · Ĉ23| for the three vectors to count as coplanar.
const CoplanarTolerance = 1e-5

// ErrNotCoplanar is returned when the observations fail the coplanarity check.
var ErrNotCoplanar = errors.New("gibbs: the 3 vectors aren't coplanar")

// Hint is the corrective action for observations that fail the coplanarity
// check. It is part of every ErrNotCoplanar message.
const Hint = "Try values for vectors that lie in the same plane."

// Triple is three position vectors (km) observed at t1 < t2 < t3.
type Triple struct {
	R1, R2, R3 vectors.Vec3
}

// Trace receives the intermediate vectors of the method.
type Trace struct {
	N  vectors.Vec3 // km^3
	D  vectors.Vec3 // km^2
	S  vectors.Vec3 // km^2
	V2 vectors.Vec3 // km/s, velocity at the second observation
}

type config struct {
	mu    float64
	trace *Trace
}

// Option configures Estimate.
type Option func(*config)

// WithMu sets the gravitational parameter (km^3/s^2). Zero keeps earth.Mu.
func WithMu(mu float64) Option {
	return func(c *config) { c.mu = mu }
}

// WithTrace fills t with N, D, S and v2 once they are known.
func WithTrace(t *Trace) Option {
	return func(c *config) { c.trace = t }
}

// Estimate returns the orbital elements, rounded to two decimals, of the
// orbit through r1, r2 and r3, evaluated at the second observation.
func Estimate(r1, r2, r3 vectors.Vec3, opts ...Option) (orbit.Elements, error) {
	cfg := config{mu: earth.Mu}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.mu == 0 {
		cfg.mu = earth.Mu
	}

	v2, tr, err := velocity(r1, r2, r3, cfg.mu)
	if err != nil {
		return orbit.Elements{}, err
	}
	if cfg.trace != nil {
		*cfg.trace = tr
	}

	el, err := orbit.Compute(r2, v2, cfg.mu)
	if err != nil {
		return orbit.Elements{}, fmt.Errorf("gibbs: %w", err)
	}
	return el, nil
}

// Estimate is a convenience wrapper around the package-level Estimate.
func (t Triple) Estimate(opts ...Option) (orbit.Elements, error) {
	return Estimate(t.R1, t.R2, t.R3, opts...)
}

// velocity derives v2 from the three positions.
func velocity(r1Vec, r2Vec, r3Vec vectors.Vec3, mu float64) (vectors.Vec3, Trace, error) {
	if mu <= 0 || math.IsNaN(mu) || math.IsInf(mu, 0) {
		return vectors.Vec3{}, Trace{}, fmt.Errorf("gibbs: %w: gravitational parameter must be positive, got %v", orbit.ErrDomain, mu)
	}
	for i, r := range [3]vectors.Vec3{r1Vec, r2Vec, r3Vec} {
		if !r.IsFinite() || r.Norm() == 0 {
			return vectors.Vec3{}, Trace{}, fmt.Errorf("gibbs: %w: position r%d=%v must be finite and non-zero", orbit.ErrDomain, i+1, r)
		}
	}

	r1 := r1Vec.Norm()
	r2 := r2Vec.Norm()
	r3 := r3Vec.Norm()

	c12 := r1Vec.Cross(r2Vec)
	c23 := r2Vec.Cross(r3Vec)
	c31 := r3Vec.Cross(r1Vec)

	if err := checkCoplanar(r1Vec, c23); err != nil {
		return vectors.Vec3{}, Trace{}, err
	}

	n := vectors.Sum(c23.Scale(r1), c31.Scale(r2), c12.Scale(r3))
	d := vectors.Sum(c12, c23, c31)
	s := vectors.Sum(r1Vec.Scale(r2-r3), r2Vec.Scale(r3-r1), r3Vec.Scale(r1-r2))

	nd := n.Norm() * d.Norm()
	if nd == 0 {
		return vectors.Vec3{}, Trace{}, fmt.Errorf("gibbs: %w: |N|·|D| is zero, observations do not span an orbit", orbit.ErrDomain)
	}

	v2 := d.Cross(r2Vec).Scale(1 / r2).Add(s).Scale(math.Sqrt(mu / nd))
	return v2, Trace{N: n, D: d, S: s, V2: v2}, nil
}

// checkCoplanar verifies that r1 is orthogonal to r2 × r3.
func checkCoplanar(r1Vec, c23 vectors.Vec3) error {
	ur1, _ := r1Vec.Unit()
	uc23, ok := c23.Unit()
	if !ok {
		return fmt.Errorf("gibbs: %w: r2 and r3 are collinear", orbit.ErrDomain)
	}

	if dot := ur1.Dot(uc23); math.Abs(dot) > CoplanarTolerance {
		return fmt.Errorf("%w: orthogonality check failed (|û1·Ĉ23| = %.3g > %g); %s",
			ErrNotCoplanar, math.Abs(dot), CoplanarTolerance, Hint)
	}
	return nil
}
