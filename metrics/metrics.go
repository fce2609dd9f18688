// Package metrics exposes Prometheus collectors for orbit computations.
package metrics

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/echoflaresat/orbitcalc/gibbs"
	"github.com/echoflaresat/orbitcalc/orbit"
	"github.com/echoflaresat/orbitcalc/sidereal"
)

// Operation labels.
const (
	OpElements = "elements"
	OpGibbs    = "gibbs"
	OpSidereal = "sidereal"
)

// Outcome labels.
const (
	OutcomeOK           = "ok"
	OutcomeNotCoplanar  = "not_coplanar"
	OutcomeDomain       = "domain_error"
	OutcomePrecondition = "precondition_error"
	OutcomeOther        = "error"
)

// Collector counts computations by operation and outcome.
type Collector struct {
	gatherer prometheus.Gatherer

	Computations *prometheus.CounterVec
	Durations    *prometheus.HistogramVec
}

// NewCollector registers the collectors on reg, or on the default registry
// when reg is nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	computations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orbitcalc_computations_total",
		Help: "Computations performed, labeled by operation and outcome.",
	}, []string{"operation", "outcome"})
	computations, err := register(reg, computations)
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orbitcalc_computation_duration_seconds",
		Help:    "Computation latency in seconds.",
		Buckets: prometheus.ExponentialBuckets(1e-7, 10, 8),
	}, []string{"operation"})
	durations, err = register(reg, durations)
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:     gatherer,
		Computations: computations,
		Durations:    durations,
	}, nil
}

// Observe records one computation of op.
func (c *Collector) Observe(op string, elapsed time.Duration, err error) {
	if c == nil {
		return
	}
	c.Computations.WithLabelValues(op, Outcome(err)).Inc()
	c.Durations.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveEstimate satisfies gibbs.Observer.
func (c *Collector) ObserveEstimate(elapsed time.Duration, err error) {
	c.Observe(OpGibbs, elapsed, err)
}

// WriteText writes every gathered metric family in the Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	mfs, err := c.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// Outcome maps an error to its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, gibbs.ErrNotCoplanar):
		return OutcomeNotCoplanar
	case errors.Is(err, orbit.ErrDomain):
		return OutcomeDomain
	case errors.Is(err, sidereal.ErrPrecondition):
		return OutcomePrecondition
	}
	return OutcomeOther
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
