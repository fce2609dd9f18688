package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/echoflaresat/orbitcalc/earth"
	"github.com/echoflaresat/orbitcalc/gibbs"
	"github.com/echoflaresat/orbitcalc/metrics"
	"github.com/echoflaresat/orbitcalc/observations"
	"github.com/echoflaresat/orbitcalc/orbit"
	"github.com/echoflaresat/orbitcalc/sidereal"
	"github.com/echoflaresat/orbitcalc/vectors"
)

// vecFlag lets a Vec3 be set from "x,y,z".
type vecFlag struct{ v *vectors.Vec3 }

func (f vecFlag) String() string {
	if f.v == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.v.X, f.v.Y, f.v.Z)
}

func (f vecFlag) Set(s string) error {
	v, err := vectors.Parse(s)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

func (vecFlag) Type() string { return "x,y,z" }

func (a *app) elementsCmd() *cobra.Command {
	var (
		r, v vectors.Vec3
		mu   float64
	)
	cmd := &cobra.Command{
		Use:   "elements",
		Short: "Orbital elements from a state vector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var el orbit.Elements
			err := a.measure(cmd.Context(), metrics.OpElements, func(context.Context) (err error) {
				el, err = orbit.Compute(r, v, mu)
				return err
			})
			if err != nil {
				return err
			}
			printElements(a.stdout, el)
			return nil
		},
	}
	cmd.Flags().Var(vecFlag{&r}, "r", "Position vector in km")
	cmd.Flags().Var(vecFlag{&v}, "v", "Velocity vector in km/s")
	cmd.Flags().Float64Var(&mu, "mu", earth.Mu, "Gravitational parameter in km^3/s^2")
	_ = cmd.MarkFlagRequired("r")
	_ = cmd.MarkFlagRequired("v")
	return cmd
}

func (a *app) gibbsCmd() *cobra.Command {
	var (
		t       gibbs.Triple
		mu      float64
		showNDS bool
	)
	cmd := &cobra.Command{
		Use:   "gibbs",
		Short: "Orbital elements from three coplanar position vectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				el orbit.Elements
				tr gibbs.Trace
			)
			err := a.measure(cmd.Context(), metrics.OpGibbs, func(context.Context) (err error) {
				el, err = t.Estimate(gibbs.WithMu(mu), gibbs.WithTrace(&tr))
				return err
			})
			if err != nil {
				return gibbsFailure{err}
			}
			if showNDS {
				printTrace(a.stdout, tr)
			}
			printElements(a.stdout, el)
			return nil
		},
	}
	cmd.Flags().Var(vecFlag{&t.R1}, "r1", "Position at t1 in km")
	cmd.Flags().Var(vecFlag{&t.R2}, "r2", "Position at t2 in km")
	cmd.Flags().Var(vecFlag{&t.R3}, "r3", "Position at t3 in km")
	cmd.Flags().Float64Var(&mu, "mu", earth.Mu, "Gravitational parameter in km^3/s^2")
	cmd.Flags().BoolVar(&showNDS, "nds", false, "Print the intermediate N, D, S and v2 vectors")
	for _, name := range []string{"r1", "r2", "r3"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var (
		path    string
		workers int
		mu      float64
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Gibbs' method over every triple in an observation file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			triples, err := observations.Load(path)
			if err != nil {
				return err
			}
			a.log.Info("loaded observations", "path", path, "triples", len(triples))

			results, err := gibbs.EstimateAll(cmd.Context(), triples, gibbs.BatchOptions{
				Workers:  workers,
				Mu:       mu,
				Observer: a.collector,
			})
			if err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					a.log.Warn("triple failed", "index", res.Index+1, "error", res.Err)
					fmt.Fprintf(a.stdout, "triple %d: error: %v\n", res.Index+1, res.Err)
					continue
				}
				el := res.Elements
				fmt.Fprintf(a.stdout, "triple %d: h=%.2f i=%.2f RAAN=%.2f e=%.2f argp=%.2f theta=%.2f\n",
					res.Index+1, el.H, el.Inclination, el.RAAN, el.Eccentricity, el.ArgPerigee, el.TrueAnomaly)
			}
			if failed > 0 {
				return gibbsFailure{fmt.Errorf("%d of %d triples failed", failed, len(results))}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "Observation file, one x,y,z vector per line")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent estimates (0 uses GOMAXPROCS)")
	cmd.Flags().Float64Var(&mu, "mu", earth.Mu, "Gravitational parameter in km^3/s^2")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) siderealCmd() *cobra.Command {
	var (
		dateStr, clockStr string
		lon               float64
	)
	cmd := &cobra.Command{
		Use:   "sidereal",
		Short: "Local sidereal time of a site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				q   sidereal.Query
				lst float64
			)
			err := a.measure(cmd.Context(), metrics.OpSidereal, func(context.Context) error {
				d, err := parseDate(dateStr)
				if err != nil {
					return err
				}
				c, err := parseClock(clockStr)
				if err != nil {
					return err
				}
				q = sidereal.Query{Date: d, Clock: c, Longitude: lon}
				lst, err = sidereal.Local(q)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Date: %v\n", q.Date)
			fmt.Fprintf(a.stdout, "Time: %v\n", q.Clock)
			fmt.Fprintf(a.stdout, "East longitude of site: %.2f deg\n", q.Longitude)
			fmt.Fprintf(a.stdout, "Local sidereal time: %.2f deg\n", lst)
			fmt.Fprintf(a.stdout, "Greenwich mean sidereal time (IAU 1982): %.2f deg\n", earth.GreenwichMeanSidereal(queryTime(q)))
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Date as YYYY-MM-DD (1900-2100)")
	cmd.Flags().StringVar(&clockStr, "time", "00:00:00", "UT time of day as HH:MM[:SS]")
	cmd.Flags().Float64Var(&lon, "lon", 0, "East longitude of the site in degrees")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func printElements(w io.Writer, el orbit.Elements) {
	fmt.Fprintf(w, "specific angular momentum: %.2f km^2/s\n", el.H)
	fmt.Fprintf(w, "inclination: %.2f deg\n", el.Inclination)
	fmt.Fprintf(w, "right ascension of ascending node: %.2f deg\n", el.RAAN)
	fmt.Fprintf(w, "eccentricity: %.2f\n", el.Eccentricity)
	fmt.Fprintf(w, "argument of perigee: %.2f deg\n", el.ArgPerigee)
	fmt.Fprintf(w, "true anomaly: %.2f deg\n", el.TrueAnomaly)
}

func printTrace(w io.Writer, tr gibbs.Trace) {
	fmt.Fprintf(w, "N = %v (km^3)\n", tr.N)
	fmt.Fprintf(w, "D = %v (km^2)\n", tr.D)
	fmt.Fprintf(w, "S = %v (km^2)\n", tr.S)
	fmt.Fprintf(w, "v2 = %v (km/s)\n\n", tr.V2)
}

// parseDate reads YYYY-MM-DD without calendar validation; sidereal.Local
// reports out-of-range fields.
func parseDate(s string) (sidereal.Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return sidereal.Date{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", sidereal.ErrPrecondition, s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return sidereal.Date{}, fmt.Errorf("%w: date %q: %v", sidereal.ErrPrecondition, s, err)
		}
		n[i] = v
	}
	return sidereal.Date{Year: n[0], Month: time.Month(n[1]), Day: n[2]}, nil
}

// parseClock reads HH:MM or HH:MM:SS(.fff).
func parseClock(s string) (sidereal.Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return sidereal.Clock{}, fmt.Errorf("%w: time %q is not HH:MM[:SS]", sidereal.ErrPrecondition, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return sidereal.Clock{}, fmt.Errorf("%w: hour in %q: %v", sidereal.ErrPrecondition, s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return sidereal.Clock{}, fmt.Errorf("%w: minute in %q: %v", sidereal.ErrPrecondition, s, err)
	}
	var sec float64
	if len(parts) == 3 {
		if sec, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return sidereal.Clock{}, fmt.Errorf("%w: second in %q: %v", sidereal.ErrPrecondition, s, err)
		}
	}
	return sidereal.Clock{Hour: h, Minute: m, Second: sec}, nil
}

func queryTime(q sidereal.Query) time.Time {
	whole := int(q.Clock.Second)
	nanos := int((q.Clock.Second - float64(whole)) * 1e9)
	return time.Date(q.Date.Year, q.Date.Month, q.Date.Day, q.Clock.Hour, q.Clock.Minute, whole, nanos, time.UTC)
}
