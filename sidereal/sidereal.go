// Package sidereal computes local sidereal time from a calendar date, a UT
// clock reading and the east longitude of a site.
package sidereal

import (
	"fmt"
	"math"
	"time"
)

const (
	j2000          = 2_451_545.0
	daysPerCentury = 36_525.0
	// siderealRate is the sidereal rotation in degrees per solar day.
	siderealRate = 360.98564724
)

// Clock is a time of day in UT.
type Clock struct {
	Hour, Minute int
	Second       float64
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, int(c.Second))
}

// Validate checks that every field is within its range.
func (c Clock) Validate() error {
	switch {
	case c.Hour < 0 || c.Hour > 23:
		return fmt.Errorf("%w: hour %d outside 0-23", ErrPrecondition, c.Hour)
	case c.Minute < 0 || c.Minute > 59:
		return fmt.Errorf("%w: minute %d outside 0-59", ErrPrecondition, c.Minute)
	case !(c.Second >= 0 && c.Second < 60):
		return fmt.Errorf("%w: second %v outside [0, 60)", ErrPrecondition, c.Second)
	}
	return nil
}

// Hours returns the clock reading as fractional hours.
func (c Clock) Hours() float64 {
	return float64(c.Hour) + float64(c.Minute)/60 + c.Second/3600
}

// Query is a local sidereal time request. Longitude is degrees east; values
// outside [0, 360) are accepted and wrap.
type Query struct {
	Date      Date
	Clock     Clock
	Longitude float64
}

// QueryAt builds a Query from the UTC date and clock of t.
func QueryAt(t time.Time, longitude float64) Query {
	t = t.UTC()
	return Query{
		Date:      Date{Year: t.Year(), Month: t.Month(), Day: t.Day()},
		Clock:     Clock{Hour: t.Hour(), Minute: t.Minute(), Second: float64(t.Second()) + float64(t.Nanosecond())/1e9},
		Longitude: longitude,
	}
}

// Greenwich0 returns the Greenwich sidereal time at 0h UT of d in degrees, in [0, 360).
func Greenwich0(d Date) (float64, error) {
	j0, err := JulianDay0(d)
	if err != nil {
		return 0, err
	}

	t0 := (j0 - j2000) / daysPerCentury
	theta := 100.4606184 +
		36_000.77004*t0 +
		0.000387933*t0*t0 -
		2.583e-8*t0*t0*t0
	return normalize(theta), nil
}

// Local returns the local sidereal time in degrees, in [0, 360).
func Local(q Query) (float64, error) {
	if err := q.Clock.Validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(q.Longitude) || math.IsInf(q.Longitude, 0) {
		return 0, fmt.Errorf("%w: longitude %v is not finite", ErrPrecondition, q.Longitude)
	}

	g0, err := Greenwich0(q.Date)
	if err != nil {
		return 0, err
	}

	g := g0 + siderealRate*q.Clock.Hours()/24
	return normalize(g + q.Longitude), nil
}

// normalize maps a finite angle into [0, 360).
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
