package earth

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// Mu is the gravitational parameter of the Earth in km^3/s^2.
const Mu = 398600.0

// GreenwichMeanSidereal returns the IAU 1982 Greenwich mean sidereal time
// at t in degrees, in [0, 360).
func GreenwichMeanSidereal(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	return sidereal.Mean(jd).Angle().Deg()
}

// GreenwichMeanSidereal0UT returns the Greenwich mean sidereal time at 0h UT
// of t's UTC calendar day, in degrees.
func GreenwichMeanSidereal0UT(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	return sidereal.Mean0UT(jd).Angle().Deg()
}
