package earth

import (
	"math"
	"testing"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

func angleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	return math.Min(d, 360-d)
}

func TestGreenwichMeanSiderealRange(t *testing.T) {
	start := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		at := start.Add(time.Duration(i) * 37 * time.Hour)
		g := GreenwichMeanSidereal(at)
		if g < 0 || g >= 360 {
			t.Fatalf("GMST(%v) = %v, want [0,360)", at, g)
		}
	}
}

func TestGreenwichMeanSiderealMatchesSGP4Model(t *testing.T) {
	cases := []time.Time{
		time.Date(2004, 3, 3, 4, 30, 0, 0, time.UTC),
		time.Date(1987, 4, 10, 19, 21, 0, 0, time.UTC),
		time.Date(2024, 8, 8, 9, 23, 0, 0, time.UTC),
	}

	for _, at := range cases {
		t.Run(at.Format(time.RFC3339), func(t *testing.T) {
			jd := satellite.JDay(at.Year(), int(at.Month()), at.Day(), at.Hour(), at.Minute(), at.Second())
			want := satellite.ThetaG_JD(jd) * 180 / math.Pi

			if got := GreenwichMeanSidereal(at); angleDiff(got, want) > 1e-3 {
				t.Errorf("GMST = %.6f deg, go-satellite = %.6f deg", got, want)
			}
		})
	}
}

func TestGreenwichMeanSidereal0UT(t *testing.T) {
	// Meeus, Astronomical Algorithms, example 12.a: 1987 April 10, 0h UT.
	at := time.Date(1987, 4, 10, 0, 0, 0, 0, time.UTC)
	want := (13 + 10/60.0 + 46.3668/3600.0) * 15
	if got := GreenwichMeanSidereal0UT(at); math.Abs(got-want) > 1e-4 {
		t.Errorf("GMST0 = %.6f, want %.6f", got, want)
	}
}

func TestGreenwichMeanSiderealMeeusExample(t *testing.T) {
	// Meeus example 12.b: 1987 April 10, 19h21m00s UT.
	at := time.Date(1987, 4, 10, 19, 21, 0, 0, time.UTC)
	want := (8 + 34/60.0 + 57.0896/3600.0) * 15
	if got := GreenwichMeanSidereal(at); math.Abs(got-want) > 1e-4 {
		t.Errorf("GMST = %.6f, want %.6f", got, want)
	}
}
