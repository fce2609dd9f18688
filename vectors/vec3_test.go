package vectors

import (
	"math"
	"testing"
)

func TestCrossIsOrthogonal(t *testing.T) {
	a := Vec3{X: -294.32, Y: 4265.1, Z: 5986.7}
	b := Vec3{X: -1365.5, Y: 3637.6, Z: 6346.8}

	c := a.Cross(b)
	if d := c.Dot(a); math.Abs(d) > 1e-3 {
		t.Errorf("a·(a×b) = %v, want 0", d)
	}
	if d := c.Dot(b); math.Abs(d) > 1e-3 {
		t.Errorf("b·(a×b) = %v, want 0", d)
	}
}

func TestCrossBasis(t *testing.T) {
	i := Vec3{X: 1}
	j := Vec3{Y: 1}
	if got := i.Cross(j); got != UnitK {
		t.Errorf("i×j = %v, want %v", got, UnitK)
	}
	if got := UnitK.Cross(i); got != j {
		t.Errorf("k×i = %v, want %v", got, j)
	}
}

func TestUnit(t *testing.T) {
	u, ok := Vec3{X: 3, Y: 4}.Unit()
	if !ok {
		t.Fatal("expected non-zero vector to have a unit vector")
	}
	if math.Abs(u.Norm()-1) > 1e-15 || math.Abs(u.X-0.6) > 1e-15 {
		t.Errorf("unit = %v", u)
	}

	if _, ok := (Vec3{}).Unit(); ok {
		t.Error("zero vector must not report a unit vector")
	}
}

func TestSumAndDistance(t *testing.T) {
	s := Sum(Vec3{1, 2, 3}, Vec3{4, 5, 6}, Vec3{-5, -7, -9})
	if s != (Vec3{}) {
		t.Errorf("Sum = %v, want zero", s)
	}
	if d := Distance(Vec3{1, 1, 1}, Vec3{4, 5, 1}); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
}

func TestIsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3{1, math.NaN(), 3}).IsFinite() {
		t.Error("NaN component not detected")
	}
	if (Vec3{math.Inf(-1), 0, 0}).IsFinite() {
		t.Error("Inf component not detected")
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    Vec3
		wantErr bool
	}{
		{"-294.32,4265.1,5986.7", Vec3{-294.32, 4265.1, 5986.7}, false},
		{"1, 2, 3", Vec3{1, 2, 3}, false},
		{"1 2\t3", Vec3{1, 2, 3}, false},
		{"1,2", Vec3{}, true},
		{"1,2,x", Vec3{}, true},
		{"", Vec3{}, true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := Parse(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", c.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", c.in, err)
			}
			if got != c.want {
				t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := (Vec3{-34275.77371, 478.57131, 38810.20551}).String(); got != "[-34275.774 478.571 38810.206]" {
		t.Errorf("String = %q", got)
	}
}
