package gamemath

import (
	"math"
	"testing"
)

func TestNormalizedZeroVectorStaysZero(t *testing.T) {
	t.Parallel()

	if v := (Vector{}).Normalized(); !v.IsZero() {
		t.Fatalf("Normalized(0) = %v", v)
	}
}

func TestAngleRoundTrip(t *testing.T) {
	t.Parallel()

	for _, angle := range []float64{0, math.Pi / 4, math.Pi / 2, -math.Pi / 3, 3} {
		v := FromAngle(angle)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("FromAngle(%v) not unit: %v", angle, v)
		}
		if math.Abs(v.Angle()-angle) > 1e-9 {
			t.Fatalf("Angle(FromAngle(%v)) = %v", angle, v.Angle())
		}
	}
}

func TestLerpAngleShortestArc(t *testing.T) {
	t.Parallel()

	// From 170° to -170° the short way crosses ±180°, not zero.
	from := 170 * math.Pi / 180
	to := -170 * math.Pi / 180
	mid := LerpAngle(from, to, 0.5)

	if math.Abs(math.Abs(mid)-math.Pi) > 1e-6 {
		t.Fatalf("LerpAngle midpoint = %v, want ±pi", mid)
	}
}

func TestApplyFrictionStopsAtZero(t *testing.T) {
	t.Parallel()

	if got := ApplyFriction(10, 4); math.Abs(got-6) > 1e-9 {
		t.Fatalf("ApplyFriction(10,4) = %v, want 6", got)
	}
	if got := ApplyFriction(3, 5); got != 0 {
		t.Fatalf("ApplyFriction(3,5) = %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	cases := []struct{ v, lo, hi, want float64 }{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%v,%v,%v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}
