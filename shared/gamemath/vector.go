// Package gamemath holds small pure math helpers shared by both simulation
// sides. Keeping them here guarantees the server and client compute identical
// results for movement and interpolation.
package gamemath

import "math"

// Vector is a 2D vector.
type Vector struct {
	X, Y float64
}

func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalized returns a unit-length copy, or the zero vector unchanged.
func (v Vector) Normalized() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return Vector{v.X / l, v.Y / l}
}

func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Angle returns the heading of the vector in radians.
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle builds a unit vector pointing along the given heading.
func FromAngle(rad float64) Vector {
	return Vector{math.Cos(rad), math.Sin(rad)}
}

// Lerp linearly interpolates between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVector linearly interpolates between two vectors.
func LerpVector(a, b Vector, t float64) Vector {
	return Vector{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// LerpAngle interpolates between two headings along the shortest arc.
// This is the planar equivalent of a spherical rotation interpolation.
func LerpAngle(a, b, t float64) float64 {
	diff := math.Mod(b-a, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return a + diff*t
}

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speed, friction float64) float64 {
	if speed > friction {
		return speed - friction
	}
	if speed < -friction {
		return speed + friction
	}
	return 0
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
