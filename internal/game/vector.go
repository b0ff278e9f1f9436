package game

import (
	"fmt"
	"math"
)

// Vector is a 2-D point or direction. Methods return new values; the
// receiver is never modified.
type Vector struct {
	X, Y float64
}

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Scale(f float64) Vector { return Vector{v.X * f, v.Y * f} }
func (v Vector) Divide(f float64) Vector { return Vector{v.X / f, v.Y / f} }
func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vector) MagnitudeSquared() float64 { return v.Dot(v) }

// Magnitude returns the length of v.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSquared())
}

// DistanceSquared returns the squared distance between v and o.
func (v Vector) DistanceSquared(o Vector) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Distance returns the distance between v and o.
func (v Vector) Distance(o Vector) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}

// ScaleToMagnitude returns v rescaled to length m. A zero vector has no
// direction, so it is returned unchanged.
func (v Vector) ScaleToMagnitude(m float64) Vector {
	mag := v.Magnitude()
	if mag == 0 {
		return v
	}
	return v.Scale(m / mag)
}

// Truncate caps the length of v at max.
func (v Vector) Truncate(max float64) Vector {
	if v.MagnitudeSquared() > max*max {
		return v.ScaleToMagnitude(max)
	}
	return v
}

// Heading returns the angle of v in radians.
func (v Vector) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

// IsFinite reports whether both components are real numbers.
func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// FromAngle returns a vector of length m pointing along angle.
func FromAngle(angle, m float64) Vector {
	return Vector{math.Cos(angle) * m, math.Sin(angle) * m}
}

// String formats the vector as (x, y) rounded to whole pixels.
func (v Vector) String() string {
	return fmt.Sprintf("(%.0f, %.0f)", v.X, v.Y)
}
