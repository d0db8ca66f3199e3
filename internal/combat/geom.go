package combat

import "math"

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Len() float64    { return math.Hypot(a.X, a.Y) }
func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Dist is the straight-line distance between a and b.
func Dist(a, b Vec2) float64 { return b.Sub(a).Len() }

// AngleTo is the heading in radians from a toward b.
func AngleTo(a, b Vec2) float64 { return math.Atan2(b.Y-a.Y, b.X-a.X) }

// FromAngle returns the unit vector for heading rad.
func FromAngle(rad float64) Vec2 { return Vec2{math.Cos(rad), math.Sin(rad)} }

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// LerpVec interpolates componentwise; t is not clamped.
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
